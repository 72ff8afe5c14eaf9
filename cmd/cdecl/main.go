// Command cdecl translates between C/C++ declarations and pseudo-English,
// either interactively or over stdin.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	cdecl "github.com/appsworld/go-cdecl"
	"github.com/appsworld/go-cdecl/cmd/internal/config"
	"github.com/appsworld/go-cdecl/types"
)

var (
	configPath = flag.String("config", defaultConfigPath(), "configuration file")
	language   = flag.String("lang", "", "language dialect (overrides config)")
	execute    = flag.String("x", "", "execute one command and exit")
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cdeclrc.yaml")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cdecl: ")
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Println(err)
			os.Exit(cdecl.ExitUsage)
		}
		cfg = loaded
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Println(err)
		os.Exit(cdecl.ExitUsage)
	}
	if *language != "" {
		lang := types.FindLang(*language)
		if lang == types.LangNone {
			log.Printf("%q: unknown language", *language)
			os.Exit(cdecl.ExitUsage)
		}
		opts.Lang = lang
	}

	sess := cdecl.New(
		cdecl.WithOptions(opts),
		cdecl.WithOutput(os.Stdout),
		cdecl.WithErrorOutput(os.Stderr),
	)
	if err := cfg.Apply(sess); err != nil {
		log.Println(err)
		os.Exit(cdecl.ExitUsage)
	}

	if *execute != "" {
		if err := sess.Execute(*execute); err != nil && !errors.Is(err, cdecl.ErrQuit) {
			log.Println(err)
			os.Exit(cdecl.ExitDataErr)
		}
		return
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	failed := false
	for {
		if interactive {
			fmt.Print(prompt(sess))
		}
		if !scanner.Scan() {
			break
		}
		err := sess.Execute(scanner.Text())
		if errors.Is(err, cdecl.ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "cdecl: %v\n", err)
			failed = true
		}
	}
	if err := scanner.Err(); err != nil {
		log.Println(err)
		os.Exit(cdecl.ExitInternal)
	}
	if failed && !interactive {
		os.Exit(cdecl.ExitDataErr)
	}
}

// prompt reflects the active dialect, the way the language shapes every
// answer: "c++decl>" when a C++ dialect is selected.
func prompt(s *cdecl.Session) string {
	if types.IsCPP(s.Lang()) {
		return "c++decl> "
	}
	return "cdecl> "
}
