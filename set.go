package cdecl

import (
	"fmt"
	"strings"

	"github.com/appsworld/go-cdecl/gibberish"
	"github.com/appsworld/go-cdecl/types"
)

// Set changes one option: "set east-const", "set noeast-const",
// "set lang=c++17", or a bare dialect name like "set c99". With an empty
// argument it prints the current settings.
func (s *Session) Set(option string) error {
	option = strings.TrimSpace(option)

	if option == "" || option == "options" {
		fmt.Fprint(s.out, s.optionsSummary())
		return nil
	}

	if name, value, ok := strings.Cut(option, "="); ok {
		switch strings.TrimSpace(name) {
		case "lang", "language":
			return s.setLang(strings.TrimSpace(value))
		case "graphs":
			return s.setGraphs(strings.TrimSpace(value))
		}
		return fmt.Errorf("%q: unknown option", name)
	}

	// A bare dialect name selects the language.
	if lang := types.FindLang(option); lang != types.LangNone {
		s.opts.Lang = lang
		return nil
	}

	switch option {
	case "east-const":
		s.opts.EastConst = true
	case "noeast-const":
		s.opts.EastConst = false
	case "alt-tokens":
		s.opts.AltTokens = true
	case "noalt-tokens":
		s.opts.AltTokens = false
	case "digraphs":
		s.opts.Graph = gibberish.GraphDi
	case "trigraphs":
		s.opts.Graph = gibberish.GraphTri
	case "nographs":
		s.opts.Graph = gibberish.GraphNone
	case "semicolon":
		s.opts.Semicolon = true
	case "nosemicolon":
		s.opts.Semicolon = false
	case "using":
		s.opts.UsingDecls = true
	case "nousing":
		s.opts.UsingDecls = false
	case "explicit-int":
		s.opts.ExplicitInt = true
	case "noexplicit-int":
		s.opts.ExplicitInt = false
	default:
		return fmt.Errorf("%q: unknown option", option)
	}
	return nil
}

func (s *Session) setLang(name string) error {
	lang := types.FindLang(name)
	if lang == types.LangNone {
		return fmt.Errorf("%q: unknown language", name)
	}
	s.opts.Lang = lang
	return nil
}

func (s *Session) setGraphs(value string) error {
	switch value {
	case "none":
		s.opts.Graph = gibberish.GraphNone
	case "di":
		s.opts.Graph = gibberish.GraphDi
	case "tri":
		s.opts.Graph = gibberish.GraphTri
	default:
		return fmt.Errorf("%q: unknown graphs setting", value)
	}
	return nil
}

func (s *Session) optionsSummary() string {
	onoff := map[bool]string{true: "", false: "no"}
	graph := "nographs"
	switch s.opts.Graph {
	case gibberish.GraphDi:
		graph = "digraphs"
	case gibberish.GraphTri:
		graph = "trigraphs"
	}
	return fmt.Sprintf(
		"lang=%s\n%seast-const\n%salt-tokens\n%s\n%ssemicolon\n%susing\n%sexplicit-int\n",
		types.LangName(s.opts.Lang),
		onoff[s.opts.EastConst],
		onoff[s.opts.AltTokens],
		graph,
		onoff[s.opts.Semicolon],
		onoff[s.opts.UsingDecls],
		onoff[s.opts.ExplicitInt],
	)
}

const helpText = `commands:
  declare <name> as <english>        compose a C/C++ declaration
  cast [<kind>] <name> into <english>  compose a cast
  define <name> as <english>         define a type name
  typedef <declaration>              define a type name from gibberish
  using <name> = <type>              define a type name (C++11+)
  explain <declaration>              explain a C/C++ declaration
  show <name>|all|predefined|user [typedef|using]
  set [<option>|<lang>]              set an option or the language
  help, ?                            print this help
  exit, quit
`

// Help returns the command summary.
func (s *Session) Help() string { return helpText }

// Execute runs one command line, writing output to the session's output
// stream. It returns ErrQuit for exit and quit.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "declare":
		name, rest, ok := cutWord(rest)
		if !ok {
			return fmt.Errorf("usage: declare <name> as <english>")
		}
		as, englishText, ok := cutWord(rest)
		if !ok || as != "as" {
			return fmt.Errorf("usage: declare <name> as <english>")
		}
		out, err := s.Declare(name, englishText)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, out)
		return nil

	case "cast":
		kind := ""
		name, rest, ok := cutWord(rest)
		if !ok {
			return fmt.Errorf("usage: cast [<kind>] <name> into <english>")
		}
		switch name {
		case "const", "dynamic", "reinterpret", "static":
			kind = name
			name, rest, ok = cutWord(rest)
			if !ok {
				return fmt.Errorf("usage: cast [<kind>] <name> into <english>")
			}
		}
		into, englishText, ok := cutWord(rest)
		if !ok || into != "into" {
			return fmt.Errorf("usage: cast [<kind>] <name> into <english>")
		}
		out, err := s.Cast(kind, name, englishText)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, out)
		return nil

	case "define":
		name, rest, ok := cutWord(rest)
		if !ok {
			return fmt.Errorf("usage: define <name> as <english>")
		}
		as, englishText, ok := cutWord(rest)
		if !ok || as != "as" {
			return fmt.Errorf("usage: define <name> as <english>")
		}
		return s.Define(name, englishText)

	case "typedef":
		return s.Typedef(line) // keep the typedef keyword for the parser

	case "using":
		return s.Using(rest)

	case "explain":
		out, err := s.Explain(rest)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, out)
		return nil

	case "show":
		what, flavor, _ := cutWord(rest)
		if what == "" {
			what = "all"
		}
		out, err := s.Show(what, flavor)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(s.out, out)
		}
		return nil

	case "set":
		return s.Set(rest)

	case "help", "?":
		fmt.Fprint(s.out, s.Help())
		return nil

	case "exit", "quit":
		return ErrQuit
	}

	// No command word: treat the whole line as something to explain, the
	// way the interactive tool does.
	out, err := s.Explain(line)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, out)
	return nil
}

func cutWord(s string) (word, rest string, ok bool) {
	word, rest, _ = strings.Cut(s, " ")
	if word == "" {
		return "", "", false
	}
	return word, strings.TrimSpace(rest), true
}
