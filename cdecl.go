// Package cdecl translates between C/C++ type declarations ("gibberish")
// and a controlled English pseudo-language, in both directions, across C
// and C++ dialects.
package cdecl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/check"
	"github.com/appsworld/go-cdecl/english"
	"github.com/appsworld/go-cdecl/gibberish"
	"github.com/appsworld/go-cdecl/lookup"
	"github.com/appsworld/go-cdecl/parse"
	"github.com/appsworld/go-cdecl/typedef"
	"github.com/appsworld/go-cdecl/types"
)

// Exit codes for command-line use, after BSD sysexits.
const (
	ExitSuccess  = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitInternal = 70
)

// ErrQuit is returned by Execute for the exit and quit commands.
var ErrQuit = errors.New("quit")

// Options holds the session's option flags.
type Options struct {
	Lang        types.Lang
	EastConst   bool
	AltTokens   bool
	Graph       gibberish.Graph
	Semicolon   bool
	UsingDecls  bool // print typedefs as C++11 using declarations
	ExplicitInt bool
	Predefined  bool // seed the predefined typedefs at startup
}

// DefaultOptions returns the options a fresh session starts with.
func DefaultOptions() Options {
	return Options{
		Lang:       types.LangCNew,
		EastConst:  true,
		Semicolon:  true,
		Predefined: true,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithLang sets the starting dialect.
func WithLang(lang types.Lang) Option {
	return func(s *Session) { s.opts.Lang = lang }
}

// WithOptions replaces the starting options wholesale.
func WithOptions(opts Options) Option {
	return func(s *Session) { s.opts = opts }
}

// WithOutput directs command output.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithErrorOutput directs diagnostics.
func WithErrorOutput(w io.Writer) Option {
	return func(s *Session) { s.errw = w }
}

// Session carries all state for one translator instance: options, the
// typedef registry, and the output streams. Sessions are not safe for
// concurrent use; the whole pipeline is strictly sequential.
type Session struct {
	opts Options
	reg  *typedef.Registry
	out  io.Writer
	errw io.Writer
}

// New returns a session ready to execute commands.
func New(options ...Option) *Session {
	s := &Session{
		opts: DefaultOptions(),
		reg:  typedef.NewRegistry(),
		out:  io.Discard,
		errw: io.Discard,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.opts.Predefined {
		seedPredefined(s.reg)
	}
	return s
}

// Lang returns the active dialect.
func (s *Session) Lang() types.Lang { return s.opts.Lang }

// Options returns a copy of the current options.
func (s *Session) Options() Options { return s.opts }

func (s *Session) env() parse.Env {
	return parse.Env{Lang: s.opts.Lang, Typedefs: s.reg}
}

func (s *Session) gibOpts() gibberish.Options {
	return gibberish.Options{
		Lang:        s.opts.Lang,
		EastConst:   s.opts.EastConst,
		AltTokens:   s.opts.AltTokens,
		Graph:       s.opts.Graph,
		Semicolon:   s.opts.Semicolon,
		ExplicitInt: s.opts.ExplicitInt,
	}
}

// DiagnosticsError wraps checker diagnostics that include at least one
// error; the declaration's output is suppressed.
type DiagnosticsError struct {
	Diags []check.Diagnostic
}

func (e *DiagnosticsError) Error() string {
	var msgs []string
	for _, d := range e.Diags {
		if d.Severity == check.Error {
			msgs = append(msgs, d.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// checkAST runs the checker, reports warnings, and converts errors into a
// DiagnosticsError.
func (s *Session) checkAST(root *ast.Node, cast bool) error {
	var diags []check.Diagnostic
	if cast {
		diags = check.Cast(root, s.opts.Lang)
	} else {
		diags = check.Declaration(root, s.opts.Lang)
	}
	for _, d := range diags {
		if d.Severity == check.Warning {
			fmt.Fprintf(s.errw, "%s\n", d)
		}
	}
	if check.HasError(diags) {
		return &DiagnosticsError{Diags: diags}
	}
	return nil
}

// decorate adds "did you mean" hints to unknown-name errors.
func (s *Session) decorate(err error) error {
	var unknown *parse.UnknownNameError
	if !errors.As(err, &unknown) {
		return err
	}
	candidates := append(parse.Keywords(), s.reg.Names()...)
	hints := lookup.Suggest(unknown.Name, candidates)
	if len(hints) == 0 {
		return err
	}
	return fmt.Errorf("%w; did you mean %q?", err, hints[0])
}

// Declare translates "declare <name> as <english>": it parses the English
// phrase, checks the result, and renders gibberish.
func (s *Session) Declare(name, englishText string) (string, error) {
	sname, err := parse.ParseName(name)
	if err != nil {
		return "", err
	}
	root, err := parse.ParseEnglishType(englishText, s.env())
	if err != nil {
		return "", s.decorate(err)
	}
	root.Name = sname
	if err := s.checkAST(root, false); err != nil {
		return "", err
	}
	out := gibberish.Print(root, gibberish.FlagDecl, s.gibOpts())
	if s.opts.Semicolon {
		out += ";"
	}
	return out, nil
}

// Cast translates "cast [<kind>] <name> into <english>". kind is one of
// "", "const", "dynamic", "reinterpret", or "static"; the named casts
// require C++.
func (s *Session) Cast(kind, name, englishText string) (string, error) {
	ck := gibberish.CastC
	switch kind {
	case "", "none":
	case "const":
		ck = gibberish.CastConst
	case "dynamic":
		ck = gibberish.CastDynamic
	case "reinterpret":
		ck = gibberish.CastReinterpret
	case "static":
		ck = gibberish.CastStatic
	default:
		return "", fmt.Errorf("%q is not a cast kind", kind)
	}
	if ck != gibberish.CastC && !types.IsCPP(s.opts.Lang) {
		return "", fmt.Errorf("%s is not supported%s",
			gibberish.CastName(ck), types.Which(types.LangCPPAny, s.opts.Lang))
	}
	root, err := parse.ParseEnglishType(englishText, s.env())
	if err != nil {
		return "", s.decorate(err)
	}
	if err := s.checkAST(root, true); err != nil {
		return "", err
	}
	return gibberish.PrintCast(ck, name, root, s.gibOpts()), nil
}

// Explain translates a gibberish declaration into English.
func (s *Session) Explain(gibberishText string) (string, error) {
	root, err := parse.ParseDecl(gibberishText, s.env())
	if err != nil {
		return "", s.decorate(err)
	}

	// "explain typedef int I" defines I rather than declaring it.
	isTypedef := ast.TakeType(root, types.Typedef) != types.None

	if err := s.checkAST(root, false); err != nil {
		return "", err
	}
	name := ast.TakeName(root)
	verb := "declare"
	if isTypedef {
		verb = "define"
	}
	if name.Empty() {
		return english.Print(root), nil
	}
	return fmt.Sprintf("%s %s as %s", verb, name.Full(), english.Print(root)), nil
}

// Define inserts a typedef declared in English: "define <name> as
// <english>".
func (s *Session) Define(name, englishText string) error {
	sname, err := parse.ParseName(name)
	if err != nil {
		return err
	}
	root, err := parse.ParseEnglishType(englishText, s.env())
	if err != nil {
		return s.decorate(err)
	}
	if err := s.checkAST(root, false); err != nil {
		return err
	}
	root.Name = sname
	return s.reg.Define(&ast.Typedef{Name: sname, AST: root, Langs: types.LangAll})
}

// Typedef inserts a typedef declared in gibberish: "typedef int I".
func (s *Session) Typedef(gibberishText string) error {
	root, err := parse.ParseDecl(gibberishText, s.env())
	if err != nil {
		return s.decorate(err)
	}
	ast.TakeType(root, types.Typedef)
	if err := s.checkAST(root, false); err != nil {
		return err
	}
	named := ast.FindName(root, ast.VisitDown)
	if named == nil {
		return fmt.Errorf("typedef requires a name")
	}
	return s.reg.Define(&ast.Typedef{Name: named.Name, AST: root, Langs: types.LangAll})
}

// Using inserts a typedef declared as "using <name> = <gibberish>";
// requires C++11 or later.
func (s *Session) Using(text string) error {
	legal := types.CPPMin(types.LangCPP11)
	if legal&s.opts.Lang == types.LangNone {
		return fmt.Errorf("using is not supported%s", types.Which(legal, s.opts.Lang))
	}
	eq := strings.Index(text, "=")
	if eq < 0 {
		return fmt.Errorf(`expected "=" in using declaration`)
	}
	sname, err := parse.ParseName(strings.TrimSpace(text[:eq]))
	if err != nil {
		return err
	}
	root, err := parse.ParseTypeName(strings.TrimSpace(text[eq+1:]), s.env())
	if err != nil {
		return s.decorate(err)
	}
	if err := s.checkAST(root, false); err != nil {
		return err
	}
	root.Name = sname
	return s.reg.Define(&ast.Typedef{Name: sname, AST: root, Langs: types.LangAll})
}

// Show renders stored typedefs: one by name, or "all", "predefined", or
// "user". flavor is "", "typedef", or "using".
func (s *Session) Show(what, flavor string) (string, error) {
	flags := gibberish.FlagTypedef
	if flavor == "using" || (flavor == "" && s.opts.UsingDecls) {
		flags = gibberish.FlagUsing
	}

	var filter typedef.Filter
	switch what {
	case "all":
		filter = typedef.All
	case "predefined":
		filter = typedef.Predefined
	case "user":
		filter = typedef.User
	default:
		td := s.reg.LookupString(what)
		if td == nil {
			return "", s.decorate(&parse.UnknownNameError{Name: what})
		}
		return gibberish.PrintTypedef(td, flags, s.gibOpts()), nil
	}

	var lines []string
	s.reg.Visit(filter, func(td *ast.Typedef) bool {
		if td.Langs&s.opts.Lang != types.LangNone {
			lines = append(lines, gibberish.PrintTypedef(td, flags, s.gibOpts()))
		}
		return true
	})
	return strings.Join(lines, "\n"), nil
}
