package cdecl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/parse"
	"github.com/appsworld/go-cdecl/types"
)

// astDiff renders a structural diff for test failures, ignoring parse
// bookkeeping and the parent back-pointers that would make the value
// cyclic.
func astDiff(a, b *ast.Node) string {
	return cmp.Diff(a, b, cmpopts.IgnoreFields(ast.Node{}, "Parent", "Loc", "Depth"))
}

func newTestSession(opts ...Option) *Session {
	return New(opts...)
}

func TestScenarioDeclarePointerToArray(t *testing.T) {
	s := newTestSession()
	got, err := s.Declare("x", "pointer to array 10 of const int")
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if want := "int const (*x)[10];"; got != want {
		t.Fatalf("Declare = %q, want %q", got, want)
	}
}

func TestScenarioExplainPointerToArray(t *testing.T) {
	s := newTestSession()
	got, err := s.Explain("int (*x)[10]")
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if want := "declare x as pointer to array 10 of int"; got != want {
		t.Fatalf("Explain = %q, want %q", got, want)
	}
}

func TestScenarioDeclareFunction(t *testing.T) {
	s := newTestSession()
	got, err := s.Declare("f", "function (x as int, y as int) returning pointer to char")
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if want := "char *f(int x, int y);"; got != want {
		t.Fatalf("Declare = %q, want %q", got, want)
	}
}

func TestScenarioExplainArrayOfPointerToFunction(t *testing.T) {
	s := newTestSession()
	got, err := s.Explain("int (*a[3])(char)")
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if want := "declare a as array 3 of pointer to function (char) returning int"; got != want {
		t.Fatalf("Explain = %q, want %q", got, want)
	}
}

func TestScenarioPointerToMember(t *testing.T) {
	s := newTestSession(WithLang(types.LangCPP17))
	got, err := s.Declare("p", "pointer to member of class C of function (int) returning void")
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if want := "void (C::*p)(int);"; got != want {
		t.Fatalf("Declare = %q, want %q", got, want)
	}
}

func TestScenarioTypeConflict(t *testing.T) {
	s := newTestSession(WithLang(types.LangC89))
	_, err := s.Explain("int signed short long x")
	if err == nil {
		t.Fatal("conflicting modifiers accepted")
	}
	if !strings.Contains(err.Error(), `"long"`) {
		t.Fatalf("error does not point at the long: %v", err)
	}
}

func TestScenarioArrayOfReference(t *testing.T) {
	s := newTestSession(WithLang(types.LangCPP17))
	_, err := s.Declare("x", "array of reference to int")
	if err == nil {
		t.Fatal("array of reference accepted")
	}
	if !strings.Contains(err.Error(), "array of reference is illegal") {
		t.Fatalf("error = %v", err)
	}
}

func TestScenarioRegisterCPP17(t *testing.T) {
	s := newTestSession(WithLang(types.LangCPP17))
	_, err := s.Declare("r", "register int")
	if err == nil {
		t.Fatal("register accepted in C++17")
	}
	if !strings.Contains(err.Error(), "register is not supported in C++17") {
		t.Fatalf("error = %v", err)
	}
}

// Round-trip from English: the gibberish produced parses back to a
// structurally equal AST.
func TestRoundTripFromEnglish(t *testing.T) {
	phrases := []struct {
		name    string
		english string
		lang    types.Lang
	}{
		{"x", "pointer to array 10 of const int", types.LangC99},
		{"f", "function (x as int, y as int) returning pointer to char", types.LangC99},
		{"a", "array 3 of pointer to function (char) returning int", types.LangC99},
		{"p", "pointer to member of class C of function (int) returning void", types.LangCPP17},
		{"r", "reference to const int", types.LangCPP17},
		{"s", "static pointer to unsigned long int", types.LangC99},
		{"v", "function (x as int, ...) returning void", types.LangC99},
		{"b", "block (x as int) returning int", types.LangC99},
	}
	for _, tt := range phrases {
		s := newTestSession(WithLang(tt.lang))
		first, err := parse.ParseEnglishType(tt.english, parse.Env{Lang: tt.lang, Typedefs: s.reg})
		if err != nil {
			t.Fatalf("%s: parse english failed: %v", tt.english, err)
		}
		name, _ := parse.ParseName(tt.name)
		first.Name = name

		gib, err := s.Declare(tt.name, tt.english)
		if err != nil {
			t.Fatalf("%s: Declare failed: %v", tt.english, err)
		}

		second, err := parse.ParseDecl(strings.TrimSuffix(gib, ";"), parse.Env{Lang: tt.lang, Typedefs: s.reg})
		if err != nil {
			t.Fatalf("%s: reparse of %q failed: %v", tt.english, gib, err)
		}
		if !ast.Equal(first, second) {
			t.Fatalf("%s: round trip mismatch:\n%s", tt.english, astDiff(first, second))
		}
	}
}

// Round-trip from gibberish: explain, re-declare, compare ASTs.
func TestRoundTripFromGibberish(t *testing.T) {
	decls := []struct {
		gib  string
		lang types.Lang
	}{
		{"int (*x)[10]", types.LangC99},
		{"char *f(int x, int y)", types.LangC99},
		{"int (*a[3])(char)", types.LangC99},
		{"void (C::*p)(int)", types.LangCPP17},
		{"int **pp", types.LangC99},
		{"const char *s[4]", types.LangC99},
	}
	for _, tt := range decls {
		s := newTestSession(WithLang(tt.lang))
		env := parse.Env{Lang: tt.lang, Typedefs: s.reg}

		first, err := parse.ParseDecl(tt.gib, env)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", tt.gib, err)
		}

		explained, err := s.Explain(tt.gib)
		if err != nil {
			t.Fatalf("%s: Explain failed: %v", tt.gib, err)
		}
		name, englishText, ok := strings.Cut(strings.TrimPrefix(explained, "declare "), " as ")
		if !ok {
			t.Fatalf("%s: unexpected explanation %q", tt.gib, explained)
		}

		second, err := parse.ParseEnglishType(englishText, env)
		if err != nil {
			t.Fatalf("%s: reparse of %q failed: %v", tt.gib, explained, err)
		}
		sname, _ := parse.ParseName(name)
		second.Name = sname

		// Give first the explained name too, as second got above.
		fname, _ := parse.ParseName(name)
		first.Name = fname

		if !ast.Equal(first, second) {
			t.Fatalf("%s: round trip mismatch:\n%s", tt.gib, astDiff(first, second))
		}
	}
}

// Placeholder eradication and parent consistency over everything the
// parsers produce.
func TestParsedASTsAreClean(t *testing.T) {
	env := parse.Env{Lang: types.LangCPP17, Typedefs: New().reg}
	for _, gib := range []string{
		"int x",
		"int (*x)[10]",
		"int (*a[3])(char)",
		"char *f(int, char **)",
		"void (C::*p)(int)",
		"int (^b)(int)",
	} {
		root, err := parse.ParseDecl(gib, env)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", gib, err)
		}
		var walk func(n *ast.Node)
		walk = func(n *ast.Node) {
			if n == nil {
				return
			}
			if n.Kind == ast.KindPlaceholder {
				t.Fatalf("%s: placeholder survived parsing", gib)
			}
			for _, p := range n.Params {
				walk(p)
			}
			if n.Of != nil {
				if n.Of.Parent != n {
					t.Fatalf("%s: child has wrong parent", gib)
				}
				walk(n.Of)
			}
			if n.Ret != nil {
				if n.Ret.Parent != n {
					t.Fatalf("%s: return type has wrong parent", gib)
				}
				walk(n.Ret)
			}
		}
		walk(root)
	}
}

// East-const equivalence: east and west spellings parse identically.
func TestEastConstEquivalence(t *testing.T) {
	env := parse.Env{Lang: types.LangC99, Typedefs: New().reg}
	west, err := parse.ParseDecl("const int *p", env)
	if err != nil {
		t.Fatalf("west parse failed: %v", err)
	}
	east, err := parse.ParseDecl("int const *p", env)
	if err != nil {
		t.Fatalf("east parse failed: %v", err)
	}
	if !ast.Equal(west, east) {
		t.Fatalf("east/west mismatch:\n%s", astDiff(west, east))
	}
}

// Graph substitution idempotence: trigraph output reparses to the same
// AST as the plain form.
func TestGraphRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Lang = types.LangC89
	s := newTestSession(WithOptions(opts))
	if err := s.Set("trigraphs"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	gib, err := s.Declare("x", "pointer to array 10 of int")
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if !strings.Contains(gib, "??(") {
		t.Fatalf("no trigraphs in %q", gib)
	}

	env := parse.Env{Lang: types.LangC89, Typedefs: s.reg}
	viaGraphs, err := parse.ParseDecl(strings.TrimSuffix(gib, ";"), env)
	if err != nil {
		t.Fatalf("reparse of %q failed: %v", gib, err)
	}
	plain, err := parse.ParseDecl("int (*x)[10]", env)
	if err != nil {
		t.Fatalf("plain parse failed: %v", err)
	}
	if !ast.Equal(viaGraphs, plain) {
		t.Fatalf("trigraph round trip mismatch:\n%s", astDiff(viaGraphs, plain))
	}
}

func TestDigraphOutput(t *testing.T) {
	opts := DefaultOptions()
	opts.Lang = types.LangC99
	s := newTestSession(WithOptions(opts))
	if err := s.Set("digraphs"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	gib, err := s.Declare("a", "array 3 of int")
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if want := "int a<:3:>;"; gib != want {
		t.Fatalf("Declare = %q, want %q", gib, want)
	}
}

func TestTypedefDefineShowExplain(t *testing.T) {
	s := newTestSession(WithLang(types.LangC99))
	if err := s.Typedef("typedef unsigned long ulong"); err != nil {
		t.Fatalf("Typedef failed: %v", err)
	}
	shown, err := s.Show("ulong", "typedef")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if want := "typedef unsigned long ulong;"; shown != want {
		t.Fatalf("Show = %q, want %q", shown, want)
	}

	// The new name is usable in declarations.
	got, err := s.Declare("x", "pointer to ulong")
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if want := "ulong *x;"; got != want {
		t.Fatalf("Declare = %q, want %q", got, want)
	}
}

func TestUsingRequiresCPP11(t *testing.T) {
	s := newTestSession(WithLang(types.LangC99))
	if err := s.Using("word = unsigned int"); err == nil {
		t.Fatal("using accepted in C99")
	}
	s = newTestSession(WithLang(types.LangCPP17))
	if err := s.Using("word = unsigned int"); err != nil {
		t.Fatalf("Using failed: %v", err)
	}
	shown, err := s.Show("word", "using")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if want := "using word = unsigned int;"; shown != want {
		t.Fatalf("Show = %q, want %q", shown, want)
	}
}

func TestCasts(t *testing.T) {
	s := newTestSession(WithLang(types.LangC99))
	got, err := s.Cast("", "x", "pointer to int")
	if err != nil {
		t.Fatalf("Cast failed: %v", err)
	}
	if want := "(int*)x"; got != want {
		t.Fatalf("Cast = %q, want %q", got, want)
	}

	if _, err := s.Cast("static", "x", "pointer to int"); err == nil {
		t.Fatal("static_cast accepted in C")
	}

	s = newTestSession(WithLang(types.LangCPP17))
	got, err = s.Cast("static", "x", "pointer to int")
	if err != nil {
		t.Fatalf("static_cast failed: %v", err)
	}
	if want := "static_cast<int*>(x)"; got != want {
		t.Fatalf("Cast = %q, want %q", got, want)
	}
}

func TestUnknownNameSuggestion(t *testing.T) {
	s := newTestSession(WithLang(types.LangC99))
	_, err := s.Declare("x", "pointer to unsinged")
	if err == nil {
		t.Fatal("unknown name accepted")
	}
	if !strings.Contains(err.Error(), `did you mean "unsigned"`) {
		t.Fatalf("no suggestion in error: %v", err)
	}
}

func TestExplainTypedef(t *testing.T) {
	s := newTestSession(WithLang(types.LangC99))
	got, err := s.Explain("typedef int *ip")
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if want := "define ip as pointer to int"; got != want {
		t.Fatalf("Explain = %q, want %q", got, want)
	}
}

func TestExecuteDispatch(t *testing.T) {
	var out strings.Builder
	s := newTestSession(WithOutput(&out))
	if err := s.Execute("set c++17"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if s.Lang() != types.LangCPP17 {
		t.Fatalf("lang = %v", s.Lang())
	}
	if err := s.Execute("declare x as pointer to int"); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if got, want := out.String(), "int *x;\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if err := s.Execute("quit"); err != ErrQuit {
		t.Fatalf("quit returned %v", err)
	}
}

func TestSetEastConst(t *testing.T) {
	s := newTestSession(WithLang(types.LangC99))
	if err := s.Set("noeast-const"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Declare("x", "pointer to array 10 of const int")
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if want := "const int (*x)[10];"; got != want {
		t.Fatalf("Declare = %q, want %q", got, want)
	}
}

func TestPredefinedGating(t *testing.T) {
	s := newTestSession(WithLang(types.LangC89))
	// int8_t is C99+; unknown in C89.
	if _, err := s.Declare("x", "pointer to int8_t"); err == nil {
		t.Fatal("int8_t accepted in C89")
	}
	s = newTestSession(WithLang(types.LangC99))
	if _, err := s.Declare("x", "pointer to int8_t"); err != nil {
		t.Fatalf("int8_t rejected in C99: %v", err)
	}
}
