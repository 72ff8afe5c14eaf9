// Package gibberish pretty-prints declaration ASTs as C/C++ source text,
// handling the postfix reshuffling C declarator syntax requires: a pointer
// to an array must print as (*x)[N], not *x[N].
package gibberish

import (
	"fmt"
	"strings"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/types"
)

// Graph selects di/trigraph substitution on output.
type Graph int

const (
	GraphNone Graph = iota
	GraphDi
	GraphTri
)

// Flags adjust what kind of gibberish is printed.
type Flags uint

const (
	FlagDecl Flags = 1 << iota // an ordinary declaration
	FlagCast                   // the type part of a cast
	FlagTypedef                // a typedef declaration
	FlagUsing                  // a C++11 using declaration
	FlagOmitType               // omit the base type when it was already printed
)

// Options carries the printing options the session holds.
type Options struct {
	Lang        types.Lang
	EastConst   bool
	AltTokens   bool
	Graph       Graph
	Semicolon   bool
	ExplicitInt bool
}

// state is the printer state threaded through one traversal.
type state struct {
	b                *strings.Builder
	flags            Flags
	opts             Options
	postfix          bool
	printedSpace     bool
	printingTypedef  bool
	skipNameForUsing bool
}

func newState(b *strings.Builder, flags Flags, printingTypedef bool, opts Options) *state {
	g := &state{b: b, flags: flags, opts: opts, printingTypedef: printingTypedef}
	if flags&FlagUsing != 0 {
		g.skipNameForUsing = true
	}
	if flags&FlagOmitType != 0 {
		g.printedSpace = true
	}
	return g
}

// Print renders n as a C/C++ declaration or cast type in the selected
// dialect, without the trailing semicolon or newline.
func Print(n *ast.Node, flags Flags, opts Options) string {
	var b strings.Builder
	if flags&FlagOmitType == 0 && n.Align.Kind != ast.AlignNone {
		switch n.Align.Kind {
		case ast.AlignExpr:
			fmt.Fprintf(&b, "%s(%d) ", alignasSpelling(opts.Lang), n.Align.Expr)
		case ast.AlignType:
			fmt.Fprintf(&b, "%s(%s) ", alignasSpelling(opts.Lang),
				Print(n.Align.Type, FlagDecl, opts))
		}
	}
	g := newState(&b, flags, false, opts)
	g.printAST(n)
	return b.String()
}

func alignasSpelling(lang types.Lang) string {
	if types.IsC(lang) && lang < types.LangC23 {
		return "_Alignas"
	}
	return "alignas"
}

func (g *state) puts(s string) { g.b.WriteString(s) }

func (g *state) printf(f string, a ...interface{}) { fmt.Fprintf(g.b, f, a...) }

// spaceOnce prints a space only if one hasn't been printed yet.
func (g *state) spaceOnce() {
	if !g.printedSpace {
		g.printedSpace = true
		g.puts(" ")
	}
}

// typeName prints a type id honoring east-const: with east-const on, the
// cv-qualifiers follow the base type. Standard attributes print in their
// [[...]] form.
func (g *state) typeName(id types.ID) string {
	id = g.withExplicitInt(id)

	prefix := ""
	if attrs := id & types.MaskAttr &^ types.AnyMSCCall; attrs != types.None {
		var names []string
		for bit := types.ID(1); bit != types.None; bit <<= 1 {
			if attrs&bit != types.None {
				names = append(names, types.Name(bit))
			}
		}
		prefix = g.graphToken("[[") + strings.Join(names, ", ") + g.graphToken("]]")
		id &^= attrs
		if id == types.None {
			return prefix
		}
		prefix += " "
	}

	if !g.opts.EastConst {
		return prefix + types.Name(id)
	}
	cv := id & types.CV
	if cv == types.None {
		return prefix + types.Name(id)
	}
	rest := types.Name(id &^ types.CV)
	if rest == "" {
		return prefix + types.Name(cv)
	}
	return prefix + rest + " " + types.Name(cv)
}

// withExplicitInt adds the int bit to pure modifier types (short, long,
// unsigned) when the explicit-int option is on.
func (g *state) withExplicitInt(id types.ID) types.ID {
	if !g.opts.ExplicitInt {
		return id
	}
	base := id & types.MaskBase
	if base != types.None && base&^(types.IntModifier|types.Int) == types.None {
		id |= types.Int
	}
	return id
}

// printAST prints n in prefix order, descending into the innermost child
// before emitting postfix pieces.
//
// This is not a Visit callback: gibberish needs pre-order traversal with
// state unwinding, so it recurses by hand.
func (g *state) printAST(n *ast.Node) {
	t := n.Type

	var cvQual, refQual, mscCall types.ID
	var isDefault, isDelete, isFinal, isNoexcept, isOverride, isPure, isThrow bool

	switch n.Kind {
	case ast.KindConstructor, ast.KindDestructor, ast.KindUserDefConversion,
		ast.KindFunction, ast.KindOperator, ast.KindLambda, ast.KindUserDefLiteral,
		ast.KindArray, ast.KindAppleBlock:
		if n.Kind&(ast.KindConstructor|ast.KindDestructor|ast.KindUserDefConversion) != 0 {
			// None of these have a return type, so no space is needed
			// before the name; lie and set the flag.
			g.printedSpace = true
		}
		if n.Kind&ast.KindAnyFunctionLike != 0 {
			// Trailing function things aren't printed as part of the
			// type up front; strip them here, print them after the
			// parameters.
			cvQual = t & types.MaskQual
			refQual = t & types.MaskRefQual
			isDefault = t&types.Default != types.None
			isDelete = t&types.Delete != types.None
			isFinal = t&types.Final != types.None
			isNoexcept = t&types.Noexcept != types.None
			isPure = t&types.PureVirtual != types.None
			isThrow = t&types.Throw != types.None
			// override prints only if final doesn't.
			isOverride = !isFinal && t&types.Override != types.None

			t &^= types.MaskQual | types.MaskRefQual | types.Default |
				types.Delete | types.Final | types.Noexcept |
				types.Override | types.PureVirtual | types.Throw
			if isOverride || isFinal {
				// If either override or final prints, virtual shouldn't.
				t &^= types.Virtual
			}

			// Microsoft calling conventions print specially.
			mscCall = t & types.AnyMSCCall
			t &^= types.AnyMSCCall

			// Dialect chooses between noexcept and throw().
			if g.opts.Lang < types.LangCPP11 {
				if isNoexcept {
					isNoexcept, isThrow = false, true
				}
			} else if isThrow {
				isThrow, isNoexcept = false, true
			}
		}

		if t != types.None {
			g.printf("%s ", g.typeName(t))
		}
		if n.Kind == ast.KindUserDefConversion {
			if !n.Name.Empty() {
				g.printf("%s::", n.Name.Full())
			}
			g.puts("operator ")
		}
		if child := spineChild(n); child != nil {
			g.printAST(child)
		}
		if mscCall != types.None && !parentIsPointer(n) {
			// A function with a Microsoft calling convention that isn't
			// pointed to prints the convention here; pointers to such
			// functions print it inside the parentheses instead.
			g.printf(" %s", types.Name(mscCall))
		}
		if !g.postfix {
			g.postfix = true
			if !g.skipNameForUsing && g.flags&FlagCast == 0 {
				g.spaceOnce()
			}
			g.printPostfix(n)
		}
		if cvQual != types.None {
			g.printf(" %s", types.Name(cvQual))
		}
		if refQual != types.None {
			if refQual&types.RefQual != types.None {
				g.puts(g.altToken(" &", " bitand"))
			} else {
				g.puts(g.altToken(" &&", " and"))
			}
		}
		if isNoexcept {
			g.puts(" noexcept")
		} else if isThrow {
			g.printf(" throw%s%s", g.graphToken("("), g.graphToken(")"))
		}
		if isOverride {
			g.puts(" override")
		} else if isFinal {
			g.puts(" final")
		} else if isPure {
			g.puts(" = 0")
		}
		if isDefault {
			g.puts(" = default")
		} else if isDelete {
			g.puts(" = delete")
		}

	case ast.KindBuiltin:
		if g.flags&FlagOmitType == 0 {
			g.puts(g.typeName(n.Type))
		}
		g.printSpaceASTName(n)
		g.printBitWidth(n)

	case ast.KindEnum, ast.KindClassStructUnion:
		if n.Kind == ast.KindEnum {
			// An enum class prints as just "enum" when doing an
			// elaborated-type-specifier.
			t &^= types.Struct | types.Class
		}
		if g.opts.EastConst {
			cvQual = t & types.CV
			t &^= types.CV
		}
		g.puts(types.Name(t))
		if g.flags&FlagTypedef == 0 || g.printingTypedef {
			if types.Name(t) != "" {
				g.puts(" ")
			}
			g.puts(n.ECSUName.Full())
		}
		if n.Of != nil {
			g.puts(" : ")
			g.printAST(n.Of)
		}
		if cvQual != types.None {
			g.printf(" %s", types.Name(cvQual))
		}
		g.printSpaceASTName(n)

	case ast.KindName:
		if g.opts.Lang > types.LangCKNR {
			// After K&R C a bare parameter name prints as an explicit int.
			g.puts("int")
		}
		if g.flags&FlagCast == 0 {
			if g.opts.Lang > types.LangCKNR {
				g.puts(" ")
			}
			g.printASTName(n)
		}

	case ast.KindPointer, ast.KindReference, ast.KindRvalueReference:
		if g.flags&FlagOmitType == 0 {
			if storage := t & types.MaskStorage; storage != types.None {
				g.printf("%s ", types.Name(storage))
			}
		}
		g.printAST(n.Of)
		if g.spaceBeforePtrRef(n) {
			g.spaceOnce()
		}
		if !g.postfix {
			g.printQualName(n)
		}

	case ast.KindPointerToMember:
		g.printAST(n.Of)
		if !g.postfix {
			g.puts(" ")
			g.printQualName(n)
		}

	case ast.KindTypedef:
		if g.flags&FlagOmitType == 0 {
			// The type may hold more than the plain typedef bit, e.g.
			// a const.
			extra := n.Type &^ types.TypedefType
			if extra != types.None && !g.opts.EastConst {
				g.printf("%s ", types.Name(extra))
			}
			// Force printing of the aliased type's name even under a
			// "using" declaration: a typedef of a typedef names it.
			orig := g.skipNameForUsing
			g.skipNameForUsing = false
			g.puts(n.Def.Name.Full())
			g.skipNameForUsing = orig
			if extra != types.None && g.opts.EastConst {
				g.printf(" %s", types.Name(extra))
			}
		}
		g.printSpaceASTName(n)
		g.printBitWidth(n)

	case ast.KindVariadic:
		g.puts("...")
	}
}

func spineChild(n *ast.Node) *ast.Node {
	if n.Of != nil {
		return n.Of
	}
	return n.Ret
}

func parentIsPointer(n *ast.Node) bool {
	return n.Parent != nil && n.Parent.Kind == ast.KindPointer
}

// printPostfix prints the right-hand side of a declarator — array sizes,
// parameter lists — wrapping the declarator in parentheses wherever a
// pointer-like parent binds less tightly than an array or function.
func (g *state) printPostfix(n *ast.Node) {
	parent := n.Parent
	if parent != nil {
		switch {
		case parent.Kind&(ast.KindArray|ast.KindAnyFunctionLike) != 0:
			g.printPostfix(parent)

		case parent.Kind&(ast.KindAnyPointer|ast.KindAnyReference) != 0:
			switch n.Kind {
			case ast.KindAppleBlock:
				g.puts("(^")
			case ast.KindPointer:
				// Consecutive pointers collapse: (**a), not (*(*a)).
			default:
				g.puts("(")
				if msc := n.Type & types.AnyMSCCall; msc != types.None {
					// A pointer to a function with a Microsoft calling
					// convention prints it just inside the paren:
					// void (__stdcall *pf)(int)
					g.printf("%s ", types.Name(msc))
				}
			}
			g.printQualName(parent)
			if parent.Parent != nil && parent.Parent.IsParent() {
				g.printPostfix(parent)
			}
			if n.Kind&ast.KindAnyPointer == 0 {
				g.puts(")")
			}
		}
	} else {
		// Root of the AST: this is where the declared name prints.
		if n.Kind == ast.KindAppleBlock {
			g.puts("(^")
		}
		g.printSpaceASTName(n)
		if n.Kind == ast.KindAppleBlock {
			g.puts(")")
		}
	}

	// Unwinding the recursion: print sizes and parameter lists in
	// root-to-leaf order.
	switch n.Kind {
	case ast.KindArray:
		g.printArraySize(n)
	case ast.KindAppleBlock, ast.KindConstructor, ast.KindFunction,
		ast.KindOperator, ast.KindLambda, ast.KindUserDefLiteral:
		g.puts(g.graphToken("("))
		g.printParams(n)
		g.puts(g.graphToken(")"))
	case ast.KindDestructor, ast.KindUserDefConversion:
		g.printf("%s%s", g.graphToken("("), g.graphToken(")"))
	}
}

func (g *state) printArraySize(n *ast.Node) {
	g.puts(g.graphToken("["))
	if n.ArrayQual != types.None {
		g.printf("%s ", types.Name(n.ArrayQual))
	}
	switch n.Size {
	case ast.SizeNone:
	case ast.SizeVariable:
		g.puts("*")
	default:
		g.printf("%d", n.Size)
	}
	g.puts(g.graphToken("]"))
}

func (g *state) printBitWidth(n *ast.Node) {
	if n.BitWidth > 0 {
		g.printf(" : %d", n.BitWidth)
	}
}

// printParams prints a comma-separated parameter list, each with a fresh
// printer state.
func (g *state) printParams(n *ast.Node) {
	for i, p := range n.Params {
		if i > 0 {
			g.puts(", ")
		}
		pg := newState(g.b, g.flags&^FlagOmitType, false, g.opts)
		pg.printAST(p)
	}
}

// printQualName prints a *, &, && or C::* operator together with its
// qualifiers and the declarator name, if any.
func (g *state) printQualName(n *ast.Node) {
	qual := n.Type & types.MaskQual

	switch n.Kind {
	case ast.KindPointer:
		if qual != types.None && g.flags&FlagCast == 0 && !isPtrToFunction(n) {
			g.spaceOnce()
		}
		g.puts("*")
	case ast.KindPointerToMember:
		g.printf("%s::*", n.ClassName.Full())
	case ast.KindReference:
		if g.opts.AltTokens {
			g.spaceOnce()
			g.puts("bitand ")
		} else {
			g.puts("&")
		}
	case ast.KindRvalueReference:
		if g.opts.AltTokens {
			g.spaceOnce()
			g.puts("and ")
		} else {
			g.puts("&&")
		}
	}

	if qual != types.None {
		g.puts(types.Name(qual))
		if g.flags&(FlagDecl|FlagTypedef) != 0 && ast.FindName(n, ast.VisitUp) != nil {
			// A name is still to come; separate it from the qualifier:
			// char *const p
			g.puts(" ")
		}
	}
	g.printASTName(n)
}

func isPtrToFunction(n *ast.Node) bool {
	of := ast.Untypedef(n.Of)
	return of != nil && of.Kind == ast.KindFunction
}

// printASTName prints n's name: the local name within typedef printing,
// the full name otherwise, or nothing when a "using" head already named it.
func (g *state) printASTName(n *ast.Node) {
	if g.skipNameForUsing {
		// The name was printed in the "using NAME =" head; print nothing
		// here but swallow the space a name would have consumed.
		g.skipNameForUsing = false
		g.printedSpace = true
		return
	}
	if g.flags&FlagTypedef != 0 {
		g.puts(n.Name.Local())
		return
	}
	g.puts(n.Name.Full())
}

// printSpaceASTName prints a space (once) then the node's name, if any —
// except in casts, which have no names.
func (g *state) printSpaceASTName(n *ast.Node) {
	if g.flags&FlagCast != 0 {
		return
	}
	switch n.Kind {
	case ast.KindConstructor:
		g.puts(n.Name.Full())
	case ast.KindDestructor:
		if n.Name.Count() > 1 {
			g.printf("%s::", n.Name.ScopeName())
		}
		if g.opts.AltTokens {
			g.puts("compl ")
		} else {
			g.puts("~")
		}
		g.puts(n.Name.Local())
	case ast.KindOperator:
		g.spaceOnce()
		if !n.Name.Empty() {
			g.printf("%s::", n.Name.Full())
		}
		sep := ""
		if n.OperName != "" && isLetter(n.OperName[0]) {
			sep = " "
		}
		g.printf("operator%s%s", sep, n.OperName)
	case ast.KindUserDefConversion:
		// Conversions have no name.
	case ast.KindUserDefLiteral:
		g.spaceOnce()
		if n.Name.Count() > 1 {
			g.printf("%s::", n.Name.ScopeName())
		}
		g.printf("operator\"\" %s", n.Name.Local())
	default:
		if !n.Name.Empty() {
			if !g.skipNameForUsing {
				g.spaceOnce()
			}
			g.printASTName(n)
		}
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// spaceBeforePtrRef reports whether a space should print before a *, &, or
// &&: adjacent to the name in declarations, adjacent to the type for
// nameless parameters and casts.
func (g *state) spaceBeforePtrRef(n *ast.Node) bool {
	if g.skipNameForUsing {
		return false
	}
	if g.flags&FlagCast != 0 {
		return false
	}
	return ast.FindName(n, ast.VisitUp) != nil
}

// altToken returns alt when the alternative-tokens option is on and the
// dialect has alternative tokens (C95 and later, or any C++).
func (g *state) altToken(token, alt string) string {
	if g.opts.AltTokens && g.opts.Lang >= types.LangC95 {
		return alt
	}
	return token
}

// graphToken returns the digraph or trigraph spelling of token when the
// graph option is on and the dialect supports it. Digraphs exist in C95 and
// later; trigraphs from C89 through C++14.
func (g *state) graphToken(token string) string {
	if g.opts.AltTokens {
		return token
	}
	switch g.opts.Graph {
	case GraphDi:
		if g.opts.Lang >= types.LangC95 {
			switch token {
			case "#":
				return "%:"
			case "##":
				return "%:%:"
			case "[":
				return "<:"
			case "]":
				return ":>"
			case "[[":
				return "<:<:"
			case "]]":
				return ":>:>"
			case "{":
				return "<%"
			case "}":
				return "%>"
			}
		}
	case GraphTri:
		if g.opts.Lang >= types.LangC89 && g.opts.Lang <= types.LangCPP14 {
			switch token {
			case "#":
				return "??="
			case "[":
				return "??("
			case "]":
				return "??)"
			case "[[":
				return "??(??("
			case "]]":
				return "??)??)"
			case "\\":
				return "??/"
			case "^":
				return "??'"
			case "{":
				return "??<"
			case "}":
				return "??>"
			case "|":
				return "??!"
			case "~":
				return "??-"
			}
		}
	}
	return token
}
