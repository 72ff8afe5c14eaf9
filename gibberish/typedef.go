package gibberish

import (
	"fmt"
	"strings"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/types"
)

// PrintTypedef renders a typedef either as a typedef or a using
// declaration, wrapping scoped names in the nested namespace/class
// declarations a typedef requires, since a type name cannot itself be
// scoped in a typedef declaration.
func PrintTypedef(td *ast.Typedef, flags Flags, opts Options) string {
	var b strings.Builder

	closeBraces := 0
	var scopeType types.ID

	name := td.Name
	if named := ast.FindName(td.AST, ast.VisitDown); named != nil {
		name = named.Name
	}

	if name.Count() > 1 {
		scopeType = name[0].Type
		if scopeType == types.None {
			scopeType = types.Namespace
		}
		if scopeType != types.Namespace || opts.Lang >= types.LangCPP17 || types.IsC(opts.Lang) {
			// Nested class/struct/union declarations work in every C++;
			// nested namespace declarations need C++17:
			//      namespace S::T { typedef int I; }
			// When printing in C we also use this form since C has no
			// namespaces at all.
			scopeType = name[len(name)-2].Type
			if scopeType == types.None || scopeType == types.Scope {
				scopeType = types.Namespace
			}
			fmt.Fprintf(&b, "%s %s %s ", types.Name(scopeType), name.ScopeName(), braceOpen(opts))
			closeBraces = 1
		} else {
			// Earlier C++ needs one declaration per namespace level:
			//      namespace S { namespace T { typedef int I; } }
			for _, sc := range name[:len(name)-1] {
				st := sc.Type
				if st == types.None || st == types.Scope {
					st = types.Namespace
				}
				fmt.Fprintf(&b, "%s %s %s ", types.Name(st), sc.Name, braceOpen(opts))
			}
			closeBraces = name.Count() - 1
		}
	}

	isECSU := td.AST.Kind&ast.KindAnyECSU != 0

	// All types except ECSU types need "typedef"; ECSU types need it only
	// in C, where a bare struct S is merely a tag, not a type.
	printingTypedef := flags&FlagTypedef != 0 &&
		(!isECSU || types.IsC(opts.Lang))

	// "using" exists only in C++ and cannot name an elaborated type.
	printingUsing := flags&FlagUsing != 0 && !isECSU

	if printingTypedef {
		b.WriteString("typedef ")
	} else if printingUsing {
		fmt.Fprintf(&b, "using %s = ", name.Local())
	}

	bodyFlags := FlagTypedef
	if printingUsing {
		bodyFlags = FlagUsing
	}
	g := newState(&b, bodyFlags, printingTypedef, opts)
	g.printAST(td.AST)

	if closeBraces > 0 {
		b.WriteString(";")
		for i := 0; i < closeBraces; i++ {
			b.WriteString(" " + braceClose(opts))
		}
	}
	if opts.Semicolon && closeBraces == 0 {
		b.WriteString(";")
	}
	return b.String()
}

func braceOpen(opts Options) string {
	g := &state{opts: opts}
	return g.graphToken("{")
}

func braceClose(opts Options) string {
	g := &state{opts: opts}
	return g.graphToken("}")
}

// CastKind identifies a C++ named cast, or a plain C cast.
type CastKind int

const (
	CastC CastKind = iota
	CastConst
	CastDynamic
	CastReinterpret
	CastStatic
)

// CastName returns the C++ spelling of kind, or "" for a C cast.
func CastName(kind CastKind) string {
	switch kind {
	case CastConst:
		return "const_cast"
	case CastDynamic:
		return "dynamic_cast"
	case CastReinterpret:
		return "reinterpret_cast"
	case CastStatic:
		return "static_cast"
	}
	return ""
}

// PrintCast renders a complete cast of name into the type of n.
func PrintCast(kind CastKind, name string, n *ast.Node, opts Options) string {
	typ := Print(n, FlagCast, opts)
	if kind == CastC {
		return fmt.Sprintf("(%s)%s", typ, name)
	}
	return fmt.Sprintf("%s<%s>(%s)", CastName(kind), typ, name)
}
