// Package english pretty-prints declaration ASTs as the pseudo-English
// accepted and produced by the translator.
package english

import (
	"fmt"
	"strings"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/types"
)

// Print renders n as pseudo-English with no trailing punctuation, e.g.
// "pointer to array 10 of const int".
func Print(n *ast.Node) string {
	var b strings.Builder
	printAST(&b, n)
	if n != nil && n.Align.Kind != ast.AlignNone {
		printAlign(&b, n.Align)
	}
	return strings.TrimSpace(b.String())
}

// printAST walks the declarator spine top-down, emitting one phrase per
// node. Parameter lists are printed inline as they are passed.
func printAST(b *strings.Builder, n *ast.Node) {
	for ; n != nil; n = spineChild(n) {
		switch n.Kind {
		case ast.KindArray:
			if storage := n.Type &^ types.MaskQual; storage != types.None {
				fmt.Fprintf(b, "%s ", types.Name(storage))
			}
			if quals := n.Type & types.MaskQual; quals != types.None {
				fmt.Fprintf(b, "%s ", types.Name(quals))
			}
			if n.Size == ast.SizeVariable {
				b.WriteString("variable length ")
			}
			b.WriteString("array ")
			if n.ArrayQual != types.None {
				fmt.Fprintf(b, "%s ", types.Name(n.ArrayQual))
			}
			if n.Size >= 0 {
				fmt.Fprintf(b, "%d ", n.Size)
			}
			b.WriteString("of ")

		case ast.KindPointer, ast.KindReference, ast.KindRvalueReference:
			if id := n.Type; id != types.None {
				fmt.Fprintf(b, "%s ", types.Name(id))
			}
			b.WriteString(kindPhrase(n.Kind))
			b.WriteString(" to ")

		case ast.KindPointerToMember:
			if id := n.Type; id != types.None {
				fmt.Fprintf(b, "%s ", types.Name(id))
			}
			scope := "class"
			if len(n.ClassName) > 0 && n.ClassName[len(n.ClassName)-1].Type&types.Struct != types.None {
				scope = "struct"
			}
			fmt.Fprintf(b, "pointer to member of %s %s of ", scope, n.ClassName.Full())

		case ast.KindAppleBlock, ast.KindFunction, ast.KindOperator, ast.KindLambda,
			ast.KindConstructor, ast.KindDestructor,
			ast.KindUserDefConversion, ast.KindUserDefLiteral:
			printFunction(b, n)
			if n.Ret == nil {
				return
			}

		case ast.KindBuiltin:
			b.WriteString(types.Name(n.Type))
			printBitWidth(b, n)

		case ast.KindEnum, ast.KindClassStructUnion:
			fmt.Fprintf(b, "%s %s", types.Name(n.Type), n.ECSUName.Full())
			if n.Of != nil {
				b.WriteString(" of type ")
			}

		case ast.KindTypedef:
			if extra := n.Type &^ types.TypedefType; extra != types.None {
				fmt.Fprintf(b, "%s ", types.Name(extra))
			}
			b.WriteString(n.Def.Name.Full())
			printBitWidth(b, n)

		case ast.KindName:
			b.WriteString(n.Name.Full())

		case ast.KindVariadic:
			b.WriteString("...")
		}
	}
}

// spineChild is the next node to print after n: the array element, the
// pointee, or a function's return type.
func spineChild(n *ast.Node) *ast.Node {
	if n.Of != nil {
		return n.Of
	}
	return n.Ret
}

func kindPhrase(k ast.Kind) string {
	switch k {
	case ast.KindPointer:
		return "pointer"
	case ast.KindReference:
		return "reference"
	case ast.KindRvalueReference:
		return "rvalue reference"
	}
	return k.String()
}

func printFunction(b *strings.Builder, n *ast.Node) {
	if id := n.Type; id != types.None {
		fmt.Fprintf(b, "%s ", types.Name(id))
	}
	switch n.FuncFlags {
	case ast.FuncMember:
		b.WriteString("member ")
	case ast.FuncNonMember:
		b.WriteString("non-member ")
	}

	switch n.Kind {
	case ast.KindAppleBlock:
		b.WriteString("block")
	case ast.KindFunction:
		b.WriteString("function")
	case ast.KindOperator:
		b.WriteString("operator")
	case ast.KindLambda:
		b.WriteString("lambda")
	case ast.KindConstructor:
		b.WriteString("constructor")
	case ast.KindDestructor:
		b.WriteString("destructor")
	case ast.KindUserDefConversion:
		b.WriteString("user-defined conversion operator")
	case ast.KindUserDefLiteral:
		b.WriteString("user-defined literal")
	}

	if len(n.Params) > 0 {
		b.WriteString(" (")
		for i, p := range n.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			printParam(b, p)
		}
		b.WriteString(")")
	}

	if n.Ret != nil {
		b.WriteString(" returning ")
	}
}

// printParam prints one parameter: "<name> as <english>" when a typed
// parameter has a name, just the English when it doesn't, and just the
// name for a K&R untyped parameter.
func printParam(b *strings.Builder, p *ast.Node) {
	if p.Kind == ast.KindName || p.Kind == ast.KindVariadic {
		printAST(b, p)
		return
	}
	if named := ast.FindName(p, ast.VisitDown); named != nil {
		fmt.Fprintf(b, "%s as ", named.Name.Full())
	}
	// Parameter names were printed above, so print only the type here.
	var inner strings.Builder
	printAST(&inner, p)
	b.WriteString(strings.TrimSpace(inner.String()))
}

func printBitWidth(b *strings.Builder, n *ast.Node) {
	if n.BitWidth > 0 {
		fmt.Fprintf(b, " width %d bits", n.BitWidth)
	}
}

func printAlign(b *strings.Builder, a ast.Alignment) {
	switch a.Kind {
	case ast.AlignExpr:
		fmt.Fprintf(b, " aligned as %d bytes", a.Expr)
	case ast.AlignType:
		var inner strings.Builder
		printAST(&inner, a.Type)
		fmt.Fprintf(b, " aligned as %s", strings.TrimSpace(inner.String()))
	}
}
