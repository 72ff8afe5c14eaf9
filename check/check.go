// Package check validates completed declaration ASTs against the active
// language dialect, producing user-facing diagnostics.
package check

import (
	"fmt"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/types"
)

// Severity classifies a diagnostic. Errors suppress output of the
// declaration; warnings do not.
type Severity int

const (
	Error Severity = iota
	Warning
)

// Diagnostic is one problem found in a declaration.
type Diagnostic struct {
	Loc      types.Loc
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	if d.Severity == Warning {
		return "warning: " + d.Message
	}
	return "error: " + d.Message
}

// HasError reports whether diags contains at least one error.
func HasError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

type checker struct {
	lang  types.Lang
	diags []Diagnostic
}

// Declaration checks an entire AST for semantic errors and warnings in the
// given dialect. All problems are collected so a single declaration can
// report several at once. The checker may assign implicit int where the
// dialect permits it.
func Declaration(root *ast.Node, lang types.Lang) []Diagnostic {
	c := &checker{lang: lang}
	c.node(root)
	return c.diags
}

// Cast checks an AST used as the target type of a cast. Beyond the
// declaration rules, casts cannot carry storage classes or name arrays or
// functions as their target.
func Cast(root *ast.Node, lang types.Lang) []Diagnostic {
	c := &checker{lang: lang}
	switch root.Kind {
	case ast.KindArray:
		c.errorf(root.Loc, "cast into array is illegal; cast into pointer instead")
	case ast.KindFunction, ast.KindAppleBlock, ast.KindOperator:
		c.errorf(root.Loc, "cast into function is illegal; cast into pointer to function instead")
	}
	if storage := root.Type & types.StorageOnly; storage != types.None {
		c.errorf(root.Loc, "%s is illegal in a cast", types.NameError(storage))
	}
	c.node(root)
	return c.diags
}

func (c *checker) errorf(loc types.Loc, format string, args ...interface{}) {
	c.diags = append(c.diags, Diagnostic{Loc: loc, Severity: Error, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) warnf(loc types.Loc, format string, args ...interface{}) {
	c.diags = append(c.diags, Diagnostic{Loc: loc, Severity: Warning, Message: fmt.Sprintf(format, args...)})
}

// kindLangs maps node kinds to the dialects that have them. Kinds absent
// from the map exist everywhere.
var kindLangs = map[ast.Kind]types.Lang{
	ast.KindReference:         types.LangCPPAny,
	ast.KindRvalueReference:   types.CPPMin(types.LangCPP11),
	ast.KindPointerToMember:   types.LangCPPAny,
	ast.KindConstructor:       types.LangCPPAny,
	ast.KindDestructor:        types.LangCPPAny,
	ast.KindOperator:          types.LangCPPAny,
	ast.KindLambda:            types.CPPMin(types.LangCPP11),
	ast.KindUserDefConversion: types.LangCPPAny,
	ast.KindUserDefLiteral:    types.CPPMin(types.LangCPP11),
	ast.KindEnum:              types.Min(types.LangC89),
}

// node checks one node, then its parameters, then its child along the
// declarator spine, so diagnostics come out in reading order.
func (c *checker) node(n *ast.Node) {
	if n == nil {
		return
	}

	c.kindGate(n)
	c.typeGate(n)

	switch n.Kind {
	case ast.KindBuiltin:
		c.builtin(n)
	case ast.KindName:
		c.nameOnly(n)
	case ast.KindArray:
		c.array(n)
	case ast.KindPointer:
		c.pointer(n)
	case ast.KindReference, ast.KindRvalueReference:
		c.reference(n)
	case ast.KindPointerToMember:
		if n.ClassName.Empty() {
			c.errorf(n.Loc, "pointer to member requires a class name")
		}
	case ast.KindEnum:
		if n.Of != nil && c.lang&types.CPPMin(types.LangCPP11) == types.LangNone {
			c.errorf(n.Loc, "enum with underlying type is not supported%s",
				types.Which(types.CPPMin(types.LangCPP11), c.lang))
		}
	case ast.KindFunction, ast.KindOperator, ast.KindAppleBlock, ast.KindLambda:
		c.function(n)
	case ast.KindConstructor:
		if bad := n.Type &^ types.ConstructorOK; bad != types.None {
			c.errorf(n.Loc, "constructors cannot be %s", types.NameError(bad))
		}
		c.params(n)
	case ast.KindDestructor:
		if bad := n.Type &^ types.DestructorOK; bad != types.None {
			c.errorf(n.Loc, "destructors cannot be %s", types.NameError(bad))
		}
		if len(n.Params) > 0 {
			c.errorf(n.Loc, "destructors cannot have parameters")
		}
	case ast.KindUserDefConversion:
		if bad := n.Type &^ types.UserDefConvOK; bad != types.None {
			c.errorf(n.Loc, "user-defined conversion operators cannot be %s", types.NameError(bad))
		}
	case ast.KindPlaceholder:
		// Placeholders must never survive to checking.
		c.errorf(n.Loc, "internal error: placeholder in completed declaration")
	}

	c.alignment(n)
	c.bitField(n)

	for _, p := range n.Params {
		c.node(p)
	}
	if n.Of != nil {
		c.node(n.Of)
	}
	if n.Ret != nil {
		c.node(n.Ret)
	}
}

// kindGate reports kinds the dialect does not have.
func (c *checker) kindGate(n *ast.Node) {
	legal, gated := kindLangs[n.Kind]
	if !gated || legal&c.lang != types.LangNone {
		return
	}
	c.errorf(n.Loc, "%s is not supported%s", n.Kind.String(), types.Which(legal, c.lang))
}

// typeGate reports type bits the dialect does not have, bit by bit so each
// message names the offending token.
func (c *checker) typeGate(n *ast.Node) {
	for bit := types.ID(1); bit != 0; bit <<= 1 {
		if n.Type&bit == types.None {
			continue
		}
		legal := types.LangOf(bit)
		if legal&c.lang == types.LangNone {
			c.errorf(n.Loc, "%s is not supported%s", types.NameError(bit), types.Which(legal, c.lang))
		}
	}
}

// builtin checks base-type modifier combinations and implicit int.
func (c *checker) builtin(n *ast.Node) {
	base := n.Type & types.MaskBase
	if base == types.None {
		c.implicitInt(n)
		return
	}
	if n.Type&(types.Signed|types.Unsigned) != types.None {
		integral := types.Char | types.Short | types.Int | types.Long | types.LongLong
		if base&^(types.Signed|types.Unsigned) != types.None &&
			base&integral == types.None {
			c.errorf(n.Loc, "%s cannot be %s",
				types.NameError(base&^(types.Signed|types.Unsigned)),
				types.NameError(n.Type&(types.Signed|types.Unsigned)))
		}
	}
}

// implicitInt handles a builtin node with no base type: K&R C allows it
// silently, C89 through C17 with a warning, and C23 and C++ not at all.
func (c *checker) implicitInt(n *ast.Node) {
	switch {
	case c.lang == types.LangCKNR:
		n.Type |= types.Int
	case c.lang&types.CMax(types.LangC17) != types.LangNone:
		n.Type |= types.Int
		c.warnf(n.Loc, "missing type specifier; int is assumed")
	default:
		c.errorf(n.Loc, "declaration requires a type specifier")
	}
}

// nameOnly checks a bare-identifier parameter, legal only as a K&R C
// untyped parameter.
func (c *checker) nameOnly(n *ast.Node) {
	switch {
	case c.lang == types.LangCKNR:
		// Fine: untyped parameters are the K&R norm.
	case c.lang&types.CMax(types.LangC17) != types.LangNone:
		c.warnf(n.Loc, "missing type specifier for %q; int is assumed", n.Name.Full())
	default:
		c.errorf(n.Loc, "%q requires a type specifier", n.Name.Full())
	}
}

func (c *checker) array(n *ast.Node) {
	if n.Size == 0 {
		c.errorf(n.Loc, "array size must be greater than 0")
	}
	if n.Size == ast.SizeVariable && c.lang&types.CMin(types.LangC99) == types.LangNone {
		c.errorf(n.Loc, "variable length array is not supported%s",
			types.Which(types.CMin(types.LangC99), c.lang))
	}
	if n.ArrayQual != types.None && c.lang&types.CMin(types.LangC99) == types.LangNone {
		c.errorf(n.Loc, "qualified array parameter is not supported%s",
			types.Which(types.CMin(types.LangC99), c.lang))
	}
	of := ast.Untypedef(n.Of)
	if of == nil {
		return
	}
	switch {
	case of.Kind&ast.KindAnyReference != 0:
		c.errorf(n.Loc, "array of reference is illegal")
	case of.Kind&ast.KindAnyFunctionLike != 0:
		c.errorf(n.Loc, "array of function is illegal; use array of pointer to function instead")
	case of.Kind == ast.KindBuiltin && of.Type&types.MaskBase == types.Void:
		c.errorf(n.Loc, "array of void is illegal; use array of pointer to void instead")
	}
}

func (c *checker) pointer(n *ast.Node) {
	of := ast.Untypedef(n.Of)
	if of != nil && of.Kind&ast.KindAnyReference != 0 {
		c.errorf(n.Loc, "pointer to reference is illegal")
	}
}

func (c *checker) reference(n *ast.Node) {
	of := ast.Untypedef(n.Of)
	if of == nil {
		return
	}
	switch {
	case of.Kind&ast.KindAnyReference != 0:
		c.errorf(n.Loc, "reference to reference is illegal")
	case of.Kind == ast.KindBuiltin && of.Type&types.MaskBase == types.Void:
		c.errorf(n.Loc, "reference to void is illegal; use pointer to void instead")
	}
}

// function checks a function-like node: its return type, member-ness, and
// parameter list shape.
func (c *checker) function(n *ast.Node) {
	if ret := ast.Untypedef(n.Ret); ret != nil {
		switch {
		case ret.Kind == ast.KindArray:
			c.errorf(n.Loc, "function returning array is illegal; use function returning pointer instead")
		case ret.Kind&ast.KindAnyFunctionLike != 0:
			c.errorf(n.Loc, "function returning function is illegal; use function returning pointer to function instead")
		}
	}

	member := n.FuncFlags == ast.FuncMember || n.Name.Count() > 1
	nonMember := n.FuncFlags == ast.FuncNonMember || (n.FuncFlags == ast.FuncUnspecified && n.Name.Count() <= 1)

	if bits := n.Type & types.MemberOnly; bits != types.None && !member {
		c.errorf(n.Loc, "%s is legal only for member functions", types.NameError(bits))
	}
	if bits := n.Type & types.NonMemberOnly; bits != types.None && !nonMember {
		c.errorf(n.Loc, "%s is legal only for non-member functions", types.NameError(bits))
	}

	if n.Type&types.AnyMSCCall != types.None {
		if parent := n.Parent; parent == nil || parent.Kind != ast.KindPointer {
			if c.lang&types.LangCPPAny != types.LangNone {
				c.warnf(n.Loc, "calling convention ignored here")
			}
		}
	}

	c.params(n)
}

// params checks a parameter list: variadic placement and void parameters.
func (c *checker) params(n *ast.Node) {
	for i, p := range n.Params {
		if p.Kind == ast.KindVariadic {
			if i != len(n.Params)-1 {
				c.errorf(p.Loc, "variadic specifier must be the last parameter")
			} else if len(n.Params) == 1 {
				c.errorf(p.Loc, "variadic specifier cannot be the only parameter")
			}
			continue
		}
		under := ast.Untypedef(p)
		if under != nil && under.Kind == ast.KindBuiltin && under.Type&types.MaskBase == types.Void {
			if len(n.Params) > 1 {
				c.errorf(p.Loc, "void must be the only parameter")
			} else if !p.Name.Empty() {
				c.errorf(p.Loc, "void parameter cannot have a name")
			}
		}
	}
}

func (c *checker) alignment(n *ast.Node) {
	if n.Align.Kind == ast.AlignNone {
		return
	}
	legal := types.CMin(types.LangC11) | types.CPPMin(types.LangCPP11)
	if legal&c.lang == types.LangNone {
		c.errorf(n.Loc, "alignas is not supported%s", types.Which(legal, c.lang))
		return
	}
	if n.Kind&ast.KindAnyFunctionLike != 0 {
		c.errorf(n.Loc, "functions cannot be aligned")
	}
	if n.Align.Kind == ast.AlignExpr && n.Align.Expr&(n.Align.Expr-1) != 0 {
		c.errorf(n.Loc, "alignment must be a power of 2")
	}
}

func (c *checker) bitField(n *ast.Node) {
	if n.BitWidth == 0 {
		return
	}
	if n.Kind&ast.KindAnyBitField == 0 {
		c.errorf(n.Loc, "%s cannot have a bit-field width", n.Kind.String())
		return
	}
	under := ast.Untypedef(n)
	if under.Kind == ast.KindBuiltin && under.Type&types.AnyIntegral == types.None {
		c.errorf(n.Loc, "bit-fields can be only of integral or enumeration type")
	}
	if n.Type&types.Static != types.None {
		c.errorf(n.Loc, "static members cannot be bit-fields")
	}
}
