// Package ast models C/C++ type declarations as trees and provides the
// combinators used to assemble them while a declaration is parsed.
package ast

import (
	"strings"

	"github.com/appsworld/go-cdecl/types"
)

// Kind identifies what an AST node represents. A node has exactly one kind;
// a bitwise-or of kinds is used only to test membership.
type Kind uint32

const (
	// KindPlaceholder is a temporary node holding the place of a type not
	// yet known while a declarator is parsed. It must not appear in a
	// completed AST.
	KindPlaceholder Kind = 1 << iota

	// KindBuiltin is a built-in type: void, char, int, ...
	KindBuiltin

	// KindClassStructUnion is a class, struct, or union.
	KindClassStructUnion

	// KindName is a bare identifier: a K&R untyped parameter, or an
	// identifier whose type is not yet known.
	KindName

	// KindTypedef is a use of a registered typedef name.
	KindTypedef

	// KindVariadic is a "..." function parameter.
	KindVariadic

	// KindArray is an array; an enum may be "of" a fixed underlying type.
	KindArray
	KindEnum

	KindPointer
	KindPointerToMember
	KindReference
	KindRvalueReference

	KindConstructor
	KindDestructor

	KindAppleBlock
	KindFunction
	KindOperator
	KindLambda
	KindUserDefConversion
	KindUserDefLiteral
)

// Kind groupings.
const (
	KindAnyECSU = KindEnum | KindClassStructUnion

	KindAnyFunctionLike = KindAppleBlock | KindConstructor | KindDestructor |
		KindFunction | KindOperator | KindLambda | KindUserDefConversion |
		KindUserDefLiteral

	// KindAnyFunctionReturning is the function-like kinds that have a
	// return type.
	KindAnyFunctionReturning = KindAppleBlock | KindFunction | KindOperator |
		KindLambda | KindUserDefConversion | KindUserDefLiteral

	// KindAnyTrailingReturn is the kinds that may use a trailing return
	// type in C++11 and later.
	KindAnyTrailingReturn = KindFunction | KindOperator | KindLambda

	KindAnyPointer   = KindPointer | KindPointerToMember
	KindAnyReference = KindReference | KindRvalueReference

	// KindAnyBitField is the kinds that may carry a bit-field width.
	KindAnyBitField = KindBuiltin | KindEnum | KindTypedef

	// KindAnyObject is anything sizeof can be applied to.
	KindAnyObject = KindAnyPointer | KindAnyReference | KindArray |
		KindBuiltin | KindAnyECSU | KindTypedef

	// KindAnyParent is any kind that owns a child AST. KindTypedef is
	// intentionally not a parent: it refers to a registered AST it does
	// not own.
	KindAnyParent = KindAnyFunctionLike | KindAnyPointer | KindAnyReference |
		KindArray | KindEnum

	// KindAnyReferrer is any kind with a pointer to another AST.
	KindAnyReferrer = KindAnyParent | KindTypedef
)

// String returns the English name of k.
func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindBuiltin:
		return "built-in type"
	case KindClassStructUnion:
		return "class, struct, or union"
	case KindName:
		return "name"
	case KindTypedef:
		return "typedef"
	case KindVariadic:
		return "..."
	case KindArray:
		return "array"
	case KindEnum:
		return "enum"
	case KindPointer:
		return "pointer"
	case KindPointerToMember:
		return "pointer to member"
	case KindReference:
		return "reference"
	case KindRvalueReference:
		return "rvalue reference"
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	case KindAppleBlock:
		return "block"
	case KindFunction:
		return "function"
	case KindOperator:
		return "operator"
	case KindLambda:
		return "lambda"
	case KindUserDefConversion:
		return "user-defined conversion operator"
	case KindUserDefLiteral:
		return "user-defined literal"
	}
	return "unknown"
}

// Scope is one segment of a scoped name: the scope's kind (namespace,
// class, struct, union, or generic scope bits) and its identifier.
type Scope struct {
	Type types.ID
	Name string
}

// ScopedName is an ordered sequence of scope segments, outermost first,
// e.g. std::chrono::duration.
type ScopedName []Scope

// NewName returns a one-segment unscoped name.
func NewName(name string) ScopedName {
	if name == "" {
		return nil
	}
	return ScopedName{{Name: name}}
}

// Empty reports whether sn has no segments.
func (sn ScopedName) Empty() bool { return len(sn) == 0 }

// Count returns the number of segments.
func (sn ScopedName) Count() int { return len(sn) }

// Full returns the full name, segments joined by "::".
func (sn ScopedName) Full() string {
	parts := make([]string, len(sn))
	for i, s := range sn {
		parts[i] = s.Name
	}
	return strings.Join(parts, "::")
}

// Local returns the innermost segment's identifier.
func (sn ScopedName) Local() string {
	if len(sn) == 0 {
		return ""
	}
	return sn[len(sn)-1].Name
}

// ScopeName returns the name of the enclosing scope: every segment but the
// last, joined by "::".
func (sn ScopedName) ScopeName() string {
	if len(sn) < 2 {
		return ""
	}
	return sn[:len(sn)-1].Full()
}

func (sn ScopedName) String() string { return sn.Full() }

// Equal reports whether two scoped names have identical segments.
func (sn ScopedName) Equal(other ScopedName) bool {
	if len(sn) != len(other) {
		return false
	}
	for i := range sn {
		if sn[i].Name != other[i].Name {
			return false
		}
	}
	return true
}

// Array sizes that are not ordinary non-negative integers.
const (
	// SizeNone means no size was given: a[].
	SizeNone = -1
	// SizeVariable means a C99 variable length array: a[*].
	SizeVariable = -2
)

// AlignKind says how a node's alignment, if any, was specified.
type AlignKind int

const (
	AlignNone AlignKind = iota
	AlignExpr           // alignas(expr)
	AlignType           // alignas(type)
)

// Alignment is an optional alignas directive on a declaration.
type Alignment struct {
	Kind AlignKind
	Expr int   // AlignExpr
	Type *Node // AlignType
}

// FuncFlags qualifies how a function-like node's member-ness was declared
// in pseudo-English, when it cannot be inferred from a scoped name.
type FuncFlags uint8

const (
	FuncUnspecified FuncFlags = iota
	FuncMember
	FuncNonMember
)

// Typedef is a named type: either predefined for a set of dialects or
// declared by the user. Entries are immutable once registered.
type Typedef struct {
	Name       ScopedName
	AST        *Node
	Langs      types.Lang
	Predefined bool
}

// Node is one node of a declaration AST. Kind-specific fields are
// meaningful only for the kinds noted; the rest stay zero.
type Node struct {
	Kind   Kind
	Type   types.ID
	Name   ScopedName
	Loc    types.Loc
	Parent *Node
	Align  Alignment

	// Depth is the parenthesis nesting depth at which the node was
	// created during parsing; PatchPlaceholder uses it.
	Depth int

	BitWidth  int        // KindBuiltin, KindTypedef: bit-field width; 0 = none
	ECSUName  ScopedName // KindEnum, KindClassStructUnion: the tag name
	Of        *Node      // child: array element, pointee, referent, enum base
	Size      int        // KindArray: length, SizeNone, or SizeVariable
	ArrayQual types.ID   // KindArray: C99 [static const N] qualifiers
	ClassName ScopedName // KindPointerToMember: the class
	Params    []*Node    // function-like: parameters in order
	Ret       *Node      // function-like with return type
	FuncFlags FuncFlags  // function-like: declared member-ness
	Def       *Typedef   // KindTypedef: the registered typedef
	OperName  string     // KindOperator, KindUserDefLiteral: token after "operator"
}

// New returns a new node of the given kind.
func New(kind Kind, loc types.Loc) *Node {
	return &Node{Kind: kind, Loc: loc, Size: sizeFor(kind)}
}

func sizeFor(kind Kind) int {
	if kind == KindArray {
		return SizeNone
	}
	return 0
}

// SetOf makes child the single child of n, maintaining the parent pointer.
func (n *Node) SetOf(child *Node) {
	n.Of = child
	if child != nil {
		child.Parent = n
	}
}

// SetRet sets a function-like node's return type, maintaining the parent
// pointer.
func (n *Node) SetRet(ret *Node) {
	n.Ret = ret
	if ret != nil {
		ret.Parent = n
	}
}

// AddParam appends a parameter. Parameters do not get parent pointers: the
// of/ret chain alone forms the declarator spine that visits walk.
func (n *Node) AddParam(param *Node) {
	n.Params = append(n.Params, param)
}

// child returns the node's child along the declarator spine, if any.
func (n *Node) child() *Node {
	if n.Of != nil {
		return n.Of
	}
	return n.Ret
}

// IsParent reports whether n's kind owns a child AST.
func (n *Node) IsParent() bool { return n.Kind&KindAnyParent != 0 }
