package ast

import "github.com/appsworld/go-cdecl/types"

// The builder combinators graft partially-built ASTs together as a
// declaration is parsed. C declarator syntax is inside-out — int (*a[3])(char)
// reads "array 3 of pointer to function (char) returning int" — so while the
// declarator is parsed the not-yet-known inner type is held by a placeholder
// node, and each combinator moves that placeholder deeper as arrays and
// functions are grafted around it. PatchPlaceholder finally substitutes the
// type-specifier AST for the placeholder.

// replaceChild swaps old for new in parent's child slot.
func replaceChild(parent, old, new *Node) {
	if parent.Of == old {
		parent.SetOf(new)
	} else if parent.Ret == old {
		parent.SetRet(new)
	}
	old.Parent = nil
}

// takeLeafName moves a name from from to to, if from has one and to does
// not.
func takeLeafName(from, to *Node) {
	if !from.Name.Empty() && to.Name.Empty() {
		to.Name = from.Name
		from.Name = nil
	}
}

// PatchPlaceholder replaces the placeholder within declAST by typeAST and
// returns the resulting AST. The patch happens only if typeAST has no
// parent, typeAST is shallower than declAST, and declAST still contains a
// placeholder; otherwise declAST is returned unchanged (typeAST when
// declAST is nil).
func PatchPlaceholder(typeAST, declAST *Node) *Node {
	if declAST == nil {
		return typeAST
	}
	if typeAST.Parent != nil || typeAST.Depth >= declAST.Depth {
		return declAST
	}
	ph := FindKind(declAST, VisitDown, KindPlaceholder)
	if ph == nil {
		return declAST
	}
	if ph == declAST {
		// The entire declarator is the placeholder: the type stands in
		// for it, inheriting its name.
		takeLeafName(ph, typeAST)
		typeAST.Loc = ph.Loc
		return typeAST
	}
	replaceChild(ph.Parent, ph, typeAST)
	takeLeafName(ph, Root(typeAST))
	return declAST
}

// AddArray grafts array into ast at the placeholder position and returns
// the new partial AST. array's element type must be empty on entry; on
// return it is either the displaced placeholder (to be patched later) or
// the already-complete tail of ast.
func AddArray(ast, array *Node) *Node {
	if ast == nil {
		if array.Of == nil {
			array.SetOf(New(KindPlaceholder, array.Loc))
			array.Of.Depth = array.Depth
		}
		return array
	}
	ph := FindKind(ast, VisitDown, KindPlaceholder)
	if ph == nil {
		// ast is already a complete type: it becomes the element type.
		array.SetOf(ast)
		return array
	}
	parent := ph.Parent
	takeLeafName(ph, array)
	if parent == nil {
		array.SetOf(ph)
		return array
	}
	replaceChild(parent, ph, array)
	array.SetOf(ph)
	return ast
}

// AddFunction grafts the function-like node fn into ast at the placeholder
// position, sets its return type, and returns the new partial AST. If ret
// is nil the displaced placeholder becomes the return slot, to be filled by
// a later PatchPlaceholder; a non-nil ret is the trailing-return-type case.
func AddFunction(ast, ret, fn *Node) *Node {
	if ast == nil {
		if ret == nil {
			ret = New(KindPlaceholder, fn.Loc)
			ret.Depth = fn.Depth
		}
		if fn.Kind&KindAnyFunctionReturning != 0 {
			fn.SetRet(ret)
		}
		return fn
	}
	ph := FindKind(ast, VisitDown, KindPlaceholder)
	if ph == nil {
		// ast is already a complete type: it is the return type.
		if ret == nil {
			ret = ast
		}
		if fn.Kind&KindAnyFunctionReturning != 0 {
			fn.SetRet(ret)
		}
		return fn
	}
	parent := ph.Parent
	takeLeafName(ph, fn)
	if parent != nil {
		replaceChild(parent, ph, fn)
	}
	if fn.Kind&KindAnyFunctionReturning != 0 {
		if ret == nil {
			ret = ph
			ret.Parent = nil
		}
		fn.SetRet(ret)
	}
	if parent == nil {
		return fn
	}
	return ast
}

// TakeName removes the first declared name found along the declarator
// spine and returns it.
func TakeName(n *Node) ScopedName {
	named := FindName(n, VisitDown)
	if named == nil {
		return nil
	}
	name := named.Name
	named.Name = nil
	return name
}

// TakeType removes and returns any bits of mask found in the types of the
// nodes along the declarator spine. It is used for declarations like
// "explain typedef int *p", whose typedef-ness belongs to the declaration,
// not to the pointed-to int.
func TakeType(n *Node, mask types.ID) types.ID {
	var taken types.ID
	Visit(n, VisitDown, func(n *Node) bool {
		taken |= n.Type & mask
		n.Type &^= mask
		return false
	})
	return taken
}
