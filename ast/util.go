package ast

// Untypedef follows typedef references until it reaches a node of a
// concrete kind.
func Untypedef(n *Node) *Node {
	for n != nil && n.Kind == KindTypedef {
		n = n.Def.AST
	}
	return n
}

// Unpointer strips one pointer level from n, looking through typedefs, and
// returns the pointed-to AST, or nil if n is not a pointer.
func Unpointer(n *Node) *Node {
	n = Untypedef(n)
	if n == nil || n.Kind != KindPointer {
		return nil
	}
	return Untypedef(n.Of)
}

// Unreference strips reference levels from n, looking through typedefs.
// Only lvalue references are stripped, not rvalue references.
func Unreference(n *Node) *Node {
	n = Untypedef(n)
	for n != nil && n.Kind == KindReference {
		n = Untypedef(n.Of)
	}
	return n
}

// Equal reports whether two ASTs are structurally equal: same kinds, types,
// names, and payloads throughout. Source locations and parse bookkeeping
// are not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Type != b.Type {
		return false
	}
	if !a.Name.Equal(b.Name) || !a.ECSUName.Equal(b.ECSUName) || !a.ClassName.Equal(b.ClassName) {
		return false
	}
	if a.Size != b.Size || a.ArrayQual != b.ArrayQual || a.BitWidth != b.BitWidth {
		return false
	}
	if a.OperName != b.OperName || a.FuncFlags != b.FuncFlags {
		return false
	}
	if a.Align.Kind != b.Align.Kind || a.Align.Expr != b.Align.Expr || !Equal(a.Align.Type, b.Align.Type) {
		return false
	}
	if (a.Def == nil) != (b.Def == nil) {
		return false
	}
	if a.Def != nil && !a.Def.Name.Equal(b.Def.Name) {
		return false
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !Equal(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return Equal(a.Of, b.Of) && Equal(a.Ret, b.Ret)
}
