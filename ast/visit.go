package ast

import "github.com/appsworld/go-cdecl/types"

// VisitDir is the direction Visit walks: down the declarator spine toward
// the innermost type, or up toward the root.
type VisitDir int

const (
	VisitDown VisitDir = iota
	VisitUp
)

// Visitor is applied to each node visited; returning true stops the walk
// and makes Visit return the current node.
type Visitor func(*Node) bool

// Visit walks the declarator spine starting at n in the given direction,
// applying v to each node. Down follows each parent kind's child (the "of"
// or return type); up follows parent pointers. It returns the node at which
// v returned true, or nil if the walk ran off the end.
func Visit(n *Node, dir VisitDir, v Visitor) *Node {
	for n != nil {
		if v(n) {
			return n
		}
		if dir == VisitDown {
			n = n.child()
		} else {
			n = n.Parent
		}
	}
	return nil
}

// FindKind returns the first node along dir whose kind is in kinds, or nil.
func FindKind(n *Node, dir VisitDir, kinds Kind) *Node {
	return Visit(n, dir, func(n *Node) bool { return n.Kind&kinds != 0 })
}

// FindName returns the first node along dir that has a declared name.
func FindName(n *Node, dir VisitDir) *Node {
	return Visit(n, dir, func(n *Node) bool { return !n.Name.Empty() })
}

// FindType returns the first node along dir whose type has any of the bits
// of id set.
func FindType(n *Node, dir VisitDir, id types.ID) *Node {
	return Visit(n, dir, func(n *Node) bool { return n.Type&id != 0 })
}

// Root returns the outermost ancestor of n.
func Root(n *Node) *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
