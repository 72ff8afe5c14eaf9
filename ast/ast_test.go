package ast

import (
	"testing"

	"github.com/appsworld/go-cdecl/types"
)

func TestScopedName(t *testing.T) {
	sn := ScopedName{
		{Type: types.Namespace, Name: "std"},
		{Type: types.Namespace, Name: "chrono"},
		{Name: "duration"},
	}
	if got, want := sn.Full(), "std::chrono::duration"; got != want {
		t.Fatalf("Full = %q, want %q", got, want)
	}
	if got, want := sn.Local(), "duration"; got != want {
		t.Fatalf("Local = %q, want %q", got, want)
	}
	if got, want := sn.ScopeName(), "std::chrono"; got != want {
		t.Fatalf("ScopeName = %q, want %q", got, want)
	}
	if !sn.Equal(sn) {
		t.Fatal("name not equal to itself")
	}
	if sn.Equal(NewName("duration")) {
		t.Fatal("scoped name equal to unscoped")
	}
}

func TestVisitDirections(t *testing.T) {
	// pointer -> array -> int
	inner := New(KindBuiltin, types.Loc{})
	inner.Type = types.Int
	arr := New(KindArray, types.Loc{})
	arr.Size = 4
	arr.SetOf(inner)
	ptr := New(KindPointer, types.Loc{})
	ptr.SetOf(arr)

	var down []Kind
	Visit(ptr, VisitDown, func(n *Node) bool {
		down = append(down, n.Kind)
		return false
	})
	want := []Kind{KindPointer, KindArray, KindBuiltin}
	if len(down) != len(want) {
		t.Fatalf("down visited %d nodes, want %d", len(down), len(want))
	}
	for i := range want {
		if down[i] != want[i] {
			t.Fatalf("down[%d] = %s, want %s", i, down[i].String(), want[i].String())
		}
	}

	var up []Kind
	Visit(inner, VisitUp, func(n *Node) bool {
		up = append(up, n.Kind)
		return false
	})
	if len(up) != 3 || up[0] != KindBuiltin || up[2] != KindPointer {
		t.Fatalf("up visit wrong: %v", up)
	}

	if got := FindKind(ptr, VisitDown, KindArray); got != arr {
		t.Fatalf("FindKind did not find the array")
	}
	if got := FindType(ptr, VisitDown, types.Int); got != inner {
		t.Fatalf("FindType did not find the int")
	}
	if got := Root(inner); got != ptr {
		t.Fatalf("Root = %s", got.Kind.String())
	}
}

func TestUnHelpers(t *testing.T) {
	intAST := New(KindBuiltin, types.Loc{})
	intAST.Type = types.Int

	td := &Typedef{Name: NewName("myint"), AST: intAST, Langs: types.LangAll}
	use := New(KindTypedef, types.Loc{})
	use.Type = types.TypedefType
	use.Def = td

	if got := Untypedef(use); got != intAST {
		t.Fatalf("Untypedef did not reach the underlying int")
	}

	ptr := New(KindPointer, types.Loc{})
	ptr.SetOf(use)
	if got := Unpointer(ptr); got != intAST {
		t.Fatalf("Unpointer did not strip typedef of pointee")
	}
	if got := Unpointer(intAST); got != nil {
		t.Fatalf("Unpointer of non-pointer = %v", got)
	}

	ref := New(KindReference, types.Loc{})
	ref.SetOf(intAST)
	if got := Unreference(ref); got != intAST {
		t.Fatalf("Unreference failed")
	}
	rref := New(KindRvalueReference, types.Loc{})
	rref.SetOf(intAST)
	if got := Unreference(rref); got != rref {
		t.Fatalf("Unreference should not strip rvalue references")
	}
}

func TestEqual(t *testing.T) {
	build := func() *Node {
		inner := New(KindBuiltin, types.Loc{})
		inner.Type = types.Const | types.Int
		arr := New(KindArray, types.Loc{})
		arr.Size = 10
		arr.SetOf(inner)
		ptr := New(KindPointer, types.Loc{})
		ptr.SetOf(arr)
		ptr.Name = NewName("x")
		return ptr
	}
	a, b := build(), build()
	a.Loc = types.Loc{First: 9, Last: 12} // locations are not compared
	if !Equal(a, b) {
		t.Fatal("identical ASTs not equal")
	}
	b.Of.Size = 11
	if Equal(a, b) {
		t.Fatal("ASTs with different array sizes equal")
	}
}
