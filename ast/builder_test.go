package ast

import (
	"testing"

	"github.com/appsworld/go-cdecl/types"
)

// declPlaceholder returns a placeholder standing for a named declarator at
// the given parse depth.
func declPlaceholder(name string, depth int) *Node {
	ph := New(KindPlaceholder, types.Loc{})
	ph.Name = NewName(name)
	ph.Depth = depth
	return ph
}

func builtin(id types.ID) *Node {
	n := New(KindBuiltin, types.Loc{})
	n.Type = id
	return n
}

func assertNoPlaceholder(t *testing.T, n *Node) {
	t.Helper()
	if ph := FindKind(n, VisitDown, KindPlaceholder); ph != nil {
		t.Fatalf("completed AST still contains a placeholder")
	}
}

func assertParents(t *testing.T, n *Node) {
	t.Helper()
	for cur := n; cur != nil; cur = cur.child() {
		if child := cur.child(); child != nil && child.Parent != cur {
			t.Fatalf("%s node's child %s has wrong parent", cur.Kind.String(), child.Kind.String())
		}
	}
}

func TestPatchBareName(t *testing.T) {
	// int x
	got := PatchPlaceholder(builtin(types.Int), declPlaceholder("x", 1))
	if got.Kind != KindBuiltin || got.Type != types.Int {
		t.Fatalf("patched AST is %s %q", got.Kind.String(), types.Name(got.Type))
	}
	if got.Name.Full() != "x" {
		t.Fatalf("name = %q, want %q", got.Name.Full(), "x")
	}
	assertNoPlaceholder(t, got)
}

// pointerTo returns a pointer node with a placeholder child, the way the
// parser creates one for "*".
func pointerTo(depth int) *Node {
	p := New(KindPointer, types.Loc{})
	p.Depth = depth
	ph := New(KindPlaceholder, types.Loc{})
	ph.Depth = depth
	p.SetOf(ph)
	return p
}

func TestPointerToArrayFull(t *testing.T) {
	// int (*x)[10]
	ptr := pointerTo(1)
	decl := PatchPlaceholder(ptr, declPlaceholder("x", 2))

	arr := New(KindArray, types.Loc{})
	arr.Size = 10
	arr.Depth = 1
	decl = AddArray(decl, arr)

	final := PatchPlaceholder(builtin(types.Int), decl)
	if final.Kind != KindPointer {
		t.Fatalf("root kind = %s, want pointer", final.Kind.String())
	}
	if final.Of.Kind != KindArray || final.Of.Size != 10 {
		t.Fatalf("pointer's child is not array 10")
	}
	if final.Of.Of.Kind != KindBuiltin || final.Of.Of.Type != types.Int {
		t.Fatalf("array element is not int")
	}
	if final.Name.Full() != "x" {
		t.Fatalf("name = %q, want x", final.Name.Full())
	}
	assertNoPlaceholder(t, final)
	assertParents(t, final)
}

func TestArrayOfPointer(t *testing.T) {
	// int *a[3]: postfix [3] binds before the *.
	decl := buildNamedArray(t, "a", 3)
	final := PatchPlaceholder(pointerTo(0), decl)
	if final.Kind != KindArray || final.Size != 3 {
		t.Fatalf("root is not array 3")
	}
	if final.Of.Kind != KindPointer {
		t.Fatalf("array element is not pointer")
	}
	final = PatchPlaceholder(builtin(types.Int), final)
	if final.Of.Of.Kind != KindBuiltin {
		t.Fatalf("pointee is not builtin")
	}
	assertNoPlaceholder(t, final)
	assertParents(t, final)
}

func buildNamedArray(t *testing.T, name string, size int) *Node {
	t.Helper()
	arr := New(KindArray, types.Loc{})
	arr.Size = size
	arr.Depth = 1
	return AddArray(declPlaceholder(name, 1), arr)
}

func TestArrayOfPointerToFunction(t *testing.T) {
	// int (*a[3])(char): array 3 of pointer to function (char) returning int.
	// Inner parens: *a[3] at depth 2.
	arr := New(KindArray, types.Loc{})
	arr.Size = 3
	arr.Depth = 2
	decl := AddArray(declPlaceholder("a", 2), arr)
	decl = PatchPlaceholder(pointerTo(1), decl)

	fn := New(KindFunction, types.Loc{})
	fn.Depth = 1
	param := builtin(types.Char)
	fn.AddParam(param)
	decl = AddFunction(decl, nil, fn)

	final := PatchPlaceholder(builtin(types.Int), decl)

	if final.Kind != KindArray || final.Size != 3 {
		t.Fatalf("root is not array 3, got %s", final.Kind.String())
	}
	ptr := final.Of
	if ptr.Kind != KindPointer {
		t.Fatalf("array element is not pointer, got %s", ptr.Kind.String())
	}
	f := ptr.Of
	if f.Kind != KindFunction || len(f.Params) != 1 {
		t.Fatalf("pointee is not function(char)")
	}
	if f.Ret == nil || f.Ret.Type != types.Int {
		t.Fatalf("function does not return int")
	}
	if final.Name.Full() != "a" {
		t.Fatalf("name = %q, want a", final.Name.Full())
	}
	assertNoPlaceholder(t, final)
	assertParents(t, final)
}

func TestAddFunctionBareName(t *testing.T) {
	// char *f(int x, int y): function returning pointer to char.
	fn := New(KindFunction, types.Loc{})
	fn.Depth = 1
	x := builtin(types.Int)
	x.Name = NewName("x")
	y := builtin(types.Int)
	y.Name = NewName("y")
	fn.AddParam(x)
	fn.AddParam(y)

	decl := AddFunction(declPlaceholder("f", 1), nil, fn)
	if decl != fn {
		t.Fatalf("function did not become the root")
	}
	if fn.Name.Full() != "f" {
		t.Fatalf("function name = %q, want f", fn.Name.Full())
	}

	decl = PatchPlaceholder(pointerTo(0), decl)
	final := PatchPlaceholder(builtin(types.Char), decl)
	if final.Kind != KindFunction {
		t.Fatalf("root is not function")
	}
	if final.Ret.Kind != KindPointer || final.Ret.Of.Type != types.Char {
		t.Fatalf("return type is not pointer to char")
	}
	assertNoPlaceholder(t, final)
	assertParents(t, final)
}

func TestAddFunctionTrailingReturn(t *testing.T) {
	// auto f() -> int
	fn := New(KindFunction, types.Loc{})
	fn.Depth = 1
	decl := AddFunction(declPlaceholder("f", 1), builtin(types.Int), fn)
	if decl.Ret == nil || decl.Ret.Type != types.Int {
		t.Fatalf("trailing return type not attached")
	}
	assertNoPlaceholder(t, decl)
}

func TestTakeName(t *testing.T) {
	n := PatchPlaceholder(builtin(types.Int), declPlaceholder("x", 1))
	name := TakeName(n)
	if name.Full() != "x" {
		t.Fatalf("TakeName = %q, want x", name.Full())
	}
	if !n.Name.Empty() {
		t.Fatalf("name not removed from node")
	}
}

func TestTakeType(t *testing.T) {
	n := builtin(types.Int)
	n.Type |= types.Typedef
	taken := TakeType(n, types.Typedef)
	if taken != types.Typedef {
		t.Fatalf("TakeType = %q", types.Name(taken))
	}
	if n.Type != types.Int {
		t.Fatalf("typedef bit not removed: %q", types.Name(n.Type))
	}
}
