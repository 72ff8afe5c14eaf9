package parse

import (
	"errors"
	"testing"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/typedef"
	"github.com/appsworld/go-cdecl/types"
)

func TestEnglishPointerToArray(t *testing.T) {
	root, err := ParseEnglishType("pointer to array 10 of const int", cEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Kind != ast.KindPointer {
		t.Fatalf("root kind = %s", root.Kind.String())
	}
	arr := root.Of
	if arr.Kind != ast.KindArray || arr.Size != 10 {
		t.Fatalf("pointee is not array 10")
	}
	if arr.Of.Type != types.Const|types.Int {
		t.Fatalf("element type = %q", types.Name(arr.Of.Type))
	}
}

func TestEnglishFunction(t *testing.T) {
	root, err := ParseEnglishType("function (x as int, y as int) returning pointer to char", cEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Kind != ast.KindFunction || len(root.Params) != 2 {
		t.Fatalf("root is not function with two params")
	}
	if root.Params[0].Name.Full() != "x" || root.Params[0].Type != types.Int {
		t.Fatalf("first param wrong")
	}
	if root.Ret.Kind != ast.KindPointer {
		t.Fatalf("return is not a pointer")
	}
}

func TestEnglishMemberFunction(t *testing.T) {
	root, err := ParseEnglishType("member function (int) returning void", cppEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.FuncFlags != ast.FuncMember {
		t.Fatalf("member flag not set")
	}
}

func TestEnglishPointerToMember(t *testing.T) {
	root, err := ParseEnglishType("pointer to member of class C of function (int) returning void", cppEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Kind != ast.KindPointerToMember || root.ClassName.Full() != "C" {
		t.Fatalf("root = %s of %q", root.Kind.String(), root.ClassName.Full())
	}
	if root.Of.Kind != ast.KindFunction {
		t.Fatalf("member type is not function")
	}
}

func TestEnglishStorageOnPointer(t *testing.T) {
	root, err := ParseEnglishType("static pointer to int", cEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Kind != ast.KindPointer || root.Type&types.Static == types.None {
		t.Fatalf("static not on the pointer")
	}
}

func TestEnglishVariableLengthArray(t *testing.T) {
	root, err := ParseEnglishType("variable length array of int", cEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Kind != ast.KindArray || root.Size != ast.SizeVariable {
		t.Fatalf("not a variable length array")
	}
}

func TestEnglishECSU(t *testing.T) {
	root, err := ParseEnglishType("struct S", cEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Kind != ast.KindClassStructUnion || root.ECSUName.Full() != "S" {
		t.Fatalf("root = %s %q", root.Kind.String(), root.ECSUName.Full())
	}

	e, err := ParseEnglishType("enum E of type unsigned int", cppEnv())
	if err != nil {
		t.Fatalf("enum parse failed: %v", err)
	}
	if e.Kind != ast.KindEnum || e.Of == nil || e.Of.Type != types.Unsigned|types.Int {
		t.Fatalf("enum underlying type missing")
	}
}

func TestEnglishConflict(t *testing.T) {
	_, err := ParseEnglishType("signed unsigned int", cEnv())
	var conflict *types.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestEnglishUnknownName(t *testing.T) {
	_, err := ParseEnglishType("pointer to blah", cEnv())
	var unknown *UnknownNameError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownNameError, got %v", err)
	}
}

func TestEnglishVariadicParam(t *testing.T) {
	root, err := ParseEnglishType("function (int, ...) returning void", cEnv())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Params[1].Kind != ast.KindVariadic {
		t.Fatalf("second param = %s", root.Params[1].Kind.String())
	}
}

func TestEnglishKnRParam(t *testing.T) {
	env := Env{Lang: types.LangCKNR, Typedefs: typedef.NewRegistry()}
	root, err := ParseEnglishType("function (x) returning double", env)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Params[0].Kind != ast.KindName {
		t.Fatalf("param = %s", root.Params[0].Kind.String())
	}
}

func TestEnglishTypedefName(t *testing.T) {
	env := cEnv()
	under := ast.New(ast.KindBuiltin, types.Loc{})
	under.Type = types.Unsigned | types.Long
	env.Typedefs.Define(&ast.Typedef{Name: ast.NewName("size_t"), AST: under, Langs: types.LangAll})

	root, err := ParseEnglishType("pointer to size_t", env)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Of.Kind != ast.KindTypedef {
		t.Fatalf("pointee = %s", root.Of.Kind.String())
	}
}

func TestParseNameScoped(t *testing.T) {
	name, err := ParseName("std::size_t")
	if err != nil {
		t.Fatalf("ParseName failed: %v", err)
	}
	if name.Count() != 2 || name.Full() != "std::size_t" {
		t.Fatalf("name = %q", name.Full())
	}
	if _, err := ParseName("not a name"); err == nil {
		t.Fatal("bad name accepted")
	}
}
