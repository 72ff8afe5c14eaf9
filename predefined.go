package cdecl

import (
	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/typedef"
	"github.com/appsworld/go-cdecl/types"
)

// predefined is the built-in list of well-known type names, each gated to
// the dialects that predefine it.
var predefined = []struct {
	name  string
	id    types.ID
	kind  ast.Kind
	tag   string // ECSU tag for struct-like entries
	langs types.Lang
}{
	{name: "size_t", id: types.Unsigned | types.Long, langs: types.Min(types.LangC89)},
	{name: "ssize_t", id: types.Long, langs: types.Min(types.LangC89)},
	{name: "ptrdiff_t", id: types.Long, langs: types.Min(types.LangC89)},
	{name: "max_align_t", id: types.Long | types.Double, langs: types.CMin(types.LangC11) | types.CPPMin(types.LangCPP11)},

	{name: "int8_t", id: types.Signed | types.Char, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "int16_t", id: types.Short, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "int32_t", id: types.Int, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "int64_t", id: types.LongLong, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "uint8_t", id: types.Unsigned | types.Char, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "uint16_t", id: types.Unsigned | types.Short, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "uint32_t", id: types.Unsigned | types.Int, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "uint64_t", id: types.Unsigned | types.LongLong, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "intptr_t", id: types.Long, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "uintptr_t", id: types.Unsigned | types.Long, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "intmax_t", id: types.LongLong, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},
	{name: "uintmax_t", id: types.Unsigned | types.LongLong, langs: types.CMin(types.LangC99) | types.CPPMin(types.LangCPP11)},

	{name: "FILE", kind: ast.KindClassStructUnion, id: types.Struct, tag: "FILE", langs: types.Min(types.LangC89)},
	{name: "va_list", kind: ast.KindClassStructUnion, id: types.Struct, tag: "__va_list", langs: types.Min(types.LangC89)},
	{name: "time_t", id: types.Long, langs: types.Min(types.LangC89)},
	{name: "clock_t", id: types.Long, langs: types.Min(types.LangC89)},
}

// seedPredefined fills a fresh registry with the predefined names.
func seedPredefined(reg *typedef.Registry) {
	for _, pd := range predefined {
		kind := pd.kind
		if kind == 0 {
			kind = ast.KindBuiltin
		}
		n := ast.New(kind, types.Loc{})
		n.Type = pd.id
		if kind == ast.KindClassStructUnion {
			n.ECSUName = ast.NewName(pd.tag)
		}
		name := ast.NewName(pd.name)
		n.Name = name
		// The table is internally consistent, so Define cannot fail.
		_ = reg.Define(&ast.Typedef{
			Name:       name,
			AST:        n,
			Langs:      pd.langs,
			Predefined: true,
		})
	}
}
