package parse

import (
	"github.com/appsworld/go-cdecl/typedef"
	"github.com/appsworld/go-cdecl/types"
)

// Env carries what parsing needs from the session: the active dialect and
// the typedef registry for resolving type names.
type Env struct {
	Lang     types.Lang
	Typedefs *typedef.Registry
}

// altTokensOK reports whether the dialect has alternative tokens at all.
func (e Env) altTokensOK() bool {
	return types.IsCPP(e.Lang) || e.Lang >= types.LangC95
}

// keywordBits maps C/C++ declaration keywords to their type bits. "auto"
// is absent: its meaning depends on the dialect.
var keywordBits = map[string]types.ID{
	"void":      types.Void,
	"bool":      types.Bool,
	"_Bool":     types.Bool,
	"char":      types.Char,
	"char8_t":   types.Char8,
	"char16_t":  types.Char16,
	"char32_t":  types.Char32,
	"wchar_t":   types.WChar,
	"short":     types.Short,
	"int":       types.Int,
	"long":      types.Long,
	"signed":    types.Signed,
	"unsigned":  types.Unsigned,
	"float":     types.Float,
	"double":    types.Double,
	"_Complex":  types.Complex,
	"_Imaginary": types.Imaginary,

	"extern":        types.Extern,
	"mutable":       types.Mutable,
	"register":      types.Register,
	"static":        types.Static,
	"thread_local":  types.ThreadLocal,
	"_Thread_local": types.ThreadLocal,
	"typedef":       types.Typedef,
	"__block":       types.AppleBlock,

	"consteval": types.Consteval,
	"constexpr": types.Constexpr,
	"explicit":  types.Explicit,
	"friend":    types.Friend,
	"inline":    types.Inline,
	"virtual":   types.Virtual,

	"__cdecl":   types.MSCCdecl,
	"__stdcall": types.MSCStdcall,

	"_Atomic":  types.Atomic,
	"const":    types.Const,
	"restrict": types.Restrict,
	"__restrict": types.Restrict,
	"volatile": types.Volatile,
}

// attrBits maps [[attribute]] names to their bits.
var attrBits = map[string]types.ID{
	"carries_dependency": types.CarriesDependency,
	"deprecated":         types.Deprecated,
	"maybe_unused":       types.MaybeUnused,
	"nodiscard":          types.Nodiscard,
	"noreturn":           types.Noreturn,
	"_Noreturn":          types.Noreturn,
}

// englishBits maps the pseudo-English spellings accepted in type phrases
// to their bits, beyond the C keywords which are accepted as themselves.
var englishBits = map[string]types.ID{
	"complex":       types.Complex,
	"imaginary":     types.Imaginary,
	"atomic":        types.Atomic,
	"restricted":    types.Restrict,
	"non-returning": types.Noreturn,
	"noreturn":      types.Noreturn,
	"non-throwing":  types.Noexcept,
	"noexcept":      types.Noexcept,
	"thread_local":  types.ThreadLocal,
	"deprecated":    types.Deprecated,
	"maybe_unused":  types.MaybeUnused,
	"nodiscard":     types.Nodiscard,
	"carries_dependency": types.CarriesDependency,
	"override":      types.Override,
	"final":         types.Final,
}

// ecsuKeywords maps tag keywords to their base-type bit.
var ecsuKeywords = map[string]types.ID{
	"enum":   types.Enum,
	"struct": types.Struct,
	"union":  types.Union,
	"class":  types.Class,
}

// autoBits resolves "auto" for the dialect: a storage class in C and in
// C++ through C++03, the type placeholder afterward (and in C23).
func autoBits(lang types.Lang) types.ID {
	if lang&(types.CPPMin(types.LangCPP11)|types.LangC23) != types.LangNone {
		return types.AutoType
	}
	return types.AutoStorage
}

// Keywords returns every keyword either parser accepts, for use as "did
// you mean" candidates.
func Keywords() []string {
	seen := map[string]bool{}
	var words []string
	add := func(m map[string]types.ID) {
		for w := range m {
			if !seen[w] {
				seen[w] = true
				words = append(words, w)
			}
		}
	}
	add(keywordBits)
	add(attrBits)
	add(englishBits)
	add(ecsuKeywords)
	for _, w := range []string{
		"auto", "array", "block", "function", "constructor", "destructor",
		"pointer", "reference", "rvalue", "member", "non-member", "returning",
		"variable", "length", "of", "to", "as",
	} {
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}
