package types

import (
	"fmt"
	"strings"
)

// ID is a 64-bit bitset identifying a C/C++ type: its base type, storage
// classes, attributes, qualifiers, and ref-qualifiers. Each piece of
// information lives in its own disjoint sector of bits so a sector mask
// extracts exactly one kind of information.
type ID uint64

// Base types (bits 0-27).
const (
	None     ID = 0
	Void     ID = 1 << 0
	AutoType ID = 1 << 1 // C++11 type placeholder
	Bool     ID = 1 << 2
	Char     ID = 1 << 3
	Char8    ID = 1 << 4
	Char16   ID = 1 << 5
	Char32   ID = 1 << 6
	WChar    ID = 1 << 7
	Short    ID = 1 << 8
	Int      ID = 1 << 9
	Long     ID = 1 << 10
	LongLong ID = 1 << 11
	Signed   ID = 1 << 12
	Unsigned ID = 1 << 13
	Float    ID = 1 << 14
	Double   ID = 1 << 15
	Complex  ID = 1 << 16
	Imaginary ID = 1 << 17
	Enum      ID = 1 << 18
	Struct    ID = 1 << 19
	Union     ID = 1 << 20
	Class     ID = 1 << 21
	Namespace ID = 1 << 22
	Scope     ID = 1 << 23 // generic scope for scoped names
	TypedefType ID = 1 << 24
)

// Storage classes (bits 28-35).
const (
	AutoStorage ID = 1 << 28 // C's auto
	AppleBlock  ID = 1 << 29
	Extern      ID = 1 << 30
	Mutable     ID = 1 << 31
	Register    ID = 1 << 32
	Static      ID = 1 << 33
	ThreadLocal ID = 1 << 34
	Typedef     ID = 1 << 35
)

// Storage-class-like (bits 36-48).
const (
	Consteval   ID = 1 << 36
	Constexpr   ID = 1 << 37
	Default     ID = 1 << 38 // = default
	Delete      ID = 1 << 39 // = delete
	Explicit    ID = 1 << 40
	Final       ID = 1 << 41
	Friend      ID = 1 << 42
	Inline      ID = 1 << 43
	Noexcept    ID = 1 << 44
	Override    ID = 1 << 45
	PureVirtual ID = 1 << 46 // = 0
	Throw       ID = 1 << 47 // throw()
	Virtual     ID = 1 << 48
)

// Attributes (bits 49-55).
const (
	CarriesDependency ID = 1 << 49
	Deprecated        ID = 1 << 50
	MaybeUnused       ID = 1 << 51
	Nodiscard         ID = 1 << 52
	Noreturn          ID = 1 << 53
	MSCCdecl          ID = 1 << 54 // Microsoft __cdecl
	MSCStdcall        ID = 1 << 55 // Microsoft __stdcall
)

// Qualifiers (bits 56-59).
const (
	Atomic   ID = 1 << 56
	Const    ID = 1 << 57
	Restrict ID = 1 << 58
	Volatile ID = 1 << 59
)

// Ref-qualifiers (bits 60-61).
const (
	RefQual       ID = 1 << 60 // void f() &
	RvalueRefQual ID = 1 << 61 // void f() &&
)

// Sector masks.
const (
	MaskBase     ID = 0x000000000FFFFFFF
	MaskStorage  ID = 0x0001FFFFF0000000 // storage classes and storage-class-like
	MaskAttr     ID = 0x00FE000000000000
	MaskQual     ID = 0x0F00000000000000
	MaskRefQual  ID = 0xF000000000000000
)

// Shorthands.
const (
	AnyChar       = Char | WChar | Char8 | Char16 | Char32
	AnyFloat      = Float | Double
	AnyRefQual    = RefQual | RvalueRefQual
	AnyECSU       = Enum | Class | Struct | Union
	ClassStructUnion = Class | Struct | Union
	IntModifier   = Short | Long | LongLong | Signed | Unsigned
	AnyIntegral   = Bool | AnyChar | Short | Int | Long | LongLong | Signed | Unsigned
	AnyMSCCall    = MSCCdecl | MSCStdcall
	CV            = Const | Volatile

	// StorageOnly is the pure storage classes within MaskStorage,
	// at most one of which may be present.
	StorageOnly = AutoStorage | AppleBlock | Extern | Mutable | Register |
		Static | ThreadLocal | Typedef

	// DeclSpecStorage is everything that can appear in the
	// declaration-specifier position, as opposed to the function-tail
	// bits like noexcept and override.
	DeclSpecStorage = StorageOnly | Consteval | Constexpr | Explicit |
		Friend | Inline | Virtual

	// ConstructorOK is the only set of type bits a constructor may carry;
	// ConstructorOnly the bits that may appear only on constructors.
	ConstructorOK   = Constexpr | Consteval | Explicit | Friend | Inline | Noexcept | Throw | Default | Delete
	ConstructorOnly = Explicit

	// MemberOnly is the set of bits legal only on class-member functions.
	MemberOnly = Const | Volatile | Default | Delete | Override | Final |
		Virtual | PureVirtual | Restrict | AnyRefQual

	// NonMemberOnly is the set of bits legal only on non-members.
	NonMemberOnly = Friend

	// UserDefConvOK is the set of bits a user-defined conversion operator
	// may carry.
	UserDefConvOK = Const | Constexpr | Explicit | Final | Friend | Inline |
		Noexcept | Override | Throw | PureVirtual | Virtual

	// DestructorOK is the set of bits a destructor may carry.
	DestructorOK = Inline | Noexcept | Throw | Virtual | PureVirtual |
		Final | Override | Default | Delete
)

// bitName pairs a single type bit with its C/C++ spelling. The slice order
// is canonical printing order.
type bitName struct {
	bit  ID
	name string
}

var bitNames = []bitName{
	// storage classes
	{Typedef, "typedef"},
	{AutoStorage, "auto"},
	{AppleBlock, "__block"},
	{Extern, "extern"},
	{Friend, "friend"},
	{Mutable, "mutable"},
	{Register, "register"},
	{Static, "static"},
	{ThreadLocal, "thread_local"},
	// storage-class-like
	{Consteval, "consteval"},
	{Constexpr, "constexpr"},
	{Explicit, "explicit"},
	{Inline, "inline"},
	{Virtual, "virtual"},
	// attributes
	{CarriesDependency, "carries_dependency"},
	{Deprecated, "deprecated"},
	{MaybeUnused, "maybe_unused"},
	{Nodiscard, "nodiscard"},
	{Noreturn, "noreturn"},
	{MSCCdecl, "__cdecl"},
	{MSCStdcall, "__stdcall"},
	// qualifiers
	{Atomic, "_Atomic"},
	{Const, "const"},
	{Restrict, "restrict"},
	{Volatile, "volatile"},
	// base types, in declaration order
	{Void, "void"},
	{AutoType, "auto"},
	{Bool, "bool"},
	{Signed, "signed"},
	{Unsigned, "unsigned"},
	{Short, "short"},
	{Long, "long"},
	{LongLong, "long long"},
	{Int, "int"},
	{Char, "char"},
	{Char8, "char8_t"},
	{Char16, "char16_t"},
	{Char32, "char32_t"},
	{WChar, "wchar_t"},
	{Float, "float"},
	{Double, "double"},
	{Complex, "_Complex"},
	{Imaginary, "_Imaginary"},
	{Enum, "enum"},
	{Struct, "struct"},
	{Union, "union"},
	{Class, "class"},
	{Namespace, "namespace"},
	{Scope, "scope"},
	// trailing function things
	{Noexcept, "noexcept"},
	{Throw, "throw()"},
	{Override, "override"},
	{Final, "final"},
	{Default, "= default"},
	{Delete, "= delete"},
	{PureVirtual, "= 0"},
	{RefQual, "&"},
	{RvalueRefQual, "&&"},
}

// englishAlias substitutes pseudo-English spellings for a handful of bits
// whose C spellings would read oddly in an error message that crosses the
// English/gibberish boundary.
var englishAlias = map[ID]string{
	Noreturn:      "non-returning",
	Throw:         "non-throwing",
	PureVirtual:   "pure virtual",
	RefQual:       "reference",
	RvalueRefQual: "rvalue reference",
}

// Name returns the canonical space-separated spelling of every bit in id,
// in declaration order, e.g. "static const unsigned long int".
func Name(id ID) string {
	var parts []string
	for _, bn := range bitNames {
		if id&bn.bit != 0 {
			parts = append(parts, bn.name)
			id &^= bn.bit
		}
	}
	return strings.Join(parts, " ")
}

// NameError is like Name but substitutes English aliases for bits that have
// them, for use in diagnostics.
func NameError(id ID) string {
	var parts []string
	for _, bn := range bitNames {
		if id&bn.bit != 0 {
			if alias, ok := englishAlias[bn.bit]; ok {
				parts = append(parts, alias)
			} else {
				parts = append(parts, bn.name)
			}
			id &^= bn.bit
		}
	}
	return strings.Join(parts, " ")
}

// Loc is a source location: a half-open column range within the input line.
type Loc struct {
	First int
	Last  int
}

// ConflictError reports an attempt to combine two type bits that cannot
// appear together in a declaration.
type ConflictError struct {
	New ID
	Old ID
	Loc Loc
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%q cannot be combined with %q", Name(e.New), Name(e.Old))
}

// exclusive lists pairs of bit sets that can never be combined within a
// declaration regardless of dialect. Dialect-sensitive combinations are the
// checker's business, not Add's.
var exclusive = [][2]ID{
	{Signed, Unsigned},
	{Short, Long | LongLong},
	{AnyFloat | Complex | Imaginary, Int | Signed | Unsigned},
	{Float, Long | LongLong | Short},
	{Double, LongLong | Short},
	{Void, Bool | AnyChar | Short | Int | Long | LongLong | Signed | Unsigned | AnyFloat},
	{Bool, Short | Int | Long | LongLong | Signed | Unsigned | AnyFloat},
	{AnyChar, Short | Long | LongLong | AnyFloat},
	{WChar | Char8 | Char16 | Char32, Signed | Unsigned},
	{AnyECSU, AnyIntegral | AnyFloat | Void},
	{RefQual, RvalueRefQual},
	{Consteval, Constexpr},
	{Default, Delete},
}

// Add merges the type bits of add into *dst, diagnosing illegal
// combinations. "long" added to "long" promotes to "long long"; a third
// "long" fails. Returns nil on success.
func Add(dst *ID, add ID, loc Loc) error {
	// long long + long or long + long long would be "long long long".
	if add&Long != 0 && *dst&LongLong != 0 ||
		add&LongLong != 0 && *dst&Long != 0 {
		return &ConflictError{New: Long, Old: LongLong, Loc: loc}
	}
	// long + long promotes to long long.
	if add&Long != 0 && *dst&Long != 0 {
		add = add&^Long | LongLong
		*dst &^= Long
	}

	if dup := add & *dst; dup != 0 {
		return fmt.Errorf("%q specified more than once", Name(dup))
	}

	// At most one storage class; typedef combines with nothing stored.
	if add&StorageOnly != 0 && *dst&StorageOnly != 0 {
		return &ConflictError{New: add & StorageOnly, Old: *dst & StorageOnly, Loc: loc}
	}

	for _, x := range exclusive {
		if add&x[0] != 0 && *dst&x[1] != 0 {
			return &ConflictError{New: add & x[0], Old: *dst & x[1], Loc: loc}
		}
		if add&x[1] != 0 && *dst&x[0] != 0 {
			return &ConflictError{New: add & x[1], Old: *dst & x[0], Loc: loc}
		}
	}

	*dst |= add
	return nil
}

// langOf maps each type bit to the set of dialects in which it is legal.
// Bits absent from the table are legal everywhere.
var langOf = map[ID]Lang{
	Void:     Min(LangC89),
	AutoType: CMin(LangC23) | CPPMin(LangCPP11),
	Bool:     CMin(LangC99) | LangCPPAny,
	Char8:    CMin(LangC23) | CPPMin(LangCPP20),
	Char16:   CMin(LangC11) | CPPMin(LangCPP11),
	Char32:   CMin(LangC11) | CPPMin(LangCPP11),
	WChar:    Min(LangC95),
	LongLong: CMin(LangC99) | CPPMin(LangCPP11),
	Signed:   Min(LangC89),
	Complex:  CMin(LangC99),
	Imaginary: CMin(LangC99),
	Class:     LangCPPAny,
	Namespace: LangCPPAny,

	AutoStorage: LangCAny | CPPMax(LangCPP03),
	AppleBlock:  Min(LangC89),
	Mutable:     LangCPPAny,
	Register:    LangCAny | CPPMax(LangCPP14),
	ThreadLocal: CMin(LangC11) | CPPMin(LangCPP11),

	Consteval:   CPPMin(LangCPP20),
	Constexpr:   CMin(LangC23) | CPPMin(LangCPP11),
	Default:     CPPMin(LangCPP11),
	Delete:      CPPMin(LangCPP11),
	Explicit:    LangCPPAny,
	Final:       CPPMin(LangCPP11),
	Friend:      LangCPPAny,
	Inline:      CMin(LangC99) | LangCPPAny,
	Noexcept:    CPPMin(LangCPP11),
	Override:    CPPMin(LangCPP11),
	PureVirtual: LangCPPAny,
	Throw:       CPPMax(LangCPP14),
	Virtual:     LangCPPAny,

	CarriesDependency: CPPMin(LangCPP11),
	Deprecated:        CMin(LangC23) | CPPMin(LangCPP14),
	MaybeUnused:       CMin(LangC23) | CPPMin(LangCPP17),
	Nodiscard:         CMin(LangC23) | CPPMin(LangCPP17),
	Noreturn:          CMin(LangC11) | CPPMin(LangCPP11),
	MSCCdecl:          Min(LangC89),
	MSCStdcall:        Min(LangC89),

	Atomic:   CMin(LangC11) | CPPMin(LangCPP23),
	Const:    Min(LangC89),
	Restrict: CMin(LangC99),
	Volatile: Min(LangC89),

	RefQual:       CPPMin(LangCPP11),
	RvalueRefQual: CPPMin(LangCPP11),
}

// Check returns the set of dialects in which every bit of id is legal.
func Check(id ID) Lang {
	langs := LangAll
	for bit := ID(1); bit != 0 && id != 0; bit <<= 1 {
		if id&bit == 0 {
			continue
		}
		id &^= bit
		if l, ok := langOf[bit]; ok {
			langs &= l
		}
	}
	return langs
}

// LangOf returns the set of dialects in which the single bit is legal.
func LangOf(bit ID) Lang {
	if l, ok := langOf[bit]; ok {
		return l
	}
	return LangAll
}
