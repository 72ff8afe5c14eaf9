package types

import "strings"

// Lang is a bitset of C/C++ language dialects. A single dialect is one set
// bit; sets of dialects are used for "legal in" masks. Bit order follows
// chronology so that newer dialects compare greater than older ones.
type Lang uint32

const (
	LangNone Lang = 0

	LangCKNR Lang = 1 << 0 // K&R (pre-ANSI) C
	LangC89  Lang = 1 << 1
	LangC95  Lang = 1 << 2
	LangC99  Lang = 1 << 3
	LangC11  Lang = 1 << 4
	LangC17  Lang = 1 << 5
	LangC23  Lang = 1 << 6

	LangCPP98 Lang = 1 << 8
	LangCPP03 Lang = 1 << 9
	LangCPP11 Lang = 1 << 10
	LangCPP14 Lang = 1 << 11
	LangCPP17 Lang = 1 << 12
	LangCPP20 Lang = 1 << 13
	LangCPP23 Lang = 1 << 14

	LangCAny   = LangCKNR | LangC89 | LangC95 | LangC99 | LangC11 | LangC17 | LangC23
	LangCPPAny = LangCPP98 | LangCPP03 | LangCPP11 | LangCPP14 | LangCPP17 | LangCPP20 | LangCPP23
	LangAll    = LangCAny | LangCPPAny

	LangCNew   = LangC23
	LangCPPNew = LangCPP23
)

// Min returns the set of l and every newer dialect, C++ counting as newer
// than all of C.
func Min(l Lang) Lang { return ^(l - 1) & LangAll }

// Max returns the set of l and every older dialect.
func Max(l Lang) Lang { return (l | (l - 1)) & LangAll }

// CMin returns the set of C dialects at least as new as l.
func CMin(l Lang) Lang { return Min(l) & LangCAny }

// CMax returns the set of C dialects no newer than l.
func CMax(l Lang) Lang { return Max(l) & LangCAny }

// CPPMin returns the set of C++ dialects at least as new as l.
func CPPMin(l Lang) Lang { return Min(l) & LangCPPAny }

// CPPMax returns the set of C++ dialects no newer than l.
func CPPMax(l Lang) Lang { return Max(l) & LangCPPAny }

// IsC reports whether l contains any C dialect.
func IsC(l Lang) bool { return l&LangCAny != LangNone }

// IsCPP reports whether l contains any C++ dialect.
func IsCPP(l Lang) bool { return l&LangCPPAny != LangNone }

// Oldest returns the oldest single dialect in l.
func Oldest(l Lang) Lang {
	if l == LangNone {
		return LangNone
	}
	return l & -l
}

// Newest returns the newest single dialect in l.
func Newest(l Lang) Lang {
	for b := LangCPP23; b != 0; b >>= 1 {
		if l&b != 0 {
			return b
		}
	}
	return LangNone
}

// langEntry maps a user-visible dialect name to its Lang bit. Alias entries
// are accepted on input but never produced on output.
type langEntry struct {
	name  string
	alias bool
	lang  Lang
}

var langTable = []langEntry{
	{"C", false, LangCNew},
	{"CK&R", true, LangCKNR},
	{"CKNR", true, LangCKNR},
	{"CKR", true, LangCKNR},
	{"K&R", true, LangCKNR},
	{"K&RC", false, LangCKNR},
	{"KNR", true, LangCKNR},
	{"KNRC", true, LangCKNR},
	{"KR", true, LangCKNR},
	{"KRC", true, LangCKNR},
	{"C78", true, LangCKNR},
	{"C89", false, LangC89},
	{"C90", true, LangC89},
	{"C95", false, LangC95},
	{"C99", false, LangC99},
	{"C11", false, LangC11},
	{"C17", false, LangC17},
	{"C18", true, LangC17},
	{"C23", false, LangC23},
	{"C2X", true, LangC23},
	{"C++", false, LangCPPNew},
	{"C++98", false, LangCPP98},
	{"C++03", false, LangCPP03},
	{"C++11", false, LangCPP11},
	{"C++14", false, LangCPP14},
	{"C++17", false, LangCPP17},
	{"C++20", false, LangCPP20},
	{"C++23", false, LangCPP23},
	{"C++2A", true, LangCPP20},
	{"C++2B", true, LangCPP23},
}

// FindLang returns the dialect named by name (case-insensitive), or
// LangNone if name is not a known dialect name.
func FindLang(name string) Lang {
	// The list is small, so linear search is good enough.
	for _, e := range langTable {
		if strings.EqualFold(name, e.name) {
			return e.lang
		}
	}
	return LangNone
}

// LangName returns the canonical name of the single dialect l.
func LangName(l Lang) string {
	switch l {
	case LangCKNR:
		return "K&RC"
	case LangC89:
		return "C89"
	case LangC95:
		return "C95"
	case LangC99:
		return "C99"
	case LangC11:
		return "C11"
	case LangC17:
		return "C17"
	case LangC23:
		return "C23"
	case LangCPP98:
		return "C++98"
	case LangCPP03:
		return "C++03"
	case LangCPP11:
		return "C++11"
	case LangCPP14:
		return "C++14"
	case LangCPP17:
		return "C++17"
	case LangCPP20:
		return "C++20"
	case LangCPP23:
		return "C++23"
	}
	return ""
}

// CoarseName returns "C" if langs contains only C dialects, "C++" if it
// contains only C++ dialects, and "" if it contains both or neither.
func CoarseName(langs Lang) string {
	c, cpp := IsC(langs), IsCPP(langs)
	if c != cpp {
		if c {
			return "C"
		}
		return "C++"
	}
	return ""
}

// Which returns a phrase like " in C++17", " until C23", or " in C++"
// completing a "not supported" message for a feature legal only in langs
// when the current dialect is cur.
func Which(langs, cur Lang) string {
	family := LangCAny
	if IsCPP(cur) {
		family = LangCPPAny
	}
	langs &= family
	if langs == LangNone {
		// The feature exists only in the other family.
		if family == LangCAny {
			return " in C"
		}
		return " in C++"
	}
	if cur < Oldest(langs) {
		return " until " + LangName(Oldest(langs))
	}
	return " in " + LangName(cur)
}
