package types

import "testing"

func TestFindLang(t *testing.T) {
	tests := []struct {
		name string
		want Lang
	}{
		{"C89", LangC89},
		{"c90", LangC89},
		{"K&R", LangCKNR},
		{"knr", LangCKNR},
		{"C18", LangC17},
		{"C", LangC23},
		{"C++", LangCPP23},
		{"c++17", LangCPP17},
		{"pascal", LangNone},
	}
	for _, tt := range tests {
		if got := FindLang(tt.name); got != tt.want {
			t.Fatalf("FindLang(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLangRanges(t *testing.T) {
	if got := CMin(LangC99); got&LangC99 == 0 || got&LangC23 == 0 || got&LangC89 != 0 || got&LangCPP11 != 0 {
		t.Fatalf("CMin(C99) = %v", got)
	}
	if got := CPPMax(LangCPP14); got&LangCPP98 == 0 || got&LangCPP14 == 0 || got&LangCPP17 != 0 {
		t.Fatalf("CPPMax(C++14) = %v", got)
	}
	if got := Min(LangC11); got&LangC11 == 0 || got&LangCPP98 == 0 || got&LangC99 != 0 {
		t.Fatalf("Min(C11) = %v", got)
	}
}

func TestOldestNewest(t *testing.T) {
	langs := LangC99 | LangC17 | LangCPP11
	if got := Oldest(langs); got != LangC99 {
		t.Fatalf("Oldest = %v, want C99", got)
	}
	if got := Newest(langs); got != LangCPP11 {
		t.Fatalf("Newest = %v, want C++11", got)
	}
}

func TestWhich(t *testing.T) {
	tests := []struct {
		langs Lang
		cur   Lang
		want  string
	}{
		{LangCAny | CPPMax(LangCPP14), LangCPP17, " in C++17"},
		{CMin(LangC23) | CPPMin(LangCPP11), LangC89, " until C23"},
		{LangCPPAny, LangC99, " in C"},
		{LangCAny, LangCPP11, " in C++"},
		{CPPMin(LangCPP11), LangCPP03, " until C++11"},
	}
	for _, tt := range tests {
		if got := Which(tt.langs, tt.cur); got != tt.want {
			t.Fatalf("Which(%v, %v) = %q, want %q", tt.langs, tt.cur, got, tt.want)
		}
	}
}

func TestCoarseName(t *testing.T) {
	if got := CoarseName(LangCAny); got != "C" {
		t.Fatalf("CoarseName(C) = %q", got)
	}
	if got := CoarseName(LangCPP11 | LangCPP14); got != "C++" {
		t.Fatalf("CoarseName(C++) = %q", got)
	}
	if got := CoarseName(LangAll); got != "" {
		t.Fatalf("CoarseName(all) = %q", got)
	}
}
