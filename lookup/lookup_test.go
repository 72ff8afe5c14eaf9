package lookup

import (
	"reflect"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "acb", 1},  // transposition
		{"ca", "abc", 2},   // transposition plus an insertion between the pair
		{"int", "itn", 1},
		{"unsigned", "unsinged", 1},
		{"const", "conts", 1},
		{"wchar_t", "wchart", 1},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Fatalf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"unsigned", "union", "unknown", "int", "uint8_t"}
	got := Suggest("unsinged", candidates)
	want := []string{"unsigned"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggest = %v, want %v", got, want)
	}

	// Short identifiers only get a threshold of one.
	if got := Suggest("itn", []string{"int", "union"}); len(got) != 1 || got[0] != "int" {
		t.Fatalf("Suggest(itn) = %v", got)
	}

	// Ties are broken alphabetically.
	got = Suggest("ab", []string{"ac", "aa"})
	want = []string{"aa", "ac"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggest tie order = %v, want %v", got, want)
	}
}
