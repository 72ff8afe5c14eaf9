// Package lookup builds "did you mean ...?" suggestions for unknown
// identifiers using Damerau-Levenshtein edit distance.
package lookup

import "sort"

// Distance returns the Damerau-Levenshtein edit distance between source
// and target: the minimum number of insertions, deletions, substitutions,
// and adjacent transpositions needed to turn one into the other.
func Distance(source, target string) int {
	slen, tlen := len(source), len(target)
	if slen == 0 {
		return tlen
	}
	if tlen == 0 {
		return slen
	}

	// The zeroth row and column hold an "infinity" sentinel; the extra
	// last row and column keep transposition lookups in bounds.
	inf := slen + tlen
	m := make([][]int, slen+2)
	for i := range m {
		m[i] = make([]int, tlen+2)
	}
	m[0][0] = inf
	for i := 0; i <= slen; i++ {
		m[i+1][1] = i
		m[i+1][0] = inf
	}
	for j := 0; j <= tlen; j++ {
		m[1][j+1] = j
		m[0][j+1] = inf
	}

	// lastRow maps a byte to the row where it last appeared in source.
	var lastRow [256]int

	for row := 1; row <= slen; row++ {
		sc := source[row-1]

		// Last column in this row where source matched target.
		lastMatchCol := 0

		for col := 1; col <= tlen; col++ {
			tc := target[col-1]
			lastMatchRow := lastRow[tc]
			match := sc == tc

			sub := 1
			if match {
				sub = 0
			}

			dist := m[row][col+1] + 1 // insertion
			if d := m[row+1][col] + 1; d < dist {
				dist = d // deletion
			}
			if d := m[row][col] + sub; d < dist {
				dist = d // substitution
			}
			// Transposition with the last character found in both
			// strings; everything between counts as insert/delete.
			if d := m[lastMatchRow][lastMatchCol] +
				(row - lastMatchRow - 1) + (col - lastMatchCol - 1) + 1; d < dist {
				dist = d
			}
			m[row+1][col+1] = dist

			if match {
				lastMatchCol = col
			}
		}
		lastRow[sc] = row
	}
	return m[slen+1][tlen+1]
}

// Suggest returns the candidates within edit distance
// max(1, min(len(unknown), len(candidate))/4) of unknown, nearest first,
// ties broken alphabetically.
func Suggest(unknown string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var within []scored
	for _, c := range candidates {
		if c == unknown {
			continue
		}
		min := len(unknown)
		if len(c) < min {
			min = len(c)
		}
		threshold := min / 4
		if threshold < 1 {
			threshold = 1
		}
		if d := Distance(unknown, c); d <= threshold {
			within = append(within, scored{c, d})
		}
	}
	sort.Slice(within, func(i, j int) bool {
		if within[i].dist != within[j].dist {
			return within[i].dist < within[j].dist
		}
		return within[i].name < within[j].name
	})
	names := make([]string, len(within))
	for i, s := range within {
		names[i] = s.name
	}
	return names
}
