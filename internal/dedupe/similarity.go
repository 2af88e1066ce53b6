// Package dedupe finds probable duplicate person records.
//
// Names are compared token by token with a normalized Damerau-Levenshtein
// similarity. Comparison only runs once an exact field (email, phone or date
// of birth) already matches, which keeps unrelated people who happen to share
// a common name from being flagged.
package dedupe

import "strings"

// Tokens lowercases name, trims it and splits it on runs of whitespace.
func Tokens(name string) []string {
	return strings.Fields(strings.ToLower(name))
}

// Distance returns the optimal string alignment distance between a and b:
// insertions, deletions, substitutions and adjacent transpositions each cost 1.
// It works on runes so accented names count one edit per letter.
func Distance(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && s1[i-1] == s2[j-2] && s1[i-2] == s2[j-1] {
				matrix[i][j] = min(matrix[i][j], matrix[i-2][j-2]+1) // transposition
			}
		}
	}

	return matrix[len(s1)][len(s2)]
}

// Similarity maps Distance onto [0, 1], where 1 means identical.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}

// NamesSimilar reports whether two full names plausibly belong to the same person.
//
// The first tokens (given names) must reach threshold. If both names are a
// single token that is enough; otherwise at least one pair drawn from the
// remaining tokens of each name must also reach threshold, so "Maria Silva"
// matches "Maria Souza Silva" but not "Maria Souza".
func NamesSimilar(a, b string, threshold float64) bool {
	ta, tb := Tokens(a), Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}

	if Similarity(ta[0], tb[0]) < threshold {
		return false
	}
	if len(ta) == 1 && len(tb) == 1 {
		return true
	}

	for _, x := range ta[1:] {
		for _, y := range tb[1:] {
			if Similarity(x, y) >= threshold {
				return true
			}
		}
	}
	return false
}
