package matching

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// unitCost weighs insertion, deletion and substitution equally. The library default
// counts a substitution as 2.
var unitCost = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// editDistance is the classic edit distance between a and b, counted in runes.
// Comparison is case-sensitive.
func editDistance(a, b []rune) int {
	return levenshtein.DistanceForStrings(a, b, unitCost)
}

// Similarity returns (longest - distance) / longest, a value in [0,1].
// Two empty strings are identical. Callers lower-case before calling.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}
	distance := editDistance(ra, rb)
	return float64(longest-distance) / float64(longest)
}
