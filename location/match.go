package location

import (
	"strings"

	"github.com/xrash/smetrics"
)

// SimilarityThreshold is the minimum similarity ratio at which two
// normalized names are considered the same place.
const SimilarityThreshold = 0.6

// Matches reports whether two location names refer to the same place.
//
// Both names are normalized first. They match when they are equal, when
// either contains the other, or when their similarity ratio reaches
// SimilarityThreshold. Empty names never match anything.
func Matches(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb || strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return Similarity(na, nb) >= SimilarityThreshold
}

// Similarity returns 2*M/T where M is the length of the longest common
// subsequence of a and b and T is their combined length. Identical strings
// score 1, strings with nothing in common score 0.
func Similarity(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	// With substitution priced as delete+insert the edit distance counts
	// exactly the bytes outside the common subsequence.
	d := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return float64(total-d) / float64(total)
}

// CityMatches is the looser test used when filtering hotels by city: equal
// or substring either way, without fuzzy similarity.
func CityMatches(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
