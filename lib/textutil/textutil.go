package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and removes all of its whitespace.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// MatchName reports whether the normalized name contains any of matchers.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, NormalizeName(m)) {
			return true
		}
	}
	return false
}

// Closest returns the candidate most similar to name by Jaro-Winkler
// distance of the normalized strings, along with its score.
func Closest(name string, candidates []string) (string, float64) {
	normalized := NormalizeName(name)
	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		score := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}
