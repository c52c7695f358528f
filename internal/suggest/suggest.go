// Package suggest proposes catalog unit names for mistyped input.
package suggest

import (
	"strings"

	"github.com/starford/unitconv/internal/units"
)

// MaxDistance is the largest edit distance that still yields a suggestion.
// It is absolute, so very short inputs can match loosely.
const MaxDistance = 3

// Suggest returns the canonical name of the unit closest to input.
//
// Each unit's name is compared first, then its symbol without the degree
// mark. Only a strictly smaller distance replaces the current best, so the
// earliest catalog entry wins ties.
func Suggest(input string) (string, bool) {
	in := strings.ToLower(input)
	best := ""
	bestDist := -1

	for _, u := range units.All() {
		if d := Distance(in, u.Name()); bestDist < 0 || d < bestDist {
			best, bestDist = u.Name(), d
		}
		sym := strings.ToLower(strings.ReplaceAll(u.Symbol(), "°", ""))
		if d := Distance(in, sym); d < bestDist {
			best, bestDist = u.Name(), d
		}
	}

	if bestDist < 0 || bestDist > MaxDistance {
		return "", false
	}
	return best, true
}

// Distance returns the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
