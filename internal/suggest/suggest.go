// Package suggest picks the closest known name for "did you mean" hints.
package suggest

import "github.com/agnivade/levenshtein"

// Closest returns the candidate nearest to name, or "" when nothing is close
// enough to be a plausible typo. Ties resolve to the lexically smaller name.
func Closest(name string, candidates []string) string {
	best, bestDistance := "", -1
	for _, candidate := range candidates {
		distance := levenshtein.ComputeDistance(name, candidate)
		if distance > len(candidate)/2+1 {
			continue
		}
		if bestDistance < 0 || distance < bestDistance || (distance == bestDistance && candidate < best) {
			best, bestDistance = candidate, distance
		}
	}
	return best
}
