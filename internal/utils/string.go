package utils

import (
	"context"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// FindClosestString returns the candidate with the smallest edit distance to v, ok is false if no candidate
// is at a distance <= maxDifferences or if ctx is done.
func FindClosestString(ctx context.Context, candidates []string, v string, maxDifferences int) (closest string, distance int, ok bool) {
	distance = -1
	target := []rune(v)

	for _, candidate := range candidates {
		if ctx != nil && ctx.Err() != nil {
			return "", -1, false
		}

		d := levenshtein.DistanceForStrings([]rune(candidate), target, levenshtein.DefaultOptionsWithSub)
		if d <= maxDifferences && (distance == -1 || d < distance) {
			closest = candidate
			distance = d
		}
	}

	return closest, distance, distance != -1
}
