// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexical

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// sampleFactor sizes the candidate draw relative to the requested count
// (R4.1).
const sampleFactor = 3

// SuggestRandomWords draws a random sample of min(3*count, len(pool))
// distinct words from pool, scores each by lexical distance from the
// problem (1 - similarity), and returns the top count suggestions in
// descending score order. Ties keep sample order. The caller owns the
// rand source; sampling is the one declared nondeterminism in this
// package (R4.1-R4.3).
func SuggestRandomWords(problem string, pool []string, count int, rng *rand.Rand) []types.RandomWordSuggestion {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	sampleSize := sampleFactor * count
	if sampleSize > len(pool) {
		sampleSize = len(pool)
	}

	primaryDomain, _ := PrimaryDomain(problem)

	suggestions := make([]types.RandomWordSuggestion, 0, sampleSize)
	for _, idx := range rng.Perm(len(pool))[:sampleSize] {
		word := pool[idx]
		score := 1 - CalculateSimilarity(problem, word)
		suggestions = append(suggestions, types.RandomWordSuggestion{
			Word:            word,
			RandomnessScore: score,
			Reasoning: fmt.Sprintf("%q is lexically distant from your %s problem, inviting connections the usual vocabulary would not suggest",
				word, primaryDomain),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].RandomnessScore > suggestions[j].RandomnessScore
	})

	if len(suggestions) > count {
		suggestions = suggestions[:count]
	}
	return suggestions
}
