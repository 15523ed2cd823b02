// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexical

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func testPool() []string {
	return []string{
		"telescope", "bicycle", "lighthouse", "butterfly", "compass",
		"bridge", "fountain", "garden", "mountain", "river",
	}
}

func TestSuggestRandomWords(t *testing.T) {
	problem := "improve team collaboration in remote work environments"
	rng := rand.New(rand.NewSource(42))

	got := SuggestRandomWords(problem, testPool(), 3, rng)

	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}

	pool := make(map[string]bool)
	for _, w := range testPool() {
		pool[w] = true
	}
	for i, s := range got {
		if !pool[s.Word] {
			t.Errorf("suggestion %d word %q not from pool", i, s.Word)
		}
		if s.RandomnessScore < 0 || s.RandomnessScore > 1 {
			t.Errorf("suggestion %d score %v outside [0,1]", i, s.RandomnessScore)
		}
		if i > 0 && got[i-1].RandomnessScore < s.RandomnessScore {
			t.Errorf("scores not descending: %v then %v", got[i-1].RandomnessScore, s.RandomnessScore)
		}
		if !strings.Contains(s.Reasoning, "communication") {
			t.Errorf("reasoning %q should name the primary domain", s.Reasoning)
		}
	}
}

func TestSuggestRandomWordsDeterministicWithSeed(t *testing.T) {
	problem := "reduce shipping costs"

	a := SuggestRandomWords(problem, testPool(), 3, rand.New(rand.NewSource(7)))
	b := SuggestRandomWords(problem, testPool(), 3, rand.New(rand.NewSource(7)))

	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different suggestions:\n%+v\n%+v", a, b)
	}
}

func TestSuggestRandomWordsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if got := SuggestRandomWords("anything", nil, 3, rng); got != nil {
		t.Errorf("empty pool should give nil, got %+v", got)
	}
	if got := SuggestRandomWords("anything", testPool(), 0, rng); got != nil {
		t.Errorf("zero count should give nil, got %+v", got)
	}

	// Requesting more than the pool holds returns the whole pool, scored.
	got := SuggestRandomWords("anything", []string{"apple", "pear"}, 5, rng)
	if len(got) != 2 {
		t.Errorf("got %d suggestions, want 2 (pool exhausted)", len(got))
	}

	// The sample must not repeat words.
	seen := make(map[string]bool)
	for _, s := range SuggestRandomWords("anything", testPool(), 3, rng) {
		if seen[s.Word] {
			t.Errorf("word %q suggested twice", s.Word)
		}
		seen[s.Word] = true
	}
}
