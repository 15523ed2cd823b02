// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexical implements the deterministic text analytics behind idea
// scoring: keyword extraction, domain categorization, set similarity,
// quality scoring, clustering, and prompt generation. Everything here is
// frequency counting and set overlap over tokenized text; there is no
// language model anywhere in the package.
// Implements: prd002-lexical-analysis (R1-R8);
//
//	docs/ARCHITECTURE § Lexical Analysis.
package lexical

import (
	"regexp"
	"sort"
	"strings"
)

// wordRe matches lowercase alphabetic runs; digits and punctuation split
// tokens (R1.1).
var wordRe = regexp.MustCompile(`[a-z]+`)

// maxKeywords caps the extracted keyword list (R1.3).
const maxKeywords = 10

// stopWords is the fixed English function-word set dropped during
// extraction (R1.2).
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"up": true, "about": true, "into": true, "through": true,
	"during": true, "before": true, "after": true, "above": true,
	"below": true, "between": true, "among": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true,
	"being": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true,
	"must": true, "can": true, "this": true, "that": true,
	"these": true, "those": true,
}

// domainOrder fixes the iteration order for domain scoring so ties
// resolve the same way on every run (R2.2).
var domainOrder = []string{
	"technology", "business", "design", "communication", "process", "people",
}

// domainKeywords maps each problem domain to its representative vocabulary
// (R2.1).
var domainKeywords = map[string][]string{
	"technology":    {"software", "app", "digital", "platform", "system", "algorithm", "ai", "ml", "data"},
	"business":      {"revenue", "profit", "market", "customer", "sales", "growth", "strategy", "competition"},
	"design":        {"user", "interface", "experience", "visual", "layout", "aesthetic", "usability", "design"},
	"communication": {"team", "collaboration", "meeting", "feedback", "information", "message", "discussion"},
	"process":       {"workflow", "efficiency", "optimization", "procedure", "method", "process", "improvement"},
	"people":        {"employee", "staff", "management", "leadership", "culture", "motivation", "engagement"},
}

// ExtractKeywords tokenizes text into lowercase alphabetic runs, drops
// stop words and tokens of length <= 2, and returns up to ten keywords
// ordered by descending frequency, ties broken by first occurrence
// (R1.1-R1.4).
func ExtractKeywords(text string) []string {
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)

	type tally struct {
		count int
		first int
	}
	counts := make(map[string]*tally)
	for i, tok := range tokens {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		if t, ok := counts[tok]; ok {
			t.count++
		} else {
			counts[tok] = &tally{count: 1, first: i}
		}
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		a, b := counts[words[i]], counts[words[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})

	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}
	return words
}

// CategorizeProblem scores text against every domain: confidence is the
// fraction of the domain's vocabulary present in the extracted keywords.
// Every domain appears in the result, zero-overlap domains score 0 (R2.1).
func CategorizeProblem(text string) map[string]float64 {
	keywords := keywordSet(text)
	scores := make(map[string]float64, len(domainOrder))
	for _, domain := range domainOrder {
		vocab := domainKeywords[domain]
		overlap := 0
		for _, w := range vocab {
			if keywords[w] {
				overlap++
			}
		}
		scores[domain] = float64(overlap) / float64(len(vocab))
	}
	return scores
}

// PrimaryDomain returns the highest-confidence domain for text. Ties keep
// the earlier domain in catalog order; when nothing matches at all the
// domain is "general" with confidence 0 (R2.2).
func PrimaryDomain(text string) (string, float64) {
	scores := CategorizeProblem(text)
	best, bestScore := "", 0.0
	for _, domain := range domainOrder {
		if s := scores[domain]; s > bestScore {
			best, bestScore = domain, s
		}
	}
	if best == "" {
		return "general", 0
	}
	return best, bestScore
}

// CalculateSimilarity computes the Jaccard similarity of the two texts'
// keyword sets. Returns 0 when either set is empty, including the case
// where both are empty (R3.1-R3.2).
func CalculateSimilarity(a, b string) float64 {
	setA := keywordSet(a)
	setB := keywordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// keywordSet returns the extracted keywords of text as a set.
func keywordSet(text string) map[string]bool {
	words := ExtractKeywords(text)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
