// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bias screens contribution text for cognitive-bias wording and
// aggregates findings into per-session analytics. Detection is lexical:
// each bias family carries a fixed set of phrase patterns, scored by
// match density, plus counter-prompts that redirect the discussion.
// Implements: prd005-bias-audit (R1-R4);
//
//	docs/ARCHITECTURE § Bias Audit.
package bias

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Kind identifies one cognitive-bias family.
type Kind string

const (
	KindConfirmation   Kind = "confirmation_bias"
	KindAnchoring      Kind = "anchoring_bias"
	KindAvailability   Kind = "availability_bias"
	KindGroupthink     Kind = "groupthink"
	KindSunkCost       Kind = "sunk_cost_fallacy"
	KindOverconfidence Kind = "overconfidence_bias"
)

// AllKinds lists every bias family in scan order.
func AllKinds() []Kind {
	return []Kind{
		KindConfirmation,
		KindAnchoring,
		KindAvailability,
		KindGroupthink,
		KindSunkCost,
		KindOverconfidence,
	}
}

// Display returns the kind in human-readable form, e.g. "Sunk Cost Fallacy".
func (k Kind) Display() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Severity buckets a finding's score (R1.3): >=5 high, >=2 medium, >0 low.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// interruptThreshold is the overall score at or above which a single
// contribution warrants a real-time interruption (R3.1).
const interruptThreshold = 3.0

// Phrase patterns per family. Matching runs on lowercased text, so the
// patterns are written lowercase.
var patterns = map[Kind][]*regexp.Regexp{
	KindConfirmation: {
		regexp.MustCompile(`\b(obviously|clearly|definitely|certainly)\b`),
		regexp.MustCompile(`\b(everyone knows|it's common sense|goes without saying)\b`),
		regexp.MustCompile(`\b(proves my point|confirms what i thought)\b`),
	},
	KindAnchoring: {
		regexp.MustCompile(`\b(first|initial|original) (idea|thought|suggestion)\b`),
		regexp.MustCompile(`\b(start with|begin with|base it on)\b`),
		regexp.MustCompile(`\b(similar to|like the first|building on)\b`),
	},
	KindAvailability: {
		regexp.MustCompile(`\b(i just saw|recently read|heard about)\b`),
		regexp.MustCompile(`\b(trending|popular|viral|in the news)\b`),
		regexp.MustCompile(`\b(everyone's talking about|latest)\b`),
	},
	KindGroupthink: {
		regexp.MustCompile(`\b(we all agree|unanimous|consensus|everyone thinks)\b`),
		regexp.MustCompile(`\b(team decision|group choice|collective)\b`),
		regexp.MustCompile(`\b(let's stick with|go with the flow)\b`),
	},
	KindSunkCost: {
		regexp.MustCompile(`\b(already invested|spent so much|too far in)\b`),
		regexp.MustCompile(`\b(can't give up now|waste all that work)\b`),
		regexp.MustCompile(`\b(we've come this far)\b`),
	},
	KindOverconfidence: {
		regexp.MustCompile(`\b(definitely will|guaranteed|100% sure|certain success)\b`),
		regexp.MustCompile(`\b(easy to|simple to|no problem|piece of cake)\b`),
		regexp.MustCompile(`\b(obviously better|clearly superior)\b`),
	},
}

// Counter-prompts per family, strongest first. The first prompt is the
// one surfaced by interruptions.
var counterPrompts = map[Kind][]string{
	KindConfirmation: {
		"What evidence could challenge this assumption?",
		"How might someone with opposite views see this?",
		"What are we potentially overlooking?",
		"Can you play devil's advocate for a moment?",
	},
	KindAnchoring: {
		"Let's start fresh: what if we ignore the first idea?",
		"What would this look like from a completely different angle?",
		"How might we approach this if we had no preconceptions?",
		"What's an alternative starting point we haven't considered?",
	},
	KindAvailability: {
		"What examples are we NOT thinking of?",
		"How might this work in a completely different context?",
		"What's been tried before that isn't trending right now?",
		"Let's explore some unconventional references.",
	},
	KindGroupthink: {
		"Who might disagree with this consensus and why?",
		"What's a contrarian view we should explore?",
		"Let's assign someone to be the skeptic.",
		"What are the risks of this unanimous thinking?",
	},
	KindSunkCost: {
		"If we started from scratch today, what would we do?",
		"What would a new team member suggest?",
		"Is continuing the best use of our remaining resources?",
		"What opportunities are we missing by not pivoting?",
	},
	KindOverconfidence: {
		"What could go wrong with this approach?",
		"What assumptions are we making?",
		"How might we test this hypothesis first?",
		"What's our backup plan if this doesn't work?",
	},
}

// Finding reports one bias family detected in a piece of text.
type Finding struct {
	Bias     Kind     `json:"bias" yaml:"bias"`
	Matches  []string `json:"matches" yaml:"matches"`
	Score    float64  `json:"score" yaml:"score"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// Scan detects bias wording in text. Each family's score is the number
// of pattern matches per hundred words (R1.1-R1.2); families with no
// matches are omitted. Findings come back in scan order.
func Scan(text string) []Finding {
	words := len(strings.Fields(text))
	if words == 0 {
		return nil
	}
	lower := strings.ToLower(text)

	var findings []Finding
	for _, kind := range AllKinds() {
		var matches []string
		for _, re := range patterns[kind] {
			matches = append(matches, re.FindAllString(lower, -1)...)
		}
		if len(matches) == 0 {
			continue
		}
		score := round2(float64(len(matches)) / float64(words) * 100)
		findings = append(findings, Finding{
			Bias:     kind,
			Matches:  matches,
			Score:    score,
			Severity: severityFor(score),
		})
	}
	return findings
}

// OverallScore sums the per-family scores of a scan.
func OverallScore(findings []Finding) float64 {
	var total float64
	for _, f := range findings {
		total += f.Score
	}
	return round2(total)
}

// CounterPrompts returns up to n prompts targeting the highest-scoring
// findings, each tagged with the family that triggered it (R2.1).
func CounterPrompts(findings []Finding, n int) []string {
	if len(findings) == 0 || n <= 0 {
		return nil
	}
	ranked := append([]Finding(nil), findings...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if n > len(ranked) {
		n = len(ranked)
	}

	prompts := make([]string, 0, n)
	for _, f := range ranked[:n] {
		prompts = append(prompts, fmt.Sprintf("%s (detected: %s)", counterPrompts[f.Bias][0], f.Bias.Display()))
	}
	return prompts
}

// Interruption is the real-time verdict on a single contribution.
type Interruption struct {
	Interrupt bool     `json:"interrupt" yaml:"interrupt"`
	Score     float64  `json:"score" yaml:"score"`
	Message   string   `json:"message" yaml:"message"`
	Biases    []Kind   `json:"detected_biases,omitempty" yaml:"detected_biases,omitempty"`
	Prompt    string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Severity  Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// CheckInterrupt scans one contribution and decides whether the
// facilitator should break in before the discussion continues (R3.1).
func CheckInterrupt(text string) Interruption {
	findings := Scan(text)
	score := OverallScore(findings)
	if score < interruptThreshold {
		return Interruption{
			Interrupt: false,
			Score:     score,
			Message:   "No significant bias detected. Keep exploring.",
		}
	}

	severity := SeverityMedium
	if score >= 5 {
		severity = SeverityHigh
	}
	kinds := make([]Kind, 0, len(findings))
	for _, f := range findings {
		kinds = append(kinds, f.Bias)
	}
	prompt := "How might we approach this differently?"
	if p := CounterPrompts(findings, 1); len(p) > 0 {
		prompt = p[0]
	}
	return Interruption{
		Interrupt: true,
		Score:     score,
		Message:   "Bias alert: consider this from a different angle before continuing.",
		Biases:    kinds,
		Prompt:    prompt,
		Severity:  severity,
	}
}

func severityFor(score float64) Severity {
	switch {
	case score >= 5:
		return SeverityHigh
	case score >= 2:
		return SeverityMedium
	case score > 0:
		return SeverityLow
	default:
		return SeverityNone
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
