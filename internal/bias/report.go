// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bias

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Contribution is one participant statement to audit.
type Contribution struct {
	Participant string `json:"participant" yaml:"participant"`
	Text        string `json:"text" yaml:"text"`
}

// contributionsFile is the on-disk YAML schema for `bias report`:
//
//	contributions:
//	  - participant: alice
//	    text: Obviously this is the best idea.
type contributionsFile struct {
	Contributions []Contribution `yaml:"contributions"`
}

// LoadContributions reads an audit input file (R4.2).
func LoadContributions(path string) ([]Contribution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contributions: %w", err)
	}
	var cf contributionsFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing contributions %s: %w", path, err)
	}
	if len(cf.Contributions) == 0 {
		return nil, fmt.Errorf("contributions file %s is empty", path)
	}
	return cf.Contributions, nil
}

// Trend classifies how bias density moved across a session.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Report aggregates scan results over a whole session (R4.1).
type Report struct {
	Contributions   int            `json:"contributions" yaml:"contributions"`
	Participants    int            `json:"participants" yaml:"participants"`
	TotalFindings   int            `json:"total_findings" yaml:"total_findings"`
	ByKind          map[Kind]int   `json:"by_kind" yaml:"by_kind"`
	ByParticipant   map[string]int `json:"by_participant" yaml:"by_participant"`
	MostCommon      Kind           `json:"most_common_bias,omitempty" yaml:"most_common_bias,omitempty"`
	MostBiased      string         `json:"most_biased_participant,omitempty" yaml:"most_biased_participant,omitempty"`
	ScoresOverTime  []float64      `json:"scores_over_time" yaml:"scores_over_time"`
	Trend           Trend          `json:"trend" yaml:"trend"`
	ShouldInterrupt bool           `json:"should_interrupt" yaml:"should_interrupt"`
	Recommendations []string       `json:"recommendations" yaml:"recommendations"`
}

// Analyze scans every contribution and rolls the findings up into a
// session report. Scores over time carry one entry per contribution:
// the mean finding score, zero when the contribution was clean (R4.1).
func Analyze(contribs []Contribution) Report {
	r := Report{
		Contributions: len(contribs),
		ByKind:        make(map[Kind]int),
		ByParticipant: make(map[string]int),
	}

	seen := make(map[string]bool)
	scores := make([]float64, 0, len(contribs))
	for _, c := range contribs {
		findings := Scan(c.Text)
		r.TotalFindings += len(findings)
		for _, f := range findings {
			r.ByKind[f.Bias]++
		}
		if !seen[c.Participant] {
			seen[c.Participant] = true
			r.Participants++
		}
		r.ByParticipant[c.Participant] += len(findings)

		overall := OverallScore(findings)
		if overall >= interruptThreshold {
			r.ShouldInterrupt = true
		}
		mean := 0.0
		if len(findings) > 0 {
			mean = round2(overall / float64(len(findings)))
		}
		scores = append(scores, mean)
	}

	r.ScoresOverTime = scores
	r.MostCommon = mostCommonKind(r.ByKind)
	r.MostBiased = mostBiasedParticipant(r.ByParticipant)
	r.Trend = trendOf(scores)
	r.Recommendations = recommendations(r)
	return r
}

// mostCommonKind breaks count ties by scan order.
func mostCommonKind(counts map[Kind]int) Kind {
	var best Kind
	bestCount := 0
	for _, kind := range AllKinds() {
		if counts[kind] > bestCount {
			best = kind
			bestCount = counts[kind]
		}
	}
	return best
}

// mostBiasedParticipant breaks count ties alphabetically.
func mostBiasedParticipant(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var best string
	bestCount := 0
	for _, name := range names {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}

// trendOf compares the mean score of the session's second half against
// its first half. Fewer than two contributions is always stable (R4.3).
func trendOf(scores []float64) Trend {
	if len(scores) < 2 {
		return TrendStable
	}
	half := len(scores) / 2
	first := mean(scores[:half])
	second := mean(scores[half:])
	switch {
	case second < first:
		return TrendImproving
	case second > first:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}

// recommendations derives facilitator guidance from the rolled-up
// counts (R4.4).
func recommendations(r Report) []string {
	var recs []string
	if r.MostCommon != "" {
		recs = append(recs, fmt.Sprintf(
			"Focus on %s wording first; it appeared most often.",
			strings.ReplaceAll(string(r.MostCommon), "_", " ")))
	}
	if r.Participants > 0 && float64(r.TotalFindings)/float64(r.Participants) > 3 {
		recs = append(recs, "Add a structured bias checkpoint before each step.")
	}
	if distinctCounts(r.ByParticipant) > 1 {
		recs = append(recs, "Encourage peer review; bias levels vary across participants.")
	}
	recs = append(recs, "Use counter-prompts to interrupt bias loops in real time.")
	return recs
}

func distinctCounts(counts map[string]int) int {
	seen := make(map[int]bool, len(counts))
	for _, n := range counts {
		seen[n] = true
	}
	return len(seen)
}
