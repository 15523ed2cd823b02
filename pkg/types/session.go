// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// TechniqueData is the technique-specific working state of a session. Its
// key set is fixed at creation by the chosen technique (random words and
// associations for word association, anti-solutions for reverse
// brainstorming, theme grids for lotus blossom) and values are merged in
// per step. Kept as a map so exports render the raw shape, including keys
// that are still empty. Per prd001-session-engine R1.3, R3.1.
type TechniqueData map[string]any

// StepData is a caller-submitted payload for one step. Recognized fields
// depend on the session's technique and current step; an "ideas" field is
// honored at any step. Per prd001-session-engine R3.1-R3.3.
type StepData map[string]any

// Clone returns a deep copy of the payload, so the session never aliases
// caller-owned memory after a submission returns.
func (d StepData) Clone() StepData {
	if d == nil {
		return nil
	}
	return StepData(cloneValue(map[string]any(d)).(map[string]any))
}

// QualityAnalysis scores one submitted idea against the session's problem
// statement. All components and the composite lie in [0,1].
// Per prd002-lexical-analysis R5.1-R5.3.
type QualityAnalysis struct {
	// Novelty is 1 minus the idea's keyword similarity to the problem.
	Novelty float64 `json:"novelty" yaml:"novelty"`

	// Complexity grows with keyword count, saturating at 10 keywords.
	Complexity float64 `json:"complexity" yaml:"complexity"`

	// Specificity grows with word count, saturating at 20 words.
	Specificity float64 `json:"specificity" yaml:"specificity"`

	// Quality is the weighted composite: 0.4 novelty + 0.3 complexity + 0.3 specificity.
	Quality float64 `json:"quality" yaml:"quality"`

	// KeyConcepts holds the idea's first five extracted keywords.
	KeyConcepts []string `json:"key_concepts" yaml:"key_concepts"`
}

// IdeaRecord is one scored, attributed idea submitted during a session.
// Records are immutable once appended; the quality analysis is computed a
// single time, at submission, against the session's fixed problem statement.
// Per prd001-session-engine R3.2.
type IdeaRecord struct {
	// Step is the step index at which the idea was submitted.
	Step int `json:"step" yaml:"step"`

	// Timestamp is the submission time.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Text is the idea as submitted.
	Text string `json:"text" yaml:"text"`

	// Participant attributes the idea; "unknown" when the payload named none.
	Participant string `json:"participant" yaml:"participant"`

	// Quality is the lexical quality analysis computed at submission.
	Quality QualityAnalysis `json:"quality_analysis" yaml:"quality_analysis"`
}

// Session is one run of a technique against one problem statement.
// A session lives in the active store until finalized, then moves to
// history; it is never deleted. Per prd001-session-engine R1.2-R1.5.
type Session struct {
	// ID is an opaque identifier, unique across active and historical sessions.
	ID string `json:"id" yaml:"id"`

	// Technique is fixed for the session's lifetime; switching techniques
	// creates a new session rather than mutating this one.
	Technique Technique `json:"technique" yaml:"technique"`

	// ProblemStatement is set at creation and immutable thereafter.
	ProblemStatement string `json:"problem_statement" yaml:"problem_statement"`

	// StartTime is the creation time.
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// EndTime is set exactly once, at finalization. Nil while active.
	EndTime *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`

	// Participants is non-empty; a single placeholder is used when the
	// caller supplies none.
	Participants []string `json:"participants" yaml:"participants"`

	// CurrentStep is in [0, TotalSteps]; advances by exactly one per submission.
	CurrentStep int `json:"current_step" yaml:"current_step"`

	// TotalSteps is fixed per technique at creation (six for all three).
	TotalSteps int `json:"total_steps" yaml:"total_steps"`

	// Ideas is append-only, in submission order.
	Ideas []IdeaRecord `json:"ideas" yaml:"ideas"`

	// TechniqueData holds the technique-specific working state.
	TechniqueData TechniqueData `json:"technique_data" yaml:"technique_data"`
}

// Completed reports whether the session reached its final step.
func (s *Session) Completed() bool {
	return s.CurrentStep >= s.TotalSteps
}

// Clone returns a deep copy of the session. Status reads operate on clones
// so a concurrent mutation can never surface half-merged technique data.
// IdeaRecord slices share element backing (records are immutable once
// appended), but the slice headers and TechniqueData tree are independent.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Participants = append([]string(nil), s.Participants...)
	out.Ideas = append([]IdeaRecord(nil), s.Ideas...)
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	if s.TechniqueData != nil {
		out.TechniqueData = TechniqueData(cloneValue(map[string]any(s.TechniqueData)).(map[string]any))
	}
	return &out
}

// cloneValue deep-copies the JSON-shaped values technique data can hold:
// maps, slices, and scalars.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case TechniqueData:
		return cloneValue(map[string]any(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
