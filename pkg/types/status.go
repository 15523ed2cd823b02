// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StepAction is the structured payload a step handler produces: an action
// tag plus whichever prompt fields the step needs. Handlers populate a
// subset; empty fields are omitted from serialized output.
// Per prd001-session-engine R2.2.
type StepAction struct {
	// Action tags the handler outcome (e.g. "collect_associations",
	// "reverse_problem", "complete").
	Action string `json:"action" yaml:"action"`

	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	Prompt      string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Instruction string `json:"instruction,omitempty" yaml:"instruction,omitempty"`

	// Word and Reasoning carry the random-word draw for word association.
	Word      string `json:"word,omitempty" yaml:"word,omitempty"`
	Reasoning string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`

	Questions []string `json:"questions,omitempty" yaml:"questions,omitempty"`
	Examples  []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Criteria  []string `json:"criteria,omitempty" yaml:"criteria,omitempty"`

	// Analysis carries a computed observation about data collected so
	// far, such as the average quality of recorded associations.
	Analysis string `json:"analysis,omitempty" yaml:"analysis,omitempty"`

	// NextOptions lists suggested follow-ups on the terminal action.
	NextOptions []string `json:"next_options,omitempty" yaml:"next_options,omitempty"`
}

// TechniqueInfo is the catalog excerpt attached to every status payload.
type TechniqueInfo struct {
	Overview string `json:"overview" yaml:"overview"`
	Duration string `json:"duration" yaml:"duration"`
}

// SessionStatus is the read-only progress snapshot for an active session.
// Per prd001-session-engine R2.1-R2.4.
type SessionStatus struct {
	SessionID        string    `json:"session_id" yaml:"session_id"`
	Technique        Technique `json:"technique" yaml:"technique"`
	TechniqueName    string    `json:"technique_name" yaml:"technique_name"`
	ProblemStatement string    `json:"problem_statement" yaml:"problem_statement"`

	// Progress renders as "current/total" for display.
	Progress        string  `json:"progress" yaml:"progress"`
	ProgressPercent float64 `json:"progress_percentage" yaml:"progress_percentage"`
	CurrentStep     int     `json:"current_step" yaml:"current_step"`
	TotalSteps      int     `json:"total_steps" yaml:"total_steps"`

	// CurrentInstruction is the catalog instruction for the current step,
	// or the completion sentinel once every step is done.
	CurrentInstruction string `json:"current_instruction" yaml:"current_instruction"`

	// NextAction is the technique- and step-specific handler output.
	NextAction StepAction `json:"next_action" yaml:"next_action"`

	TechniqueInfo TechniqueInfo `json:"technique_info" yaml:"technique_info"`
	Participants  []string      `json:"participants" yaml:"participants"`
	IdeasCount    int           `json:"ideas_count" yaml:"ideas_count"`

	// DurationMinutes is elapsed wall time since start, one decimal.
	DurationMinutes float64 `json:"session_duration_minutes" yaml:"session_duration_minutes"`
}

// RandomWordSuggestion is one stimulus word scored for distance from the
// problem domain. Per prd002-lexical-analysis R4.1-R4.3.
type RandomWordSuggestion struct {
	// Word is the suggested stimulus word.
	Word string `json:"word" yaml:"word"`

	// RandomnessScore is 1 minus the word's keyword similarity to the
	// problem; higher means further from the problem's vocabulary.
	RandomnessScore float64 `json:"randomness_score" yaml:"randomness_score"`

	// Reasoning explains the pick, naming the problem's primary domain.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}

// IdeaCluster groups lexically similar ideas under a keyword theme.
// Per prd002-lexical-analysis R6.1-R6.3.
type IdeaCluster struct {
	// Ideas lists member texts, first member = cluster representative.
	Ideas []string `json:"ideas" yaml:"ideas"`

	// Theme joins the top keywords of the concatenated member texts.
	Theme string `json:"theme" yaml:"theme"`

	// Size is len(Ideas), denormalized for report rendering.
	Size int `json:"size" yaml:"size"`
}

// ActionPlanEntry turns one synthesized solution into concrete next steps.
// Produced for reverse-brainstorming completions.
// Per prd002-lexical-analysis R8.3.
type ActionPlanEntry struct {
	Solution        string   `json:"solution" yaml:"solution"`
	NextSteps       []string `json:"next_steps" yaml:"next_steps"`
	SuggestedMetric string   `json:"suggested_metric" yaml:"suggested_metric"`
}

// SessionSummary is the finalize-time digest of a session. The fixed
// fields are always present; technique-specific fields are populated for
// the matching technique only. Per prd001-session-engine R5.1-R5.4.
type SessionSummary struct {
	TechniqueUsed       Technique `json:"technique_used" yaml:"technique_used"`
	ProblemStatement    string    `json:"problem_statement" yaml:"problem_statement"`
	DurationMinutes     float64   `json:"duration_minutes" yaml:"duration_minutes"`
	Participants        []string  `json:"participants" yaml:"participants"`
	TotalIdeasGenerated int       `json:"total_ideas_generated" yaml:"total_ideas_generated"`
	StepsCompleted      int       `json:"steps_completed" yaml:"steps_completed"`
	CompletionRate      float64   `json:"completion_rate" yaml:"completion_rate"`

	// Random word association.
	WordsUsed         []string `json:"words_used,omitempty" yaml:"words_used,omitempty"`
	AssociationsCount int      `json:"associations_count,omitempty" yaml:"associations_count,omitempty"`

	// Reverse brainstorming.
	ReversedProblem     string            `json:"reversed_problem,omitempty" yaml:"reversed_problem,omitempty"`
	AntiSolutionsCount  int               `json:"anti_solutions_count,omitempty" yaml:"anti_solutions_count,omitempty"`
	FinalSolutionsCount int               `json:"final_solutions_count,omitempty" yaml:"final_solutions_count,omitempty"`
	ActionPlan          []ActionPlanEntry `json:"action_plan,omitempty" yaml:"action_plan,omitempty"`

	// Lotus blossom.
	ThemesExplored []string `json:"themes_explored,omitempty" yaml:"themes_explored,omitempty"`
	GridsCompleted int      `json:"grids_completed,omitempty" yaml:"grids_completed,omitempty"`

	// Lexical insights over all submitted ideas.
	IdeaClusters       []IdeaCluster `json:"idea_clusters,omitempty" yaml:"idea_clusters,omitempty"`
	AverageIdeaQuality float64       `json:"average_idea_quality" yaml:"average_idea_quality"`
}

// CompletionResult is returned when a session finalizes, either by
// finishing its last step or through a technique switch.
// Per prd001-session-engine R5.5.
type CompletionResult struct {
	Status      string         `json:"status" yaml:"status"`
	SessionID   string         `json:"session_id" yaml:"session_id"`
	Technique   Technique      `json:"technique" yaml:"technique"`
	Summary     SessionSummary `json:"summary" yaml:"summary"`
	NextOptions []string       `json:"next_options" yaml:"next_options"`
}

// SubmitResult carries the outcome of one step submission: a progress
// status while the session is mid-flight, or the completion result when
// the submission finished the last step. Exactly one field is set.
type SubmitResult struct {
	Status     *SessionStatus    `json:"status,omitempty" yaml:"status,omitempty"`
	Completion *CompletionResult `json:"completion,omitempty" yaml:"completion,omitempty"`
}

// Completed reports whether the submission finalized the session.
func (r *SubmitResult) Completed() bool {
	return r != nil && r.Completion != nil
}
