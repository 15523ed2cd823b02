// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"strings"

	"github.com/pdiddy/ideation-engine/internal/lexical"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// technique_data keys. Each technique's key set is seeded at session
// creation so exports always show the full shape.
const (
	keyRandomWords   = "random_words"
	keyWordAnalysis  = "word_analysis"
	keyAssociations  = "associations"
	keySelectedIdeas = "selected_ideas"

	keyReversedProblem   = "reversed_problem"
	keyAntiSolutions     = "anti_solutions"
	keyReversedSolutions = "reversed_solutions"
	keyFinalSolutions    = "final_solutions"

	keyCoreProblem      = "core_problem"
	keyPrimaryThemes    = "primary_themes"
	keyThemeGrids       = "theme_grids"
	keyConnections      = "connections"
	keySolutionClusters = "solution_clusters"

	keyPreservedFrom = "preserved_from_previous"
)

// Action tags produced by the step dispatch table.
const (
	actionAcknowledgeProblem  = "acknowledge_problem"
	actionSelectRandomWord    = "select_random_word"
	actionRandomWordGenerated = "random_word_generated"
	actionCollectAssociations = "collect_associations"
	actionDevelopIdeas        = "develop_ideas"
	actionEvaluateIdeas       = "evaluate_ideas"
	actionComplete            = "complete"

	actionStateOriginalProblem  = "state_original_problem"
	actionReverseProblem        = "reverse_problem"
	actionGenerateAntiSolutions = "generate_anti_solutions"
	actionReverseAnalysis       = "reverse_analysis"
	actionSynthesizeSolutions   = "synthesize_solutions"
	actionFeasibilityCheck      = "feasibility_check"

	actionEstablishCoreProblem = "establish_core_problem"
	actionIdentifyThemes       = "identify_themes"
	actionExpandThemes         = "expand_themes"
	actionMapConnections       = "map_connections"
	actionClusterSolutions     = "cluster_solutions"
	actionImplementationPath   = "implementation_path"
)

// seedTechniqueData returns the empty, technique-appropriate key set.
func seedTechniqueData(t types.Technique, problem string) types.TechniqueData {
	switch t {
	case types.TechniqueRandomWord:
		return types.TechniqueData{
			keyRandomWords:   []string{},
			keyAssociations:  map[string]any{},
			keySelectedIdeas: []string{},
		}
	case types.TechniqueReverse:
		return types.TechniqueData{
			keyReversedProblem:   "",
			keyAntiSolutions:     []string{},
			keyReversedSolutions: []string{},
			keyFinalSolutions:    []string{},
		}
	case types.TechniqueLotus:
		return types.TechniqueData{
			keyCoreProblem:      problem,
			keyPrimaryThemes:    []string{},
			keyThemeGrids:       map[string]any{},
			keyConnections:      []string{},
			keySolutionClusters: []string{},
		}
	}
	return types.TechniqueData{}
}

// reversedProblem phrases the inverted challenge for reverse
// brainstorming.
func reversedProblem(problem string) string {
	return fmt.Sprintf("How could we make '%s' much worse?", problem)
}

// stepHandler produces the next-action payload for one step. Handlers
// are pure functions of the session; the one write the word-association
// flow needs at step 1 lives in DrawRandomWord instead.
type stepHandler func(s *types.Session) types.StepAction

var stepHandlers = map[types.Technique][]stepHandler{
	types.TechniqueRandomWord: {
		randomWordAcknowledge,
		randomWordSelect,
		randomWordAssociations,
		randomWordDevelop,
		randomWordEvaluate,
		randomWordWrapUp,
	},
	types.TechniqueReverse: {
		reverseStateProblem,
		reverseInvertProblem,
		reverseAntiSolutions,
		reverseAnalysis,
		reverseSynthesize,
		reverseFeasibility,
	},
	types.TechniqueLotus: {
		lotusCoreProblem,
		lotusIdentifyThemes,
		lotusExpandThemes,
		lotusMapConnections,
		lotusClusterSolutions,
		lotusImplementationPath,
	},
}

// dispatchStep routes to the technique- and step-specific handler. A
// step index past the table dispatches to the terminal action.
func dispatchStep(s *types.Session) types.StepAction {
	handlers, ok := stepHandlers[s.Technique]
	if !ok || s.CurrentStep >= len(handlers) {
		return types.StepAction{
			Action:      actionComplete,
			Message:     "Session completed",
			NextOptions: completionNextOptions(),
		}
	}
	return handlers[s.CurrentStep](s)
}

// --- random word association ---

func randomWordAcknowledge(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionAcknowledgeProblem,
		Message:     "Review and confirm the problem statement",
		Prompt:      fmt.Sprintf("Problem: %s", s.ProblemStatement),
		Instruction: "Is this problem statement clear and well-defined?",
	}
}

func randomWordSelect(s *types.Session) types.StepAction {
	words := stringsOf(s.TechniqueData[keyRandomWords])
	if len(words) == 0 {
		return types.StepAction{
			Action:      actionSelectRandomWord,
			Message:     "Draw a random stimulus word for this session",
			Prompt:      "No word has been drawn yet",
			Instruction: "Request a word draw; the word bank picks one far from your problem's vocabulary",
		}
	}

	word := words[len(words)-1]
	reasoning := ""
	if analysis := mapOf(s.TechniqueData[keyWordAnalysis]); analysis != nil {
		reasoning, _ = analysis["reasoning"].(string)
	}

	questions := []string{
		fmt.Sprintf("How is '%s' similar to your problem?", word),
		fmt.Sprintf("What properties of '%s' could inspire solutions?", word),
		fmt.Sprintf("If your problem was a '%s', how would you handle it?", word),
	}
	followUps := lexical.GenerateFollowUpQuestions(s.ProblemStatement, s.Technique)
	if len(followUps) > 3 {
		followUps = followUps[:3]
	}
	questions = append(questions, followUps...)

	return types.StepAction{
		Action:    actionRandomWordGenerated,
		Message:   fmt.Sprintf("Your random word is: **%s**", strings.ToUpper(word)),
		Word:      word,
		Reasoning: reasoning,
		Prompt:    "Spend 5 minutes associating this word with your problem",
		Questions: questions,
	}
}

func randomWordAssociations(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionCollectAssociations,
		Message:     "Record your associations between the random word and problem",
		Prompt:      "What connections did you discover?",
		Instruction: "List at least 5 associations or metaphors",
	}
}

func randomWordDevelop(s *types.Session) types.StepAction {
	action := types.StepAction{
		Action:      actionDevelopIdeas,
		Message:     "Transform your best associations into concrete ideas",
		Prompt:      "Develop 3-5 actionable solutions from your associations",
		Instruction: "Focus on the most promising connections",
	}

	if associations := mapOf(s.TechniqueData[keyAssociations]); len(associations) > 0 {
		total, n := 0.0, 0
		for _, v := range associations {
			text, ok := v.(string)
			if !ok {
				continue
			}
			total += lexical.AnalyzeIdeaQuality(text, s.ProblemStatement).Quality
			n++
		}
		if n > 0 {
			action.Analysis = fmt.Sprintf("Association quality score: %.2f/1.0", total/float64(n))
		}
	}
	return action
}

func randomWordEvaluate(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:   actionEvaluateIdeas,
		Message:  "Evaluate and refine your generated ideas",
		Prompt:   "Which ideas show the most potential?",
		Criteria: []string{"Feasibility", "Novelty", "Impact", "Resources required"},
	}
}

func randomWordWrapUp(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:  actionComplete,
		Message: "Random Word Association session complete!",
		NextOptions: []string{
			"Try another random word",
			"Switch to different technique",
			"Develop selected ideas further",
		},
	}
}

// --- reverse brainstorming ---

func reverseStateProblem(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionStateOriginalProblem,
		Message:     "Confirm the original problem statement",
		Prompt:      fmt.Sprintf("Original problem: %s", s.ProblemStatement),
		Instruction: "Make sure everyone understands the challenge",
	}
}

func reverseInvertProblem(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionReverseProblem,
		Message:     "Now we'll think backwards - how to make it WORSE",
		Prompt:      reversedProblem(s.ProblemStatement),
		Instruction: "Brainstorm ways to cause failure or create more problems; embrace destructive and absurd ideas",
	}
}

func reverseAntiSolutions(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:  actionGenerateAntiSolutions,
		Message: "Generate anti-solutions (ways to make problem worse)",
		Prompt:  "What would guarantee failure?",
		Examples: []string{
			"Ignore customer feedback completely",
			"Use the most expensive materials possible",
			"Never test anything before launch",
			"Hire people with no relevant experience",
		},
	}
}

func reverseAnalysis(s *types.Session) types.StepAction {
	action := types.StepAction{
		Action:      actionReverseAnalysis,
		Message:     "Now reverse each anti-solution into a positive approach",
		Prompt:      "For each way to make it worse, what's the opposite?",
		Instruction: "Transform destructive ideas into constructive solutions",
	}

	// Suggest an inversion for every recorded anti-solution.
	antiSolutions := stringsOf(s.TechniqueData[keyAntiSolutions])
	for _, anti := range antiSolutions {
		action.Examples = append(action.Examples, lexical.InvertAntiSolution(anti))
	}
	return action
}

func reverseSynthesize(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionSynthesizeSolutions,
		Message:     "Combine and refine your reversed solutions",
		Prompt:      "Which reversed ideas offer the best solutions?",
		Instruction: "Look for unexpected insights from the reversal process",
	}
}

func reverseFeasibility(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:   actionFeasibilityCheck,
		Message:  "Evaluate feasibility and implementation potential",
		Prompt:   "Which solutions are most implementable?",
		Criteria: []string{"Practicality", "Resources", "Timeline", "Impact"},
	}
}

// --- lotus blossom ---

func lotusCoreProblem(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionEstablishCoreProblem,
		Message:     "Place your core problem at the center",
		Prompt:      fmt.Sprintf("Core problem: %s", s.ProblemStatement),
		Instruction: "This goes in the center of your 3x3 grid",
	}
}

func lotusIdentifyThemes(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:  actionIdentifyThemes,
		Message: "Identify 8 key themes/aspects around the core problem",
		Prompt:  "What are the main dimensions of this problem?",
		Examples: []string{
			"Technical aspects", "User experience", "Cost factors",
			"Time constraints", "Resource needs", "Risk factors",
			"Market conditions", "Implementation challenges",
		},
		Instruction: "These themes will surround your core problem",
	}
}

func lotusExpandThemes(s *types.Session) types.StepAction {
	action := types.StepAction{
		Action:      actionExpandThemes,
		Message:     "Create a new 3x3 grid for each theme",
		Prompt:      "For each theme, generate 8 related ideas/solutions",
		Instruction: "You'll create 8 separate grids, one for each theme",
	}
	// Echo the themes recorded in the previous step.
	if themes := stringsOf(s.TechniqueData[keyPrimaryThemes]); len(themes) > 0 {
		action.Examples = themes
	}
	return action
}

func lotusMapConnections(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionMapConnections,
		Message:     "Look for connections between ideas across different themes",
		Prompt:      "Which ideas from different grids relate to each other?",
		Instruction: "Draw lines or use colors to show relationships",
	}
}

func lotusClusterSolutions(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:      actionClusterSolutions,
		Message:     "Group related ideas into solution clusters",
		Prompt:      "Which ideas work together as integrated solutions?",
		Instruction: "Create 3-5 solution families from your connections",
	}
}

func lotusImplementationPath(s *types.Session) types.StepAction {
	return types.StepAction{
		Action:   actionImplementationPath,
		Message:  "Design implementation roadmap for best clusters",
		Prompt:   "How would you implement your top solution clusters?",
		Criteria: []string{"Priority order", "Dependencies", "Resources", "Timeline"},
	}
}

// --- loose payload readers ---

// stringsOf extracts a string slice from a technique_data value,
// tolerating the []any shape JSON decoding produces. Non-string
// elements are skipped.
func stringsOf(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// mapOf extracts a string-keyed map from a technique_data value.
func mapOf(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
