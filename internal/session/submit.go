// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/ideation-engine/internal/lexical"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// SubmitStepData records the payload for the session's current step and
// advances by exactly one step. The payload is validated before any
// state changes, so a rejected submission leaves the session untouched.
// When the advance lands on the final step count the session finalizes
// immediately and the result carries the completion instead of a status.
func (o *Orchestrator) SubmitStepData(sessionID string, data types.StepData) (*types.SubmitResult, error) {
	data = data.Clone()

	var result *types.SubmitResult
	err := o.store.Mutate(sessionID, func(s *types.Session) error {
		merge, err := plannedMerge(s, data)
		if err != nil {
			return err
		}
		ideas, err := plannedIdeas(s, data, o.clock())
		if err != nil {
			return err
		}

		merge(s)
		s.Ideas = append(s.Ideas, ideas...)
		s.CurrentStep++

		if s.CurrentStep >= s.TotalSteps {
			result = &types.SubmitResult{Completion: o.finalize(s)}
			return nil
		}
		result = &types.SubmitResult{Status: o.statusFor(s)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Step data submitted",
		zap.String("session_id", sessionID),
		zap.Bool("completed", result.Completed()))
	return result, nil
}

// plannedMerge validates the step payload against the per-technique,
// per-step field map and returns the mutation to apply. The step index
// is read before the advance, so a payload always lands on the step it
// was submitted for.
func plannedMerge(s *types.Session, data types.StepData) (func(*types.Session), error) {
	none := func(*types.Session) {}

	switch s.Technique {
	case types.TechniqueRandomWord:
		switch s.CurrentStep {
		case 2:
			associations, err := mapField(data, "associations")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keyAssociations] = associations }, nil
		case 3:
			ideas, err := listField(data, "ideas")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keySelectedIdeas] = ideas }, nil
		}

	case types.TechniqueReverse:
		switch s.CurrentStep {
		case 1:
			reversed, err := stringField(data, "reversed_problem")
			if err != nil {
				return nil, err
			}
			if reversed == "" {
				reversed = reversedProblem(s.ProblemStatement)
			}
			return func(s *types.Session) { s.TechniqueData[keyReversedProblem] = reversed }, nil
		case 2:
			anti, err := listField(data, "anti_solutions")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keyAntiSolutions] = anti }, nil
		case 3:
			reversedSolutions, err := listField(data, "reversed_solutions")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keyReversedSolutions] = reversedSolutions }, nil
		case 4:
			finals, err := listField(data, "final_solutions")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keyFinalSolutions] = finals }, nil
		}

	case types.TechniqueLotus:
		switch s.CurrentStep {
		case 1:
			themes, err := listField(data, "themes")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keyPrimaryThemes] = themes }, nil
		case 2:
			grids, err := mapField(data, "theme_grids")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keyThemeGrids] = grids }, nil
		case 3:
			connections, err := listField(data, "connections")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keyConnections] = connections }, nil
		case 4:
			clusters, err := listField(data, "solution_clusters")
			if err != nil {
				return nil, err
			}
			return func(s *types.Session) { s.TechniqueData[keySolutionClusters] = clusters }, nil
		}
	}

	return none, nil
}

// plannedIdeas scores every submitted idea against the problem
// statement, tagging it with the pre-advance step index and the
// declared participant.
func plannedIdeas(s *types.Session, data types.StepData, now time.Time) ([]types.IdeaRecord, error) {
	if _, ok := data["ideas"]; !ok {
		return nil, nil
	}
	texts, err := listField(data, "ideas")
	if err != nil {
		return nil, err
	}

	participant := "unknown"
	if p, ok := data["participant"].(string); ok && p != "" {
		participant = p
	}

	records := make([]types.IdeaRecord, 0, len(texts))
	for _, text := range texts {
		records = append(records, types.IdeaRecord{
			Step:        s.CurrentStep,
			Timestamp:   now,
			Text:        text,
			Participant: participant,
			Quality:     lexical.AnalyzeIdeaQuality(text, s.ProblemStatement),
		})
	}
	return records, nil
}

// --- strict payload readers ---

// listField reads a string list, treating a missing or nil value as
// empty. Anything else that is not a list of strings is rejected.
func listField(data types.StepData, field string) ([]string, error) {
	v, ok := data[field]
	if !ok || v == nil {
		return []string{}, nil
	}
	switch vv := v.(type) {
	case []string:
		return append([]string(nil), vv...), nil
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, &ValidationError{Field: field, Reason: "must contain only strings"}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &ValidationError{Field: field, Reason: "must be a list of strings"}
	}
}

// mapField reads a string-keyed map, treating a missing or nil value as
// empty.
func mapField(data types.StepData, field string) (map[string]any, error) {
	v, ok := data[field]
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return nil, &ValidationError{Field: field, Reason: "must be a map"}
}

// stringField reads a string, treating a missing or nil value as empty.
func stringField(data types.StepData, field string) (string, error) {
	v, ok := data[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Reason: "must be a string"}
	}
	return s, nil
}
