// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"go.uber.org/zap"

	"github.com/pdiddy/ideation-engine/internal/lexical"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// actionPlanSize caps how many final solutions the reverse-brainstorming
// summary turns into action plan entries.
const actionPlanSize = 3

// finalize stamps the end time, computes the summary, and retires the
// session to history. Called with the session's entry lock held, from
// the completing submission or a technique switch.
func (o *Orchestrator) finalize(s *types.Session) *types.CompletionResult {
	end := o.clock()
	s.EndTime = &end

	summary := o.buildSummary(s)
	o.store.retire(s.ID)

	o.logger.Info("Session finalized",
		zap.String("session_id", s.ID),
		zap.String("technique", string(s.Technique)),
		zap.Int("steps_completed", s.CurrentStep),
		zap.Int("ideas", len(s.Ideas)))

	return &types.CompletionResult{
		Status:      "completed",
		SessionID:   s.ID,
		Technique:   s.Technique,
		Summary:     summary,
		NextOptions: completionNextOptions(),
	}
}

// buildSummary digests a session into its summary record. It works on
// both finalized and still-active sessions; for the latter, duration
// runs to now and completion rate reflects the steps reached so far.
func (o *Orchestrator) buildSummary(s *types.Session) types.SessionSummary {
	summary := types.SessionSummary{
		TechniqueUsed:       s.Technique,
		ProblemStatement:    s.ProblemStatement,
		DurationMinutes:     durationMinutes(s.StartTime, s.EndTime, o.clock),
		Participants:        append([]string(nil), s.Participants...),
		TotalIdeasGenerated: len(s.Ideas),
		StepsCompleted:      s.CurrentStep,
		CompletionRate:      progressPercent(s.CurrentStep, s.TotalSteps),
	}

	switch s.Technique {
	case types.TechniqueRandomWord:
		summary.WordsUsed = stringsOf(s.TechniqueData[keyRandomWords])
		summary.AssociationsCount = len(mapOf(s.TechniqueData[keyAssociations]))
	case types.TechniqueReverse:
		summary.ReversedProblem, _ = s.TechniqueData[keyReversedProblem].(string)
		summary.AntiSolutionsCount = len(stringsOf(s.TechniqueData[keyAntiSolutions]))
		finals := stringsOf(s.TechniqueData[keyFinalSolutions])
		summary.FinalSolutionsCount = len(finals)
		summary.ActionPlan = lexical.BuildActionPlan(finals, actionPlanSize)
	case types.TechniqueLotus:
		summary.ThemesExplored = stringsOf(s.TechniqueData[keyPrimaryThemes])
		summary.GridsCompleted = len(mapOf(s.TechniqueData[keyThemeGrids]))
	}

	texts := make([]string, 0, len(s.Ideas))
	total := 0.0
	for _, idea := range s.Ideas {
		texts = append(texts, idea.Text)
		total += idea.Quality.Quality
	}
	summary.IdeaClusters = lexical.DetectIdeaClusters(texts, o.clusterThreshold)
	if len(s.Ideas) > 0 {
		summary.AverageIdeaQuality = total / float64(len(s.Ideas))
	}

	return summary
}

// completionNextOptions is the fixed follow-up menu attached to every
// completion. Returned fresh so callers may edit their copy.
func completionNextOptions() []string {
	return []string{
		"Start new session with different technique",
		"Export session results",
		"Hybrid approach: combine techniques",
		"Develop ideas further with team",
	}
}
