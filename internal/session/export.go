// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Export formats accepted by Export.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// exportSessionInfo is the session_info block of the JSON export.
type exportSessionInfo struct {
	SessionID        string          `json:"session_id" yaml:"session_id"`
	Technique        types.Technique `json:"technique" yaml:"technique"`
	ProblemStatement string          `json:"problem_statement" yaml:"problem_statement"`
	StartTime        time.Time       `json:"start_time" yaml:"start_time"`
	EndTime          *time.Time      `json:"end_time" yaml:"end_time"`
	Participants     []string        `json:"participants" yaml:"participants"`
	DurationMinutes  float64         `json:"duration_minutes" yaml:"duration_minutes"`
}

// exportEnvelope is the top-level JSON export layout.
type exportEnvelope struct {
	SessionInfo    exportSessionInfo    `json:"session_info" yaml:"session_info"`
	IdeasGenerated []types.IdeaRecord   `json:"ideas_generated" yaml:"ideas_generated"`
	TechniqueData  types.TechniqueData  `json:"technique_data" yaml:"technique_data"`
	Summary        types.SessionSummary `json:"summary" yaml:"summary"`
}

// Export renders a session, active or historical, in the requested
// format. An unrecognized format degrades to an explicit message string
// rather than an error, keeping export robust for interactive callers.
func (o *Orchestrator) Export(sessionID, format string) (string, error) {
	sess, err := o.store.Find(sessionID)
	if err != nil {
		return "", err
	}
	return Render(sess, o.buildSummary(sess), format)
}

// Render formats a session the caller already holds, such as one
// reloaded from the archive, against a precomputed summary.
func Render(sess *types.Session, summary types.SessionSummary, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return renderJSON(sess, summary)
	case FormatMarkdown:
		return renderMarkdown(sess, summary), nil
	case FormatCSV:
		return exportCSV(sess)
	default:
		return fmt.Sprintf("Unsupported format: %s. Use json, markdown, or csv.", format), nil
	}
}

func renderJSON(s *types.Session, summary types.SessionSummary) (string, error) {
	envelope := exportEnvelope{
		SessionInfo: exportSessionInfo{
			SessionID:        s.ID,
			Technique:        s.Technique,
			ProblemStatement: s.ProblemStatement,
			StartTime:        s.StartTime,
			EndTime:          s.EndTime,
			Participants:     s.Participants,
			DurationMinutes:  summary.DurationMinutes,
		},
		IdeasGenerated: s.Ideas,
		TechniqueData:  s.TechniqueData,
		Summary:        summary,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON export: %w", err)
	}
	return string(data), nil
}

func renderMarkdown(s *types.Session, summary types.SessionSummary) string {
	name := s.Technique.DisplayName()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Session Report\n\n", name)

	b.WriteString("## Session Information\n")
	fmt.Fprintf(&b, "- **Session ID:** %s\n", s.ID)
	fmt.Fprintf(&b, "- **Technique:** %s\n", name)
	fmt.Fprintf(&b, "- **Problem Statement:** %s\n", s.ProblemStatement)
	fmt.Fprintf(&b, "- **Duration:** %.1f minutes\n", summary.DurationMinutes)
	fmt.Fprintf(&b, "- **Participants:** %s\n", strings.Join(s.Participants, ", "))
	fmt.Fprintf(&b, "- **Ideas Generated:** %d\n", len(s.Ideas))

	fmt.Fprintf(&b, "\n## Problem Addressed\n%s\n", s.ProblemStatement)

	b.WriteString("\n## Ideas Generated\n")
	for i, idea := range s.Ideas {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, idea.Text)
		fmt.Fprintf(&b, "   - Step: %d\n", idea.Step)
		fmt.Fprintf(&b, "   - Participant: %s\n\n", idea.Participant)
	}

	switch s.Technique {
	case types.TechniqueRandomWord:
		b.WriteString("\n## Random Words Used\n")
		for _, word := range stringsOf(s.TechniqueData[keyRandomWords]) {
			fmt.Fprintf(&b, "- %s\n", word)
		}
	case types.TechniqueReverse:
		if reversed, _ := s.TechniqueData[keyReversedProblem].(string); reversed != "" {
			fmt.Fprintf(&b, "\n## Reversed Problem\n%s\n", reversed)
		}
	case types.TechniqueLotus:
		if themes := stringsOf(s.TechniqueData[keyPrimaryThemes]); len(themes) > 0 {
			b.WriteString("\n## Primary Themes\n")
			for _, theme := range themes {
				fmt.Fprintf(&b, "- %s\n", theme)
			}
		}
	}

	b.WriteString("\n## Session Summary\n")
	for _, line := range summaryLines(summary) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// summaryLines renders the summary as markdown key/value bullets, fixed
// fields first, then whichever technique-specific fields are set.
func summaryLines(summary types.SessionSummary) []string {
	lines := []string{
		fmt.Sprintf("- **Technique Used:** %s", summary.TechniqueUsed),
		fmt.Sprintf("- **Problem Statement:** %s", summary.ProblemStatement),
		fmt.Sprintf("- **Duration Minutes:** %.1f", summary.DurationMinutes),
		fmt.Sprintf("- **Participants:** %s", strings.Join(summary.Participants, ", ")),
		fmt.Sprintf("- **Total Ideas Generated:** %d", summary.TotalIdeasGenerated),
		fmt.Sprintf("- **Steps Completed:** %d", summary.StepsCompleted),
		fmt.Sprintf("- **Completion Rate:** %.1f%%", summary.CompletionRate),
	}

	if len(summary.WordsUsed) > 0 {
		lines = append(lines, fmt.Sprintf("- **Words Used:** %s", strings.Join(summary.WordsUsed, ", ")))
	}
	if summary.AssociationsCount > 0 {
		lines = append(lines, fmt.Sprintf("- **Associations Count:** %d", summary.AssociationsCount))
	}
	if summary.ReversedProblem != "" {
		lines = append(lines, fmt.Sprintf("- **Reversed Problem:** %s", summary.ReversedProblem))
	}
	if summary.AntiSolutionsCount > 0 {
		lines = append(lines, fmt.Sprintf("- **Anti Solutions Count:** %d", summary.AntiSolutionsCount))
	}
	if summary.FinalSolutionsCount > 0 {
		lines = append(lines, fmt.Sprintf("- **Final Solutions Count:** %d", summary.FinalSolutionsCount))
	}
	if len(summary.ThemesExplored) > 0 {
		lines = append(lines, fmt.Sprintf("- **Themes Explored:** %s", strings.Join(summary.ThemesExplored, ", ")))
	}
	if summary.GridsCompleted > 0 {
		lines = append(lines, fmt.Sprintf("- **Grids Completed:** %d", summary.GridsCompleted))
	}
	if len(summary.IdeaClusters) > 0 {
		themes := make([]string, len(summary.IdeaClusters))
		for i, cluster := range summary.IdeaClusters {
			themes[i] = cluster.Theme
		}
		lines = append(lines, fmt.Sprintf("- **Idea Clusters:** %s", strings.Join(themes, "; ")))
	}
	if summary.TotalIdeasGenerated > 0 {
		lines = append(lines, fmt.Sprintf("- **Average Idea Quality:** %.2f", summary.AverageIdeaQuality))
	}

	return lines
}

// exportCSV renders the idea log: header row then one row per idea in
// generation order. Quality scores stay out of the CSV; callers wanting
// them use the JSON export.
func exportCSV(s *types.Session) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"Idea", "Step", "Participant", "Timestamp"}); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}
	for _, idea := range s.Ideas {
		row := []string{
			idea.Text,
			strconv.Itoa(idea.Step),
			idea.Participant,
			idea.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	return b.String(), nil
}
