// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/internal/archive"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect archived sessions",
	Long: `History reads the SQLite archive written by completed runs. Use
"history list" to browse and "history show" to load one session in full.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived sessions, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one archived session with its summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	path := archivePath(cmd, loadConfig())
	if path == "" {
		return nil, fmt.Errorf("no archive configured; set --archive or archive.path")
	}
	return archive.Open(path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	infos, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	switch format, _ := cmd.Flags().GetString("format"); format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(infos)
	case "", "table":
		fmt.Printf("%-38s %-26s %-7s %-6s %s\n", "ID", "TECHNIQUE", "STEPS", "IDEAS", "ARCHIVED")
		fmt.Println(strings.Repeat("-", 100))
		for _, info := range infos {
			fmt.Printf("%-38s %-26s %-7s %-6d %s\n",
				info.ID, info.Technique,
				fmt.Sprintf("%d/%d", info.StepsCompleted, info.TotalSteps),
				info.IdeaCount, info.ArchivedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("\n%d sessions\n", len(infos))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use table, json, or yaml)", format)
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, summary, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	switch format, _ := cmd.Flags().GetString("format"); format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(archivedSession{Session: sess, Summary: summary})
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(archivedSession{Session: sess, Summary: summary})
	case "", "text":
		printArchived(sess, summary)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text, json, or yaml)", format)
	}
}

// archivedSession pairs a loaded session with its finalize-time summary
// for machine-readable output.
type archivedSession struct {
	Session *types.Session        `json:"session" yaml:"session"`
	Summary *types.SessionSummary `json:"summary" yaml:"summary"`
}

func printArchived(sess *types.Session, summary *types.SessionSummary) {
	fmt.Printf("Session %s\n", sess.ID)
	fmt.Printf("Technique:    %s\n", sess.Technique.DisplayName())
	fmt.Printf("Problem:      %s\n", sess.ProblemStatement)
	fmt.Printf("Participants: %s\n", strings.Join(sess.Participants, ", "))
	fmt.Printf("Started:      %s\n", sess.StartTime.Format("2006-01-02 15:04"))
	if sess.EndTime != nil {
		fmt.Printf("Finished:     %s\n", sess.EndTime.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Steps:        %d/%d\n", sess.CurrentStep, sess.TotalSteps)

	if len(sess.Ideas) > 0 {
		fmt.Printf("\nIdeas (%d):\n", len(sess.Ideas))
		for _, idea := range sess.Ideas {
			fmt.Printf("  - [%s] %s (quality %.2f)\n", idea.Participant, idea.Text, idea.Quality.Quality)
		}
	}

	fmt.Printf("\nDuration: %.1f minutes, average quality %.2f\n",
		summary.DurationMinutes, summary.AverageIdeaQuality)
	if len(summary.IdeaClusters) > 0 {
		fmt.Println("Clusters:")
		for _, cluster := range summary.IdeaClusters {
			fmt.Printf("  - %s (%d ideas)\n", cluster.Theme, len(cluster.Ideas))
		}
	}
	if len(summary.ActionPlan) > 0 {
		fmt.Println("Action plan:")
		for _, entry := range summary.ActionPlan {
			fmt.Printf("  - %s (metric: %s)\n", entry.Solution, entry.SuggestedMetric)
		}
	}
}

func init() {
	historyListCmd.Flags().StringP("format", "f", "table", "output format: table, json, or yaml")
	historyShowCmd.Flags().StringP("format", "f", "text", "output format: text, json, or yaml")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
