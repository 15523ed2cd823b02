// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/internal/archive"
	"github.com/pdiddy/ideation-engine/internal/bias"
	"github.com/pdiddy/ideation-engine/internal/session"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Facilitate a full ideation session",
	Long: `Run starts a session for one technique and walks its six steps.

Interactive mode reads ideas from stdin, one per line; an empty line submits
the step. During the word-selection step of random word association, type
"draw" to pull a stimulus word. Structured fields (association maps, theme
grids) are only settable in scripted mode.

Scripted mode (--steps-file) reads a YAML file with one entry per step:

  steps:
    - participant: alice
      draw: true
      fields:
        reversed_problem: How could we make onboarding worse?
      ideas:
        - Weekly onboarding check-in call

Every submitted idea passes a cognitive-bias check; findings print inline
without blocking the step. Completed sessions are archived when an archive
path is configured and exported when --export is set.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("technique", "", "technique to run: random_word_association, reverse_brainstorming, or lotus_blossom")
	runCmd.Flags().String("problem", "", "problem statement the session works on")
	runCmd.Flags().StringSlice("participants", nil, "participant names (comma-separated)")
	runCmd.Flags().String("session-id", "", "explicit session id (default: generated)")
	runCmd.Flags().String("steps-file", "", "YAML file of scripted step submissions")
	runCmd.Flags().String("export", "", "export the completed session: json, markdown, or csv")
	runCmd.Flags().String("out", "", "export file path (default: <export-dir>/<session-id>.<ext>)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	techniqueFlag, _ := cmd.Flags().GetString("technique")
	problem, _ := cmd.Flags().GetString("problem")
	if techniqueFlag == "" || problem == "" {
		return fmt.Errorf("--technique and --problem are required")
	}
	technique, err := types.ParseTechnique(techniqueFlag)
	if err != nil {
		return err
	}

	engine, cfg, err := newEngine(cmd)
	if err != nil {
		return err
	}

	participants, _ := cmd.Flags().GetStringSlice("participants")
	if len(participants) == 0 {
		participants = cfg.Engine.Participants
	}
	sessionID, _ := cmd.Flags().GetString("session-id")

	id, err := engine.StartSession(technique, problem, participants, sessionID)
	if err != nil {
		return err
	}
	fmt.Printf("Started %s session %s\n", technique.DisplayName(), id)
	fmt.Printf("Problem: %s\n", problem)

	stepsFile, _ := cmd.Flags().GetString("steps-file")

	var completion *types.CompletionResult
	if stepsFile != "" {
		completion, err = runScripted(engine, id, stepsFile)
	} else {
		completion, err = runInteractive(engine, id, participants)
	}
	if err != nil {
		return err
	}
	if completion == nil {
		fmt.Println("Session left unfinished; nothing archived.")
		return nil
	}

	printCompletion(os.Stdout, completion)

	if path := archivePath(cmd, cfg); path != "" {
		if err := archiveCompleted(engine, completion, path); err != nil {
			return err
		}
	}

	format, _ := cmd.Flags().GetString("export")
	if format != "" {
		out, _ := cmd.Flags().GetString("out")
		return exportToFile(engine, id, format, out, cfg.Export.Dir)
	}
	return nil
}

// --- scripted mode ---

// scriptedStep is one entry of a --steps-file document.
type scriptedStep struct {
	Participant string         `yaml:"participant"`
	Draw        bool           `yaml:"draw"`
	Fields      map[string]any `yaml:"fields"`
	Ideas       []string       `yaml:"ideas"`
}

type stepsFile struct {
	Steps []scriptedStep `yaml:"steps"`
}

func loadSteps(path string) ([]scriptedStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading steps file: %w", err)
	}
	var sf stepsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing steps file %s: %w", path, err)
	}
	if len(sf.Steps) == 0 {
		return nil, fmt.Errorf("steps file %s has no steps", path)
	}
	return sf.Steps, nil
}

func runScripted(engine *session.Orchestrator, id, path string) (*types.CompletionResult, error) {
	steps, err := loadSteps(path)
	if err != nil {
		return nil, err
	}

	for i, step := range steps {
		status, err := engine.Status(id)
		if err != nil {
			return nil, err
		}
		printStatus(os.Stdout, status)

		if step.Draw {
			word, err := engine.DrawRandomWord(id)
			if err != nil {
				return nil, fmt.Errorf("step %d draw: %w", i+1, err)
			}
			fmt.Printf("Drew word %q (randomness %.2f)\n", word.Word, word.RandomnessScore)
		}

		warnBias(os.Stdout, step.Ideas)

		data := types.StepData{}
		for k, v := range step.Fields {
			data[k] = v
		}
		if len(step.Ideas) > 0 {
			data["ideas"] = step.Ideas
		}
		if step.Participant != "" {
			data["participant"] = step.Participant
		}

		result, err := engine.SubmitStepData(id, data)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if result.Completed() {
			if rest := len(steps) - i - 1; rest > 0 {
				fmt.Printf("Session completed with %d scripted step(s) unused.\n", rest)
			}
			return result.Completion, nil
		}
	}
	return nil, nil
}

// --- interactive mode ---

func runInteractive(engine *session.Orchestrator, id string, participants []string) (*types.CompletionResult, error) {
	participant := ""
	if len(participants) > 0 {
		participant = participants[0]
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		status, err := engine.Status(id)
		if err != nil {
			return nil, err
		}
		printStatus(os.Stdout, status)

		ideas, eof, err := collectIdeas(scanner, engine, id)
		if err != nil {
			return nil, err
		}
		if eof {
			return nil, nil
		}

		warnBias(os.Stdout, ideas)

		data := types.StepData{}
		if len(ideas) > 0 {
			data["ideas"] = ideas
		}
		if participant != "" {
			data["participant"] = participant
		}

		result, err := engine.SubmitStepData(id, data)
		if err != nil {
			return nil, err
		}
		if result.Completed() {
			return result.Completion, nil
		}
	}
}

// collectIdeas reads idea lines until a blank line. "draw" pulls a
// stimulus word instead of recording an idea; eof reports exhausted
// input, which abandons the session.
func collectIdeas(scanner *bufio.Scanner, engine *session.Orchestrator, id string) (ideas []string, eof bool, err error) {
	fmt.Println("Enter ideas one per line; empty line submits the step.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil, true, scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return ideas, false, nil
		}
		if strings.EqualFold(line, "draw") {
			word, err := engine.DrawRandomWord(id)
			if err != nil {
				fmt.Printf("cannot draw: %v\n", err)
				continue
			}
			fmt.Printf("Drew word %q: %s\n", word.Word, word.Reasoning)
			continue
		}
		ideas = append(ideas, line)
	}
}

// --- completion plumbing ---

func archiveCompleted(engine *session.Orchestrator, completion *types.CompletionResult, path string) error {
	sess, err := engine.Session(completion.SessionID)
	if err != nil {
		return err
	}
	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Archive(context.Background(), sess, completion.Summary); err != nil {
		return err
	}
	fmt.Printf("Archived session %s to %s\n", completion.SessionID, path)
	return nil
}

func exportToFile(engine *session.Orchestrator, id, format, out, dir string) error {
	content, err := engine.Export(id, format)
	if err != nil {
		return err
	}
	path, err := writeExport(content, id, format, out, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

func writeExport(content, id, format, out, dir string) (string, error) {
	path := out
	if path == "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating export dir: %w", err)
		}
		path = filepath.Join(dir, id+exportExt(format))
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}

func exportExt(format string) string {
	switch strings.ToLower(format) {
	case session.FormatJSON:
		return ".json"
	case session.FormatCSV:
		return ".csv"
	default:
		return ".md"
	}
}

// warnBias prints inline interrupt prompts for ideas that trip the
// bias checker. Findings never block the step.
func warnBias(w io.Writer, ideas []string) {
	for _, idea := range ideas {
		if check := bias.CheckInterrupt(idea); check.Interrupt {
			fmt.Fprintf(w, "Bias check (%s): %s\n", check.Severity, check.Message)
			fmt.Fprintf(w, "  %s\n", check.Prompt)
		}
	}
}

// --- output helpers ---

func printStatus(w io.Writer, st *types.SessionStatus) {
	fmt.Fprintf(w, "\nStep %d/%d (%.1f%% done): %s\n",
		st.CurrentStep+1, st.TotalSteps, st.ProgressPercent, st.CurrentInstruction)
	printAction(w, st.NextAction)
}

func printAction(w io.Writer, action types.StepAction) {
	fmt.Fprintf(w, "Action: %s\n", action.Action)
	if action.Message != "" {
		fmt.Fprintf(w, "  %s\n", action.Message)
	}
	if action.Word != "" {
		fmt.Fprintf(w, "  Word: %s\n", action.Word)
	}
	if action.Reasoning != "" {
		fmt.Fprintf(w, "  Reasoning: %s\n", action.Reasoning)
	}
	if action.Prompt != "" {
		fmt.Fprintf(w, "  Prompt: %s\n", action.Prompt)
	}
	if action.Instruction != "" {
		fmt.Fprintf(w, "  Instruction: %s\n", action.Instruction)
	}
	if action.Analysis != "" {
		fmt.Fprintf(w, "  Analysis: %s\n", action.Analysis)
	}
	printList(w, "Questions", action.Questions)
	printList(w, "Examples", action.Examples)
	printList(w, "Criteria", action.Criteria)
	printList(w, "Next options", action.NextOptions)
}

func printList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func printCompletion(w io.Writer, c *types.CompletionResult) {
	fmt.Fprintf(w, "\nSession %s completed: %s\n", c.SessionID, c.Technique.DisplayName())
	fmt.Fprintf(w, "  Problem: %s\n", c.Summary.ProblemStatement)
	fmt.Fprintf(w, "  Ideas generated: %d\n", c.Summary.TotalIdeasGenerated)
	fmt.Fprintf(w, "  Steps completed: %d (%.1f%%)\n", c.Summary.StepsCompleted, c.Summary.CompletionRate)
	fmt.Fprintf(w, "  Duration: %.1f minutes\n", c.Summary.DurationMinutes)
	if c.Summary.TotalIdeasGenerated > 0 {
		fmt.Fprintf(w, "  Average idea quality: %.2f\n", c.Summary.AverageIdeaQuality)
	}
	if len(c.Summary.IdeaClusters) > 0 {
		themes := make([]string, len(c.Summary.IdeaClusters))
		for i, cluster := range c.Summary.IdeaClusters {
			themes[i] = fmt.Sprintf("%s (%d)", cluster.Theme, cluster.Size)
		}
		fmt.Fprintf(w, "  Idea clusters: %s\n", strings.Join(themes, ", "))
	}
	if len(c.Summary.ActionPlan) > 0 {
		fmt.Fprintln(w, "  Action plan:")
		for _, entry := range c.Summary.ActionPlan {
			fmt.Fprintf(w, "  - %s (metric: %s)\n", entry.Solution, entry.SuggestedMetric)
		}
	}
	printList(w, "Next options", c.NextOptions)
}
