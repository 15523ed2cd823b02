// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ideation-engine/internal/catalog"
	"github.com/pdiddy/ideation-engine/internal/session"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through every technique with canned data",
	Long: `Demo exercises the whole engine without stdin: it lists the technique
catalog, steps through the opening of each technique, switches techniques
mid-session with idea carry-over, and prints an export sample. Sessions
stay in memory; nothing is archived.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	engine, _, err := newEngine(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Available techniques:")
	for i, technique := range catalog.Techniques() {
		ins, err := catalog.InstructionsFor(technique)
		if err != nil {
			return err
		}
		fmt.Printf("%d. %s\n   %s\n   Duration: %s, Participants: %s\n",
			i+1, technique.DisplayName(), ins.Overview, ins.Duration, ins.Participants)
	}

	if err := demoRandomWord(engine); err != nil {
		return err
	}
	if err := demoReverse(engine); err != nil {
		return err
	}
	if err := demoLotus(engine); err != nil {
		return err
	}
	if err := demoSwitch(engine); err != nil {
		return err
	}
	if err := demoExport(engine); err != nil {
		return err
	}

	fmt.Printf("\nActive sessions: %d, completed sessions: %d\n",
		engine.Store().ActiveCount(), len(engine.Store().History()))
	return nil
}

func demoRandomWord(engine *session.Orchestrator) error {
	fmt.Println("\n--- Random Word Association ---")
	id, err := engine.StartSession(types.TechniqueRandomWord, "How to improve team productivity?", []string{"Alice", "Bob"}, "")
	if err != nil {
		return err
	}

	// Walk the opening three steps: problem, word draw, associations.
	drawn := "stimulus"
	for step := 0; step < 3; step++ {
		status, err := engine.Status(id)
		if err != nil {
			return err
		}
		printStatus(os.Stdout, status)

		data := types.StepData{}
		switch step {
		case 1:
			word, err := engine.DrawRandomWord(id)
			if err != nil {
				return err
			}
			fmt.Printf("Drew word %q (randomness %.2f)\n", word.Word, word.RandomnessScore)
			drawn = word.Word
		case 2:
			data["associations"] = map[string]any{
				drawn: "flow of work between people",
			}
			data["ideas"] = []string{"Rotate a daily unblocker role across the team"}
		}
		if _, err := engine.SubmitStepData(id, data); err != nil {
			return err
		}
	}
	return nil
}

func demoReverse(engine *session.Orchestrator) error {
	fmt.Println("\n--- Reverse Brainstorming ---")
	id, err := engine.StartSession(types.TechniqueReverse, "How to reduce customer complaints?", []string{"Team"}, "")
	if err != nil {
		return err
	}

	for step := 0; step < 2; step++ {
		status, err := engine.Status(id)
		if err != nil {
			return err
		}
		printStatus(os.Stdout, status)
		if _, err := engine.SubmitStepData(id, types.StepData{}); err != nil {
			return err
		}
	}

	// The reversal lands in technique data after step 1.
	sess, err := engine.Session(id)
	if err != nil {
		return err
	}
	if reversed, ok := sess.TechniqueData["reversed_problem"].(string); ok {
		fmt.Printf("Reversed: %s\n", reversed)
	}
	return nil
}

func demoLotus(engine *session.Orchestrator) error {
	fmt.Println("\n--- Lotus Blossom ---")
	id, err := engine.StartSession(types.TechniqueLotus, "How to innovate our product line?", []string{"Innovation Team"}, "")
	if err != nil {
		return err
	}
	status, err := engine.Status(id)
	if err != nil {
		return err
	}
	printStatus(os.Stdout, status)
	return nil
}

func demoSwitch(engine *session.Orchestrator) error {
	fmt.Println("\n--- Technique switching ---")
	id, err := engine.StartSession(types.TechniqueRandomWord, "How to increase user engagement?", []string{"Team"}, "")
	if err != nil {
		return err
	}
	if _, err := engine.SubmitStepData(id, types.StepData{
		"ideas": []string{"Gamification elements", "Personalized content"},
	}); err != nil {
		return err
	}

	next, err := engine.SwitchTechnique(id, types.TechniqueLotus, true)
	if err != nil {
		return err
	}
	status, err := engine.Status(next)
	if err != nil {
		return err
	}
	fmt.Printf("Switched to %s as session %s; ideas preserved: %d\n",
		status.TechniqueName, next, status.IdeasCount)
	return nil
}

func demoExport(engine *session.Orchestrator) error {
	fmt.Println("\n--- Export sample ---")
	id, err := engine.StartSession(types.TechniqueRandomWord, "Export demo problem", []string{"User"}, "")
	if err != nil {
		return err
	}
	if _, err := engine.SubmitStepData(id, types.StepData{
		"ideas": []string{"Export idea 1", "Export idea 2"},
	}); err != nil {
		return err
	}

	md, err := engine.Export(id, session.FormatMarkdown)
	if err != nil {
		return err
	}
	if len(md) > 200 {
		md = md[:200] + "..."
	}
	fmt.Println(md)
	return nil
}
