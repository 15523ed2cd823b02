// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/internal/catalog"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var techniquesCmd = &cobra.Command{
	Use:   "techniques [technique]",
	Short: "List techniques or show one technique's facilitation card",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTechniques,
}

func runTechniques(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	if len(args) == 1 {
		technique, err := types.ParseTechnique(args[0])
		if err != nil {
			return err
		}
		ins, err := catalog.InstructionsFor(technique)
		if err != nil {
			return err
		}
		return printInstructions(ins, format)
	}

	cards := make([]types.TechniqueInstructions, 0, len(catalog.Techniques()))
	for _, technique := range catalog.Techniques() {
		ins, err := catalog.InstructionsFor(technique)
		if err != nil {
			return err
		}
		cards = append(cards, ins)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(cards)
	case "", "table":
		fmt.Printf("%-26s %-26s %-6s %-15s %s\n", "TECHNIQUE", "KEY", "STEPS", "DURATION", "PARTICIPANTS")
		fmt.Println(strings.Repeat("-", 95))
		for _, ins := range cards {
			fmt.Printf("%-26s %-26s %-6d %-15s %s\n",
				ins.Technique.DisplayName(), ins.Technique, len(ins.Steps), ins.Duration, ins.Participants)
		}
		fmt.Printf("\n%d techniques\n", len(cards))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use table, json, or yaml)", format)
	}
}

func printInstructions(ins types.TechniqueInstructions, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ins)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(ins)
	case "", "table":
		fmt.Printf("%s (%s)\n\n%s\n\n", ins.Technique.DisplayName(), ins.Technique, ins.Overview)
		fmt.Printf("When to use: %s\n", ins.WhenToUse)
		fmt.Printf("Duration:    %s\n", ins.Duration)
		fmt.Printf("Participants: %s\n\n", ins.Participants)
		fmt.Println("Steps:")
		for i, step := range ins.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		if len(ins.Tips) > 0 {
			fmt.Println("\nTips:")
			for _, tip := range ins.Tips {
				fmt.Printf("  - %s\n", tip)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use table, json, or yaml)", format)
	}
}

func init() {
	techniquesCmd.Flags().StringP("format", "f", "table", "output format: table, json, or yaml")
	rootCmd.AddCommand(techniquesCmd)
}
