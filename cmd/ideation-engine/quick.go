// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ideation-engine/internal/variations"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Generate idea variations for a problem without a session",
	Long: `Quick produces a handful of idea variations from a single problem
statement, skipping the step-by-step session flow. Without --technique a
technique is picked at random.`,
	RunE: runQuick,
}

func runQuick(cmd *cobra.Command, args []string) error {
	problem, _ := cmd.Flags().GetString("problem")
	if problem == "" {
		return fmt.Errorf("--problem is required")
	}

	var technique types.Technique
	if name, _ := cmd.Flags().GetString("technique"); name != "" {
		var err error
		technique, err = types.ParseTechnique(name)
		if err != nil {
			return err
		}
	}

	var rng *rand.Rand
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	variation, err := variations.Generate(problem, technique, rng)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(variation)
	}

	fmt.Printf("Technique: %s\n\n", variation.TechniqueName)
	for i, idea := range variation.Ideas {
		fmt.Printf("%d. %s\n", i+1, idea)
	}
	return nil
}

func init() {
	quickCmd.Flags().StringP("problem", "p", "", "problem statement to riff on")
	quickCmd.Flags().StringP("technique", "t", "", "technique to use (default: random)")
	quickCmd.Flags().Int64("seed", 0, "seed for reproducible output")
	quickCmd.Flags().Bool("json", false, "emit JSON instead of a list")
	rootCmd.AddCommand(quickCmd)
}
