// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/internal/bias"
)

var biasCmd = &cobra.Command{
	Use:   "bias",
	Short: "Audit ideation wording for cognitive bias",
	Long: `Bias checks contribution text against wording patterns for six
cognitive biases: confirmation, anchoring, availability, groupthink,
sunk cost, and overconfidence. Use "bias scan" for a single contribution
and "bias report" for a whole session transcript.`,
}

var biasScanCmd = &cobra.Command{
	Use:   "scan <text>",
	Short: "Scan one contribution and suggest counter-prompts",
	Args:  cobra.ExactArgs(1),
	RunE:  runBiasScan,
}

var biasReportCmd = &cobra.Command{
	Use:   "report <contributions.yaml>",
	Short: "Analyze a session transcript for bias patterns",
	Long: `Report reads a YAML file of attributed contributions and rolls up
findings per bias kind and per participant, with a trend over the course
of the session. The file format is:

    contributions:
      - participant: alice
        text: Obviously this is the best solution.
      - participant: bob
        text: Let's prototype three approaches instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runBiasReport,
}

// scanResult is the machine-readable shape of a single-contribution scan.
type scanResult struct {
	Findings     []bias.Finding    `json:"findings" yaml:"findings"`
	OverallScore float64           `json:"overall_score" yaml:"overall_score"`
	Interruption bias.Interruption `json:"interruption" yaml:"interruption"`
}

func runBiasScan(cmd *cobra.Command, args []string) error {
	text := args[0]
	findings := bias.Scan(text)
	result := scanResult{
		Findings:     findings,
		OverallScore: bias.OverallScore(findings),
		Interruption: bias.CheckInterrupt(text),
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if len(findings) == 0 {
		fmt.Println(result.Interruption.Message)
		return nil
	}

	fmt.Printf("%-24s %-7s %-9s %s\n", "BIAS", "SCORE", "SEVERITY", "MATCHES")
	fmt.Println(strings.Repeat("-", 70))
	for _, f := range findings {
		fmt.Printf("%-24s %-7.2f %-9s %s\n", f.Bias, f.Score, f.Severity, strings.Join(f.Matches, ", "))
	}
	fmt.Printf("\nOverall score: %.2f\n", result.OverallScore)

	if result.Interruption.Interrupt {
		fmt.Printf("%s\n", result.Interruption.Message)
	}
	if prompts := bias.CounterPrompts(findings, 3); len(prompts) > 0 {
		fmt.Println("\nCounter-prompts:")
		for _, prompt := range prompts {
			fmt.Printf("  - %s\n", prompt)
		}
	}
	return nil
}

func runBiasReport(cmd *cobra.Command, args []string) error {
	contribs, err := bias.LoadContributions(args[0])
	if err != nil {
		return err
	}
	report := bias.Analyze(contribs)

	switch format, _ := cmd.Flags().GetString("format"); format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(report)
	case "", "text":
		printReport(report)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text, json, or yaml)", format)
	}
}

func printReport(r bias.Report) {
	fmt.Printf("Contributions: %d from %d participants\n", r.Contributions, r.Participants)
	fmt.Printf("Findings:      %d\n", r.TotalFindings)

	if len(r.ByKind) > 0 {
		fmt.Println("\nBy bias kind:")
		for _, kind := range bias.AllKinds() {
			if n := r.ByKind[kind]; n > 0 {
				fmt.Printf("  %-24s %d\n", kind, n)
			}
		}
	}
	if len(r.ByParticipant) > 0 {
		names := make([]string, 0, len(r.ByParticipant))
		for name := range r.ByParticipant {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("\nBy participant:")
		for _, name := range names {
			fmt.Printf("  %-24s %d\n", name, r.ByParticipant[name])
		}
	}

	if r.MostCommon != "" {
		fmt.Printf("\nMost common bias:        %s\n", r.MostCommon)
	}
	if r.MostBiased != "" {
		fmt.Printf("Most biased participant: %s\n", r.MostBiased)
	}
	fmt.Printf("Trend: %s", r.Trend)
	if len(r.ScoresOverTime) > 0 {
		scores := make([]string, len(r.ScoresOverTime))
		for i, s := range r.ScoresOverTime {
			scores[i] = fmt.Sprintf("%.2f", s)
		}
		fmt.Printf(" (%s)", strings.Join(scores, " -> "))
	}
	fmt.Println()
	if r.ShouldInterrupt {
		fmt.Println("At least one contribution crossed the interrupt threshold.")
	}

	if len(r.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

func init() {
	biasScanCmd.Flags().Bool("json", false, "emit JSON instead of a table")
	biasReportCmd.Flags().StringP("format", "f", "text", "output format: text, json, or yaml")
	biasCmd.AddCommand(biasScanCmd)
	biasCmd.AddCommand(biasReportCmd)
	rootCmd.AddCommand(biasCmd)
}
