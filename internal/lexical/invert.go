// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexical

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// opposites maps sabotage verbs to their constructive counterparts. The
// first matching word in an anti-solution is flipped; everything else in
// the sentence is kept as written (R8.1).
var opposites = map[string]string{
	"increase":   "decrease",
	"decrease":   "increase",
	"add":        "remove",
	"remove":     "add",
	"allow":      "restrict",
	"restrict":   "allow",
	"ban":        "permit",
	"permit":     "ban",
	"ignore":     "prioritize",
	"delay":      "accelerate",
	"hide":       "expose",
	"complicate": "simplify",
	"reduce":     "increase",
	"slow":       "speed up",
	"block":      "enable",
	"discourage": "encourage",
	"break":      "repair",
	"confuse":    "clarify",
}

// invertFallbackPrefix marks inversions where no table word matched (R8.2).
const invertFallbackPrefix = "Do the opposite of: "

// InvertAntiSolution flips an anti-solution ("how to make it fail") into a
// candidate solution by swapping the first recognized sabotage verb for
// its opposite. Anti-solutions with no recognized verb are returned under
// a "do the opposite" prefix so the facilitator still gets a usable prompt
// (R8.1-R8.2).
func InvertAntiSolution(antiSolution string) string {
	fields := strings.Fields(antiSolution)
	for i, f := range fields {
		core := strings.Trim(f, ".,;:!?")
		if opposite, ok := opposites[strings.ToLower(core)]; ok {
			fields[i] = strings.Replace(f, core, opposite, 1)
			return strings.Join(fields, " ")
		}
	}
	return invertFallbackPrefix + antiSolution
}

// BuildActionPlan ranks solutions shortest-first (terser statements read
// as more actionable), keeps the top topK, and attaches fixed next-step
// and metric templates to each (R8.3).
func BuildActionPlan(solutions []string, topK int) []types.ActionPlanEntry {
	if topK <= 0 || len(solutions) == 0 {
		return nil
	}

	ranked := append([]string(nil), solutions...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i]) < len(ranked[j])
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	plan := make([]types.ActionPlanEntry, 0, len(ranked))
	for _, solution := range ranked {
		plan = append(plan, types.ActionPlanEntry{
			Solution: solution,
			NextSteps: []string{
				fmt.Sprintf("Define the first small experiment for: %s", solution),
				"Name an owner and a review date",
				"List the resources the experiment needs",
			},
			SuggestedMetric: fmt.Sprintf("Weekly progress indicator for: %s", solution),
		})
	}
	return plan
}
