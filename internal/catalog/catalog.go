// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the static facilitation metadata for every
// ideation technique: ordered step instructions, usage guidance, and
// tips. The table is fixed at compile time and never mutated; a session's
// total_steps is the length of its technique's step list.
// Implements: prd003-technique-catalog (R1-R3);
//
//	docs/ARCHITECTURE § Technique Catalog.
package catalog

import (
	"fmt"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// instructions is the catalog table, keyed by technique.
var instructions = map[types.Technique]types.TechniqueInstructions{
	types.TechniqueRandomWord: {
		Technique:    types.TechniqueRandomWord,
		Overview:     "Use a random stimulus word to trigger associations that break conventional thinking patterns.",
		WhenToUse:    "When the team keeps circling the same solutions and needs an external jolt to escape its usual vocabulary.",
		Duration:     "20-30 minutes",
		Participants: "1-8 people",
		Steps: []string{
			"Clearly define the problem or challenge you want to solve",
			"Generate a random word as a creative stimulus",
			"List associations and attributes of the random word",
			"Force connections between those associations and your problem",
			"Develop the most promising connections into concrete ideas",
			"Evaluate and refine your best ideas against the problem",
		},
		Tips: []string{
			"Do not reject words that seem irrelevant; forced distance produces the freshest links",
			"Collect a quota of associations before judging any of them",
			"Push past the first obvious connection for each association",
			"Draw a new word if the group truly stalls, but only after a real attempt",
		},
	},

	types.TechniqueReverse: {
		Technique:    types.TechniqueReverse,
		Overview:     "Invert the problem, brainstorm ways to cause or worsen it, then flip those anti-solutions into real ones.",
		WhenToUse:    "When direct idea generation has stalled or the group finds it easier to criticize than to propose.",
		Duration:     "30-45 minutes",
		Participants: "3-10 people",
		Steps: []string{
			"State the original problem clearly and concretely",
			"Reverse the problem: ask how to cause or guarantee it",
			"Brainstorm anti-solutions that would make the problem worse",
			"Analyze each anti-solution for the mechanism behind it",
			"Flip the anti-solutions into candidate real solutions",
			"Check each candidate solution for feasibility and pick winners",
		},
		Tips: []string{
			"Let the group enjoy the sabotage phase; dark humor surfaces honest mechanisms",
			"Keep anti-solutions specific enough that an inversion is actionable",
			"Watch for anti-solutions that already describe current practice",
			"Flip mechanisms, not just words, when reversing",
		},
	},

	types.TechniqueLotus: {
		Technique:    types.TechniqueLotus,
		Overview:     "Expand a core problem into themed petals, then expand each petal into its own grid for systematic coverage.",
		WhenToUse:    "When a complex topic needs broad, structured exploration rather than a single flash of insight.",
		Duration:     "45-60 minutes",
		Participants: "1-6 people",
		Steps: []string{
			"Write the core problem at the center of the grid",
			"Identify up to eight primary themes surrounding the core",
			"Expand each theme into its own grid of sub-ideas",
			"Map connections between ideas across different grids",
			"Cluster related ideas into solution groups",
			"Turn the strongest clusters into an implementation path",
		},
		Tips: []string{
			"Fill every petal even when it feels forced; gaps hide assumptions",
			"Name themes as nouns, not solutions, to keep expansion open",
			"Cross-grid connections are where the novel ideas live",
			"Timebox each grid so early petals do not consume the session",
		},
	},
}

// techniqueOrder fixes listing order for CLI output and tests.
var techniqueOrder = []types.Technique{
	types.TechniqueRandomWord,
	types.TechniqueReverse,
	types.TechniqueLotus,
}

// Techniques returns every cataloged technique in stable order.
func Techniques() []types.Technique {
	return append([]types.Technique(nil), techniqueOrder...)
}

// InstructionsFor returns the full catalog record for a technique (R1.1).
func InstructionsFor(t types.Technique) (types.TechniqueInstructions, error) {
	ins, ok := instructions[t]
	if !ok {
		return types.TechniqueInstructions{}, fmt.Errorf("unknown technique %q", t)
	}
	return ins, nil
}

// StepsFor returns the ordered step instructions for a technique; their
// count drives a session's total_steps (R2.1).
func StepsFor(t types.Technique) ([]string, error) {
	ins, ok := instructions[t]
	if !ok {
		return nil, fmt.Errorf("unknown technique %q", t)
	}
	return append([]string(nil), ins.Steps...), nil
}

// TotalSteps returns the step count for a technique, 0 when unknown.
func TotalSteps(t types.Technique) int {
	return len(instructions[t].Steps)
}
