// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package variations produces quick idea variations for a problem
// statement without running a full session: one technique's template
// set, filled in from the problem's own vocabulary.
// Implements: prd006-idea-variations (R1-R2);
//
//	docs/ARCHITECTURE § Idea Variations.
package variations

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pdiddy/ideation-engine/internal/lexical"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Variation is one technique's batch of generated ideas.
type Variation struct {
	Technique     types.Technique `json:"technique" yaml:"technique"`
	TechniqueName string          `json:"method_used" yaml:"method_used"`
	Ideas         []string        `json:"generated_ideas" yaml:"generated_ideas"`
}

// Per-technique idea templates. Entries with a %s verb take the
// problem's focus phrase.
var templates = map[types.Technique][]string{
	types.TechniqueRandomWord: {
		"Explore the deeper layers of %s by analyzing root causes",
		"Approach %s in phases, like waves building momentum",
		"Design %s solutions that can scale and adapt over time",
		"Completely reimagine the current approach to %s",
		"Create clear pathways and direction for addressing %s",
		"Link %s to other related challenges or opportunities",
		"Simplify and streamline the approach to %s",
		"Make progress on %s transparent and easy to understand",
	},
	types.TechniqueReverse: {
		"Create clear, simple processes that make %s more accessible",
		"Build feedback mechanisms to continuously improve %s",
		"Design user-centered solutions that address real needs in %s",
		"Implement iterative improvements based on data and user behavior",
		"Establish clear communication channels around %s",
	},
	types.TechniqueLotus: {
		"Break down %s into smaller, manageable components",
		"Create systematic processes for approaching %s",
		"Develop multiple parallel strategies for %s",
		"Build measurement systems to track progress on %s",
		"Establish collaborative frameworks around %s",
	},
}

// focusNoise drops the question verbs and fillers facilitators phrase
// problems with, so the focus phrase reads as a topic.
var focusNoise = map[string]bool{
	"how": true, "what": true, "why": true, "when": true, "where": true,
	"improve": true, "make": true, "create": true, "increase": true,
	"reduce": true, "better": true, "best": true, "more": true,
	"ways": true, "way": true, "help": true, "solve": true, "need": true,
	"our": true, "your": true, "their": true, "its": true,
}

// Generate fills 3-5 templates from one technique's set. An empty
// technique picks one at random; a nil rng falls back to a time seed
// (R1.1-R1.3).
func Generate(problem string, technique types.Technique, rng *rand.Rand) (Variation, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if technique == "" {
		all := types.AllTechniques()
		technique = all[rng.Intn(len(all))]
	}
	set, ok := templates[technique]
	if !ok {
		return Variation{}, fmt.Errorf("unknown technique %q", technique)
	}

	focus := focusPhrase(problem)
	count := 3 + rng.Intn(3)

	pool := append([]string(nil), set...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	domain, score := lexical.PrimaryDomain(problem)
	withDomain := score > 0
	if withDomain {
		count--
	}

	ideas := make([]string, 0, count+1)
	for _, tpl := range pool[:count] {
		if strings.Contains(tpl, "%s") {
			ideas = append(ideas, fmt.Sprintf(tpl, focus))
		} else {
			ideas = append(ideas, tpl)
		}
	}
	if withDomain {
		ideas = append(ideas, fmt.Sprintf("Adapt a proven %s playbook to %s", domain, focus))
	}

	return Variation{
		Technique:     technique,
		TechniqueName: technique.DisplayName(),
		Ideas:         ideas,
	}, nil
}

// focusPhrase condenses the problem statement into a short topic, up to
// two salient keywords (R2.1).
func focusPhrase(problem string) string {
	keywords := lexical.ExtractKeywords(problem)
	focus := make([]string, 0, 2)
	for _, k := range keywords {
		if focusNoise[k] {
			continue
		}
		focus = append(focus, k)
		if len(focus) == 2 {
			break
		}
	}
	if len(focus) == 0 {
		if len(keywords) > 0 {
			return keywords[0]
		}
		return "the problem"
	}
	return strings.Join(focus, " ")
}
