// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexical

import (
	"fmt"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// genericQuestions is the fallback set for unrecognized techniques (R7.2).
var genericQuestions = []string{
	"What assumptions are you making about this problem?",
	"How would an expert from a completely different field approach it?",
	"What would you try if resources were unlimited?",
}

// GenerateFollowUpQuestions builds 3-5 facilitation questions for the
// technique, filling templates with the problem's primary domain and top
// keyword. Unknown techniques get the generic set (R7.1-R7.2).
func GenerateFollowUpQuestions(problem string, technique types.Technique) []string {
	primaryDomain, _ := PrimaryDomain(problem)
	topKeyword := "this topic"
	if keywords := ExtractKeywords(problem); len(keywords) > 0 {
		topKeyword = keywords[0]
	}

	switch technique {
	case types.TechniqueRandomWord:
		return []string{
			fmt.Sprintf("What unexpected connections can you draw between the random word and %s?", topKeyword),
			fmt.Sprintf("How might the word's attributes reshape your %s challenge?", primaryDomain),
			"Which property of the word feels most irrelevant, and what happens if you force it to apply?",
			"What would the word suggest if it were a metaphor for the whole problem?",
		}
	case types.TechniqueReverse:
		return []string{
			fmt.Sprintf("What would guarantee that %s fails completely?", topKeyword),
			fmt.Sprintf("How could this %s problem be made dramatically worse?", primaryDomain),
			"Which of your anti-solutions is already happening without anyone noticing?",
			"What is the exact opposite of the goal, stated as an instruction?",
		}
	case types.TechniqueLotus:
		return []string{
			fmt.Sprintf("What are the core components of %s?", topKeyword),
			fmt.Sprintf("How does each theme connect back to the %s context?", primaryDomain),
			"Which petal of the grid is still empty, and why is it hard to fill?",
			"What sub-elements emerge when you expand the strongest theme?",
		}
	}

	return append([]string(nil), genericQuestions...)
}
