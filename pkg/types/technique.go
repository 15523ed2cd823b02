// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Technique identifies one of the structured ideation methods the engine
// can facilitate. The set is closed: every technique has exactly six
// ordered steps and a fixed technique_data key set.
// Per prd001-session-engine R1.1.
type Technique string

const (
	TechniqueRandomWord Technique = "random_word_association"
	TechniqueReverse    Technique = "reverse_brainstorming"
	TechniqueLotus      Technique = "lotus_blossom"
)

// AllTechniques lists every technique in catalog order.
func AllTechniques() []Technique {
	return []Technique{TechniqueRandomWord, TechniqueReverse, TechniqueLotus}
}

// Valid reports whether t is one of the known techniques.
func (t Technique) Valid() bool {
	switch t {
	case TechniqueRandomWord, TechniqueReverse, TechniqueLotus:
		return true
	}
	return false
}

// DisplayName returns the human-readable technique name used in reports
// and CLI output.
func (t Technique) DisplayName() string {
	switch t {
	case TechniqueRandomWord:
		return "Random Word Association"
	case TechniqueReverse:
		return "Reverse Brainstorming"
	case TechniqueLotus:
		return "Lotus Blossom"
	}
	return string(t)
}

// techniqueAliases maps accepted spellings to canonical identifiers so CLI
// users can type "reverse" or "lotus" instead of the full key.
var techniqueAliases = map[string]Technique{
	"random_word_association": TechniqueRandomWord,
	"random_word":             TechniqueRandomWord,
	"random":                  TechniqueRandomWord,
	"reverse_brainstorming":   TechniqueReverse,
	"reverse_brainstorm":      TechniqueReverse,
	"reverse":                 TechniqueReverse,
	"lotus_blossom":           TechniqueLotus,
	"lotus":                   TechniqueLotus,
}

// ParseTechnique resolves a user-supplied technique name, accepting hyphen
// and space separators and a few short aliases. Unknown names are an error.
func ParseTechnique(s string) (Technique, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if t, ok := techniqueAliases[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown technique %q (choose from: random_word_association, reverse_brainstorming, lotus_blossom)", s)
}

// TechniqueInstructions is the static catalog record for one technique:
// facilitation guidance plus the ordered step instructions that drive a
// session's total_steps. Immutable after process start.
// Per prd003-technique-catalog R1.1-R1.3.
type TechniqueInstructions struct {
	// Technique is the catalog key.
	Technique Technique `json:"technique" yaml:"technique"`

	// Overview is a one-sentence description of the method.
	Overview string `json:"overview" yaml:"overview"`

	// WhenToUse describes the situations the technique suits best.
	WhenToUse string `json:"when_to_use" yaml:"when_to_use"`

	// Duration is the typical facilitation time (e.g. "20-30 minutes").
	Duration string `json:"duration" yaml:"duration"`

	// Participants is the recommended group size (e.g. "3-8 people").
	Participants string `json:"participants" yaml:"participants"`

	// Steps holds exactly one instruction string per step index.
	Steps []string `json:"steps" yaml:"steps"`

	// Tips lists facilitation advice shown alongside the steps.
	Tips []string `json:"tips" yaml:"tips"`
}
