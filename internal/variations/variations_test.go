// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package variations

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

const testProblem = "How can we improve team collaboration in remote work environments?"

func TestGenerateKnownTechniques(t *testing.T) {
	for _, technique := range types.AllTechniques() {
		t.Run(string(technique), func(t *testing.T) {
			v, err := Generate(testProblem, technique, rand.New(rand.NewSource(7)))
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if v.Technique != technique {
				t.Errorf("technique = %s, want %s", v.Technique, technique)
			}
			if v.TechniqueName != technique.DisplayName() {
				t.Errorf("name = %q, want %q", v.TechniqueName, technique.DisplayName())
			}
			if len(v.Ideas) < 3 || len(v.Ideas) > 5 {
				t.Fatalf("ideas = %d, want 3-5", len(v.Ideas))
			}
			var mentionsFocus bool
			for _, idea := range v.Ideas {
				if idea == "" {
					t.Error("empty idea")
				}
				if strings.Contains(idea, "team collaboration") {
					mentionsFocus = true
				}
			}
			if !mentionsFocus {
				t.Errorf("no idea mentions the focus phrase: %v", v.Ideas)
			}
		})
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a, err := Generate(testProblem, types.TechniqueLotus, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(testProblem, types.TechniqueLotus, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed diverged:\n%v\n%v", a, b)
	}
}

func TestGenerateRandomTechnique(t *testing.T) {
	picked := make(map[types.Technique]bool)
	for seed := int64(0); seed < 10; seed++ {
		v, err := Generate(testProblem, "", rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		valid := false
		for _, known := range types.AllTechniques() {
			if v.Technique == known {
				valid = true
			}
		}
		if !valid {
			t.Fatalf("seed %d picked unknown technique %q", seed, v.Technique)
		}
		picked[v.Technique] = true
	}
	if len(picked) < 2 {
		t.Errorf("ten seeds picked only %v", picked)
	}
}

func TestGenerateUnknownTechnique(t *testing.T) {
	_, err := Generate(testProblem, types.Technique("six_thinking_hats"), rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected error for unknown technique")
	}
}

func TestGenerateCountRange(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		v, err := Generate(testProblem, types.TechniqueRandomWord, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		if len(v.Ideas) < 3 || len(v.Ideas) > 5 {
			t.Errorf("seed %d: ideas = %d, want 3-5", seed, len(v.Ideas))
		}
	}
}

func TestGenerateDomainIdea(t *testing.T) {
	v, err := Generate(testProblem, types.TechniqueReverse, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	var hasPlaybook bool
	for _, idea := range v.Ideas {
		if strings.Contains(idea, "communication playbook") {
			hasPlaybook = true
		}
	}
	if !hasPlaybook {
		t.Errorf("expected a communication playbook idea, got %v", v.Ideas)
	}

	// No recognizable domain, no playbook idea.
	v, err = Generate("What should we paint on the fence this weekend?", types.TechniqueReverse, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	for _, idea := range v.Ideas {
		if strings.Contains(idea, "playbook") {
			t.Errorf("unexpected playbook idea: %q", idea)
		}
	}
}

func TestFocusPhrase(t *testing.T) {
	tests := []struct {
		problem string
		want    string
	}{
		{testProblem, "team collaboration"},
		{"How can we reduce customer churn in our mobile app?", "customer churn"},
		{"Improve!", "improve"},
		{"Up and go!", "the problem"},
		{"", "the problem"},
	}
	for _, tt := range tests {
		if got := focusPhrase(tt.problem); got != tt.want {
			t.Errorf("focusPhrase(%q) = %q, want %q", tt.problem, got, tt.want)
		}
	}
}
