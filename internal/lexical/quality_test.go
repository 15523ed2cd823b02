// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexical

import (
	"math"
	"strings"
	"testing"
)

// --- AnalyzeIdeaQuality ---

func TestAnalyzeIdeaQuality(t *testing.T) {
	problem := "How can we improve team collaboration in remote work environments?"

	tests := []struct {
		name string
		idea string
	}{
		{"short idea", "Virtual dashboard showing team mood"},
		{"long specific idea", "Create a rotating facilitation schedule where every participant leads one weekly session and documents the decisions in a shared knowledge base"},
		{"idea echoing the problem", "improve team collaboration in remote work environments"},
		{"empty idea", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := AnalyzeIdeaQuality(tt.idea, problem)

			for label, v := range map[string]float64{
				"novelty":     q.Novelty,
				"complexity":  q.Complexity,
				"specificity": q.Specificity,
				"quality":     q.Quality,
			} {
				if v < 0 || v > 1 {
					t.Errorf("%s = %v outside [0,1]", label, v)
				}
			}
			if len(q.KeyConcepts) > maxKeyConcepts {
				t.Errorf("key concepts = %d, want <= %d", len(q.KeyConcepts), maxKeyConcepts)
			}
		})
	}
}

func TestAnalyzeIdeaQualityComponents(t *testing.T) {
	problem := "How can we improve team collaboration in remote work environments?"
	idea := "Virtual dashboard showing team mood"

	q := AnalyzeIdeaQuality(idea, problem)

	// Idea keywords: virtual, dashboard, showing, team, mood (5 of them,
	// sharing only "team" with the problem's 7 keywords).
	wantNovelty := 1 - 1.0/11.0
	if math.Abs(q.Novelty-wantNovelty) > 1e-9 {
		t.Errorf("novelty = %v, want %v", q.Novelty, wantNovelty)
	}
	if q.Complexity != 0.5 {
		t.Errorf("complexity = %v, want 0.5", q.Complexity)
	}
	if q.Specificity != 0.25 {
		t.Errorf("specificity = %v, want 0.25", q.Specificity)
	}

	wantQuality := 0.4*wantNovelty + 0.3*0.5 + 0.3*0.25
	if math.Abs(q.Quality-wantQuality) > 1e-9 {
		t.Errorf("quality = %v, want %v", q.Quality, wantQuality)
	}
	if len(q.KeyConcepts) != 5 || q.KeyConcepts[0] != "virtual" {
		t.Errorf("key concepts = %v", q.KeyConcepts)
	}
}

func TestAnalyzeIdeaQualitySaturation(t *testing.T) {
	problem := "shipping costs"
	idea := strings.Repeat("ocean forest desert volcano glacier meadow valley peak cloud storm rainbow sunrise ", 3)

	q := AnalyzeIdeaQuality(idea, problem)
	if q.Complexity != 1 {
		t.Errorf("complexity should saturate at 1, got %v", q.Complexity)
	}
	if q.Specificity != 1 {
		t.Errorf("specificity should saturate at 1, got %v", q.Specificity)
	}
}

// --- DetectIdeaClusters ---

func TestDetectIdeaClusters(t *testing.T) {
	ideas := []string{
		"reduce cost of shipping",
		"reduce shipping cost fast",
		"improve UX design",
	}

	clusters := DetectIdeaClusters(ideas, DefaultClusterThreshold)

	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2: %+v", len(clusters), clusters)
	}
	if clusters[0].Size != 2 || len(clusters[0].Ideas) != 2 {
		t.Errorf("first cluster = %+v, want the two shipping ideas together", clusters[0])
	}
	if clusters[1].Size != 1 || clusters[1].Ideas[0] != "improve UX design" {
		t.Errorf("second cluster = %+v, want the UX idea alone", clusters[1])
	}
	if !strings.Contains(clusters[0].Theme, "reduce") {
		t.Errorf("first cluster theme %q should name a shared keyword", clusters[0].Theme)
	}
}

func TestDetectIdeaClustersRepresentativeOnly(t *testing.T) {
	// B and C each match representative A but not each other; the greedy
	// pass still puts all three in one cluster.
	ideas := []string{"alpha beta", "alpha gamma", "beta delta"}

	clusters := DetectIdeaClusters(ideas, 0.3)

	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1: %+v", len(clusters), clusters)
	}
	if clusters[0].Size != 3 {
		t.Errorf("cluster size = %d, want 3", clusters[0].Size)
	}
	if sim := CalculateSimilarity(ideas[1], ideas[2]); sim >= 0.3 {
		t.Fatalf("test fixture broken: members should be mutually dissimilar, sim = %v", sim)
	}
}

func TestDetectIdeaClustersEdges(t *testing.T) {
	if got := DetectIdeaClusters(nil, 0.3); got != nil {
		t.Errorf("nil ideas should give nil clusters, got %+v", got)
	}

	single := DetectIdeaClusters([]string{"one lonely idea"}, 0.3)
	if len(single) != 1 || single[0].Size != 1 {
		t.Errorf("single idea should form one singleton cluster, got %+v", single)
	}

	// Ideas with no extractable keywords cannot match anything and fall
	// back to the placeholder theme.
	vacuous := DetectIdeaClusters([]string{"the a an", "of and or"}, 0.3)
	if len(vacuous) != 2 {
		t.Fatalf("got %d clusters, want 2", len(vacuous))
	}
	for _, c := range vacuous {
		if c.Theme != clusterFallbackTheme {
			t.Errorf("theme = %q, want %q", c.Theme, clusterFallbackTheme)
		}
	}
}
