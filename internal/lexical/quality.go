// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexical

import (
	"strings"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Quality score weights (R5.2). Fixed; the composite stays in [0,1]
// because the weights sum to 1 and every component is clamped.
const (
	noveltyWeight     = 0.4
	complexityWeight  = 0.3
	specificityWeight = 0.3
)

// Component saturation points (R5.1).
const (
	complexitySaturation  = 10 // keywords
	specificitySaturation = 20 // words
)

// maxKeyConcepts caps the concepts carried on a quality analysis.
const maxKeyConcepts = 5

// AnalyzeIdeaQuality scores an idea against the problem it addresses.
// Novelty rewards lexical distance from the problem, complexity rewards
// keyword richness, specificity rewards length, each saturating at its
// fixed point (R5.1-R5.3).
func AnalyzeIdeaQuality(ideaText, problemText string) types.QualityAnalysis {
	keywords := ExtractKeywords(ideaText)

	novelty := 1 - CalculateSimilarity(ideaText, problemText)
	complexity := min1(float64(len(keywords)) / complexitySaturation)
	specificity := min1(float64(len(strings.Fields(ideaText))) / specificitySaturation)

	concepts := keywords
	if len(concepts) > maxKeyConcepts {
		concepts = concepts[:maxKeyConcepts]
	}

	return types.QualityAnalysis{
		Novelty:     novelty,
		Complexity:  complexity,
		Specificity: specificity,
		Quality:     noveltyWeight*novelty + complexityWeight*complexity + specificityWeight*specificity,
		KeyConcepts: concepts,
	}
}

// DefaultClusterThreshold is the minimum similarity to the cluster
// representative for membership (R6.2).
const DefaultClusterThreshold = 0.3

// clusterFallbackTheme labels clusters whose member text yields no keywords.
const clusterFallbackTheme = "general concepts"

// DetectIdeaClusters groups ideas by a single greedy pass: each idea not
// yet assigned opens a cluster and becomes its representative; every later
// unassigned idea joins the first cluster whose representative it matches
// at or above threshold. Similarity is checked against the representative
// only, never against other members, so a cluster's members can be
// mutually dissimilar; this is not single-link clustering (R6.1-R6.3).
func DetectIdeaClusters(ideas []string, threshold float64) []types.IdeaCluster {
	var clusters []types.IdeaCluster
	used := make([]bool, len(ideas))

	for i, representative := range ideas {
		if used[i] {
			continue
		}
		used[i] = true
		members := []string{representative}

		for j := i + 1; j < len(ideas); j++ {
			if used[j] {
				continue
			}
			if CalculateSimilarity(representative, ideas[j]) >= threshold {
				used[j] = true
				members = append(members, ideas[j])
			}
		}

		clusters = append(clusters, types.IdeaCluster{
			Ideas: members,
			Theme: clusterTheme(members),
			Size:  len(members),
		})
	}

	return clusters
}

// clusterTheme names a cluster after the top three keywords of its
// members' concatenated text.
func clusterTheme(members []string) string {
	keywords := ExtractKeywords(strings.Join(members, " "))
	if len(keywords) == 0 {
		return clusterFallbackTheme
	}
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return strings.Join(keywords, ", ")
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
