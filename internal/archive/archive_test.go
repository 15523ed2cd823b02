// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSession(id string) (*types.Session, types.SessionSummary) {
	start := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	sess := &types.Session{
		ID:               id,
		Technique:        types.TechniqueReverse,
		ProblemStatement: "How can we reduce churn in the first month?",
		StartTime:        start,
		EndTime:          &end,
		Participants:     []string{"Alice", "Bob"},
		CurrentStep:      6,
		TotalSteps:       6,
		Ideas: []types.IdeaRecord{
			{
				Step:        3,
				Timestamp:   start.Add(15 * time.Minute),
				Text:        "Weekly onboarding check-in call",
				Participant: "Alice",
				Quality: types.QualityAnalysis{
					Novelty:     0.8,
					Complexity:  0.4,
					Specificity: 0.25,
					Quality:     0.515,
					KeyConcepts: []string{"weekly", "onboarding"},
				},
			},
			{
				Step:        4,
				Timestamp:   start.Add(20 * time.Minute),
				Text:        "Starter checklist inside the product",
				Participant: "Bob",
				Quality: types.QualityAnalysis{
					Novelty:     0.7,
					Complexity:  0.3,
					Specificity: 0.3,
					Quality:     0.46,
					KeyConcepts: []string{"starter", "checklist"},
				},
			},
		},
		TechniqueData: types.TechniqueData{
			"reversed_problem":   "How could we make churn worse?",
			"anti_solutions":     []string{"Never answer support tickets"},
			"reversed_solutions": []string{"Answer every ticket within a day"},
			"final_solutions":    []string{"Answer every ticket within a day"},
		},
	}

	summary := types.SessionSummary{
		TechniqueUsed:       types.TechniqueReverse,
		ProblemStatement:    sess.ProblemStatement,
		DurationMinutes:     30,
		Participants:        sess.Participants,
		TotalIdeasGenerated: 2,
		StepsCompleted:      6,
		CompletionRate:      100,
		ReversedProblem:     "How could we make churn worse?",
		AntiSolutionsCount:  1,
		FinalSolutionsCount: 1,
		AverageIdeaQuality:  0.4875,
	}
	return sess, summary
}

// --- round trips ---

func TestArchiveRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	sess, summary := sampleSession("rt-1")
	if err := store.Archive(ctx, sess, summary); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	loaded, loadedSummary, err := store.Load(ctx, "rt-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.ID != sess.ID || loaded.Technique != sess.Technique {
		t.Errorf("loaded %s/%s, want %s/%s", loaded.ID, loaded.Technique, sess.ID, sess.Technique)
	}
	if loaded.ProblemStatement != sess.ProblemStatement {
		t.Errorf("problem = %q, want %q", loaded.ProblemStatement, sess.ProblemStatement)
	}
	if !loaded.StartTime.Equal(sess.StartTime) {
		t.Errorf("start = %v, want %v", loaded.StartTime, sess.StartTime)
	}
	if loaded.EndTime == nil || !loaded.EndTime.Equal(*sess.EndTime) {
		t.Errorf("end = %v, want %v", loaded.EndTime, sess.EndTime)
	}
	if len(loaded.Participants) != 2 || loaded.Participants[0] != "Alice" {
		t.Errorf("participants = %v", loaded.Participants)
	}
	if loaded.CurrentStep != 6 || loaded.TotalSteps != 6 {
		t.Errorf("steps = %d/%d, want 6/6", loaded.CurrentStep, loaded.TotalSteps)
	}

	if len(loaded.Ideas) != 2 {
		t.Fatalf("ideas = %d, want 2", len(loaded.Ideas))
	}
	idea := loaded.Ideas[0]
	if idea.Text != "Weekly onboarding check-in call" || idea.Step != 3 || idea.Participant != "Alice" {
		t.Errorf("idea[0] = %+v", idea)
	}
	if idea.Quality.Quality != 0.515 {
		t.Errorf("idea[0] quality = %v, want 0.515", idea.Quality.Quality)
	}
	if len(idea.Quality.KeyConcepts) != 2 || idea.Quality.KeyConcepts[0] != "weekly" {
		t.Errorf("idea[0] key concepts = %v", idea.Quality.KeyConcepts)
	}
	if !idea.Timestamp.Equal(sess.Ideas[0].Timestamp) {
		t.Errorf("idea[0] timestamp = %v, want %v", idea.Timestamp, sess.Ideas[0].Timestamp)
	}

	// Technique data survives as its JSON shape.
	if got, _ := loaded.TechniqueData["reversed_problem"].(string); got != "How could we make churn worse?" {
		t.Errorf("reversed_problem = %q", got)
	}
	anti, _ := loaded.TechniqueData["anti_solutions"].([]any)
	if len(anti) != 1 || anti[0] != "Never answer support tickets" {
		t.Errorf("anti_solutions = %v", anti)
	}

	if loadedSummary.CompletionRate != 100 || loadedSummary.TotalIdeasGenerated != 2 {
		t.Errorf("summary = %+v", loadedSummary)
	}
	if loadedSummary.ReversedProblem != summary.ReversedProblem {
		t.Errorf("summary reversed_problem = %q", loadedSummary.ReversedProblem)
	}
}

func TestArchiveNilEndTime(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	sess, summary := sampleSession("open-1")
	sess.EndTime = nil
	sess.CurrentStep = 4

	if err := store.Archive(ctx, sess, summary); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	loaded, _, err := store.Load(ctx, "open-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.EndTime != nil {
		t.Errorf("end time = %v, want nil", loaded.EndTime)
	}
}

func TestArchiveIdempotent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	sess, summary := sampleSession("idem-1")
	if err := store.Archive(ctx, sess, summary); err != nil {
		t.Fatalf("first Archive: %v", err)
	}

	// Re-archiving replaces the record instead of duplicating it.
	sess.Ideas = sess.Ideas[:1]
	summary.TotalIdeasGenerated = 1
	if err := store.Archive(ctx, sess, summary); err != nil {
		t.Fatalf("second Archive: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	loaded, loadedSummary, err := store.Load(ctx, "idem-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Ideas) != 1 {
		t.Errorf("ideas = %d, want 1 after re-archive", len(loaded.Ideas))
	}
	if loadedSummary.TotalIdeasGenerated != 1 {
		t.Errorf("summary ideas = %d, want 1", loadedSummary.TotalIdeasGenerated)
	}
}

// --- listing ---

func TestListNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first, firstSummary := sampleSession("list-1")
	second, secondSummary := sampleSession("list-2")
	if err := store.Archive(ctx, first, firstSummary); err != nil {
		t.Fatal(err)
	}
	if err := store.Archive(ctx, second, secondSummary); err != nil {
		t.Fatal(err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List = %d rows, want 2", len(infos))
	}
	if infos[0].ID != "list-2" || infos[1].ID != "list-1" {
		t.Errorf("order = %s, %s; want list-2, list-1", infos[0].ID, infos[1].ID)
	}
	if infos[0].IdeaCount != 2 {
		t.Errorf("IdeaCount = %d, want 2", infos[0].IdeaCount)
	}
	if infos[0].StepsCompleted != 6 || infos[0].TotalSteps != 6 {
		t.Errorf("steps = %d/%d, want 6/6", infos[0].StepsCompleted, infos[0].TotalSteps)
	}
}

func TestLoadUnknownID(t *testing.T) {
	store := testStore(t)

	_, _, err := store.Load(context.Background(), "ghost")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestCountEmpty(t *testing.T) {
	store := testStore(t)

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "archive.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()
}
