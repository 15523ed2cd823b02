// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdiddy/ideation-engine/internal/wordbank"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

const testProblem = "How can we improve team collaboration in remote work environments?"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testClock is a hand-advanced time source shared with the orchestrator.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *testClock) {
	t.Helper()
	clock := newTestClock()
	return NewOrchestrator(wordbank.Builtin(), WithSeed(42), WithClock(clock.Now)), clock
}

// --- session creation ---

func TestStartSessionDefaults(t *testing.T) {
	firstActions := map[types.Technique]string{
		types.TechniqueRandomWord: actionAcknowledgeProblem,
		types.TechniqueReverse:    actionStateOriginalProblem,
		types.TechniqueLotus:      actionEstablishCoreProblem,
	}

	for _, technique := range types.AllTechniques() {
		t.Run(string(technique), func(t *testing.T) {
			o, _ := newTestOrchestrator(t)
			id, err := o.StartSession(technique, testProblem, nil, "")
			require.NoError(t, err)
			require.NotEmpty(t, id)

			st, err := o.Status(id)
			require.NoError(t, err)
			assert.Equal(t, 0, st.CurrentStep)
			assert.Equal(t, 6, st.TotalSteps)
			assert.Equal(t, "0/6", st.Progress)
			assert.Equal(t, 0.0, st.ProgressPercent)
			assert.Equal(t, []string{"facilitator"}, st.Participants)
			assert.Equal(t, 0, st.IdeasCount)
			assert.Equal(t, testProblem, st.ProblemStatement)
			assert.NotEmpty(t, st.CurrentInstruction)
			assert.NotEmpty(t, st.TechniqueInfo.Overview)
			assert.Equal(t, firstActions[technique], st.NextAction.Action)
		})
	}
}

func TestStartSessionIDCollision(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.StartSession(types.TechniqueRandomWord, testProblem, nil, "team-alpha")
	require.NoError(t, err)

	_, err = o.StartSession(types.TechniqueLotus, testProblem, nil, "team-alpha")
	assert.ErrorIs(t, err, ErrDuplicateSession)
}

func TestStartSessionUnknownTechnique(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	_, err := o.StartSession(types.Technique("six_thinking_hats"), testProblem, nil, "")
	assert.Error(t, err)
}

func TestStatusUnknownSession(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	_, err := o.Status("ghost")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// --- random word draws ---

func TestDrawRandomWordFlow(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueRandomWord, testProblem, []string{"Alice", "Bob"}, "")
	require.NoError(t, err)

	// Draws only happen at the word-selection step.
	_, err = o.DrawRandomWord(id)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = o.SubmitStepData(id, nil)
	require.NoError(t, err)

	st, err := o.Status(id)
	require.NoError(t, err)
	require.Equal(t, 1, st.CurrentStep)
	assert.Equal(t, actionSelectRandomWord, st.NextAction.Action)

	sugg, err := o.DrawRandomWord(id)
	require.NoError(t, err)
	assert.Contains(t, wordbank.Builtin().Words(), sugg.Word)
	assert.GreaterOrEqual(t, sugg.RandomnessScore, 0.0)
	assert.LessOrEqual(t, sugg.RandomnessScore, 1.0)
	assert.Contains(t, sugg.Reasoning, "communication")

	st, err = o.Status(id)
	require.NoError(t, err)
	assert.Equal(t, actionRandomWordGenerated, st.NextAction.Action)
	assert.Equal(t, sugg.Word, st.NextAction.Word)
	assert.Equal(t, sugg.Reasoning, st.NextAction.Reasoning)
	assert.NotEmpty(t, st.NextAction.Questions)

	// A stalled group may redraw; every draw is recorded.
	_, err = o.DrawRandomWord(id)
	require.NoError(t, err)
	sess, err := o.Session(id)
	require.NoError(t, err)
	assert.Len(t, stringsOf(sess.TechniqueData[keyRandomWords]), 2)
}

func TestDrawRandomWordWrongTechnique(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueReverse, testProblem, nil, "")
	require.NoError(t, err)

	_, err = o.SubmitStepData(id, nil)
	require.NoError(t, err)

	_, err = o.DrawRandomWord(id)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDrawRandomWordDeterministicWithSeed(t *testing.T) {
	run := func() string {
		clock := newTestClock()
		o := NewOrchestrator(wordbank.Builtin(), WithSeed(7), WithClock(clock.Now))
		id, err := o.StartSession(types.TechniqueRandomWord, testProblem, nil, "")
		require.NoError(t, err)
		_, err = o.SubmitStepData(id, nil)
		require.NoError(t, err)
		sugg, err := o.DrawRandomWord(id)
		require.NoError(t, err)
		return sugg.Word
	}

	assert.Equal(t, run(), run())
}

// --- step submission ---

func TestSubmitIdeasWorkedExample(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueRandomWord, testProblem, []string{"Alice", "Bob"}, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := o.SubmitStepData(id, types.StepData{})
		require.NoError(t, err)
		require.False(t, res.Completed())
		assert.Equal(t, i+1, res.Status.CurrentStep)
	}

	res, err := o.SubmitStepData(id, types.StepData{
		"ideas":       []string{"Virtual dashboard showing team mood"},
		"participant": "Alice",
	})
	require.NoError(t, err)
	require.False(t, res.Completed())
	assert.Equal(t, 4, res.Status.CurrentStep)
	assert.Equal(t, 1, res.Status.IdeasCount)

	sess, err := o.Session(id)
	require.NoError(t, err)
	require.Len(t, sess.Ideas, 1)

	idea := sess.Ideas[0]
	assert.Equal(t, 3, idea.Step)
	assert.Equal(t, "Alice", idea.Participant)
	assert.Equal(t, "Virtual dashboard showing team mood", idea.Text)
	assert.GreaterOrEqual(t, idea.Quality.Quality, 0.0)
	assert.LessOrEqual(t, idea.Quality.Quality, 1.0)
	assert.NotEmpty(t, idea.Quality.KeyConcepts)

	// Step 3 payloads also land in technique_data.selected_ideas.
	assert.Equal(t, []string{"Virtual dashboard showing team mood"},
		stringsOf(sess.TechniqueData[keySelectedIdeas]))
}

func TestSubmitDefaultsParticipantToUnknown(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueLotus, testProblem, []string{"Cleo"}, "")
	require.NoError(t, err)

	_, err = o.SubmitStepData(id, types.StepData{"ideas": []string{"Theme wall with sticky clusters"}})
	require.NoError(t, err)

	sess, err := o.Session(id)
	require.NoError(t, err)
	require.Len(t, sess.Ideas, 1)
	assert.Equal(t, "unknown", sess.Ideas[0].Participant)
	assert.Equal(t, 0, sess.Ideas[0].Step)
}

func TestSubmitRejectsMalformedIdeas(t *testing.T) {
	tests := []struct {
		name  string
		ideas any
	}{
		{"scalar", 42},
		{"string", "not a list"},
		{"mixed list", []any{"fine", 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newTestOrchestrator(t)
			id, err := o.StartSession(types.TechniqueRandomWord, testProblem, nil, "")
			require.NoError(t, err)

			_, err = o.SubmitStepData(id, types.StepData{"ideas": tt.ideas})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "ideas", verr.Field)

			// A rejected submission leaves the session untouched.
			st, err := o.Status(id)
			require.NoError(t, err)
			assert.Equal(t, 0, st.CurrentStep)
			assert.Equal(t, 0, st.IdeasCount)
		})
	}
}

func TestSubmitMergesPerStepFields(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueReverse, testProblem, nil, "")
	require.NoError(t, err)

	payloads := []types.StepData{
		{},
		{"reversed_problem": "How do we ruin remote collaboration entirely?"},
		{"anti_solutions": []string{"Ignore customer feedback completely", "Never test anything before launch"}},
		{"reversed_solutions": []string{"prioritize customer feedback completely"}},
		{"final_solutions": []string{"Weekly feedback digest"}},
	}
	for _, p := range payloads {
		_, err := o.SubmitStepData(id, p)
		require.NoError(t, err)
	}

	sess, err := o.Session(id)
	require.NoError(t, err)
	data := sess.TechniqueData
	assert.Equal(t, "How do we ruin remote collaboration entirely?", data[keyReversedProblem])
	assert.Len(t, stringsOf(data[keyAntiSolutions]), 2)
	assert.Equal(t, []string{"prioritize customer feedback completely"}, stringsOf(data[keyReversedSolutions]))
	assert.Equal(t, []string{"Weekly feedback digest"}, stringsOf(data[keyFinalSolutions]))
}

func TestSubmitEmptyReversedProblemUsesTemplate(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueReverse, testProblem, nil, "")
	require.NoError(t, err)

	_, err = o.SubmitStepData(id, nil)
	require.NoError(t, err)
	_, err = o.SubmitStepData(id, types.StepData{})
	require.NoError(t, err)

	sess, err := o.Session(id)
	require.NoError(t, err)
	assert.Equal(t, reversedProblem(testProblem), sess.TechniqueData[keyReversedProblem])
}

func TestReverseStepActionSuggestsInversions(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueReverse, testProblem, nil, "")
	require.NoError(t, err)

	payloads := []types.StepData{
		{},
		{},
		{"anti_solutions": []string{"Ignore customer feedback completely"}},
	}
	for _, p := range payloads {
		_, err := o.SubmitStepData(id, p)
		require.NoError(t, err)
	}

	st, err := o.Status(id)
	require.NoError(t, err)
	require.Equal(t, actionReverseAnalysis, st.NextAction.Action)
	assert.Contains(t, st.NextAction.Examples, "prioritize customer feedback completely")
}

func TestLotusStepActionEchoesThemes(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueLotus, testProblem, nil, "")
	require.NoError(t, err)

	themes := []string{"Async rituals", "Tooling", "Trust"}
	_, err = o.SubmitStepData(id, nil)
	require.NoError(t, err)
	_, err = o.SubmitStepData(id, types.StepData{"themes": themes})
	require.NoError(t, err)

	st, err := o.Status(id)
	require.NoError(t, err)
	require.Equal(t, actionExpandThemes, st.NextAction.Action)
	assert.Equal(t, themes, st.NextAction.Examples)
}

// --- finalization ---

func TestFullLifecycleFinalizes(t *testing.T) {
	o, clock := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueReverse, testProblem, []string{"Alice", "Bob"}, "")
	require.NoError(t, err)

	payloads := []types.StepData{
		{},
		{"reversed_problem": ""},
		{"anti_solutions": []string{"Ignore customer feedback completely", "Never test anything before launch"}},
		{"reversed_solutions": []string{"prioritize customer feedback completely", "Test everything before launch"}, "ideas": []string{"Weekly feedback digest"}, "participant": "Bob"},
		{"final_solutions": []string{"Weekly feedback digest", "Mandatory pre-launch test day"}},
		{},
	}

	var completion *types.CompletionResult
	for i, p := range payloads {
		clock.Advance(5 * time.Minute)
		res, err := o.SubmitStepData(id, p)
		require.NoError(t, err, "submission %d", i)
		if i < len(payloads)-1 {
			require.False(t, res.Completed(), "submission %d", i)
			assert.Equal(t, i+1, res.Status.CurrentStep)
		} else {
			require.True(t, res.Completed())
			completion = res.Completion
		}
	}

	require.NotNil(t, completion)
	assert.Equal(t, "completed", completion.Status)
	assert.Equal(t, id, completion.SessionID)
	assert.Equal(t, types.TechniqueReverse, completion.Technique)
	assert.NotEmpty(t, completion.NextOptions)

	summary := completion.Summary
	assert.Equal(t, 6, summary.StepsCompleted)
	assert.Equal(t, 100.0, summary.CompletionRate)
	assert.Equal(t, 30.0, summary.DurationMinutes)
	assert.Equal(t, 1, summary.TotalIdeasGenerated)
	assert.Equal(t, reversedProblem(testProblem), summary.ReversedProblem)
	assert.Equal(t, 2, summary.AntiSolutionsCount)
	assert.Equal(t, 2, summary.FinalSolutionsCount)
	assert.NotEmpty(t, summary.ActionPlan)
	assert.NotEmpty(t, summary.IdeaClusters)
	assert.Greater(t, summary.AverageIdeaQuality, 0.0)

	// Finalized sessions leave the active store but stay reachable.
	_, err = o.Status(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = o.SubmitStepData(id, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	hist := o.Store().History()
	require.Len(t, hist, 1)
	assert.Equal(t, id, hist[0].ID)
	require.NotNil(t, hist[0].EndTime)
	assert.True(t, hist[0].Completed())
}

// --- technique switching ---

func TestSwitchTechniquePreservesIdeas(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueRandomWord, testProblem, []string{"Alice"}, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := o.SubmitStepData(id, nil)
		require.NoError(t, err)
	}
	_, err = o.SubmitStepData(id, types.StepData{
		"ideas":       []string{"Virtual dashboard showing team mood", "Rotating pairing roulette"},
		"participant": "Alice",
	})
	require.NoError(t, err)

	newID, err := o.SwitchTechnique(id, types.TechniqueLotus, true)
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)

	// Source finalized at the step it reached.
	_, err = o.Status(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	hist := o.Store().History()
	require.Len(t, hist, 1)
	assert.Equal(t, 4, hist[0].CurrentStep)
	require.NotNil(t, hist[0].EndTime)

	// Hybrid session carries the ideas with their original tags.
	st, err := o.Status(newID)
	require.NoError(t, err)
	assert.Equal(t, types.TechniqueLotus, st.Technique)
	assert.Equal(t, 0, st.CurrentStep)
	assert.Equal(t, 2, st.IdeasCount)
	assert.Equal(t, []string{"Alice"}, st.Participants)
	assert.Equal(t, testProblem, st.ProblemStatement)

	sess, err := o.Session(newID)
	require.NoError(t, err)
	require.Len(t, sess.Ideas, 2)
	assert.Equal(t, 3, sess.Ideas[0].Step)
	assert.Equal(t, "Alice", sess.Ideas[0].Participant)

	preserved, ok := sess.TechniqueData[keyPreservedFrom].(map[string]any)
	require.True(t, ok, "preserved_from_previous missing")
	assert.Equal(t, string(types.TechniqueRandomWord), preserved["technique"])
	assert.Equal(t, 2, preserved["ideas_count"])
}

func TestSwitchTechniqueWithoutPreserving(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueRandomWord, testProblem, nil, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := o.SubmitStepData(id, nil)
		require.NoError(t, err)
	}
	_, err = o.SubmitStepData(id, types.StepData{"ideas": []string{"Mood dashboard"}})
	require.NoError(t, err)

	newID, err := o.SwitchTechnique(id, types.TechniqueReverse, false)
	require.NoError(t, err)

	sess, err := o.Session(newID)
	require.NoError(t, err)
	assert.Empty(t, sess.Ideas)
	_, ok := sess.TechniqueData[keyPreservedFrom]
	assert.False(t, ok, "preserved_from_previous must be absent")
}

func TestSwitchTechniqueUnknownSession(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	_, err := o.SwitchTechnique("ghost", types.TechniqueLotus, true)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// --- concurrency ---

func TestConcurrentSubmitsSameSession(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	id, err := o.StartSession(types.TechniqueLotus, testProblem, nil, "")
	require.NoError(t, err)

	const submitters = 4
	var wg sync.WaitGroup
	wg.Add(submitters)
	for i := 0; i < submitters; i++ {
		go func() {
			defer wg.Done()
			_, err := o.SubmitStepData(id, types.StepData{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st, err := o.Status(id)
	require.NoError(t, err)
	assert.Equal(t, submitters, st.CurrentStep)
}

func TestConcurrentSessionsIndependent(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	const sessions = 8
	ids := make([]string, sessions)
	for i := range ids {
		id, err := o.StartSession(types.TechniqueReverse, testProblem, nil, "")
		require.NoError(t, err)
		ids[i] = id
	}

	var wg sync.WaitGroup
	wg.Add(sessions)
	for _, id := range ids {
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 2; j++ {
				_, err := o.SubmitStepData(id, types.StepData{})
				assert.NoError(t, err)
				_, err = o.Status(id)
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		st, err := o.Status(id)
		require.NoError(t, err)
		assert.Equal(t, 2, st.CurrentStep)
	}
}

func TestSubmitErrorTypes(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.SubmitStepData("ghost", nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "not-found must not read as validation error")
}
