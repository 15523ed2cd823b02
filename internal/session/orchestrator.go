// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session owns the ideation session lifecycle: creation, step
// guidance, data submission, technique switching, finalization, and
// export. Implements: prd001-session-engine (R1-R6);
//
//	docs/ARCHITECTURE § Session Engine.
package session

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/ideation-engine/internal/catalog"
	"github.com/pdiddy/ideation-engine/internal/lexical"
	"github.com/pdiddy/ideation-engine/internal/wordbank"
	"github.com/pdiddy/ideation-engine/pkg/types"
)

// defaultParticipant is recorded when a session starts with no named
// participants.
const defaultParticipant = "facilitator"

// completionSentinel replaces the step instruction once a session has
// worked through every step.
const completionSentinel = "All steps completed"

// Orchestrator drives ideation sessions: it owns the store, the word
// bank, and the randomness source. All methods are safe for concurrent
// use; mutations on one session id serialize, distinct ids proceed
// independently.
type Orchestrator struct {
	store *Store
	bank  *wordbank.Bank

	clock  func() time.Time
	logger *zap.Logger

	// rngMu guards rng; rand.Rand is not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand

	clusterThreshold float64
}

// Option adjusts orchestrator construction.
type Option func(*Orchestrator)

// WithClock substitutes the time source. Tests pin this to get stable
// timestamps and durations.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) { o.clock = clock }
}

// WithSeed seeds the word-draw randomness source. Draws with the same
// seed, bank, and problem are reproducible.
func WithSeed(seed int64) Option {
	return func(o *Orchestrator) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger attaches a structured logger; the default discards logs.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithClusterThreshold overrides the similarity threshold used when
// clustering ideas at finalization.
func WithClusterThreshold(threshold float64) Option {
	return func(o *Orchestrator) { o.clusterThreshold = threshold }
}

// NewOrchestrator builds an orchestrator over the given word bank.
func NewOrchestrator(bank *wordbank.Bank, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:            NewStore(),
		bank:             bank,
		clock:            time.Now,
		logger:           zap.NewNop(),
		clusterThreshold: lexical.DefaultClusterThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Store exposes the underlying session store for read-side callers
// such as the history listing.
func (o *Orchestrator) Store() *Store {
	return o.store
}

// StartSession creates an active session for the technique. The id is
// generated when empty; a caller-supplied id that collides with any
// known session is a hard failure, never retried.
func (o *Orchestrator) StartSession(technique types.Technique, problem string, participants []string, sessionID string) (string, error) {
	sess, err := o.newSession(technique, problem, participants, sessionID)
	if err != nil {
		return "", err
	}
	if err := o.store.Insert(sess); err != nil {
		return "", err
	}
	o.logger.Info("Session started",
		zap.String("session_id", sess.ID),
		zap.String("technique", string(technique)),
		zap.Int("total_steps", sess.TotalSteps))
	return sess.ID, nil
}

func (o *Orchestrator) newSession(technique types.Technique, problem string, participants []string, sessionID string) (*types.Session, error) {
	steps, err := catalog.StepsFor(technique)
	if err != nil {
		return nil, err
	}

	id := sessionID
	if id == "" {
		id = uuid.NewString()
	}

	parts := make([]string, len(participants))
	copy(parts, participants)
	if len(parts) == 0 {
		parts = []string{defaultParticipant}
	}

	return &types.Session{
		ID:               id,
		Technique:        technique,
		ProblemStatement: problem,
		StartTime:        o.clock(),
		Participants:     parts,
		CurrentStep:      0,
		TotalSteps:       len(steps),
		Ideas:            []types.IdeaRecord{},
		TechniqueData:    seedTechniqueData(technique, problem),
	}, nil
}

// Status reports progress and the next action for an active session.
// It never mutates: the word draw the word-association flow needs at
// step 1 is the separate DrawRandomWord call, and until that call
// happens the status carries a select_random_word action.
func (o *Orchestrator) Status(sessionID string) (*types.SessionStatus, error) {
	snap, err := o.store.Snapshot(sessionID)
	if err != nil {
		return nil, err
	}
	return o.statusFor(snap), nil
}

func (o *Orchestrator) statusFor(s *types.Session) *types.SessionStatus {
	ins, _ := catalog.InstructionsFor(s.Technique)

	instruction := completionSentinel
	if s.CurrentStep < len(ins.Steps) {
		instruction = ins.Steps[s.CurrentStep]
	}

	return &types.SessionStatus{
		SessionID:          s.ID,
		Technique:          s.Technique,
		TechniqueName:      s.Technique.DisplayName(),
		ProblemStatement:   s.ProblemStatement,
		Progress:           fmt.Sprintf("%d/%d", s.CurrentStep, s.TotalSteps),
		ProgressPercent:    progressPercent(s.CurrentStep, s.TotalSteps),
		CurrentStep:        s.CurrentStep,
		TotalSteps:         s.TotalSteps,
		CurrentInstruction: instruction,
		NextAction:         dispatchStep(s),
		TechniqueInfo: types.TechniqueInfo{
			Overview: ins.Overview,
			Duration: ins.Duration,
		},
		Participants:    s.Participants,
		IdeasCount:      len(s.Ideas),
		DurationMinutes: durationMinutes(s.StartTime, s.EndTime, o.clock),
	}
}

// DrawRandomWord pulls a stimulus word for a word-association session
// sitting at the word-selection step, records it in the session, and
// returns it with its distance score. This is the single mutation of
// the status flow, split out so Status itself stays read-only.
func (o *Orchestrator) DrawRandomWord(sessionID string) (types.RandomWordSuggestion, error) {
	var suggestion types.RandomWordSuggestion
	err := o.store.Mutate(sessionID, func(s *types.Session) error {
		if s.Technique != types.TechniqueRandomWord {
			return &ValidationError{Field: "technique", Reason: "must be random_word_association to draw words"}
		}
		if s.CurrentStep != 1 {
			return &ValidationError{Field: "current_step", Reason: "must be at the word-selection step to draw words"}
		}

		suggestions := o.suggestWords(s.ProblemStatement, 1)
		if len(suggestions) == 0 {
			return fmt.Errorf("word bank is empty")
		}
		suggestion = suggestions[0]

		words := stringsOf(s.TechniqueData[keyRandomWords])
		s.TechniqueData[keyRandomWords] = append(words, suggestion.Word)
		s.TechniqueData[keyWordAnalysis] = map[string]any{
			"word":             suggestion.Word,
			"randomness_score": suggestion.RandomnessScore,
			"reasoning":        suggestion.Reasoning,
		}
		return nil
	})
	if err != nil {
		return types.RandomWordSuggestion{}, err
	}

	o.logger.Info("Random word drawn",
		zap.String("session_id", sessionID),
		zap.String("word", suggestion.Word),
		zap.Float64("randomness_score", suggestion.RandomnessScore))
	return suggestion, nil
}

func (o *Orchestrator) suggestWords(problem string, count int) []types.RandomWordSuggestion {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	return lexical.SuggestRandomWords(problem, o.bank.Words(), count, o.rng)
}

// SwitchTechnique finalizes the source session and starts a fresh one
// with the requested technique, carrying over the problem statement and
// participants. With preserveData, generated ideas move to the new
// session keeping their original step and quality analysis.
func (o *Orchestrator) SwitchTechnique(sessionID string, newTechnique types.Technique, preserveData bool) (string, error) {
	if _, err := catalog.InstructionsFor(newTechnique); err != nil {
		return "", err
	}

	var (
		oldTechnique types.Technique
		problem      string
		participants []string
		preserved    []types.IdeaRecord
	)
	err := o.store.Mutate(sessionID, func(s *types.Session) error {
		snap := s.Clone()
		oldTechnique = snap.Technique
		problem = snap.ProblemStatement
		participants = snap.Participants
		if preserveData {
			preserved = snap.Ideas
		}
		o.finalize(s)
		return nil
	})
	if err != nil {
		return "", err
	}

	next, err := o.newSession(newTechnique, problem, participants, "")
	if err != nil {
		return "", err
	}
	if len(preserved) > 0 {
		next.Ideas = append(next.Ideas, preserved...)
		next.TechniqueData[keyPreservedFrom] = map[string]any{
			"technique":   string(oldTechnique),
			"ideas_count": len(preserved),
		}
	}
	if err := o.store.Insert(next); err != nil {
		return "", err
	}

	o.logger.Info("Technique switched",
		zap.String("from_session", sessionID),
		zap.String("to_session", next.ID),
		zap.String("from_technique", string(oldTechnique)),
		zap.String("to_technique", string(newTechnique)),
		zap.Int("preserved_ideas", len(preserved)))
	return next.ID, nil
}

// Session returns a deep copy of a session, active or historical.
func (o *Orchestrator) Session(sessionID string) (*types.Session, error) {
	return o.store.Find(sessionID)
}

// progressPercent is current/total scaled to 0..100, one decimal.
func progressPercent(current, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(current)/float64(total)*1000) / 10
}

// durationMinutes measures session wall time to one decimal, using now
// for sessions that have not ended.
func durationMinutes(start time.Time, end *time.Time, now func() time.Time) float64 {
	stop := now()
	if end != nil {
		stop = *end
	}
	return math.Round(stop.Sub(start).Minutes()*10) / 10
}
