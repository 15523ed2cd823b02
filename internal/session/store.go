// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// entry pairs an active session with the lock that serializes its
// mutations. Lock order is entry before store; the store lock is never
// held while waiting on an entry lock.
type entry struct {
	mu      sync.RWMutex
	session *types.Session
}

// Store keeps active sessions by id plus the history of finalized ones,
// in completion order. Sessions are never deleted: they move from
// active to history exactly once, at finalization.
type Store struct {
	mu        sync.RWMutex
	active    map[string]*entry
	history   []*types.Session
	historyID map[string]*types.Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		active:    make(map[string]*entry),
		historyID: make(map[string]*types.Session),
	}
}

// Insert registers a new active session. Ids are unique across active
// and historical sessions; a collision is a hard failure.
func (s *Store) Insert(sess *types.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[sess.ID]; ok {
		return fmt.Errorf("session %q: %w", sess.ID, ErrDuplicateSession)
	}
	if _, ok := s.historyID[sess.ID]; ok {
		return fmt.Errorf("session %q: %w", sess.ID, ErrDuplicateSession)
	}
	s.active[sess.ID] = &entry{session: sess}
	return nil
}

func (s *Store) activeEntry(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.active[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return e, nil
}

func (s *Store) isActive(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[id]
	return ok
}

// Snapshot returns a deep copy of an active session. Readers on the
// same id run concurrently; only mutations exclude them.
func (s *Store) Snapshot(id string) (*types.Session, error) {
	e, err := s.activeEntry(id)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	// The session may have been finalized between the map lookup and
	// taking the entry lock.
	if !s.isActive(id) {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return e.session.Clone(), nil
}

// Mutate runs fn on the live session under its exclusive lock, so at
// most one mutation per id is in flight. Mutations on different ids do
// not block each other. fn may retire the session; the entry lock stays
// valid for the duration of the call either way.
func (s *Store) Mutate(id string, fn func(*types.Session) error) error {
	e, err := s.activeEntry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !s.isActive(id) {
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return fn(e.session)
}

// retire moves an active session to history. Called from finalization
// with the session's entry lock held; waiters queued on that lock
// re-check activity and report not-found.
func (s *Store) retire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.active[id]
	if !ok {
		return
	}
	delete(s.active, id)
	s.history = append(s.history, e.session)
	s.historyID[id] = e.session
}

// Find looks up a session across active and history, returning a deep
// copy either way. Historical sessions are immutable.
func (s *Store) Find(id string) (*types.Session, error) {
	if snap, err := s.Snapshot(id); err == nil {
		return snap, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.historyID[id]; ok {
		return h.Clone(), nil
	}
	return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
}

// ActiveIDs returns the ids of all active sessions, sorted.
func (s *Store) ActiveIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.active))
	for id := range s.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveCount reports the number of active sessions.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

// History returns deep copies of finalized sessions in completion order.
func (s *Store) History() []*types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.Session, len(s.history))
	for i, h := range s.history {
		out[i] = h.Clone()
	}
	return out
}
