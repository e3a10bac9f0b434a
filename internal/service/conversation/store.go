// Package conversation holds per-conversation turn history. The store is
// the only shared mutable state in the advisory pipeline: appends to one
// conversation are serialized, distinct conversations never contend, and
// no lock is ever held across backend I/O.
package conversation

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sandevgo/archie/internal/core"
)

type conversation struct {
	mu    sync.Mutex
	turns []core.Turn
}

type Store struct {
	mu    sync.RWMutex
	convs map[string]*conversation
}

func NewStore() *Store {
	return &Store{
		convs: make(map[string]*conversation),
	}
}

// NewID mints an identifier for a fresh conversation.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Get returns a copy of the full turn history, oldest first. Unknown ids
// yield an empty history. The store never truncates; windowing belongs to
// prompt composition.
func (s *Store) Get(id string) []core.Turn {
	s.mu.RLock()
	conv, ok := s.convs[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()
	out := make([]core.Turn, len(conv.turns))
	copy(out, conv.turns)
	return out
}

// Exists reports whether the conversation id is known.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.convs[id]
	return ok
}

// Append adds turns to the conversation, creating it on first use. All
// turns land atomically: overlapping appends for the same id interleave
// whole calls, never individual turns.
func (s *Store) Append(id string, turns ...core.Turn) {
	conv := s.getOrCreate(id)

	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.turns = append(conv.turns, turns...)
}

func (s *Store) getOrCreate(id string) *conversation {
	s.mu.RLock()
	conv, ok := s.convs[id]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok = s.convs[id]; ok {
		return conv
	}
	conv = &conversation{}
	s.convs[id] = conv
	return conv
}
