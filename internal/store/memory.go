package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/crisphq/crisp-backend/internal/model"
)

// MemoryStore keeps sessions in process memory. This is the reference
// backend: state lives only for the process lifetime, with no durability
// guarantee.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*model.Session)}
}

// Get returns a deep copy of the stored session so callers can mutate it
// freely before the next Upsert.
func (s *MemoryStore) Get(ctx context.Context, candidateID string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[candidateID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(session)
}

// Upsert creates or replaces the session for its candidate ID.
func (s *MemoryStore) Upsert(ctx context.Context, session *model.Session) error {
	copied, err := cloneSession(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[session.CandidateID] = copied
	s.mu.Unlock()
	return nil
}

// List returns copies of every known session.
func (s *MemoryStore) List(ctx context.Context) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		copied, err := cloneSession(session)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

// cloneSession round-trips a session through JSON. Sessions are small
// (6 questions, a handful of answers), so this is cheaper to maintain than
// a field-by-field copy and shares the codec used by the other backends.
func cloneSession(session *model.Session) (*model.Session, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	var copied model.Session
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}
