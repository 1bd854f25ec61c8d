package store

import (
	"context"
	"errors"

	"github.com/crisphq/crisp-backend/internal/model"
)

// ErrNotFound is returned when no session exists for a candidate ID.
var ErrNotFound = errors.New("session not found")

// SessionStore is the single authority for session existence and mutation.
// Implementations must be safe for concurrent use; serialization of
// operations on a single candidate is the engine's responsibility, so the
// store contract is simply last-writer-wins per candidate ID.
type SessionStore interface {
	// Get returns the session for the candidate, or ErrNotFound.
	Get(ctx context.Context, candidateID string) (*model.Session, error)

	// Upsert creates or replaces the session keyed by its CandidateID.
	Upsert(ctx context.Context, session *model.Session) error

	// List returns every known session, in no particular order.
	List(ctx context.Context) ([]*model.Session, error)
}
