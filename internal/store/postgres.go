package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crisphq/crisp-backend/internal/model"
)

// PostgresStore persists each session as a jsonb document keyed by
// candidate ID. The engine treats sessions as aggregates that are read and
// written whole, so a single document column is a better fit than a
// normalized schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed session store and ensures the
// sessions table exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS interview_sessions (
			candidate_id TEXT PRIMARY KEY,
			doc          JSONB NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure sessions table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Get returns the session for the candidate, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, candidateID string) (*model.Session, error) {
	var session model.Session
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM interview_sessions WHERE candidate_id = $1`,
		candidateID,
	).Scan(&session)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &session, nil
}

// Upsert creates or replaces the session for its candidate ID.
func (s *PostgresStore) Upsert(ctx context.Context, session *model.Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO interview_sessions (candidate_id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (candidate_id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		session.CandidateID, session,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// List returns every stored session.
func (s *PostgresStore) List(ctx context.Context) ([]*model.Session, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM interview_sessions`)
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	defer rows.Close()

	var out []*model.Session
	for rows.Next() {
		var session model.Session
		if err := rows.Scan(&session); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, &session)
	}
	return out, rows.Err()
}
