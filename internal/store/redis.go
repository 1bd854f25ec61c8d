package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/crisphq/crisp-backend/internal/model"
)

const sessionKeyPrefix = "interview:session:"

// RedisStore persists sessions as JSON documents in Redis, surviving
// process restarts. Sessions are never expired by the store; stale-session
// cleanup is left to an external process.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(candidateID string) string {
	return sessionKeyPrefix + candidateID
}

// Get returns the session for the candidate, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, candidateID string) (*model.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(candidateID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Upsert creates or replaces the session for its candidate ID.
func (s *RedisStore) Upsert(ctx context.Context, session *model.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(session.CandidateID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// List scans all session keys and returns the decoded sessions.
func (s *RedisStore) List(ctx context.Context) ([]*model.Session, error) {
	var (
		out    []*model.Session
		cursor uint64
	)
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}

		for _, key := range keys {
			raw, err := s.rdb.Get(ctx, key).Bytes()
			if err == redis.Nil {
				continue // Deleted between scan and get
			}
			if err != nil {
				return nil, fmt.Errorf("redis get %s: %w", key, err)
			}
			var session model.Session
			if err := json.Unmarshal(raw, &session); err != nil {
				return nil, fmt.Errorf("decode session %s: %w", key, err)
			}
			out = append(out, &session)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return out, nil
}
