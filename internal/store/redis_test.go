package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/crisphq/crisp-backend/internal/model"
	"github.com/crisphq/crisp-backend/internal/store"
)

func makeRedisStore(t *testing.T) *store.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return store.NewRedisStore(rdb)
}

func TestRedisStore_GetNotFound(t *testing.T) {
	s := makeRedisStore(t)
	_, err := s.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStore_UpsertRoundTrip(t *testing.T) {
	s := makeRedisStore(t)
	ctx := context.Background()

	score := 60
	session := &model.Session{
		CandidateID: "c1",
		Status:      model.SessionStatusCompleted,
		Score:       &score,
		Summary:     "Average performance.",
		Profile:     &model.Profile{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "9876543210"},
		Details: []model.ScoreDetail{
			{QuestionID: 1, Question: "q1", Result: model.ScoreResultCorrect, Score: 10},
		},
	}
	require.NoError(t, s.Upsert(ctx, session))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, session, got)
}

func TestRedisStore_List(t *testing.T) {
	s := makeRedisStore(t)
	ctx := context.Background()

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	for _, id := range []string{"c1", "c2"} {
		require.NoError(t, s.Upsert(ctx, &model.Session{CandidateID: id, Status: model.SessionStatusInProgress}))
	}

	all, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRedisStore_UpsertReplaces(t *testing.T) {
	s := makeRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, &model.Session{CandidateID: "c1", Status: model.SessionStatusNotStarted}))

	score := 80
	require.NoError(t, s.Upsert(ctx, &model.Session{CandidateID: "c1", Status: model.SessionStatusCompleted, Score: &score}))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, model.SessionStatusCompleted, got.Status)
	require.NotNil(t, got.Score)
	require.Equal(t, 80, *got.Score)
}
