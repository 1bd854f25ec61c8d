package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisphq/crisp-backend/internal/model"
	"github.com/crisphq/crisp-backend/internal/store"
)

func TestMemoryStore_GetNotFound(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_UpsertRoundTrip(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	score := 75
	session := &model.Session{
		CandidateID: "c1",
		Status:      model.SessionStatusCompleted,
		Score:       &score,
		Summary:     "Strong fundamentals.",
		Questions:   []model.Question{{ID: 1, Text: "q1", Difficulty: model.DifficultyEasy, Type: model.QuestionTypeMCQ, Options: []string{"a", "b"}, CorrectAnswer: "a", TimeLimitSeconds: 20}},
		Answers:     []model.Answer{{QuestionID: 1, Text: "a"}},
	}
	require.NoError(t, s.Upsert(ctx, session))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, session, got)
}

func TestMemoryStore_ReturnsIsolatedCopies(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, &model.Session{
		CandidateID: "c1",
		Status:      model.SessionStatusInProgress,
		Answers:     []model.Answer{{QuestionID: 1, Text: "original"}},
	}))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	got.Answers[0].Text = "mutated"
	got.Status = model.SessionStatusCompleted

	fresh, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "original", fresh.Answers[0].Text)
	require.Equal(t, model.SessionStatusInProgress, fresh.Status)
}

func TestMemoryStore_List(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, s.Upsert(ctx, &model.Session{CandidateID: id, Status: model.SessionStatusNotStarted}))
	}

	all, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	ids := make(map[string]bool)
	for _, session := range all {
		ids[session.CandidateID] = true
	}
	require.Equal(t, map[string]bool{"c1": true, "c2": true, "c3": true}, ids)
}

func TestMemoryStore_UpsertReplaces(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, &model.Session{CandidateID: "c1", Status: model.SessionStatusNotStarted}))
	require.NoError(t, s.Upsert(ctx, &model.Session{CandidateID: "c1", Status: model.SessionStatusInProgress}))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, model.SessionStatusInProgress, got.Status)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
