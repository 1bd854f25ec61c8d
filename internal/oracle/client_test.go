package oracle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/crisphq/crisp-backend/internal/model"
	"github.com/crisphq/crisp-backend/internal/oracle"
)

// stubGenerator returns a canned payload or error per call.
type stubGenerator struct {
	payload string
	err     error
	calls   int
	lastReq oracle.GenerateRequest
}

func (g *stubGenerator) Generate(ctx context.Context, req oracle.GenerateRequest) (string, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return "", g.err
	}
	return g.payload, nil
}

func makeClient(gen oracle.Generator) *oracle.Client {
	return oracle.NewClient(gen, time.Second, zerolog.Nop())
}

const validQuestionPayload = `[
	{"text": "What does CSS stand for?", "difficulty": "easy", "type": "mcq",
	 "options": ["Cascading Style Sheets", "Computer Style Sheets"], "answer": "Cascading Style Sheets"},
	{"text": "Which tag links a stylesheet?", "difficulty": "easy", "type": "mcq",
	 "options": ["<link>", "<style>", "<css>"], "answer": "<link>"},
	{"text": "Which status code means Not Found?", "difficulty": "medium", "type": "mcq",
	 "options": ["200", "404", "500"], "answer": "404"},
	{"text": "Which HTTP method is idempotent?", "difficulty": "medium", "type": "mcq",
	 "options": ["POST", "GET", "PATCH"], "answer": "GET"},
	{"text": "Explain how database indexes speed up queries.", "difficulty": "hard", "type": "subjective"},
	{"text": "Describe optimistic vs pessimistic locking.", "difficulty": "hard", "type": "subjective"}
]`

func requireContractSet(t *testing.T, questions []model.Question) {
	t.Helper()
	require.Len(t, questions, 6)

	var easy, medium, hard, hardSubjective, hardMCQ int
	for i, q := range questions {
		require.Equal(t, i+1, q.ID, "IDs must be sequential from 1")
		require.NotEmpty(t, q.Text)

		switch q.Difficulty {
		case model.DifficultyEasy:
			easy++
			require.Equal(t, model.QuestionTypeMCQ, q.Type)
			require.Equal(t, 20, q.TimeLimitSeconds)
		case model.DifficultyMedium:
			medium++
			require.Equal(t, model.QuestionTypeMCQ, q.Type)
			require.Equal(t, 60, q.TimeLimitSeconds)
		case model.DifficultyHard:
			hard++
			require.Equal(t, 120, q.TimeLimitSeconds)
			if q.Type == model.QuestionTypeSubjective {
				hardSubjective++
			} else {
				hardMCQ++
			}
		}

		if q.Type == model.QuestionTypeMCQ {
			require.Contains(t, q.Options, q.CorrectAnswer)
		} else {
			require.Empty(t, q.CorrectAnswer)
		}
	}

	require.Equal(t, 2, easy)
	require.Equal(t, 2, medium)
	require.Equal(t, 2, hard)
	require.GreaterOrEqual(t, hardSubjective, 1)
	require.LessOrEqual(t, hardMCQ, 1)
}

func TestGenerateQuestionSet_ValidPayload(t *testing.T) {
	gen := &stubGenerator{payload: validQuestionPayload}
	questions := makeClient(gen).GenerateQuestionSet(context.Background(), "backend developer")

	requireContractSet(t, questions)
	require.Equal(t, "What does CSS stand for?", questions[0].Text)
	require.True(t, gen.lastReq.JSONMode)
}

func TestGenerateQuestionSet_StripsMarkdownFences(t *testing.T) {
	gen := &stubGenerator{payload: "```json\n" + validQuestionPayload + "\n```"}
	questions := makeClient(gen).GenerateQuestionSet(context.Background(), "backend developer")
	requireContractSet(t, questions)
}

func TestGenerateQuestionSet_FallbackPaths(t *testing.T) {
	tests := map[string]*stubGenerator{
		"transport error":     {err: errors.New("connection refused")},
		"malformed JSON":      {payload: "not json at all"},
		"wrong count":         {payload: `[{"text": "only one", "difficulty": "easy", "type": "mcq", "options": ["a","b"], "answer": "a"}]`},
		"unknown difficulty":  {payload: `[{"text": "q", "difficulty": "extreme", "type": "mcq", "options": ["a","b"], "answer": "a"}]`},
		"answer not in options": {payload: `[
			{"text": "q1", "difficulty": "easy", "type": "mcq", "options": ["a","b"], "answer": "z"},
			{"text": "q2", "difficulty": "easy", "type": "mcq", "options": ["a","b"], "answer": "a"},
			{"text": "q3", "difficulty": "medium", "type": "mcq", "options": ["a","b"], "answer": "a"},
			{"text": "q4", "difficulty": "medium", "type": "mcq", "options": ["a","b"], "answer": "a"},
			{"text": "q5", "difficulty": "hard", "type": "subjective"},
			{"text": "q6", "difficulty": "hard", "type": "subjective"}
		]`},
	}

	for name, gen := range tests {
		t.Run(name, func(t *testing.T) {
			questions := makeClient(gen).GenerateQuestionSet(context.Background(), "any role")
			requireContractSet(t, questions)
			require.Equal(t, oracle.FallbackQuestionSet(), questions)
		})
	}
}

func TestScoreSubjective_ValidPayload(t *testing.T) {
	gen := &stubGenerator{payload: `{"score": 7.5, "rationale": "Covers the key points."}`}
	score := makeClient(gen).ScoreSubjective(context.Background(), "Explain indexes.", "They form a B-tree.")

	require.Equal(t, 7.5, score.Score)
	require.Equal(t, "Covers the key points.", score.Rationale)
}

func TestScoreSubjective_ClampsOutOfRange(t *testing.T) {
	gen := &stubGenerator{payload: `{"score": 15, "rationale": "overeager model"}`}
	score := makeClient(gen).ScoreSubjective(context.Background(), "q", "a")
	require.Equal(t, float64(10), score.Score)

	gen = &stubGenerator{payload: `{"score": -3, "rationale": "harsh model"}`}
	score = makeClient(gen).ScoreSubjective(context.Background(), "q", "a")
	require.Equal(t, float64(0), score.Score)
}

func TestScoreSubjective_FallbackOnFailure(t *testing.T) {
	for name, gen := range map[string]*stubGenerator{
		"transport error": {err: errors.New("timeout")},
		"malformed JSON":  {payload: "I would give this a 7"},
	} {
		t.Run(name, func(t *testing.T) {
			score := makeClient(gen).ScoreSubjective(context.Background(), "q", "a")
			require.Equal(t, model.SubjectiveScore{Score: 5, Rationale: "Default fallback score."}, score)
		})
	}
}

func TestSummarize(t *testing.T) {
	questions := oracle.FallbackQuestionSet()
	answers := []model.Answer{{QuestionID: 1, Text: "JS syntax extension"}}

	gen := &stubGenerator{payload: "  A confident candidate with solid fundamentals.  "}
	summary := makeClient(gen).Summarize(context.Background(), questions, answers, 75)
	require.Equal(t, "A confident candidate with solid fundamentals.", summary)
	require.Contains(t, gen.lastReq.Prompt, "Final Score: 75%")
	require.Contains(t, gen.lastReq.Prompt, "JS syntax extension")
	require.Contains(t, gen.lastReq.Prompt, "No answer")

	failing := &stubGenerator{err: errors.New("quota exceeded")}
	summary = makeClient(failing).Summarize(context.Background(), questions, answers, 75)
	require.Equal(t, oracle.FallbackSummary, summary)
}
