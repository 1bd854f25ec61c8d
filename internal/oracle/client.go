package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crisphq/crisp-backend/internal/model"
)

// Client wraps the external question/scoring oracle. Every exported method
// is total: any failure of the underlying generator (transport error,
// timeout, malformed payload, contract violation) is converted into a
// documented fallback value, so callers never see an error from this
// package and the session engine carries no retry or recovery logic.
type Client struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient creates an oracle client. Each call to the generator is bounded
// by timeout; expiry counts as an oracle failure.
func NewClient(gen Generator, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		gen:     gen,
		timeout: timeout,
		log:     log.With().Str("component", "oracle").Logger(),
	}
}

// rawQuestion is the wire shape the oracle is asked to produce.
type rawQuestion struct {
	Text       string   `json:"text"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	Answer     string   `json:"answer,omitempty"`
}

// GenerateQuestionSet requests exactly 6 questions for the role: 2 easy
// MCQs (20s), 2 medium MCQs (60s) and 2 hard questions (120s) of which at
// least one is subjective and at most one is an MCQ. IDs are reassigned
// 1..6 locally and time limits are normalized per difficulty, so downstream
// code never depends on oracle-chosen identifiers.
func (c *Client) GenerateQuestionSet(ctx context.Context, role string) []model.Question {
	prompt := fmt.Sprintf(`Generate exactly 6 interview questions for a %s role.
Format: JSON array.
Rules:
- 2 easy MCQs
- 2 medium MCQs
- 2 hard questions (mix: at least 1 subjective, at most 1 MCQ)
- Each question object must have:
  { "text": string, "difficulty": "easy|medium|hard",
    "type": "mcq|subjective", "options"?: [string], "answer"?: string }
- MCQ options must contain the answer verbatim.
Only output valid JSON.`, role)

	raw, err := c.generate(ctx, GenerateRequest{
		Prompt:      prompt,
		JSONMode:    true,
		MaxTokens:   800,
		Temperature: 0.7,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("role", role).Msg("question generation failed, using fallback set")
		return FallbackQuestionSet()
	}

	var parsed []rawQuestion
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		c.log.Warn().Err(err).Msg("question payload not valid JSON, using fallback set")
		return FallbackQuestionSet()
	}

	questions, err := buildQuestionSet(parsed)
	if err != nil {
		c.log.Warn().Err(err).Msg("question payload violates contract, using fallback set")
		return FallbackQuestionSet()
	}
	return questions
}

// buildQuestionSet validates the oracle payload against the structural
// contract and converts it into the domain shape.
func buildQuestionSet(parsed []rawQuestion) ([]model.Question, error) {
	if len(parsed) != 6 {
		return nil, fmt.Errorf("expected 6 questions, got %d", len(parsed))
	}

	var easy, medium, hard, hardSubjective int
	questions := make([]model.Question, 0, 6)

	for i, rq := range parsed {
		q := model.Question{
			ID:            i + 1,
			Text:          strings.TrimSpace(rq.Text),
			Difficulty:    model.Difficulty(rq.Difficulty),
			Type:          model.QuestionType(rq.Type),
			Options:       rq.Options,
			CorrectAnswer: rq.Answer,
		}
		if q.Text == "" {
			return nil, fmt.Errorf("question %d: empty text", i+1)
		}

		switch q.Difficulty {
		case model.DifficultyEasy:
			easy++
			q.TimeLimitSeconds = 20
		case model.DifficultyMedium:
			medium++
			q.TimeLimitSeconds = 60
		case model.DifficultyHard:
			hard++
			q.TimeLimitSeconds = 120
		default:
			return nil, fmt.Errorf("question %d: unknown difficulty %q", i+1, rq.Difficulty)
		}

		switch q.Type {
		case model.QuestionTypeMCQ:
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("question %d: mcq needs at least 2 options", i+1)
			}
			if !contains(q.Options, q.CorrectAnswer) {
				return nil, fmt.Errorf("question %d: answer not among options", i+1)
			}
		case model.QuestionTypeSubjective:
			if q.Difficulty != model.DifficultyHard {
				return nil, fmt.Errorf("question %d: subjective questions must be hard", i+1)
			}
			hardSubjective++
			q.Options = nil
			q.CorrectAnswer = ""
		default:
			return nil, fmt.Errorf("question %d: unknown type %q", i+1, rq.Type)
		}

		questions = append(questions, q)
	}

	if easy != 2 || medium != 2 || hard != 2 {
		return nil, fmt.Errorf("difficulty split easy=%d medium=%d hard=%d, want 2/2/2", easy, medium, hard)
	}
	if hardSubjective < 1 {
		return nil, fmt.Errorf("hard questions must include at least one subjective")
	}
	return questions, nil
}

// ScoreSubjective grades one free-text answer on a 0-10 scale with a short
// rationale. Any oracle failure yields the neutral fallback score.
func (c *Client) ScoreSubjective(ctx context.Context, questionText, answerText string) model.SubjectiveScore {
	prompt := fmt.Sprintf(`You are an interviewer.
Question: %s
Candidate's answer: %s
Score this answer from 0-10 and explain briefly why.
Respond strictly in JSON:
{ "score": number, "rationale": string }`, questionText, answerText)

	raw, err := c.generate(ctx, GenerateRequest{
		Prompt:    prompt,
		JSONMode:  true,
		MaxTokens: 300,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("subjective scoring failed, using fallback score")
		return FallbackSubjectiveScore()
	}

	var score model.SubjectiveScore
	if err := json.Unmarshal([]byte(stripFences(raw)), &score); err != nil {
		c.log.Warn().Err(err).Msg("score payload not valid JSON, using fallback score")
		return FallbackSubjectiveScore()
	}

	score.Score = clamp(score.Score, 0, 10)
	return score
}

// Summarize produces a 2-3 sentence narrative of the interview. Any oracle
// failure yields the fixed fallback sentence.
func (c *Client) Summarize(ctx context.Context, questions []model.Question, answers []model.Answer, finalScorePercent int) string {
	var transcript strings.Builder
	for i, q := range questions {
		answerText := "No answer"
		for _, a := range answers {
			if a.QuestionID == q.ID && a.Text != "" {
				answerText = a.Text
				break
			}
		}
		fmt.Fprintf(&transcript, "Q%d: %s\nAnswer: %s\n\n", i+1, q.Text, answerText)
	}

	prompt := fmt.Sprintf(`You are an interviewer. Based on this interview performance:

%s
Final Score: %d%%

Write a brief 2-3 sentence summary of the candidate's performance, highlighting strengths and areas for improvement.
Respond in plain text (not JSON).`, transcript.String(), finalScorePercent)

	raw, err := c.generate(ctx, GenerateRequest{
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("summary generation failed, using fallback sentence")
		return FallbackSummary
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		return FallbackSummary
	}
	return summary
}

// generate runs one generator call under the configured timeout.
func (c *Client) generate(ctx context.Context, req GenerateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.gen.Generate(ctx, req)
}

// stripFences removes a surrounding markdown code fence, which some models
// emit even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
