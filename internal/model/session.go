package model

import "time"

// SessionStatus enumerates interview session states. Transitions only ever
// move forward: not-started -> in-progress -> completed.
type SessionStatus string

const (
	SessionStatusNotStarted SessionStatus = "not-started"
	SessionStatusInProgress SessionStatus = "in-progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// Profile holds the candidate's contact details. It is supplied
// independently of the question flow and is never authoritative when it
// comes from resume extraction.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Answer is one recorded answer. SubmittedAuto marks answers pushed by the
// client when a question's countdown expired.
type Answer struct {
	QuestionID    int    `json:"question_id"`
	Text          string `json:"answer"`
	SubmittedAuto bool   `json:"submitted_auto,omitempty"`
}

// ScoreResult enumerates per-question grading outcomes.
type ScoreResult string

const (
	ScoreResultCorrect  ScoreResult = "correct"
	ScoreResultWrong    ScoreResult = "wrong"
	ScoreResultAIScored ScoreResult = "ai-scored"
	ScoreResultNoAnswer ScoreResult = "no-answer"
)

// ScoreDetail is the per-question breakdown returned by scoring and kept on
// the session so repeated score requests can be served without re-grading.
type ScoreDetail struct {
	QuestionID    int         `json:"question_id"`
	Question      string      `json:"q"`
	Result        ScoreResult `json:"result"`
	Score         float64     `json:"score"`
	Rationale     string      `json:"rationale,omitempty"`
	CorrectAnswer string      `json:"correct_answer,omitempty"`
}

// Session is the aggregate root: the complete state of one candidate's
// interview attempt, keyed by the caller-supplied candidate ID.
type Session struct {
	CandidateID string        `json:"candidate_id"`
	Questions   []Question    `json:"questions"`
	Answers     []Answer      `json:"answers"`
	Profile     *Profile      `json:"profile,omitempty"`
	Status      SessionStatus `json:"status"`
	Score       *int          `json:"score,omitempty"`
	Summary     string        `json:"summary,omitempty"`
	Details     []ScoreDetail `json:"details,omitempty"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// AnswerFor returns the first recorded answer for the given question ID,
// or nil if the question has not been answered.
func (s *Session) AnswerFor(questionID int) *Answer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

// CandidateSummary is the reviewer dashboard projection of a session.
type CandidateSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Score       int           `json:"score"`
	Summary     string        `json:"summary"`
	Status      SessionStatus `json:"status"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Summarize builds the dashboard projection. Sessions without a score
// report 0 so they sort below every graded candidate.
func (s *Session) Summarize() CandidateSummary {
	out := CandidateSummary{
		ID:          s.CandidateID,
		Summary:     s.Summary,
		Status:      s.Status,
		CompletedAt: s.CompletedAt,
	}
	if s.Status == "" {
		out.Status = SessionStatusNotStarted
	}
	if s.Profile != nil {
		out.Name = s.Profile.Name
		out.Email = s.Profile.Email
		out.Phone = s.Profile.Phone
	}
	if s.Score != nil {
		out.Score = *s.Score
	}
	return out
}
