package model

// Difficulty enumerates question difficulty tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType enumerates how a question is answered and graded.
type QuestionType string

const (
	QuestionTypeMCQ        QuestionType = "mcq"
	QuestionTypeSubjective QuestionType = "subjective"
)

// Question is a single interview question. Once a question set is attached
// to a session it is immutable; IDs are assigned locally (1..n) in delivery
// order regardless of what the generator returned.
type Question struct {
	ID         int          `json:"id"`
	Text       string       `json:"text"`
	Difficulty Difficulty   `json:"difficulty"`
	Type       QuestionType `json:"type"`
	// Options and CorrectAnswer are present only for MCQ questions.
	Options          []string `json:"options,omitempty"`
	CorrectAnswer    string   `json:"answer,omitempty"`
	TimeLimitSeconds int      `json:"time"`
}

// SubjectiveScore is the oracle's grading of one free-text answer.
// Score is on a 0-10 scale; fractional values are allowed.
type SubjectiveScore struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}
