package oracle

import "github.com/crisphq/crisp-backend/internal/model"

// FallbackSummary is returned when summary generation fails.
const FallbackSummary = "Summary generation failed. Candidate completed the interview."

// FallbackSubjectiveScore returns the neutral default used when subjective
// grading fails. A 5/10 keeps the aggregate formula meaningful without
// rewarding or punishing the candidate for oracle downtime.
func FallbackSubjectiveScore() model.SubjectiveScore {
	return model.SubjectiveScore{Score: 5, Rationale: "Default fallback score."}
}

// FallbackQuestionSet returns the fixed question set used when generation
// fails. It satisfies the same structural contract as generated sets:
// 2 easy MCQs (20s), 2 medium MCQs (60s), 2 hard questions (120s) with one
// subjective and one MCQ.
func FallbackQuestionSet() []model.Question {
	return []model.Question{
		{
			ID:               1,
			Text:             "What is JSX in React?",
			Difficulty:       model.DifficultyEasy,
			Type:             model.QuestionTypeMCQ,
			Options:          []string{"Template engine", "JS syntax extension", "CSS preprocessor"},
			CorrectAnswer:    "JS syntax extension",
			TimeLimitSeconds: 20,
		},
		{
			ID:               2,
			Text:             "Which hook is used for state management?",
			Difficulty:       model.DifficultyEasy,
			Type:             model.QuestionTypeMCQ,
			Options:          []string{"useEffect", "useState", "useRef"},
			CorrectAnswer:    "useState",
			TimeLimitSeconds: 20,
		},
		{
			ID:               3,
			Text:             "Which hook replaces lifecycle methods like componentDidMount?",
			Difficulty:       model.DifficultyMedium,
			Type:             model.QuestionTypeMCQ,
			Options:          []string{"useContext", "useEffect", "useMemo"},
			CorrectAnswer:    "useEffect",
			TimeLimitSeconds: 60,
		},
		{
			ID:               4,
			Text:             "Which HTTP method is idempotent?",
			Difficulty:       model.DifficultyMedium,
			Type:             model.QuestionTypeMCQ,
			Options:          []string{"POST", "GET", "PATCH"},
			CorrectAnswer:    "GET",
			TimeLimitSeconds: 60,
		},
		{
			ID:               5,
			Text:             "Explain JWT authentication flow in a React app.",
			Difficulty:       model.DifficultyHard,
			Type:             model.QuestionTypeSubjective,
			TimeLimitSeconds: 120,
		},
		{
			ID:               6,
			Text:             "What is the Event Loop in Node.js?",
			Difficulty:       model.DifficultyHard,
			Type:             model.QuestionTypeMCQ,
			Options:          []string{"Database system", "Concurrency model", "Compiler feature"},
			CorrectAnswer:    "Concurrency model",
			TimeLimitSeconds: 120,
		},
	}
}
