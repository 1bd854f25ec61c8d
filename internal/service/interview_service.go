package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/crisphq/crisp-backend/internal/model"
	"github.com/crisphq/crisp-backend/internal/store"
)

// Sentinel errors for interview lifecycle conflicts. ErrNotFound cases are
// reported with store.ErrNotFound.
var (
	// ErrInterviewInProgress rejects question regeneration for a candidate
	// who already has a live question set; re-starting would silently
	// discard answered progress. A restart requires a new candidate ID.
	ErrInterviewInProgress = errors.New("interview already in progress")

	// ErrInterviewCompleted rejects question generation for a candidate
	// whose interview has already been graded.
	ErrInterviewCompleted = errors.New("interview already completed")
)

const defaultRole = "fullstack developer"

// pointsPerQuestion is the weight of every question in the aggregate:
// final = round(total / (questionCount * 10) * 100).
const pointsPerQuestion = 10

// Oracle is the question/scoring collaborator. All methods are total:
// implementations convert their own failures into fallback values.
type Oracle interface {
	GenerateQuestionSet(ctx context.Context, role string) []model.Question
	ScoreSubjective(ctx context.Context, questionText, answerText string) model.SubjectiveScore
	Summarize(ctx context.Context, questions []model.Question, answers []model.Answer, finalScorePercent int) string
}

// DashboardNotifier receives interview lifecycle events for the reviewer
// dashboard. May be nil when no dashboard transport is wired.
type DashboardNotifier interface {
	SessionStarted(candidateID string)
	SessionCompleted(candidateID string, score int)
}

// ScoreReport is the result of grading one session.
type ScoreReport struct {
	Score   int                 `json:"score"`
	Details []model.ScoreDetail `json:"details"`
	Summary string              `json:"summary"`
}

// InterviewService owns the session state machine: question delivery,
// answer acceptance, scoring orchestration and summary assembly.
//
// Operations on a single candidate are serialized through a per-candidate
// mutex, closing the race between a manual submit and an auto-submit near a
// question deadline. Different candidates never contend.
type InterviewService struct {
	store    store.SessionStore
	oracle   Oracle
	notifier DashboardNotifier
	log      zerolog.Logger
	locks    sync.Map // candidateID -> *sync.Mutex
}

// NewInterviewService creates the session engine. notifier may be nil.
func NewInterviewService(sessions store.SessionStore, oracle Oracle, notifier DashboardNotifier, log zerolog.Logger) *InterviewService {
	return &InterviewService{
		store:    sessions,
		oracle:   oracle,
		notifier: notifier,
		log:      log.With().Str("component", "interview_service").Logger(),
	}
}

// lockCandidate acquires the per-candidate mutex. Lock entries are never
// removed; candidate IDs are low-cardinality within a process lifetime.
func (s *InterviewService) lockCandidate(candidateID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(candidateID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// StartSession creates (or completes the setup of) a session and attaches a
// freshly generated question set. Question generation never fails: oracle
// failures produce the fallback set.
//
// A candidate with a live question set cannot regenerate mid-interview
// (ErrInterviewInProgress), and a graded candidate cannot start over
// (ErrInterviewCompleted).
func (s *InterviewService) StartSession(ctx context.Context, candidateID, role string) ([]model.Question, error) {
	mu := s.lockCandidate(candidateID)
	defer mu.Unlock()

	session, err := s.store.Get(ctx, candidateID)
	if errors.Is(err, store.ErrNotFound) {
		session = &model.Session{
			CandidateID: candidateID,
			Status:      model.SessionStatusNotStarted,
		}
	} else if err != nil {
		return nil, err
	}

	switch {
	case session.Status == model.SessionStatusCompleted:
		return nil, ErrInterviewCompleted
	case session.Status == model.SessionStatusInProgress && len(session.Questions) > 0:
		return nil, ErrInterviewInProgress
	}

	if role == "" {
		role = defaultRole
	}

	now := time.Now().UTC()
	session.Questions = s.oracle.GenerateQuestionSet(ctx, role)
	session.Answers = nil
	session.Status = model.SessionStatusInProgress
	session.StartedAt = &now

	if err := s.store.Upsert(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("candidate_id", candidateID).
		Str("role", role).
		Int("questions", len(session.Questions)).
		Msg("interview started")

	if s.notifier != nil {
		s.notifier.SessionStarted(candidateID)
	}
	return session.Questions, nil
}

// RecordAnswer stores a candidate's answer for one question. The first
// answer for a question ID wins: later submissions for the same question
// (e.g. an auto-submit chasing a manual submit) are accepted but ignored.
// Question ID membership is not validated; scoring simply never consults
// answers that match no question.
func (s *InterviewService) RecordAnswer(ctx context.Context, candidateID string, questionID int, text string, submittedAuto bool) error {
	mu := s.lockCandidate(candidateID)
	defer mu.Unlock()

	session, err := s.store.Get(ctx, candidateID)
	if err != nil {
		return err
	}

	if session.AnswerFor(questionID) != nil {
		s.log.Debug().
			Str("candidate_id", candidateID).
			Int("question_id", questionID).
			Msg("duplicate answer ignored")
		return nil
	}

	session.Answers = append(session.Answers, model.Answer{
		QuestionID:    questionID,
		Text:          text,
		SubmittedAuto: submittedAuto,
	})
	return s.store.Upsert(ctx, session)
}

// ScoreSession grades the session and completes it. MCQs score 10 points on
// an exact, case-sensitive match with the stored correct answer; subjective
// answers are graded by the oracle (0-10, neutral fallback on failure);
// unanswered questions score 0. Subjective grading runs sequentially in
// question order.
//
// Scoring is idempotent: once a session is completed the persisted report
// is returned as-is, so repeated calls cost no oracle traffic and the score
// cannot drift under a nondeterministic oracle.
func (s *InterviewService) ScoreSession(ctx context.Context, candidateID string) (*ScoreReport, error) {
	mu := s.lockCandidate(candidateID)
	defer mu.Unlock()

	session, err := s.store.Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	if session.Status == model.SessionStatusCompleted {
		return &ScoreReport{
			Score:   *session.Score,
			Details: session.Details,
			Summary: session.Summary,
		}, nil
	}

	var (
		total   float64
		details = make([]model.ScoreDetail, 0, len(session.Questions))
	)
	for _, q := range session.Questions {
		detail := s.gradeQuestion(ctx, session, q)
		total += detail.Score
		details = append(details, detail)
	}

	final := 0
	if n := len(session.Questions); n > 0 {
		final = int(math.Round(total / float64(n*pointsPerQuestion) * 100))
	}

	summary := s.oracle.Summarize(ctx, session.Questions, session.Answers, final)

	now := time.Now().UTC()
	session.Score = &final
	session.Summary = summary
	session.Details = details
	session.Status = model.SessionStatusCompleted
	session.CompletedAt = &now

	if err := s.store.Upsert(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("candidate_id", candidateID).
		Int("score", final).
		Msg("interview scored")

	if s.notifier != nil {
		s.notifier.SessionCompleted(candidateID, final)
	}
	return &ScoreReport{Score: final, Details: details, Summary: summary}, nil
}

func (s *InterviewService) gradeQuestion(ctx context.Context, session *model.Session, q model.Question) model.ScoreDetail {
	answer := session.AnswerFor(q.ID)

	if q.Type == model.QuestionTypeMCQ {
		// Exact string match only: no trimming, no case folding.
		if answer != nil && answer.Text == q.CorrectAnswer {
			return model.ScoreDetail{
				QuestionID: q.ID,
				Question:   q.Text,
				Result:     model.ScoreResultCorrect,
				Score:      pointsPerQuestion,
			}
		}
		return model.ScoreDetail{
			QuestionID:    q.ID,
			Question:      q.Text,
			Result:        model.ScoreResultWrong,
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	if answer == nil || answer.Text == "" {
		return model.ScoreDetail{
			QuestionID: q.ID,
			Question:   q.Text,
			Result:     model.ScoreResultNoAnswer,
			Rationale:  "No answer provided",
		}
	}

	graded := s.oracle.ScoreSubjective(ctx, q.Text, answer.Text)
	return model.ScoreDetail{
		QuestionID: q.ID,
		Question:   q.Text,
		Result:     model.ScoreResultAIScored,
		Score:      graded.Score,
		Rationale:  graded.Rationale,
	}
}

// SetProfile attaches contact details to a session, creating a bare
// not-started session when the candidate is unknown. The profile flow is
// independent of the question flow and may happen before, during or after
// answering.
func (s *InterviewService) SetProfile(ctx context.Context, candidateID string, profile model.Profile) error {
	mu := s.lockCandidate(candidateID)
	defer mu.Unlock()

	session, err := s.store.Get(ctx, candidateID)
	if errors.Is(err, store.ErrNotFound) {
		session = &model.Session{
			CandidateID: candidateID,
			Status:      model.SessionStatusNotStarted,
		}
	} else if err != nil {
		return err
	}

	session.Profile = &profile
	return s.store.Upsert(ctx, session)
}

// ListCandidates returns the dashboard projection of every session, sorted
// by score descending. Ungraded sessions sort as score 0; ties keep a
// stable candidate-ID order so the dashboard does not jitter.
func (s *InterviewService) ListCandidates(ctx context.Context) ([]model.CandidateSummary, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.CandidateSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, session.Summarize())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Score != summaries[j].Score {
			return summaries[i].Score > summaries[j].Score
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

// GetCandidate returns the full session record for the reviewer detail view.
func (s *InterviewService) GetCandidate(ctx context.Context, candidateID string) (*model.Session, error) {
	return s.store.Get(ctx, candidateID)
}
