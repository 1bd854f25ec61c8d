package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crisphq/crisp-backend/internal/model"
	"github.com/crisphq/crisp-backend/internal/response"
	"github.com/crisphq/crisp-backend/internal/service"
	"github.com/crisphq/crisp-backend/internal/store"
	"github.com/crisphq/crisp-backend/internal/validator"
)

// InterviewHandler handles the candidate-facing interview flow.
type InterviewHandler struct {
	interviewService *service.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviewService *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

// GenerateQuestionsRequest is the payload for starting an interview.
type GenerateQuestionsRequest struct {
	CandidateID string `json:"candidate_id" binding:"required,min=1,max=128"`
	Role        string `json:"role" binding:"max=128"`
}

// GenerateQuestions godoc
// POST /api/v1/interview/generate-questions
// Starts the interview: generates and stores the question set.
func (h *InterviewHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.interviewService.StartSession(c.Request.Context(), req.CandidateID, req.Role)
	switch {
	case errors.Is(err, service.ErrInterviewInProgress):
		response.Fail(c, http.StatusConflict, response.ErrInterviewInProgress)
		return
	case errors.Is(err, service.ErrInterviewCompleted):
		response.Fail(c, http.StatusConflict, response.ErrInterviewCompleted)
		return
	case err != nil:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// SaveAnswerRequest is the payload for recording one answer. Answer may be
// empty: the client auto-submits a placeholder when a countdown expires.
type SaveAnswerRequest struct {
	CandidateID   string `json:"candidate_id" binding:"required,min=1,max=128"`
	QuestionID    int    `json:"question_id" binding:"required,min=1"`
	Answer        string `json:"answer"`
	SubmittedAuto bool   `json:"submitted_auto"`
}

// SaveAnswer godoc
// POST /api/v1/interview/save-answer
// Records a candidate's answer for one question.
func (h *InterviewHandler) SaveAnswer(c *gin.Context) {
	var req SaveAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.interviewService.RecordAnswer(c.Request.Context(), req.CandidateID, req.QuestionID, req.Answer, req.SubmittedAuto)
	if errors.Is(err, store.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrCandidateNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

// ScoreRequest is the payload for grading a session.
type ScoreRequest struct {
	CandidateID string `json:"candidate_id" binding:"required,min=1,max=128"`
}

// Score godoc
// POST /api/v1/interview/score
// Grades the interview and returns the aggregate score, per-question
// breakdown and narrative summary. Idempotent once completed.
func (h *InterviewHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report, err := h.interviewService.ScoreSession(c.Request.Context(), req.CandidateID)
	if errors.Is(err, store.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrCandidateNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, report)
}

// CompleteProfileRequest is the payload for attaching candidate contact
// details to a session.
type CompleteProfileRequest struct {
	CandidateID string         `json:"candidate_id" binding:"required,min=1,max=128"`
	Profile     ProfilePayload `json:"profile" binding:"required"`
}

// ProfilePayload carries the candidate's contact details.
type ProfilePayload struct {
	Name  string `json:"name" binding:"required,min=1,max=128"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,min=5,max=20"`
}

// CompleteProfile godoc
// POST /api/v1/interview/complete-profile
// Sets the candidate's profile, creating a bare session if none exists.
func (h *InterviewHandler) CompleteProfile(c *gin.Context) {
	var req CompleteProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile := model.Profile{
		Name:  req.Profile.Name,
		Email: req.Profile.Email,
		Phone: req.Profile.Phone,
	}
	if err := h.interviewService.SetProfile(c.Request.Context(), req.CandidateID, profile); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ok": true})
}
