package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crisphq/crisp-backend/internal/response"
	"github.com/crisphq/crisp-backend/internal/service"
	"github.com/crisphq/crisp-backend/internal/store"
)

// CandidateHandler serves the reviewer dashboard's read-only views.
type CandidateHandler struct {
	interviewService *service.InterviewService
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(interviewService *service.InterviewService) *CandidateHandler {
	return &CandidateHandler{interviewService: interviewService}
}

// ListCandidates godoc
// GET /api/v1/candidates
// Lists every candidate's summary, sorted by score descending.
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.interviewService.ListCandidates(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"candidates": candidates})
}

// GetCandidate godoc
// GET /api/v1/candidates/:id
// Returns the full session record for one candidate.
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	session, err := h.interviewService.GetCandidate(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrCandidateNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"candidate": session})
}
