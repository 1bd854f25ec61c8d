package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/crisphq/crisp-backend/internal/extract"
	"github.com/crisphq/crisp-backend/internal/response"
	"github.com/crisphq/crisp-backend/internal/service"
)

// ResumeHandler handles resume upload and profile extraction.
type ResumeHandler struct {
	resumeService *service.ResumeService
	log           zerolog.Logger
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(resumeService *service.ResumeService, log zerolog.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		log:           log.With().Str("component", "resume_handler").Logger(),
	}
}

// ParseResume godoc
// POST /api/v1/interview/parse-resume
// Accepts a multipart "resume" file (PDF or DOCX) and returns a best-effort
// {name, email, phone} guess. Extraction never touches session state.
func (h *ResumeHandler) ParseResume(c *gin.Context) {
	header, err := c.FormFile("resume")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	profile, err := h.resumeService.ExtractProfile(file, header)
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	case errors.Is(err, extract.ErrUnsupportedType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	case errors.Is(err, service.ErrEmptyDocument):
		response.Fail(c, http.StatusBadRequest, response.ErrEmptyDocument)
		return
	case err != nil:
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("resume extraction failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrExtractFailed)
		return
	}

	response.Success(c, http.StatusOK, profile)
}
