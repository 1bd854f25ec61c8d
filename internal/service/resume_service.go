package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/crisphq/crisp-backend/internal/config"
	"github.com/crisphq/crisp-backend/internal/extract"
	"github.com/crisphq/crisp-backend/internal/model"
)

// Sentinel errors for resume uploads.
var (
	ErrFileTooLarge  = errors.New("file too large")
	ErrEmptyDocument = errors.New("no text extracted from document")
)

// ResumeService turns an uploaded resume into a best-effort profile guess.
// The guess prefills the candidate's profile form; it never writes to the
// session store and never blocks the interview flow.
type ResumeService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewResumeService creates a new ResumeService.
func NewResumeService(cfg *config.Config, log zerolog.Logger) *ResumeService {
	return &ResumeService{
		cfg: cfg,
		log: log.With().Str("component", "resume_service").Logger(),
	}
}

// ExtractProfile reads the uploaded file, extracts its text and guesses
// name, email and phone. Unsupported formats surface
// extract.ErrUnsupportedType; documents with no extractable text surface
// ErrEmptyDocument.
func (s *ResumeService) ExtractProfile(file multipart.File, header *multipart.FileHeader) (model.Profile, error) {
	if header.Size > s.cfg.MaxUploadBytes {
		return model.Profile{}, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return model.Profile{}, fmt.Errorf("read upload: %w", err)
	}

	text, err := extract.Text(data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		return model.Profile{}, err
	}
	if strings.TrimSpace(text) == "" {
		return model.Profile{}, ErrEmptyDocument
	}

	profile := model.Profile{
		Name:  extract.Name(text),
		Email: extract.Email(text),
		Phone: extract.Phone(text),
	}

	s.log.Debug().
		Str("filename", header.Filename).
		Int("text_len", len(text)).
		Bool("email_found", profile.Email != "").
		Bool("phone_found", profile.Phone != "").
		Msg("resume parsed")

	return profile, nil
}
