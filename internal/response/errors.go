package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Interview lifecycle ───────────────────────────────────────────
	ErrCandidateNotFound   ErrCode = "CANDIDATE_NOT_FOUND"
	ErrInterviewInProgress ErrCode = "INTERVIEW_IN_PROGRESS"
	ErrInterviewCompleted  ErrCode = "INTERVIEW_COMPLETED"

	// ─── Resume upload ─────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrEmptyDocument   ErrCode = "EMPTY_DOCUMENT"
	ErrExtractFailed   ErrCode = "EXTRACT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrCandidateNotFound:
		return "Candidate not found."
	case ErrInterviewInProgress:
		return "An interview is already in progress for this candidate."
	case ErrInterviewCompleted:
		return "This interview has already been completed."
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type. Upload a PDF or DOCX resume."
	case ErrFileTooLarge:
		return "File size exceeds the upload limit."
	case ErrEmptyDocument:
		return "Could not extract any text from the document."
	case ErrExtractFailed:
		return "Failed to parse the uploaded document."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
