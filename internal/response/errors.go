package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidToken   ErrCode = "INVALID_TOKEN"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Session lifecycle ─────────────────────────────────────────────
	ErrSessionNotFound  ErrCode = "SESSION_NOT_FOUND"
	ErrWrongState       ErrCode = "WRONG_STATE"
	ErrUnknownQuestion  ErrCode = "UNKNOWN_QUESTION"
	ErrAlreadyCompleted ErrCode = "ALREADY_COMPLETED"
	ErrNotCompleted     ErrCode = "NOT_COMPLETED"

	// ─── Export & delivery ─────────────────────────────────────────────
	ErrOperationInFlight ErrCode = "OPERATION_IN_FLIGHT"
	ErrExportFailed      ErrCode = "EXPORT_FAILED"
	ErrDeliveryFailed    ErrCode = "DELIVERY_FAILED"

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
	case ErrInvalidToken:
		return "Invalid session token format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrSessionNotFound:
		return "Assessment session not found or expired."
	case ErrWrongState:
		return "This operation is not allowed in the session's current state."
	case ErrUnknownQuestion:
		return "This question is not part of your assessment."
	case ErrAlreadyCompleted:
		return "This assessment has already been completed."
	case ErrNotCompleted:
		return "The assessment must be completed before a report is available."
	case ErrOperationInFlight:
		return "The previous request is still being processed. Please wait."
	case ErrExportFailed:
		return "Failed to generate the PDF report. Please try again."
	case ErrDeliveryFailed:
		return "Failed to send the results email. Please try again."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
