package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrDuplicateUser   ErrCode = "DUPLICATE_USER"
	ErrDuplicateMobile ErrCode = "DUPLICATE_MOBILE"
	ErrDuplicateEmail  ErrCode = "DUPLICATE_EMAIL"

	// ─── Fee ledger ────────────────────────────────────────────────────
	ErrInvalidPaymentAmount ErrCode = "INVALID_PAYMENT_AMOUNT"
	ErrPaymentExceedsDue    ErrCode = "PAYMENT_EXCEEDS_PENDING"

	// ─── Attendance / Export ───────────────────────────────────────────
	ErrNoAttendanceRecords ErrCode = "NO_ATTENDANCE_RECORDS"
	ErrNothingToExport     ErrCode = "NOTHING_TO_EXPORT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrTeacherAccessOnly:
		return "This resource is restricted to teachers."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDuplicateUser:
		return "An account with this email and role already exists."
	case ErrDuplicateMobile:
		return "A student with this mobile number already exists."
	case ErrDuplicateEmail:
		return "A student with this email already exists."

	// ─── Fee ledger ────────────────────────────────────────────────────
	case ErrInvalidPaymentAmount:
		return "Payment amount must be greater than zero."
	case ErrPaymentExceedsDue:
		return "Payment amount exceeds the pending fee balance."

	// ─── Attendance / Export ───────────────────────────────────────────
	case ErrNoAttendanceRecords:
		return "No attendance records found."
	case ErrNothingToExport:
		return "No attendance records to export."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
