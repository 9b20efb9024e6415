package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Composition errors
const (
	// ErrCodeMissingInput indicates a pipeline was executed before any value was sent.
	ErrCodeMissingInput ErrorCode = "MISSING_INPUT"
	// ErrCodeTypeMismatch indicates a carried value did not satisfy a declared type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Execution errors (retryable)
const (
	// ErrCodeTimeout indicates a downstream call exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeUnavailable indicates a downstream dependency is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates a configuration struct failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeUnauthorized indicates missing or rejected credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// ErrCodeInternal indicates an unexpected internal failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:     true,
	ErrCodeUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
