package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t == nil {
		return false
	}
	return t.Code == e.Code
}

// WithCause returns a copy of the error with the given cause.
// Sentinels are shared, so the receiver is never modified.
func (e *AppError) WithCause(cause error) *AppError {
	cp := e.clone()
	cp.Cause = cause
	return cp
}

// WithDetails returns a copy of the error with the provided details merged in.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	cp := e.clone()
	for k, v := range details {
		cp.Details[k] = v
	}
	return cp
}

// WithDetail returns a copy of the error with a single detail set.
func (e *AppError) WithDetail(key string, value any) *AppError {
	cp := e.clone()
	cp.Details[key] = value
	return cp
}

func (e *AppError) clone() *AppError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	return &cp
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// MissingInput creates a new AppError for an execution without input.
func MissingInput() *AppError {
	return &AppError{
		Code: ErrCodeMissingInput, Message: "No data to pass through the pipeline",
	}
}

// TypeMismatch creates a new AppError for a value that does not satisfy the expected type.
func TypeMismatch(expected, actual string) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("expected %s, got %s", expected, actual),
		Details: map[string]any{"expected": expected, "actual": actual},
	}
}

// Timeout creates a new AppError for an operation that exceeded its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s took too long", operation),
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// Unavailable creates a new AppError for a dependency that cannot serve right now.
func Unavailable(component string) *AppError {
	return &AppError{
		Code: ErrCodeUnavailable, Message: fmt.Sprintf("%s is temporarily unavailable", component),
		Retryable: true, Details: map[string]any{"component": component},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// InvalidConfig creates a new AppError for configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// Unauthorized creates a new AppError for a request without valid credentials.
func Unauthorized(reason string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: reason}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred", Cause: cause,
	}
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsRetryable reports whether err carries an AppError marked retryable.
// Errors without an AppError in their chain are not classified and report false.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}
