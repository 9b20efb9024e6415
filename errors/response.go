package errors

import "net/http"

// ErrorResponse is the JSON body the onion HTTP API sends on failure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

var httpStatus = map[ErrorCode]int{
	ErrCodeMissingInput:  http.StatusBadRequest,
	ErrCodeTypeMismatch:  http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeTimeout:       http.StatusGatewayTimeout,
	ErrCodeUnavailable:   http.StatusServiceUnavailable,
	ErrCodeInvalidConfig: http.StatusInternalServerError,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// HTTPStatus returns the recommended HTTP status for the error's code.
func (e *AppError) HTTPStatus() int {
	if s, ok := httpStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
