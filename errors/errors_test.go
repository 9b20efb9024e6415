package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad value")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "bad value" {
		t.Errorf("expected message 'bad value', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("INVALID_INPUT should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out")
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Internal(cause)
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	sentinel := MissingInput()
	err := fmt.Errorf("run: %w", MissingInput().WithDetail("pipeline", "checkout"))

	if !stderrors.Is(err, sentinel) {
		t.Error("expected errors.Is to match on code")
	}
	if stderrors.Is(err, TypeMismatch("int", "string")) {
		t.Error("expected different codes not to match")
	}
}

func TestAppError_WithDetail_DoesNotMutateReceiver(t *testing.T) {
	base := Timeout("stage")
	derived := base.WithDetail("attempt", 2)

	if _, ok := base.Details["attempt"]; ok {
		t.Error("expected receiver details to be untouched")
	}
	if derived.Details["attempt"] != 2 {
		t.Errorf("expected attempt=2, got %v", derived.Details["attempt"])
	}
	if derived.Details["operation"] != "stage" {
		t.Errorf("expected inherited operation detail, got %v", derived.Details["operation"])
	}
}

func TestAppError_WithCause_DoesNotMutateReceiver(t *testing.T) {
	base := Unavailable("backend")
	cause := stderrors.New("refused")
	derived := base.WithCause(cause)

	if base.Cause != nil {
		t.Error("expected receiver cause to stay nil")
	}
	if derived.Unwrap() != cause {
		t.Error("expected derived cause to be set")
	}
}

func TestTypeMismatch_Details(t *testing.T) {
	err := TypeMismatch("int", "string")
	if err.Details["expected"] != "int" || err.Details["actual"] != "string" {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if err.Retryable {
		t.Error("TYPE_MISMATCH should not be retryable")
	}
}

func TestInvalidInput_EmptyField(t *testing.T) {
	err := InvalidInput("", "empty")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Timeout("fetch"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected to find AppError")
	}
	if appErr.Code != ErrCodeTimeout {
		t.Errorf("expected TIMEOUT, got %s", appErr.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected plain error not to convert")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", Timeout("op"), true},
		{"unavailable wrapped", fmt.Errorf("x: %w", Unavailable("db")), true},
		{"missing input", MissingInput(), false},
		{"plain error", stderrors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{InvalidInput("inputs", "empty"), http.StatusBadRequest},
		{MissingInput(), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Timeout("chain"), http.StatusGatewayTimeout},
		{Unavailable("cache"), http.StatusServiceUnavailable},
		{Internal(stderrors.New("x")), http.StatusInternalServerError},
		{New("SOMETHING_ELSE", "?"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("%s: HTTPStatus() = %d, want %d", tc.err.Code, got, tc.want)
		}
	}
}

func TestToResponse(t *testing.T) {
	resp := InvalidInput("inputs", "empty").ToResponse()
	if resp.Error.Code != ErrCodeInvalidInput || resp.Error.Message != "Invalid input: empty" {
		t.Errorf("unexpected body %+v", resp.Error)
	}
	if resp.Error.Details["field"] != "inputs" {
		t.Errorf("details = %v", resp.Error.Details)
	}
}
