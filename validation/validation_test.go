package validation

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/onion/errors"
)

type retryCfg struct {
	MaxAttempts int `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
}

type chainCfg struct {
	Stages  []string      `mapstructure:"stages" validate:"required,min=1"`
	Workers int           `mapstructure:"workers" validate:"gte=1"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Retry   retryCfg      `mapstructure:"retry"`
	Mode    string        `validate:"omitempty,oneof=strict lenient"`
}

func TestStructValidateValid(t *testing.T) {
	cfg := chainCfg{Stages: []string{"trim"}, Workers: 2, Retry: retryCfg{MaxAttempts: 3}}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	cfg := chainCfg{Workers: 0, Retry: retryCfg{MaxAttempts: 50}, Mode: "loose"}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !stderrors.Is(err, errors.InvalidConfig("")) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"stages: is required", "workers: must be >= 1", "retry.max_attempts: must be <= 10", "mode: must be one of: strict lenient"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %v", appErr.Details["fields"])
	}
}

func TestStructValidateNonStruct(t *testing.T) {
	err := Validate(42)
	if !stderrors.Is(err, errors.InvalidConfig("")) {
		t.Errorf("expected INVALID_CONFIG for non-struct, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"MaxAttempts": "max_attempts",
		"Mode":        "mode",
		"already":     "already",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidatorRequired(t *testing.T) {
	if New().Required("name", "John").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("name", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("name", "   ").HasErrors() {
		t.Error("expected error for blank required field")
	}
}

func TestValidatorRange(t *testing.T) {
	if New().Range("n", 5, 1, 10).HasErrors() {
		t.Error("5 is within [1,10]")
	}
	if !New().Range("n", 0, 1, 10).HasErrors() || !New().Range("n", 11, 1, 10).HasErrors() {
		t.Error("out of range values should fail")
	}
}

func TestValidatorPattern(t *testing.T) {
	if New().Pattern("tag", "em", `^[a-z]+$`).HasErrors() {
		t.Error("expected match")
	}
	if !New().Pattern("tag", "<em>", `^[a-z]+$`).HasErrors() {
		t.Error("expected mismatch")
	}
	if New().Pattern("tag", "", `^[a-z]+$`).HasErrors() {
		t.Error("empty value should be skipped")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"a", "b"}
	if New().OneOf("x", "a", allowed).HasErrors() {
		t.Error("a is allowed")
	}
	if !New().OneOf("x", "c", allowed).HasErrors() {
		t.Error("c is not allowed")
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("no errors should validate to nil")
	}

	v := New().Required("old", "").Custom(false, "new", "must differ from old")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("code = %s", appErr.Code)
	}
	if appErr.Message != "old: is required; new: must differ from old" {
		t.Errorf("message = %q", appErr.Message)
	}
	if len(v.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(v.Errors()))
	}
}
