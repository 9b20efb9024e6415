package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", buf)
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}
	l.Info("shown")
	if decode(t, &buf)["message"] != "shown" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestServiceField(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").Info("hello")
	if got := decode(t, &buf)[FieldService]; got != "test-svc" {
		t.Errorf("service = %v, want test-svc", got)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	cl := jsonLogger(&buf, "info").WithComponent("chain")
	if cl.service != "test-svc" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
	cl.Info("x")
	if got := decode(t, &buf)[FieldComponent]; got != "chain" {
		t.Errorf("component = %v, want chain", got)
	}
}

func TestWithContextExecutionID(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")
	ctx := ContextWithExecutionID(context.Background(), "exec-1")

	l.WithContext(ctx).Info("x")
	if got := decode(t, &buf)[FieldExecutionID]; got != "exec-1" {
		t.Errorf("execution_id = %v, want exec-1", got)
	}
}

func TestWithContextWithoutID(t *testing.T) {
	l := NewDefault("test")
	if l.WithContext(context.Background()) != l {
		t.Error("logger without execution id in context should be returned unchanged")
	}
}

func TestExecutionIDFromContext(t *testing.T) {
	if _, ok := ExecutionIDFromContext(context.Background()); ok {
		t.Error("empty context should not carry an execution id")
	}
	if _, ok := ExecutionIDFromContext(ContextWithExecutionID(context.Background(), "")); ok {
		t.Error("empty execution id should be reported as absent")
	}
	id, ok := ExecutionIDFromContext(ContextWithExecutionID(context.Background(), "abc"))
	if !ok || id != "abc" {
		t.Errorf("got (%q, %v), want (abc, true)", id, ok)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info").
		WithFields(map[string]interface{}{"key": "value"}).
		WithError(errors.New("boom"))
	l.Warn("x", Fields(FieldStage, "trim"))

	m := decode(t, &buf)
	if m["key"] != "value" {
		t.Errorf("key = %v", m["key"])
	}
	if m["error"] != "boom" {
		t.Errorf("error = %v", m["error"])
	}
	if m[FieldStage] != "trim" {
		t.Errorf("stage = %v", m[FieldStage])
	}
	if m["level"] != "warn" {
		t.Errorf("level = %v", m["level"])
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(f) != 2 || f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields %v", f)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("compile", errors.New("bad"))
	if ef[FieldOperation] != "compile" || ef[FieldError] != "bad" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("run", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("duration = %v, want 1500", df[FieldDuration])
	}
	merged := MergeWithError(nil, errors.New("x"))
	if merged[FieldError] != "x" {
		t.Errorf("merged = %v", merged)
	}
}

func TestEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	if l.Enabled(-1) {
		t.Error("trace should not be enabled at warn level")
	}
	if !l.Enabled(3) {
		t.Error("error should be enabled at warn level")
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != FormatConsole || cfg.Output != "stderr" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	cfg.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid level error")
	}
}

func TestInit(t *testing.T) {
	Init(Config{Level: "info", Format: "json"}, "init-svc")
	if GetGlobalLogger().service != "init-svc" {
		t.Errorf("global logger service = %q", GetGlobalLogger().service)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestRegistry(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "info"))
	RegisterComponents("chain", "stages")

	names := Registered()
	if len(names) != 2 || names[0] != "chain" || names[1] != "stages" {
		t.Fatalf("registered = %v", names)
	}

	Get("chain").Info("x")
	if got := decode(t, &buf)[FieldComponent]; got != "chain" {
		t.Errorf("component = %v, want chain", got)
	}

	buf.Reset()
	Get("unknown").Info("y")
	if got := decode(t, &buf)[FieldComponent]; got != "unknown" {
		t.Errorf("fallback component = %v, want unknown", got)
	}
}

func TestNop(t *testing.T) {
	Nop().Info("discarded")
}
