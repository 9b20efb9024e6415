package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/kbukum/onion/errors"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), func(_ context.Context, attempt int) (string, error) {
		calls++
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	var attempts []int
	result, err := Retry(context.Background(), fastRetry(3), func(_ context.Context, attempt int) (int, error) {
		attempts = append(attempts, attempt)
		if attempt < 3 {
			return 0, errors.New("temporary error")
		}
		return 42, nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != 42 {
		t.Errorf("expected 42, got %d", result)
	}
	if len(attempts) != 3 || attempts[0] != 1 || attempts[2] != 3 {
		t.Errorf("unexpected attempt numbers %v", attempts)
	}
}

func TestRetry_ExceedsMaxAttempts(t *testing.T) {
	calls := 0
	last := errors.New("third")
	_, err := Retry(context.Background(), fastRetry(3), func(_ context.Context, attempt int) (int, error) {
		calls++
		if attempt == 3 {
			return 0, last
		}
		return 0, errors.New("earlier")
	})

	if !errors.Is(err, last) {
		t.Errorf("expected the last error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastRetry(10)
	cfg.InitialBackoff = time.Second
	cfg.MaxBackoff = time.Second

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := Retry(ctx, cfg, func(_ context.Context, attempt int) (int, error) {
		calls++
		return 0, errors.New("fail")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestRetry_RetryIfFilter(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastRetry(5)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	_, err := Retry(context.Background(), cfg, func(_ context.Context, attempt int) (int, error) {
		calls++
		return 0, permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	cfg := fastRetry(3)
	var seen []int
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		seen = append(seen, attempt)
	}

	_, _ = Retry(context.Background(), cfg, func(_ context.Context, attempt int) (int, error) {
		return 0, errors.New("fail")
	})

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("OnRetry should fire before attempts 2 and 3, got %v", seen)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"plain error", errors.New("x"), true},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"circuit open", ErrCircuitOpen, false},
		{"retryable app error", apperrors.Timeout("stage"), true},
		{"permanent app error", apperrors.InvalidInput("text", "empty"), false},
		{"wrapped permanent", apperrors.Internal(errors.New("x")), false},
		{"timeout wrapping deadline", apperrors.Timeout("stage").WithCause(context.DeadlineExceeded), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DefaultRetryIf(tc.err); got != tc.want {
				t.Errorf("DefaultRetryIf(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second},
	}
	for _, tc := range tests {
		if got := calculateBackoff(tc.attempt, cfg); got != tc.want {
			t.Errorf("attempt %d: got %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestCalculateBackoffJitterBounds(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  1.0,
		Jitter:         0.5,
	}
	for i := 0; i < 100; i++ {
		got := calculateBackoff(1, cfg)
		if got < 50*time.Millisecond || got > 150*time.Millisecond {
			t.Fatalf("jittered backoff %v out of range", got)
		}
	}
}
