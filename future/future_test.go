package future

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolved_Await(t *testing.T) {
	got, err := Resolved(42).Await(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestFailed_Await(t *testing.T) {
	boom := errors.New("boom")
	_, err := Failed[int](boom).Await(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestGo_SettlesAsynchronously(t *testing.T) {
	release := make(chan struct{})
	f := Go(context.Background(), func(_ context.Context) (string, error) {
		<-release
		return "done", nil
	})

	select {
	case <-f.Done():
		t.Fatal("future settled before release")
	default:
	}

	close(release)
	got, err := f.Await(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != "done" {
		t.Errorf("got %q, want done", got)
	}
}

func TestAwait_ContextCanceled(t *testing.T) {
	f := Go(context.Background(), func(_ context.Context) (int, error) {
		time.Sleep(time.Second)
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestThen_Chains(t *testing.T) {
	ctx := context.Background()
	f := Then(ctx, Resolved(2), func(_ context.Context, v int) (string, error) {
		if v != 2 {
			t.Errorf("got %d, want 2", v)
		}
		return "two", nil
	})

	got, err := f.Await(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != "two" {
		t.Errorf("got %q, want two", got)
	}
}

func TestThen_SkipsOnError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	called := false
	f := Then(ctx, Failed[int](boom), func(_ context.Context, v int) (int, error) {
		called = true
		return v, nil
	})

	_, err := f.Await(ctx)
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if called {
		t.Error("fn should not run after a failed future")
	}
}
