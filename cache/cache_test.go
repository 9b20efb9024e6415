package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/kbukum/onion/errors"
	"github.com/kbukum/onion/logger"
)

type result struct {
	Text  string   `json:"text"`
	Steps []string `json:"steps"`
}

// newTestClient creates a Client backed by miniredis.
func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)

	client, err := New(Config{Enabled: true, Addr: mini.Addr()}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, mini
}

func TestNewDisabled(t *testing.T) {
	if _, err := New(Config{}, logger.Nop()); err == nil {
		t.Fatal("expected error for disabled cache")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Addr != "localhost:6379" || cfg.PoolSize != 10 || cfg.KeyPrefix != "onion" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.DialTimeout != 5*time.Second {
		t.Errorf("dial timeout = %v", cfg.DialTimeout)
	}
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestPingUnavailable(t *testing.T) {
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	client, err := New(Config{Enabled: true, Addr: mini.Addr(), MaxRetries: 1}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()
	mini.Close()

	err = client.Ping(context.Background())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeUnavailable {
		t.Errorf("expected UNAVAILABLE, got %v", err)
	}
}

func TestClientGetMissing(t *testing.T) {
	client, _ := newTestClient(t)
	_, found, err := client.Get(context.Background(), "nope")
	if err != nil || found {
		t.Errorf("Get = found %v, err %v", found, err)
	}
}

func TestTypedStoreSaveAndLoad(t *testing.T) {
	client, mini := newTestClient(t)
	store := NewTypedStore[result](client, "test")
	ctx := context.Background()

	want := result{Text: "HI", Steps: []string{"trim", "upper"}}
	if err := store.Save(ctx, "k1", want, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mini.Exists("test:k1") {
		t.Error("key should be written with prefix")
	}

	got, found, err := store.Load(ctx, "k1")
	if err != nil || !found {
		t.Fatalf("Load = found %v, err %v", found, err)
	}
	if got.Text != "HI" || len(got.Steps) != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestTypedStoreLoadMissing(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewTypedStore[string](client, "")

	got, found, err := store.Load(context.Background(), "none")
	if err != nil || found || got != "" {
		t.Errorf("Load = %q, %v, %v", got, found, err)
	}
}

func TestTypedStoreTTL(t *testing.T) {
	client, mini := newTestClient(t)
	store := NewTypedStore[string](client, "ttl")
	ctx := context.Background()

	if err := store.Save(ctx, "k", "v", time.Minute); err != nil {
		t.Fatal(err)
	}
	mini.FastForward(2 * time.Minute)

	if _, found, _ := store.Load(ctx, "k"); found {
		t.Error("value should have expired")
	}
}

func TestTypedStoreDelete(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewTypedStore[string](client, "del")
	ctx := context.Background()

	_ = store.Save(ctx, "k", "v", 0)
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := store.Load(ctx, "k"); found {
		t.Error("value should be gone")
	}
}

func TestTypedStoreCorruptValue(t *testing.T) {
	client, mini := newTestClient(t)
	store := NewTypedStore[result](client, "bad")
	_ = mini.Set("bad:k", "{not json")

	if _, _, err := store.Load(context.Background(), "k"); err == nil {
		t.Error("expected unmarshal error")
	}
}
