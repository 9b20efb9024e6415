package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TypedStore keeps JSON-encoded values of type V under prefixed keys.
type TypedStore[V any] struct {
	client    *Client
	keyPrefix string
}

// NewTypedStore creates a TypedStore backed by client. Keys are written as
// keyPrefix:key.
func NewTypedStore[V any](client *Client, keyPrefix string) *TypedStore[V] {
	return &TypedStore[V]{client: client, keyPrefix: keyPrefix}
}

func (s *TypedStore[V]) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Load decodes the value stored under key. found is false when there is none.
func (s *TypedStore[V]) Load(ctx context.Context, key string) (val V, found bool, err error) {
	raw, found, err := s.client.Get(ctx, s.fullKey(key))
	if err != nil {
		return val, false, fmt.Errorf("typed store load %q: %w", key, err)
	}
	if !found {
		return val, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return val, false, fmt.Errorf("typed store unmarshal %q: %w", key, err)
	}
	return val, true, nil
}

// Save encodes val and stores it with ttl. A ttl of 0 means no expiration.
func (s *TypedStore[V]) Save(ctx context.Context, key string, val V, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("typed store marshal %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.fullKey(key), string(data), ttl); err != nil {
		return fmt.Errorf("typed store save %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key.
func (s *TypedStore[V]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)); err != nil {
		return fmt.Errorf("typed store delete %q: %w", key, err)
	}
	return nil
}
