package stages

import (
	"context"

	"github.com/kbukum/onion/pipeline"
	"github.com/kbukum/onion/resilience"
)

// Retry calls the rest of the chain again when it fails with a retryable
// error, backing off between attempts as cfg describes.
func Retry[T, R any](cfg resilience.RetryConfig) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		return resilience.Retry(ctx, cfg, func(ctx context.Context, _ int) (R, error) {
			return next(ctx, in)
		})
	}
}

// CircuitBreaker fails with resilience.ErrCircuitOpen, without calling the
// rest of the chain, while cb is open.
func CircuitBreaker[T, R any](cb *resilience.CircuitBreaker) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		var out R
		err := cb.Execute(ctx, func(ctx context.Context) error {
			var err error
			out, err = next(ctx, in)
			return err
		})
		return out, err
	}
}

// Bulkhead limits how many executions may be inside the rest of the chain at
// once.
func Bulkhead[T, R any](b *resilience.Bulkhead) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		var out R
		err := b.Execute(ctx, func(ctx context.Context) error {
			var err error
			out, err = next(ctx, in)
			return err
		})
		return out, err
	}
}

// RateLimit waits for a token from rl before calling the rest of the chain.
func RateLimit[T, R any](rl *resilience.RateLimiter) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		if err := rl.Wait(ctx); err != nil {
			var zero R
			return zero, err
		}
		return next(ctx, in)
	}
}

// ResilienceConfig bundles optional resilience policies. Nil fields are
// skipped.
type ResilienceConfig struct {
	RateLimiter    *resilience.RateLimiterConfig    `mapstructure:"rate_limiter"`
	Bulkhead       *resilience.BulkheadConfig       `mapstructure:"bulkhead"`
	CircuitBreaker *resilience.CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Retry          *resilience.RetryConfig          `mapstructure:"retry"`
}

// IsEmpty reports whether no policy is configured.
func (c ResilienceConfig) IsEmpty() bool {
	return c.RateLimiter == nil && c.Bulkhead == nil && c.CircuitBreaker == nil && c.Retry == nil
}

// Resilient builds the configured primitives and returns them as stages in
// the order RateLimiter, Bulkhead, Retry, CircuitBreaker. Each retry attempt
// therefore passes through the breaker, but a whole execution holds a single
// bulkhead slot and rate token. The primitives are shared by every execution
// of the returned stages.
func Resilient[T, R any](cfg ResilienceConfig) []pipeline.Stage[T, R] {
	var out []pipeline.Stage[T, R]
	if cfg.RateLimiter != nil {
		out = append(out, RateLimit[T, R](resilience.NewRateLimiter(*cfg.RateLimiter)))
	}
	if cfg.Bulkhead != nil {
		out = append(out, Bulkhead[T, R](resilience.NewBulkhead(*cfg.Bulkhead)))
	}
	if cfg.Retry != nil {
		out = append(out, Retry[T, R](*cfg.Retry))
	}
	if cfg.CircuitBreaker != nil {
		out = append(out, CircuitBreaker[T, R](resilience.NewCircuitBreaker(*cfg.CircuitBreaker)))
	}
	return out
}
