// Package resilience provides fault-tolerance primitives that pipeline stages
// wrap around the rest of the chain.
//
//   - CircuitBreaker fails fast after repeated downstream failures.
//   - Retry re-invokes a call with exponential backoff.
//   - Bulkhead caps concurrent downstream calls.
//   - RateLimiter paces calls with a token bucket.
//
// Every primitive takes the caller's context, so cancellation reaches both
// the waiting and the wrapped call:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("store"))
//	err := cb.Execute(ctx, func(ctx context.Context) error {
//	    return store.Put(ctx, key, value)
//	})
package resilience
