package stages

import (
	"context"

	"github.com/kbukum/onion/pipeline"
)

// Before maps the input before handing it to the rest of the chain.
// An error from fn short-circuits.
func Before[T, R any](fn func(ctx context.Context, in T) (T, error)) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		v, err := fn(ctx, in)
		if err != nil {
			var zero R
			return zero, err
		}
		return next(ctx, v)
	}
}

// After maps the result of the rest of the chain. It is not called when
// downstream fails.
func After[T, R any](fn func(ctx context.Context, out R) (R, error)) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		out, err := next(ctx, in)
		if err != nil {
			return out, err
		}
		return fn(ctx, out)
	}
}

// When runs stage only for inputs that satisfy pred. Other inputs go
// straight to the rest of the chain.
func When[T, R any](pred func(in T) bool, stage pipeline.Stage[T, R]) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		if !pred(in) {
			return next(ctx, in)
		}
		return stage(ctx, in, next)
	}
}
