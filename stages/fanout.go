package stages

import (
	"context"

	"github.com/kbukum/onion/pipeline"
)

// FanOut splits the input into parts, sends every part through the rest of
// the chain concurrently (at most workers at a time, unlimited when
// workers <= 0), and merges the results in part order. The first failing
// part cancels the others and its error is returned.
func FanOut[T, R any](
	split func(in T) []T,
	merge func(ctx context.Context, parts []R) (R, error),
	workers int,
) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		parts := split(in)
		limit := workers
		if limit <= 0 {
			limit = max(len(parts), 1)
		}
		results, err := pipeline.ExecuteEach(ctx, next, parts, limit)
		if err != nil {
			var zero R
			return zero, err
		}
		return merge(ctx, results)
	}
}
