package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ExecuteEach calls h once per input on up to workers goroutines and returns
// the results in input order. The first error cancels the context passed to
// the remaining calls and is returned as is.
func ExecuteEach[I, O any](ctx context.Context, h Handler[I, O], inputs []I, workers int) ([]O, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]O, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out, err := h(gctx, in)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
