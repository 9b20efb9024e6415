package stages

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kbukum/onion/errors"
	"github.com/kbukum/onion/pipeline"
)

type outcome[R any] struct {
	out R
	err error
}

// Timeout bounds the rest of the chain to d. When d elapses first the stage
// returns a TIMEOUT error without waiting for downstream, which keeps running
// until it notices its context is done. Cancellation of the caller's context
// is returned as the plain context error.
func Timeout[T, R any](d time.Duration) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		tctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		done := make(chan outcome[R], 1)
		go func() {
			out, err := next(tctx, in)
			done <- outcome[R]{out, err}
		}()

		select {
		case o := <-done:
			if o.err != nil && stderrors.Is(o.err, context.DeadlineExceeded) && ctx.Err() == nil {
				return o.out, timeoutError(d, o.err)
			}
			return o.out, o.err
		case <-tctx.Done():
			var zero R
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			return zero, timeoutError(d, tctx.Err())
		}
	}
}

func timeoutError(d time.Duration, cause error) error {
	return errors.Timeout("pipeline").
		WithDetail("limit", d.String()).
		WithCause(cause)
}
