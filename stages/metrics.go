package stages

import (
	"context"
	"time"

	"github.com/kbukum/onion/errors"
	"github.com/kbukum/onion/observability"
	"github.com/kbukum/onion/pipeline"
)

const unknownErrorCode = "UNKNOWN"

// Metrics records one stage.total point per call, its duration, and a
// stage.errors point labelled with the error code on failure.
func Metrics[T, R any](m *observability.Metrics, name string) pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		m.RecordStageStart(ctx, name)
		start := time.Now()
		out, err := next(ctx, in)

		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError
			m.RecordStageError(ctx, name, errorCode(err))
		}
		m.RecordStageEnd(ctx, name, status, time.Since(start))
		return out, err
	}
}

func errorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return unknownErrorCode
}
