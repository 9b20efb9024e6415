package stages

import (
	"context"

	"github.com/kbukum/onion/errors"
	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/observability"
	"github.com/kbukum/onion/pipeline"
)

// Tracing wraps the rest of the chain in a span named "onion.<name>".
// Errors are recorded on the span before being returned unchanged.
func Tracing[T, R any](name string) pipeline.Stage[T, R] {
	spanName := observability.SpanPrefix + name
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		ctx, span := observability.StartSpan(ctx, spanName)
		defer span.End()

		observability.SetSpanAttribute(ctx, observability.AttrStage, name)
		if id, ok := logger.ExecutionIDFromContext(ctx); ok {
			observability.SetSpanAttribute(ctx, observability.AttrExecutionID, id)
		}

		out, err := next(ctx, in)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(appErr.Code))
			}
			observability.SetSpanError(ctx, err)
		}
		return out, err
	}
}
