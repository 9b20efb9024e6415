package stages

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/pipeline"
)

// ExecutionID makes sure the context carries an execution ID, generating a
// UUID v4 when none is present. An existing ID is left untouched, so nested
// pipelines share their caller's ID.
func ExecutionID[T, R any]() pipeline.Stage[T, R] {
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		if _, ok := logger.ExecutionIDFromContext(ctx); !ok {
			ctx = logger.ContextWithExecutionID(ctx, uuid.NewString())
		}
		return next(ctx, in)
	}
}
