package stages

import (
	"context"
	"time"

	"github.com/kbukum/onion/errors"
	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/pipeline"
)

// Logging logs each pass through the stage: entry at debug level, then the
// outcome with its duration. Failures are logged at error level with the
// error code when the error carries one. A nil log discards everything.
func Logging[T, R any](log *logger.Logger, name string) pipeline.Stage[T, R] {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("stages")
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		l := log.WithContext(ctx)
		l.Debug("stage entered", logger.Fields(logger.FieldStage, name))

		start := time.Now()
		out, err := next(ctx, in)
		fields := logger.DurationFields(name, time.Since(start))
		fields[logger.FieldStage] = name

		if err != nil {
			fields[logger.FieldStatus] = "error"
			if appErr, ok := errors.AsAppError(err); ok {
				fields["code"] = string(appErr.Code)
			}
			l.Error("stage failed", logger.MergeWithError(fields, err))
			return out, err
		}

		fields[logger.FieldStatus] = "ok"
		l.Debug("stage completed", fields)
		return out, nil
	}
}
