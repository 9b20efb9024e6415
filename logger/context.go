package logger

import "context"

type contextKey string

const executionIDKey contextKey = "execution_id"

// ContextWithExecutionID returns a copy of ctx carrying the execution ID.
func ContextWithExecutionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, executionIDKey, id)
}

// ExecutionIDFromContext returns the execution ID stored in ctx, if any.
func ExecutionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(executionIDKey).(string)
	return id, ok && id != ""
}
