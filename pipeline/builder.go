package pipeline

import "context"

// Builder is the mutable counterpart of Pipeline. Stages and destination are
// changed in place and the chain is folded again on every Execute, so changes
// made between executions are visible to the next one.
//
// A Builder does no locking; do not mutate it while it is executing.
type Builder[T, R any] struct {
	chain Pipeline[T, T, R]
	dest  Handler[T, R]
}

// BuilderOption configures a Builder at construction.
type BuilderOption[T, R any] func(b *Builder[T, R])

// WithStages sets the initial stages.
func WithStages[T, R any](stages ...Stage[T, R]) BuilderOption[T, R] {
	return func(b *Builder[T, R]) {
		b.chain = b.chain.Through(stages...)
	}
}

// WithDestination sets the initial destination.
func WithDestination[T, R any](dest Handler[T, R]) BuilderOption[T, R] {
	return func(b *Builder[T, R]) {
		b.dest = dest
	}
}

// NewBuilder creates a Builder. Without WithDestination the destination is Identity.
func NewBuilder[T, R any](opts ...BuilderOption[T, R]) *Builder[T, R] {
	b := &Builder[T, R]{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddStage appends stages and returns the receiver.
func (b *Builder[T, R]) AddStage(stages ...Stage[T, R]) *Builder[T, R] {
	b.chain = b.chain.Through(stages...)
	return b
}

// SetDestination replaces the destination and returns the receiver.
// nil restores Identity.
func (b *Builder[T, R]) SetDestination(dest Handler[T, R]) *Builder[T, R] {
	b.dest = dest
	return b
}

// Execute runs in through the current stages and destination.
func (b *Builder[T, R]) Execute(ctx context.Context, in T) (R, error) {
	return b.chain.Process(ctx, in, b.dest)
}

// Compile returns a handler for the current stages and destination.
// Later changes to the Builder do not affect it.
func (b *Builder[T, R]) Compile() Handler[T, R] {
	return b.chain.Compile(b.dest)
}

// Len returns the number of stages.
func (b *Builder[T, R]) Len() int { return b.chain.Len() }
