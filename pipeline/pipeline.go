package pipeline

import (
	"context"
	"slices"
)

// Pipeline is an immutable chain of stages with an optional pending value.
//
// In is the type Send accepts, T the type carried at the tail of the chain
// (seen by the next appended stage and by the destination), and R the
// result type. Every method returns a new Pipeline; snapshots share their
// stage list until one of them appends to it. The zero value is an empty
// Pipeline with no value sent.
type Pipeline[In, T, R any] struct {
	links []link
	input In
	sent  bool
}

// Create returns an empty Pipeline.
func Create[In, R any]() Pipeline[In, In, R] {
	return Pipeline[In, In, R]{}
}

// Send records the value to pass through the pipeline on Then or ThenReturn.
// Sending a zero value counts as sending.
func (p Pipeline[In, T, R]) Send(v In) Pipeline[In, T, R] {
	return Pipeline[In, T, R]{links: p.links, input: v, sent: true}
}

// Through appends stages to the chain, preserving their order.
func (p Pipeline[In, T, R]) Through(stages ...Stage[T, R]) Pipeline[In, T, R] {
	links := slices.Clip(p.links)
	for _, s := range stages {
		links = append(links, eraseStage(s))
	}
	return Pipeline[In, T, R]{links: links, input: p.input, sent: p.sent}
}

// AddPipe appends a single stage to the chain.
func (p Pipeline[In, T, R]) AddPipe(stage Stage[T, R]) Pipeline[In, T, R] {
	return p.Through(stage)
}

// Transform appends a stage whose continuation carries a different type.
// Stages appended afterwards, and the destination, receive U.
func Transform[In, T, U, R any](p Pipeline[In, T, R], stage func(ctx context.Context, in T, next Handler[U, R]) (R, error)) Pipeline[In, U, R] {
	links := append(slices.Clip(p.links), eraseTransform(stage))
	return Pipeline[In, U, R]{links: links, input: p.input, sent: p.sent}
}

// Then runs the sent value through the chain and into dest.
// It returns ErrMissingInput, before any stage runs, if nothing was sent.
func (p Pipeline[In, T, R]) Then(ctx context.Context, dest Handler[T, R]) (R, error) {
	if !p.sent {
		var zero R
		return zero, ErrMissingInput
	}
	return p.Compile(dest)(ctx, p.input)
}

// ThenReturn runs the sent value through the chain and returns whatever
// reaches the end, coerced to R.
func (p Pipeline[In, T, R]) ThenReturn(ctx context.Context) (R, error) {
	return p.Then(ctx, Identity[T, R]())
}

// Process runs in through the chain and into dest, ignoring any sent value.
// A nil dest means Identity.
func (p Pipeline[In, T, R]) Process(ctx context.Context, in In, dest Handler[T, R]) (R, error) {
	return p.Compile(dest)(ctx, in)
}

// Compile folds the current stages around dest and returns the resulting
// handler. A nil dest means Identity. The handler holds no mutable state and
// may be called concurrently if the stages allow it.
func (p Pipeline[In, T, R]) Compile(dest Handler[T, R]) Handler[In, R] {
	if dest == nil {
		dest = Identity[T, R]()
	}
	return typed[In, R](fold(p.links, eraseHandler(dest)))
}

// Len returns the number of stages.
func (p Pipeline[In, T, R]) Len() int { return len(p.links) }

// Sent reports whether a value has been sent.
func (p Pipeline[In, T, R]) Sent() bool { return p.sent }
