// Package pipeline composes middleware-like stages around a destination into
// a single callable, the classic "onion" chain of responsibility.
//
// A Stage receives the carried value and a next Handler representing the rest
// of the chain. It may transform the value before calling next, inspect or
// replace the result after, call next several times, or not call it at all.
// The chain is built by folding stages right to left around the destination,
// so every next is already the fully composed remainder:
//
//	s1:before -> s2:before -> destination -> s2:after -> s1:after
//
// Two construction styles share the same algorithm.
//
// Fluent and immutable. Every method returns a new snapshot:
//
//	sum, err := pipeline.Create[int, int]().
//	    Send(1).
//	    Through(
//	        func(ctx context.Context, n int, next pipeline.Handler[int, int]) (int, error) {
//	            r, err := next(ctx, n+1)
//	            return r + 1, err
//	        },
//	    ).
//	    ThenReturn(ctx)
//
// Mutable builder. Stages and destination are updated in place and the chain
// is folded again on every Execute:
//
//	b := pipeline.NewBuilder[string, string](pipeline.WithStages(trim, lower))
//	b.AddStage(stages.Logging[string, string](log, "text"))
//	out, err := b.Execute(ctx, "  Hello ")
//
// Stages that change the carried type are added with Transform, which keeps
// both sides type-checked:
//
//	p := pipeline.Transform(pipeline.Create[int, string](),
//	    func(ctx context.Context, n int, next pipeline.Handler[string, string]) (string, error) {
//	        return next(ctx, fmt.Sprintf("String of %d", n))
//	    })
//
// The composer never catches, wraps, retries or logs errors returned by
// stages or destinations; they reach the caller unchanged. Its own failures
// are ErrMissingInput and ErrTypeMismatch.
//
// Asynchronous stages return a *future.Future and await their downstream
// result before using it; see the future package.
package pipeline
