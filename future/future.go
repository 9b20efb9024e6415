package future

import (
	"context"
	"sync"
)

// Future holds a value and error that become available once.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) settle(val T, err error) {
	f.once.Do(func() {
		f.val, f.err = val, err
		close(f.done)
	})
}

// Go runs fn on a new goroutine and returns a Future for its result.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		val, err := fn(ctx)
		f.settle(val, err)
	}()
	return f
}

// Resolved returns a Future already settled with val.
func Resolved[T any](val T) *Future[T] {
	f := newFuture[T]()
	f.settle(val, nil)
	return f
}

// Failed returns a Future already settled with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.settle(zero, err)
	return f
}

// Done returns a channel closed once the Future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future settles or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then returns a Future that applies fn to f's value once f settles.
// An error from f skips fn and settles the result with that error.
func Then[T, U any](ctx context.Context, f *Future[T], fn func(ctx context.Context, val T) (U, error)) *Future[U] {
	return Go(ctx, func(ctx context.Context) (U, error) {
		val, err := f.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(ctx, val)
	})
}
