package pipeline

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/onion/errors"
)

// Handler processes a value and returns a result.
// Destinations, the next continuation handed to a stage, and compiled
// pipelines all share this shape.
type Handler[I, O any] func(ctx context.Context, in I) (O, error)

// Stage is one layer of the chain. It receives the carried value and next,
// the already-composed remainder of the chain.
type Stage[T, R any] func(ctx context.Context, in T, next Handler[T, R]) (R, error)

// Identity returns a Handler that yields its input as the result.
// It is the default destination. When the input is not an R at runtime the
// handler fails with ErrTypeMismatch.
func Identity[T, R any]() Handler[T, R] {
	return func(_ context.Context, in T) (R, error) {
		return coerce[R](any(in))
	}
}

// erased and link are the type-erased forms the chain is folded from.
type (
	erased func(ctx context.Context, in any) (any, error)
	link   func(ctx context.Context, in any, next erased) (any, error)
)

func eraseTransform[T, U, R any](fn func(context.Context, T, Handler[U, R]) (R, error)) link {
	return func(ctx context.Context, in any, next erased) (any, error) {
		v, err := coerce[T](in)
		if err != nil {
			return nil, err
		}
		out, err := fn(ctx, v, typed[U, R](next))
		return out, err
	}
}

func eraseStage[T, R any](s Stage[T, R]) link {
	return eraseTransform[T, T, R](s)
}

func eraseHandler[I, O any](h Handler[I, O]) erased {
	return func(ctx context.Context, in any) (any, error) {
		v, err := coerce[I](in)
		if err != nil {
			return nil, err
		}
		out, err := h(ctx, v)
		return out, err
	}
}

func typed[I, O any](h erased) Handler[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		out, err := h(ctx, in)
		if err != nil {
			o, _ := out.(O)
			return o, err
		}
		return coerce[O](out)
	}
}

// coerce asserts v to V. A nil interface is accepted for nilable V.
func coerce[V any](v any) (V, error) {
	if out, ok := v.(V); ok {
		return out, nil
	}
	var zero V
	t := reflect.TypeFor[V]()
	if v == nil && nilable(t) {
		return zero, nil
	}
	return zero, errors.TypeMismatch(t.String(), fmt.Sprintf("%T", v))
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
