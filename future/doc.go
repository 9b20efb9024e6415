// Package future provides a settle-once asynchronous result.
//
// It lets pipeline stages and destinations return work that completes later.
// A stage that needs the downstream value awaits it before using it, which
// keeps onion ordering intact:
//
//	func(ctx context.Context, n int, next pipeline.Handler[int, *future.Future[int]]) (*future.Future[int], error) {
//	    f, err := next(ctx, n+1)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return future.Then(ctx, f, func(_ context.Context, v int) (int, error) {
//	        return v + 1, nil
//	    }), nil
//	}
package future
