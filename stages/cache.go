package stages

import (
	"context"
	"time"

	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/pipeline"
)

// CacheStore is the storage behind Cache. cache.TypedStore implements it.
type CacheStore[R any] interface {
	Load(ctx context.Context, key string) (R, bool, error)
	Save(ctx context.Context, key string, val R, ttl time.Duration) error
}

// Cache answers from store when it holds a result for key(in), without
// calling the rest of the chain. Otherwise it calls next and saves a
// successful result for ttl. Store failures are logged as warnings and never
// fail the execution. log may be nil.
func Cache[T, R any](store CacheStore[R], key func(T) string, ttl time.Duration, log *logger.Logger) pipeline.Stage[T, R] {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("stages")
	return func(ctx context.Context, in T, next pipeline.Handler[T, R]) (R, error) {
		k := key(in)
		cached, found, err := store.Load(ctx, k)
		if err != nil {
			log.WithContext(ctx).Warn("cache load failed", logger.ErrorFields("cache", err))
		} else if found {
			return cached, nil
		}

		out, err := next(ctx, in)
		if err != nil {
			return out, err
		}
		if err := store.Save(ctx, k, out, ttl); err != nil {
			log.WithContext(ctx).Warn("cache save failed", logger.ErrorFields("cache", err))
		}
		return out, nil
	}
}
