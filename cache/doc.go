// Package cache stores chain results in Redis so that repeated inputs can be
// answered without running the chain again.
//
// Client wraps a go-redis client. TypedStore layers JSON-encoded values and a
// key prefix over it and satisfies stages.CacheStore:
//
//	client, err := cache.New(cfg, log)
//	defer client.Close()
//	store := cache.NewTypedStore[string](client, cfg.KeyPrefix)
//	b.AddStage(stages.Cache[string, string](store, keyFn, cfg.TTL, log))
package cache
