// Package cache provides an optional Redis-backed page cache for GO API
// responses.
//
// Cached entries are raw JSON page bodies keyed by endpoint and query
// parameters, stored with a fixed TTL. The cache is opt-in: without a
// configured Redis address the reports run fully stateless.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient, 15*time.Minute)
//
//	key := cache.Key{
//		Endpoint:    "goadmin.ifrc.org/api/v2/local-units/",
//		QueryParams: url.Values{"limit": []string{"50"}, "offset": []string{"0"}},
//	}
//
//	payload, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - goapi_cache_hits_total{layer="redis"} - Cache hits
//   - goapi_cache_misses_total - Cache misses
//   - goapi_cache_errors_total{operation} - Cache operation errors
package cache
