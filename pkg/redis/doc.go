// Package redis provides a Redis-backed kvstore driver.
//
// Connect parses the URL from Config and pings the server with retries. Store
// adapts a go-redis client to kvstore.Store; missing keys surface as
// kvstore.ErrNotFound. Importing the package registers the "redis" driver:
//
//	import _ "github.com/dmitrymomot/formkit/pkg/redis"
//
//	store, err := kvstore.Open(ctx, kvstore.Config{Driver: "redis"}, log)
//
// Configuration is read from REDIS_URL, REDIS_RETRY_ATTEMPTS,
// REDIS_RETRY_INTERVAL, REDIS_CONNECT_TIMEOUT and REDIS_RECORD_TTL.
//
// Errors wrap the underlying go-redis error with errors.Join, so both the
// sentinel (e.g. ErrNotReady) and the cause can be matched.
package redis
