package redis

import "errors"

var (
	ErrEmptyURL   = errors.New("redis: empty REDIS_URL")
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrNotReady is returned by Connect when every ping attempt failed.
	ErrNotReady  = errors.New("redis: not ready after retries")
	ErrUnhealthy = errors.New("redis: healthcheck failed")
	// ErrUpdateConflict is returned by Store.Update when the key kept
	// changing under every retry.
	ErrUpdateConflict = errors.New("redis: update conflict")
)
