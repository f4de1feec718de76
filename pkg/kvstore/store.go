package kvstore

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrEmptyKey is returned when an operation is called with an empty key.
	ErrEmptyKey = errors.New("kvstore: empty key")

	// ErrUnknownDriver is returned by Open for a driver that was never registered.
	ErrUnknownDriver = errors.New("kvstore: unknown driver")
)

// Store is a string key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// HealthChecker is implemented by stores backed by a remote service.
type HealthChecker interface {
	Healthcheck(ctx context.Context) error
}

// Ping checks the store's backend when it supports health checks.
func Ping(ctx context.Context, s Store) error {
	if hc, ok := s.(HealthChecker); ok {
		return hc.Healthcheck(ctx)
	}
	return nil
}

// Close releases the store's connections when it holds any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
