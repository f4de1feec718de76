package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/kvstore"
	"github.com/dmitrymomot/formkit/pkg/redis"
)

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{}, nil)
		assert.ErrorIs(t, err, redis.ErrEmptyURL)
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "postgres://not-redis",
			ConnectTimeout: time.Second,
		}, nil)
		assert.ErrorIs(t, err, redis.ErrInvalidURL)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://127.0.0.1:1/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: 2 * time.Second,
		}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, redis.ErrNotReady)
	})
}

func TestDriverRegistered(t *testing.T) {
	t.Parallel()
	assert.Contains(t, kvstore.Drivers(), redis.DriverName)
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	var _ kvstore.Updater = (*redis.Store)(nil)

	store := redis.NewStore(nil, 0)
	err := store.Update(context.Background(), "", func(string, bool) (string, error) { return "", nil })
	assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
}
