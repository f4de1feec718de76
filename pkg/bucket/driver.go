package bucket

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

// DriverName is the kvstore driver registered by this package.
const DriverName = "s3"

func init() {
	kvstore.Register(DriverName, Open)
}

// Open loads Config from the environment and checks the bucket is reachable.
func Open(ctx context.Context, log *slog.Logger) (kvstore.Store, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	store, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Healthcheck(ctx); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "s3 bucket ready", slog.String("bucket", cfg.Bucket))
	return store, nil
}
