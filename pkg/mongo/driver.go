package mongo

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

// DriverName is the kvstore driver registered by this package.
const DriverName = "mongo"

func init() {
	kvstore.Register(DriverName, Open)
}

// Open loads Config, connects and returns a Store.
func Open(ctx context.Context, log *slog.Logger) (kvstore.Store, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	client, err := New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return NewStore(client, cfg.Database, cfg.Collection), nil
}
