package pg

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

// DriverName is the kvstore driver registered by this package.
const DriverName = "postgres"

func init() {
	kvstore.Register(DriverName, Open)
}

// Open loads Config, connects, applies migrations when AutoMigrate is set and
// returns a Store.
func Open(ctx context.Context, log *slog.Logger) (kvstore.Store, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	pool, err := Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return NewStore(pool), nil
}
