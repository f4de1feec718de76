package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// DriverMemory is always registered.
const DriverMemory = "memory"

// Config selects the backing store. Driver-specific settings are loaded by the
// driver itself from its own env-tagged config.
type Config struct {
	Driver string `env:"STORE_DRIVER" envDefault:"memory"`
	Prefix string `env:"STORE_PREFIX" envDefault:"formkit"`
}

// OpenFunc connects a driver.
type OpenFunc func(ctx context.Context, log *slog.Logger) (Store, error)

var (
	driversMu sync.RWMutex
	drivers   = map[string]OpenFunc{
		DriverMemory: func(context.Context, *slog.Logger) (Store, error) {
			return NewMemoryStore(), nil
		},
	}
)

// Register makes a driver available to Open. Drivers register from init, the
// way database/sql drivers do. Registering a name twice panics.
func Register(name string, open OpenFunc) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if open == nil {
		panic("kvstore: Register open func is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("kvstore: Register called twice for driver " + name)
	}
	drivers[name] = open
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Open connects the configured driver and applies the configured prefix.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (Store, error) {
	if log == nil {
		log = logger.Discard()
	}

	name := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if name == "" {
		name = DriverMemory
	}

	driversMu.RLock()
	open, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownDriver, name, strings.Join(Drivers(), ", "))
	}

	store, err := open(ctx, log.With(logger.Driver(name)))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("kvstore: open %s", name), err)
	}

	log.InfoContext(ctx, "key-value store ready", logger.Driver(name), slog.String("prefix", cfg.Prefix))
	return Prefixed(store, cfg.Prefix), nil
}
