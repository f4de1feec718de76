// Package theme persists the dark-mode preference in a kvstore.Store.
package theme

import (
	"context"
	"errors"

	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

// Key is the store key holding the preference.
const Key = "dark"

// Mode is the display theme.
type Mode bool

const (
	Light Mode = false
	Dark  Mode = true
)

func (m Mode) IsDark() bool { return bool(m) }

func (m Mode) String() string {
	if m {
		return "dark"
	}
	return "light"
}

// ButtonLabel names the mode a toggle button switches to.
func (m Mode) ButtonLabel() string {
	if m {
		return "Light"
	}
	return "Dark"
}

func (m Mode) value() string {
	if m {
		return "1"
	}
	return "0"
}

// Load reads the stored mode. A missing key, or any value other than "1",
// is Light.
func Load(ctx context.Context, store kvstore.Store) (Mode, error) {
	v, err := store.Get(ctx, Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Light, nil
	}
	if err != nil {
		return Light, err
	}
	return Mode(v == "1"), nil
}

func Save(ctx context.Context, store kvstore.Store, m Mode) error {
	return store.Set(ctx, Key, m.value())
}

// Toggle flips the stored mode and returns the new one. The flip is a single
// kvstore.Update, so concurrent toggles never collapse into one.
func Toggle(ctx context.Context, store kvstore.Store) (Mode, error) {
	var next Mode
	err := kvstore.Update(ctx, store, Key, func(current string, found bool) (string, error) {
		next = !Mode(found && current == "1")
		return next.value(), nil
	})
	if err != nil {
		return Light, err
	}
	return next, nil
}
