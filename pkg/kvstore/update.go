package kvstore

import (
	"context"
	"errors"
)

// UpdateFunc computes the new value of a key from its current one. found is
// false when the key holds no value. Returning an error aborts the update.
type UpdateFunc func(current string, found bool) (string, error)

// Updater is implemented by stores that can read, modify and write a key as
// one atomic step.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Update runs fn against the key atomically when the store implements Updater.
// Other stores fall back to Get then Set, which is not atomic across
// processes; callers sharing a process should serialize updates themselves.
func Update(ctx context.Context, s Store, key string, fn UpdateFunc) error {
	if key == "" {
		return ErrEmptyKey
	}
	if u, ok := s.(Updater); ok {
		return u.Update(ctx, key, fn)
	}

	current, err := s.Get(ctx, key)
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, next)
}
