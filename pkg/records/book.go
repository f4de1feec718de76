package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

var (
	// ErrCorruptData is returned when the stored value is not a record or a
	// list of records.
	ErrCorruptData = errors.New("records: stored data is corrupt")

	// ErrNoRecords is returned by Latest when nothing has been saved.
	ErrNoRecords = errors.New("records: no records saved")

	// ErrInvalidMode is returned by New for a mode other than overwrite or append.
	ErrInvalidMode = errors.New("records: invalid persistence mode")
)

// Book persists accepted records of one form under a single key.
//
// In overwrite mode the key holds one JSON object that each Save replaces.
// In append mode it holds a JSON array that each Save extends through
// kvstore.Update, so appends are atomic on stores that implement
// kvstore.Updater. Saves through one Book are always serialized.
type Book struct {
	store kvstore.Store
	key   string
	mode  form.Mode

	mu sync.Mutex
}

// New binds a store, key and mode.
func New(store kvstore.Store, key string, mode form.Mode) (*Book, error) {
	if key == "" {
		return nil, kvstore.ErrEmptyKey
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return &Book{store: store, key: key, mode: mode}, nil
}

// ForSchema binds the storage key and mode configured on the schema.
func ForSchema(store kvstore.Store, schema *form.Schema) (*Book, error) {
	return New(store, schema.StorageKey(), schema.Mode())
}

func (b *Book) Key() string     { return b.key }
func (b *Book) Mode() form.Mode { return b.mode }

// Save stores the record according to the book's mode.
func (b *Book) Save(ctx context.Context, rec form.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mode == form.ModeOverwrite {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("records: encode record: %w", err)
		}
		return b.store.Set(ctx, b.key, string(data))
	}

	return kvstore.Update(ctx, b.store, b.key, func(current string, found bool) (string, error) {
		var list []form.Record
		if found {
			var err error
			if list, err = decode([]byte(current)); err != nil {
				return "", err
			}
		}
		list = append(list, rec)

		data, err := json.Marshal(list)
		if err != nil {
			return "", fmt.Errorf("records: encode records: %w", err)
		}
		return string(data), nil
	})
}

// List returns the saved records in the order they were saved. An empty key
// yields an empty list.
func (b *Book) List(ctx context.Context) ([]form.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.list(ctx)
}

// Latest returns the most recently saved record.
func (b *Book) Latest(ctx context.Context) (form.Record, error) {
	list, err := b.List(ctx)
	if err != nil {
		return form.Record{}, err
	}
	if len(list) == 0 {
		return form.Record{}, ErrNoRecords
	}
	return list[len(list)-1], nil
}

// Clear removes everything stored under the key.
func (b *Book) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.store.Delete(ctx, b.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	return err
}

func (b *Book) list(ctx context.Context) ([]form.Record, error) {
	raw, err := b.store.Get(ctx, b.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode([]byte(raw))
}

// decode accepts either a single record or an array of records, so a key
// written in one mode can still be read after the form switches modes.
func decode(data []byte) ([]form.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	switch data[0] {
	case '{':
		var rec form.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, errors.Join(ErrCorruptData, err)
		}
		return []form.Record{rec}, nil
	case '[':
		var list []form.Record
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, errors.Join(ErrCorruptData, err)
		}
		return list, nil
	default:
		return nil, ErrCorruptData
	}
}
