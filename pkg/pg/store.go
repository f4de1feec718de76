package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

const (
	getQuery    = `SELECT value FROM kv_store WHERE key = $1`
	upsertQuery = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteQuery = `DELETE FROM kv_store WHERE key = $1`
	// Serializes updates of one key, including keys that have no row yet.
	lockKeyQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// DB is the subset of *pgxpool.Pool used by Store.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is a kvstore.Store backed by the kv_store table.
type Store struct {
	db   DB
	pool *pgxpool.Pool
}

// NewStore wraps a pool; the kv_store table must exist (see Migrate).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

// NewStoreWithDB builds a Store over any DB implementation.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", kvstore.ErrEmptyKey
	}
	var value string
	if err := s.db.QueryRow(ctx, getQuery, key).Scan(&value); err != nil {
		if isNoRows(err) {
			return "", kvstore.ErrNotFound
		}
		return "", errors.Join(ErrQueryFailed, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	if _, err := s.db.Exec(ctx, upsertQuery, key, value); err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	if _, err := s.db.Exec(ctx, deleteQuery, key); err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}

// Update runs fn inside a transaction holding an advisory lock on the key.
// A DB that cannot begin transactions gets a plain read then write.
func (s *Store) Update(ctx context.Context, key string, fn kvstore.UpdateFunc) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}

	b, ok := s.db.(beginner)
	if !ok {
		current, err := s.Get(ctx, key)
		found := err == nil
		if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return err
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		return s.Set(ctx, key, next)
	}

	return pgx.BeginFunc(ctx, b, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockKeyQuery, key); err != nil {
			return errors.Join(ErrQueryFailed, err)
		}

		var current string
		found := true
		if err := tx.QueryRow(ctx, getQuery, key).Scan(&current); err != nil {
			if !isNoRows(err) {
				return errors.Join(ErrQueryFailed, err)
			}
			found = false
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, upsertQuery, key, next); err != nil {
			return errors.Join(ErrQueryFailed, err)
		}
		return nil
	})
}

func (s *Store) Healthcheck(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	return nil
}

// Close closes the pool when the store owns one.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
