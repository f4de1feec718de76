package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrEmptyURL   = errors.New("pg: empty PG_CONN_URL")
	ErrInvalidURL = errors.New("pg: invalid connection URL")
	ErrConnect    = errors.New("pg: connect failed")
	ErrUnhealthy  = errors.New("pg: healthcheck failed")
	ErrMigrate    = errors.New("pg: migrations failed")
	// ErrQueryFailed wraps driver errors from record reads and writes.
	ErrQueryFailed = errors.New("pg: query failed")
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
