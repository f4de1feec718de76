// Package pg provides a PostgreSQL-backed kvstore driver built on pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config, retrying with linear back-off
// until the database answers a ping. Migrate applies the embedded goose
// migrations that create the kv_store table. Store implements kvstore.Store
// with an upsert per Set and maps pgx.ErrNoRows to kvstore.ErrNotFound.
//
// Importing the package registers the "postgres" driver:
//
//	import _ "github.com/dmitrymomot/formkit/pkg/pg"
//
//	store, err := kvstore.Open(ctx, kvstore.Config{Driver: "postgres"}, log)
//
// Configuration is read from PG_CONN_URL and the other PG_* variables listed
// on Config. Set PG_AUTO_MIGRATE=false to manage the schema separately.
package pg
