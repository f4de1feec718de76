// Package kvstore defines the string key-value store that accepted form
// records and visitor preferences are persisted to.
//
// MemoryStore is built in. Other backends live in their own packages and
// register a driver from init:
//
//	import _ "github.com/dmitrymomot/formkit/pkg/redis"
//
//	store, err := kvstore.Open(ctx, kvstore.Config{Driver: "redis"}, log)
//
// Prefixed gives each visitor an isolated namespace on top of a shared store.
//
// Update is the read-modify-write primitive. Stores that implement Updater
// (memory, Redis, Postgres, Mongo, S3) apply it atomically.
package kvstore
