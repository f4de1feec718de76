// Package mongo provides a MongoDB-backed kvstore driver.
//
// New connects with the pool settings from Config and retries until the
// server answers a ping. Store keeps one document per key:
//
//	{ "_id": "techSummitUser", "value": "{...}", "updated_at": ISODate(...) }
//
// Importing the package registers the "mongo" driver:
//
//	import _ "github.com/dmitrymomot/formkit/pkg/mongo"
//
// Healthcheck returns a probe suitable for readiness endpoints.
package mongo
