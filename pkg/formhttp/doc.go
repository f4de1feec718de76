// Package formhttp serves form sessions over HTTP.
//
// Every browser is identified by a visitor_id cookie (a uuid, HMAC-signed when
// a cookie secret is configured). Submitted records and the theme preference
// live in a per-visitor namespace of the configured kvstore.Store.
//
// Routes:
//
//	GET    /healthz                       store readiness
//	GET    /forms                         available form names
//	POST   /forms/{form}/sessions         start a session
//	GET    /sessions/{id}                 session state
//	DELETE /sessions/{id}                 discard a session
//	PUT    /sessions/{id}/fields/{field}  set a value: {"value": "..."}
//	POST   /sessions/{id}/submit          submit; 422 lists offending fields
//	GET    /summary/{form}                stored records, HTML or JSON
//	DELETE /summary/{form}                clear stored records
//	GET    /theme                         current theme
//	POST   /theme/toggle                  flip the theme
//
// Requests sent by the datastar client get SSE patches instead of JSON: one
// element patch per changed field error slot (#<field>-error) followed by a
// {"valid": bool} signal patch. An accepted datastar submission is redirected
// to its summary page after Config.RedirectDelay.
//
// Live sessions are held in memory with least-recently-used eviction and an
// idle timeout; calls into one session are serialized.
package formhttp
