package mongo

import "errors"

var (
	ErrEmptyURL = errors.New("mongo: empty MONGODB_URL")
	// ErrConnect is returned by Connect when the client cannot be created or
	// never answered a ping.
	ErrConnect         = errors.New("mongo: connect failed")
	ErrUnhealthy       = errors.New("mongo: healthcheck failed")
	ErrOperationFailed = errors.New("mongo: record operation failed")
	// ErrUpdateConflict is returned by Store.Update when the key kept
	// changing under every retry.
	ErrUpdateConflict = errors.New("mongo: update conflict")
)
