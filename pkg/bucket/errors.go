package bucket

import "errors"

var (
	ErrInvalidConfig      = errors.New("bucket: bucket and region are required")
	ErrFailedToLoadConfig = errors.New("bucket: failed to load AWS config")
	ErrBucketNotFound     = errors.New("bucket: bucket not found")
	ErrAccessDenied       = errors.New("bucket: access denied")
	ErrOperationTimeout   = errors.New("bucket: operation timeout")
	ErrOperationCanceled  = errors.New("bucket: operation canceled")
	// ErrUpdateConflict is returned by Store.Update when every conditional
	// write lost to a concurrent writer.
	ErrUpdateConflict = errors.New("bucket: update conflict")
)
