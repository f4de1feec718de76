// Package bucket provides an S3-backed kvstore driver.
//
// Every key is stored as one object named KeyPrefix+key in the configured
// bucket. Works with Amazon S3 and S3-compatible services (set S3_ENDPOINT and
// S3_FORCE_PATH_STYLE for MinIO). Importing the package registers the "s3"
// driver:
//
//	import _ "github.com/dmitrymomot/formkit/pkg/bucket"
//
// A missing object surfaces as kvstore.ErrNotFound; other S3 failures are
// classified into the sentinels in errors.go.
package bucket
