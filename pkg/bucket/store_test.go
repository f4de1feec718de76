package bucket_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/bucket"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

var testConfig = bucket.Config{
	Bucket:    "test-bucket",
	Region:    "us-east-1",
	KeyPrefix: "records/",
}

func newStore(t *testing.T, client *MockS3Client) *bucket.Store {
	t.Helper()
	store, err := bucket.NewStore(context.Background(), testConfig, bucket.WithS3Client(client))
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		_, err := bucket.NewStore(context.Background(), bucket.Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, bucket.ErrInvalidConfig)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		_, err := bucket.NewStore(context.Background(), bucket.Config{Bucket: "b"})
		assert.ErrorIs(t, err, bucket.ErrInvalidConfig)
	})

	t.Run("implements kvstore", func(t *testing.T) {
		t.Parallel()
		var _ kvstore.Store = newStore(t, new(MockS3Client))
	})
}

func TestStore_Get(t *testing.T) {
	t.Parallel()

	t.Run("reads object body", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Bucket) == "test-bucket" && aws.ToString(in.Key) == "records/techSummitUser"
		}), mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(`{"fullName":"Ada"}`)),
		}, nil)

		val, err := newStore(t, client).Get(context.Background(), "techSummitUser")
		require.NoError(t, err)
		assert.Equal(t, `{"fullName":"Ada"}`, val)
		client.AssertExpectations(t)
	})

	t.Run("no such key", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist")})

		_, err := newStore(t, client).Get(context.Background(), "missing")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("generic not found code", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "NotFound", Message: "not found"})

		_, err := newStore(t, client).Get(context.Background(), "missing")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		_, err := newStore(t, client).Get(context.Background(), "key")
		assert.ErrorIs(t, err, bucket.ErrAccessDenied)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		_, err := newStore(t, client).Get(context.Background(), "")
		assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStore_Set(t *testing.T) {
	t.Parallel()

	t.Run("writes object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			r, ok := in.Body.(*strings.Reader)
			if !ok {
				return false
			}
			body := make([]byte, r.Size())
			_, _ = r.ReadAt(body, 0)
			return aws.ToString(in.Key) == "records/dark" &&
				string(body) == "1" &&
				aws.ToInt64(in.ContentLength) == 1
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		require.NoError(t, newStore(t, client).Set(context.Background(), "dark", "1"))
		client.AssertExpectations(t)
	})

	t.Run("context canceled", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.Canceled)

		err := newStore(t, client).Set(context.Background(), "dark", "1")
		assert.ErrorIs(t, err, bucket.ErrOperationCanceled)
	})
}

func objectBody(value, etag string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(value)),
		ETag: aws.String(etag),
	}
}

func appendSuffix(suffix string) kvstore.UpdateFunc {
	return func(current string, _ bool) (string, error) {
		return current + suffix, nil
	}
}

func TestStore_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("new object requires absence", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.IfNoneMatch) == "*" && in.IfMatch == nil
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		require.NoError(t, newStore(t, client).Update(ctx, "enrollments", appendSuffix("a")))
		client.AssertExpectations(t)
	})

	t.Run("retries after a lost race", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(objectBody("a", `"v1"`), nil).Once()
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(objectBody("ab", `"v2"`), nil).Once()
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.IfMatch) == `"v1"`
		}), mock.Anything).Return(nil, &smithy.GenericAPIError{Code: "PreconditionFailed"}).Once()
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			r, ok := in.Body.(*strings.Reader)
			if !ok {
				return false
			}
			body := make([]byte, r.Size())
			_, _ = r.ReadAt(body, 0)
			return aws.ToString(in.IfMatch) == `"v2"` && string(body) == "abc"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil).Once()

		require.NoError(t, newStore(t, client).Update(ctx, "enrollments", appendSuffix("c")))
		client.AssertExpectations(t)
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(objectBody("a", `"v1"`), nil)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "ConditionalRequestConflict"})

		err := newStore(t, client).Update(ctx, "enrollments", appendSuffix("b"))
		assert.ErrorIs(t, err, bucket.ErrUpdateConflict)
		client.AssertNumberOfCalls(t, "PutObject", 5)
	})

	t.Run("read errors are returned", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied"})

		err := newStore(t, client).Update(ctx, "enrollments", appendSuffix("b"))
		assert.ErrorIs(t, err, bucket.ErrAccessDenied)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return aws.ToString(in.Key) == "records/enrollments"
		}), mock.Anything).Return(&s3.DeleteObjectOutput{}, nil)

		require.NoError(t, newStore(t, client).Delete(context.Background(), "enrollments"))
		client.AssertExpectations(t)
	})

	t.Run("missing object is not an error", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})

		assert.NoError(t, newStore(t, client).Delete(context.Background(), "enrollments"))
	})

	t.Run("other errors are returned", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset"))

		err := newStore(t, client).Delete(context.Background(), "enrollments")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete operation failed")
	})
}

func TestStore_Healthcheck(t *testing.T) {
	t.Parallel()

	t.Run("bucket reachable", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadBucket", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil)

		assert.NoError(t, kvstore.Ping(context.Background(), newStore(t, client)))
	})

	t.Run("bucket missing", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadBucket", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchBucket{})

		assert.ErrorIs(t, newStore(t, client).Healthcheck(context.Background()), bucket.ErrBucketNotFound)
	})
}

func TestDriverRegistered(t *testing.T) {
	t.Parallel()
	assert.Contains(t, kvstore.Drivers(), bucket.DriverName)
}
