package bucket

// Config holds S3 settings. Endpoint and ForcePathStyle are for S3-compatible
// services such as MinIO.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	KeyPrefix      string `env:"S3_KEY_PREFIX" envDefault:"records/"`
}
