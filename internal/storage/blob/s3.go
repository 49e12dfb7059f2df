package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mkwon-dev/riderpay/internal/storage"
)

// Ensure S3Store implements storage.BlobStore
var _ storage.BlobStore = (*S3Store)(nil)

// S3Config holds the settings for an S3-compatible object store.
// Endpoint is optional; when set, path-style addressing is used so
// MinIO/Hetzner-style endpoints work.
type S3Config struct {
	KeyID    string
	Secret   string
	Region   string
	Bucket   string
	Endpoint string
}

// S3Store persists blobs in an S3-compatible bucket using the AWS SDK v2.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store creates an S3Store with static credentials.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.KeyID == "" || cfg.Secret == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 config is incomplete")
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.KeyID, cfg.Secret, "",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Store{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}, nil
}

// Put writes data at key, overwriting any existing object.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("put object %q/%q: %w", s.bucket, key, err)
	}
	return nil
}

// Get reads the object at key.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %q/%q: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %q/%q: %w", s.bucket, key, err)
	}
	return data, nil
}
