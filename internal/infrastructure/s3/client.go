package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/config"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

// NewClient builds a path-style client so MinIO and other S3-compatible stores work.
func NewClient(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	// Without static keys the default chain (env, shared config, IAM role) applies.
	if cfg.S3AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.S3Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// API is the part of *s3.Client the blob store uses.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// BlobStore writes feedback images into one bucket.
type BlobStore struct {
	api    API
	bucket string
}

func NewBlobStore(api API, bucket string) *BlobStore {
	return &BlobStore{api: api, bucket: bucket}
}

// Put uploads body under key. size may be -1 when unknown.
func (b *BlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := b.api.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s/%s: %w", b.bucket, key, err)
	}
	return nil
}

// EnsureBucket creates the bucket, treating "already exists" (409) as success.
func (b *BlobStore) EnsureBucket(ctx context.Context) error {
	_, err := b.api.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(b.bucket)})
	if err == nil {
		return nil
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 409 {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Info(ctx, "bucket already exists", zap.String("bucket", b.bucket))
		}
		return nil
	}
	return fmt.Errorf("create bucket %s: %w", b.bucket, err)
}
