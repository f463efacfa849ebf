package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/semmidev/pgvault/internal/config"
	"github.com/semmidev/pgvault/internal/domain"
)

type S3Sink struct {
	client   *s3.Client
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

// NewS3 creates an S3-backed sink using AWS SDK v2.
func NewS3(cfg *appconfig.StorageConfig) (*S3Sink, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	uploader := s3manager.NewUploader(client)

	return &S3Sink{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
	}, nil
}

// Put uploads an artifact body under the given key, carrying its
// content type and custom metadata fields.
func (s *S3Sink) Put(ctx context.Context, key string, body []byte, meta domain.Metadata) error {
	fullKey := path.Join(s.prefix, key)

	input := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &fullKey,
		Body:   bytes.NewReader(body),
	}
	if meta.ContentType != "" {
		input.ContentType = &meta.ContentType
	}
	if len(meta.Fields) > 0 {
		input.Metadata = meta.Fields
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return &domain.StorageError{Op: "put", Cause: fmt.Errorf("upload to s3: %w", err)}
	}

	return nil
}

// List returns up to limit keys starting with the given prefix,
// relative to the sink's configured key prefix.
func (s *S3Sink) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	fullPrefix := path.Join(s.prefix, prefix)
	maxKeys := int32(limit)

	resp, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  &s.bucket,
		Prefix:  &fullPrefix,
		MaxKeys: &maxKeys,
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Cause: fmt.Errorf("list s3 objects: %w", err)}
	}

	files := make([]string, 0, len(resp.Contents))
	for _, obj := range resp.Contents {
		name := strings.TrimPrefix(strings.TrimPrefix(*obj.Key, s.prefix), "/")
		if name != "" {
			files = append(files, name)
		}
	}

	return files, nil
}
