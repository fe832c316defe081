package upload

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/zinc-sig/specter/internal/settings"
)

// MinioProvider uploads artifacts to MinIO or any S3 compatible store
type MinioProvider struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioProvider creates an unconfigured MinioProvider
func NewMinioProvider() *MinioProvider {
	return &MinioProvider{}
}

// Name returns the provider name
func (m *MinioProvider) Name() string {
	return "minio"
}

// Configure creates the client and checks that the bucket exists.
// Required keys: endpoint, access_key, secret_key, bucket.
// Optional keys: secure (default true), region (default us-east-1), prefix.
func (m *MinioProvider) Configure(ctx context.Context, config map[string]any) error {
	required := map[string]string{}
	for _, key := range []string{"endpoint", "access_key", "secret_key", "bucket"} {
		val, ok := settings.String(config, key)
		if !ok {
			return fmt.Errorf("minio: %s is required", key)
		}
		required[key] = val
	}

	client, err := minio.New(required["endpoint"], &minio.Options{
		Creds:  credentials.NewStaticV4(required["access_key"], required["secret_key"], ""),
		Secure: settings.Bool(config, "secure", true),
		Region: settings.StringOr(config, "region", "us-east-1"),
	})
	if err != nil {
		return fmt.Errorf("minio: failed to create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, required["bucket"])
	if err != nil {
		return fmt.Errorf("minio: failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("minio: bucket %s does not exist", required["bucket"])
	}

	m.client = client
	m.bucket = required["bucket"]
	m.prefix = settings.StringOr(config, "prefix", "")
	return nil
}

// Upload streams reader to the bucket under the configured prefix
func (m *MinioProvider) Upload(ctx context.Context, reader io.Reader, remotePath, contentType string) error {
	if m.client == nil {
		return fmt.Errorf("minio: provider not configured")
	}

	objectName := remotePath
	if m.prefix != "" {
		objectName = path.Join(m.prefix, remotePath)
	}

	// size -1 lets the client stream with multipart upload
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio: failed to upload to %s: %w", objectName, err)
	}
	return nil
}
