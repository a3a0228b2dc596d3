package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
)

const objectPrefix = "properties"

const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

// Options configures the MinIO backed image store.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base that browsers use to reach the bucket. When empty
	// the client endpoint is used.
	PublicURL string
}

// S3Storage stores property and query images in an S3 compatible bucket.
type S3Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
	logger     *logger.Logger
}

// NewS3Storage connects to MinIO and makes sure the bucket exists and is
// publicly readable.
func NewS3Storage(ctx context.Context, opts Options, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing S3 MinIO Storage",
		zap.String("endpoint", opts.Endpoint),
		zap.String("bucket", opts.Bucket),
		zap.Bool("use_ssl", opts.UseSSL))

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", opts.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", opts.Bucket, err)
		}
		log.Info("S3Storage: bucket created", zap.String("bucket", opts.Bucket))
	}
	if err := client.SetBucketPolicy(ctx, opts.Bucket, fmt.Sprintf(publicReadPolicy, opts.Bucket)); err != nil {
		log.Warn("S3Storage: could not set public read policy", zap.String("bucket", opts.Bucket), zap.Error(err))
	}

	base := opts.PublicURL
	if base == "" {
		base = client.EndpointURL().String()
	}
	return newS3Storage(client, opts.Bucket, base, log), nil
}

func newS3Storage(client *minio.Client, bucket, publicBase string, log *logger.Logger) *S3Storage {
	return &S3Storage{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		logger:     log.Named("S3Storage"),
	}
}

// Upload stores the body under a random key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error) {
	key := newObjectKey(name)

	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-filename": path.Base(name)},
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}
	s.logger.Debug("Image uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return s.objectURL(key), nil
}

// Delete removes the object behind url. URLs that do not point into this
// bucket are left alone.
func (s *S3Storage) Delete(ctx context.Context, rawURL string) error {
	key, ok := s.objectKey(rawURL)
	if !ok {
		s.logger.Debug("Skipping delete of foreign image URL", zap.String("url", rawURL))
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) objectURL(key string) string {
	return s.publicBase + "/" + s.bucket + "/" + key
}

func (s *S3Storage) objectKey(rawURL string) (string, bool) {
	prefix := s.publicBase + "/" + s.bucket + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || key == "" || strings.Contains(key, "..") {
		return "", false
	}
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	return key, key != ""
}

func newObjectKey(name string) string {
	ext := strings.ToLower(path.Ext(path.Base(name)))
	if len(ext) > 6 {
		ext = ""
	}
	return fmt.Sprintf("%s/%s%s", objectPrefix, uuid.New().String(), ext)
}
