package media

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// ObjectClient is the subset of *minio.Client used by MinioStore
type ObjectClient interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

// MinioConfig holds connection settings for the object store
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base used for asset URLs; defaults to the endpoint.
	PublicURL string
}

// MinioStore implements Store on top of minio-go
type MinioStore struct {
	client    ObjectClient
	bucket    string
	publicURL string
	prober    Prober
}

// NewMinioClient connects to the configured endpoint with static credentials
func NewMinioClient(cfg MinioConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media client: %w", err)
	}
	return client, nil
}

// NewMinioStore creates a store writing to cfg.Bucket. prober may be nil.
func NewMinioStore(client ObjectClient, cfg MinioConfig, prober Prober) *MinioStore {
	base := cfg.PublicURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}
	return &MinioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(base, "/"),
		prober:    prober,
	}
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", s.bucket, err)
	}
	slog.Default().Info(LogMsgBucketCreated, "bucket", s.bucket)
	return nil
}

// Upload puts the file under a fresh object key and probes videos for their duration
func (s *MinioStore) Upload(ctx context.Context, path string) (*Asset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	contentType := contentTypeFor(ext)

	key := domain.NewID() + ext
	if _, err := s.client.FPutObject(ctx, s.bucket, key, path, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, fmt.Errorf("failed to put object %s: %w", key, err)
	}

	asset := &Asset{
		URL: s.publicURL + "/" + s.bucket + "/" + key,
		ID:  key,
	}
	if s.prober != nil && strings.HasPrefix(contentType, videoContentPrefix) {
		d, err := s.prober.Duration(ctx, path)
		if err != nil {
			slog.Default().Warn(LogMsgProbeFailed, "object", key, "error", err)
		} else {
			asset.Duration = d
		}
	}
	return asset, nil
}

// Delete removes the object. Removing a missing object is not an error.
func (s *MinioStore) Delete(ctx context.Context, id string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", id, err)
	}
	return nil
}

func contentTypeFor(ext string) string {
	if ct, ok := videoContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return defaultContentType
}
