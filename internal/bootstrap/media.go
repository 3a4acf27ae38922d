package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tubehub/tubehub-api/internal/config"
	"github.com/tubehub/tubehub-api/internal/media"
)

// InitializeMediaStore connects to the object store, makes sure the bucket
// exists and wraps the store in the timeout and circuit breaker guard.
func InitializeMediaStore(ctx context.Context, cfg *config.Config) (media.Store, error) {
	minioCfg := media.MinioConfig{
		Endpoint:  cfg.MediaEndpoint,
		AccessKey: cfg.MediaAccessKey,
		SecretKey: cfg.MediaSecretKey,
		Bucket:    cfg.MediaBucket,
		UseSSL:    cfg.MediaUseSSL,
		PublicURL: cfg.MediaPublicURL,
	}

	client, err := media.NewMinioClient(minioCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMediaClientFailed, err)
	}

	store := media.NewMinioStore(client, minioCfg, media.NewFFProbe(cfg.FFProbeTimeout))

	bucketCtx, cancel := context.WithTimeout(ctx, cfg.MediaTimeout)
	defer cancel()
	if err := store.EnsureBucket(bucketCtx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBucketFailed, err)
	}

	slog.Info(LogMsgMediaStoreReady, "endpoint", cfg.MediaEndpoint, "bucket", cfg.MediaBucket)
	return media.NewGuardedStore(store, cfg.MediaTimeout), nil
}
