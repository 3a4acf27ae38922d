// Package video publishes, updates and deletes videos and their remote assets.
package video

import (
	"context"
	"errors"
	"strings"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
	"github.com/tubehub/tubehub-api/internal/media"
	"github.com/tubehub/tubehub-api/internal/repository"
)

// Service defines video operations
type Service interface {
	Publish(ctx context.Context, identity *domain.Identity, in PublishInput) (*domain.Video, error)
	// Get counts a view and records it in the viewer's watch history.
	// Unpublished videos are only visible to their owner.
	Get(ctx context.Context, videoID string, viewer *domain.Identity) (*domain.Video, error)
	Update(ctx context.Context, identity *domain.Identity, videoID string, in UpdateInput) (*domain.Video, error)
	// Delete removes both remote assets before the record. Any remote failure
	// aborts the delete and leaves the record in place.
	Delete(ctx context.Context, identity *domain.Identity, videoID string) error
	TogglePublish(ctx context.Context, identity *domain.Identity, videoID string) (*domain.Video, error)
}

// PublishInput carries the staged upload paths
type PublishInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateInput changes only the fields that are set
type UpdateInput struct {
	Title         *string
	Description   *string
	ThumbnailPath string
}

// WatchHistory records watched videos
type WatchHistory interface {
	AppendWatchHistory(ctx context.Context, userID, videoID string) error
}

// IdentityInvalidator drops a cached identity once its watch history changes
type IdentityInvalidator interface {
	Invalidate(userID string)
}

type service struct {
	repo    repository.Video
	history WatchHistory
	media   media.Store
	cache   IdentityInvalidator
}

// NewService creates a new video service
func NewService(repo repository.Video, history WatchHistory, store media.Store, cache IdentityInvalidator) Service {
	return &service{repo: repo, history: history, media: store, cache: cache}
}

func (s *service) Publish(ctx context.Context, identity *domain.Identity, in PublishInput) (*domain.Video, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, domain.ErrTitleRequired
	}
	if in.VideoPath == "" {
		return nil, domain.ErrVideoFileRequired
	}
	if in.ThumbnailPath == "" {
		return nil, domain.ErrThumbnailRequired
	}

	videoAsset, err := s.media.Upload(ctx, in.VideoPath)
	if err != nil {
		return nil, err
	}
	thumbAsset, err := s.media.Upload(ctx, in.ThumbnailPath)
	if err != nil {
		s.discard(ctx, videoAsset.ID)
		return nil, err
	}

	v := &domain.Video{
		ID:          domain.NewID(),
		OwnerID:     identity.ID,
		VideoFile:   videoAsset.URL,
		VideoFileID: videoAsset.ID,
		Thumbnail:   thumbAsset.URL,
		ThumbnailID: thumbAsset.ID,
		Title:       title,
		Description: description,
		Duration:    videoAsset.Duration,
		IsPublished: true,
	}
	if err := s.repo.CreateVideo(ctx, v); err != nil {
		s.discard(ctx, videoAsset.ID)
		s.discard(ctx, thumbAsset.ID)
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgVideoPublished, logger.AttrKeyUserID, identity.ID, "video_id", v.ID)
	return v, nil
}

func (s *service) Get(ctx context.Context, videoID string, viewer *domain.Identity) (*domain.Video, error) {
	if err := domain.ValidateID(videoID); err != nil {
		return nil, err
	}
	v, err := s.repo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	isOwner := viewer != nil && viewer.ID == v.OwnerID
	if !v.IsPublished && !isOwner {
		return nil, domain.ErrVideoNotFound
	}

	if err := s.repo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	v.Views++

	if viewer != nil {
		if err := s.history.AppendWatchHistory(ctx, viewer.ID, videoID); err != nil {
			return nil, err
		}
		s.cache.Invalidate(viewer.ID)
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, identity *domain.Identity, videoID string, in UpdateInput) (*domain.Video, error) {
	if err := domain.ValidateID(videoID); err != nil {
		return nil, err
	}
	if in.Title == nil && in.Description == nil && in.ThumbnailPath == "" {
		return nil, domain.ErrNothingToUpdate
	}
	v, err := s.owned(ctx, identity, videoID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		v.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, domain.ErrDescriptionRequired
		}
		v.Description = description
	}

	oldThumbnailID := ""
	if in.ThumbnailPath != "" {
		asset, err := s.media.Upload(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, err
		}
		oldThumbnailID = v.ThumbnailID
		v.Thumbnail, v.ThumbnailID = asset.URL, asset.ID
	}

	if err := s.repo.UpdateVideo(ctx, v); err != nil {
		if oldThumbnailID != "" {
			s.discard(ctx, v.ThumbnailID)
		}
		return nil, err
	}
	if oldThumbnailID != "" {
		s.discard(ctx, oldThumbnailID)
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, identity *domain.Identity, videoID string) error {
	if err := domain.ValidateID(videoID); err != nil {
		return err
	}
	v, err := s.owned(ctx, identity, videoID)
	if err != nil {
		return err
	}

	for _, id := range []string{v.VideoFileID, v.ThumbnailID} {
		if id == "" {
			continue
		}
		if err := s.media.Delete(ctx, id); err != nil {
			logger.FromContext(ctx).Error(LogMsgAssetDeleteFailed, "video_id", v.ID, "asset_id", id, "error", err)
			return err
		}
	}

	if err := s.repo.DeleteVideo(ctx, videoID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgVideoDeleted, logger.AttrKeyUserID, identity.ID, "video_id", v.ID)
	return nil
}

func (s *service) TogglePublish(ctx context.Context, identity *domain.Identity, videoID string) (*domain.Video, error) {
	if err := domain.ValidateID(videoID); err != nil {
		return nil, err
	}
	v, err := s.owned(ctx, identity, videoID)
	if err != nil {
		return nil, err
	}
	v.IsPublished = !v.IsPublished
	if err := s.repo.UpdateVideo(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) owned(ctx context.Context, identity *domain.Identity, videoID string) (*domain.Video, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	v, err := s.repo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwner(identity, v); err != nil {
		return nil, err
	}
	return v, nil
}

// discard removes an asset that is no longer referenced. Failures are logged only.
func (s *service) discard(ctx context.Context, assetID string) {
	if err := s.media.Delete(context.WithoutCancel(ctx), assetID); err != nil && !errors.Is(err, context.Canceled) {
		logger.FromContext(ctx).Warn(LogMsgAssetDiscardFailed, "asset_id", assetID, "error", err)
	}
}
