// Package comment implements comment mutations with ownership checks.
package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/repository"
)

// Service defines comment mutations
type Service interface {
	Create(ctx context.Context, identity *domain.Identity, videoID, content string) (*domain.Comment, error)
	Update(ctx context.Context, identity *domain.Identity, commentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, identity *domain.Identity, commentID string) error
}

// VideoRepository defines the video lookup needed for new comments
type VideoRepository interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
}

type service struct {
	repo   repository.Comment
	videos VideoRepository
}

// NewService creates a new comment service
func NewService(repo repository.Comment, videos VideoRepository) Service {
	return &service{repo: repo, videos: videos}
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrContentRequired
	}
	return content, nil
}

func (s *service) Create(ctx context.Context, identity *domain.Identity, videoID, content string) (*domain.Comment, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	if err := domain.ValidateID(videoID); err != nil {
		return nil, err
	}
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	exists, err := s.videos.VideoExists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return nil, domain.ErrVideoNotFound
	}

	c := &domain.Comment{
		ID:      domain.NewID(),
		VideoID: videoID,
		OwnerID: identity.ID,
		Content: content,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, identity *domain.Identity, commentID, content string) (*domain.Comment, error) {
	if err := domain.ValidateID(commentID); err != nil {
		return nil, err
	}
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, identity, commentID); err != nil {
		return nil, err
	}
	return s.repo.UpdateCommentContent(ctx, commentID, content)
}

func (s *service) Delete(ctx context.Context, identity *domain.Identity, commentID string) error {
	if err := domain.ValidateID(commentID); err != nil {
		return err
	}
	if _, err := s.owned(ctx, identity, commentID); err != nil {
		return err
	}
	return s.repo.DeleteComment(ctx, commentID)
}

func (s *service) owned(ctx context.Context, identity *domain.Identity, commentID string) (*domain.Comment, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	c, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwner(identity, c); err != nil {
		return nil, err
	}
	return c, nil
}
