// Package tweet implements tweet mutations.
package tweet

import (
	"context"
	"strings"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/repository"
)

// Service defines tweet mutations
type Service interface {
	Create(ctx context.Context, identity *domain.Identity, content string) (*domain.Tweet, error)
	Update(ctx context.Context, identity *domain.Identity, tweetID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, identity *domain.Identity, tweetID string) error
}

type service struct {
	repo repository.Tweet
}

// NewService creates a new tweet service
func NewService(repo repository.Tweet) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, identity *domain.Identity, content string) (*domain.Tweet, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrContentRequired
	}

	t := &domain.Tweet{ID: domain.NewID(), OwnerID: identity.ID, Content: content}
	if err := s.repo.CreateTweet(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, identity *domain.Identity, tweetID, content string) (*domain.Tweet, error) {
	if err := domain.ValidateID(tweetID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrContentRequired
	}
	if err := s.authorize(ctx, identity, tweetID); err != nil {
		return nil, err
	}
	return s.repo.UpdateTweetContent(ctx, tweetID, content)
}

func (s *service) Delete(ctx context.Context, identity *domain.Identity, tweetID string) error {
	if err := domain.ValidateID(tweetID); err != nil {
		return err
	}
	if err := s.authorize(ctx, identity, tweetID); err != nil {
		return err
	}
	return s.repo.DeleteTweet(ctx, tweetID)
}

func (s *service) authorize(ctx context.Context, identity *domain.Identity, tweetID string) error {
	if identity == nil {
		return domain.ErrMissingIdentity
	}
	t, err := s.repo.GetTweetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	return domain.AssertOwner(identity, t)
}
