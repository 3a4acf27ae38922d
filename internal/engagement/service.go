// Package engagement toggles likes and channel subscriptions.
//
// Both toggles are delete-first: a delete that removed a row turns the
// toggle off, otherwise an insert turns it on. The store's unique index
// decides concurrent duplicates, so an insert that lost the race still
// reports the toggle as on.
package engagement

import (
	"context"
	"fmt"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
	"github.com/tubehub/tubehub-api/internal/metrics"
	"github.com/tubehub/tubehub-api/internal/repository"
)

// Service defines the toggle operations
type Service interface {
	ToggleLike(ctx context.Context, identity *domain.Identity, target domain.Target) (domain.ToggleResult, error)
	ToggleSubscription(ctx context.Context, identity *domain.Identity, channelID string) (domain.ToggleResult, error)
}

// UserRepository defines the user lookup needed to validate channels
type UserRepository interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

type service struct {
	likes         repository.Like
	subscriptions repository.Subscription
	users         UserRepository
}

// NewService creates a new engagement service
func NewService(likes repository.Like, subscriptions repository.Subscription, users UserRepository) Service {
	return &service{
		likes:         likes,
		subscriptions: subscriptions,
		users:         users,
	}
}

func (s *service) ToggleLike(ctx context.Context, identity *domain.Identity, target domain.Target) (domain.ToggleResult, error) {
	if identity == nil {
		return domain.ToggleResult{}, domain.ErrMissingIdentity
	}
	if !target.Kind.Valid() {
		return domain.ToggleResult{}, domain.ErrInvalidTargetKind
	}
	if err := domain.ValidateID(target.ID); err != nil {
		return domain.ToggleResult{}, err
	}

	exists, err := s.likes.TargetExists(ctx, target)
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("failed to check like target: %w", err)
	}
	if !exists {
		return domain.ToggleResult{}, targetNotFound(target.Kind)
	}

	removed, err := s.likes.DeleteLike(ctx, identity.ID, target)
	if err != nil {
		return domain.ToggleResult{}, err
	}

	result := domain.ToggleResult{Active: !removed}
	if !removed {
		inserted, err := s.likes.InsertLike(ctx, &domain.Like{LikedBy: identity.ID, Target: target})
		if err != nil {
			return domain.ToggleResult{}, err
		}
		if !inserted {
			logger.FromContext(ctx).Debug(LogMsgConcurrentLike,
				logger.AttrKeyUserID, identity.ID, "kind", target.Kind, "target_id", target.ID)
		}
	}

	metrics.LikesToggled.WithLabelValues(string(target.Kind), metrics.ToggleState(result.Active)).Inc()
	return result, nil
}

func (s *service) ToggleSubscription(ctx context.Context, identity *domain.Identity, channelID string) (domain.ToggleResult, error) {
	if identity == nil {
		return domain.ToggleResult{}, domain.ErrMissingIdentity
	}
	if err := domain.ValidateID(channelID); err != nil {
		return domain.ToggleResult{}, err
	}

	exists, err := s.users.UserExists(ctx, channelID)
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("failed to check channel: %w", err)
	}
	if !exists {
		return domain.ToggleResult{}, domain.ErrChannelNotFound
	}

	removed, err := s.subscriptions.DeleteSubscription(ctx, identity.ID, channelID)
	if err != nil {
		return domain.ToggleResult{}, err
	}

	result := domain.ToggleResult{Active: !removed}
	if !removed {
		inserted, err := s.subscriptions.InsertSubscription(ctx, &domain.Subscription{
			SubscriberID: identity.ID,
			ChannelID:    channelID,
		})
		if err != nil {
			return domain.ToggleResult{}, err
		}
		if !inserted {
			logger.FromContext(ctx).Debug(LogMsgConcurrentSubscription,
				logger.AttrKeyUserID, identity.ID, "channel_id", channelID)
		}
	}

	metrics.SubscriptionsToggled.WithLabelValues(metrics.ToggleState(result.Active)).Inc()
	return result, nil
}

func targetNotFound(kind domain.TargetKind) error {
	switch kind {
	case domain.TargetComment:
		return domain.ErrCommentNotFound
	case domain.TargetTweet:
		return domain.ErrTweetNotFound
	default:
		return domain.ErrVideoNotFound
	}
}
