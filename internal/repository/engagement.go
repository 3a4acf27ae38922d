package repository

import (
	"context"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// Like defines the interface for like persistence.
// Uniqueness of (liked_by, target) is enforced by the store.
type Like interface {
	// DeleteLike removes the like and reports whether one existed.
	DeleteLike(ctx context.Context, userID string, target domain.Target) (bool, error)
	// InsertLike creates the like; a concurrent duplicate is a no-op and reports false.
	InsertLike(ctx context.Context, like *domain.Like) (bool, error)
	// TargetExists checks the video, comment or tweet behind target.
	TargetExists(ctx context.Context, target domain.Target) (bool, error)
}

// Subscription defines the interface for subscription persistence.
// Uniqueness of (subscriber, channel) is enforced by the store.
type Subscription interface {
	DeleteSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)
	InsertSubscription(ctx context.Context, sub *domain.Subscription) (bool, error)
}
