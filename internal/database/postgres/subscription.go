package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// SubscriptionRepository implements the subscription repository for PostgreSQL
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// DeleteSubscription removes the edge and reports whether one existed
func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertSubscription creates the edge; a concurrent duplicate reports false without error
func (r *SubscriptionRepository) InsertSubscription(ctx context.Context, sub *domain.Subscription) (bool, error) {
	if sub.ID == "" {
		sub.ID = domain.NewID()
	}
	query := `
		INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, sub.ID, sub.SubscriberID, sub.ChannelID)
	if err != nil {
		return false, fmt.Errorf("failed to insert subscription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
