package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

const tweetColumns = `id, owner_id, content, created_at, updated_at`

// TweetRepository implements the tweet repository for PostgreSQL
type TweetRepository struct {
	db *pgxpool.Pool
}

// NewTweetRepository creates a new TweetRepository
func NewTweetRepository(db *pgxpool.Pool) *TweetRepository {
	return &TweetRepository{db: db}
}

func scanTweet(row pgx.Row) (*domain.Tweet, error) {
	var t domain.Tweet
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTweet inserts a tweet
func (r *TweetRepository) CreateTweet(ctx context.Context, t *domain.Tweet) error {
	if t.ID == "" {
		t.ID = domain.NewID()
	}
	query := `
		INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRow(ctx, query, t.ID, t.OwnerID, t.Content).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert tweet: %w", err)
	}
	return nil
}

// GetTweetByID finds a tweet by id
func (r *TweetRepository) GetTweetByID(ctx context.Context, tweetID string) (*domain.Tweet, error) {
	t, err := scanTweet(r.db.QueryRow(ctx, `SELECT `+tweetColumns+` FROM tweets WHERE id = $1`, tweetID))
	if err != nil {
		return nil, wrapErr(err, domain.ErrTweetNotFound, "failed to get tweet")
	}
	return t, nil
}

// TweetExists reports whether the tweet exists
func (r *TweetRepository) TweetExists(ctx context.Context, tweetID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tweets WHERE id = $1)`, tweetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check tweet: %w", err)
	}
	return exists, nil
}

// UpdateTweetContent replaces the tweet text
func (r *TweetRepository) UpdateTweetContent(ctx context.Context, tweetID, content string) (*domain.Tweet, error) {
	query := `UPDATE tweets SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + tweetColumns
	t, err := scanTweet(r.db.QueryRow(ctx, query, tweetID, content))
	if err != nil {
		return nil, wrapErr(err, domain.ErrTweetNotFound, "failed to update tweet")
	}
	return t, nil
}

// DeleteTweet removes the tweet
func (r *TweetRepository) DeleteTweet(ctx context.Context, tweetID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, tweetID)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTweetNotFound
	}
	return nil
}
