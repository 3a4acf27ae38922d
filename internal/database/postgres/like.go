package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// LikeRepository implements the like repository for PostgreSQL
type LikeRepository struct {
	db *pgxpool.Pool
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{db: db}
}

// DeleteLike removes the like on target and reports whether one existed
func (r *LikeRepository) DeleteLike(ctx context.Context, userID string, target domain.Target) (bool, error) {
	query := `DELETE FROM likes WHERE liked_by = $1 AND target_kind = $2 AND target_id = $3`
	tag, err := r.db.Exec(ctx, query, userID, string(target.Kind), target.ID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertLike creates the like. A row created concurrently for the same pair wins
// and this call reports false without error.
func (r *LikeRepository) InsertLike(ctx context.Context, like *domain.Like) (bool, error) {
	if like.ID == "" {
		like.ID = domain.NewID()
	}
	query := `
		INSERT INTO likes (id, liked_by, target_kind, target_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (liked_by, target_kind, target_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, like.ID, like.LikedBy, string(like.Target.Kind), like.Target.ID)
	if err != nil {
		return false, fmt.Errorf("failed to insert like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// TargetExists checks the row behind target in its own table
func (r *LikeRepository) TargetExists(ctx context.Context, target domain.Target) (bool, error) {
	var table string
	switch target.Kind {
	case domain.TargetVideo:
		table = "videos"
	case domain.TargetComment:
		table = "comments"
	case domain.TargetTweet:
		table = "tweets"
	default:
		return false, domain.ErrInvalidTargetKind
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, target.ID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like target: %w", err)
	}
	return exists, nil
}
