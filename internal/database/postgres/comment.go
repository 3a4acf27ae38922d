package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

const commentColumns = `id, video_id, owner_id, content, created_at, updated_at`

// CommentRepository implements the comment repository for PostgreSQL
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComment inserts a comment
func (r *CommentRepository) CreateComment(ctx context.Context, c *domain.Comment) error {
	if c.ID == "" {
		c.ID = domain.NewID()
	}
	query := `
		INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRow(ctx, query, c.ID, c.VideoID, c.OwnerID, c.Content).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetCommentByID finds a comment by id
func (r *CommentRepository) GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, commentID))
	if err != nil {
		return nil, wrapErr(err, domain.ErrCommentNotFound, "failed to get comment")
	}
	return c, nil
}

// CommentExists reports whether the comment exists
func (r *CommentRepository) CommentExists(ctx context.Context, commentID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`, commentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check comment: %w", err)
	}
	return exists, nil
}

// UpdateCommentContent replaces the comment text
func (r *CommentRepository) UpdateCommentContent(ctx context.Context, commentID, content string) (*domain.Comment, error) {
	query := `UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + commentColumns
	c, err := scanComment(r.db.QueryRow(ctx, query, commentID, content))
	if err != nil {
		return nil, wrapErr(err, domain.ErrCommentNotFound, "failed to update comment")
	}
	return c, nil
}

// DeleteComment removes the comment
func (r *CommentRepository) DeleteComment(ctx context.Context, commentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
