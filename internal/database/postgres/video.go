package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

const videoColumns = `id, owner_id, video_file, video_file_id, thumbnail, thumbnail_id,
	title, description, duration, views, is_published, created_at, updated_at`

// VideoRepository implements the video repository for PostgreSQL
type VideoRepository struct {
	db *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{db: db}
}

func scanVideo(row pgx.Row) (*domain.Video, error) {
	var v domain.Video
	err := row.Scan(&v.ID, &v.OwnerID, &v.VideoFile, &v.VideoFileID, &v.Thumbnail, &v.ThumbnailID,
		&v.Title, &v.Description, &v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVideo inserts a video record
func (r *VideoRepository) CreateVideo(ctx context.Context, v *domain.Video) error {
	if v.ID == "" {
		v.ID = domain.NewID()
	}
	query := `
		INSERT INTO videos (id, owner_id, video_file, video_file_id, thumbnail, thumbnail_id,
			title, description, duration, views, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, v.ID, v.OwnerID, v.VideoFile, v.VideoFileID, v.Thumbnail, v.ThumbnailID,
		v.Title, v.Description, v.Duration, v.IsPublished).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

// GetVideoByID finds a video by id
func (r *VideoRepository) GetVideoByID(ctx context.Context, videoID string) (*domain.Video, error) {
	v, err := scanVideo(r.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, videoID))
	if err != nil {
		return nil, wrapErr(err, domain.ErrVideoNotFound, "failed to get video")
	}
	return v, nil
}

// VideoExists reports whether the video exists
func (r *VideoRepository) VideoExists(ctx context.Context, videoID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM videos WHERE id = $1)`, videoID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check video: %w", err)
	}
	return exists, nil
}

// UpdateVideo writes the mutable fields of v
func (r *VideoRepository) UpdateVideo(ctx context.Context, v *domain.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail = $4, thumbnail_id = $5, is_published = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, v.ID, v.Title, v.Description, v.Thumbnail, v.ThumbnailID, v.IsPublished).Scan(&v.UpdatedAt)
	if err != nil {
		return wrapErr(err, domain.ErrVideoNotFound, "failed to update video")
	}
	return nil
}

// DeleteVideo removes the video record
func (r *VideoRepository) DeleteVideo(ctx context.Context, videoID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, videoID)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// IncrementViews adds one view to the video
func (r *VideoRepository) IncrementViews(ctx context.Context, videoID string) error {
	if _, err := r.db.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, videoID); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
