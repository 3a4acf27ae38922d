package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

const playlistColumns = `id, owner_id, name, description, video_ids::text[], created_at, updated_at`

// PlaylistRepository implements the playlist repository for PostgreSQL
type PlaylistRepository struct {
	db *pgxpool.Pool
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *pgxpool.Pool) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func scanPlaylist(row pgx.Row) (*domain.Playlist, error) {
	var p domain.Playlist
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.VideoIDs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.VideoIDs = nonNil(p.VideoIDs)
	return &p, nil
}

// CreatePlaylist inserts an empty playlist
func (r *PlaylistRepository) CreatePlaylist(ctx context.Context, p *domain.Playlist) error {
	if p.ID == "" {
		p.ID = domain.NewID()
	}
	query := `
		INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRow(ctx, query, p.ID, p.OwnerID, p.Name, p.Description).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err, ConstraintPlaylistsName) {
			return domain.ErrPlaylistExists
		}
		return fmt.Errorf("failed to insert playlist: %w", err)
	}
	p.VideoIDs = []string{}
	return nil
}

// GetPlaylistByID finds a playlist by id
func (r *PlaylistRepository) GetPlaylistByID(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	p, err := scanPlaylist(r.db.QueryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, playlistID))
	if err != nil {
		return nil, wrapErr(err, domain.ErrPlaylistNotFound, "failed to get playlist")
	}
	return p, nil
}

// PlaylistNameExists reports whether any owner already uses name
func (r *PlaylistRepository) PlaylistNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM playlists WHERE name = $1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check playlist name: %w", err)
	}
	return exists, nil
}

// UpdatePlaylist sets name and description
func (r *PlaylistRepository) UpdatePlaylist(ctx context.Context, playlistID, name, description string) (*domain.Playlist, error) {
	query := `
		UPDATE playlists SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + playlistColumns
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, playlistID, name, description))
	if err != nil {
		if isUniqueViolation(err, ConstraintPlaylistsName) {
			return nil, domain.ErrPlaylistExists
		}
		return nil, wrapErr(err, domain.ErrPlaylistNotFound, "failed to update playlist")
	}
	return p, nil
}

// DeletePlaylist removes the playlist
func (r *PlaylistRepository) DeletePlaylist(ctx context.Context, playlistID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

// AppendVideo adds videoID to the end of the playlist. Duplicates are kept.
func (r *PlaylistRepository) AppendVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error) {
	query := `
		UPDATE playlists SET video_ids = array_append(video_ids, $2::uuid), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + playlistColumns
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, playlistID, videoID))
	if err != nil {
		return nil, wrapErr(err, domain.ErrPlaylistNotFound, "failed to add video to playlist")
	}
	return p, nil
}

// RemoveVideo drops every occurrence of videoID. A non-member returns domain.ErrVideoNotInPlaylist.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error) {
	query := `
		UPDATE playlists SET video_ids = array_remove(video_ids, $2::uuid), updated_at = NOW()
		WHERE id = $1 AND $2::uuid = ANY(video_ids)
		RETURNING ` + playlistColumns
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, playlistID, videoID))
	if err != nil {
		return nil, wrapErr(err, domain.ErrVideoNotInPlaylist, "failed to remove video from playlist")
	}
	return p, nil
}
