// Package playlist implements playlist mutations.
// Playlist names are unique across all users.
package playlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/repository"
)

// Service defines playlist mutations
type Service interface {
	Create(ctx context.Context, identity *domain.Identity, name, description string) (*domain.Playlist, error)
	Update(ctx context.Context, identity *domain.Identity, playlistID, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, identity *domain.Identity, playlistID string) error
	AddVideo(ctx context.Context, identity *domain.Identity, playlistID, videoID string) (*domain.Playlist, error)
	// RemoveVideo drops every occurrence of the video.
	RemoveVideo(ctx context.Context, identity *domain.Identity, playlistID, videoID string) (*domain.Playlist, error)
}

// VideoRepository defines the video lookup needed to add or remove videos
type VideoRepository interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
}

type service struct {
	repo   repository.Playlist
	videos VideoRepository
}

// NewService creates a new playlist service
func NewService(repo repository.Playlist, videos VideoRepository) Service {
	return &service{repo: repo, videos: videos}
}

func normalizeFields(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return "", "", domain.ErrPlaylistFieldsMissing
	}
	return name, description, nil
}

func (s *service) Create(ctx context.Context, identity *domain.Identity, name, description string) (*domain.Playlist, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	name, description, err := normalizeFields(name, description)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.PlaylistNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrPlaylistExists
	}

	p := &domain.Playlist{
		ID:          domain.NewID(),
		OwnerID:     identity.ID,
		Name:        name,
		Description: description,
		VideoIDs:    []string{},
	}
	// The unique index still catches a concurrent create with the same name
	if err := s.repo.CreatePlaylist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, identity *domain.Identity, playlistID, name, description string) (*domain.Playlist, error) {
	if err := domain.ValidateID(playlistID); err != nil {
		return nil, err
	}
	name, description, err := normalizeFields(name, description)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, identity, playlistID); err != nil {
		return nil, err
	}
	return s.repo.UpdatePlaylist(ctx, playlistID, name, description)
}

func (s *service) Delete(ctx context.Context, identity *domain.Identity, playlistID string) error {
	if err := domain.ValidateID(playlistID); err != nil {
		return err
	}
	if _, err := s.owned(ctx, identity, playlistID); err != nil {
		return err
	}
	return s.repo.DeletePlaylist(ctx, playlistID)
}

func (s *service) AddVideo(ctx context.Context, identity *domain.Identity, playlistID, videoID string) (*domain.Playlist, error) {
	if err := s.membershipPreconditions(ctx, identity, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.repo.AppendVideo(ctx, playlistID, videoID)
}

func (s *service) RemoveVideo(ctx context.Context, identity *domain.Identity, playlistID, videoID string) (*domain.Playlist, error) {
	if err := s.membershipPreconditions(ctx, identity, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.repo.RemoveVideo(ctx, playlistID, videoID)
}

// membershipPreconditions validates both ids, checks both entities exist and
// that identity owns the playlist.
func (s *service) membershipPreconditions(ctx context.Context, identity *domain.Identity, playlistID, videoID string) error {
	if err := domain.ValidateID(playlistID); err != nil {
		return err
	}
	if err := domain.ValidateID(videoID); err != nil {
		return err
	}
	if _, err := s.owned(ctx, identity, playlistID); err != nil {
		return err
	}

	exists, err := s.videos.VideoExists(ctx, videoID)
	if err != nil {
		return fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (s *service) owned(ctx context.Context, identity *domain.Identity, playlistID string) (*domain.Playlist, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	p, err := s.repo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwner(identity, p); err != nil {
		return nil, err
	}
	return p, nil
}
