// Package projection builds the cross-entity read views: channel profiles,
// watch history, liked videos, channel stats and the paginated lists.
package projection

import (
	"context"
	"fmt"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/repository"
)

// Service defines the read-model operations
type Service interface {
	// ChannelProfile resolves a channel by username. viewer may be nil.
	ChannelProfile(ctx context.Context, username string, viewer *domain.Identity) (*domain.ChannelProfile, error)
	WatchHistory(ctx context.Context, identity *domain.Identity) ([]domain.VideoWithOwner, error)
	LikedVideos(ctx context.Context, identity *domain.Identity) ([]domain.LikedVideo, error)
	VideoComments(ctx context.Context, videoID string, page, limit int) (*domain.CommentPage, error)
	ChannelStats(ctx context.Context, identity *domain.Identity) (*domain.ChannelStats, error)
	// ChannelVideos fails with domain.ErrNoVideos when the channel has none.
	ChannelVideos(ctx context.Context, channelID string) ([]domain.VideoWithOwner, error)
	// ChannelSubscribers and SubscribedChannels return an empty list, not an error, when there are no edges.
	ChannelSubscribers(ctx context.Context, channelID string) ([]domain.OwnerSummary, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.OwnerSummary, error)
	ListVideos(ctx context.Context, q domain.VideoQuery, viewer *domain.Identity) (*domain.VideoPage, error)
	Playlist(ctx context.Context, playlistID string) (*domain.PlaylistView, error)
	// UserPlaylists fails with domain.ErrNoPlaylists when the user has none.
	UserPlaylists(ctx context.Context, userID string) ([]domain.PlaylistView, error)
	// UserTweets fails with domain.ErrNoTweets when the user has none.
	UserTweets(ctx context.Context, userID string) ([]domain.Tweet, error)
}

// UserRepository defines user lookups needed by the projections
type UserRepository interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

// VideoRepository defines video lookups needed by the projections
type VideoRepository interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
}

// PlaylistRepository defines playlist lookups needed by the projections
type PlaylistRepository interface {
	GetPlaylistByID(ctx context.Context, playlistID string) (*domain.Playlist, error)
}

type service struct {
	repo      repository.Projection
	users     UserRepository
	videos    VideoRepository
	playlists PlaylistRepository
}

// NewService creates a new projection service
func NewService(repo repository.Projection, users UserRepository, videos VideoRepository, playlists PlaylistRepository) Service {
	return &service{
		repo:      repo,
		users:     users,
		videos:    videos,
		playlists: playlists,
	}
}

func (s *service) ChannelProfile(ctx context.Context, username string, viewer *domain.Identity) (*domain.ChannelProfile, error) {
	username = domain.FoldIdentifier(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	viewerID := ""
	if viewer != nil {
		viewerID = viewer.ID
	}
	return s.repo.ChannelProfile(ctx, username, viewerID)
}

func (s *service) WatchHistory(ctx context.Context, identity *domain.Identity) ([]domain.VideoWithOwner, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	return s.repo.WatchHistory(ctx, identity.ID)
}

func (s *service) LikedVideos(ctx context.Context, identity *domain.Identity) ([]domain.LikedVideo, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	return s.repo.LikedVideos(ctx, identity.ID)
}

func (s *service) VideoComments(ctx context.Context, videoID string, page, limit int) (*domain.CommentPage, error) {
	if err := domain.ValidateID(videoID); err != nil {
		return nil, err
	}
	if err := s.requireExists(ctx, s.videos.VideoExists, videoID, domain.ErrVideoNotFound); err != nil {
		return nil, err
	}

	page, limit = domain.NormalizePage(page, limit)
	comments, total, err := s.repo.VideoComments(ctx, videoID, limit, domain.Offset(page, limit))
	if err != nil {
		return nil, err
	}
	return &domain.CommentPage{
		Comments:     comments,
		CommentCount: total,
		TotalPages:   domain.TotalPages(total, limit),
		CurrentPage:  page,
	}, nil
}

func (s *service) ChannelStats(ctx context.Context, identity *domain.Identity) (*domain.ChannelStats, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	return s.repo.ChannelStats(ctx, identity.ID)
}

func (s *service) ChannelVideos(ctx context.Context, channelID string) ([]domain.VideoWithOwner, error) {
	if err := domain.ValidateID(channelID); err != nil {
		return nil, err
	}
	videos, err := s.repo.ChannelVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, domain.ErrNoVideos
	}
	return videos, nil
}

func (s *service) ChannelSubscribers(ctx context.Context, channelID string) ([]domain.OwnerSummary, error) {
	if err := domain.ValidateID(channelID); err != nil {
		return nil, err
	}
	if err := s.requireExists(ctx, s.users.UserExists, channelID, domain.ErrChannelNotFound); err != nil {
		return nil, err
	}
	return s.repo.ChannelSubscribers(ctx, channelID)
}

func (s *service) SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.OwnerSummary, error) {
	if err := domain.ValidateID(subscriberID); err != nil {
		return nil, err
	}
	if err := s.requireExists(ctx, s.users.UserExists, subscriberID, domain.ErrUserNotFound); err != nil {
		return nil, err
	}
	return s.repo.SubscribedChannels(ctx, subscriberID)
}

func (s *service) ListVideos(ctx context.Context, q domain.VideoQuery, viewer *domain.Identity) (*domain.VideoPage, error) {
	if q.OwnerID != "" {
		if err := domain.ValidateID(q.OwnerID); err != nil {
			return nil, err
		}
	}
	q = q.Normalize()
	q.IncludeUnpublished = viewer != nil && q.OwnerID != "" && viewer.ID == q.OwnerID

	videos, total, err := s.repo.ListVideos(ctx, q)
	if err != nil {
		return nil, err
	}
	return &domain.VideoPage{
		Videos:      videos,
		TotalVideos: total,
		TotalPages:  domain.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
	}, nil
}

func (s *service) Playlist(ctx context.Context, playlistID string) (*domain.PlaylistView, error) {
	if err := domain.ValidateID(playlistID); err != nil {
		return nil, err
	}
	p, err := s.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	owner, err := s.repo.OwnerSummary(ctx, p.OwnerID)
	if err != nil {
		return nil, err
	}
	return s.playlistView(ctx, p, owner)
}

func (s *service) UserPlaylists(ctx context.Context, userID string) ([]domain.PlaylistView, error) {
	if err := domain.ValidateID(userID); err != nil {
		return nil, err
	}
	if err := s.requireExists(ctx, s.users.UserExists, userID, domain.ErrUserNotFound); err != nil {
		return nil, err
	}

	playlists, err := s.repo.UserPlaylists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return nil, domain.ErrNoPlaylists
	}

	owner, err := s.repo.OwnerSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.PlaylistView, 0, len(playlists))
	for i := range playlists {
		v, err := s.playlistView(ctx, &playlists[i], owner)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *service) UserTweets(ctx context.Context, userID string) ([]domain.Tweet, error) {
	if err := domain.ValidateID(userID); err != nil {
		return nil, err
	}
	if err := s.requireExists(ctx, s.users.UserExists, userID, domain.ErrUserNotFound); err != nil {
		return nil, err
	}
	tweets, err := s.repo.UserTweets(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tweets) == 0 {
		return nil, domain.ErrNoTweets
	}
	return tweets, nil
}

func (s *service) playlistView(ctx context.Context, p *domain.Playlist, owner domain.OwnerSummary) (*domain.PlaylistView, error) {
	videos, err := s.repo.VideosInOrder(ctx, p.VideoIDs)
	if err != nil {
		return nil, err
	}
	return &domain.PlaylistView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       owner,
		Videos:      videos,
		TotalVideos: len(videos),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (s *service) requireExists(ctx context.Context, exists func(context.Context, string) (bool, error), id string, notFound error) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}
	if !ok {
		return notFound
	}
	return nil
}
