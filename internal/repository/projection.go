package repository

import (
	"context"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// Projection defines the cross-entity read queries.
// Every method is read-only and returns rows in a deterministic order.
type Projection interface {
	// ChannelProfile returns domain.ErrUserNotFound for an unknown username.
	// viewerID may be empty for anonymous viewers.
	ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID string) ([]domain.VideoWithOwner, error)
	LikedVideos(ctx context.Context, userID string) ([]domain.LikedVideo, error)
	VideoComments(ctx context.Context, videoID string, limit, offset int) ([]domain.CommentView, int64, error)
	ChannelStats(ctx context.Context, userID string) (*domain.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID string) ([]domain.VideoWithOwner, error)
	ChannelSubscribers(ctx context.Context, channelID string) ([]domain.OwnerSummary, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.OwnerSummary, error)
	ListVideos(ctx context.Context, q domain.VideoQuery) ([]domain.VideoWithOwner, int64, error)
	// VideosInOrder resolves ids in order, skipping ids with no video.
	VideosInOrder(ctx context.Context, videoIDs []string) ([]domain.VideoWithOwner, error)
	OwnerSummary(ctx context.Context, userID string) (domain.OwnerSummary, error)
	UserPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error)
	UserTweets(ctx context.Context, userID string) ([]domain.Tweet, error)
}
