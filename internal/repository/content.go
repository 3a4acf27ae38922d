package repository

import (
	"context"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// Video defines the interface for video persistence
type Video interface {
	CreateVideo(ctx context.Context, video *domain.Video) error
	GetVideoByID(ctx context.Context, videoID string) (*domain.Video, error)
	VideoExists(ctx context.Context, videoID string) (bool, error)
	UpdateVideo(ctx context.Context, video *domain.Video) error
	DeleteVideo(ctx context.Context, videoID string) error
	IncrementViews(ctx context.Context, videoID string) error
}

// Comment defines the interface for comment persistence
type Comment interface {
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)
	CommentExists(ctx context.Context, commentID string) (bool, error)
	UpdateCommentContent(ctx context.Context, commentID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// Tweet defines the interface for tweet persistence
type Tweet interface {
	CreateTweet(ctx context.Context, tweet *domain.Tweet) error
	GetTweetByID(ctx context.Context, tweetID string) (*domain.Tweet, error)
	TweetExists(ctx context.Context, tweetID string) (bool, error)
	UpdateTweetContent(ctx context.Context, tweetID, content string) (*domain.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID string) error
}

// Playlist defines the interface for playlist persistence.
// CreatePlaylist and UpdatePlaylist return domain.ErrPlaylistExists on a name collision.
type Playlist interface {
	CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	GetPlaylistByID(ctx context.Context, playlistID string) (*domain.Playlist, error)
	PlaylistNameExists(ctx context.Context, name string) (bool, error)
	UpdatePlaylist(ctx context.Context, playlistID, name, description string) (*domain.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID string) error
	AppendVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error)
	// RemoveVideo drops every occurrence of videoID.
	RemoveVideo(ctx context.Context, playlistID, videoID string) (*domain.Playlist, error)
}
