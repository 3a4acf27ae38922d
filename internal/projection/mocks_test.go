package projection

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tubehub/tubehub-api/internal/domain"
)

type mockProjectionRepo struct {
	mock.Mock
}

func (m *mockProjectionRepo) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelProfile), args.Error(1)
}

func (m *mockProjectionRepo) WatchHistory(ctx context.Context, userID string) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.VideoWithOwner), args.Error(1)
}

func (m *mockProjectionRepo) LikedVideos(ctx context.Context, userID string) ([]domain.LikedVideo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.LikedVideo), args.Error(1)
}

func (m *mockProjectionRepo) VideoComments(ctx context.Context, videoID string, limit, offset int) ([]domain.CommentView, int64, error) {
	args := m.Called(ctx, videoID, limit, offset)
	return args.Get(0).([]domain.CommentView), args.Get(1).(int64), args.Error(2)
}

func (m *mockProjectionRepo) ChannelStats(ctx context.Context, userID string) (*domain.ChannelStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelStats), args.Error(1)
}

func (m *mockProjectionRepo) ChannelVideos(ctx context.Context, channelID string) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).([]domain.VideoWithOwner), args.Error(1)
}

func (m *mockProjectionRepo) ChannelSubscribers(ctx context.Context, channelID string) ([]domain.OwnerSummary, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).([]domain.OwnerSummary), args.Error(1)
}

func (m *mockProjectionRepo) SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.OwnerSummary, error) {
	args := m.Called(ctx, subscriberID)
	return args.Get(0).([]domain.OwnerSummary), args.Error(1)
}

func (m *mockProjectionRepo) ListVideos(ctx context.Context, q domain.VideoQuery) ([]domain.VideoWithOwner, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.VideoWithOwner), args.Get(1).(int64), args.Error(2)
}

func (m *mockProjectionRepo) VideosInOrder(ctx context.Context, videoIDs []string) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, videoIDs)
	return args.Get(0).([]domain.VideoWithOwner), args.Error(1)
}

func (m *mockProjectionRepo) OwnerSummary(ctx context.Context, userID string) (domain.OwnerSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.OwnerSummary), args.Error(1)
}

func (m *mockProjectionRepo) UserPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Playlist), args.Error(1)
}

func (m *mockProjectionRepo) UserTweets(ctx context.Context, userID string) ([]domain.Tweet, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Tweet), args.Error(1)
}

// mockLookups covers the user, video and playlist lookups
type mockLookups struct {
	mock.Mock
}

func (m *mockLookups) UserExists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLookups) VideoExists(ctx context.Context, videoID string) (bool, error) {
	args := m.Called(ctx, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLookups) GetPlaylistByID(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Playlist), args.Error(1)
}
