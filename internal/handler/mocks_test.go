package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tubehub/tubehub-api/internal/auth"
	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/user"
	"github.com/tubehub/tubehub-api/internal/video"
)

// =============================================================================
// Service mocks
// =============================================================================

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*domain.Identity, error) {
	args := m.Called(ctx, in)
	return identityOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) Current(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	args := m.Called(ctx, identity)
	return identityOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) UpdateAccount(ctx context.Context, identity *domain.Identity, fullname, email string) (*domain.Identity, error) {
	args := m.Called(ctx, identity, fullname, email)
	return identityOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, identity *domain.Identity, oldPassword, newPassword string) error {
	return m.Called(ctx, identity, oldPassword, newPassword).Error(0)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, identity *domain.Identity, path string) (*domain.Identity, error) {
	args := m.Called(ctx, identity, path)
	return identityOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) UpdateCoverImage(ctx context.Context, identity *domain.Identity, path string) (*domain.Identity, error) {
	args := m.Called(ctx, identity, path)
	return identityOrNil(args.Get(0)), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	args := m.Called(ctx, token)
	return identityOrNil(args.Get(0)), args.Error(1)
}

func (m *MockAuthService) Reissue(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in auth.LoginInput) (*auth.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockAuthService) Invalidate(userID string) {
	m.Called(userID)
}

type MockProjectionService struct{ mock.Mock }

func (m *MockProjectionService) ChannelProfile(ctx context.Context, username string, viewer *domain.Identity) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelProfile), args.Error(1)
}

func (m *MockProjectionService) WatchHistory(ctx context.Context, identity *domain.Identity) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, identity)
	return videosOrNil(args.Get(0)), args.Error(1)
}

func (m *MockProjectionService) LikedVideos(ctx context.Context, identity *domain.Identity) ([]domain.LikedVideo, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LikedVideo), args.Error(1)
}

func (m *MockProjectionService) VideoComments(ctx context.Context, videoID string, page, limit int) (*domain.CommentPage, error) {
	args := m.Called(ctx, videoID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommentPage), args.Error(1)
}

func (m *MockProjectionService) ChannelStats(ctx context.Context, identity *domain.Identity) (*domain.ChannelStats, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelStats), args.Error(1)
}

func (m *MockProjectionService) ChannelVideos(ctx context.Context, channelID string) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, channelID)
	return videosOrNil(args.Get(0)), args.Error(1)
}

func (m *MockProjectionService) ChannelSubscribers(ctx context.Context, channelID string) ([]domain.OwnerSummary, error) {
	args := m.Called(ctx, channelID)
	return summariesOrNil(args.Get(0)), args.Error(1)
}

func (m *MockProjectionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.OwnerSummary, error) {
	args := m.Called(ctx, subscriberID)
	return summariesOrNil(args.Get(0)), args.Error(1)
}

func (m *MockProjectionService) ListVideos(ctx context.Context, q domain.VideoQuery, viewer *domain.Identity) (*domain.VideoPage, error) {
	args := m.Called(ctx, q, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoPage), args.Error(1)
}

func (m *MockProjectionService) Playlist(ctx context.Context, playlistID string) (*domain.PlaylistView, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaylistView), args.Error(1)
}

func (m *MockProjectionService) UserPlaylists(ctx context.Context, userID string) ([]domain.PlaylistView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlaylistView), args.Error(1)
}

func (m *MockProjectionService) UserTweets(ctx context.Context, userID string) ([]domain.Tweet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tweet), args.Error(1)
}

type MockVideoService struct{ mock.Mock }

func (m *MockVideoService) Publish(ctx context.Context, identity *domain.Identity, in video.PublishInput) (*domain.Video, error) {
	args := m.Called(ctx, identity, in)
	return videoOrNil(args.Get(0)), args.Error(1)
}

func (m *MockVideoService) Get(ctx context.Context, videoID string, viewer *domain.Identity) (*domain.Video, error) {
	args := m.Called(ctx, videoID, viewer)
	return videoOrNil(args.Get(0)), args.Error(1)
}

func (m *MockVideoService) Update(ctx context.Context, identity *domain.Identity, videoID string, in video.UpdateInput) (*domain.Video, error) {
	args := m.Called(ctx, identity, videoID, in)
	return videoOrNil(args.Get(0)), args.Error(1)
}

func (m *MockVideoService) Delete(ctx context.Context, identity *domain.Identity, videoID string) error {
	return m.Called(ctx, identity, videoID).Error(0)
}

func (m *MockVideoService) TogglePublish(ctx context.Context, identity *domain.Identity, videoID string) (*domain.Video, error) {
	args := m.Called(ctx, identity, videoID)
	return videoOrNil(args.Get(0)), args.Error(1)
}

type MockCommentService struct{ mock.Mock }

func (m *MockCommentService) Create(ctx context.Context, identity *domain.Identity, videoID, content string) (*domain.Comment, error) {
	args := m.Called(ctx, identity, videoID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, identity *domain.Identity, commentID, content string) (*domain.Comment, error) {
	args := m.Called(ctx, identity, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, identity *domain.Identity, commentID string) error {
	return m.Called(ctx, identity, commentID).Error(0)
}

type MockTweetService struct{ mock.Mock }

func (m *MockTweetService) Create(ctx context.Context, identity *domain.Identity, content string) (*domain.Tweet, error) {
	args := m.Called(ctx, identity, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tweet), args.Error(1)
}

func (m *MockTweetService) Update(ctx context.Context, identity *domain.Identity, tweetID, content string) (*domain.Tweet, error) {
	args := m.Called(ctx, identity, tweetID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tweet), args.Error(1)
}

func (m *MockTweetService) Delete(ctx context.Context, identity *domain.Identity, tweetID string) error {
	return m.Called(ctx, identity, tweetID).Error(0)
}

type MockPlaylistService struct{ mock.Mock }

func (m *MockPlaylistService) Create(ctx context.Context, identity *domain.Identity, name, description string) (*domain.Playlist, error) {
	args := m.Called(ctx, identity, name, description)
	return playlistOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPlaylistService) Update(ctx context.Context, identity *domain.Identity, playlistID, name, description string) (*domain.Playlist, error) {
	args := m.Called(ctx, identity, playlistID, name, description)
	return playlistOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPlaylistService) Delete(ctx context.Context, identity *domain.Identity, playlistID string) error {
	return m.Called(ctx, identity, playlistID).Error(0)
}

func (m *MockPlaylistService) AddVideo(ctx context.Context, identity *domain.Identity, playlistID, videoID string) (*domain.Playlist, error) {
	args := m.Called(ctx, identity, playlistID, videoID)
	return playlistOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPlaylistService) RemoveVideo(ctx context.Context, identity *domain.Identity, playlistID, videoID string) (*domain.Playlist, error) {
	args := m.Called(ctx, identity, playlistID, videoID)
	return playlistOrNil(args.Get(0)), args.Error(1)
}

type MockEngagementService struct{ mock.Mock }

func (m *MockEngagementService) ToggleLike(ctx context.Context, identity *domain.Identity, target domain.Target) (domain.ToggleResult, error) {
	args := m.Called(ctx, identity, target)
	return args.Get(0).(domain.ToggleResult), args.Error(1)
}

func (m *MockEngagementService) ToggleSubscription(ctx context.Context, identity *domain.Identity, channelID string) (domain.ToggleResult, error) {
	args := m.Called(ctx, identity, channelID)
	return args.Get(0).(domain.ToggleResult), args.Error(1)
}

func identityOrNil(v any) *domain.Identity {
	if v == nil {
		return nil
	}
	return v.(*domain.Identity)
}

func videoOrNil(v any) *domain.Video {
	if v == nil {
		return nil
	}
	return v.(*domain.Video)
}

func playlistOrNil(v any) *domain.Playlist {
	if v == nil {
		return nil
	}
	return v.(*domain.Playlist)
}

func videosOrNil(v any) []domain.VideoWithOwner {
	if v == nil {
		return nil
	}
	return v.([]domain.VideoWithOwner)
}

func summariesOrNil(v any) []domain.OwnerSummary {
	if v == nil {
		return nil
	}
	return v.([]domain.OwnerSummary)
}

// =============================================================================
// Request helpers
// =============================================================================

var testIdentity = &domain.Identity{ID: "user-1", Username: "alice", Email: "alice@example.com"}

// successBody keeps data raw so each test decodes the shape it expects
type successBody struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) successBody {
	t.Helper()
	var body successBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeFailure(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	return req
}

// withIdentity does what the access gate does for an authenticated caller
func withIdentity(r *http.Request, identity *domain.Identity) *http.Request {
	return r.WithContext(auth.WithIdentity(r.Context(), identity))
}

// withParams sets chi route parameters as key, value pairs
func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// multipartRequest builds a multipart body from text values and file contents keyed by field
func multipartRequest(t *testing.T, method, target string, values map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(HeaderContentType, mw.FormDataContentType())
	return req
}

func newTestUploads(t *testing.T) *Uploads {
	t.Helper()
	u, err := NewUploads(t.TempDir())
	require.NoError(t, err)
	return u
}
