package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/handler"
)

type fakeAuthenticator struct {
	identity *domain.Identity
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*domain.Identity, error) {
	if token == "good" && f.identity != nil {
		return f.identity, nil
	}
	return nil, domain.ErrInvalidAccessToken
}

type fakePool struct{ err error }

func (p fakePool) Ping(context.Context) error { return p.err }
func (p fakePool) Close()                     {}

// newTestServer mounts handlers without services. Only routes rejected
// before a service call may be exercised.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	captureLogs(t)
	uploads, err := handler.NewUploads(t.TempDir())
	require.NoError(t, err)

	return NewServer(Config{
		Port:           0,
		MaxBodyBytes:   1 << 14,
		MaxUploadBytes: 1 << 20,
		AuthRateLimit:  100,
	}, fakePool{}, fakeAuthenticator{identity: &domain.Identity{ID: "u1"}}, Handlers{
		Users:         handler.NewUserHandlers(nil, nil, nil, uploads, handler.CookieConfig{}),
		Videos:        handler.NewVideoHandlers(nil, nil, uploads),
		Comments:      handler.NewCommentHandlers(nil, nil),
		Likes:         handler.NewLikeHandlers(nil, nil),
		Tweets:        handler.NewTweetHandlers(nil, nil),
		Subscriptions: handler.NewSubscriptionHandlers(nil, nil),
		Playlists:     handler.NewPlaylistHandlers(nil, nil),
		Dashboard:     handler.NewDashboardHandlers(nil),
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/users/logout"},
		{http.MethodGet, "/api/v1/users/current-user"},
		{http.MethodGet, "/api/v1/users/history"},
		{http.MethodPost, "/api/v1/videos"},
		{http.MethodDelete, "/api/v1/videos/v1"},
		{http.MethodPatch, "/api/v1/videos/toggle/publish/v1"},
		{http.MethodPost, "/api/v1/comments/v1"},
		{http.MethodPost, "/api/v1/likes/toggle/v/v1"},
		{http.MethodGet, "/api/v1/likes/videos"},
		{http.MethodPost, "/api/v1/tweets"},
		{http.MethodPost, "/api/v1/subscriptions/c/ch1"},
		{http.MethodPost, "/api/v1/playlist"},
		{http.MethodPatch, "/api/v1/playlist/add/v1/p1"},
		{http.MethodGet, "/api/v1/dashboard/stats"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
			assert.Equal(t, domain.ErrMsgUnauthorized, body.Message)
		})
	}
}

func TestServer_InvalidTokenRejected(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.ErrMsgInvalidAccessToken, decodeError(t, rec).Message)
}

func TestServer_NotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgRouteNotFound, decodeError(t, rec).Message)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/healthcheck", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, ErrMsgMethodNotAllowed, decodeError(t, rec).Message)
}

func TestServer_HealthRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/api/v1/healthcheck", "/version"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID), path)
	}
}

func TestServer_RejectedTokenFeedsDetector(t *testing.T) {
	captureLogs(t)
	detector := NewSuspiciousActivityDetector(100)
	reject := rejectRecorder(nil, detector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.RemoteAddr = "9.9.9.9:1"

	reject(httptest.NewRecorder(), req, domain.ErrMissingIdentity)
	reject(httptest.NewRecorder(), req, domain.ErrInvalidAccessToken)

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 1, detector.failedAuthByIP["9.9.9.9"], "only presented tokens count as failures")
}
