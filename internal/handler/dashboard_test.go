package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tubehub/tubehub-api/internal/domain"
)

func TestHandleChannelStats(t *testing.T) {
	views := &MockProjectionService{}
	h := NewDashboardHandlers(views)
	views.On("ChannelStats", mock.Anything, testIdentity).
		Return(&domain.ChannelStats{TotalVideos: 2, TotalViews: 40, TotalSubscribers: 3, TotalLikes: 7}, nil)

	w := httptest.NewRecorder()
	h.HandleChannelStats().ServeHTTP(w, withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), testIdentity))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeSuccess(t, w).Data), `"totalViews":40`)
}

func TestHandleChannelVideos(t *testing.T) {
	t.Run("uses the caller's channel", func(t *testing.T) {
		views := &MockProjectionService{}
		h := NewDashboardHandlers(views)
		views.On("ChannelVideos", mock.Anything, testIdentity.ID).Return([]domain.VideoWithOwner{{}}, nil)

		w := httptest.NewRecorder()
		h.HandleChannelVideos().ServeHTTP(w, withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), testIdentity))

		assert.Equal(t, http.StatusOK, w.Code)
		views.AssertExpectations(t)
	})

	t.Run("empty channel", func(t *testing.T) {
		views := &MockProjectionService{}
		h := NewDashboardHandlers(views)
		views.On("ChannelVideos", mock.Anything, testIdentity.ID).Return(nil, domain.ErrNoVideos)

		w := httptest.NewRecorder()
		h.HandleChannelVideos().ServeHTTP(w, withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), testIdentity))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, domain.ErrMsgNoVideos, decodeFailure(t, w).Message)
	})

	t.Run("requires identity", func(t *testing.T) {
		h := NewDashboardHandlers(&MockProjectionService{})
		w := httptest.NewRecorder()
		h.HandleChannelVideos().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
