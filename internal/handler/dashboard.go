package handler

import (
	"net/http"

	"github.com/tubehub/tubehub-api/internal/projection"
)

// DashboardHandlers serves the channel owner's dashboard
type DashboardHandlers struct {
	views projection.Service
}

// NewDashboardHandlers creates new dashboard handlers
func NewDashboardHandlers(views projection.Service) *DashboardHandlers {
	return &DashboardHandlers{views: views}
}

// HandleChannelStats handles GET /dashboard/stats
// @Summary Totals for the current user's channel
// @Tags dashboard
// @Produce json
// @Success 200 {object} SuccessResponse{data=domain.ChannelStats}
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandlers) HandleChannelStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		stats, err := h.views.ChannelStats(r.Context(), identity)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgChannelStats, stats)
	}
}

// HandleChannelVideos handles GET /dashboard/videos
// @Summary Every video on the current user's channel
// @Tags dashboard
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]domain.VideoWithOwner}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/dashboard/videos [get]
func (h *DashboardHandlers) HandleChannelVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		videos, err := h.views.ChannelVideos(r.Context(), identity.ID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgChannelVideos, videos)
	}
}
