package handler

import (
	"net/http"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/engagement"
	"github.com/tubehub/tubehub-api/internal/projection"
)

// LikeHandlers serves like toggles and the liked-videos feed
type LikeHandlers struct {
	engagement engagement.Service
	views      projection.Service
}

// NewLikeHandlers creates new like handlers
func NewLikeHandlers(svc engagement.Service, views projection.Service) *LikeHandlers {
	return &LikeHandlers{engagement: svc, views: views}
}

// LikeResponse reports the like state after a toggle
type LikeResponse struct {
	Liked bool `json:"liked"`
}

// HandleToggleVideoLike handles POST /likes/toggle/v/{videoId}
// @Summary Like or unlike a video
// @Tags likes
// @Produce json
// @Param videoId path string true "Video id"
// @Success 200 {object} SuccessResponse{data=LikeResponse}
// @Success 201 {object} SuccessResponse{data=LikeResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/likes/toggle/v/{videoId} [post]
func (h *LikeHandlers) HandleToggleVideoLike() http.HandlerFunc {
	return h.toggle(domain.TargetVideo, "videoId")
}

// HandleToggleCommentLike handles POST /likes/toggle/c/{commentId}
// @Summary Like or unlike a comment
// @Tags likes
// @Produce json
// @Param commentId path string true "Comment id"
// @Success 200 {object} SuccessResponse{data=LikeResponse}
// @Success 201 {object} SuccessResponse{data=LikeResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/likes/toggle/c/{commentId} [post]
func (h *LikeHandlers) HandleToggleCommentLike() http.HandlerFunc {
	return h.toggle(domain.TargetComment, "commentId")
}

// HandleToggleTweetLike handles POST /likes/toggle/t/{tweetId}
// @Summary Like or unlike a tweet
// @Tags likes
// @Produce json
// @Param tweetId path string true "Tweet id"
// @Success 200 {object} SuccessResponse{data=LikeResponse}
// @Success 201 {object} SuccessResponse{data=LikeResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/likes/toggle/t/{tweetId} [post]
func (h *LikeHandlers) HandleToggleTweetLike() http.HandlerFunc {
	return h.toggle(domain.TargetTweet, "tweetId")
}

// toggle answers 201 when a like was created and 200 when one was removed
func (h *LikeHandlers) toggle(kind domain.TargetKind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		result, err := h.engagement.ToggleLike(r.Context(), identity, domain.Target{Kind: kind, ID: pathParam(r, param)})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		if result.Active {
			respondSuccess(w, http.StatusCreated, MsgLikeAdded, LikeResponse{Liked: true})
			return
		}
		respondSuccess(w, http.StatusOK, MsgLikeRemoved, LikeResponse{Liked: false})
	}
}

// HandleLikedVideos handles GET /likes/videos
// @Summary Videos the current user liked
// @Tags likes
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]domain.LikedVideo}
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/likes/videos [get]
func (h *LikeHandlers) HandleLikedVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		liked, err := h.views.LikedVideos(r.Context(), identity)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgLikedVideos, liked)
	}
}
