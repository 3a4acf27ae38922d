package handler

import (
	"net/http"

	"github.com/tubehub/tubehub-api/internal/comment"
	"github.com/tubehub/tubehub-api/internal/projection"
)

// CommentHandlers serves comment routes
type CommentHandlers struct {
	comments comment.Service
	views    projection.Service
}

// NewCommentHandlers creates new comment handlers
func NewCommentHandlers(comments comment.Service, views projection.Service) *CommentHandlers {
	return &CommentHandlers{comments: comments, views: views}
}

// CommentRequest is the request body for adding or editing a comment
type CommentRequest struct {
	Content string `json:"content" validate:"max=2000"`
}

// HandleListComments handles GET /comments/{videoId}
// @Summary Comments on a video, newest first
// @Tags comments
// @Produce json
// @Param videoId path string true "Video id"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size"
// @Success 200 {object} SuccessResponse{data=domain.CommentPage}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/comments/{videoId} [get]
func (h *CommentHandlers) HandleListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.views.VideoComments(r.Context(), pathParam(r, "videoId"), queryInt(r, "page"), queryInt(r, "limit"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgCommentsFetched, page)
	}
}

// HandleAddComment handles POST /comments/{videoId}
// @Summary Comment on a video
// @Tags comments
// @Accept json
// @Produce json
// @Param videoId path string true "Video id"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} SuccessResponse{data=domain.Comment}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/comments/{videoId} [post]
func (h *CommentHandlers) HandleAddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req CommentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add comment"); err != nil {
			return
		}

		c, err := h.comments.Create(r.Context(), identity, pathParam(r, "videoId"), req.Content)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusCreated, MsgCommentAdded, c)
	}
}

// HandleUpdateComment handles PATCH /comments/c/{commentId}
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param commentId path string true "Comment id"
// @Param body body CommentRequest true "Comment"
// @Success 200 {object} SuccessResponse{data=domain.Comment}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/comments/c/{commentId} [patch]
func (h *CommentHandlers) HandleUpdateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req CommentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update comment"); err != nil {
			return
		}

		c, err := h.comments.Update(r.Context(), identity, pathParam(r, "commentId"), req.Content)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgCommentUpdated, c)
	}
}

// HandleDeleteComment handles DELETE /comments/c/{commentId}
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param commentId path string true "Comment id"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/comments/c/{commentId} [delete]
func (h *CommentHandlers) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.comments.Delete(r.Context(), identity, pathParam(r, "commentId")); err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgCommentDeleted, struct{}{})
	}
}
