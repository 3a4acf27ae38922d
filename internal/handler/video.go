package handler

import (
	"mime"
	"net/http"

	"github.com/tubehub/tubehub-api/internal/auth"
	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
	"github.com/tubehub/tubehub-api/internal/projection"
	"github.com/tubehub/tubehub-api/internal/video"
)

const (
	formTitle       = "title"
	formDescription = "description"
)

// VideoHandlers serves video routes
type VideoHandlers struct {
	videos  video.Service
	views   projection.Service
	uploads *Uploads
}

// NewVideoHandlers creates new video handlers
func NewVideoHandlers(videos video.Service, views projection.Service, uploads *Uploads) *VideoHandlers {
	return &VideoHandlers{videos: videos, views: views, uploads: uploads}
}

// UpdateVideoRequest is the JSON form of a video update. Absent fields are left unchanged.
type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

// HandleListVideos handles GET /videos
// @Summary List videos
// @Tags videos
// @Produce json
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size"
// @Param query query string false "Title filter"
// @Param sortBy query string false "createdAt, views, duration or title"
// @Param sortType query string false "asc or desc"
// @Param userId query string false "Only this owner's videos"
// @Success 200 {object} SuccessResponse{data=domain.VideoPage}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/videos [get]
func (h *VideoHandlers) HandleListVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := h.views.ListVideos(r.Context(), domain.VideoQuery{
			Page:     queryInt(r, "page"),
			Limit:    queryInt(r, "limit"),
			Query:    q.Get("query"),
			SortBy:   q.Get("sortBy"),
			SortType: q.Get("sortType"),
			OwnerID:  q.Get("userId"),
		}, auth.IdentityFromContext(r.Context()))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgVideosFetched, page)
	}
}

// HandlePublish handles POST /videos
// @Summary Publish a video
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param video formData file true "Video file"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 201 {object} SuccessResponse{data=domain.Video}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/videos [post]
func (h *VideoHandlers) HandlePublish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		form, ok := h.uploads.Stage(w, r, domain.FieldVideo, domain.FieldThumbnail)
		if !ok {
			return
		}
		defer form.Close(logger.FromContext(r.Context()))

		v, err := h.videos.Publish(r.Context(), identity, video.PublishInput{
			Title:         form.Value(formTitle),
			Description:   form.Value(formDescription),
			VideoPath:     form.Path(domain.FieldVideo),
			ThumbnailPath: form.Path(domain.FieldThumbnail),
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusCreated, MsgVideoPublished, v)
	}
}

// HandleGetVideo handles GET /videos/{videoId}
// @Summary Watch a video
// @Description Counts a view and, for signed-in viewers, appends to the watch history.
// @Tags videos
// @Produce json
// @Param videoId path string true "Video id"
// @Success 200 {object} SuccessResponse{data=domain.Video}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/videos/{videoId} [get]
func (h *VideoHandlers) HandleGetVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h.videos.Get(r.Context(), pathParam(r, "videoId"), auth.IdentityFromContext(r.Context()))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgVideoFetched, v)
	}
}

// HandleUpdateVideo handles PATCH /videos/{videoId}
// @Summary Update title, description or thumbnail
// @Description Accepts multipart (to replace the thumbnail) or JSON.
// @Tags videos
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param videoId path string true "Video id"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 200 {object} SuccessResponse{data=domain.Video}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/videos/{videoId} [patch]
func (h *VideoHandlers) HandleUpdateVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var in video.UpdateInput
		if isMultipart(r) {
			form, ok := h.uploads.Stage(w, r, domain.FieldThumbnail)
			if !ok {
				return
			}
			defer form.Close(logger.FromContext(r.Context()))
			in = video.UpdateInput{
				Title:         optionalValue(form, formTitle),
				Description:   optionalValue(form, formDescription),
				ThumbnailPath: form.Path(domain.FieldThumbnail),
			}
		} else {
			var req UpdateVideoRequest
			if err := DecodeAndValidateRequest(r, w, &req, "Update video"); err != nil {
				return
			}
			in = video.UpdateInput{Title: req.Title, Description: req.Description}
		}

		v, err := h.videos.Update(r.Context(), identity, pathParam(r, "videoId"), in)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgVideoUpdated, v)
	}
}

// HandleDeleteVideo handles DELETE /videos/{videoId}
// @Summary Delete a video and its media
// @Tags videos
// @Produce json
// @Param videoId path string true "Video id"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/videos/{videoId} [delete]
func (h *VideoHandlers) HandleDeleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.videos.Delete(r.Context(), identity, pathParam(r, "videoId")); err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgVideoDeleted, struct{}{})
	}
}

// HandleTogglePublish handles PATCH /videos/toggle/publish/{videoId}
// @Summary Flip the published flag
// @Tags videos
// @Produce json
// @Param videoId path string true "Video id"
// @Success 200 {object} SuccessResponse{data=domain.Video}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/videos/toggle/publish/{videoId} [patch]
func (h *VideoHandlers) HandleTogglePublish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		v, err := h.videos.TogglePublish(r.Context(), identity, pathParam(r, "videoId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgPublishToggled, v)
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(HeaderContentType))
	return err == nil && mediaType == "multipart/form-data"
}

// optionalValue distinguishes an absent form field from an empty one
func optionalValue(form *StagedForm, field string) *string {
	if !form.Has(field) {
		return nil
	}
	v := form.Value(field)
	return &v
}
