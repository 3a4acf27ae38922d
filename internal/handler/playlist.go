package handler

import (
	"net/http"

	"github.com/tubehub/tubehub-api/internal/playlist"
	"github.com/tubehub/tubehub-api/internal/projection"
)

// PlaylistHandlers serves playlist routes
type PlaylistHandlers struct {
	playlists playlist.Service
	views     projection.Service
}

// NewPlaylistHandlers creates new playlist handlers
func NewPlaylistHandlers(playlists playlist.Service, views projection.Service) *PlaylistHandlers {
	return &PlaylistHandlers{playlists: playlists, views: views}
}

// PlaylistRequest is the request body for creating or updating a playlist
type PlaylistRequest struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// HandleCreatePlaylist handles POST /playlist
// @Summary Create a playlist
// @Tags playlist
// @Accept json
// @Produce json
// @Param body body PlaylistRequest true "Playlist"
// @Success 201 {object} SuccessResponse{data=domain.Playlist}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/playlist [post]
func (h *PlaylistHandlers) HandleCreatePlaylist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req PlaylistRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create playlist"); err != nil {
			return
		}

		p, err := h.playlists.Create(r.Context(), identity, req.Name, req.Description)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusCreated, MsgPlaylistCreated, p)
	}
}

// HandleGetPlaylist handles GET /playlist/{playlistId}
// @Summary A playlist with its videos in order
// @Tags playlist
// @Produce json
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} SuccessResponse{data=domain.PlaylistView}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/playlist/{playlistId} [get]
func (h *PlaylistHandlers) HandleGetPlaylist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.views.Playlist(r.Context(), pathParam(r, "playlistId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgPlaylistFetched, view)
	}
}

// HandleUserPlaylists handles GET /playlist/user/{userId}
// @Summary A user's playlists
// @Tags playlist
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {object} SuccessResponse{data=[]domain.PlaylistView}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/playlist/user/{userId} [get]
func (h *PlaylistHandlers) HandleUserPlaylists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := h.views.UserPlaylists(r.Context(), pathParam(r, "userId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgPlaylistsFetched, views)
	}
}

// HandleUpdatePlaylist handles PATCH /playlist/{playlistId}
// @Summary Rename or redescribe a playlist
// @Tags playlist
// @Accept json
// @Produce json
// @Param playlistId path string true "Playlist id"
// @Param body body PlaylistRequest true "Playlist"
// @Success 200 {object} SuccessResponse{data=domain.Playlist}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/playlist/{playlistId} [patch]
func (h *PlaylistHandlers) HandleUpdatePlaylist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req PlaylistRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update playlist"); err != nil {
			return
		}

		p, err := h.playlists.Update(r.Context(), identity, pathParam(r, "playlistId"), req.Name, req.Description)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgPlaylistUpdated, p)
	}
}

// HandleDeletePlaylist handles DELETE /playlist/{playlistId}
// @Summary Delete a playlist
// @Tags playlist
// @Produce json
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/playlist/{playlistId} [delete]
func (h *PlaylistHandlers) HandleDeletePlaylist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.playlists.Delete(r.Context(), identity, pathParam(r, "playlistId")); err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgPlaylistDeleted, struct{}{})
	}
}

// HandleAddVideo handles PATCH /playlist/add/{videoId}/{playlistId}
// @Summary Append a video to a playlist
// @Tags playlist
// @Produce json
// @Param videoId path string true "Video id"
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} SuccessResponse{data=domain.Playlist}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/playlist/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandlers) HandleAddVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		p, err := h.playlists.AddVideo(r.Context(), identity, pathParam(r, "playlistId"), pathParam(r, "videoId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgVideoAddedToList, p)
	}
}

// HandleRemoveVideo handles PATCH /playlist/remove/{videoId}/{playlistId}
// @Summary Remove every occurrence of a video from a playlist
// @Tags playlist
// @Produce json
// @Param videoId path string true "Video id"
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} SuccessResponse{data=domain.Playlist}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/playlist/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandlers) HandleRemoveVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		p, err := h.playlists.RemoveVideo(r.Context(), identity, pathParam(r, "playlistId"), pathParam(r, "videoId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgVideoRemovedFromList, p)
	}
}
