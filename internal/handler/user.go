package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tubehub/tubehub-api/internal/auth"
	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
	"github.com/tubehub/tubehub-api/internal/projection"
	"github.com/tubehub/tubehub-api/internal/user"
)

// UserHandlers serves account, session and channel profile routes
type UserHandlers struct {
	users    user.Service
	sessions auth.Service
	profiles projection.Service
	uploads  *Uploads
	cookies  CookieConfig
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(users user.Service, sessions auth.Service, profiles projection.Service, uploads *Uploads, cookies CookieConfig) *UserHandlers {
	return &UserHandlers{users: users, sessions: sessions, profiles: profiles, uploads: uploads, cookies: cookies}
}

// RegisterForm is the text part of the registration form
type RegisterForm struct {
	Fullname string `form:"fullname" validate:"max=100"`
	Email    string `form:"email" validate:"omitempty,email,max=254"`
	Username string `form:"username" validate:"omitempty,handle,max=30"`
	Password string `form:"password" validate:"max=72"`
}

// LoginResponse carries the tokens in the body as well as in cookies
type LoginResponse struct {
	User         *domain.Identity `json:"user"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}

// RefreshRequest optionally carries the refresh token when cookies are unavailable
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest is the request body for changing the password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" validate:"max=72"`
}

// UpdateAccountRequest is the request body for updating account details
type UpdateAccountRequest struct {
	Fullname string `json:"fullname" validate:"max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
}

// HandleRegister handles POST /users/register
// @Summary Register a user
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param fullname formData string true "Full name"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} SuccessResponse{data=domain.Identity}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users/register [post]
func (h *UserHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.uploads.Stage(w, r, domain.FieldAvatar, domain.FieldCoverImage)
		if !ok {
			return
		}
		defer form.Close(logger.FromContext(r.Context()))

		req := RegisterForm{
			Fullname: form.Value("fullname"),
			Email:    form.Value("email"),
			Username: form.Value("username"),
			Password: form.Value("password"),
		}
		if err := validateRequest(w, &req); err != nil {
			return
		}

		identity, err := h.users.Register(r.Context(), user.RegisterInput{
			Fullname:   req.Fullname,
			Email:      req.Email,
			Username:   req.Username,
			Password:   req.Password,
			AvatarPath: form.Path(domain.FieldAvatar),
			CoverPath:  form.Path(domain.FieldCoverImage),
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusCreated, MsgUserRegistered, identity)
	}
}

// HandleLogin handles POST /users/login
// @Summary Log in with username or email
// @Tags users
// @Accept json
// @Produce json
// @Param body body auth.LoginInput true "Credentials"
// @Success 200 {object} SuccessResponse{data=LoginResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/login [post]
func (h *UserHandlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginInput
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		session, err := h.sessions.Login(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		h.cookies.setSessionCookies(w, session.Tokens)
		respondSuccess(w, http.StatusOK, MsgUserLoggedIn, LoginResponse{
			User:         session.User,
			AccessToken:  session.Tokens.AccessToken,
			RefreshToken: session.Tokens.RefreshToken,
		})
	}
}

// HandleLogout handles POST /users/logout
// @Summary Log out and revoke the refresh token
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/logout [post]
func (h *UserHandlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.sessions.Logout(r.Context(), identity); err != nil {
			respondServiceError(w, r, err)
			return
		}

		h.cookies.clearSessionCookies(w)
		respondSuccess(w, http.StatusOK, MsgUserLoggedOut, struct{}{})
	}
}

// HandleRefresh handles POST /users/refresh-token
// @Summary Rotate the refresh token
// @Tags users
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token when no cookie is sent"
// @Success 200 {object} SuccessResponse{data=auth.TokenPair}
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/refresh-token [post]
func (h *UserHandlers) HandleRefresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		// The body is optional when the cookie is present
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondFailure(w, http.StatusBadRequest, ErrMsgInvalidRequest, nil)
			return
		}

		token := refreshToken(r, req.RefreshToken)
		if token == "" {
			respondFailure(w, http.StatusUnauthorized, ErrMsgRefreshTokenRequired, nil)
			return
		}

		pair, err := h.sessions.Reissue(r.Context(), token)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		h.cookies.setSessionCookies(w, pair)
		respondSuccess(w, http.StatusOK, MsgTokenRefreshed, pair)
	}
}

// HandleChangePassword handles POST /users/change-password
// @Summary Change the current password
// @Tags users
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/users/change-password [post]
func (h *UserHandlers) HandleChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req ChangePasswordRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Change password"); err != nil {
			return
		}

		if err := h.users.ChangePassword(r.Context(), identity, req.OldPassword, req.NewPassword); err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgPasswordChanged, struct{}{})
	}
}

// HandleCurrentUser handles GET /users/current-user
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse{data=domain.Identity}
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/current-user [get]
func (h *UserHandlers) HandleCurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		current, err := h.users.Current(r.Context(), identity)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgCurrentUser, current)
	}
}

// HandleUpdateAccount handles PATCH /users/update-account
// @Summary Update full name and email
// @Tags users
// @Accept json
// @Produce json
// @Param body body UpdateAccountRequest true "Account details"
// @Success 200 {object} SuccessResponse{data=domain.Identity}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users/update-account [patch]
func (h *UserHandlers) HandleUpdateAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req UpdateAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update account"); err != nil {
			return
		}

		updated, err := h.users.UpdateAccount(r.Context(), identity, req.Fullname, req.Email)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgAccountUpdated, updated)
	}
}

// HandleUpdateAvatar handles PATCH /users/avatar
// @Summary Replace the avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} SuccessResponse{data=domain.Identity}
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/users/avatar [patch]
func (h *UserHandlers) HandleUpdateAvatar() http.HandlerFunc {
	return h.handleImage(domain.FieldAvatar, user.Service.UpdateAvatar, MsgAvatarUpdated)
}

// HandleUpdateCoverImage handles PATCH /users/cover-image
// @Summary Replace the cover image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} SuccessResponse{data=domain.Identity}
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/users/cover-image [patch]
func (h *UserHandlers) HandleUpdateCoverImage() http.HandlerFunc {
	return h.handleImage(domain.FieldCoverImage, user.Service.UpdateCoverImage, MsgCoverUpdated)
}

// imageUpdate is resolved against the service per request, so building routes never touches it
type imageUpdate func(svc user.Service, ctx context.Context, identity *domain.Identity, path string) (*domain.Identity, error)

func (h *UserHandlers) handleImage(field string, update imageUpdate, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		form, ok := h.uploads.Stage(w, r, field)
		if !ok {
			return
		}
		defer form.Close(logger.FromContext(r.Context()))

		updated, err := update(h.users, r.Context(), identity, form.Path(field))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, message, updated)
	}
}

// HandleChannelProfile handles GET /users/c/{username}
// @Summary Channel profile with subscription counts
// @Tags users
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} SuccessResponse{data=domain.ChannelProfile}
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/c/{username} [get]
func (h *UserHandlers) HandleChannelProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := auth.IdentityFromContext(r.Context())

		profile, err := h.profiles.ChannelProfile(r.Context(), pathParam(r, "username"), viewer)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgChannelProfile, profile)
	}
}

// HandleWatchHistory handles GET /users/history
// @Summary Watch history, oldest first
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]domain.VideoWithOwner}
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/history [get]
func (h *UserHandlers) HandleWatchHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		history, err := h.profiles.WatchHistory(r.Context(), identity)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgWatchHistory, history)
	}
}
