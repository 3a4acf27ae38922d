package handler

import (
	"net/http"

	"github.com/tubehub/tubehub-api/internal/projection"
	"github.com/tubehub/tubehub-api/internal/tweet"
)

// TweetHandlers serves tweet routes
type TweetHandlers struct {
	tweets tweet.Service
	views  projection.Service
}

// NewTweetHandlers creates new tweet handlers
func NewTweetHandlers(tweets tweet.Service, views projection.Service) *TweetHandlers {
	return &TweetHandlers{tweets: tweets, views: views}
}

// TweetRequest is the request body for creating or editing a tweet
type TweetRequest struct {
	Content string `json:"content" validate:"max=280"`
}

// HandleCreateTweet handles POST /tweets
// @Summary Post a tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Param body body TweetRequest true "Tweet"
// @Success 201 {object} SuccessResponse{data=domain.Tweet}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tweets [post]
func (h *TweetHandlers) HandleCreateTweet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req TweetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create tweet"); err != nil {
			return
		}

		t, err := h.tweets.Create(r.Context(), identity, req.Content)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusCreated, MsgTweetCreated, t)
	}
}

// HandleUserTweets handles GET /tweets/user/{userId}
// @Summary A user's tweets, newest first
// @Tags tweets
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {object} SuccessResponse{data=[]domain.Tweet}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tweets/user/{userId} [get]
func (h *TweetHandlers) HandleUserTweets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tweets, err := h.views.UserTweets(r.Context(), pathParam(r, "userId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgTweetsFetched, tweets)
	}
}

// HandleUpdateTweet handles PATCH /tweets/{tweetId}
// @Summary Edit a tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Param tweetId path string true "Tweet id"
// @Param body body TweetRequest true "Tweet"
// @Success 200 {object} SuccessResponse{data=domain.Tweet}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tweets/{tweetId} [patch]
func (h *TweetHandlers) HandleUpdateTweet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req TweetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update tweet"); err != nil {
			return
		}

		t, err := h.tweets.Update(r.Context(), identity, pathParam(r, "tweetId"), req.Content)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgTweetUpdated, t)
	}
}

// HandleDeleteTweet handles DELETE /tweets/{tweetId}
// @Summary Delete a tweet
// @Tags tweets
// @Produce json
// @Param tweetId path string true "Tweet id"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tweets/{tweetId} [delete]
func (h *TweetHandlers) HandleDeleteTweet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.tweets.Delete(r.Context(), identity, pathParam(r, "tweetId")); err != nil {
			respondServiceError(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, MsgTweetDeleted, struct{}{})
	}
}
