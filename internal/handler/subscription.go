package handler

import (
	"net/http"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/engagement"
	"github.com/tubehub/tubehub-api/internal/projection"
)

// SubscriptionHandlers serves subscription toggles and lists
type SubscriptionHandlers struct {
	engagement engagement.Service
	views      projection.Service
}

// NewSubscriptionHandlers creates new subscription handlers
func NewSubscriptionHandlers(svc engagement.Service, views projection.Service) *SubscriptionHandlers {
	return &SubscriptionHandlers{engagement: svc, views: views}
}

// SubscriptionResponse reports the subscription state after a toggle
type SubscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}

// HandleToggleSubscription handles POST /subscriptions/c/{channelId}
// @Summary Subscribe to or unsubscribe from a channel
// @Tags subscriptions
// @Produce json
// @Param channelId path string true "Channel (user) id"
// @Success 200 {object} SuccessResponse{data=SubscriptionResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/subscriptions/c/{channelId} [post]
func (h *SubscriptionHandlers) HandleToggleSubscription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		result, err := h.engagement.ToggleSubscription(r.Context(), identity, pathParam(r, "channelId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		msg := MsgUnsubscribed
		if result.Active {
			msg = MsgSubscribed
		}
		respondSuccess(w, http.StatusOK, msg, SubscriptionResponse{Subscribed: result.Active})
	}
}

// HandleChannelSubscribers handles GET /subscriptions/c/{channelId}
// @Summary Subscribers of a channel
// @Description An empty list is a success with an informational message.
// @Tags subscriptions
// @Produce json
// @Param channelId path string true "Channel (user) id"
// @Success 200 {object} SuccessResponse{data=[]domain.OwnerSummary}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/subscriptions/c/{channelId} [get]
func (h *SubscriptionHandlers) HandleChannelSubscribers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subscribers, err := h.views.ChannelSubscribers(r.Context(), pathParam(r, "channelId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondEdges(w, subscribers, MsgSubscribersFetched, MsgNoSubscribers)
	}
}

// HandleSubscribedChannels handles GET /subscriptions/u/{subscriberId}
// @Summary Channels a user subscribes to
// @Description An empty list is a success with an informational message.
// @Tags subscriptions
// @Produce json
// @Param subscriberId path string true "Subscriber (user) id"
// @Success 200 {object} SuccessResponse{data=[]domain.OwnerSummary}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandlers) HandleSubscribedChannels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channels, err := h.views.SubscribedChannels(r.Context(), pathParam(r, "subscriberId"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondEdges(w, channels, MsgChannelsFetched, MsgNoSubscribedChannels)
	}
}

func respondEdges(w http.ResponseWriter, edges []domain.OwnerSummary, found, empty string) {
	if len(edges) == 0 {
		respondSuccess(w, http.StatusOK, empty, []domain.OwnerSummary{})
		return
	}
	respondSuccess(w, http.StatusOK, found, edges)
}
