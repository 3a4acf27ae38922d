package domain

import "time"

// Subscription is a subscriber -> channel edge. Both ends are users.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber"`
	ChannelID    string    `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}
