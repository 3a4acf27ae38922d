package domain

import "time"

// TargetKind names the entity a like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// Valid reports whether k is one of the known kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// Target identifies exactly one video, comment or tweet.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// Like is a (user, target) pair. At most one exists per pair.
type Like struct {
	ID        string    `json:"id"`
	LikedBy   string    `json:"likedBy"`
	Target    Target    `json:"target"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggleResult reports the state after a like or subscription toggle.
type ToggleResult struct {
	Active bool `json:"active"`
}
