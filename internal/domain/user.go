package domain

import "time"

// User represents a registered account together with its secret fields.
// It never leaves the store layer as-is; services hand out Identity or
// ChannelProfile views instead.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	WatchHistory []string  `json:"watchHistory"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the authenticated user resolved from a credential, stripped of secret fields.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	WatchHistory []string  `json:"watchHistory"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity projects the user without password hash and refresh token.
func (u *User) Identity() *Identity {
	history := u.WatchHistory
	if history == nil {
		history = []string{}
	}
	return &Identity{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Fullname:     u.Fullname,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		WatchHistory: history,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Clone returns a copy that shares no slices with i.
func (i *Identity) Clone() *Identity {
	cp := *i
	cp.WatchHistory = append([]string{}, i.WatchHistory...)
	return &cp
}

// OwnerSummary is the embedded owner shape used by every projection.
// All fields are empty when the owner record is missing.
type OwnerSummary struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}
