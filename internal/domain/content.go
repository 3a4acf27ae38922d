package domain

import "time"

// Video is an uploaded video owned exclusively by its creator.
type Video struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	VideoFile   string    `json:"videoFile"`
	VideoFileID string    `json:"-"`
	Thumbnail   string    `json:"thumbnail"`
	ThumbnailID string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (v *Video) Owner() string { return v.OwnerID }

// Comment is a comment left on a video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video"`
	OwnerID   string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) Owner() string { return c.OwnerID }

// Tweet is a short text post.
type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tweet) Owner() string { return t.OwnerID }

// Playlist is an ordered list of video ids. Duplicates are allowed.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoIDs    []string  `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Playlist) Owner() string { return p.OwnerID }
