package domain

import "time"

// ChannelProfile is the public view of a user's channel.
type ChannelProfile struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	Fullname                  string `json:"fullname"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscriberCount           int64  `json:"subscriberCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// VideoSummary is the video shape embedded in list projections.
type VideoSummary struct {
	ID          string    `json:"id"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VideoWithOwner is a video summary with its owner embedded.
type VideoWithOwner struct {
	VideoSummary
	Owner OwnerSummary `json:"owner"`
}

// LikedVideo is one row per like on a video.
type LikedVideo struct {
	LikeID string       `json:"likeId"`
	Video  VideoSummary `json:"video"`
	Owner  OwnerSummary `json:"owner"`
}

// CommentView is a comment with its author.
type CommentView struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	Owner     OwnerSummary `json:"owner"`
}

// CommentPage is one page of a video's comments, newest first.
type CommentPage struct {
	Comments     []CommentView `json:"comments"`
	CommentCount int64         `json:"commentCount"`
	TotalPages   int           `json:"totalPages"`
	CurrentPage  int           `json:"currentPage"`
}

// VideoPage is one page of the public video list.
type VideoPage struct {
	Videos      []VideoWithOwner `json:"videos"`
	TotalVideos int64            `json:"totalVideos"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

// ChannelStats aggregates a channel's content and audience.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// PlaylistView is a playlist with its owner and populated videos, in playlist order.
type PlaylistView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Owner       OwnerSummary     `json:"owner"`
	Videos      []VideoWithOwner `json:"videos"`
	TotalVideos int              `json:"totalVideos"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// VideoQuery filters and orders the public video list.
type VideoQuery struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	OwnerID  string
	// IncludeUnpublished is set when the owner lists their own channel.
	IncludeUnpublished bool
}

// Normalize applies defaults and clamps. Unknown sort keys fall back to createdAt desc.
func (q VideoQuery) Normalize() VideoQuery {
	q.Page, q.Limit = NormalizePage(q.Page, q.Limit)
	switch q.SortBy {
	case SortByCreatedAt, SortByViews, SortByDuration, SortByTitle:
	default:
		q.SortBy = SortByCreatedAt
	}
	if q.SortType != SortAsc {
		q.SortType = SortDesc
	}
	return q
}

// NormalizePage defaults page to 1 and limit to 10, capping page at MaxPage
// and limit at MaxLimit so Offset stays in range.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset is the number of rows skipped before page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages is ceil(count/limit).
func TotalPages(count int64, limit int) int {
	if limit <= 0 || count <= 0 {
		return 0
	}
	l := int64(limit)
	return int((count + l - 1) / l)
}
