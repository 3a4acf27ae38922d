package domain

// Pagination defaults for list projections
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 100000

	// bcrypt ignores nothing past this and refuses longer input
	MaxPasswordBytes = 72
)

// Video list sort keys accepted from clients
const (
	SortByCreatedAt = "createdAt"
	SortByViews     = "views"
	SortByDuration  = "duration"
	SortByTitle     = "title"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Upload form fields
const (
	FieldAvatar     = "avatar"
	FieldCoverImage = "coverImage"
	FieldVideo      = "video"
	FieldThumbnail  = "thumbnail"
)
