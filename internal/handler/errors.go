package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnavailable           = "Media store is temporarily unavailable. Please try again later."
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidForm           = "Invalid multipart form"
	ErrMsgUploadFailed          = "Failed to read uploaded file"
	ErrMsgRefreshTokenRequired  = "Refresh token is required"
)

// Success messages for API responses
const (
	MsgUserRegistered       = "User registered successfully"
	MsgUserLoggedIn         = "User logged in successfully"
	MsgUserLoggedOut        = "User logged out successfully"
	MsgTokenRefreshed       = "Access token refreshed"
	MsgPasswordChanged      = "Password changed successfully"
	MsgCurrentUser          = "Current user fetched successfully"
	MsgAccountUpdated       = "Account details updated successfully"
	MsgAvatarUpdated        = "Avatar updated successfully"
	MsgCoverUpdated         = "Cover image updated successfully"
	MsgChannelProfile       = "Channel profile fetched successfully"
	MsgWatchHistory         = "Watch history fetched successfully"
	MsgVideosFetched        = "Videos fetched successfully"
	MsgVideoPublished       = "Video published successfully"
	MsgVideoFetched         = "Video fetched successfully"
	MsgVideoUpdated         = "Video updated successfully"
	MsgVideoDeleted         = "Video deleted successfully"
	MsgPublishToggled       = "Publish status toggled successfully"
	MsgCommentsFetched      = "Comments fetched successfully"
	MsgCommentAdded         = "Comment added successfully"
	MsgCommentUpdated       = "Comment updated successfully"
	MsgCommentDeleted       = "Comment deleted successfully"
	MsgLikeAdded            = "Like added"
	MsgLikeRemoved          = "Like removed"
	MsgLikedVideos          = "Liked videos fetched successfully"
	MsgTweetCreated         = "Tweet created successfully"
	MsgTweetsFetched        = "User tweets fetched successfully"
	MsgTweetUpdated         = "Tweet updated successfully"
	MsgTweetDeleted         = "Tweet deleted successfully"
	MsgSubscribed           = "Subscribed successfully"
	MsgUnsubscribed         = "Unsubscribed successfully"
	MsgSubscribersFetched   = "Subscribers fetched successfully"
	MsgNoSubscribers        = "No subscribers are found"
	MsgChannelsFetched      = "Subscribed channels fetched successfully"
	MsgNoSubscribedChannels = "No subscribed channels are found"
	MsgPlaylistCreated      = "Playlist created successfully"
	MsgPlaylistFetched      = "Playlist fetched successfully"
	MsgPlaylistsFetched     = "Playlists fetched successfully"
	MsgPlaylistUpdated      = "Playlist updated successfully"
	MsgPlaylistDeleted      = "Playlist deleted successfully"
	MsgVideoAddedToList     = "Video added to playlist"
	MsgVideoRemovedFromList = "Video removed from playlist"
	MsgChannelStats         = "Channel stats fetched successfully"
	MsgChannelVideos        = "Channel videos fetched successfully"
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgRequestFailed   = "Request failed"
	LogMsgRequestRejected = "Request rejected"
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgStageFailed     = "Failed to stage upload"
	LogMsgCleanupFailed   = "Failed to remove staged upload"
	LogMsgReadinessFailed = "Readiness check failed"
)

// HTTP header names and values
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)
