package media

import "time"

// Breaker settings
const (
	BreakerName             = "media-store"
	BreakerMaxRequests      = 1
	BreakerInterval         = time.Minute
	BreakerTimeout          = 30 * time.Second
	BreakerFailureThreshold = 5
)

const (
	defaultContentType = "application/octet-stream"
	videoContentPrefix = "video/"
)

// Log messages
const (
	LogMsgBucketCreated      = "Created media bucket"
	LogMsgBreakerStateChange = "Media store circuit breaker changed state"
	LogMsgProbeFailed        = "Failed to probe video duration"
)

// videoContentTypes covers containers missing from the builtin mime table
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}
