package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgTooManyRequests  = "Too many requests. Please try again later."
	ErrMsgRouteNotFound    = "Route not found"
	ErrMsgMethodNotAllowed = "Method not allowed"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAuthorization      = "Authorization"
	HeaderCookie             = "Cookie"
	HeaderContentTypeName    = "Content-Type"
	HeaderRequestID          = "X-Request-ID"
	HeaderForwardedFor       = "X-Forwarded-For"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderCacheControl       = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
	HeaderValueNoStore              = "no-store"
)

// MediaTypeMultipart selects the upload body limit
const MediaTypeMultipart = "multipart/form-data"

// APIPrefix is the mount point of the versioned API
const APIPrefix = "/api/v1"

// Abuse detection
const (
	DetectorWindow             = 5 * time.Minute
	DefaultDetectorMaxRequests = 1000
	FailedAuthAlertThreshold   = 5
)

// Server timeouts. Writes allow for media uploads inside the request.
const (
	ReadHeaderTimeout = 5 * time.Second
	IdleTimeout       = 120 * time.Second
	CORSMaxAge        = 300
)

// Paths that are not request-logged
var quietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const RedactedValue = "[REDACTED]"
