package middleware

// Token transport
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// Log Messages
const (
	LogMsgAccessDenied      = "Access token rejected"
	LogMsgAnonymousFallback = "Ignoring invalid access token on public route"
)
