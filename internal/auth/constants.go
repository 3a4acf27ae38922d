package auth

// Cookie names used for token transport
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// Internal error details, never shown to clients
const (
	ErrMsgSecretRequired = "access and refresh token secrets are required"
	ErrMsgSecretsEqual   = "access and refresh token secrets must differ"
	ErrMsgTokenMissing   = "token missing"
	ErrMsgTokenInvalid   = "token invalid"
	ErrMsgTokenNoSubject = "token has no subject"
)

// Log messages
const (
	LogMsgLoginSucceeded  = "User logged in"
	LogMsgLoginFailed     = "Login failed"
	LogMsgTokenReissued   = "Refresh token rotated"
	LogMsgRefreshRejected = "Refresh token rejected"
	LogMsgLoggedOut       = "User logged out"
)
