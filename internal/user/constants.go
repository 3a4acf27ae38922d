package user

// Log messages
const (
	LogMsgUserRegistered     = "User registered"
	LogMsgPasswordChanged    = "Password changed"
	LogMsgAssetDiscardFailed = "Failed to discard unreferenced upload"
)
