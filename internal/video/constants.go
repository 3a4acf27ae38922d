package video

// Log messages
const (
	LogMsgVideoPublished     = "Video published"
	LogMsgVideoDeleted       = "Video deleted"
	LogMsgAssetDeleteFailed  = "Failed to delete video asset, keeping record"
	LogMsgAssetDiscardFailed = "Failed to discard unreferenced asset"
)
