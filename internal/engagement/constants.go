package engagement

// Log messages
const (
	LogMsgConcurrentLike         = "Like already created by a concurrent request"
	LogMsgConcurrentSubscription = "Subscription already created by a concurrent request"
)
