package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Engagement metric names
const (
	MetricNameLikesToggled         = "likes_toggled_total"
	MetricNameSubscriptionsToggled = "subscriptions_toggled_total"
	MetricNameAuthEvents           = "auth_events_total"
)

// Media store metric names
const (
	MetricNameMediaOperations   = "media_operations_total"
	MetricNameMediaDuration     = "media_operation_duration_seconds"
	MetricNameMediaBreakerState = "media_circuit_breaker_state"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextLikesToggled         = "Total number of like toggles by target kind and resulting state"
	HelpTextSubscriptionsToggled = "Total number of subscription toggles by resulting state"
	HelpTextAuthEvents           = "Total number of authentication events by type"

	HelpTextMediaOperations   = "Total number of media store operations by outcome"
	HelpTextMediaDuration     = "Media store operation latency in seconds"
	HelpTextMediaBreakerState = "Media store circuit breaker state (0 closed, 1 half-open, 2 open)"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelKind      = "kind"
	LabelState     = "state"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

const (
	StateOn  = "on"
	StateOff = "off"

	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"

	OperationUpload = "upload"
	OperationDelete = "delete"

	AuthLogin        = "login"
	AuthLoginFailed  = "login_failed"
	AuthRefresh      = "refresh"
	AuthRefreshFail  = "refresh_failed"
	AuthLogout       = "logout"
	AuthRegistration = "registration"

	// PathUnmatched labels requests that matched no route, keeping label cardinality bounded
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// MediaLatencyBuckets covers uploads of large video files
var MediaLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}
