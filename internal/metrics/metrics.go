package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Engagement Metrics
var (
	LikesToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLikesToggled,
			Help: HelpTextLikesToggled,
		},
		[]string{LabelKind, LabelState},
	)

	SubscriptionsToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubscriptionsToggled,
			Help: HelpTextSubscriptionsToggled,
		},
		[]string{LabelState},
	)

	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuthEvents,
			Help: HelpTextAuthEvents,
		},
		[]string{LabelType},
	)
)

// Media Store Metrics
var (
	MediaOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMediaOperations,
			Help: HelpTextMediaOperations,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	MediaOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameMediaDuration,
			Help:    HelpTextMediaDuration,
			Buckets: MediaLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	MediaBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameMediaBreakerState,
			Help: HelpTextMediaBreakerState,
		},
	)
)

// ToggleState labels a toggle outcome.
func ToggleState(active bool) string {
	if active {
		return StateOn
	}
	return StateOff
}
