package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/metrics"
)

// GuardedStore bounds every call with a timeout and a circuit breaker and
// translates failures into domain errors. No call is retried.
type GuardedStore struct {
	next    Store
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[*Asset]
}

// NewGuardedStore wraps next
func NewGuardedStore(next Store, timeout time.Duration) *GuardedStore {
	settings := gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: BreakerMaxRequests,
		Interval:    BreakerInterval,
		Timeout:     BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.MediaBreakerState.Set(float64(to))
			slog.Default().Warn(LogMsgBreakerStateChange, "breaker", name, "from", from.String(), "to", to.String())
		},
		// A client hanging up is not a media store failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &GuardedStore{
		next:    next,
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker[*Asset](settings),
	}
}

// Upload returns domain.ErrMediaUpload on failure and
// domain.ErrMediaUnavailable on timeout or an open breaker.
func (g *GuardedStore) Upload(ctx context.Context, path string) (*Asset, error) {
	asset, err := g.run(ctx, metrics.OperationUpload, func(ctx context.Context) (*Asset, error) {
		return g.next.Upload(ctx, path)
	})
	if err != nil {
		return nil, translate(err, domain.ErrMediaUpload)
	}
	return asset, nil
}

// Delete returns domain.ErrMediaDelete on failure and
// domain.ErrMediaUnavailable on timeout or an open breaker.
func (g *GuardedStore) Delete(ctx context.Context, id string) error {
	_, err := g.run(ctx, metrics.OperationDelete, func(ctx context.Context) (*Asset, error) {
		return nil, g.next.Delete(ctx, id)
	})
	if err != nil {
		return translate(err, domain.ErrMediaDelete)
	}
	return nil
}

func (g *GuardedStore) run(ctx context.Context, op string, fn func(context.Context) (*Asset, error)) (*Asset, error) {
	start := time.Now()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	asset, err := g.breaker.Execute(func() (*Asset, error) {
		return fn(ctx)
	})

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case isUnavailable(err):
		outcome = metrics.OutcomeUnavailable
	default:
		outcome = metrics.OutcomeError
	}
	metrics.MediaOperations.WithLabelValues(op, outcome).Inc()
	metrics.MediaOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return asset, err
}

func isUnavailable(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}

func translate(err, failure error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", domain.ErrMediaUnavailable, err)
	}
	return fmt.Errorf("%w: %w", failure, err)
}
