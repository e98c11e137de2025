package provider

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/octobees/food-recommender/internal/logging"
	"github.com/octobees/food-recommender/internal/metrics"
)

// Breaker guards one upstream provider. An open breaker rejects calls
// immediately; callers see a transport failure and use their sentinel.
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[[]byte]
}

// NewBreaker opens after at least 10 requests with a failure ratio of 60% or
// more inside one interval, and probes again after timeout. Empty results are
// classified by callers after a successful call, so they never count as
// failures here.
func NewBreaker(name string, interval, timeout time.Duration) *Breaker {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return &Breaker{name: name, cb: cb}
}

// Execute runs fn through the breaker.
func (b *Breaker) Execute(fn func() ([]byte, error)) ([]byte, error) {
	if b == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// State reports the current breaker state, e.g. "closed".
func (b *Breaker) State() string {
	if b == nil {
		return gobreaker.StateClosed.String()
	}
	return b.cb.State().String()
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
