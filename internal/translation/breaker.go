package translation

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSettings controls when a remote translator is given a rest
type BreakerSettings struct {
	MaxFailures uint32        // Consecutive failures before the breaker opens
	OpenTimeout time.Duration // How long the breaker stays open
}

// DefaultBreakerSettings trips after 3 failures in a row for 30 seconds
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{MaxFailures: 3, OpenTimeout: 30 * time.Second}
}

// Breaker stops calling a translator that keeps failing. While open,
// Translate fails fast with gobreaker.ErrOpenState.
type Breaker struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next with a circuit breaker
func NewBreaker(name string, next Translator, settings BreakerSettings, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Translator circuit breaker changed state",
				zap.String("translator", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	return &Breaker{next: next, cb: cb}
}

// Translate forwards to the wrapped translator unless the breaker is open
func (b *Breaker) Translate(ctx context.Context, text, from, to string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, from, to)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// State reports the breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
