package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultBreakerFailures is the consecutive failure count that opens the breaker
	DefaultBreakerFailures = 5
	// DefaultBreakerTimeout is how long an open breaker rejects calls
	DefaultBreakerTimeout = 30 * time.Second
)

// Breaker stops calling a failing backend for a while once it has failed
// several times in a row. Rejected calls return gobreaker.ErrOpenState.
type Breaker struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next with a circuit breaker named after the backend
func NewBreaker(next Translator, name string, failures uint32, timeout time.Duration) *Breaker {
	if failures == 0 {
		failures = DefaultBreakerFailures
	}
	if timeout <= 0 {
		timeout = DefaultBreakerTimeout
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fmt.Printf("  Circuit breaker %s: %s -> %s\n", name, from, to)
		},
		// A cancelled job says nothing about the backend's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate implements Translator
func (b *Breaker) Translate(ctx context.Context, text, source, target string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, source, target)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// State returns the breaker's current state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
