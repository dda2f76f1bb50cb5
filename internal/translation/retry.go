package translation

import (
	"context"
	"sync/atomic"
	"time"

	"codeberg.org/snonux/banglacsv/internal"
)

const (
	// DefaultAttempts is how many times a remote call is tried per text
	DefaultAttempts = 3
	// DefaultRetryDelay is the wait after each failed attempt
	DefaultRetryDelay = time.Second
)

// Retrying wraps a Translator with a bounded fixed-delay retry. Blank text is
// returned as is without calling the wrapped translator. When every attempt
// fails the original text is returned with a nil error, so a batch never stops
// on a single bad cell.
type Retrying struct {
	next     Translator
	attempts int
	delay    time.Duration

	fallbacks atomic.Int64
	lastErr   atomic.Pointer[error]
}

// NewRetrying wraps next. Non-positive attempts and negative delays fall back
// to the defaults.
func NewRetrying(next Translator, attempts int, delay time.Duration) *Retrying {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if delay < 0 {
		delay = DefaultRetryDelay
	}
	return &Retrying{
		next:     next,
		attempts: attempts,
		delay:    delay,
	}
}

// Translate implements Translator. The only error it returns is the context's,
// and then the original text comes back with it.
func (r *Retrying) Translate(ctx context.Context, text, source, target string) (string, error) {
	if internal.IsBlank(text) {
		return text, nil
	}

	for attempt := 1; attempt <= r.attempts; attempt++ {
		translated, err := r.next.Translate(ctx, text, source, target)
		if err == nil {
			return translated, nil
		}
		r.lastErr.Store(&err)

		if err := sleep(ctx, r.delay); err != nil {
			return text, err
		}
	}

	r.fallbacks.Add(1)
	return text, nil
}

// Fallbacks returns how many texts were passed through after exhausting all attempts
func (r *Retrying) Fallbacks() int {
	return int(r.fallbacks.Load())
}

// LastError returns the most recent error from the wrapped translator, if any
func (r *Retrying) LastError() error {
	if p := r.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Attempts returns the configured attempt count
func (r *Retrying) Attempts() int {
	return r.attempts
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
