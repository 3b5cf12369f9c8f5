package httpx

import (
	"context"
	"time"
)

// RetryPolicy is a small reusable retry-with-backoff policy: a fixed attempt
// cap, an exponentially doubling delay, and a predicate deciding which errors
// are worth retrying. The delay is slept after every retryable failure, the
// final one included, matching the upstream client behavior this wraps.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Retryable   func(error) bool
	OnRetry     func(attempt int, sleep time.Duration, err error)
}

// Do runs fn until it succeeds, fails non-retryably, or the attempt cap is
// reached. The last error is returned on exhaustion.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	delay := p.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(lastErr) {
			return lastErr
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, lastErr)
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return lastErr
}
