// Package retry provides a bounded-retry executor with exponential backoff.
// It is the only resilience mechanism in the system and is not tied to any
// particular operation.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how Do re-attempts a failing operation.
type Policy struct {
	// Tries is the total number of attempts, including the first.
	Tries int
	// Delay is the sleep before the second attempt.
	Delay time.Duration
	// Backoff multiplies the delay after every failed attempt. No jitter.
	Backoff float64
	// RetryIf reports whether an error should trigger another attempt.
	// Nil means every error is retryable.
	RetryIf func(error) bool
}

// DefaultPolicy matches the provider-call defaults used by the research
// pipeline: 3 attempts, 600ms initial delay, 1.8x backoff.
func DefaultPolicy() Policy {
	return Policy{
		Tries:   3,
		Delay:   600 * time.Millisecond,
		Backoff: 1.8,
	}
}

// Do runs op up to p.Tries times, sleeping between attempts but never after
// the last one. Non-retryable errors propagate immediately; otherwise the
// last error is returned once attempts are exhausted. The backoff sleep
// respects ctx cancellation.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if p.Tries < 1 {
		return zero, fmt.Errorf("retry: tries must be >= 1, got %d", p.Tries)
	}

	var lastErr error
	delay := p.Delay

	for attempt := 1; attempt <= p.Tries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if p.RetryIf != nil && !p.RetryIf(err) {
			return zero, err
		}

		if attempt == p.Tries {
			break
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry: canceled while backing off: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Backoff)
	}

	return zero, lastErr
}
