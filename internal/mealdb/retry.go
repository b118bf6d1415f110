package mealdb

import (
	"context"
	"time"
)

// Retry policy for upstream calls: after the first failure, up to
// maxRetries additional attempts with exponentially doubling delay
// (1s, 2s, 4s). The backoff blocks the calling operation but aborts
// early on context cancellation.
const (
	maxRetries        = 3
	initialRetryDelay = 1000 * time.Millisecond
)

// RetryDelay returns the delay before retry attempt n (0-indexed:
// attempt 0 follows the first failure).
func RetryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return initialRetryDelay << attempt
}

// sleepFunc waits for d or until ctx is done. Injected so tests can
// count delays instead of paying them.
type sleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext is the production sleeper.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
