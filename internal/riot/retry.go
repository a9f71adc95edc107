package riot

import (
	"context"
	"strconv"
	"time"
)

const (
	defaultMaxAttempts = 2

	// Fallback backoff when the server does not say how long to wait.
	backoffPerAttempt = 1500 * time.Millisecond
	backoffFloor      = 2 * time.Second
)

// RetryPolicy bounds and paces retries for rate limited requests. One policy
// instance is shared by every outbound call the client makes.
type RetryPolicy struct {
	// MaxAttempts is the total request budget, including the first attempt.
	MaxAttempts int
	// Sleep is swapped out in tests. Nil means a context-aware real sleep.
	Sleep func(ctx context.Context, wait time.Duration) error
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: defaultMaxAttempts}
}

// Backoff returns how long to wait before the next attempt. The server
// supplied Retry-After seconds win; otherwise back off by attempt number
// with a floor so the first fallback is never shorter than two seconds.
func (p RetryPolicy) Backoff(retryAfter string, attempt int) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.ParseFloat(retryAfter, 64); err == nil && secs >= 0 {
			return time.Duration(secs * float64(time.Second))
		}
	}

	return max(time.Duration(attempt)*backoffPerAttempt, backoffFloor)
}

func (p RetryPolicy) sleep(ctx context.Context, wait time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, wait)
	}

	return SleepContext(ctx, wait)
}

// SleepContext sleeps for the given duration unless the context ends first.
func SleepContext(ctx context.Context, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
