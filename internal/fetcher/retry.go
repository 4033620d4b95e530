package fetcher

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy is an exponential backoff policy for the HTTP path.
type RetryPolicy struct {
	// MaxAttempts includes the first attempt.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 10 * time.Second
	}
	return p
}

// retry runs fn until it succeeds, returns a non-retryable error, or the
// attempts are exhausted. The last error is returned unchanged so callers can
// still match ErrAccessDenied.
func retry(ctx context.Context, policy RetryPolicy, retryable func(error) bool, fn func() error) error {
	policy = policy.withDefaults()
	delay := policy.InitialDelay

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= policy.MaxAttempts || !retryable(err) {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry interrupted: %w", ctx.Err())
		case <-timer.C:
		}

		delay *= 2
		if delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
}
