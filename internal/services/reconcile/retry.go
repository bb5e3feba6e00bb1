package reconcile

import (
	"context"
	"time"

	"raillo/internal/upstream"
)

// RetryPolicy bounds a polling loop: wait InitialDelay once, then run up to
// MaxAttempts attempts with a fixed Delay between them. Only errors the
// policy deems retryable keep the loop going; anything else is terminal on
// the spot.
type RetryPolicy struct {
	InitialDelay time.Duration
	MaxAttempts  int
	Delay        time.Duration
	IsRetryable  func(error) bool
}

// DefaultPolicy is tuned for the post-payment settlement window: the record
// usually appears within the first few seconds of approval.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		InitialDelay: 2 * time.Second,
		MaxAttempts:  4,
		Delay:        3 * time.Second,
		IsRetryable:  RetryableLookupError,
	}
}

// RetryableLookupError reports whether a payment lookup failure is worth
// retrying: the record not existing yet, or the backend being transiently
// broken. Client-side rejections are terminal.
func RetryableLookupError(err error) bool {
	return upstream.IsNotFound(err) || upstream.IsServerError(err)
}

// Run executes fn under the policy until it succeeds, fails terminally, the
// attempts run out, or the context ends. The returned error is fn's last
// error, or the context's.
func (p RetryPolicy) Run(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	if err := sleep(ctx, p.InitialDelay); err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, p.Delay); err != nil {
				return err
			}
		}
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if p.IsRetryable != nil && !p.IsRetryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
