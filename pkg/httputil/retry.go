package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy controls how often and how patiently [Retry] re-runs an operation.
type Policy struct {
	Attempts int           // total tries, at least 1
	Delay    time.Duration // wait before the second try; doubles afterwards
	MaxDelay time.Duration // upper bound for a single wait, 0 for none
}

// DefaultPolicy is used by [RetryWithBackoff]: 3 attempts starting at 1s.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 8 * time.Second}

// Retry executes fn according to p. It only retries errors wrapped with
// [RetryableError]; other errors are returned immediately.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
				if p.MaxDelay > 0 && delay > p.MaxDelay {
					delay = p.MaxDelay
				}
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is [Retry] with [DefaultPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultPolicy, fn)
}

// IsRetryable reports whether err, or any error it wraps, is a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
