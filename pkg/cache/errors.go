package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a failure to reach the Redis or MongoDB backend.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks a backend error that [RetryWithBackoff] retries.
type RetryableError struct{ Err error }

// Retryable marks err as retryable; nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs a backend call up to 3 times, doubling a 1s delay
// between attempts. Only [Retryable] errors are retried; a cancelled ctx
// ends the wait. Cache failures never fail a render, so callers treat the
// final error as a miss.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
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
			}
		}
	}
	return lastErr
}
