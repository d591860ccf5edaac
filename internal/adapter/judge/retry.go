package judge

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure the retry policy may attempt again,
// optionally carrying a server-directed delay from a Retry-After header.
type RetryableError struct {
	Err        error
	RetryAfter time.Duration // 0 when the server gave no hint
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// RetryPolicy is a bounded retry loop, independent of the HTTP client so it
// can be tested without network calls or real delays.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Sleep       func(d time.Duration)
}

// LinearBackoff returns step × attempt for the attempt that just failed.
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return step * time.Duration(attempt)
	}
}

func NewRetryPolicy(maxAttempts int, sleep func(d time.Duration)) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryPolicy{
		MaxAttempts: maxAttempts,
		Backoff:     LinearBackoff(200 * time.Millisecond),
		Sleep:       sleep,
	}
}

// Do runs op until it succeeds, fails permanently, or the attempt budget is
// spent. A server-supplied RetryAfter wins over the computed backoff. The last
// error is returned as-is so callers keep the best diagnostic.
func (p *RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var retryable *RetryableError
		if !errors.As(err, &retryable) {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}

		delay := retryable.RetryAfter
		if delay <= 0 {
			delay = p.Backoff(attempt)
		}
		p.Sleep(delay)
	}
	return lastErr
}
