// Package runtime provides retry utilities for database operations
package runtime

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrRetryExhausted is returned when every allowed attempt failed transiently
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// RetryPolicy declares how transient failures are retried
// MaxAttempts counts retries, so an operation runs at most MaxAttempts+1 times
type RetryPolicy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	Jitter        bool
}

// NoRetry returns a policy that runs an operation exactly once
func NoRetry() RetryPolicy {
	return RetryPolicy{}
}

// NewRetryPolicy returns the default backoff policy with maxAttempts retries
func NewRetryPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   maxAttempts,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		Jitter:        true,
	}
}

// Enabled reports whether failures are retried at all
func (p RetryPolicy) Enabled() bool {
	return p.MaxAttempts > 0
}

// delay returns the wait before retry number attempt (starting at 0)
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * p.BackoffFactor)
		if p.MaxDelay > 0 && d > p.MaxDelay {
			d = p.MaxDelay
			break
		}
	}

	if p.Jitter && d > 0 {
		// ±25%
		jitterRange := d / 4
		if jitterRange > 0 {
			d = d - jitterRange + time.Duration(rand.Int63n(int64(jitterRange)*2))
		}
	}
	return d
}

// Retry runs fn, retrying transient failures according to policy
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= policy.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !policy.Enabled() || !IsTransient(err) {
			return err
		}

		if attempt == policy.MaxAttempts {
			break
		}

		select {
		case <-time.After(policy.delay(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, policy.MaxAttempts+1, lastErr)
}

// RetryWithResult is Retry for functions that return a value
func RetryWithResult[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Retry(ctx, policy, func(ctx context.Context) error {
		var fnErr error
		result, fnErr = fn(ctx)
		return fnErr
	})
	return result, err
}
