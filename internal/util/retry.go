package util

import (
	"context"
	"errors"
	"time"
)

// RetryWithContext calls fn up to maxTries times until it returns nil error,
// sleeping delay*attempt between attempts. If maxTries <= 0, it defaults to 1.
// Context errors and errors for which permanent returns true stop the loop
// immediately.
func RetryWithContext[T any](
	ctx context.Context,
	maxTries int,
	delay time.Duration,
	permanent func(error) bool,
	fn func(context.Context) (T, error),
) (T, error) {
	if maxTries <= 0 {
		maxTries = 1
	}
	var lastErr error
	var zero T
	for i := 0; i < maxTries; i++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		if permanent != nil && permanent(err) {
			return zero, err
		}
		lastErr = err

		if i < maxTries-1 && delay > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay * time.Duration(i+1)):
			}
		}
	}
	return zero, lastErr
}
