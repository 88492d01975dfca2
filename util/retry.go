package util

import (
	"context"
	"fmt"
	"time"
)

func Retry[T any](f func() (T, error), maxRetries int, d time.Duration) (v T, err error) {
	return RetryContext(context.Background(), func(context.Context) (T, error) { return f() }, maxRetries, d)
}

// RetryContext calls f up to maxRetries+1 times, waiting d between failed attempts.
func RetryContext[T any](ctx context.Context, f func(context.Context) (T, error), maxRetries int, d time.Duration) (v T, err error) {
	for i := 0; i <= maxRetries; i++ {
		if v, err = f(ctx); err == nil {
			return v, nil
		} else if i == maxRetries {
			break
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return *new(T), ctx.Err()
		case <-t.C:
		}
	}
	return v, fmt.Errorf("max retries reached: %w", err)
}
