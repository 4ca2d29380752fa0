package fetch

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy retries an operation with a per-attempt jitter delay and
// exponential backoff between failures. The zero value is unusable; use
// DefaultRetryPolicy or construct explicitly.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	JitterMin   time.Duration
	JitterMax   time.Duration

	// sleep is injectable for tests; nil selects a context-aware sleep.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy mirrors the update pipeline defaults: three
// attempts, 500ms base backoff, 150-350ms pre-request jitter.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	JitterMin:   150 * time.Millisecond,
	JitterMax:   350 * time.Millisecond,
}

// Do runs fn until it succeeds or the attempt budget is exhausted. Each
// attempt is preceded by a random jitter sleep; failures back off
// exponentially. The last error is returned on exhaustion.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	backoff := p.BaseDelay
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := sleep(ctx, p.jitter()); err != nil {
			return err
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt < p.MaxAttempts-1 {
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff *= 2
		}
	}
	return lastErr
}

func (p RetryPolicy) jitter() time.Duration {
	if p.JitterMax <= p.JitterMin {
		return p.JitterMin
	}
	return p.JitterMin + time.Duration(rand.Int63n(int64(p.JitterMax-p.JitterMin)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
