// Package retry provides bounded exponential backoff for transient failures.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy bounds a retried operation by attempt count and total elapsed time.
// Delays grow exponentially from BaseDelay; Jitter randomizes each delay
// uniformly over [0, delay) so concurrent callers do not synchronize against
// a rate-limited dependency.
type Policy struct {
	MaxAttempts int
	MaxElapsed  time.Duration
	BaseDelay   time.Duration
	Jitter      bool
}

// Do invokes fn until it succeeds, the policy is exhausted, or ctx is
// cancelled. Every error from fn is treated as retryable; callers must not
// route fatal conditions through Do. The last error is returned wrapped with
// the number of attempts made.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	start := time.Now()

	var lastErr error
	attempts := 0

	for attempt := range p.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		attempts++
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == p.MaxAttempts-1 {
			break
		}

		delay := p.delay(attempt)
		if p.MaxElapsed > 0 && time.Since(start)+delay > p.MaxElapsed {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("retries exhausted after %d attempts: %w", attempts, lastErr)
}

func (p Policy) delay(attempt int) time.Duration {
	delay := p.BaseDelay << attempt
	if p.Jitter && delay > 0 {
		delay = rand.N(delay)
	}
	return delay
}
