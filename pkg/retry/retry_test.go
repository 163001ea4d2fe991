package retry_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/prism/pkg/retry"
)

func TestDo(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("Do error: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("retries until success", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 5, BaseDelay: time.Millisecond}

		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Do error: %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("exhaustion wraps the last error", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

		sentinel := errors.New("still broken")
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return sentinel
		})

		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
		if !errors.Is(err, sentinel) {
			t.Errorf("Do error = %v, want wrapped sentinel", err)
		}
		if !strings.Contains(err.Error(), "retries exhausted after 3 attempts") {
			t.Errorf("Do error = %v, want attempt count", err)
		}
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 10, BaseDelay: 50 * time.Millisecond}

		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		err := p.Do(ctx, func(context.Context) error {
			calls++
			cancel()
			return errors.New("transient")
		})

		if !errors.Is(err, context.Canceled) {
			t.Errorf("Do error = %v, want context.Canceled", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("elapsed bound stops before the next delay", func(t *testing.T) {
		p := retry.Policy{
			MaxAttempts: 10,
			MaxElapsed:  time.Millisecond,
			BaseDelay:   time.Hour,
		}

		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return errors.New("transient")
		})

		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
		if err == nil || !strings.Contains(err.Error(), "retries exhausted after 1 attempts") {
			t.Errorf("Do error = %v, want exhaustion after 1 attempt", err)
		}
	})

	t.Run("zero base delay still retries", func(t *testing.T) {
		p := retry.Policy{MaxAttempts: 4}

		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return errors.New("transient")
		})

		if calls != 4 {
			t.Errorf("calls = %d, want 4", calls)
		}
		if err == nil {
			t.Error("Do error = nil, want exhaustion")
		}
	})
}
