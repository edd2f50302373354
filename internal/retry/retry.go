// Package retry provides bounded retrying with exponential backoff. It is
// used only for read-only probes; mutations are never retried implicitly.
package retry

import (
	"context"
	"fmt"
	"time"
)

type config struct {
	attempts     int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

// Option adjusts the retry behaviour.
type Option func(*config)

// Attempts sets the total number of attempts (including the first).
func Attempts(n int) Option {
	return func(c *config) { c.attempts = n }
}

// InitialDelay sets the delay before the second attempt.
func InitialDelay(d time.Duration) Option {
	return func(c *config) { c.initialDelay = d }
}

// MaxDelay caps the backoff delay.
func MaxDelay(d time.Duration) Option {
	return func(c *config) { c.maxDelay = d }
}

// Do runs op until it succeeds, the attempt budget is exhausted, or ctx is
// done. Delays grow exponentially between attempts.
func Do(ctx context.Context, op func() error, opts ...Option) error {
	cfg := &config{
		attempts:     3,
		initialDelay: time.Second,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	delay := cfg.initialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.attempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == cfg.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled after %d attempt(s): %w", attempt, ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.multiplier)
		if delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}
	}

	return fmt.Errorf("failed after %d attempt(s): %w", cfg.attempts, lastErr)
}
