// Package retry implements the single retry policy shared by every
// external-API caller in the engine. A policy pairs a backoff schedule with
// an error classifier so call sites never duplicate retry logic.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Classifier reports whether an error is transient and worth another
// attempt. A nil classifier retries every error.
type Classifier func(error) bool

// Policy describes a bounded exponential backoff schedule.
type Policy struct {
	// MaxAttempts caps the total number of attempts, first call included.
	MaxAttempts int
	// BaseDelay is the delay before the second attempt; it doubles per retry.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay.
	MaxDelay time.Duration
	// Jitter adds up to this much random extra delay per retry to avoid
	// thundering-herd retries against a rate-limited provider.
	Jitter time.Duration
	// Retryable classifies errors; non-retryable errors surface immediately.
	Retryable Classifier
}

// DefaultPolicy matches the provider retry contract: three attempts, one
// second base delay, doubling.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		Jitter:      500 * time.Millisecond,
	}
}

// Do runs fn until it succeeds, the error is classified non-retryable, the
// attempt budget is exhausted, or ctx is done. The last error is returned
// unwrapped so callers can inspect it.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if waitErr := p.wait(ctx, attempt); waitErr != nil {
				return waitErr
			}
		}
		if err = fn(); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
	}
	return err
}

// wait sleeps for the backoff delay of the given retry attempt (1-based),
// honoring context cancellation.
func (p Policy) wait(ctx context.Context, attempt int) error {
	delay := p.BaseDelay << (attempt - 1)
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if p.Jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
