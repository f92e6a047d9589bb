// Package retry provides a bounded fixed-delay retry policy for external
// calls (content generation, channel delivery). It honors provider-signaled
// backoff waits exactly while charging every failure the same attempt cost.
package retry

import (
	"context"
	"errors"
	"time"
)

// BackoffSignal is implemented by errors that carry a provider-mandated
// wait (rate limits, flood control). When an attempt fails with such an
// error, the policy sleeps for the signaled duration plus WaitPadding
// instead of the fixed delay. The failure still consumes exactly one
// attempt, the same as any other transient error.
type BackoffSignal interface {
	error
	RetryAfter() time.Duration
}

// Policy defines the retry behavior for a single external call.
//
// Unlike exponential strategies, the delay here is fixed: the upstream
// services the library talks to either recover quickly or signal their own
// wait, so there is nothing to gain from growing delays. The schedule is:
//
//	Attempt 1 → fail → sleep Delay (or signaled wait + WaitPadding)
//	Attempt 2 → fail → sleep ...
//	Attempt 3 → fail → error returned to the caller
type Policy struct {
	MaxAttempts int           // Total attempts including the first one
	Delay       time.Duration // Fixed delay between attempts
	WaitPadding time.Duration // Added on top of provider-signaled waits

	// Sleep overrides how the policy waits between attempts.
	// Nil means sleep on a timer, aborting early if ctx is canceled.
	// Tests inject a recording implementation here.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the production retry policy: 3 attempts with a
// 5 second fixed delay, signaled waits padded by 1 second.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       5 * time.Second,
		WaitPadding: 1 * time.Second,
	}
}

// NextDelay returns the delay to observe after a failed attempt.
// A BackoffSignal in the error chain overrides the fixed delay with the
// signaled wait plus WaitPadding.
func (p Policy) NextDelay(err error) time.Duration {
	if wait, ok := WaitHint(err); ok {
		return wait + p.WaitPadding
	}
	return p.Delay
}

// Do runs op up to MaxAttempts times, sleeping between attempts.
// The first nil result wins. The last attempt's error is returned as-is so
// the caller can inspect it; intermediate failures are only visible through
// the delay they cause. Context cancellation aborts the wait and returns
// the context's error.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := p.sleep(ctx, p.NextDelay(lastErr)); err != nil {
			return err
		}
	}
	return lastErr
}

// WaitHint extracts a provider-signaled wait from an error chain.
// Returns false if no BackoffSignal with a positive wait is present.
func WaitHint(err error) (time.Duration, bool) {
	var sig BackoffSignal
	if errors.As(err, &sig) && sig.RetryAfter() > 0 {
		return sig.RetryAfter(), true
	}
	return 0, false
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
