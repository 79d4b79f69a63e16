// Package retry implements the shared retry-with-backoff policy applied at
// every external-call boundary: page fetches, web searches and model calls.
package retry

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// RateLimitError is returned by external clients when the service rejected
// the call for rate limiting. RetryAfter carries the wait hint named by the
// service, zero when no hint was given.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

// Error returns the error message
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limit exceeded: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *RateLimitError) Unwrap() error { return e.Err }

var retryAfterRe = regexp.MustCompile(`retry after (\d+)s`)

// ParseRetryAfter extracts an explicit "retry after Ns" hint from a service
// error message. Returns zero duration when the message names no wait time.
func ParseRetryAfter(msg string) time.Duration {
	m := retryAfterRe.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// Policy retries an external call with exponential backoff. Rate-limited
// failures are always retried, honoring the service's wait hint exactly when
// one is present. Other failures abort immediately unless the policy was
// built with WithRetryAny (the model-call wrapper retries everything).
type Policy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	retryAny    bool
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option configures a Policy
type Option func(*Policy)

// WithRetryAny makes the policy retry every failure, not just rate limits
func WithRetryAny() Option {
	return func(p *Policy) { p.retryAny = true }
}

// WithSleep overrides the wait implementation, used in tests
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Policy) { p.sleep = fn }
}

// New creates a Policy with the given attempt cap, initial delay and delay
// ceiling. The delay doubles on each retried failure up to the ceiling.
func New(maxAttempts int, baseDelay, maxDelay time.Duration, opts ...Option) *Policy {
	p := &Policy{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Do invokes fn up to MaxAttempts times. On exhaustion the last error is
// returned; callers decide whether that is fatal (model calls) or degrades
// to "no data" (fetch and search paths).
func (p *Policy) Do(ctx context.Context, fn func() error) error {
	delay := p.baseDelay
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var rle *RateLimitError
		rateLimited := errors.As(lastErr, &rle)
		if !rateLimited && !p.retryAny {
			return lastErr // permanent failure, abort
		}
		if attempt == p.maxAttempts {
			break
		}

		// the service's own hint wins over the computed backoff
		delay = min(delay*2, p.maxDelay)
		wait := delay
		if rateLimited && rle.RetryAfter > 0 {
			wait = rle.RetryAfter
		}

		if err := p.sleep(ctx, wait); err != nil {
			return err
		}
	}

	return fmt.Errorf("%d attempts exhausted: %w", p.maxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
