package identify

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter owns the mutable rate-limit and quota state for one source
// adapter: a steady courtesy pace between calls, a next-allowed timestamp
// extended by 429 backoff, and a quota-exceeded flag that short-circuits
// all further calls until explicitly reset. State is per-instance so tests
// can run adapters with independent clocks.
type Limiter struct {
	pacer         *rate.Limiter
	nextAllowed   time.Time
	quotaExceeded bool

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithClock overrides the wall clock (used in tests).
func WithClock(now func() time.Time) LimiterOption {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithSleep overrides the sleep implementation (used in tests).
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) LimiterOption {
	return func(l *Limiter) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// NewLimiter creates a limiter pacing calls at least interval apart.
func NewLimiter(interval time.Duration, opts ...LimiterOption) *Limiter {
	limit := rate.Limit(rate.Inf)
	if interval > 0 {
		limit = rate.Every(interval)
	}
	l := &Limiter{
		pacer: rate.NewLimiter(limit, 1),
		now:   time.Now,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until the cooldown from any previous backoff has passed and
// the courtesy pace allows another call.
func (l *Limiter) Wait(ctx context.Context, status StatusFunc) error {
	if wait := l.nextAllowed.Sub(l.now()); wait > 0 {
		status.Notify(fmt.Sprintf("Rate limit: waiting %.1fs", wait.Seconds()), SeverityWarn)
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
	return l.pacer.Wait(ctx)
}

// Backoff pushes the next-allowed timestamp out by d and sleeps through it.
func (l *Limiter) Backoff(ctx context.Context, d time.Duration) error {
	l.nextAllowed = l.now().Add(d)
	return l.sleep(ctx, d)
}

// MarkQuotaExhausted records that the source's daily quota is spent.
func (l *Limiter) MarkQuotaExhausted() {
	l.quotaExceeded = true
}

// QuotaExhausted reports whether the source is shut down for the day.
func (l *Limiter) QuotaExhausted() bool {
	return l.quotaExceeded
}

// ResetQuota clears the quota flag. Callers reset at the start of each scan.
func (l *Limiter) ResetQuota() {
	l.quotaExceeded = false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
