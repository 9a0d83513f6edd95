package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces outbound calls at least one interval apart. The bucket
// holds a single token, so the first call passes at once.
type Limiter struct {
	lim *rate.Limiter
}

// New returns a limiter allowing one call per minInterval. A non-positive
// interval disables limiting.
func New(minInterval time.Duration) *Limiter {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Limiter{lim: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Sleep pauses for d or until ctx is done. A non-positive d returns
// immediately.
func Sleep(ctx context.Context, d time.Duration) error {
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
