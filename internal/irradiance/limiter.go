package irradiance

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum spacing between outbound irradiance requests.
// It is global across keys, not per-key, matching the upstream service's
// expectations. Like the cache it is injected, not hidden in package state.
type Limiter struct {
	mu          sync.Mutex
	last        time.Time
	minInterval time.Duration
}

// NewLimiter creates a limiter with the given minimum inter-request spacing.
// A zero or negative interval disables waiting (useful in tests).
func NewLimiter(minInterval time.Duration) *Limiter {
	return &Limiter{minInterval: minInterval}
}

// Wait blocks until the minimum interval since the previous request has
// elapsed, or until the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	prev := l.last
	now := time.Now()
	var sleep time.Duration
	if !l.last.IsZero() {
		if elapsed := now.Sub(l.last); elapsed < l.minInterval {
			sleep = l.minInterval - elapsed
		}
	}
	reserved := now.Add(sleep)
	l.last = reserved
	l.mu.Unlock()

	if sleep <= 0 {
		return nil
	}
	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-ctx.Done():
		// The reserved slot never went out; release it so the next caller
		// does not pay for it, unless someone has reserved past us already.
		l.mu.Lock()
		if l.last.Equal(reserved) {
			l.last = prev
		}
		l.mu.Unlock()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
