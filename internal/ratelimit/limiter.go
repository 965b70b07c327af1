package ratelimit

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval matches the free Alpha Vantage tier of 5 requests per minute.
const DefaultInterval = 12 * time.Second

// Limiter spaces calls at least Interval apart. Callers are admitted in the
// order they reserve a slot.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a Limiter. A non-positive interval selects DefaultInterval.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Interval returns the enforced spacing.
func (l *Limiter) Interval() time.Duration { return l.interval }

// Wait blocks until the caller's slot arrives or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := l.now()
	slot := now
	if !l.last.IsZero() {
		if next := l.last.Add(l.interval); next.After(now) {
			slot = next
		}
	}
	l.last = slot
	l.mu.Unlock()

	wait := slot.Sub(now)
	if wait <= 0 {
		return nil
	}
	log.Printf("[INFO] rate limit: waiting %s before next request", wait.Round(time.Millisecond))
	if err := l.sleep(ctx, wait); err != nil {
		l.release(slot)
		return err
	}
	return nil
}

// release gives back an unused slot if nobody reserved after it.
func (l *Limiter) release(slot time.Time) {
	l.mu.Lock()
	if l.last.Equal(slot) {
		l.last = slot.Add(-l.interval)
	}
	l.mu.Unlock()
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
