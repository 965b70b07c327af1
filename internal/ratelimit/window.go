package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of one WindowLimiter.Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Duration
}

type window struct {
	start time.Time
	count int
}

// WindowLimiter counts requests per key in fixed windows. A limit of zero
// or less disables it.
type WindowLimiter struct {
	mu      sync.Mutex
	size    time.Duration
	limit   int
	windows map[string]*window
	now     func() time.Time
}

// NewWindow creates a limiter that admits limit requests per key every size.
func NewWindow(size time.Duration, limit int) *WindowLimiter {
	if size <= 0 {
		size = 15 * time.Minute
	}
	return &WindowLimiter{
		size:    size,
		limit:   limit,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Size returns the window length.
func (w *WindowLimiter) Size() time.Duration { return w.size }

// Allow records a request for key and reports whether it fits in the
// current window.
func (w *WindowLimiter) Allow(key string) Decision {
	if w.limit <= 0 {
		return Decision{Allowed: true}
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	win, ok := w.windows[key]
	if !ok || now.Sub(win.start) >= w.size {
		win = &window{start: now}
		w.windows[key] = win
	}
	reset := win.start.Add(w.size).Sub(now)
	if win.count >= w.limit {
		return Decision{Limit: w.limit, Reset: reset}
	}
	win.count++
	return Decision{Allowed: true, Limit: w.limit, Remaining: w.limit - win.count, Reset: reset}
}

// Sweep drops windows that have ended and returns how many were removed.
func (w *WindowLimiter) Sweep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	n := 0
	for k, win := range w.windows {
		if now.Sub(win.start) >= w.size {
			delete(w.windows, k)
			n++
		}
	}
	return n
}
