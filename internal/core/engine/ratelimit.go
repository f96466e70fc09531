package engine

import (
	"context"
	"sync"
	"time"

	"github.com/osukit/osukit/internal/core"
)

// DefaultWindow is the trailing interval the request cap applies to.
const DefaultWindow = time.Minute

// Limiter spaces outbound requests with two constraints: a minimum interval
// between consecutive requests and a cap on requests inside a trailing
// window. Request timestamps are kept in ascending order; stale entries are
// pruned from the front before any read.
type Limiter struct {
	MinInterval  time.Duration
	MaxPerWindow int
	Window       time.Duration
	Clock        func() time.Time

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error

	mu          sync.Mutex
	lastRequest time.Time
	history     []time.Time
}

// Ready reports whether a request may be issued immediately.
func (l *Limiter) Ready() bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)
	return l.readyLocked(now)
}

// Delay returns how long a caller must wait before the next request. Zero or
// negative means no wait; it is never an error.
func (l *Limiter) Delay() time.Duration {
	if l == nil {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)
	return l.delayLocked(now)
}

// Wait blocks the calling goroutine until a request slot is available or the
// context is cancelled. Cancellation leaves limiter state untouched.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	l.mu.Lock()
	now := l.now()
	l.prune(now)
	ready := l.readyLocked(now)
	delay := l.delayLocked(now)
	sleep := l.sleep
	l.mu.Unlock()

	if ready || delay <= 0 {
		return nil
	}

	if sleep == nil {
		sleep = sleepContext
	}
	return sleep(ctx, delay)
}

// Record marks a request as sent at the current time. Call it exactly once
// per request actually issued, never before dispatch.
func (l *Limiter) Record() {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.history = append(l.history, now)
	if now.After(l.lastRequest) {
		l.lastRequest = now
	}
}

// Snapshot returns a copy of the pruned limiter state for persistence.
func (l *Limiter) Snapshot() core.RateLimitSnapshot {
	if l == nil {
		return core.RateLimitSnapshot{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.now())

	history := make([]time.Time, len(l.history))
	copy(history, l.history)
	return core.RateLimitSnapshot{
		LastRequest: l.lastRequest,
		History:     history,
	}
}

// Restore loads previously persisted state. Entries already outside the
// window are dropped on the next read; lastRequest never moves backwards.
func (l *Limiter) Restore(snap core.RateLimitSnapshot) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.history = append(l.history[:0], snap.History...)
	if snap.LastRequest.After(l.lastRequest) {
		l.lastRequest = snap.LastRequest
	}
}

func (l *Limiter) readyLocked(now time.Time) bool {
	if now.Sub(l.lastRequest) < l.MinInterval {
		return false
	}
	if l.MaxPerWindow > 0 && len(l.history) >= l.MaxPerWindow {
		return false
	}
	return true
}

func (l *Limiter) delayLocked(now time.Time) time.Duration {
	wait := l.MinInterval - now.Sub(l.lastRequest)
	if l.MaxPerWindow > 0 && len(l.history) >= l.MaxPerWindow {
		if windowWait := l.history[0].Add(l.window()).Sub(now); windowWait > wait {
			wait = windowWait
		}
	}
	return wait
}

// prune drops the stale prefix of history. History is ascending, so the scan
// stops at the first entry still inside the window.
func (l *Limiter) prune(now time.Time) {
	window := l.window()
	idx := 0
	for idx < len(l.history) && l.history[idx].Add(window).Before(now) {
		idx++
	}
	if idx > 0 {
		l.history = append(l.history[:0], l.history[idx:]...)
	}
}

func (l *Limiter) window() time.Duration {
	if l != nil && l.Window > 0 {
		return l.Window
	}
	return DefaultWindow
}

func (l *Limiter) now() time.Time {
	if l != nil && l.Clock != nil {
		return l.Clock()
	}
	return time.Now().UTC()
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
