package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osukit/osukit/internal/core"
)

func testLimiter(minInterval time.Duration, maxPerWindow int) (*Limiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := &Limiter{
		MinInterval:  minInterval,
		MaxPerWindow: maxPerWindow,
		Clock:        func() time.Time { return now },
	}
	return limiter, &now
}

func TestLimiterMinInterval(t *testing.T) {
	limiter, now := testLimiter(time.Second, 60)

	require.True(t, limiter.Ready())

	limiter.Record()
	require.False(t, limiter.Ready())
	require.Equal(t, time.Second, limiter.Delay())

	*now = now.Add(400 * time.Millisecond)
	require.False(t, limiter.Ready())
	require.Equal(t, 600*time.Millisecond, limiter.Delay())

	*now = now.Add(600 * time.Millisecond)
	require.True(t, limiter.Ready())
}

func TestLimiterWindowCap(t *testing.T) {
	limiter, now := testLimiter(0, 2)

	limiter.Record()
	*now = now.Add(time.Second)
	limiter.Record()

	require.False(t, limiter.Ready())

	// Oldest entry was 1s ago, so the slot opens 59s from now.
	require.Equal(t, 59*time.Second, limiter.Delay())

	*now = now.Add(59 * time.Second)
	require.True(t, limiter.Ready())
	require.Len(t, limiter.Snapshot().History, 1)
}

func TestLimiterPruneIdempotent(t *testing.T) {
	limiter, now := testLimiter(time.Second, 2)

	limiter.Record()
	limiter.Record()
	*now = now.Add(30 * time.Second)

	first := limiter.Ready()
	second := limiter.Ready()
	require.Equal(t, first, second)
	require.Equal(t, limiter.Delay(), limiter.Delay())
}

func TestLimiterNegativeDelayIsNoWait(t *testing.T) {
	limiter, now := testLimiter(time.Second, 60)

	limiter.Record()
	*now = now.Add(5 * time.Second)

	require.Less(t, limiter.Delay(), time.Duration(0))

	slept := false
	limiter.sleep = func(ctx context.Context, d time.Duration) error {
		slept = true
		return nil
	}
	require.NoError(t, limiter.Wait(context.Background()))
	require.False(t, slept)
}

func TestLimiterWaitSleepsForWindowSlot(t *testing.T) {
	limiter, now := testLimiter(time.Second, 2)

	var slept []time.Duration
	limiter.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		*now = now.Add(d)
		return nil
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
		limiter.Record()
	}

	// First call goes straight through, the second waits out the minimum
	// interval, and the third hits the window cap: two entries in history,
	// so it must wait for the oldest to leave the 60s window.
	require.Len(t, slept, 2)
	require.Equal(t, time.Second, slept[0])
	require.Equal(t, 59*time.Second, slept[1])

	// Third request was delayed at least 1s after the second.
	snap := limiter.Snapshot()
	require.Len(t, snap.History, 3)
	require.GreaterOrEqual(t, snap.History[2].Sub(snap.History[1]), time.Second)
}

func TestLimiterWindowBindsOverMinInterval(t *testing.T) {
	limiter, now := testLimiter(time.Second, 2)

	limiter.Record()
	*now = now.Add(time.Second)
	limiter.Record()
	*now = now.Add(time.Second)

	// Min interval has elapsed but the window still holds two entries; the
	// wait must stretch to when the oldest entry leaves the window.
	require.False(t, limiter.Ready())
	require.Equal(t, 58*time.Second, limiter.Delay())
}

func TestLimiterWaitCancelled(t *testing.T) {
	limiter, _ := testLimiter(time.Second, 2)
	limiter.Record()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, limiter.Snapshot().History, 1)
}

func TestLimiterSnapshotRestore(t *testing.T) {
	limiter, now := testLimiter(time.Second, 5)
	limiter.Record()
	*now = now.Add(time.Second)
	limiter.Record()

	snap := limiter.Snapshot()
	require.Len(t, snap.History, 2)
	require.Equal(t, *now, snap.LastRequest)

	restored := &Limiter{
		MinInterval:  time.Second,
		MaxPerWindow: 5,
		Clock:        func() time.Time { return *now },
	}
	restored.Restore(snap)
	require.False(t, restored.Ready())

	*now = now.Add(time.Second)
	require.True(t, restored.Ready())
}

func TestLimiterRestoreKeepsMonotonicLastRequest(t *testing.T) {
	limiter, now := testLimiter(time.Second, 5)
	limiter.Record()

	stale := core.RateLimitSnapshot{LastRequest: now.Add(-time.Hour)}
	limiter.Restore(stale)

	require.Equal(t, *now, limiter.Snapshot().LastRequest)
}

func TestNilLimiterIsPassthrough(t *testing.T) {
	var limiter *Limiter
	require.True(t, limiter.Ready())
	require.NoError(t, limiter.Wait(context.Background()))
	limiter.Record()
}
