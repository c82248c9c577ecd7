package poll

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPoller_FiresImmediately(t *testing.T) {
	poller := New(time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	done := make(chan struct{})
	go func() {
		poller.Run(ctx, func(context.Context) {
			calls.Add(1)
			cancel()
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestPoller_TicksDoNotOverlap(t *testing.T) {
	poller := New(time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var active, overlaps, total atomic.Int32
	seen := make(map[int32]struct{})

	done := make(chan struct{})
	go func() {
		poller.Run(ctx, func(context.Context) {
			if active.Add(1) > 1 {
				overlaps.Add(1)
			}
			// Unsynchronized, like a watcher tracking already-seen ids.
			// Safe only because ticks never run concurrently.
			seen[total.Add(1)] = struct{}{}
			time.Sleep(1200 * time.Millisecond)
			active.Add(-1)
		})
		close(done)
	}()

	// Long enough for the ticker to fire while a call is still running.
	time.Sleep(3500 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}

	assert.Zero(t, overlaps.Load(), "a slow tick must delay the next, not run alongside it")
	assert.GreaterOrEqual(t, len(seen), 2)
}

func TestPoller_ClampsShortIntervals(t *testing.T) {
	poller := New(time.Millisecond, testLogger())

	assert.Equal(t, time.Second, poller.interval)
}

func TestPoller_StopsOnCancel(t *testing.T) {
	poller := New(time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	fired := make(chan struct{})

	done := make(chan struct{})
	go func() {
		poller.Run(ctx, func(context.Context) {
			if calls.Add(1) == 1 {
				close(fired)
			}
		})
		close(done)
	}()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("poller did not fire immediately")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
