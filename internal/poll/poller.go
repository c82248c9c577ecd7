// Package poll provides the interval-driven invocation used for notification
// watching. Ticks are calls into the same operation catalog as everything
// else, so each one is subject to the usual refresh logic; the poller's only
// job is cadence and teardown.
package poll

import (
	"context"
	"log/slog"
	"time"
)

// Poller invokes a function on a fixed interval until its context is
// cancelled. The timer is always released on teardown; a leaked ticker was
// the failure mode this type exists to prevent.
type Poller struct {
	interval time.Duration
	logger   *slog.Logger
}

// New creates a poller. Intervals below one second are clamped to one
// second to keep a misconfigured cadence from hammering the server.
func New(interval time.Duration, logger *slog.Logger) *Poller {
	if interval < time.Second {
		interval = time.Second
	}

	return &Poller{interval: interval, logger: logger}
}

// Run calls fn immediately and then once per interval, blocking until ctx is
// cancelled. Ticks are invoked synchronously: a call that outlasts the
// interval delays the next tick instead of overlapping it, so fn never runs
// concurrently with itself and may hold unsynchronized state.
func (p *Poller) Run(ctx context.Context, fn func(context.Context)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	fn(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Poller stopped", slog.Any("reason", ctx.Err()))

			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
