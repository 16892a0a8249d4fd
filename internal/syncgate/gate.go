// Package syncgate throttles background collection syncs: reads that care
// about freshness call MaybeSync first, and an actual sync runs at most
// once per configured interval.
package syncgate

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Syncer triggers one collection sync.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Gate owns the last-successful-sync timestamp. Concurrent callers may race
// on the staleness check; a last-writer-wins race with a slightly stale
// extra sync is accepted, so the mutex only guards the timestamp itself.
type Gate struct {
	backend  Syncer
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu   sync.Mutex
	last time.Time
}

// New creates a gate. An interval of zero or less disables throttled syncs
// entirely; MaybeSync becomes a no-op.
func New(backend Syncer, interval time.Duration, logger *slog.Logger) *Gate {
	return NewWithClock(backend, interval, logger, time.Now)
}

// NewWithClock creates a gate with an injected clock, for tests that need
// to force staleness.
func NewWithClock(backend Syncer, interval time.Duration, logger *slog.Logger, now func() time.Time) *Gate {
	return &Gate{backend: backend, interval: interval, now: now, logger: logger}
}

// MaybeSync triggers a backend sync when the last successful one is older
// than the interval. Sync failures are logged, not propagated: a stale read
// is preferable to a failed one.
func (g *Gate) MaybeSync(ctx context.Context) {
	g.mu.Lock()
	stale := g.interval > 0 && g.now().Sub(g.last) >= g.interval
	g.mu.Unlock()
	if !stale {
		return
	}

	if err := g.backend.Sync(ctx); err != nil {
		g.logger.Warn("throttled sync failed", slog.String("error", err.Error()))
		return
	}

	g.mu.Lock()
	g.last = g.now()
	g.mu.Unlock()
}

// Sync forces a backend sync regardless of staleness and records it on
// success. The error propagates to the caller.
func (g *Gate) Sync(ctx context.Context) error {
	if err := g.backend.Sync(ctx); err != nil {
		return err
	}
	g.mu.Lock()
	g.last = g.now()
	g.mu.Unlock()
	return nil
}
