package watchmode

import (
	"context"
	"log/slog"
	"sync"
)

// Reindexer runs one full pipeline pass. Implemented by the CLI's own
// closure around pipeline.Driver.Run so this package never imports the
// core pipeline directly.
type Reindexer func(ctx context.Context) error

// Loop drives Reindexer from a Watcher's change notifications. A
// change that arrives while a run is already in flight cancels that
// run — the Driver's own cooperative cancellation (spec's
// project-boundary rule) then unwinds it cleanly — and starts a fresh
// one over the new file set once the old one has returned.
type Loop struct {
	reindex Reindexer

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewLoop wraps reindex for use as a Watcher's onChange callback via
// Loop.Trigger.
func NewLoop(reindex Reindexer) *Loop {
	return &Loop{reindex: reindex}
}

// Trigger cancels any in-flight run, waits for it to return, then runs
// reindex and returns when that run does. Safe to call from the
// Watcher's debounce timer goroutine.
func (l *Loop) Trigger(parent context.Context, changed []string) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	defer close(done)
	l.cancel = func() {
		cancel()
		<-done
	}
	l.mu.Unlock()

	slog.Info("watchmode: re-indexing", "changed_files", len(changed))
	if err := l.reindex(ctx); err != nil && ctx.Err() == nil {
		slog.Error("watchmode: re-index failed", "error", err)
	}
}

// Stop cancels any in-flight run.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}
