// Package watcher samples the system clipboard at a fixed interval and
// emits a change event whenever the normalized content differs from the
// last observed value.
package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/relentiousdragon/Mac-Clipper/internal/clip"
	"github.com/relentiousdragon/Mac-Clipper/internal/history"
)

// DefaultInterval is the clipboard sampling period.
const DefaultInterval = 500 * time.Millisecond

// Watcher is the clipboard poller. Create with New, then call Run on a
// dedicated goroutine; consume change events from Events.
type Watcher struct {
	backend  clip.Backend
	interval time.Duration
	events   chan *history.Entry

	mu      sync.Mutex
	lastKey string
}

// New returns a watcher polling backend every interval (DefaultInterval if
// interval is zero).
func New(backend clip.Backend, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		backend:  backend,
		interval: interval,
		events:   make(chan *history.Entry, 16),
	}
}

// Events returns the change event channel. Each event carries a new clip
// entry; no two consecutive events carry equal canonical payloads.
func (w *Watcher) Events() <-chan *history.Entry { return w.events }

// MarkObserved records key as the last observed clipboard content so that
// the next poll of that same content does not emit a change event. Called
// after the application itself writes to the clipboard (paste-back).
func (w *Watcher) MarkObserved(key string) {
	w.mu.Lock()
	w.lastKey = key
	w.mu.Unlock()
}

// Run samples the clipboard until ctx is cancelled. Clipboard read failures
// are treated as "no content this cycle" and never stop the loop.
func (w *Watcher) Run(ctx context.Context) {
	slog.Info("clipboard watcher started", "backend", w.backend.Name(), "interval", w.interval)
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("clipboard watcher stopped")
			return
		case <-t.C:
			w.sample(ctx)
		}
	}
}

func (w *Watcher) sample(ctx context.Context) {
	snap, err := w.backend.Read()
	if err != nil {
		slog.Debug("clipboard read failed, skipping cycle", "err", err)
		return
	}

	entry := Normalize(snap, time.Now())
	if entry == nil {
		return
	}

	key := entry.Key()
	w.mu.Lock()
	if key == w.lastKey {
		w.mu.Unlock()
		return
	}
	w.lastKey = key
	w.mu.Unlock()

	select {
	case w.events <- entry:
	case <-ctx.Done():
	}
}
