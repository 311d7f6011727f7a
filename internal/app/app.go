// Package app owns the application-lifetime state: the history store, the
// configuration, and handles to the two background loops (clipboard
// watcher, hotkey interceptor). All mutations are marshaled onto a single
// event-loop goroutine; the watcher, the interceptor, and IPC connections
// communicate with it exclusively through channels.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/relentiousdragon/Mac-Clipper/internal/clip"
	"github.com/relentiousdragon/Mac-Clipper/internal/config"
	"github.com/relentiousdragon/Mac-Clipper/internal/history"
	"github.com/relentiousdragon/Mac-Clipper/internal/hotkey"
	"github.com/relentiousdragon/Mac-Clipper/internal/ipc"
	"github.com/relentiousdragon/Mac-Clipper/internal/loginitem"
	"github.com/relentiousdragon/Mac-Clipper/internal/paste"
	"github.com/relentiousdragon/Mac-Clipper/internal/watcher"
)

// DebounceWindow is the minimum spacing between effective hotkey
// activations; presses closer than this are dropped to defend against
// tap double-fire and key repeat.
const DebounceWindow = 200 * time.Millisecond

// SelfName is how the OS reports this application; paste-back never
// re-activates it as the target.
const SelfName = "clipper"

type note int

const (
	noteDenied note = iota
	noteGranted
)

// App is the application context. Construct with New, then Run on the main
// goroutine; interact from other goroutines via the exported methods, which
// marshal onto the event loop.
type App struct {
	cfg     *config.Config
	cfgPath string

	store   *history.Store
	backend clip.Backend
	watch   *watcher.Watcher
	hk      *hotkey.Interceptor
	coord   *paste.Coordinator
	pres    Presenter

	cmds  chan func()
	notes chan note
	quit  chan struct{}

	// event-loop state
	visible    bool
	target     string
	lastToggle time.Time
	debounce   time.Duration
}

// New assembles the app from its parts. The interceptor must have been
// constructed with a notifier feeding this app's notes channel; Wire does
// that for the common case.
func New(cfg *config.Config, store *history.Store, backend clip.Backend,
	watch *watcher.Watcher, hk *hotkey.Interceptor, coord *paste.Coordinator,
	pres Presenter) *App {
	return &App{
		cfg:      cfg,
		store:    store,
		backend:  backend,
		watch:    watch,
		hk:       hk,
		coord:    coord,
		pres:     pres,
		cmds:     make(chan func(), 16),
		notes:    make(chan note, 4),
		quit:     make(chan struct{}),
		debounce: DebounceWindow,
	}
}

// notifier forwards the interceptor's permission events onto the app's
// event loop instead of calling the presenter from the wrong goroutine.
type notifier struct{ notes chan note }

func (n notifier) PermissionDenied()  { n.notes <- noteDenied }
func (n notifier) PermissionGranted() { n.notes <- noteGranted }

func newNotifier() (hotkey.Notifier, chan note) {
	ch := make(chan note, 4)
	return notifier{notes: ch}, ch
}

// Wire builds the full daemon object graph: store (pinned history loaded),
// watcher, interceptor, coordinator, and the app binding them together.
func Wire(cfg *config.Config, backend clip.Backend, tap hotkey.Tap,
	perm hotkey.PermissionChecker, bridge paste.Bridge, pres Presenter,
	pinnedPath string, opts hotkey.Options) (*App, error) {

	chord, err := hotkey.ParseChord(cfg.Hotkey.Key, cfg.Hotkey.Modifiers)
	if err != nil {
		return nil, err
	}

	store := history.NewStore(cfg.MaxItems, pinnedPath)
	store.LoadPinned()

	notify, notes := newNotifier()
	hk := hotkey.New(tap, perm, notify, chord, opts)
	watch := watcher.New(backend, 0)
	coord := paste.NewCoordinator(backend, bridge, SelfName)

	a := New(cfg, store, backend, watch, hk, coord, pres)
	a.notes = notes
	return a, nil
}

// Run drives the event loop until ctx is cancelled, then stops and joins
// both background contexts before returning so the OS event tap is
// released cleanly.
func (a *App) Run(ctx context.Context) {
	defer close(a.quit)

	wctx, wcancel := context.WithCancel(context.Background())
	watcherDone := make(chan struct{})
	go func() {
		a.watch.Run(wctx)
		close(watcherDone)
	}()
	a.hk.Start()

	if err := loginitem.Apply(a.cfg.RunAtLogin); err != nil {
		slog.Warn("login item registration failed", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			a.hk.Stop()
			wcancel()
			<-watcherDone
			a.backend.Close()
			slog.Info("clipper stopped")
			return
		case e := <-a.watch.Events():
			a.onClip(e)
		case <-a.hk.Activations():
			a.onActivation()
		case n := <-a.notes:
			switch n {
			case noteDenied:
				a.pres.PermissionDenied()
			case noteGranted:
				a.pres.PermissionGranted()
			}
		case fn := <-a.cmds:
			fn()
		}
	}
}

// onClip inserts a watcher-sourced entry; duplicates anywhere in history
// are a no-op and raise no presenter event.
func (a *App) onClip(e *history.Entry) {
	if !a.store.Insert(e) {
		return
	}
	a.pres.ClipboardChanged(e)
}

// onActivation toggles popup visibility, debounced. Showing captures the
// frontmost application as the target of the next paste.
func (a *App) onActivation() {
	now := time.Now()
	if now.Sub(a.lastToggle) < a.debounce {
		slog.Debug("activation dropped (debounce)")
		return
	}
	a.lastToggle = now

	if a.visible {
		a.visible = false
	} else {
		a.target = a.coord.CaptureFrontmost()
		a.visible = true
	}
	a.pres.HotkeyActivated(a.visible)
}

// call runs fn on the event loop and waits for it to finish.
func (a *App) call(fn func()) error {
	done := make(chan struct{})
	select {
	case a.cmds <- func() { fn(); close(done) }:
	case <-a.quit:
		return errors.New("app stopped")
	}
	select {
	case <-done:
		return nil
	case <-a.quit:
		return errors.New("app stopped")
	}
}

// List returns the history in render order (pinned first), optionally
// filtered by a case-insensitive substring over text entries.
func (a *App) List(filter string) ([]ipc.EntryInfo, error) {
	var out []ipc.EntryInfo
	err := a.call(func() {
		for _, e := range a.store.RenderOrder() {
			if filter != "" {
				if e.Kind != history.KindText ||
					!strings.Contains(strings.ToLower(string(e.Payload)), strings.ToLower(filter)) {
					continue
				}
			}
			out = append(out, ipc.InfoFor(e))
		}
	})
	return out, err
}

// CopyIn pushes content into the history and onto the system clipboard, as
// if the user had copied it.
func (a *App) CopyIn(kind history.Kind, data []byte) error {
	var opErr error
	err := a.call(func() {
		e := watcher.Normalize(snapshotFor(kind, data), time.Now())
		if e == nil {
			opErr = errors.New("empty or unsupported content")
			return
		}
		if e.Kind == history.KindImage {
			opErr = a.backend.WriteImage(e.Payload)
		} else {
			opErr = a.backend.WriteText(e.Payload)
		}
		if opErr != nil {
			return
		}
		a.watch.MarkObserved(e.Key())
		a.onClip(e)
	})
	if err != nil {
		return err
	}
	return opErr
}

func snapshotFor(kind history.Kind, data []byte) clip.Snapshot {
	if kind == history.KindImage {
		return clip.Snapshot{Image: data}
	}
	return clip.Snapshot{Text: data}
}

// PasteKey pastes the entry with the given key (or unique key prefix) into
// the captured target application. An empty key selects the newest entry.
func (a *App) PasteKey(key string) error {
	var opErr error
	err := a.call(func() {
		e := a.resolve(key)
		if e == nil {
			opErr = errors.New("no matching entry")
			return
		}
		a.watch.MarkObserved(e.Key())
		opErr = a.coord.Paste(e, a.target)

		var te *paste.TargetError
		if errors.As(opErr, &te) {
			a.pres.PasteFailed(te.App)
		}
		if opErr == nil && a.visible {
			a.visible = false
			a.pres.HotkeyActivated(false)
		}
	})
	if err != nil {
		return err
	}
	return opErr
}

// Pin toggles the pinned flag on the entry with the given key or prefix.
func (a *App) Pin(key string) error {
	var opErr error
	err := a.call(func() {
		e := a.resolve(key)
		if e == nil || !a.store.TogglePin(e.Key()) {
			opErr = errors.New("no matching entry")
		}
	})
	if err != nil {
		return err
	}
	return opErr
}

// Delete removes the entry with the given key or prefix.
func (a *App) Delete(key string) error {
	var opErr error
	err := a.call(func() {
		e := a.resolve(key)
		if e == nil || !a.store.Delete(e.Key()) {
			opErr = errors.New("no matching entry")
		}
	})
	if err != nil {
		return err
	}
	return opErr
}

// Status reports daemon state for the status sub-command.
func (a *App) Status() (*ipc.Status, error) {
	var st ipc.Status
	err := a.call(func() {
		st = ipc.Status{
			Entries:     a.store.Len(),
			Pinned:      a.store.PinnedCount(),
			MaxItems:    a.cfg.MaxItems,
			Hotkey:      a.hk.Chord().String(),
			HotkeyState: a.hk.State().String(),
			Backend:     a.backend.Name(),
			Visible:     a.visible,
		}
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// resolve finds an entry by full key or unique prefix. An empty key
// resolves to the newest arrival.
func (a *App) resolve(key string) *history.Entry {
	if key == "" {
		order := a.store.RenderOrder()
		newest := (*history.Entry)(nil)
		for _, e := range order {
			if newest == nil || e.Time.After(newest.Time) {
				newest = e
			}
		}
		return newest
	}
	if e := a.store.Find(key); e != nil {
		return e
	}
	return a.store.FindPrefix(key)
}

// ApplyConfig installs a freshly loaded configuration: cap, chord, and
// login item. The old tap is torn down synchronously before the new chord
// is installed.
func (a *App) ApplyConfig(c *config.Config) error {
	return a.call(func() {
		a.cfg = c
		a.store.SetMax(c.MaxItems)

		chord, err := hotkey.ParseChord(c.Hotkey.Key, c.Hotkey.Modifiers)
		if err != nil {
			slog.Warn("invalid hotkey in config, keeping previous", "err", err)
		} else if chord != a.hk.Chord() {
			a.hk.Reconfigure(chord)
		}

		if err := loginitem.Apply(c.RunAtLogin); err != nil {
			slog.Warn("login item registration failed", "err", err)
		}
	})
}
