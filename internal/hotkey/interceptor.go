package hotkey

import (
	"log/slog"
	"sync"
	"time"
)

// State is the interceptor lifecycle state.
type State int

const (
	StateUninstalled State = iota
	StateRetryWait
	StateInstalled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninstalled:
		return "uninstalled"
	case StateRetryWait:
		return "retry-wait"
	case StateInstalled:
		return "installed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Notifier receives permission lifecycle notifications for the user.
type Notifier interface {
	// PermissionDenied signals that install retries are exhausted; the
	// hotkey will not work until permission is granted and the process
	// restarted.
	PermissionDenied()
	// PermissionGranted signals that the tap recovered after one or more
	// failed attempts and the hotkey now works.
	PermissionGranted()
}

// Options tune the interceptor's retry behaviour. Zero values select the
// production defaults; tests inject short durations.
type Options struct {
	Backoff     time.Duration // wait after a failed install attempt (default 10s)
	Recheck     time.Duration // permission poll interval inside the wait (default 1s)
	MaxAttempts int           // failed attempts before giving up (default 10)
}

func (o Options) withDefaults() Options {
	if o.Backoff <= 0 {
		o.Backoff = 10 * time.Second
	}
	if o.Recheck <= 0 || o.Recheck > o.Backoff {
		o.Recheck = min(time.Second, o.Backoff)
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 10
	}
	return o
}

// Interceptor owns the global key tap and the permission-recovery state
// machine: Uninstalled → (install ok) Installed, or → RetryWait → … →
// Failed after MaxAttempts. While installed, key-down events matching the
// chord raise an activation event and are suppressed from propagation.
type Interceptor struct {
	tap    Tap
	perm   PermissionChecker
	notify Notifier
	opts   Options

	activations chan struct{}

	mu      sync.Mutex
	chord   Chord
	state   State
	running bool
	done    chan struct{}
	stopped chan struct{}
}

// New returns a stopped interceptor for the given chord.
func New(tap Tap, perm PermissionChecker, notify Notifier, chord Chord, opts Options) *Interceptor {
	return &Interceptor{
		tap:         tap,
		perm:        perm,
		notify:      notify,
		opts:        opts.withDefaults(),
		chord:       chord,
		activations: make(chan struct{}, 1),
	}
}

// Activations returns the channel that receives one signal per matched
// chord press.
func (i *Interceptor) Activations() <-chan struct{} { return i.activations }

// State returns the current lifecycle state.
func (i *Interceptor) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Chord returns the currently configured chord.
func (i *Interceptor) Chord() Chord {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.chord
}

func (i *Interceptor) setState(s State) {
	i.mu.Lock()
	i.state = s
	i.mu.Unlock()
}

// Start launches the install/retry loop on its own goroutine. No-op if
// already running.
func (i *Interceptor) Start() {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return
	}
	i.running = true
	i.done = make(chan struct{})
	i.stopped = make(chan struct{})
	i.mu.Unlock()

	go i.run()
}

// Stop synchronously tears down the tap and joins the run loop, releasing
// the OS hook before returning. Safe to call on a stopped interceptor.
func (i *Interceptor) Stop() {
	i.mu.Lock()
	if !i.running {
		i.mu.Unlock()
		return
	}
	i.running = false
	close(i.done)
	stopped := i.stopped
	i.mu.Unlock()

	<-stopped
}

// Reconfigure replaces the chord, tearing down the current tap first so no
// overlapping taps or duplicate activations are possible.
func (i *Interceptor) Reconfigure(chord Chord) {
	i.Stop()
	i.mu.Lock()
	i.chord = chord
	i.mu.Unlock()
	slog.Info("hotkey reconfigured", "chord", chord.String())
	i.Start()
}

func (i *Interceptor) run() {
	defer close(i.stopped)

	attempts := 0
	for {
		select {
		case <-i.done:
			i.setState(StateUninstalled)
			return
		default:
		}

		if i.perm.Granted() {
			err := i.tap.Install(i.onKeyDown)
			if err == nil {
				i.setState(StateInstalled)
				slog.Info("hotkey tap installed", "chord", i.Chord().String())
				if attempts > 0 {
					i.notify.PermissionGranted()
				}
				<-i.done
				if cerr := i.tap.Close(); cerr != nil {
					slog.Warn("hotkey tap close failed", "err", cerr)
				}
				i.setState(StateUninstalled)
				return
			}
			// Install failing while the OS reports the permission granted
			// should not normally happen; log it and keep retrying.
			slog.Warn("hotkey tap install failed despite granted permission", "err", err)
		}

		attempts++
		if attempts >= i.opts.MaxAttempts {
			i.setState(StateFailed)
			slog.Error("hotkey tap install failed, giving up", "attempts", attempts)
			i.notify.PermissionDenied()
			return
		}

		i.setState(StateRetryWait)
		slog.Info("hotkey tap unavailable, waiting",
			"attempt", attempts, "max", i.opts.MaxAttempts, "backoff", i.opts.Backoff)
		if !i.waitRetry() {
			i.setState(StateUninstalled)
			return
		}
	}
}

// waitRetry sleeps out the backoff in Recheck slices, re-checking the
// permission each slice so a grant mid-wait shortcuts the remaining
// backoff. Returns false if the interceptor was stopped while waiting.
func (i *Interceptor) waitRetry() bool {
	deadline := time.Now().Add(i.opts.Backoff)
	t := time.NewTicker(i.opts.Recheck)
	defer t.Stop()

	for {
		select {
		case <-i.done:
			return false
		case <-t.C:
			if i.perm.Granted() || !time.Now().Before(deadline) {
				return true
			}
		}
	}
}

// onKeyDown runs on the tap's event goroutine. A match raises an activation
// (dropping it if the previous one is still unconsumed) and asks the tap to
// suppress the event; everything else passes through untouched.
func (i *Interceptor) onKeyDown(ev KeyEvent) bool {
	i.mu.Lock()
	chord := i.chord
	i.mu.Unlock()

	if !chord.Matches(ev.Code, ev.Mods) {
		return false
	}
	select {
	case i.activations <- struct{}{}:
	default:
	}
	return true
}
