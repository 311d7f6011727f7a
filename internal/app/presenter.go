package app

import (
	"log/slog"

	"github.com/relentiousdragon/Mac-Clipper/internal/history"
)

// Presenter is the surface a presentation host exposes to the core. All
// calls arrive on the app's event loop goroutine, so implementations can
// mutate UI-bound state without locking.
type Presenter interface {
	// ClipboardChanged reports a newly captured clip after it has been
	// inserted into the history.
	ClipboardChanged(e *history.Entry)

	// HotkeyActivated reports a (debounced) hotkey press and the popup
	// visibility that resulted from it.
	HotkeyActivated(visible bool)

	// PermissionDenied reports that hotkey installation retries are
	// exhausted; the host must inform the user.
	PermissionDenied()

	// PermissionGranted reports that the hotkey recovered after the user
	// granted the missing permission.
	PermissionGranted()

	// PasteFailed reports a paste-forwarding failure, naming the target
	// application. The clip stays on the system clipboard regardless.
	PasteFailed(app string)
}

// logPresenter is the headless presentation host the daemon ships: it
// renders nothing and narrates events to the log.
type logPresenter struct{}

// NewLogPresenter returns the headless presenter.
func NewLogPresenter() Presenter { return logPresenter{} }

func (logPresenter) ClipboardChanged(e *history.Entry) {
	slog.Info("new clip", "kind", e.Kind, "at", e.Stamp(), "preview", e.Preview())
}

func (logPresenter) HotkeyActivated(visible bool) {
	slog.Info("hotkey activated", "visible", visible)
}

func (logPresenter) PermissionDenied() {
	slog.Error("accessibility permission denied; the global hotkey will not work. " +
		"Enable access in System Settings > Privacy & Security > Accessibility and restart.")
}

func (logPresenter) PermissionGranted() {
	slog.Info("accessibility permission granted; hotkey is now active")
}

func (logPresenter) PasteFailed(app string) {
	slog.Warn("could not paste into application; it may no longer be running. "+
		"The clip remains on the clipboard.", "app", app)
}
