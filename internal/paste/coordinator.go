package paste

import (
	"fmt"
	"log/slog"

	"github.com/relentiousdragon/Mac-Clipper/internal/clip"
	"github.com/relentiousdragon/Mac-Clipper/internal/history"
)

// TargetError reports a paste-forwarding failure against a specific
// application. The clipboard write has already happened when it is
// returned, so the user can still paste manually.
type TargetError struct {
	App string
	Err error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("paste into %q failed: %v", e.App, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }

// Coordinator performs the paste-back protocol: clipboard write, target
// reactivation, synthesized keystroke.
type Coordinator struct {
	backend clip.Backend
	bridge  Bridge
	self    string // this application's own name; never activated as target
}

// NewCoordinator wires a coordinator over the given clipboard backend and
// OS bridge. self is this application's name as the OS reports it.
func NewCoordinator(backend clip.Backend, bridge Bridge, self string) *Coordinator {
	return &Coordinator{backend: backend, bridge: bridge, self: self}
}

// CaptureFrontmost queries the name of the currently focused application,
// for use as the target of the next Paste. Failure yields an empty target,
// which downgrades the activation step to a skip.
func (c *Coordinator) CaptureFrontmost() string {
	name, err := c.bridge.FrontmostApp()
	if err != nil {
		slog.Debug("frontmost app unknown", "err", err)
		return ""
	}
	return name
}

// Paste writes entry's payload to the system clipboard, brings target to
// the foreground (skipped when target is unknown or is this application),
// and synthesizes the paste keystroke. Activation or keystroke failures
// surface as a *TargetError; the clipboard write is never rolled back.
func (c *Coordinator) Paste(entry *history.Entry, target string) error {
	var err error
	switch entry.Kind {
	case history.KindImage:
		err = c.backend.WriteImage(entry.Payload)
	default:
		err = c.backend.WriteText(entry.Payload)
	}
	if err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}

	if target != "" && target != c.self {
		if err := c.bridge.Activate(target); err != nil {
			return &TargetError{App: target, Err: err}
		}
	}

	if err := c.bridge.SendPaste(); err != nil {
		return &TargetError{App: target, Err: err}
	}

	slog.Debug("pasted", "kind", entry.Kind, "target", target)
	return nil
}
