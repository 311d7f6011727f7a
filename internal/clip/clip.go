// Package clip provides a narrow interface to the system clipboard.
//
// Backend selection at runtime:
//
//	system.go    golang.design/x/clipboard (text + PNG image channels)
//	fallback.go  atotto/clipboard, text only, for builds without cgo/display
//	headless.go  no-op stub for containers and CI
package clip

import "log/slog"

// Snapshot is one raw sample of the system clipboard. At most one of the
// fields is meaningful; Image wins when both are populated, matching the
// pasteboard's own precedence.
type Snapshot struct {
	Text  []byte
	Image []byte // encoded PNG
}

// Empty reports whether the snapshot carries no content at all.
func (s Snapshot) Empty() bool { return len(s.Text) == 0 && len(s.Image) == 0 }

// Backend is the narrow contract the core uses to talk to the OS clipboard.
// Read failures are transient: callers treat them as "no content this
// cycle", never as fatal.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read samples the current clipboard contents.
	Read() (Snapshot, error)

	// WriteText replaces the clipboard contents with text.
	WriteText(data []byte) error

	// WriteImage replaces the clipboard contents with an encoded PNG.
	WriteImage(data []byte) error

	// Close releases any resources held by the backend.
	Close()
}

// New returns the best available backend for this process: the full system
// backend when the display environment is usable, the text-only fallback
// when it is not, and a no-op stub as the last resort.
func New() Backend {
	if b, err := newSystemBackend(); err == nil {
		return b
	} else {
		slog.Warn("system clipboard unavailable, trying fallback", "err", err)
	}
	if b, err := newFallbackBackend(); err == nil {
		return b
	} else {
		slog.Warn("fallback clipboard unavailable, running headless", "err", err)
	}
	return &headlessBackend{}
}
