package clip

import (
	"fmt"

	"golang.design/x/clipboard"
)

// systemBackend reads and writes both clipboard channels via
// golang.design/x/clipboard. Init is called in the constructor rather than
// in init() so that CLI sub-commands that never touch the clipboard don't
// log spurious warnings on headless systems.
type systemBackend struct{}

func newSystemBackend() (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return &systemBackend{}, nil
}

func (b *systemBackend) Name() string { return "system clipboard" }

func (b *systemBackend) Read() (Snapshot, error) {
	return Snapshot{
		Text:  clipboard.Read(clipboard.FmtText),
		Image: clipboard.Read(clipboard.FmtImage),
	}, nil
}

func (b *systemBackend) WriteText(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (b *systemBackend) WriteImage(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func (b *systemBackend) Close() {}
