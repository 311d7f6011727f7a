package clip

import (
	"errors"
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// ErrImagesUnsupported is returned by the fallback backend for image writes.
var ErrImagesUnsupported = errors.New("clip: image clipboard not supported by fallback backend")

// fallbackBackend shells out through atotto/clipboard (pbcopy/pbpaste,
// xclip, etc.). Text only: image channels read as empty and refuse writes.
type fallbackBackend struct{}

func newFallbackBackend() (Backend, error) {
	if atotto.Unsupported {
		return nil, errors.New("no clipboard utility available")
	}
	return &fallbackBackend{}, nil
}

func (b *fallbackBackend) Name() string { return "text-only clipboard (exec)" }

func (b *fallbackBackend) Read() (Snapshot, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return Snapshot{}, fmt.Errorf("clipboard read: %w", err)
	}
	return Snapshot{Text: []byte(text)}, nil
}

func (b *fallbackBackend) WriteText(data []byte) error {
	if err := atotto.WriteAll(string(data)); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

func (b *fallbackBackend) WriteImage([]byte) error { return ErrImagesUnsupported }

func (b *fallbackBackend) Close() {}
