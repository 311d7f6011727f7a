package watcher

import (
	"bytes"
	"image/png"
	"strings"
	"time"

	"github.com/relentiousdragon/Mac-Clipper/internal/clip"
	"github.com/relentiousdragon/Mac-Clipper/internal/history"
)

// Normalize converts a raw clipboard snapshot into a canonical clip entry.
//
// A non-empty bitmap wins and must be decodable PNG; its raw bytes are the
// canonical payload (no re-encode). Otherwise non-empty trimmed text.
// Anything else (empty clipboard, unsupported content, undecodable image)
// yields nil, which callers skip without error.
func Normalize(snap clip.Snapshot, now time.Time) *history.Entry {
	if len(snap.Image) > 0 {
		if _, err := png.DecodeConfig(bytes.NewReader(snap.Image)); err != nil {
			return nil
		}
		return &history.Entry{Kind: history.KindImage, Payload: snap.Image, Time: now}
	}

	text := strings.TrimSpace(string(snap.Text))
	if text == "" {
		return nil
	}
	return &history.Entry{Kind: history.KindText, Payload: []byte(text), Time: now}
}
