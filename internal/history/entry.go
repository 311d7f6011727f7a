// Package history holds the in-memory clipboard history: the clip entry
// model, the bounded store with pin-aware eviction, and persistence of the
// pinned subset across restarts.
package history

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind discriminates clip payloads.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Entry is a single captured clip. Payload is the canonical byte form: the
// trimmed UTF-8 text, or the PNG bytes exactly as sampled (never re-encoded).
type Entry struct {
	Kind    Kind
	Payload []byte
	Time    time.Time
	Pinned  bool
}

// Key returns the kind-qualified lookup key for the entry's canonical
// payload. Two entries are the same clip iff their keys are equal.
func (e *Entry) Key() string {
	sum := sha256.Sum256(e.Payload)
	return string(e.Kind) + ":" + hex.EncodeToString(sum[:])
}

// Same reports whether two entries carry the same clip: equal kind and equal
// canonical payload bytes.
func (e *Entry) Same(o *Entry) bool {
	return e.Kind == o.Kind && bytes.Equal(e.Payload, o.Payload)
}

// Stamp returns the capture time at display precision (hour:minute).
func (e *Entry) Stamp() string { return e.Time.Format("15:04") }

// Preview returns a short single-line description of the entry suitable for
// lists and logs.
func (e *Entry) Preview() string {
	if e.Kind == KindImage {
		return fmt.Sprintf("image (%d bytes)", len(e.Payload))
	}
	s := strings.Join(strings.Fields(string(e.Payload)), " ")
	if len(s) > 100 {
		cut := 100
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
