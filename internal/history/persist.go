package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// persistVersion is the on-disk format version, carried in an explicit
// envelope field so future migrations can branch on it.
const persistVersion = 1

type persistedEntry struct {
	Kind Kind      `json:"kind"`
	Data []byte    `json:"data"` // base64 in JSON
	Time time.Time `json:"time"`
}

type persistedFile struct {
	Version int              `json:"version"`
	Entries []persistedEntry `json:"entries"`
}

// LoadPinned reads the persisted pinned subset and installs it as the
// initial in-memory history, all marked pinned, order preserved. A missing
// or corrupt file yields an empty history, never an error.
func (s *Store) LoadPinned() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("pinned history unreadable, starting empty", "path", s.path, "err", err)
		}
		return
	}

	var f persistedFile
	if err := json.Unmarshal(data, &f); err != nil {
		slog.Warn("pinned history corrupt, starting empty", "path", s.path, "err", err)
		return
	}

	s.entries = s.entries[:0]
	for _, p := range f.Entries {
		s.entries = append(s.entries, &Entry{
			Kind:    p.Kind,
			Payload: p.Data,
			Time:    p.Time,
			Pinned:  true,
		})
	}
	slog.Info("pinned history loaded", "path", s.path, "entries", len(s.entries))
}

// writePinned serialises only the pinned entries, in list order, replacing
// the previous file contents.
func (s *Store) writePinned() error {
	f := persistedFile{Version: persistVersion}
	for _, e := range s.entries {
		if !e.Pinned {
			continue
		}
		f.Entries = append(f.Entries, persistedEntry{
			Kind: e.Kind,
			Data: e.Payload,
			Time: e.Time,
		})
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("pinned dir: %w", err)
	}
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("pinned encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("pinned write: %w", err)
	}
	return nil
}
