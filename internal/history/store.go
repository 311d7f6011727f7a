package history

import (
	"log/slog"
	"strings"
)

// Store is the bounded clipboard history. Entries are kept in arrival order,
// newest first. Pinned entries are exempt from the capacity cap and are
// persisted on every pin-membership change.
//
// Store is not safe for concurrent use: per the application's concurrency
// model it must only be mutated from the app event loop.
type Store struct {
	entries []*Entry
	max     int
	path    string // pinned-subset file
}

// NewStore returns an empty store capped at max unpinned-inclusive entries,
// persisting pinned entries to path.
func NewStore(max int, path string) *Store {
	return &Store{max: max, path: path}
}

// Len returns the total entry count, pinned included.
func (s *Store) Len() int { return len(s.entries) }

// PinnedCount returns the number of pinned entries.
func (s *Store) PinnedCount() int {
	n := 0
	for _, e := range s.entries {
		if e.Pinned {
			n++
		}
	}
	return n
}

// SetMax updates the capacity cap and evicts if the new cap is tighter.
func (s *Store) SetMax(max int) {
	s.max = max
	s.evict()
}

// Insert prepends e to the history unless an entry with the same canonical
// payload already exists anywhere in it (pinned or not), then evicts the
// oldest unpinned entries until the total count fits the cap. Reports
// whether the entry was added.
func (s *Store) Insert(e *Entry) bool {
	for _, have := range s.entries {
		if have.Same(e) {
			return false
		}
	}
	s.entries = append([]*Entry{e}, s.entries...)
	s.evict()
	return true
}

// evict removes oldest unpinned entries (arrival-order tail) one at a time
// until the total count fits the cap or only pinned entries remain. Pinned
// entries are never evicted, so the total may exceed the cap when the pinned
// count alone does.
func (s *Store) evict() {
	for len(s.entries) > s.max {
		idx := -1
		for i := len(s.entries) - 1; i >= 0; i-- {
			if !s.entries[i].Pinned {
				idx = i
				break
			}
		}
		if idx < 0 {
			return
		}
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	}
}

// Find returns the entry with the given key, or nil.
func (s *Store) Find(key string) *Entry {
	for _, e := range s.entries {
		if e.Key() == key {
			return e
		}
	}
	return nil
}

// FindPrefix returns the unique entry whose key starts with prefix, or nil
// if no entry or more than one entry matches.
func (s *Store) FindPrefix(prefix string) *Entry {
	var found *Entry
	for _, e := range s.entries {
		if strings.HasPrefix(e.Key(), prefix) {
			if found != nil {
				return nil
			}
			found = e
		}
	}
	return found
}

// TogglePin flips the pinned flag on the entry with the given key and
// persists the pinned subset. No-op (returning false) if no entry matches.
func (s *Store) TogglePin(key string) bool {
	e := s.Find(key)
	if e == nil {
		return false
	}
	e.Pinned = !e.Pinned
	s.savePinned()
	return true
}

// Delete removes the entry with the given key, pinned or not, and persists
// the pinned subset. No-op (returning false) if no entry matches.
func (s *Store) Delete(key string) bool {
	for i, e := range s.entries {
		if e.Key() == key {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.savePinned()
			return true
		}
	}
	return false
}

// RenderOrder returns a read-only projection for display: all pinned entries
// in arrival order, then all unpinned entries in arrival order. Storage
// order is untouched.
func (s *Store) RenderOrder() []*Entry {
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Pinned {
			out = append(out, e)
		}
	}
	for _, e := range s.entries {
		if !e.Pinned {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) savePinned() {
	if err := s.writePinned(); err != nil {
		slog.Error("pinned history save failed", "path", s.path, "err", err)
	}
}
