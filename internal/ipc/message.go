package ipc

import "github.com/relentiousdragon/Mac-Clipper/internal/history"

// Op identifies the requested daemon operation.
type Op string

const (
	OpList   Op = "LIST"
	OpCopy   Op = "COPY"
	OpPaste  Op = "PASTE"
	OpPin    Op = "PIN"
	OpDelete Op = "DELETE"
	OpStatus Op = "STATUS"
)

// Request is one client-to-daemon message.
type Request struct {
	Op Op `json:"op"`

	// PIN, DELETE, PASTE: entry key or unique key prefix. Empty key on
	// PASTE selects the newest entry.
	Key string `json:"key,omitempty"`

	// LIST: optional case-insensitive substring filter over text entries.
	Filter string `json:"filter,omitempty"`

	// COPY: content to push into the history.
	Kind history.Kind `json:"kind,omitempty"`
	Data []byte       `json:"data,omitempty"` // base64 in JSON
}

// EntryInfo is the wire projection of a history entry: everything the CLI
// needs to render a row without shipping image payloads.
type EntryInfo struct {
	Key     string       `json:"key"`
	Kind    history.Kind `json:"kind"`
	Stamp   string       `json:"stamp"`
	Pinned  bool         `json:"pinned"`
	Preview string       `json:"preview"`
	Size    int          `json:"size"`
}

// Status describes the running daemon.
type Status struct {
	Entries     int    `json:"entries"`
	Pinned      int    `json:"pinned"`
	MaxItems    int    `json:"max_items"`
	Hotkey      string `json:"hotkey"`
	HotkeyState string `json:"hotkey_state"`
	Backend     string `json:"backend"`
	Visible     bool   `json:"visible"`
}

// Response is one daemon-to-client message.
type Response struct {
	OK      bool        `json:"ok"`
	Err     string      `json:"err,omitempty"`
	Entries []EntryInfo `json:"entries,omitempty"`
	Status  *Status     `json:"status,omitempty"`
}

// InfoFor projects a history entry into its wire form.
func InfoFor(e *history.Entry) EntryInfo {
	return EntryInfo{
		Key:     e.Key(),
		Kind:    e.Kind,
		Stamp:   e.Stamp(),
		Pinned:  e.Pinned,
		Preview: e.Preview(),
		Size:    len(e.Payload),
	}
}
