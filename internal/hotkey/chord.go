// Package hotkey installs a global key-event tap and raises an activation
// event when the configured chord is pressed. Install failures (missing
// accessibility permission) are retried with backoff; the retry loop
// re-checks the permission and recovers without restart once it is granted.
package hotkey

import (
	"fmt"
	"sort"
	"strings"
)

// Mod is a bitmask of held modifier keys.
type Mod uint8

const (
	ModCommand Mod = 1 << iota
	ModOption
	ModControl
	ModShift
)

var modNames = map[string]Mod{
	"command": ModCommand,
	"option":  ModOption,
	"control": ModControl,
	"shift":   ModShift,
}

// keycodes maps single letters to macOS virtual key codes, the coordinate
// system the event tap reports in.
var keycodes = map[string]uint16{
	"A": 0, "B": 11, "C": 8, "D": 2, "E": 14, "F": 3, "G": 5, "H": 4,
	"I": 34, "J": 38, "K": 40, "L": 37, "M": 46, "N": 45, "O": 31,
	"P": 35, "Q": 12, "R": 15, "S": 1, "T": 17, "U": 32, "V": 9,
	"W": 13, "X": 7, "Y": 16, "Z": 6,
}

// Chord is an activation key combination: a key code plus the required
// modifier set.
type Chord struct {
	Key  string // single uppercase letter, for display
	Code uint16
	Mods Mod
}

// ParseChord builds a Chord from a config key letter and modifier names.
func ParseChord(key string, modifiers []string) (Chord, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	code, ok := keycodes[key]
	if !ok {
		return Chord{}, fmt.Errorf("hotkey: unknown key %q", key)
	}

	var mods Mod
	for _, name := range modifiers {
		m, ok := modNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return Chord{}, fmt.Errorf("hotkey: unknown modifier %q", name)
		}
		mods |= m
	}
	if mods == 0 {
		return Chord{}, fmt.Errorf("hotkey: chord for %q needs at least one modifier", key)
	}

	return Chord{Key: key, Code: code, Mods: mods}, nil
}

// Matches reports whether an observed key-down event fires this chord: the
// key code must match exactly and the observed modifier mask must contain
// at least all configured modifiers. Extra held modifiers do not prevent a
// match.
func (c Chord) Matches(code uint16, mods Mod) bool {
	return code == c.Code && mods&c.Mods == c.Mods
}

// String renders the chord as "command+option+V".
func (c Chord) String() string {
	var parts []string
	for name, m := range modNames {
		if c.Mods&m != 0 {
			parts = append(parts, name)
		}
	}
	sort.Strings(parts)
	return strings.Join(append(parts, c.Key), "+")
}
