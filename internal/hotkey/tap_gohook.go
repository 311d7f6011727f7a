package hotkey

import (
	"errors"
	"sync"

	hook "github.com/robotn/gohook"
)

// Raw key codes of the modifier keys as reported by the event hook on
// macOS, left and right variants.
var modifierRaw = map[uint16]Mod{
	54: ModCommand, 55: ModCommand,
	56: ModShift, 60: ModShift,
	58: ModOption, 61: ModOption,
	59: ModControl, 62: ModControl,
}

// GohookTap implements Tap on top of the gohook global event hook.
//
// gohook observes events but cannot swallow them on every platform, so
// suppression of matched chords is best-effort. The modifier mask is
// tracked from modifier key-down/key-up events rather than trusting the
// library's own mask field, which differs between platforms.
type GohookTap struct {
	mu        sync.Mutex
	installed bool
}

// NewTap returns an uninstalled gohook tap.
func NewTap() *GohookTap { return &GohookTap{} }

// Install starts the global hook and spawns the event pump.
func (t *GohookTap) Install(handler func(KeyEvent) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.installed {
		return errors.New("hotkey: tap already installed")
	}

	events := hook.Start()
	if events == nil {
		return errors.New("hotkey: event hook unavailable")
	}
	t.installed = true

	go func() {
		var held Mod
		for ev := range events {
			switch ev.Kind {
			case hook.KeyDown, hook.KeyHold:
				if m, ok := modifierRaw[ev.Rawcode]; ok {
					held |= m
					continue
				}
				handler(KeyEvent{Code: ev.Rawcode, Mods: held})
			case hook.KeyUp:
				if m, ok := modifierRaw[ev.Rawcode]; ok {
					held &^= m
				}
			}
		}
	}()
	return nil
}

// Close stops the global hook; the event pump exits when the hook's channel
// closes.
func (t *GohookTap) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.installed {
		hook.End()
		t.installed = false
	}
	return nil
}
