package hotkey

// KeyEvent is one observed global key-down: the platform key code plus the
// modifier mask held at the time of the press.
type KeyEvent struct {
	Code uint16
	Mods Mod
}

// Tap is the OS-level key-event hook. Install attaches the hook and begins
// delivering key-down events to handler; handler returning true asks the
// tap to suppress further propagation of that event, where the OS allows
// it. Close detaches the hook and stops delivery. A Tap must support
// repeated Install/Close cycles so the chord can be reconfigured.
type Tap interface {
	Install(handler func(KeyEvent) bool) error
	Close() error
}

// PermissionChecker reports whether the OS permission required to install
// a global key tap (accessibility on macOS) is currently granted.
type PermissionChecker interface {
	Granted() bool
}
