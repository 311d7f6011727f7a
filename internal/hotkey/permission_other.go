//go:build !darwin

package hotkey

// alwaysGranted is the permission checker for platforms without an
// accessibility gate on global hooks.
type alwaysGranted struct{}

// NewPermissionChecker returns a checker that always reports granted.
func NewPermissionChecker() PermissionChecker { return alwaysGranted{} }

func (alwaysGranted) Granted() bool { return true }
