//go:build darwin

package hotkey

import (
	"os/exec"
	"strings"
)

// accessibilityChecker asks System Events whether assistive access is
// enabled for this process, the same check the OS applies before allowing
// a global event tap.
type accessibilityChecker struct{}

// NewPermissionChecker returns the macOS accessibility checker.
func NewPermissionChecker() PermissionChecker { return accessibilityChecker{} }

func (accessibilityChecker) Granted() bool {
	out, err := exec.Command("osascript", "-e",
		`tell application "System Events" to UI elements enabled`).Output()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(out)), "true")
}
