//go:build darwin

// Package loginitem registers or removes the application as an OS login
// item.
package loginitem

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Apply registers this binary as a login item when enabled is true and
// removes the registration otherwise.
func Apply(enabled bool) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("login item: %w", err)
	}
	name := filepath.Base(exe)

	script := fmt.Sprintf(`
	tell application "System Events"
		if %t then
			if not (exists login item "%s") then
				make login item at end with properties {path:"%s", hidden:true}
			end if
		else
			if (exists login item "%s") then
				delete login item "%s"
			end if
		end if
	end tell
	`, enabled, name, exe, name, name)

	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("login item: %w: %s", err, out)
	}
	return nil
}
