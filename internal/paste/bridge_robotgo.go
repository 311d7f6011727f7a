package paste

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// robotgoBridge implements Bridge with robotgo's window and keyboard
// synthesis calls.
type robotgoBridge struct{}

// NewBridge returns the robotgo-backed OS bridge.
func NewBridge() Bridge { return robotgoBridge{} }

func (robotgoBridge) FrontmostApp() (string, error) {
	pid := robotgo.GetPid()
	name, err := robotgo.FindName(pid)
	if err != nil {
		return "", fmt.Errorf("frontmost app: %w", err)
	}
	return name, nil
}

func (robotgoBridge) Activate(name string) error {
	if err := robotgo.ActiveName(name); err != nil {
		return fmt.Errorf("activate %q: %w", name, err)
	}
	return nil
}

func (robotgoBridge) SendPaste() error {
	if err := robotgo.KeyTap("v", robotgo.CmdCtrl()); err != nil {
		return fmt.Errorf("paste keystroke: %w", err)
	}
	return nil
}
