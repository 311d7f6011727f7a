// Package paste writes a chosen history entry back to the system clipboard
// and forwards it into the previously focused application by reactivating
// it and synthesizing the platform paste keystroke.
package paste

// Bridge is the narrow OS contract the coordinator needs: who is focused,
// focus them again, and press paste.
type Bridge interface {
	// FrontmostApp returns the name of the currently focused application.
	FrontmostApp() (string, error)

	// Activate brings the named application to the foreground.
	Activate(name string) error

	// SendPaste synthesizes the platform paste key combination directed at
	// the frontmost application.
	SendPaste() error
}
