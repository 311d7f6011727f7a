// Package ipc is the local control channel between the clipper daemon and
// its CLI sub-commands (list, copy, paste, pin, delete, status).
//
// The channel is a Unix domain socket carrying newline-delimited JSON:
// one request line in, one response line out, per connection.
package ipc

import (
	"net"
	"os"
	"path/filepath"
)

// SocketPath returns the socket location: $CLIPPER_SOCKET if set, then
// $XDG_RUNTIME_DIR/clipper.sock, then the temp directory.
func SocketPath() string {
	if s := os.Getenv("CLIPPER_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "clipper.sock")
	}
	return filepath.Join(os.TempDir(), "clipper.sock")
}

// IsRunning reports whether a clipper daemon appears to be listening on the
// socket. A cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.Dial("unix", SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a listener on the socket path, removing any stale socket
// file left by a crashed run.
func Listen() (net.Listener, error) {
	path := SocketPath()
	_ = os.Remove(path)
	return net.Listen("unix", path)
}

// Dial connects to the daemon's socket.
func Dial() (net.Conn, error) {
	return net.Dial("unix", SocketPath())
}
