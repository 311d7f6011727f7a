package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const (
	// maxLine is the largest message accepted (images travel base64-encoded
	// inside COPY requests).
	maxLine = 32 * 1024 * 1024

	ioDeadline = 5 * time.Second
)

// Conn frames newline-delimited JSON messages over a net.Conn.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader
}

// NewConn wraps conn with ndjson framing.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn, br: bufio.NewReaderSize(conn, 64*1024)}
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// Write serialises v as one JSON line.
func (c *Conn) Write(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(ioDeadline))
	_, err = c.conn.Write(append(raw, '\n'))
	_ = c.conn.SetWriteDeadline(time.Time{})
	return err
}

// Read reads one newline-terminated JSON line into v.
func (c *Conn) Read(v any) error {
	_ = c.conn.SetReadDeadline(time.Now().Add(ioDeadline))
	line, err := c.readLine()
	_ = c.conn.SetReadDeadline(time.Time{})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(line, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// readLine accumulates up to the newline, aborting as soon as the line
// exceeds maxLine so an oversized message never gets fully buffered.
func (c *Conn) readLine() ([]byte, error) {
	var line []byte
	for {
		chunk, err := c.br.ReadSlice('\n')
		line = append(line, chunk...)
		if len(line) > maxLine+1 { // +1 for the delimiter
			return nil, fmt.Errorf("message too large (over %d bytes)", maxLine)
		}
		if err == nil {
			return line[:len(line)-1], nil
		}
		if err != bufio.ErrBufferFull {
			return nil, err
		}
	}
}

// Call dials the daemon, sends req, and returns the response. Used by the
// CLI sub-commands.
func Call(req *Request) (*Response, error) {
	conn, err := Dial()
	if err != nil {
		return nil, fmt.Errorf("clipper daemon not reachable at %s: %w", SocketPath(), err)
	}
	defer conn.Close()

	wc := NewConn(conn)
	if err := wc.Write(req); err != nil {
		return nil, err
	}
	var resp Response
	if err := wc.Read(&resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return &resp, fmt.Errorf("daemon: %s", resp.Err)
	}
	return &resp, nil
}
