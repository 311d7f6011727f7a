package ipc

import (
	"bufio"
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relentiousdragon/Mac-Clipper/internal/history"
)

func TestConn_RequestResponseRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	cc := NewConn(client)
	sc := NewConn(server)
	defer cc.Close()
	defer sc.Close()

	done := make(chan error, 1)
	go func() {
		var req Request
		if err := sc.Read(&req); err != nil {
			done <- err
			return
		}
		done <- sc.Write(&Response{
			OK: true,
			Entries: []EntryInfo{
				{Key: req.Key, Kind: history.KindText, Preview: "hello", Size: 5},
			},
		})
	}()

	require.NoError(t, cc.Write(&Request{Op: OpList, Key: "text:abc", Filter: "hel"}))

	var resp Response
	require.NoError(t, cc.Read(&resp))
	require.NoError(t, <-done)

	require.True(t, resp.OK)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "text:abc", resp.Entries[0].Key)
	require.Equal(t, "hello", resp.Entries[0].Preview)
}

func TestConn_BinaryPayloadSurvives(t *testing.T) {
	client, server := net.Pipe()
	cc := NewConn(client)
	sc := NewConn(server)
	defer cc.Close()
	defer sc.Close()

	payload := []byte{0x89, 'P', 'N', 'G', '\n', 0x00, 0xff}
	go func() {
		_ = cc.Write(&Request{Op: OpCopy, Kind: history.KindImage, Data: payload})
	}()

	var req Request
	require.NoError(t, sc.Read(&req))
	require.Equal(t, OpCopy, req.Op)
	require.Equal(t, history.KindImage, req.Kind)
	require.Equal(t, payload, req.Data)
}

func TestConn_ReadRejectsGarbage(t *testing.T) {
	client, server := net.Pipe()
	sc := NewConn(server)
	defer client.Close()
	defer sc.Close()

	go func() {
		_, _ = client.Write([]byte("not json\n"))
	}()

	var req Request
	require.Error(t, sc.Read(&req))
}

func TestConn_ReadRejectsOversizedMessage(t *testing.T) {
	big := make([]byte, maxLine+2)
	for i := range big {
		big[i] = 'a'
	}
	big[len(big)-1] = '\n'

	c := &Conn{br: bufio.NewReaderSize(bytes.NewReader(big), 64*1024)}
	_, err := c.readLine()
	require.Error(t, err)
	require.Contains(t, err.Error(), "too large")
}

func TestConn_ReadTimesOutWithoutData(t *testing.T) {
	t.Parallel()

	client, server := net.Pipe()
	sc := NewConn(server)
	defer client.Close()
	defer sc.Close()

	start := time.Now()
	var req Request
	err := sc.Read(&req)
	require.Error(t, err)
	require.Less(t, time.Since(start), ioDeadline+2*time.Second)
	nerr, ok := err.(net.Error)
	require.True(t, ok)
	require.True(t, nerr.Timeout())
}

func TestInfoFor(t *testing.T) {
	e := &history.Entry{
		Kind:    history.KindText,
		Payload: []byte("some copied text"),
		Time:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local),
		Pinned:  true,
	}
	info := InfoFor(e)
	require.Equal(t, e.Key(), info.Key)
	require.Equal(t, history.KindText, info.Kind)
	require.Equal(t, "09:30", info.Stamp)
	require.True(t, info.Pinned)
	require.Equal(t, "some copied text", info.Preview)
	require.Equal(t, len(e.Payload), info.Size)
}
