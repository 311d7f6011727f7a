package watcher

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relentiousdragon/Mac-Clipper/internal/clip"
	"github.com/relentiousdragon/Mac-Clipper/internal/history"
)

type fakeBackend struct {
	mu   sync.Mutex
	snap clip.Snapshot
	err  error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Read() (clip.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.err
}

func (f *fakeBackend) WriteText([]byte) error  { return nil }
func (f *fakeBackend) WriteImage([]byte) error { return nil }
func (f *fakeBackend) Close()                  {}

func (f *fakeBackend) set(snap clip.Snapshot, err error) {
	f.mu.Lock()
	f.snap = snap
	f.err = err
	f.mu.Unlock()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func startWatcher(t *testing.T, b clip.Backend) *Watcher {
	t.Helper()
	w := New(b, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return w
}

func recvEntry(t *testing.T, w *Watcher) *history.Entry {
	t.Helper()
	select {
	case e := <-w.Events():
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for clipboard event")
		return nil
	}
}

func requireNoEvent(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case e := <-w.Events():
		t.Fatalf("unexpected event: %q", e.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRun_EmitsOnChangeOnly(t *testing.T) {
	b := &fakeBackend{}
	b.set(clip.Snapshot{Text: []byte("first")}, nil)
	w := startWatcher(t, b)

	e := recvEntry(t, w)
	require.Equal(t, history.KindText, e.Kind)
	require.Equal(t, "first", string(e.Payload))

	// Same content on subsequent polls: no further events.
	requireNoEvent(t, w)

	b.set(clip.Snapshot{Text: []byte("second")}, nil)
	require.Equal(t, "second", string(recvEntry(t, w).Payload))
}

func TestRun_ReadErrorSkipsCycle(t *testing.T) {
	b := &fakeBackend{}
	b.set(clip.Snapshot{}, errors.New("pasteboard busy"))
	w := startWatcher(t, b)

	requireNoEvent(t, w)

	b.set(clip.Snapshot{Text: []byte("back")}, nil)
	require.Equal(t, "back", string(recvEntry(t, w).Payload))
}

func TestRun_EmptyClipboardEmitsNothing(t *testing.T) {
	b := &fakeBackend{}
	b.set(clip.Snapshot{Text: []byte("   \n\t")}, nil)
	w := startWatcher(t, b)

	requireNoEvent(t, w)
}

func TestMarkObserved_SuppressesPasteBack(t *testing.T) {
	b := &fakeBackend{}
	w := startWatcher(t, b)

	entry := Normalize(clip.Snapshot{Text: []byte("written by us")}, time.Now())
	require.NotNil(t, entry)
	w.MarkObserved(entry.Key())

	b.set(clip.Snapshot{Text: []byte("written by us")}, nil)
	requireNoEvent(t, w)
}

func TestNormalize_TrimsText(t *testing.T) {
	e := Normalize(clip.Snapshot{Text: []byte("  hello \n")}, time.Now())
	require.NotNil(t, e)
	require.Equal(t, history.KindText, e.Kind)
	require.Equal(t, "hello", string(e.Payload))
}

func TestNormalize_ImageWinsOverText(t *testing.T) {
	raw := pngBytes(t)
	e := Normalize(clip.Snapshot{Text: []byte("caption"), Image: raw}, time.Now())
	require.NotNil(t, e)
	require.Equal(t, history.KindImage, e.Kind)
	require.Equal(t, raw, e.Payload)
}

func TestNormalize_RejectsUndecodableImage(t *testing.T) {
	require.Nil(t, Normalize(clip.Snapshot{Image: []byte("not a png")}, time.Now()))
}

func TestNormalize_EmptyYieldsNil(t *testing.T) {
	require.Nil(t, Normalize(clip.Snapshot{}, time.Now()))
}
