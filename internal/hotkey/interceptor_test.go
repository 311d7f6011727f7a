package hotkey

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTap struct {
	mu       sync.Mutex
	handler  func(KeyEvent) bool
	installs int
	closes   int
	err      error
}

func (f *fakeTap) Install(handler func(KeyEvent) bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installs++
	if f.err != nil {
		return f.err
	}
	f.handler = handler
	return nil
}

func (f *fakeTap) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	f.handler = nil
	return nil
}

// press delivers a key-down to the installed handler, as the OS hook would.
func (f *fakeTap) press(ev KeyEvent) bool {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h == nil {
		return false
	}
	return h(ev)
}

func (f *fakeTap) counts() (installs, closes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installs, f.closes
}

type fakePerm struct {
	mu      sync.Mutex
	granted bool
}

func (f *fakePerm) Granted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.granted
}

func (f *fakePerm) set(granted bool) {
	f.mu.Lock()
	f.granted = granted
	f.mu.Unlock()
}

type fakeNotifier struct {
	mu      sync.Mutex
	denied  int
	granted int
}

func (f *fakeNotifier) PermissionDenied() {
	f.mu.Lock()
	f.denied++
	f.mu.Unlock()
}

func (f *fakeNotifier) PermissionGranted() {
	f.mu.Lock()
	f.granted++
	f.mu.Unlock()
}

func (f *fakeNotifier) counts() (denied, granted int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.denied, f.granted
}

func testChord(t *testing.T) Chord {
	t.Helper()
	c, err := ParseChord("V", []string{"command", "option"})
	require.NoError(t, err)
	return c
}

func fastOpts() Options {
	return Options{Backoff: 30 * time.Millisecond, Recheck: 5 * time.Millisecond, MaxAttempts: 3}
}

func waitState(t *testing.T, i *Interceptor, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return i.State() == want },
		2*time.Second, time.Millisecond, "want state %v", want)
}

func TestInterceptor_InstallsWhenPermissionGranted(t *testing.T) {
	tap := &fakeTap{}
	perm := &fakePerm{granted: true}
	notify := &fakeNotifier{}
	i := New(tap, perm, notify, testChord(t), fastOpts())

	i.Start()
	defer i.Stop()
	waitState(t, i, StateInstalled)

	// No notification on a clean first install.
	denied, granted := notify.counts()
	require.Zero(t, denied)
	require.Zero(t, granted)
}

func TestInterceptor_MatchedChordActivatesAndSuppresses(t *testing.T) {
	tap := &fakeTap{}
	i := New(tap, &fakePerm{granted: true}, &fakeNotifier{}, testChord(t), fastOpts())
	i.Start()
	defer i.Stop()
	waitState(t, i, StateInstalled)

	require.True(t, tap.press(KeyEvent{Code: 9, Mods: ModCommand | ModOption}))
	select {
	case <-i.Activations():
	case <-time.After(time.Second):
		t.Fatal("no activation for matched chord")
	}

	// A non-matching event passes through and raises nothing.
	require.False(t, tap.press(KeyEvent{Code: 9, Mods: ModCommand}))
	select {
	case <-i.Activations():
		t.Fatal("activation for non-matching event")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestInterceptor_GrantMidWaitShortcutsBackoff(t *testing.T) {
	tap := &fakeTap{}
	perm := &fakePerm{}
	notify := &fakeNotifier{}
	opts := fastOpts()
	opts.Backoff = 10 * time.Second // only a mid-wait grant can finish the test in time
	i := New(tap, perm, notify, testChord(t), opts)

	i.Start()
	defer i.Stop()
	waitState(t, i, StateRetryWait)

	perm.set(true)
	waitState(t, i, StateInstalled)

	// Recovery after failed attempts is announced.
	require.Eventually(t, func() bool {
		_, granted := notify.counts()
		return granted == 1
	}, time.Second, time.Millisecond)
}

func TestInterceptor_GivesUpAfterMaxAttempts(t *testing.T) {
	tap := &fakeTap{}
	notify := &fakeNotifier{}
	i := New(tap, &fakePerm{}, notify, testChord(t), fastOpts())

	i.Start()
	defer i.Stop()
	waitState(t, i, StateFailed)

	denied, granted := notify.counts()
	require.Equal(t, 1, denied)
	require.Zero(t, granted)

	installs, _ := tap.counts()
	require.Zero(t, installs, "no install attempts without permission")
}

func TestInterceptor_InstallErrorRetriesDespitePermission(t *testing.T) {
	tap := &fakeTap{err: errors.New("tap creation failed")}
	notify := &fakeNotifier{}
	i := New(tap, &fakePerm{granted: true}, notify, testChord(t), fastOpts())

	i.Start()
	defer i.Stop()
	waitState(t, i, StateFailed)

	installs, _ := tap.counts()
	require.Equal(t, 3, installs)
	denied, _ := notify.counts()
	require.Equal(t, 1, denied)
}

func TestInterceptor_StopReleasesTap(t *testing.T) {
	tap := &fakeTap{}
	i := New(tap, &fakePerm{granted: true}, &fakeNotifier{}, testChord(t), fastOpts())
	i.Start()
	waitState(t, i, StateInstalled)

	i.Stop()
	require.Equal(t, StateUninstalled, i.State())
	_, closes := tap.counts()
	require.Equal(t, 1, closes)

	// Events after Stop go nowhere.
	require.False(t, tap.press(KeyEvent{Code: 9, Mods: ModCommand | ModOption}))

	// Stop is idempotent.
	i.Stop()
}

func TestInterceptor_ReconfigureSwapsChordCleanly(t *testing.T) {
	tap := &fakeTap{}
	i := New(tap, &fakePerm{granted: true}, &fakeNotifier{}, testChord(t), fastOpts())
	i.Start()
	defer i.Stop()
	waitState(t, i, StateInstalled)

	next, err := ParseChord("C", []string{"control", "shift"})
	require.NoError(t, err)
	i.Reconfigure(next)
	waitState(t, i, StateInstalled)

	installs, closes := tap.counts()
	require.Equal(t, 2, installs)
	require.Equal(t, 1, closes)
	require.Equal(t, "control+shift+C", i.Chord().String())

	// The old chord no longer fires; the new one does.
	require.False(t, tap.press(KeyEvent{Code: 9, Mods: ModCommand | ModOption}))
	require.True(t, tap.press(KeyEvent{Code: 8, Mods: ModControl | ModShift}))
	select {
	case <-i.Activations():
	case <-time.After(time.Second):
		t.Fatal("no activation for reconfigured chord")
	}
}
