package wndhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeTrampoline uintptr = 0xDEAD

func newTestSubclasser() (*Subclasser, *fakeWin) {
	f := &fakeWin{procs: map[uintptr]uintptr{}}
	s := &Subclasser{
		registry:       NewRegistry(),
		trampolineAddr: fakeTrampoline,
		findWindow:     f.findWindow,
		getWindowProc:  f.getWindowProc,
		setWindowProc:  f.setWindowProc,
		callWindowProc: f.callWindowProc,
		parse:          f.parse,
	}
	return s, f
}

type fakeWin struct {
	hwnd      uintptr
	found     bool
	procs     map[uintptr]uintptr
	forward   bool
	chainArgs []uintptr
}

func (f *fakeWin) findWindow(string) (uintptr, bool) { return f.hwnd, f.found }

func (f *fakeWin) getWindowProc(hwnd uintptr) uintptr { return f.procs[hwnd] }

func (f *fakeWin) setWindowProc(hwnd, newProc uintptr) uintptr {
	old := f.procs[hwnd]
	f.procs[hwnd] = newProc
	return old
}

func (f *fakeWin) callWindowProc(proc, hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	f.chainArgs = []uintptr{proc, hwnd, uintptr(msg), wParam, lParam}
	return 7
}

func (f *fakeWin) parse(hwnd uintptr, msg uint32, wParam, lParam uintptr) bool { return f.forward }

func TestHijackReturnsErrWindowNotFoundWhenAbsent(t *testing.T) {
	s, f := newTestSubclasser()
	f.found = false

	err := s.Hijack()
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestHijackInstallsTrampolineAndRecordsOriginal(t *testing.T) {
	s, f := newTestSubclasser()
	f.hwnd = 1
	f.found = true
	f.procs[1] = 0x1111

	err := s.Hijack()
	require.NoError(t, err)

	assert.Equal(t, fakeTrampoline, f.procs[1])
	orig, ok := s.registry.Get(1)
	require.True(t, ok)
	assert.EqualValues(t, 0x1111, orig)
}

func TestHijackIsIdempotent(t *testing.T) {
	s, f := newTestSubclasser()
	f.hwnd = 1
	f.found = true
	f.procs[1] = 0x1111

	require.NoError(t, s.Hijack())
	require.NoError(t, s.Hijack())

	// setWindowProc must only ever have swapped in the original once: a
	// second Hijack should see its own trampoline already installed and do
	// nothing, so the registry still holds the real original, not our own
	// trampoline address.
	orig, ok := s.registry.Get(1)
	require.True(t, ok)
	assert.EqualValues(t, 0x1111, orig)
}

func TestDispatchSwallowsWhenParseSaysDoNotForward(t *testing.T) {
	s, f := newTestSubclasser()
	f.forward = false
	s.registry.Set(1, 0x2222)

	result := s.dispatch(1, 0x00FF, 0, 0)
	assert.EqualValues(t, 0, result)
	assert.Nil(t, f.chainArgs)
}

func TestDispatchChainCallsOriginalWhenForwarding(t *testing.T) {
	s, f := newTestSubclasser()
	f.forward = true
	s.registry.Set(1, 0x2222)

	result := s.dispatch(1, 0x0100, 9, 99)
	assert.EqualValues(t, 7, result)
	require.NotNil(t, f.chainArgs)
	assert.EqualValues(t, 0x2222, f.chainArgs[0])
	assert.EqualValues(t, 1, f.chainArgs[1])
	assert.EqualValues(t, 0x0100, f.chainArgs[2])
	assert.EqualValues(t, 9, f.chainArgs[3])
	assert.EqualValues(t, 99, f.chainArgs[4])
}

func TestDispatchReturnsZeroWhenNoOriginalRecorded(t *testing.T) {
	s, f := newTestSubclasser()
	f.forward = true

	result := s.dispatch(404, 0x0100, 0, 0)
	assert.EqualValues(t, 0, result)
	assert.Nil(t, f.chainArgs)
}
