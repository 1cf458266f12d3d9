package capture

import (
	"testing"

	"github.com/Alia5/mouseplay/winapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() (*InputState, *fakeOS) {
	f := &fakeOS{windowHeight: 1000, windowExists: true}
	s := newState(hooks{
		getRawInput: f.getRawInput,
		windowRect:  f.windowRect,
		isWindow:    f.isWindow,
		centerMouse: f.centerMouse,
		hideCursor:  f.hideCursor,
	})
	return s, f
}

type fakeOS struct {
	windowHeight int32
	windowExists bool
	centered     int
	cursorHidden int
	nextRaw      func() (bool, winapi.RawMouse, winapi.RawKeyboard, bool)
}

func (f *fakeOS) getRawInput(uintptr) (bool, winapi.RawMouse, winapi.RawKeyboard, bool) {
	if f.nextRaw == nil {
		return false, winapi.RawMouse{}, winapi.RawKeyboard{}, false
	}
	return f.nextRaw()
}

func (f *fakeOS) windowRect(uintptr) (int32, int32, bool) {
	return 0, f.windowHeight, true
}

func (f *fakeOS) isWindow(uintptr) bool { return f.windowExists }

func (f *fakeOS) centerMouse(uintptr) { f.centered++ }

func (f *fakeOS) hideCursor() { f.cursorHidden++ }

func TestKeyUnknownNameIsFalse(t *testing.T) {
	s, _ := newTestState()
	assert.False(t, s.Key("not_a_real_key"))
}

func TestKeyLooksUpVirtualKeyIndex(t *testing.T) {
	s, _ := newTestState()
	s.setKey(vkTable["w"], true)
	assert.True(t, s.Key("w"))
	assert.False(t, s.Key("a"))
}

func TestAccumulateZeroesAccumulator(t *testing.T) {
	s, _ := newTestState()
	s.ApplyRawMouse(winapi.RawMouse{LastX: 5, LastY: -3})
	s.Accumulate()
	assert.Equal(t, 5, s.MouseX())
	assert.Equal(t, -3, s.MouseY())

	s.Accumulate()
	assert.Equal(t, 0, s.MouseX())
	assert.Equal(t, 0, s.MouseY())
}

func TestApplyRawMouseTranslatesButtonFlags(t *testing.T) {
	s, _ := newTestState()
	s.ApplyRawMouse(winapi.RawMouse{ButtonFlags: 1 << 0}) // LBUTTONDOWN
	assert.True(t, s.Key("mouse1"))

	s.ApplyRawMouse(winapi.RawMouse{ButtonFlags: 1 << 1}) // LBUTTONUP
	assert.False(t, s.Key("mouse1"))
}

func TestShiftEscapeUnlocks(t *testing.T) {
	s, _ := newTestState()
	s.mu.Lock()
	s.mouseLock = true
	s.mu.Unlock()

	s.ApplyRawKeyboard(winapi.RawKeyboard{VKey: vkShift, Flags: 0})
	assert.True(t, s.Locked())

	s.ApplyRawKeyboard(winapi.RawKeyboard{VKey: vkEscape, Flags: 0})
	assert.False(t, s.Locked())
}

func TestAccumulateUnlocksWhenCaptureWindowGone(t *testing.T) {
	s, f := newTestState()
	s.mu.Lock()
	s.capture = 1
	s.hasCapture = true
	s.mouseLock = true
	s.mu.Unlock()

	f.windowExists = false
	s.Accumulate()

	assert.False(t, s.Locked())
	hwnd, ok := s.Capturing()
	assert.Zero(t, hwnd)
	assert.False(t, ok)
}

func TestParseWmInputSetsCaptureAndForwardsWhenUnlocked(t *testing.T) {
	s, f := newTestState()
	f.nextRaw = func() (bool, winapi.RawMouse, winapi.RawKeyboard, bool) {
		return true, winapi.RawMouse{LastX: 1, LastY: 2}, winapi.RawKeyboard{}, true
	}

	forward := s.Parse(42, wmInput, 0, 0)
	assert.True(t, forward)

	hwnd, ok := s.Capturing()
	require.True(t, ok)
	assert.EqualValues(t, 42, hwnd)
}

func TestParseWmInputSwallowsWhenLocked(t *testing.T) {
	s, f := newTestState()
	f.nextRaw = func() (bool, winapi.RawMouse, winapi.RawKeyboard, bool) {
		return true, winapi.RawMouse{}, winapi.RawKeyboard{}, true
	}
	s.mu.Lock()
	s.mouseLock = true
	s.mu.Unlock()

	forward := s.Parse(42, wmInput, 0, 0)
	assert.False(t, forward)
}

func lParamFromY(y int16) uintptr {
	return uintptr(uint32(uint16(y)) << 16)
}

func TestParentNotifyEngagesLockAboveToolbar(t *testing.T) {
	s, f := newTestState()
	f.windowHeight = 1000
	s.mu.Lock()
	s.hasCapture = true
	s.mu.Unlock()

	// y well above the bottom 130px toolbar band.
	forward := s.Parse(1, wmParentNotify, wmParentNotifyChildLButtonDown, lParamFromY(200))
	assert.False(t, forward)
	assert.True(t, s.Locked())
}

func TestParentNotifyIgnoresClicksInToolbarBand(t *testing.T) {
	s, _ := newTestState()
	s.mu.Lock()
	s.hasCapture = true
	s.mu.Unlock()

	// y within the bottom 130px band (height=1000, so y=950 is inside it).
	forward := s.Parse(1, wmParentNotify, wmParentNotifyChildLButtonDown, lParamFromY(950))
	assert.True(t, forward)
	assert.False(t, s.Locked())
}

func TestButtonMessagesSwallowedOnlyWhenLocked(t *testing.T) {
	s, _ := newTestState()
	s.mu.Lock()
	s.hasCapture = true
	s.mu.Unlock()

	assert.True(t, s.Parse(1, wmLButtonDown, 0, 0), "not locked yet, must forward")

	s.mu.Lock()
	s.mouseLock = true
	s.mu.Unlock()

	assert.False(t, s.Parse(1, wmLButtonDown, 0, 0), "locked, must swallow")
}

func TestSetCursorHidesCursorOnlyInClientAreaWhenLocked(t *testing.T) {
	s, f := newTestState()
	s.mu.Lock()
	s.hasCapture = true
	s.mouseLock = true
	s.mu.Unlock()

	forward := s.Parse(1, wmSetCursor, 0, uintptr(httClient))
	assert.False(t, forward)
	assert.Equal(t, 1, f.cursorHidden)

	// A non-client hit-test is still swallowed but does not hide the cursor.
	forward = s.Parse(1, wmSetCursor, 0, uintptr(httClient+1))
	assert.False(t, forward)
	assert.Equal(t, 1, f.cursorHidden)
}

func TestUnrelatedMessagesAlwaysForward(t *testing.T) {
	s, _ := newTestState()
	s.mu.Lock()
	s.hasCapture = true
	s.mouseLock = true
	s.mu.Unlock()

	assert.True(t, s.Parse(1, 0x4242, 0, 0))
}
