// Package capture implements the thread-safe keyboard/mouse snapshot (C2 in
// spec.md) that the mapper reads each frame, and the window-message parser
// that feeds it.
package capture

import (
	"errors"
	"sync"

	"github.com/Alia5/mouseplay/winapi"
)

// ErrRegisterFailed is returned by New when RegisterRawInputDevices fails.
var ErrRegisterFailed = errors.New("capture: unable to register raw input devices")

// hooks isolates every call this package makes into the OS so the message
// parsing and accumulation logic can be unit tested without a live window or
// message pump. New wires these to real winapi calls; tests wire fakes.
type hooks struct {
	getRawInput func(lparam uintptr) (isMouse bool, mouse winapi.RawMouse, kb winapi.RawKeyboard, ok bool)
	windowRect  func(hwnd uintptr) (top, bottom int32, ok bool)
	isWindow    func(hwnd uintptr) bool
	centerMouse func(hwnd uintptr)
	hideCursor  func()
}

// InputState is the process-wide snapshot of keyboard key states and
// accumulated mouse motion (spec.md §3). The zero value is not usable; build
// one with New.
type InputState struct {
	mu sync.RWMutex

	capture   uintptr
	hasCapture bool
	mouseLock bool

	keys [256]bool

	accumX, accumY int
	frameX, frameY int

	h hooks
}

func newState(h hooks) *InputState {
	return &InputState{h: h}
}

// Key reports whether the named virtual key is currently held. Unknown names
// return false rather than panicking: mapping files are untrusted input.
func (s *InputState) Key(name string) bool {
	vk, ok := vkTable[name]
	if !ok || vk < 0 || vk > 255 {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[vk]
}

func (s *InputState) setKey(vk int, down bool) {
	if vk < 0 || vk > 255 {
		return
	}
	s.keys[vk] = down
}

// Parse inspects one window message and reports whether it should be
// forwarded to the original window procedure.
func (s *InputState) Parse(hwnd uintptr, msg uint32, wParam, lParam uintptr) (forward bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg {
	case wmInput:
		s.capture = hwnd
		s.hasCapture = true
		if isMouse, mouse, kb, ok := s.h.getRawInput(lParam); ok {
			if isMouse {
				s.applyRawMouseLocked(mouse)
			} else {
				s.applyRawKeyboardLocked(kb)
			}
		}
		return !s.mouseLock

	case wmParentNotify:
		if wParam == wmParentNotifyChildLButtonDown && s.hasCapture && !s.mouseLock {
			top, bottom, ok := s.h.windowRect(hwnd)
			if ok {
				y := int32(int16(uint16(uint32(lParam) >> 16)))
				if y <= (bottom-top)-130 {
					s.mouseLock = true
					return false
				}
			}
		}
		return true

	case wmSetCursor:
		if s.hasCapture && s.mouseLock {
			if uint16(lParam) == httClient {
				s.h.hideCursor()
			}
			return false
		}
		return true

	default:
		if swallowedWhileLocked[msg] && s.hasCapture && s.mouseLock {
			return false
		}
		return true
	}
}

// applyRawMouseLocked folds one RAWMOUSE sample into the accumulator and
// translates its button-flag bits into key-state writes for the five mouse
// virtual keys. Caller must hold s.mu.
func (s *InputState) applyRawMouseLocked(m winapi.RawMouse) {
	s.accumX += int(m.LastX)
	s.accumY += int(m.LastY)

	const (
		lButtonDown  = 1 << 0
		lButtonUp    = 1 << 1
		rButtonDown  = 1 << 2
		rButtonUp    = 1 << 3
		mButtonDown  = 1 << 4
		mButtonUp    = 1 << 5
		x1ButtonDown = 1 << 6
		x1ButtonUp   = 1 << 7
		x2ButtonDown = 1 << 8
		x2ButtonUp   = 1 << 9
	)

	flags := m.ButtonFlags
	if flags&lButtonDown != 0 {
		s.setKey(vkLButton, true)
	}
	if flags&lButtonUp != 0 {
		s.setKey(vkLButton, false)
	}
	if flags&rButtonDown != 0 {
		s.setKey(vkRButton, true)
	}
	if flags&rButtonUp != 0 {
		s.setKey(vkRButton, false)
	}
	if flags&mButtonDown != 0 {
		s.setKey(vkMButton, true)
	}
	if flags&mButtonUp != 0 {
		s.setKey(vkMButton, false)
	}
	if flags&x1ButtonDown != 0 {
		s.setKey(vkXButton1, true)
	}
	if flags&x1ButtonUp != 0 {
		s.setKey(vkXButton1, false)
	}
	if flags&x2ButtonDown != 0 {
		s.setKey(vkXButton2, true)
	}
	if flags&x2ButtonUp != 0 {
		s.setKey(vkXButton2, false)
	}
}

// applyRawKeyboardLocked sets or clears one key slot and evaluates the
// unlock condition (Shift+Escape both held at the same raw-input frame).
// Caller must hold s.mu.
func (s *InputState) applyRawKeyboardLocked(k winapi.RawKeyboard) {
	down := k.Flags == 0
	s.setKey(int(k.VKey), down)

	if s.keys[vkShift] && s.keys[vkEscape] {
		s.mouseLock = false
	}
}

// ApplyRawMouse and ApplyRawKeyboard are exported, lock-taking variants of
// the internal per-sample appliers, used by tests exercising accumulation
// and button translation without going through Parse/WM_INPUT.
func (s *InputState) ApplyRawMouse(m winapi.RawMouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyRawMouseLocked(m)
}

func (s *InputState) ApplyRawKeyboard(k winapi.RawKeyboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyRawKeyboardLocked(k)
}

// Accumulate snapshots the accumulator into the per-frame mouse delta, then
// zeroes the accumulator. Whenever a capture window is recorded it re-checks
// that the window still exists, and if not, drops both the capture and the
// lock — the second of the two unlock conditions (spec.md §4.2). If still
// locked after that, it re-centers the system cursor in the capture window.
func (s *InputState) Accumulate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frameX, s.frameY = s.accumX, s.accumY
	s.accumX, s.accumY = 0, 0

	if s.hasCapture && !s.h.isWindow(s.capture) {
		s.mouseLock = false
		s.hasCapture = false
	}

	if s.mouseLock && s.hasCapture {
		s.h.centerMouse(s.capture)
	}
}

// MouseX and MouseY read the most recent frame snapshot.
func (s *InputState) MouseX() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameX
}

func (s *InputState) MouseY() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameY
}

// Locked reports whether mouse-lock is currently engaged.
func (s *InputState) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseLock
}

// Capturing reports whether a capture window has been recorded.
func (s *InputState) Capturing() (hwnd uintptr, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capture, s.hasCapture
}
