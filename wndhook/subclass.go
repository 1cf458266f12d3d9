package wndhook

import "errors"

// targetWindowTitle is the exact top-level window title we hijack
// (spec.md §4.3).
const targetWindowTitle = "PS Remote Play"

// ErrWindowNotFound is returned by Hijack when no window with
// targetWindowTitle currently exists. It is silent/retryable: Hijack is
// called again on every ReadFile interception (spec.md §7).
var ErrWindowNotFound = errors.New("wndhook: window not found")

// Subclasser installs our trampoline as a window's message handler and
// chain-calls the original. Every OS call it makes is a seam (see the
// function fields below) so Hijack's idempotency logic and dispatch's
// forward/swallow decision can be unit tested without a live window.
type Subclasser struct {
	registry *Registry

	// trampolineAddr is the address installed as GWLP_WNDPROC. It never
	// changes after construction.
	trampolineAddr uintptr

	findWindow     func(title string) (hwnd uintptr, ok bool)
	getWindowProc  func(hwnd uintptr) uintptr
	setWindowProc  func(hwnd, newProc uintptr) uintptr
	callWindowProc func(proc, hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr

	// parse reports whether a message should be forwarded to the original
	// handler; it is capture.InputState.Parse in production.
	parse func(hwnd uintptr, msg uint32, wParam, lParam uintptr) (forward bool)
}

// Hijack locates the host's game window, and — unless it is already
// subclassed with our trampoline — swaps in our trampoline and records the
// displaced handler in the registry. Safe to call repeatedly: the
// pointer-equality check makes it idempotent (spec.md §4.3).
func (s *Subclasser) Hijack() error {
	hwnd, ok := s.findWindow(targetWindowTitle)
	if !ok {
		return ErrWindowNotFound
	}

	if s.getWindowProc(hwnd) == s.trampolineAddr {
		return nil
	}

	orig := s.setWindowProc(hwnd, s.trampolineAddr)
	s.registry.Set(hwnd, orig)
	return nil
}

// dispatch is the trampoline body: ask parse whether to forward, and if so,
// chain-call whichever original handler was recorded for this window. If no
// original is on record (should not happen once Hijack has run) or parse
// says do-not-forward, it returns 0 without calling into the host.
func (s *Subclasser) dispatch(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	if !s.parse(hwnd, msg, wParam, lParam) {
		return 0
	}
	orig, ok := s.registry.Get(hwnd)
	if !ok || orig == 0 {
		return 0
	}
	return s.callWindowProc(orig, hwnd, msg, wParam, lParam)
}
