//go:build windows

package wndhook

import (
	"log"

	"github.com/Alia5/mouseplay/winapi"
	"golang.org/x/sys/windows"
)

// Parser is the subset of capture.InputState Subclasser needs. Satisfied by
// *capture.InputState; kept as an interface here so wndhook does not depend
// on the capture package.
type Parser interface {
	Parse(hwnd uintptr, msg uint32, wParam, lParam uintptr) (forward bool)
}

// New builds a Subclasser that routes messages through parser and chains to
// whichever window procedure it displaces.
func New(parser Parser) *Subclasser {
	s := &Subclasser{
		registry:       NewRegistry(),
		findWindow:     winapi.FindWindowByTitle,
		getWindowProc:  winapi.GetWindowProc,
		setWindowProc:  winapi.SetWindowProc,
		callWindowProc: winapi.CallWindowProc,
		parse:          parser.Parse,
	}
	s.trampolineAddr = windows.NewCallback(func(hwnd, msg, wParam, lParam uintptr) (result uintptr) {
		// A panic in parse must not unwind into the host: fall back to
		// chaining the original handler, as if parse had said forward.
		defer func() {
			if r := recover(); r != nil {
				log.Printf("wndhook: recovered panic in window proc: %v", r)
				result = 0
				if orig, ok := s.registry.Get(hwnd); ok && orig != 0 {
					result = s.callWindowProc(orig, hwnd, uint32(msg), wParam, lParam)
				}
			}
		}()
		return s.dispatch(hwnd, uint32(msg), wParam, lParam)
	})
	return s
}
