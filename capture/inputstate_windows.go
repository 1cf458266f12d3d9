//go:build windows

package capture

import "github.com/Alia5/mouseplay/winapi"

// New registers the process for raw mouse and keyboard input and returns a
// ready-to-use InputState. It fails with ErrRegisterFailed if the OS call
// returns zero (spec.md §4.2).
func New() (*InputState, error) {
	if !winapi.RegisterRawInputDevices() {
		return nil, ErrRegisterFailed
	}
	return newState(hooks{
		getRawInput: func(lParam uintptr) (bool, winapi.RawMouse, winapi.RawKeyboard, bool) {
			buf, ok := winapi.GetRawInputPayload(lParam)
			if !ok {
				return false, winapi.RawMouse{}, winapi.RawKeyboard{}, false
			}
			return winapi.DecodeRawInput(buf)
		},
		windowRect: func(hwnd uintptr) (int32, int32, bool) {
			r, ok := winapi.GetWindowRect(hwnd)
			return r.Top, r.Bottom, ok
		},
		isWindow: winapi.IsWindow,
		centerMouse: func(hwnd uintptr) {
			r, ok := winapi.GetWindowRect(hwnd)
			if !ok {
				return
			}
			winapi.SetCursorPos((r.Left+r.Right)/2, (r.Top+r.Bottom)/2)
		},
		hideCursor: winapi.SetNullCursor,
	}), nil
}
