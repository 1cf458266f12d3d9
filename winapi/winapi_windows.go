//go:build windows

// Package winapi holds the thin kernel32.dll/user32.dll bindings shared by
// capture, wndhook and iat. It does no policy of its own: every function
// here is a direct syscall wrapper, named after the Win32 API it calls.
package winapi

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	user32   = windows.NewLazySystemDLL("user32.dll")

	procGetModuleHandleW   = kernel32.NewProc("GetModuleHandleW")
	procGetModuleFileNameW = kernel32.NewProc("GetModuleFileNameW")
	procVirtualProtect     = kernel32.NewProc("VirtualProtect")

	procAllocConsole     = kernel32.NewProc("AllocConsole")
	procSetConsoleTitleW = kernel32.NewProc("SetConsoleTitleW")

	procFindWindowW         = user32.NewProc("FindWindowW")
	procGetWindowLongPtrW   = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW   = user32.NewProc("SetWindowLongPtrW")
	procCallWindowProcW     = user32.NewProc("CallWindowProcW")
	procRegisterRawInputDev = user32.NewProc("RegisterRawInputDevices")
	procGetRawInputData     = user32.NewProc("GetRawInputData")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procSetCursorPos        = user32.NewProc("SetCursorPos")
	procSetCursor           = user32.NewProc("SetCursor")
)

const (
	gwlWndProc = -4 // GWLP_WNDPROC

	// RegisterRawInputDevices usage page/usage pairs (spec.md §4.2).
	usagePageGeneric = 0x01
	usageMouse       = 0x02
	usageKeyboard    = 0x06

	ridInput = 0x10000003

	pageExecuteReadWrite = 0x40
)

// Rect mirrors the Win32 RECT structure.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// GetModuleHandle resolves a loaded module's base address by name.
func GetModuleHandle(name string) (uintptr, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	r, _, _ := procGetModuleHandleW.Call(uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return 0, errors.New("winapi: GetModuleHandleW returned NULL")
	}
	return r, nil
}

// GetModuleFileName returns the path a loaded module was loaded from
// (hModule == 0 means the executable of the current process).
func GetModuleFileName(hModule uintptr) (string, error) {
	buf := make([]uint16, windows.MAX_PATH)
	n, _, err := procGetModuleFileNameW.Call(hModule, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "", err
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// VirtualProtect changes the memory protection of a page-spanning region and
// returns the previous protection so the caller can restore it.
func VirtualProtect(addr uintptr, size uintptr, newProtect uint32) (old uint32, err error) {
	var oldProtect uint32
	r, _, callErr := procVirtualProtect.Call(addr, size, uintptr(newProtect), uintptr(unsafe.Pointer(&oldProtect)))
	if r == 0 {
		return 0, callErr
	}
	return oldProtect, nil
}

// VirtualProtectRWX is the protection value used while patching an IAT slot.
const VirtualProtectRWX = pageExecuteReadWrite

// AllocConsole allocates a new console for the calling process. Returns
// false if the process already owns one (e.g. launched under a debugger),
// in which case the caller should leave stdio untouched.
func AllocConsole() bool {
	r, _, _ := procAllocConsole.Call()
	return r != 0
}

// SetConsoleTitle sets the title of the calling process's console.
func SetConsoleTitle(title string) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	procSetConsoleTitleW.Call(uintptr(unsafe.Pointer(p)))
}

// FindWindowByTitle looks up a top-level window by its exact title. Returns
// ok == false, not an error, when no such window exists: the subclasser
// treats this as retryable.
func FindWindowByTitle(title string) (hwnd uintptr, ok bool) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, false
	}
	r, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	return r, r != 0
}

// GetWindowProc reads a window's current GWLP_WNDPROC pointer.
func GetWindowProc(hwnd uintptr) uintptr {
	r, _, _ := procGetWindowLongPtrW.Call(hwnd, uintptr(gwlWndProc))
	return r
}

// SetWindowProc installs a new GWLP_WNDPROC pointer and returns the one it
// displaced.
func SetWindowProc(hwnd uintptr, newProc uintptr) uintptr {
	r, _, _ := procSetWindowLongPtrW.Call(hwnd, uintptr(gwlWndProc), newProc)
	return r
}

// CallWindowProc chain-calls a previously displaced window procedure.
func CallWindowProc(proc uintptr, hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procCallWindowProcW.Call(proc, hwnd, uintptr(msg), wParam, lParam)
	return r
}

// RegisterRawInputDevices subscribes the process to raw mouse and keyboard
// input (usage page 1, usages 2 and 6), delivered to whichever window has
// focus (spec.md §4.2).
func RegisterRawInputDevices() bool {
	type rawInputDevice struct {
		usUsagePage uint16
		usUsage     uint16
		dwFlags     uint32
		hwndTarget  uintptr
	}
	devices := [2]rawInputDevice{
		{usagePageGeneric, usageMouse, 0, 0},
		{usagePageGeneric, usageKeyboard, 0, 0},
	}
	r, _, _ := procRegisterRawInputDev.Call(
		uintptr(unsafe.Pointer(&devices[0])),
		2,
		unsafe.Sizeof(devices[0]),
	)
	return r != 0
}

// GetRawInputPayload fetches the RAWINPUT payload referenced by an lParam
// from a WM_INPUT message, using the two-pass size-query-then-fetch idiom
// (spec.md §4.2).
func GetRawInputPayload(lParam uintptr) ([]byte, bool) {
	var size uint32
	headerSize := uint32(unsafe.Sizeof(rawInputHeader{}))

	r, _, _ := procGetRawInputData.Call(lParam, ridInput, 0, uintptr(unsafe.Pointer(&size)), uintptr(headerSize))
	if r != 0 || size == 0 {
		return nil, false
	}

	buf := make([]byte, size)
	r, _, _ = procGetRawInputData.Call(lParam, ridInput, uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&size)), uintptr(headerSize))
	if int32(r) < 0 {
		return nil, false
	}
	return buf, true
}

// GetWindowRect reads a window's screen-space outer rectangle.
func GetWindowRect(hwnd uintptr) (Rect, bool) {
	var r Rect
	ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return r, ret != 0
}

// SetCursorPos moves the system cursor to an absolute screen position.
func SetCursorPos(x, y int32) {
	procSetCursorPos.Call(uintptr(x), uintptr(y))
}

// SetNullCursor replaces the current cursor with no cursor at all (hides it).
func SetNullCursor() {
	procSetCursor.Call(0)
}

// IsWindow reports whether hwnd still refers to a live window.
func IsWindow(hwnd uintptr) bool {
	r, _, _ := user32.NewProc("IsWindow").Call(hwnd)
	return r != 0
}
