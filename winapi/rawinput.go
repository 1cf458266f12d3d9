package winapi

import "unsafe"

// rawInputHeader mirrors the Win32 RAWINPUTHEADER structure. It carries no
// build tag: it is pure struct layout, used to size and decode a RAWINPUT
// payload already fetched by GetRawInputPayload, so the decoding logic can
// be exercised with a synthetic buffer in tests on any platform.
type rawInputHeader struct {
	dwType  uint32
	dwSize  uint32
	hDevice uintptr
	wParam  uintptr
}

// RAWINPUT device type discriminants (RIM_TYPE*).
const (
	RimTypeMouse    = 0
	RimTypeKeyboard = 1
)

// RawMouse mirrors the fields of RAWMOUSE the mapper pipeline consumes.
type RawMouse struct {
	ButtonFlags  uint16
	RawButtons   uint32
	LastX, LastY int32
}

// RawKeyboard mirrors the fields of RAWKEYBOARD the mapper pipeline
// consumes.
type RawKeyboard struct {
	VKey  uint16
	Flags uint16
}

// rawMouseLayout mirrors the Win32 RAWMOUSE structure exactly (including its
// padding and the usButtonFlags/usButtonData union members) so it can be
// overlaid directly onto bytes returned by GetRawInputData.
type rawMouseLayout struct {
	usFlags            uint16
	_                  uint16
	usButtonFlags      uint16
	usButtonData       uint16
	ulRawButtons       uint32
	lLastX             int32
	lLastY             int32
	ulExtraInformation uint32
}

// rawKeyboardLayout mirrors the Win32 RAWKEYBOARD structure.
type rawKeyboardLayout struct {
	makeCode         uint16
	flags            uint16
	reserved         uint16
	vKey             uint16
	message          uint32
	extraInformation uint32
}

// DecodeRawInput interprets a buffer previously returned by
// GetRawInputPayload as either a mouse or keyboard event. ok is false if the
// buffer is too short or carries an unrecognized device type.
func DecodeRawInput(buf []byte) (isMouse bool, mouse RawMouse, keyboard RawKeyboard, ok bool) {
	headerSize := int(unsafe.Sizeof(rawInputHeader{}))
	if len(buf) < headerSize {
		return false, RawMouse{}, RawKeyboard{}, false
	}
	header := (*rawInputHeader)(unsafe.Pointer(&buf[0]))
	body := buf[headerSize:]

	switch header.dwType {
	case RimTypeMouse:
		if len(body) < int(unsafe.Sizeof(rawMouseLayout{})) {
			return false, RawMouse{}, RawKeyboard{}, false
		}
		m := (*rawMouseLayout)(unsafe.Pointer(&body[0]))
		return true, RawMouse{
			ButtonFlags: m.usButtonFlags,
			RawButtons:  m.ulRawButtons,
			LastX:       m.lLastX,
			LastY:       m.lLastY,
		}, RawKeyboard{}, true
	case RimTypeKeyboard:
		if len(body) < int(unsafe.Sizeof(rawKeyboardLayout{})) {
			return false, RawMouse{}, RawKeyboard{}, false
		}
		k := (*rawKeyboardLayout)(unsafe.Pointer(&body[0]))
		return false, RawMouse{}, RawKeyboard{VKey: k.vKey, Flags: k.flags}, true
	default:
		return false, RawMouse{}, RawKeyboard{}, false
	}
}
