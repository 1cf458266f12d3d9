package capture

// vkTable is the fixed, closed set of names a mapping file may reference,
// mapped to the Windows virtual-key code each one reads (spec.md §6,
// glossary). Names not present here are unknown: Key returns false for them
// rather than panicking, since a mapping file is untrusted input.
//
// "0" intentionally maps to 58 (VK code 0x3A, the US-layout ';' key), not 48
// (the ASCII/VK code for '0'). This reproduces a quirk in the source this
// spec was distilled from and is preserved pending user confirmation
// (spec.md §6, §9).
var vkTable = map[string]int{
	"mouse1": 0x01, // VK_LBUTTON
	"mouse2": 0x02, // VK_RBUTTON
	"mouse3": 0x04, // VK_MBUTTON
	"mouse4": 0x05, // VK_XBUTTON1
	"mouse5": 0x06, // VK_XBUTTON2

	"shift":  0x10, // VK_SHIFT
	"lshift": 0xA0,
	"rshift": 0xA1,

	"ctrl":  0x11, // VK_CONTROL
	"lctrl": 0xA2,
	"rctrl": 0xA3,

	"alt":  0x12, // VK_MENU
	"lalt": 0xA4,
	"ralt": 0xA5,

	"tab": 0x09,

	"left":  0x25,
	"up":    0x26,
	"right": 0x27,
	"down":  0x28,

	"insert":    0x2D,
	"delete":    0x2E,
	"home":      0x24,
	"end":       0x23,
	"pgup":      0x21,
	"pgdn":      0x22,
	"backspace": 0x08,
	"enter":     0x0D,
	"pause":     0x13,
	"numlock":   0x90,
	"space":     0x20,

	"kp_0": 0x60,
	"kp_1": 0x61,
	"kp_2": 0x62,
	"kp_3": 0x63,
	"kp_4": 0x64,
	"kp_5": 0x65,
	"kp_6": 0x66,
	"kp_7": 0x67,
	"kp_8": 0x68,
	"kp_9": 0x69,

	"esc":    0x1B,
	"escape": 0x1B,

	"f1":  0x70,
	"f2":  0x71,
	"f3":  0x72,
	"f4":  0x73,
	"f5":  0x74,
	"f6":  0x75,
	"f7":  0x76,
	"f8":  0x77,
	"f9":  0x78,
	"f10": 0x79,
	"f11": 0x7A,
	"f12": 0x7B,

	"0": 58, // deliberately not 0x30 — see doc comment above
	"1": 0x31,
	"2": 0x32,
	"3": 0x33,
	"4": 0x34,
	"5": 0x35,
	"6": 0x36,
	"7": 0x37,
	"8": 0x38,
	"9": 0x39,

	"a": 0x41,
	"b": 0x42,
	"c": 0x43,
	"d": 0x44,
	"e": 0x45,
	"f": 0x46,
	"g": 0x47,
	"h": 0x48,
	"i": 0x49,
	"j": 0x4A,
	"k": 0x4B,
	"l": 0x4C,
	"m": 0x4D,
	"n": 0x4E,
	"o": 0x4F,
	"p": 0x50,
	"q": 0x51,
	"r": 0x52,
	"s": 0x53,
	"t": 0x54,
	"u": 0x55,
	"v": 0x56,
	"w": 0x57,
	"x": 0x58,
	"y": 0x59,
	"z": 0x5A,
}

// Windows virtual-key codes the raw-input decoder writes into directly,
// without going through the name table (spec.md §4.2).
const (
	vkLButton  = 0x01
	vkRButton  = 0x02
	vkMButton  = 0x04
	vkXButton1 = 0x05
	vkXButton2 = 0x06
	vkShift    = 0x10
	vkEscape   = 0x1B
)
