package report

// Size is the fixed length of a HID input report this package understands.
const Size = 64

// Byte offsets into the report, contract not incidental (spec.md §3).
const (
	offLX = 1
	offLY = 2
	offRX = 3
	offRY = 4

	offFaceButtons = 5 // triangle/circle/cross/square + dpad hat
	offShoulders   = 6 // L1/R1/L2click/R2click/share/options/L3/R3
	offSystem      = 7 // PS/touch + frame counter (top 6 bits)

	offL2 = 8
	offR2 = 9

	offBattery = 30
)

// Face-button bitmask (byte 5, high nibble).
const (
	faceTriangle uint8 = 0x80
	faceCircle   uint8 = 0x40
	faceCross    uint8 = 0x20
	faceSquare   uint8 = 0x10
	dpadMask     uint8 = 0x0F
)

// D-pad hat encoding (byte 5, low nibble). 0x8 is the released/neutral state.
const (
	dpadUp        uint8 = 0x0
	dpadUpRight   uint8 = 0x1
	dpadRight     uint8 = 0x2
	dpadDownRight uint8 = 0x3
	dpadDown      uint8 = 0x4
	dpadDownLeft  uint8 = 0x5
	dpadLeft      uint8 = 0x6
	dpadUpLeft    uint8 = 0x7
	dpadNeutral   uint8 = 0x8
)

// Shoulder/stick-click/system bitmask (byte 6).
const (
	shoulderL1      uint8 = 0x01
	shoulderR1      uint8 = 0x02
	shoulderL2Click uint8 = 0x04
	shoulderR2Click uint8 = 0x08
	shoulderShare   uint8 = 0x10
	shoulderOptions uint8 = 0x20
	shoulderL3      uint8 = 0x40
	shoulderR3      uint8 = 0x80
)

// System bitmask (byte 7, low bits). The remaining 6 bits are the frame counter.
const (
	systemPS    uint8 = 0x01
	systemTouch uint8 = 0x02

	counterMask  uint8 = 0xFC
	counterShift uint  = 2
)

// Battery (byte 30).
const (
	batteryLevelMask    uint8 = 0x0F
	batteryChargingFlag uint8 = 0x10
)

// Axis names accepted by Report.SetAxis / Report.Axis.
const (
	AxisLX = "lx"
	AxisLY = "ly"
	AxisRX = "rx"
	AxisRY = "ry"
	AxisL2 = "l2"
	AxisR2 = "r2"
)

// Button names accepted by Report.SetButton / Report.Button.
const (
	ButtonTriangle = "triangle"
	ButtonCircle   = "circle"
	ButtonCross    = "cross"
	ButtonSquare   = "square"
	ButtonDPadUp    = "dpad_up"
	ButtonDPadDown  = "dpad_down"
	ButtonDPadLeft  = "dpad_left"
	ButtonDPadRight = "dpad_right"
	ButtonL1      = "l1"
	ButtonR1      = "r1"
	ButtonL2      = "l2"
	ButtonR2      = "r2"
	ButtonL3      = "l3"
	ButtonR3      = "r3"
	ButtonShare   = "share"
	ButtonOptions = "options"
	ButtonPS      = "ps"
	ButtonTouch   = "touch"
)
