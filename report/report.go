// Package report implements the codec for the 64-byte PlayStation-4–class
// gamepad HID input report the mapper writes into.
package report

import "errors"

// ErrInvalidReport is returned by New when the supplied buffer is not
// exactly Size bytes long.
var ErrInvalidReport = errors.New("report: buffer is not 64 bytes")

// Report wraps a caller-owned byte buffer by copy. It is ephemeral: callers
// build one from a buffer they read, mutate it, and copy the bytes back with
// ToBytes before returning.
type Report struct {
	b [Size]byte
}

// New copies buf into a Report. It fails with ErrInvalidReport unless
// len(buf) == 64.
func New(buf []byte) (Report, error) {
	var r Report
	if len(buf) != Size {
		return r, ErrInvalidReport
	}
	copy(r.b[:], buf)
	return r, nil
}

// Valid reports the length invariant: true for every Report constructed via
// New, since New already rejects short/long buffers. It exists so callers
// that only have a raw slice can cheaply check before calling New.
func Valid(buf []byte) bool {
	return len(buf) == Size
}

// ToBytes copies the report out for the caller to write back into its own
// buffer.
func (r Report) ToBytes() []byte {
	out := make([]byte, Size)
	copy(out, r.b[:])
	return out
}

// Axis reads a named stick or trigger axis. Unknown names return 0.
func (r Report) Axis(name string) uint8 {
	switch name {
	case AxisLX:
		return r.b[offLX]
	case AxisLY:
		return r.b[offLY]
	case AxisRX:
		return r.b[offRX]
	case AxisRY:
		return r.b[offRY]
	case AxisL2:
		return r.b[offL2]
	case AxisR2:
		return r.b[offR2]
	default:
		return 0
	}
}

// SetAxis writes a named stick or trigger axis. Unknown names are silent
// no-ops: mappings read from user config must not crash the host.
func (r *Report) SetAxis(name string, value uint8) {
	switch name {
	case AxisLX:
		r.b[offLX] = value
	case AxisLY:
		r.b[offLY] = value
	case AxisRX:
		r.b[offRX] = value
	case AxisRY:
		r.b[offRY] = value
	case AxisL2:
		r.b[offL2] = value
	case AxisR2:
		r.b[offR2] = value
	}
}

// Button reads a named button's pressed state. Unknown names return false.
func (r Report) Button(name string) bool {
	switch name {
	case ButtonTriangle:
		return r.b[offFaceButtons]&faceTriangle != 0
	case ButtonCircle:
		return r.b[offFaceButtons]&faceCircle != 0
	case ButtonCross:
		return r.b[offFaceButtons]&faceCross != 0
	case ButtonSquare:
		return r.b[offFaceButtons]&faceSquare != 0
	case ButtonDPadUp, ButtonDPadDown, ButtonDPadLeft, ButtonDPadRight:
		up, down, left, right := decodeHat(r.b[offFaceButtons] & dpadMask)
		switch name {
		case ButtonDPadUp:
			return up
		case ButtonDPadDown:
			return down
		case ButtonDPadLeft:
			return left
		default:
			return right
		}
	case ButtonL1:
		return r.b[offShoulders]&shoulderL1 != 0
	case ButtonR1:
		return r.b[offShoulders]&shoulderR1 != 0
	case ButtonL2:
		return r.b[offShoulders]&shoulderL2Click != 0
	case ButtonR2:
		return r.b[offShoulders]&shoulderR2Click != 0
	case ButtonShare:
		return r.b[offShoulders]&shoulderShare != 0
	case ButtonOptions:
		return r.b[offShoulders]&shoulderOptions != 0
	case ButtonL3:
		return r.b[offShoulders]&shoulderL3 != 0
	case ButtonR3:
		return r.b[offShoulders]&shoulderR3 != 0
	case ButtonPS:
		return r.b[offSystem]&systemPS != 0
	case ButtonTouch:
		return r.b[offSystem]&systemTouch != 0
	default:
		return false
	}
}

// SetButton writes a named button's pressed state. true sets the bit, false
// clears it — boolean OR / AND-NOT, never arithmetic add/subtract, so it is
// idempotent regardless of how many times it is called with the same value.
// Unknown names are silent no-ops.
func (r *Report) SetButton(name string, down bool) {
	switch name {
	case ButtonTriangle:
		setBit(&r.b[offFaceButtons], faceTriangle, down)
	case ButtonCircle:
		setBit(&r.b[offFaceButtons], faceCircle, down)
	case ButtonCross:
		setBit(&r.b[offFaceButtons], faceCross, down)
	case ButtonSquare:
		setBit(&r.b[offFaceButtons], faceSquare, down)
	case ButtonDPadUp, ButtonDPadDown, ButtonDPadLeft, ButtonDPadRight:
		up, dn, left, right := decodeHat(r.b[offFaceButtons] & dpadMask)
		switch name {
		case ButtonDPadUp:
			up = down
		case ButtonDPadDown:
			dn = down
		case ButtonDPadLeft:
			left = down
		default:
			right = down
		}
		r.b[offFaceButtons] = (r.b[offFaceButtons] &^ dpadMask) | encodeHat(up, dn, left, right)
	case ButtonL1:
		setBit(&r.b[offShoulders], shoulderL1, down)
	case ButtonR1:
		setBit(&r.b[offShoulders], shoulderR1, down)
	case ButtonL2:
		setBit(&r.b[offShoulders], shoulderL2Click, down)
	case ButtonR2:
		setBit(&r.b[offShoulders], shoulderR2Click, down)
	case ButtonShare:
		setBit(&r.b[offShoulders], shoulderShare, down)
	case ButtonOptions:
		setBit(&r.b[offShoulders], shoulderOptions, down)
	case ButtonL3:
		setBit(&r.b[offShoulders], shoulderL3, down)
	case ButtonR3:
		setBit(&r.b[offShoulders], shoulderR3, down)
	case ButtonPS:
		setBit(&r.b[offSystem], systemPS, down)
	case ButtonTouch:
		setBit(&r.b[offSystem], systemTouch, down)
	}
}

func setBit(b *byte, mask uint8, set bool) {
	if set {
		*b |= mask
	} else {
		*b &^= mask
	}
}

// decodeHat turns the low nibble's hat encoding into the four logical
// directions.
func decodeHat(hat uint8) (up, down, left, right bool) {
	switch hat {
	case dpadUp:
		return true, false, false, false
	case dpadUpRight:
		return true, false, false, true
	case dpadRight:
		return false, false, false, true
	case dpadDownRight:
		return false, true, false, true
	case dpadDown:
		return false, true, false, false
	case dpadDownLeft:
		return false, true, true, false
	case dpadLeft:
		return false, false, true, false
	case dpadUpLeft:
		return true, false, true, false
	default:
		return false, false, false, false
	}
}

// encodeHat is the inverse of decodeHat. Diagonal combinations where both an
// opposing pair is held (e.g. up+down) collapse to the single-axis value.
func encodeHat(up, down, left, right bool) uint8 {
	switch {
	case up && right:
		return dpadUpRight
	case up && left:
		return dpadUpLeft
	case down && right:
		return dpadDownRight
	case down && left:
		return dpadDownLeft
	case up:
		return dpadUp
	case down:
		return dpadDown
	case left:
		return dpadLeft
	case right:
		return dpadRight
	default:
		return dpadNeutral
	}
}

// FrameCount reads the monotonically increasing frame counter packed into
// the top 6 bits of byte 7. Read-only: the mapper never writes it.
func (r Report) FrameCount() uint8 {
	return (r.b[offSystem] & counterMask) >> counterShift
}

// Battery reads the battery level as a percentage: the low nibble of byte 30
// times ten, so values above 100 occur (0xB reads as 110). Read-only.
func (r Report) Battery() uint8 {
	return (r.b[offBattery] & batteryLevelMask) * 10
}

// Charging reads the charging flag. Read-only.
func (r Report) Charging() bool {
	return r.b[offBattery]&batteryChargingFlag != 0
}
