package mapper

import (
	"math"

	"github.com/Alia5/mouseplay/report"
)

// frequencyScale is the ratio of the controller's 125Hz polling rate over a
// reference 1000Hz mouse rate, raised to match the axis response curve
// (spec.md §4.5).
const frequencyScale = 2.8125

const (
	maxAxis = 128
	minAxis = -128
)

// MouseMapping turns the accumulated mouse delta into a saturating,
// dead-zone-corrected, two-axis stick deflection with cross-frame residue
// carry-over — a reimplementation of the GIMX mouse-to-joystick translation
// (spec.md §4.5).
type MouseMapping struct {
	OutputX string
	OutputY string

	MultiplierX float64
	MultiplierY float64
	DeadZoneX   int
	DeadZoneY   int

	Sensitivity float64
	Exponent    float64
	Shape       string // "circle" or "square"

	remainder [2]int
	residue   [2]float64
	histX     []int
	histY     []int
}

func (m *MouseMapping) apply(in InputSource, rep *report.Report) {
	axisX, axisY, wrote := m.mapController(float64(in.MouseX()), float64(in.MouseY()))
	if !wrote {
		return
	}
	rep.SetAxis(m.OutputX, axisX)
	rep.SetAxis(m.OutputY, axisY)
}

// mapController runs one frame of the GIMX-style translation. dx, dy are the
// frame's raw mouse delta; returns wrote == false when the scaled delta is
// zero on both axes, after clearing the residue (the integer remainder is
// kept as it is).
func (m *MouseMapping) mapController(dx, dy float64) (axisX, axisY uint8, wrote bool) {
	mouse := [2]float64{dx * m.Sensitivity, dy * m.Sensitivity}

	if mouse[0] != 0 || mouse[1] != 0 {
		mouse[0] += float64(m.remainder[0])
		mouse[1] += float64(m.remainder[1])
	} else {
		m.residue[0] = 0
		m.residue[1] = 0
		return 0, 0, false
	}

	const axisScale = 1.0
	multiplier := [2]float64{m.MultiplierX * axisScale, m.MultiplierY * axisScale}

	deadZone := [2]float64{
		math.Copysign(float64(m.DeadZoneX)*axisScale, m.MultiplierX*mouse[0]),
		math.Copysign(float64(m.DeadZoneY)*axisScale, m.MultiplierY*mouse[1]),
	}

	hyp := math.Hypot(mouse[0], mouse[1])
	cos := math.Abs(mouse[0]) / hyp
	sin := math.Abs(mouse[1]) / hyp

	if mouse[0] != 0 && mouse[1] != 0 && m.Shape == "circle" {
		deadZone[0] *= cos
		deadZone[1] *= sin
	}

	z := math.Pow(hyp*frequencyScale, m.Exponent)

	// Both axes use multiplier[0] here, not multiplier[1] for the Y output.
	// Preserved from the source; almost certainly a bug (spec.md §9).
	zx := multiplier[0] * math.Copysign(z*cos, mouse[0])
	zy := multiplier[0] * math.Copysign(z*sin, mouse[1])

	axis := [2]int{}
	rawOutput := [2]float64{
		updateAxis(&axis[0], deadZone[0], zx),
		updateAxis(&axis[1], deadZone[1], zy),
	}

	m.remainder[0] = updateControllerAxis(&axis[0], &m.histX)
	m.remainder[1] = updateControllerAxis(&axis[1], &m.histY)

	m.updateResidue(mouse, axis, axisScale, multiplier, rawOutput)

	return uint8(axis[0]), uint8(axis[1]), true
}

// updateAxis applies the dead zone (only once the magnitude has cleared
// unity) and truncates toward zero into the signed axis value. It does not
// clamp: when the truncated axis falls outside [-128, 128], raw is replaced
// by that truncated value for the residue pass, and saturation is left to
// updateControllerAxis (spec.md §4.5 step 7).
func updateAxis(axis *int, deadZone, z float64) float64 {
	raw := z
	if math.Abs(z) >= 1 {
		raw = z + deadZone
	}

	*axis = int(raw)

	if *axis < minAxis || *axis > maxAxis {
		raw = float64(*axis)
	}
	return raw
}

// updateControllerAxis rebases the signed axis into the report's [0, 255]
// domain, saturates, records the clip as an integer remainder to carry into
// the next frame, and appends to the bounded diagnostic history.
func updateControllerAxis(axis *int, hist *[]int) int {
	remainder := 0

	*axis -= minAxis
	if *axis > 255 {
		remainder = *axis - 255
		*axis = 255
	} else if *axis < 0 {
		remainder = *axis
		*axis = 0
	}

	*hist = append(*hist, *axis)
	if len(*hist) > 256 {
		*hist = (*hist)[1:]
	}

	return remainder
}

// updateResidue inverts the curve to estimate how much of the frame's input
// motion was actually expressed through the (saturated, truncated) output
// axes, and carries the rest forward as real-valued residue. The two arms
// below (zx == 0, else zy == 0) are mutually exclusive, leaving the
// both-nonzero case to fall through without updating input truncation —
// preserved from the source; residue carry only activates at exact axis
// clips (spec.md §9).
func (m *MouseMapping) updateResidue(mouse [2]float64, axis [2]int, axisScale float64, multiplier, rawOutput [2]float64) {
	inputTrunk := [2]float64{}

	if axis[0] != 0 || axis[1] != 0 {
		zx := math.Abs(float64(axis[0]))
		zy := math.Abs(float64(axis[1]))

		deadZone := [2]float64{
			float64(m.DeadZoneX) * axisScale,
			float64(m.DeadZoneY) * axisScale,
		}

		if zx == 0 {
			zy -= deadZone[1]
			zy = math.Max(zy, 0)
			inputTrunk[1] = math.Copysign(
				math.Pow(zy/(math.Abs(multiplier[1])*math.Pow(frequencyScale, m.Exponent)), 1/m.Exponent),
				multiplier[1]*rawOutput[1],
			)
		} else if zy == 0 {
			angle := math.Atan(zy/zx) * math.Atan(math.Abs(mouse[1])/math.Abs(mouse[0])) /
				math.Atan(math.Abs(rawOutput[1])/math.Abs(rawOutput[0]))
			cosA := math.Cos(angle)
			sinA := math.Sin(angle)

			if m.Shape == "circle" {
				deadZone[0] *= cosA
				deadZone[1] *= sinA
			}

			normX := math.Pow((zx-deadZone[0])/(math.Abs(multiplier[0])*math.Pow(frequencyScale, m.Exponent)*cosA), 1/m.Exponent)
			normY := math.Pow((zy-deadZone[1])/(math.Abs(multiplier[1])*math.Pow(frequencyScale, m.Exponent)*sinA), 1/m.Exponent)
			inputTrunk[0] = math.Copysign(cosA*normX, multiplier[0]*rawOutput[0])
			inputTrunk[1] = math.Copysign(sinA*normY, multiplier[1]*rawOutput[1])
		}
	}

	if inputTrunk[0] != 0 {
		m.residue[0] = mouse[0] - inputTrunk[0]
	} else {
		m.residue[0] = 0
	}
	if inputTrunk[1] != 0 {
		m.residue[1] = mouse[1] - inputTrunk[1]
	} else {
		m.residue[1] = 0
	}
}
