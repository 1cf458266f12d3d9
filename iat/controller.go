package iat

import (
	"sync"

	"github.com/Alia5/mouseplay/report"
)

// ControllerDevicePath is the literal HID device path the CreateFileW hook
// watches for (spec.md §6). Installation-specific; the core treats it as a
// constant.
const ControllerDevicePath = `\\?\hid#rev_01#6&39fdb758&0&0000#{4d1e55b2-f16f-11cf-88cb-001111000030}`

// SentinelHandle stands in for a real HID handle when the host's CreateFileW
// on ControllerDevicePath failed — the host proceeds believing a gamepad is
// present (spec.md §4.4, §5).
const SentinelHandle uintptr = 0x4D2

const (
	controllerReportSize = 32 // the WriteFile length the rumble hook recognizes
	rumbleOffset         = 4
	rumbleValue     byte = 100
)

// Controller holds the process-wide state the four installed hooks share:
// which handle (real or sentinel) stands in for the controller device, and
// the callbacks into the subclasser/input-state/mapper that the ReadFile
// hook drives. Per spec.md §9 this is "IO-hook -> subclasser" with no
// back-edge: Controller only calls into these three function fields, never
// the reverse.
type Controller struct {
	mu                  sync.Mutex
	controllerHandle    uintptr
	hasControllerHandle bool

	Hijack        func() error
	Accumulate    func()
	MapController func(rep *report.Report)
}

// NewController returns a Controller with no hooks wired; callers set
// Hijack, Accumulate and MapController before installing the OS-level hooks.
func NewController() *Controller {
	return &Controller{}
}

// HandleCreateFile decides what CreateFileW should appear to have returned.
// Paths other than ControllerDevicePath are untouched. For the controller
// path, a failed original open is papered over with SentinelHandle so the
// host believes a gamepad is present (spec.md §4.4).
func (c *Controller) HandleCreateFile(path string, originalHandle uintptr, originalValid bool) uintptr {
	if path != ControllerDevicePath {
		return originalHandle
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if originalValid {
		c.controllerHandle = originalHandle
		c.hasControllerHandle = true
		return originalHandle
	}

	c.controllerHandle = SentinelHandle
	c.hasControllerHandle = true
	return SentinelHandle
}

func (c *Controller) isControllerHandle(h uintptr) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasControllerHandle && h == c.controllerHandle
}

// HandleReadFile implements the ReadFile trampoline's mapping step (spec.md
// §4.4 steps 3-4): re-hijack the window idempotently in case it came up
// after startup, then — if buf decodes as a valid 64-byte report — freeze
// the current input frame and run it through the mapper, writing the result
// back into buf in place. Any failure along the way degrades to
// pass-through: buf is left untouched, matching every trampoline's fail-open
// contract (spec.md §7).
func (c *Controller) HandleReadFile(buf []byte) {
	if c.Hijack != nil {
		c.Hijack()
	}

	if !report.Valid(buf) {
		return
	}
	rep, err := report.New(buf)
	if err != nil {
		return
	}

	if c.Accumulate != nil {
		c.Accumulate()
	}
	if c.MapController != nil {
		c.MapController(&rep)
	}

	copy(buf, rep.ToBytes())
}

// HandleWriteFile implements the rumble hook: a write of exactly
// controllerReportSize bytes to the controller handle has its rumble byte
// overwritten before the caller forwards it on (spec.md §4.4). Best-effort:
// any other handle or length is left untouched.
func (c *Controller) HandleWriteFile(handle uintptr, buf []byte) {
	if !c.isControllerHandle(handle) {
		return
	}
	if len(buf) != controllerReportSize {
		return
	}
	buf[rumbleOffset] = rumbleValue
}
