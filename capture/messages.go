package capture

// Window message identifiers relevant to Parse (spec.md §4.2). Values match
// the Win32 WM_* constants.
const (
	wmInput        = 0x00FF
	wmSetCursor    = 0x0020
	wmParentNotify = 0x0210

	wmLButtonDown   = 0x0201
	wmLButtonUp     = 0x0202
	wmLButtonDblClk = 0x0203
	wmRButtonDown   = 0x0204
	wmRButtonUp     = 0x0205
	wmRButtonDblClk = 0x0206
	wmMButtonDown   = 0x0207
	wmMButtonUp     = 0x0208
	wmMButtonDblClk = 0x0209
	wmXButtonDown   = 0x020B
	wmXButtonUp     = 0x020C
	wmXButtonDblClk = 0x020D

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	wmParentNotifyChildLButtonDown = 513

	httClient = 1 // LOWORD hit-test result that means "inside the client area"
)

var swallowedWhileLocked = map[uint32]bool{
	wmLButtonDown: true, wmLButtonUp: true, wmLButtonDblClk: true,
	wmRButtonDown: true, wmRButtonUp: true, wmRButtonDblClk: true,
	wmMButtonDown: true, wmMButtonUp: true, wmMButtonDblClk: true,
	wmXButtonDown: true, wmXButtonUp: true, wmXButtonDblClk: true,
	wmKeyDown: true, wmKeyUp: true, wmSysKeyDown: true, wmSysKeyUp: true,
}
