//go:build windows

// Command mouseplay is the injected library itself: the DLL entry point and
// the one-time bootstrap worker described in spec.md §5/§6. It is built
// with -buildmode=c-shared, so the host loader maps it the same way it
// would map any other dynamic library.
//
// There is no hand-authored DllMain here. The original implementation
// (original_source/mouseplay/src/lib.rs) exports one that reacts to
// DLL_PROCESS_ATTACH by spawning a worker thread. Go has no equivalent
// exported entry point to author by hand, but the runtime already runs
// every package's init functions as soon as the OS loader maps a c-shared
// image — the same "once, at attach" semantics, without one.
package main

// targetModule is the host DLL whose import table carries the four hooked
// kernel32.dll functions (spec.md §4.4). Installation-specific, like
// iat.ControllerDevicePath.
const targetModule = "RpCtrlWrapper.dll"

func main() {}

func init() {
	go bootstrap()
}
