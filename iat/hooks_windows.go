//go:build windows

package iat

import (
	"log"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// originals holds the function pointers Install displaced, so our
// callbacks can chain to them. Set once by Setup and never re-patched
// (spec.md §3).
var originals struct {
	createFileW uintptr
	readFile    uintptr
	writeFile   uintptr
}

var activeController *Controller

// Setup installs the four import hooks into targetModule's IAT (spec.md
// §4.4, §6: called once from the bootstrap worker after attach). ctrl
// receives the CreateFileW/ReadFile/WriteFile decisions; its Hijack,
// Accumulate and MapController fields must already be wired by the caller.
func Setup(targetModule string, ctrl *Controller) error {
	activeController = ctrl

	if _, err := Install(targetModule, "kernel32.dll", "IsDebuggerPresent", isDebuggerPresentCallback); err != nil {
		return err
	}

	origCreateFileW, err := Install(targetModule, "kernel32.dll", "CreateFileW", createFileWCallback)
	if err != nil {
		return err
	}
	originals.createFileW = origCreateFileW

	origReadFile, err := Install(targetModule, "kernel32.dll", "ReadFile", readFileCallback)
	if err != nil {
		return err
	}
	originals.readFile = origReadFile

	origWriteFile, err := Install(targetModule, "kernel32.dll", "WriteFile", writeFileCallback)
	if err != nil {
		return err
	}
	originals.writeFile = origWriteFile

	return nil
}

// safeCall runs fn and recovers any panic escaping it, logging and
// swallowing it instead of letting it unwind into host code. Every
// trampoline below calls into capture/mapper logic only through this, so a
// fault there degrades to pass-through rather than crashing the host
// process (spec.md §7: "no exception crosses a trampoline boundary";
// SPEC_FULL.md §3: "trampolines recover from any panic ... and fall back
// to pass-through").
func safeCall(where string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("iat: recovered panic in %s: %v", where, r)
		}
	}()
	fn()
}

var isDebuggerPresentCallback = windows.NewCallback(func() (result uintptr) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("iat: recovered panic in IsDebuggerPresent hook: %v", r)
			result = 0
		}
	}()
	return 0
})

var createFileWCallback = windows.NewCallback(func(
	lpFileName, dwDesiredAccess, dwShareMode, lpSecurityAttributes,
	dwCreationDisposition, dwFlagsAndAttributes, hTemplateFile uintptr,
) uintptr {
	r1, _, _ := syscall.SyscallN(originals.createFileW,
		lpFileName, dwDesiredAccess, dwShareMode, lpSecurityAttributes,
		dwCreationDisposition, dwFlagsAndAttributes, hTemplateFile)

	// result defaults to the real call's own outcome, so a recovered panic
	// below still leaves the host with an unmodified CreateFileW result.
	result := r1
	safeCall("CreateFileW hook", func() {
		path := windows.UTF16PtrToString((*uint16)(unsafe.Pointer(lpFileName)))
		valid := int64(r1) != -1 // INVALID_HANDLE_VALUE
		result = activeController.HandleCreateFile(path, r1, valid)
	})
	return result
})

var readFileCallback = windows.NewCallback(func(
	hFile, lpBuffer, nNumberOfBytesToRead, lpNumberOfBytesRead, lpOverlapped uintptr,
) uintptr {
	var result uintptr
	var bytesRead uint32

	// only call original func if we are not spoofing a controller presence
	if hFile == SentinelHandle {
		bytesRead = uint32(nNumberOfBytesToRead)
		if lpNumberOfBytesRead != 0 {
			*(*uint32)(unsafe.Pointer(lpNumberOfBytesRead)) = bytesRead
		}
		result = 1
	} else {
		r1, _, _ := syscall.SyscallN(originals.readFile,
			hFile, lpBuffer, nNumberOfBytesToRead, lpNumberOfBytesRead, lpOverlapped)
		result = r1
		if lpNumberOfBytesRead != 0 {
			bytesRead = *(*uint32)(unsafe.Pointer(lpNumberOfBytesRead))
		}
	}

	// Size the buffer view from the bytes actually transferred, not the
	// requested count: a short real read must not expose uninitialized or
	// stale bytes past the transfer to report.Valid/report.New.
	if lpBuffer != 0 && bytesRead > 0 {
		safeCall("ReadFile hook", func() {
			buf := unsafe.Slice((*byte)(unsafe.Pointer(lpBuffer)), int(bytesRead))
			activeController.HandleReadFile(buf)
		})
	}

	return result
})

var writeFileCallback = windows.NewCallback(func(
	hFile, lpBuffer, nNumberOfBytesToWrite, lpNumberOfBytesWritten, lpOverlapped uintptr,
) uintptr {
	if lpBuffer != 0 && nNumberOfBytesToWrite > 0 {
		safeCall("WriteFile hook", func() {
			buf := unsafe.Slice((*byte)(unsafe.Pointer(lpBuffer)), int(nNumberOfBytesToWrite))
			activeController.HandleWriteFile(hFile, buf)
		})
	}

	r1, _, _ := syscall.SyscallN(originals.writeFile,
		hFile, lpBuffer, nNumberOfBytesToWrite, lpNumberOfBytesWritten, lpOverlapped)
	return r1
})
