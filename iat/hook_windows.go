//go:build windows

package iat

import (
	"github.com/Alia5/mouseplay/winapi"
)

// Install resolves targetModule's base address and patches the IAT slot for
// importModule!importName to replacement, returning the function pointer it
// displaced so the caller can chain to it (spec.md §4.4).
func Install(targetModule, importModule, importName string, replacement uintptr) (original uintptr, err error) {
	base, err := winapi.GetModuleHandle(targetModule)
	if err != nil || base == 0 {
		return 0, ErrModuleNotFound
	}
	return installAt(base, importModule, importName, replacement, virtualProtectSeam)
}

func virtualProtectSeam(addr, size uintptr) (restore func(), ok bool) {
	old, err := winapi.VirtualProtect(addr, size, winapi.VirtualProtectRWX)
	if err != nil {
		return nil, false
	}
	return func() {
		winapi.VirtualProtect(addr, size, old)
	}, true
}
