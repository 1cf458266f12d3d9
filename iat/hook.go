package iat

// protector toggles memory protection around a write to an IAT slot and
// returns a function to restore the previous protection. It is a seam:
// production wires it to VirtualProtect (hook_windows.go); tests use a
// no-op since synthetic buffers are already writable Go memory.
type protector func(addr, size uintptr) (restore func(), ok bool)

// installAt walks the module image starting at base and patches the slot
// resolved for (importModule, importName) to replacement, returning the
// function pointer it displaced (spec.md §4.4 steps 3-4). It is the portable
// core exercised directly by tests against a synthetic PE image, and wrapped
// by Install for a real loaded module.
func installAt(base uintptr, importModule, importName string, replacement uintptr, protect protector) (original uintptr, err error) {
	m := memory{base: base}
	slot, err := m.findImportSlot(importModule, importName)
	if err != nil {
		return 0, err
	}

	ptrSize := uintptr(4)
	if m.is64() {
		ptrSize = 8
	}

	restore, ok := protect(slot, ptrSize)
	if !ok {
		return 0, ErrProtectFailed
	}
	defer restore()

	original = uintptr(readPointerAt(slot, m.is64()))
	writePointerAt(slot, uint64(replacement), m.is64())
	return original, nil
}

func noopProtector(uintptr, uintptr) (func(), bool) {
	return func() {}, true
}
