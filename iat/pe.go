// Package iat walks a loaded PE module's import table and patches selected
// slots to point at our own trampolines (C4 in spec.md).
package iat

import (
	"errors"
	"unsafe"
)

// Sentinel errors surfaced at setup; see spec.md §7 ("log and panic during
// setup: setup cannot proceed").
var (
	ErrModuleNotFound       = errors.New("iat: module not found")
	ErrHeaderInvalid        = errors.New("iat: DOS/PE header invalid")
	ErrImportModuleNotFound = errors.New("iat: import module not found")
	ErrImportNotFound       = errors.New("iat: import not found")
	ErrProtectFailed        = errors.New("iat: VirtualProtect failed")
)

const (
	dosMagic      = 0x5A4D     // "MZ"
	peSignature   = 0x00004550 // "PE\0\0"
	dirImport     = 1          // DataDirectory index of the import table
	ordinalFlag64 = uint64(1) << 63
)

// memory abstracts reading bytes and machine words from a module image. In
// production it reads directly from the loaded foreign module via unsafe
// pointer arithmetic over the process's own address space; in tests it reads
// from a synthetic in-memory PE image built in a []byte, so the exact same
// walking code exercises both (the loaded DLL and a test buffer are both
// just addressable memory to the Go runtime).
type memory struct {
	base uintptr
}

func (m memory) u16(off uintptr) uint16 {
	return *(*uint16)(unsafe.Pointer(m.base + off))
}

func (m memory) u32(off uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(m.base + off))
}

func (m memory) u64(off uintptr) uint64 {
	return *(*uint64)(unsafe.Pointer(m.base + off))
}

func (m memory) cstring(off uintptr) string {
	var b []byte
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Pointer(m.base + off + i))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

// is64 reports whether the image is PE32+ (vs. PE32), needed because the
// Optional Header layout (and therefore every offset past it) differs.
func (m memory) is64() bool {
	return m.u16(m.ntHeaderOffset()+0x18) == 0x20b
}

func (m memory) ntHeaderOffset() uintptr {
	return uintptr(m.u32(0x3c))
}

// verifyHeaders validates the DOS and NT header magic values (spec.md §4.4
// step 2).
func (m memory) verifyHeaders() error {
	if m.u16(0) != dosMagic {
		return ErrHeaderInvalid
	}
	nt := m.ntHeaderOffset()
	if m.u32(nt) != peSignature {
		return ErrHeaderInvalid
	}
	return nil
}

// importDirectoryRVA returns the RVA and size of the import directory
// (DataDirectory index 1), accounting for the PE32/PE32+ Optional Header
// layout difference.
func (m memory) importDirectoryRVA() (rva, size uint32) {
	nt := m.ntHeaderOffset()
	optHeader := nt + 0x18
	var dataDirOff uintptr
	if m.is64() {
		dataDirOff = optHeader + 0x70
	} else {
		dataDirOff = optHeader + 0x60
	}
	entry := dataDirOff + uintptr(dirImport)*8
	return m.u32(entry), m.u32(entry + 4)
}

// importDescriptor mirrors IMAGE_IMPORT_DESCRIPTOR.
type importDescriptor struct {
	originalFirstThunk uint32
	timeDateStamp      uint32
	forwarderChain     uint32
	name               uint32
	firstThunk         uint32
}

func (m memory) descriptorAt(off uintptr) importDescriptor {
	return importDescriptor{
		originalFirstThunk: m.u32(off),
		timeDateStamp:      m.u32(off + 4),
		forwarderChain:     m.u32(off + 8),
		name:               m.u32(off + 12),
		firstThunk:         m.u32(off + 16),
	}
}

const importDescriptorSize = 20

// findImportSlot walks the import directory for a descriptor named
// importModule (case-sensitive), then its thunk array for an entry named
// importName (case-insensitive), returning the address of the First-Thunk
// slot to patch (spec.md §4.4 steps 2-3).
func (m memory) findImportSlot(importModule, importName string) (slotAddr uintptr, err error) {
	if err := m.verifyHeaders(); err != nil {
		return 0, err
	}

	rva, size := m.importDirectoryRVA()
	if rva == 0 || size == 0 {
		return 0, ErrImportModuleNotFound
	}

	dirOff := uintptr(rva)
	count := uintptr(size) / importDescriptorSize

	moduleFound := false
	for i := uintptr(0); i < count; i++ {
		desc := m.descriptorAt(dirOff + i*importDescriptorSize)
		if desc.name == 0 && desc.firstThunk == 0 && desc.originalFirstThunk == 0 {
			break
		}
		if m.cstring(uintptr(desc.name)) != importModule {
			continue
		}
		moduleFound = true

		origThunk := desc.originalFirstThunk
		if origThunk == 0 {
			origThunk = desc.firstThunk
		}

		thunkWidth := uintptr(4)
		if m.is64() {
			thunkWidth = 8
		}

		for j := uintptr(0); ; j++ {
			var thunkVal uint64
			if m.is64() {
				thunkVal = m.u64(uintptr(origThunk) + j*thunkWidth)
			} else {
				thunkVal = uint64(m.u32(uintptr(origThunk) + j*thunkWidth))
			}
			if thunkVal == 0 {
				break
			}
			if isOrdinal(thunkVal, m.is64()) {
				continue
			}
			// IMAGE_IMPORT_BY_NAME: uint16 Hint, then a NUL-terminated name.
			nameOff := uintptr(thunkVal) + 2
			if !equalFoldASCII(m.cstring(nameOff), importName) {
				continue
			}
			return m.base + uintptr(desc.firstThunk) + j*thunkWidth, nil
		}
	}

	if !moduleFound {
		return 0, ErrImportModuleNotFound
	}
	return 0, ErrImportNotFound
}

func isOrdinal(thunk uint64, is64 bool) bool {
	if is64 {
		return thunk&ordinalFlag64 != 0
	}
	return thunk&0x80000000 != 0
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// readPointerAt and writePointerAt operate on an already-resolved slot
// address (base + RVA, resolved by findImportSlot for installAt in hook.go), sized
// to the platform's pointer width.
func readPointerAt(addr uintptr, is64 bool) uint64 {
	if is64 {
		return *(*uint64)(unsafe.Pointer(addr))
	}
	return uint64(*(*uint32)(unsafe.Pointer(addr)))
}

func writePointerAt(addr uintptr, value uint64, is64 bool) {
	if is64 {
		*(*uint64)(unsafe.Pointer(addr)) = value
		return
	}
	*(*uint32)(unsafe.Pointer(addr)) = uint32(value)
}
