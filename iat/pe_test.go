package iat

import (
	"encoding/binary"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage lays out a minimal synthetic PE image in a plain Go byte slice.
// Since a loaded module's RVAs coincide with offsets from its base address,
// the same offsets used here to place structures double as the RVAs the
// descriptors point at — no file-offset-to-RVA translation is needed,
// matching how pe.go reads a real loaded module.
type testImage struct {
	buf []byte
}

func newTestImage() *testImage {
	return &testImage{buf: make([]byte, 0x800)}
}

func (t *testImage) ensure(end int) {
	if end > len(t.buf) {
		grown := make([]byte, end)
		copy(grown, t.buf)
		t.buf = grown
	}
}

func (t *testImage) putU16(off int, v uint16) {
	t.ensure(off + 2)
	binary.LittleEndian.PutUint16(t.buf[off:], v)
}

func (t *testImage) putU32(off int, v uint32) {
	t.ensure(off + 4)
	binary.LittleEndian.PutUint32(t.buf[off:], v)
}

func (t *testImage) putU64(off int, v uint64) {
	t.ensure(off + 8)
	binary.LittleEndian.PutUint64(t.buf[off:], v)
}

func (t *testImage) putString(off int, s string) {
	t.ensure(off + len(s) + 1)
	copy(t.buf[off:], s)
	t.buf[off+len(s)] = 0
}

const (
	testNtOff       = 0x80
	testModuleRVA   = 0x300
	testIntRVA      = 0x400
	testIatRVA      = 0x500
	testImportByRVA = 0x600
	testImportDir   = 0x200
	testOrigFnPtr   = uint64(0xAAAAAAAA)
)

// build lays out one import descriptor for moduleName with a single import
// named importName, terminated by a zeroed descriptor (already zero from
// make()). is64 selects PE32+ vs PE32 Optional Header/thunk width.
func (t *testImage) build(is64 bool, moduleName, importName string) {
	t.putU16(0, dosMagic)
	t.putU32(0x3c, testNtOff)
	t.putU32(testNtOff, peSignature)

	optHeaderOff := testNtOff + 0x18
	magic := uint16(0x10b)
	dataDirOff := optHeaderOff + 0x60
	if is64 {
		magic = 0x20b
		dataDirOff = optHeaderOff + 0x70
	}
	t.putU16(optHeaderOff, magic)

	importEntry := dataDirOff + dirImport*8
	t.putU32(importEntry, testImportDir)
	t.putU32(importEntry+4, importDescriptorSize*2)

	t.putString(testModuleRVA, moduleName)
	t.putU32(testImportDir+0, testIntRVA)
	t.putU32(testImportDir+12, testModuleRVA)
	t.putU32(testImportDir+16, testIatRVA)

	t.putU16(testImportByRVA, 0)
	t.putString(testImportByRVA+2, importName)

	if is64 {
		t.putU64(testIntRVA, uint64(testImportByRVA))
		t.putU64(testIatRVA, testOrigFnPtr)
	} else {
		t.putU32(testIntRVA, testImportByRVA)
		t.putU32(testIatRVA, uint32(testOrigFnPtr))
	}
}

func (t *testImage) memory() memory {
	return memory{base: uintptr(unsafe.Pointer(&t.buf[0]))}
}

func TestFindImportSlotLocatesIatEntry64(t *testing.T) {
	img := newTestImage()
	img.build(true, "KERNEL32.dll", "ReadFile")
	m := img.memory()

	slot, err := m.findImportSlot("KERNEL32.dll", "readfile") // case-insensitive name match
	require.NoError(t, err)
	assert.Equal(t, m.base+testIatRVA, slot)

	runtime.KeepAlive(img.buf)
}

func TestFindImportSlotLocatesIatEntry32(t *testing.T) {
	img := newTestImage()
	img.build(false, "KERNEL32.dll", "ReadFile")
	m := img.memory()

	slot, err := m.findImportSlot("KERNEL32.dll", "ReadFile")
	require.NoError(t, err)
	assert.Equal(t, m.base+testIatRVA, slot)

	runtime.KeepAlive(img.buf)
}

func TestFindImportSlotModuleNameIsCaseSensitive(t *testing.T) {
	img := newTestImage()
	img.build(true, "KERNEL32.dll", "ReadFile")
	m := img.memory()

	_, err := m.findImportSlot("kernel32.dll", "ReadFile")
	assert.ErrorIs(t, err, ErrImportModuleNotFound)

	runtime.KeepAlive(img.buf)
}

func TestFindImportSlotMissingModule(t *testing.T) {
	img := newTestImage()
	img.build(true, "KERNEL32.dll", "ReadFile")
	m := img.memory()

	_, err := m.findImportSlot("USER32.dll", "GetWindowRect")
	assert.ErrorIs(t, err, ErrImportModuleNotFound)

	runtime.KeepAlive(img.buf)
}

func TestFindImportSlotMissingImport(t *testing.T) {
	img := newTestImage()
	img.build(true, "KERNEL32.dll", "ReadFile")
	m := img.memory()

	_, err := m.findImportSlot("KERNEL32.dll", "WriteFile")
	assert.ErrorIs(t, err, ErrImportNotFound)

	runtime.KeepAlive(img.buf)
}

func TestFindImportSlotRejectsBadDosMagic(t *testing.T) {
	img := newTestImage()
	img.build(true, "KERNEL32.dll", "ReadFile")
	img.putU16(0, 0x1234)
	m := img.memory()

	_, err := m.findImportSlot("KERNEL32.dll", "ReadFile")
	assert.ErrorIs(t, err, ErrHeaderInvalid)

	runtime.KeepAlive(img.buf)
}

func TestFindImportSlotRejectsBadPeSignature(t *testing.T) {
	img := newTestImage()
	img.build(true, "KERNEL32.dll", "ReadFile")
	img.putU32(testNtOff, 0xDEADBEEF)
	m := img.memory()

	_, err := m.findImportSlot("KERNEL32.dll", "ReadFile")
	assert.ErrorIs(t, err, ErrHeaderInvalid)

	runtime.KeepAlive(img.buf)
}
