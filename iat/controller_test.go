package iat

import (
	"testing"

	"github.com/Alia5/mouseplay/report"
	"github.com/stretchr/testify/assert"
)

func validReportBytes() []byte {
	buf := make([]byte, report.Size)
	buf[0] = 0x01
	return buf
}

func TestHandleCreateFileIgnoresOtherPaths(t *testing.T) {
	c := NewController()
	got := c.HandleCreateFile(`C:\some\other\file`, 0x99, true)
	assert.EqualValues(t, 0x99, got)
}

func TestHandleCreateFilePassesThroughValidOriginal(t *testing.T) {
	c := NewController()
	got := c.HandleCreateFile(ControllerDevicePath, 0x77, true)
	assert.EqualValues(t, 0x77, got)
	assert.True(t, c.isControllerHandle(0x77))
}

func TestHandleCreateFileReturnsSentinelWhenOriginalFailed(t *testing.T) {
	c := NewController()
	got := c.HandleCreateFile(ControllerDevicePath, 0, false)
	assert.Equal(t, SentinelHandle, got)
	assert.True(t, c.isControllerHandle(SentinelHandle))
}

func TestHandleReadFileCallsHijack(t *testing.T) {
	called := 0
	c := NewController()
	c.Hijack = func() error { called++; return nil }

	c.HandleReadFile(validReportBytes())
	assert.Equal(t, 1, called)
}

func TestHandleReadFileSkipsInvalidReportWithoutPanicking(t *testing.T) {
	c := NewController()
	mapCalled := false
	c.MapController = func(*report.Report) { mapCalled = true }

	c.HandleReadFile([]byte{1, 2, 3})
	assert.False(t, mapCalled)
}

func TestHandleReadFileAccumulatesAndMaps(t *testing.T) {
	c := NewController()
	var accumulated, mapped bool
	c.Accumulate = func() { accumulated = true }
	c.MapController = func(rep *report.Report) {
		mapped = true
		rep.SetButton(report.ButtonCross, true)
	}

	buf := validReportBytes()
	c.HandleReadFile(buf)

	assert.True(t, accumulated)
	assert.True(t, mapped)

	rep, err := report.New(buf)
	assert.NoError(t, err)
	assert.True(t, rep.Button(report.ButtonCross))
}

func TestHandleWriteFileIgnoresNonControllerHandle(t *testing.T) {
	c := NewController()
	c.HandleCreateFile(ControllerDevicePath, 0x77, true)

	buf := make([]byte, controllerReportSize)
	c.HandleWriteFile(0x55, buf)
	assert.Zero(t, buf[rumbleOffset])
}

func TestHandleWriteFileIgnoresWrongLength(t *testing.T) {
	c := NewController()
	c.HandleCreateFile(ControllerDevicePath, 0x77, true)

	buf := make([]byte, 16)
	c.HandleWriteFile(0x77, buf)
	assert.Zero(t, buf[rumbleOffset])
}

func TestHandleWriteFilePatchesRumbleByte(t *testing.T) {
	c := NewController()
	c.HandleCreateFile(ControllerDevicePath, 0x77, true)

	buf := make([]byte, controllerReportSize)
	c.HandleWriteFile(0x77, buf)
	assert.EqualValues(t, rumbleValue, buf[rumbleOffset])
}
