//go:build windows

package main

import (
	"log/slog"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Alia5/mouseplay/capture"
	"github.com/Alia5/mouseplay/iat"
	"github.com/Alia5/mouseplay/internal/configpaths"
	"github.com/Alia5/mouseplay/mapper"
	"github.com/Alia5/mouseplay/report"
	"github.com/Alia5/mouseplay/winapi"
	"github.com/Alia5/mouseplay/wndhook"
)

// mapperMu guards activeMapper, which iat's ReadFile hook reads on every
// frame and loadMappings replaces once a mapping file decodes successfully.
// Mapping reloads are not part of this spec; activeMapper is written at
// most once, by bootstrap's own goroutine.
var (
	mapperMu     sync.RWMutex
	activeMapper *mapper.Mapper
)

// bootstrap is the worker spawned once at library attach (spec.md §5/§6):
// console, then hooks, then mapping file, then it exits. A failure
// registering raw input or installing the import hooks is fatal to the
// host process (spec.md §7: "fatal at library-load" / "log and panic
// during setup — setup cannot proceed"); a missing or invalid mapping file
// is not — the host keeps its unmodified behavior until one loads.
func bootstrap() {
	logger, _ := initConsole()

	inputState, err := capture.New()
	if err != nil {
		logger.Error("raw input registration failed", "error", err)
		panic(err)
	}

	subclasser := wndhook.New(inputState)

	ctrl := iat.NewController()
	ctrl.Hijack = subclasser.Hijack
	ctrl.Accumulate = inputState.Accumulate
	ctrl.MapController = func(rep *report.Report) {
		mapperMu.RLock()
		m := activeMapper
		mapperMu.RUnlock()
		if m != nil {
			m.MapController(inputState, rep)
		}
	}

	if err := iat.Setup(targetModule, ctrl); err != nil {
		logger.Error("hook install failed", "module", targetModule, "error", err)
		panic(err)
	}
	logger.Info("hooks installed", "module", targetModule)

	loadMappings(logger)
}

// loadMappings resolves mappings.json next to this library's own module
// image (spec.md §6: "the library discovers its own directory via the OS
// module-filename primitive applied to its image base") and loads it.
// Failure is logged and swallowed, never panics: the hooks are already
// live and must keep running pass-through (spec.md §7).
func loadMappings(logger *slog.Logger) {
	// The address of a package-level variable lies inside this library's own
	// image, so it resolves to our module rather than the host executable.
	var selfModule windows.Handle
	if err := windows.GetModuleHandleEx(
		windows.GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS|windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT,
		(*uint16)(unsafe.Pointer(&mapperMu)), &selfModule); err != nil {
		logger.Error("unable to resolve own module handle", "error", err)
		return
	}

	self, err := winapi.GetModuleFileName(uintptr(selfModule))
	if err != nil {
		logger.Error("unable to resolve own module path", "error", err)
		return
	}

	path := configpaths.ResolveMappingsPath(filepath.Dir(self))
	m, err := mapper.Load(path, mapper.FormatFromExtension(filepath.Ext(path)))
	if err != nil {
		logger.Error("mapping file load failed", "path", path, "error", err)
		return
	}

	mapperMu.Lock()
	activeMapper = m
	mapperMu.Unlock()
	logger.Info("mapping file loaded", "path", path, "mappings", m.Len())
}
