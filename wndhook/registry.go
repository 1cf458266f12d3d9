// Package wndhook subclasses the host's top-level game window (C3 in
// spec.md) so raw keyboard/mouse-derived messages reach capture.InputState
// before the host ever sees them.
package wndhook

import "sync"

// Registry maps a window handle to the original message-handler address
// displaced when we installed our own (spec.md §3). Entries are never
// removed for the life of the process (Set may replace the value stored for
// a handle); lookups take the read side of the lock.
type Registry struct {
	mu   sync.RWMutex
	orig map[uintptr]uintptr
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{orig: make(map[uintptr]uintptr)}
}

// Get looks up the original window procedure for hwnd.
func (r *Registry) Get(hwnd uintptr) (proc uintptr, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	proc, ok = r.orig[hwnd]
	return proc, ok
}

// Set records the original window procedure for hwnd. Safe to call more than
// once for the same handle; later calls overwrite the stored value.
func (r *Registry) Set(hwnd, proc uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orig[hwnd] = proc
}
