// Package mapper consumes accumulated input state and mutates a gamepad
// report according to a loaded list of mapping rules (C5 in spec.md).
package mapper

import (
	"log"
	"sync"

	"github.com/Alia5/mouseplay/report"
)

// InputSource is the subset of capture.InputState the mapper reads from.
// Declared here rather than imported so mapper never needs to know about
// capture's window-message plumbing — it only ever sees the frozen,
// per-frame snapshot (spec.md §9: "IO-hook -> subclasser" / "UI-subclass ->
// input-state", no back-edges into the mapper).
type InputSource interface {
	Key(name string) bool
	MouseX() int
	MouseY() int
}

// Mapping is the tagged union of mapping records (spec.md §9: "use a tagged
// sum, not a type hierarchy"). Each variant below implements it.
type Mapping interface {
	apply(in InputSource, rep *report.Report)
}

// MappingList is an ordered sequence of mapping records. Order matters:
// later mappings overwrite earlier ones on shared outputs (spec.md §4.5).
type MappingList []Mapping

// ButtonMapping sets a button on the report whenever its input key is held.
//
// Releases are not propagated: a button, once set by a held key, stays set
// until another mapping clears it. Preserved as an explicit open question
// from spec.md §9, not silently fixed.
type ButtonMapping struct {
	Input  string
	Output string
}

func (m *ButtonMapping) apply(in InputSource, rep *report.Report) {
	if in.Key(m.Input) {
		rep.SetButton(m.Output, true)
	}
}

// AxisMapping writes a fixed axis value while its input key is held. On
// release the axis is left at its last driven value (spec.md §9).
type AxisMapping struct {
	Input  string
	Output string
	Value  float64
}

func (m *AxisMapping) apply(in InputSource, rep *report.Report) {
	if !in.Key(m.Input) {
		return
	}
	v := m.Value
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	rep.SetAxis(m.Output, uint8((0.5+v/2)*255))
}

// Mapper holds a loaded MappingList and applies it to a report under its own
// lock (spec.md §3: "one process-wide Mapper ... mutated exclusively by C5
// under its own lock"). MouseMapping entries inside the list carry their own
// per-mapping remainder/residue/history state, mutated in the same pass.
type Mapper struct {
	mu       sync.Mutex
	mappings MappingList
}

// NewMapper wraps an already-built MappingList.
func NewMapper(mappings MappingList) *Mapper {
	return &Mapper{mappings: mappings}
}

// Len reports how many mapping records are loaded.
func (m *Mapper) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mappings)
}

// MapController iterates the mappings in declaration order, applying each
// to rep using live state read from in (spec.md §4.5). Lock acquisition is
// non-blocking: on contention this degrades to a pass-through for the
// current frame rather than stalling the caller's I/O-hook trampoline
// (spec.md §7: "Lock contention | Any | degrade to pass-through for this
// frame").
func (m *Mapper) MapController(in InputSource, rep *report.Report) {
	if !m.mu.TryLock() {
		log.Printf("mapper: MapController skipped frame, lock contended")
		return
	}
	defer m.mu.Unlock()
	for _, mapping := range m.mappings {
		mapping.apply(in, rep)
	}
}
