package device

import (
	"sync"

	"github.com/dshills/inputpulse/internal/input/key"
)

// State is the canonical edge buffer behind Query. Adapters write raw
// transitions into it from their own goroutines; the driver reads it
// during the tick and calls Reset before the next collection window.
//
// Writes are level-aware: Press on an already held key records no
// edge, so repeat events from the platform collapse naturally.
type State struct {
	mu sync.Mutex

	held      map[key.Code]bool
	downEdges map[key.Code]bool
	upEdges   map[key.Code]bool

	pointerHeld    bool
	pointerPress   bool
	pointerRelease bool

	touchBegin    bool
	touchBeginPos Position
	touchEnd      bool
}

// NewState creates an empty edge buffer.
func NewState() *State {
	return &State{
		held:      make(map[key.Code]bool),
		downEdges: make(map[key.Code]bool),
		upEdges:   make(map[key.Code]bool),
	}
}

// Press records a key transition to pressed. Pressing a held key is a
// no-op.
func (s *State) Press(code key.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[code] {
		return
	}
	s.held[code] = true
	s.downEdges[code] = true
}

// Release records a key transition to released. Releasing an unheld
// key is a no-op.
func (s *State) Release(code key.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.held[code] {
		return
	}
	delete(s.held, code)
	s.upEdges[code] = true
}

// PressPointer records the primary pointer button going down.
func (s *State) PressPointer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pointerHeld {
		return
	}
	s.pointerHeld = true
	s.pointerPress = true
}

// ReleasePointer records the primary pointer button going up.
func (s *State) ReleasePointer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pointerHeld {
		return
	}
	s.pointerHeld = false
	s.pointerRelease = true
}

// BeginTouch records a touch contact beginning at pos. A second begin
// in the same window overwrites the position.
func (s *State) BeginTouch(pos Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchBegin = true
	s.touchBeginPos = pos
}

// EndTouch records a touch contact ending.
func (s *State) EndTouch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchEnd = true
}

// Reset clears all edges. Held key and pointer levels persist so the
// next Press/Release still detects real transitions.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.downEdges)
	clear(s.upEdges)
	s.pointerPress = false
	s.pointerRelease = false
	s.touchBegin = false
	s.touchEnd = false
}

// Held reports whether the key is currently held. Button-emulated axes
// read this between edges.
func (s *State) Held(code key.Code) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[code]
}

// KeyDownEdge implements Query.
func (s *State) KeyDownEdge(code key.Code) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downEdges[code]
}

// KeyUpEdge implements Query.
func (s *State) KeyUpEdge(code key.Code) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upEdges[code]
}

// PointerPressEdge implements Query.
func (s *State) PointerPressEdge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointerPress
}

// PointerReleaseEdge implements Query.
func (s *State) PointerReleaseEdge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointerRelease
}

// TouchBeginEdge implements Query.
func (s *State) TouchBeginEdge() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchBeginPos, s.touchBegin
}

// TouchEndEdge implements Query.
func (s *State) TouchEndEdge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchEnd
}
