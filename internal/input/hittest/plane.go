package hittest

import (
	"sync"

	"github.com/dshills/inputpulse/internal/input/device"
)

// Rect is an axis-aligned region. Min edges are inclusive, max edges
// exclusive, so adjacent rects tile without overlap.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect builds a rect from an origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// Contains reports whether the position is inside the rect.
func (r Rect) Contains(pos device.Position) bool {
	return pos.X >= r.MinX && pos.X < r.MaxX &&
		pos.Y >= r.MinY && pos.Y < r.MaxY
}

// Region pairs a target with its rect, bottom to top.
type Region struct {
	Target Target
	Rect   Rect
}

// Plane is a Tester over rectangle regions. When regions overlap, the
// most recently added one wins, matching paint order where later
// additions draw on top.
type Plane struct {
	mu      sync.Mutex
	regions []Region
	pointer device.Position
}

// NewPlane creates an empty plane with the pointer at the origin.
func NewPlane() *Plane {
	return &Plane{}
}

// Add registers a target's region. Re-adding an existing target
// updates its rect and raises it to the top.
func (p *Plane) Add(target Target, rect Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(target)
	p.regions = append(p.regions, Region{Target: target, Rect: rect})
}

// Remove unregisters a target. Removing an unknown target is a no-op.
func (p *Plane) Remove(target Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(target)
}

func (p *Plane) removeLocked(target Target) {
	for i, reg := range p.regions {
		if reg.Target == target {
			p.regions = append(p.regions[:i], p.regions[i+1:]...)
			return
		}
	}
}

// SetPointer moves the pointer.
func (p *Plane) SetPointer(pos device.Position) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pointer = pos
}

// Pointer returns the current pointer position.
func (p *Plane) Pointer() device.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pointer
}

// Clear removes every region, leaving the pointer where it is.
func (p *Plane) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.regions = nil
}

// Regions returns a snapshot of the registered regions, bottom to
// top.
func (p *Plane) Regions() []Region {
	p.mu.Lock()
	defer p.mu.Unlock()
	regions := make([]Region, len(p.regions))
	copy(regions, p.regions)
	return regions
}

// Hovered returns the topmost target whose region contains the
// pointer.
func (p *Plane) Hovered() (Target, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.regions) - 1; i >= 0; i-- {
		if p.regions[i].Rect.Contains(p.pointer) {
			return p.regions[i].Target, true
		}
	}
	return nil, false
}
