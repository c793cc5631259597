package device

import (
	"fmt"

	"github.com/dshills/inputpulse/internal/input/key"
)

// Position is a pointer or touch location in device coordinates.
type Position struct {
	X float64
	Y float64
}

// String formats the position for logs.
func (p Position) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Query reports the input edges observed since the previous tick. The
// sampler polls it exactly once per bound input per tick.
type Query interface {
	// KeyDownEdge reports whether the key transitioned to pressed.
	KeyDownEdge(code key.Code) bool

	// KeyUpEdge reports whether the key transitioned to released.
	KeyUpEdge(code key.Code) bool

	// PointerPressEdge reports whether the primary pointer button
	// transitioned to pressed.
	PointerPressEdge() bool

	// PointerReleaseEdge reports whether the primary pointer button
	// transitioned to released.
	PointerReleaseEdge() bool

	// TouchBeginEdge reports a touch contact that began this tick and
	// its location.
	TouchBeginEdge() (Position, bool)

	// TouchEndEdge reports whether a touch contact ended this tick.
	TouchEndEdge() bool
}

// Nop is a Query that never reports an edge.
var Nop Query = nopQuery{}

type nopQuery struct{}

func (nopQuery) KeyDownEdge(key.Code) bool        { return false }
func (nopQuery) KeyUpEdge(key.Code) bool          { return false }
func (nopQuery) PointerPressEdge() bool           { return false }
func (nopQuery) PointerReleaseEdge() bool         { return false }
func (nopQuery) TouchBeginEdge() (Position, bool) { return Position{}, false }
func (nopQuery) TouchEndEdge() bool               { return false }
