package input

import (
	"fmt"

	"github.com/dshills/inputpulse/internal/config"
	"github.com/dshills/inputpulse/internal/input/axis"
)

// AxisRegistry names the axis sources a profile may reference.
type AxisRegistry map[string]axis.Source

// Resolve builds a channel's view of a named axis, applying the
// reference's deadzone, inversion, and scale in that order.
func (r AxisRegistry) Resolve(ref config.AxisRef) (axis.Source, error) {
	src, ok := r[ref.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, ref.Name)
	}
	if ref.Deadzone > 0 {
		src = axis.Deadzone(src, ref.Deadzone)
	}
	if ref.Invert {
		src = axis.Invert(src)
	}
	if ref.Scale != 0 && ref.Scale != 1 {
		src = axis.Scale(src, ref.Scale)
	}
	return src, nil
}

// Names returns the registered axis names in no particular order.
func (r AxisRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}
