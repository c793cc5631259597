// Package binding defines the immutable set of inputs that drive one
// activation channel.
package binding

import (
	"fmt"
	"strings"

	"github.com/dshills/inputpulse/internal/input/axis"
	"github.com/dshills/inputpulse/internal/input/key"
)

// Binding is the set of keys and analog axes a channel samples. Values
// are immutable once built: the With methods return modified copies,
// so a Binding can be shared freely.
//
// Keys are kept deduplicated in first-mention order, which fixes the
// order edges are applied within a tick. Axes are kept exactly in the
// order given; when two axes tie on magnitude, the earlier one wins.
//
// The zero value is a valid binding that never activates anything.
type Binding struct {
	keys []key.Code
	axes []axis.Source
}

// New creates an empty binding.
func New() Binding {
	return Binding{}
}

// WithKeys returns a copy with the given keys appended. Keys already
// present are skipped, preserving first-mention order.
func (b Binding) WithKeys(codes ...key.Code) Binding {
	keys := make([]key.Code, len(b.keys), len(b.keys)+len(codes))
	copy(keys, b.keys)

	seen := make(map[key.Code]struct{}, len(keys)+len(codes))
	for _, c := range keys {
		seen[c] = struct{}{}
	}
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		keys = append(keys, c)
	}

	b.keys = keys
	return b
}

// WithAxes returns a copy with the given sources appended in order.
func (b Binding) WithAxes(sources ...axis.Source) Binding {
	axes := make([]axis.Source, len(b.axes), len(b.axes)+len(sources))
	copy(axes, b.axes)
	axes = append(axes, sources...)

	b.axes = axes
	return b
}

// Keys returns the bound keys in evaluation order. The slice is owned
// by the binding and must not be modified.
func (b Binding) Keys() []key.Code {
	return b.keys
}

// Axes returns the bound sources in tie-break order. The slice is
// owned by the binding and must not be modified.
func (b Binding) Axes() []axis.Source {
	return b.axes
}

// Empty reports whether the binding references no inputs at all.
func (b Binding) Empty() bool {
	return len(b.keys) == 0 && len(b.axes) == 0
}

// String describes the binding for logs.
func (b Binding) String() string {
	names := make([]string, len(b.keys))
	for i, c := range b.keys {
		names[i] = c.String()
	}
	return fmt.Sprintf("binding(keys=[%s] axes=%d)", strings.Join(names, " "), len(b.axes))
}
