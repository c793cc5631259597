package axis

import "github.com/dshills/inputpulse/internal/input/key"

// Buttons emulates an analog axis from two digital keys: the negative
// key drives -1, the positive key +1. Both or neither held reads 0.
type Buttons struct {
	down     func(key.Code) bool
	negative key.Code
	positive key.Code
}

// NewButtons creates a button axis. down reports whether a key is
// currently held, typically backed by the device state.
func NewButtons(down func(key.Code) bool, negative, positive key.Code) *Buttons {
	return &Buttons{down: down, negative: negative, positive: positive}
}

// Sample returns -1, 0, or +1 from the two key states.
func (b *Buttons) Sample() float64 {
	neg := b.down(b.negative)
	pos := b.down(b.positive)
	switch {
	case neg == pos:
		return 0
	case pos:
		return 1
	default:
		return -1
	}
}
