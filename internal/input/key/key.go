package key

import (
	"fmt"
	"strings"
)

// Code identifies a keyboard key.
type Code uint16

// Special keys.
const (
	None Code = iota
	Escape
	Enter
	Tab
	Backspace
	Delete
	Insert
	Space
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	LeftShift
	RightShift
	LeftControl
	RightControl
	LeftAlt
	RightAlt
)

// Letter keys. A through Z are contiguous.
const (
	A Code = iota + 64
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
)

// Digit keys. Digit0 through Digit9 are contiguous.
const (
	Digit0 Code = iota + 96
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
)

// Function keys. F1 through F12 are contiguous.
const (
	F1 Code = iota + 112
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// specialNames maps non-contiguous codes to their canonical names.
// Letter, digit, and function key names are derived arithmetically.
var specialNames = map[Code]string{
	None:         "None",
	Escape:       "Escape",
	Enter:        "Enter",
	Tab:          "Tab",
	Backspace:    "Backspace",
	Delete:       "Delete",
	Insert:       "Insert",
	Space:        "Space",
	Up:           "Up",
	Down:         "Down",
	Left:         "Left",
	Right:        "Right",
	Home:         "Home",
	End:          "End",
	PageUp:       "PageUp",
	PageDown:     "PageDown",
	LeftShift:    "LeftShift",
	RightShift:   "RightShift",
	LeftControl:  "LeftControl",
	RightControl: "RightControl",
	LeftAlt:      "LeftAlt",
	RightAlt:     "RightAlt",
}

// aliases maps alternate lowercase spellings to codes. Canonical names
// are added to the lookup table separately.
var aliases = map[string]Code{
	"esc":        Escape,
	"return":     Enter,
	"cr":         Enter,
	"bs":         Backspace,
	"del":        Delete,
	"ins":        Insert,
	"pgup":       PageUp,
	"pgdn":       PageDown,
	"pagedn":     PageDown,
	"shift":      LeftShift,
	"lshift":     LeftShift,
	"rshift":     RightShift,
	"ctrl":       LeftControl,
	"control":    LeftControl,
	"lctrl":      LeftControl,
	"rctrl":      RightControl,
	"alt":        LeftAlt,
	"lalt":       LeftAlt,
	"ralt":       RightAlt,
	"uparrow":    Up,
	"downarrow":  Down,
	"leftarrow":  Left,
	"rightarrow": Right,
}

// nameToCode holds the full lowercase name lookup table, built once
// from specialNames, the derived ranges, and aliases.
var nameToCode = buildNameTable()

func buildNameTable() map[string]Code {
	table := make(map[string]Code, len(specialNames)+len(aliases)+48)
	for code, name := range specialNames {
		table[strings.ToLower(name)] = code
	}
	for c := A; c <= Z; c++ {
		table[strings.ToLower(c.String())] = c
	}
	for c := Digit0; c <= Digit9; c++ {
		table[strings.ToLower(c.String())] = c
		// Bare digit, without the "Digit" prefix.
		table[string(rune('0' + c - Digit0))] = c
	}
	for c := F1; c <= F12; c++ {
		table[strings.ToLower(c.String())] = c
	}
	for name, code := range aliases {
		table[name] = code
	}
	return table
}

// String returns the canonical name of the code.
func (c Code) String() string {
	switch {
	case c >= A && c <= Z:
		return string(rune('A' + c - A))
	case c >= Digit0 && c <= Digit9:
		return "Digit" + string(rune('0'+c-Digit0))
	case c >= F1 && c <= F12:
		return fmt.Sprintf("F%d", c-F1+1)
	}
	if name, ok := specialNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// Valid reports whether the code names a known key.
func (c Code) Valid() bool {
	if _, ok := specialNames[c]; ok {
		return c != None
	}
	return (c >= A && c <= Z) || (c >= Digit0 && c <= Digit9) || (c >= F1 && c <= F12)
}

// IsLetter reports whether the code is a letter key.
func (c Code) IsLetter() bool { return c >= A && c <= Z }

// IsDigit reports whether the code is a digit key.
func (c Code) IsDigit() bool { return c >= Digit0 && c <= Digit9 }

// IsFunction reports whether the code is a function key.
func (c Code) IsFunction() bool { return c >= F1 && c <= F12 }

// IsArrow reports whether the code is an arrow key.
func (c Code) IsArrow() bool {
	return c == Up || c == Down || c == Left || c == Right
}

// IsModifier reports whether the code is a modifier key. Modifiers are
// still sampled as ordinary digital inputs; this only aids display.
func (c Code) IsModifier() bool {
	return c >= LeftShift && c <= RightAlt
}

// FromName resolves a key name to its code. Matching ignores case and
// surrounding whitespace and accepts common aliases ("esc", "ctrl",
// "return"). Single characters resolve to the matching letter or digit
// key.
func FromName(name string) (Code, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return None, fmt.Errorf("empty key name")
	}
	if code, ok := nameToCode[trimmed]; ok {
		return code, nil
	}
	return None, fmt.Errorf("unknown key name %q", name)
}

// MustFromName is FromName for statically known names. It panics on
// failure and exists for tests and default profiles.
func MustFromName(name string) Code {
	code, err := FromName(name)
	if err != nil {
		panic(err)
	}
	return code
}
