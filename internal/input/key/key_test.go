package key

import "testing"

func TestCodeString(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want string
	}{
		{"escape", Escape, "Escape"},
		{"space", Space, "Space"},
		{"letter a", A, "A"},
		{"letter z", Z, "Z"},
		{"digit zero", Digit0, "Digit0"},
		{"digit nine", Digit9, "Digit9"},
		{"function one", F1, "F1"},
		{"function twelve", F12, "F12"},
		{"page down", PageDown, "PageDown"},
		{"left control", LeftControl, "LeftControl"},
		{"none", None, "None"},
		{"unknown", Code(999), "Code(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Code
		wantErr bool
	}{
		{"canonical", "Escape", Escape, false},
		{"lowercase", "escape", Escape, false},
		{"alias esc", "esc", Escape, false},
		{"alias return", "Return", Enter, false},
		{"alias ctrl", "ctrl", LeftControl, false},
		{"single letter", "a", A, false},
		{"single letter upper", "Q", Q, false},
		{"bare digit", "7", Digit7, false},
		{"digit prefix", "Digit7", Digit7, false},
		{"function key", "f11", F11, false},
		{"whitespace", "  Space  ", Space, false},
		{"empty", "", None, true},
		{"unknown", "hyperdrive", None, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FromName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringFromNameRoundTrip(t *testing.T) {
	codes := []Code{Escape, Enter, Tab, Space, Up, Down, Left, Right,
		Home, End, PageUp, PageDown, LeftShift, RightAlt}
	for c := A; c <= Z; c++ {
		codes = append(codes, c)
	}
	for c := Digit0; c <= Digit9; c++ {
		codes = append(codes, c)
	}
	for c := F1; c <= F12; c++ {
		codes = append(codes, c)
	}

	for _, code := range codes {
		got, err := FromName(code.String())
		if err != nil {
			t.Fatalf("FromName(%q) returned error: %v", code.String(), err)
		}
		if got != code {
			t.Errorf("round trip for %v: got %v", code, got)
		}
	}
}

func TestCodeClassification(t *testing.T) {
	tests := []struct {
		name   string
		code   Code
		letter bool
		digit  bool
		fn     bool
		arrow  bool
		mod    bool
	}{
		{"letter", M, true, false, false, false, false},
		{"digit", Digit3, false, true, false, false, false},
		{"function", F5, false, false, true, false, false},
		{"arrow", Left, false, false, false, true, false},
		{"modifier", RightControl, false, false, false, false, true},
		{"plain special", Space, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.IsLetter(); got != tt.letter {
				t.Errorf("IsLetter() = %v, want %v", got, tt.letter)
			}
			if got := tt.code.IsDigit(); got != tt.digit {
				t.Errorf("IsDigit() = %v, want %v", got, tt.digit)
			}
			if got := tt.code.IsFunction(); got != tt.fn {
				t.Errorf("IsFunction() = %v, want %v", got, tt.fn)
			}
			if got := tt.code.IsArrow(); got != tt.arrow {
				t.Errorf("IsArrow() = %v, want %v", got, tt.arrow)
			}
			if got := tt.code.IsModifier(); got != tt.mod {
				t.Errorf("IsModifier() = %v, want %v", got, tt.mod)
			}
		})
	}
}

func TestCodeValid(t *testing.T) {
	valid := []Code{Escape, Space, A, Z, Digit0, Digit9, F1, F12, RightAlt}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("%v.Valid() = false, want true", c)
		}
	}
	invalid := []Code{None, Code(63), Code(999)}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("%v.Valid() = true, want false", c)
		}
	}
}

func TestMustFromNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustFromName with unknown name did not panic")
		}
	}()
	MustFromName("no-such-key")
}
