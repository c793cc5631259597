package config

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/inputpulse/internal/input/key"
)

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("150ms")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if d.Std() != 150*time.Millisecond {
		t.Errorf("Std() = %v, want 150ms", d.Std())
	}

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "150ms" {
		t.Errorf("MarshalText = %q, want 150ms", text)
	}

	if err := d.UnmarshalText([]byte("fast")); err == nil {
		t.Error("UnmarshalText accepted garbage")
	}
}

func TestChannelKeyCodes(t *testing.T) {
	ch := Channel{Keys: []string{"space", "W", "esc"}}
	codes, err := ch.KeyCodes()
	if err != nil {
		t.Fatalf("KeyCodes: %v", err)
	}
	want := []key.Code{key.Space, key.W, key.Escape}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("codes[%d] = %v, want %v", i, codes[i], want[i])
		}
	}

	ch = Channel{Keys: []string{"space", "warp-core"}}
	if _, err := ch.KeyCodes(); err == nil {
		t.Error("KeyCodes accepted an unknown key name")
	}
}

func TestChannelCooldownOverride(t *testing.T) {
	def := Duration(100 * time.Millisecond)

	if got := (Channel{}).Cooldown(def); got != 100*time.Millisecond {
		t.Errorf("default cooldown = %v, want 100ms", got)
	}
	ch := Channel{TouchCooldown: Duration(250 * time.Millisecond)}
	if got := ch.Cooldown(def); got != 250*time.Millisecond {
		t.Errorf("override cooldown = %v, want 250ms", got)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr string
	}{
		{
			name: "valid",
			profile: Profile{Channels: map[string]Channel{
				"jump":  {Keys: []string{"space"}},
				"steer": {Axes: []AxisRef{{Name: "stick_x", Deadzone: 0.2}}},
				"fire":  {Triggers: []string{"fire-button"}},
				"idle":  {},
			}},
		},
		{
			name: "unknown key",
			profile: Profile{Channels: map[string]Channel{
				"jump": {Keys: []string{"hyperdrive"}},
			}},
			wantErr: "keys",
		},
		{
			name: "dotted channel name",
			profile: Profile{Channels: map[string]Channel{
				"jump.high": {Keys: []string{"space"}},
			}},
			wantErr: "topic segment",
		},
		{
			name: "wildcard channel name",
			profile: Profile{Channels: map[string]Channel{
				"jump*": {},
			}},
			wantErr: "topic segment",
		},
		{
			name: "deadzone out of range",
			profile: Profile{Channels: map[string]Channel{
				"steer": {Axes: []AxisRef{{Name: "stick_x", Deadzone: 1.0}}},
			}},
			wantErr: "deadzone",
		},
		{
			name: "unnamed axis",
			profile: Profile{Channels: map[string]Channel{
				"steer": {Axes: []AxisRef{{Deadzone: 0.1}}},
			}},
			wantErr: "missing name",
		},
		{
			name: "empty trigger",
			profile: Profile{Channels: map[string]Channel{
				"fire": {Triggers: []string{""}},
			}},
			wantErr: "trigger",
		},
		{
			name:    "negative cooldown",
			profile: Profile{TouchCooldown: Duration(-time.Second)},
			wantErr: "negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	p := Profile{Channels: map[string]Channel{
		"a.b": {Keys: []string{"nonsense"}},
	}}

	err := p.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "topic segment") || !strings.Contains(msg, "keys") {
		t.Errorf("joined error missing a problem: %v", msg)
	}
}
