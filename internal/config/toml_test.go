package config

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

const sampleTOML = `
touch_cooldown = "200ms"

[channels.jump]
keys = ["space", "w"]

[channels.steer]
axes = [
    { name = "stick_x", deadzone = 0.15 },
    { name = "stick_y", invert = true, scale = 2.0 },
]

[channels.fire]
keys = ["f"]
triggers = ["fire-button"]
touch_cooldown = "50ms"
`

func TestParseTOML(t *testing.T) {
	p, err := ParseTOML("profile.toml", []byte(sampleTOML))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}

	if p.TouchCooldown.Std() != 200*time.Millisecond {
		t.Errorf("TouchCooldown = %v, want 200ms", p.TouchCooldown.Std())
	}
	if len(p.Channels) != 3 {
		t.Fatalf("parsed %d channels, want 3", len(p.Channels))
	}

	jump := p.Channels["jump"]
	if len(jump.Keys) != 2 || jump.Keys[0] != "space" || jump.Keys[1] != "w" {
		t.Errorf("jump keys = %v", jump.Keys)
	}

	steer := p.Channels["steer"]
	if len(steer.Axes) != 2 {
		t.Fatalf("steer has %d axes, want 2", len(steer.Axes))
	}
	if steer.Axes[0].Name != "stick_x" || steer.Axes[0].Deadzone != 0.15 {
		t.Errorf("steer axis 0 = %+v", steer.Axes[0])
	}
	if !steer.Axes[1].Invert || steer.Axes[1].Scale != 2.0 {
		t.Errorf("steer axis 1 = %+v", steer.Axes[1])
	}

	fire := p.Channels["fire"]
	if len(fire.Triggers) != 1 || fire.Triggers[0] != "fire-button" {
		t.Errorf("fire triggers = %v", fire.Triggers)
	}
	if fire.Cooldown(p.TouchCooldown) != 50*time.Millisecond {
		t.Errorf("fire cooldown = %v, want 50ms", fire.Cooldown(p.TouchCooldown))
	}
}

func TestParseTOMLDefaultCooldown(t *testing.T) {
	p, err := ParseTOML("p.toml", []byte("[channels.jump]\nkeys = [\"space\"]\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if p.TouchCooldown.Std() != 100*time.Millisecond {
		t.Errorf("TouchCooldown = %v, want default 100ms", p.TouchCooldown.Std())
	}
}

func TestParseTOMLSyntaxError(t *testing.T) {
	_, err := ParseTOML("p.toml", []byte("channels = ["))
	if err == nil {
		t.Fatal("ParseTOML accepted malformed TOML")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error %T is not *ParseError", err)
	}
}

func TestParseTOMLValidationError(t *testing.T) {
	_, err := ParseTOML("p.toml", []byte("[channels.jump]\nkeys = [\"hyperdrive\"]\n"))
	if err == nil {
		t.Fatal("ParseTOML accepted unknown key name")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error %T does not wrap *ValidationError", err)
	}
}

func TestLoadTOMLFS(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles/default.toml": &fstest.MapFile{Data: []byte(sampleTOML)},
	}

	p, err := LoadTOMLFS(fsys, "profiles/default.toml")
	if err != nil {
		t.Fatalf("LoadTOMLFS: %v", err)
	}
	if len(p.Channels) != 3 {
		t.Errorf("loaded %d channels, want 3", len(p.Channels))
	}

	if _, err := LoadTOMLFS(fsys, "profiles/missing.toml"); err == nil {
		t.Error("LoadTOMLFS succeeded on a missing file")
	}
}
