package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// LoadJSON reads and validates a JSON profile from the OS file system.
func LoadJSON(path string) (*Profile, error) {
	return LoadJSONFS(DefaultFS(), path)
}

// LoadJSONFS reads and validates a JSON profile from fsys.
func LoadJSONFS(fsys FileSystem, path string) (*Profile, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return ParseJSON(path, data)
}

// ParseJSON parses and validates JSON profile data. Durations are
// strings ("100ms"), matching the TOML form.
func ParseJSON(path string, data []byte) (*Profile, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: path, Message: "profile must be a JSON object"}
	}

	p := Default()
	if tc := root.Get("touch_cooldown"); tc.Exists() {
		d, err := time.ParseDuration(tc.String())
		if err != nil {
			return nil, &ParseError{Path: path, Message: fmt.Sprintf("touch_cooldown: %v", err), Err: err}
		}
		p.TouchCooldown = Duration(d)
	}

	var badChannel error
	root.Get("channels").ForEach(func(name, raw gjson.Result) bool {
		var ch Channel
		raw.Get("keys").ForEach(func(_, k gjson.Result) bool {
			ch.Keys = append(ch.Keys, k.String())
			return true
		})
		raw.Get("triggers").ForEach(func(_, tr gjson.Result) bool {
			ch.Triggers = append(ch.Triggers, tr.String())
			return true
		})
		raw.Get("axes").ForEach(func(_, a gjson.Result) bool {
			ch.Axes = append(ch.Axes, AxisRef{
				Name:     a.Get("name").String(),
				Deadzone: a.Get("deadzone").Float(),
				Invert:   a.Get("invert").Bool(),
				Scale:    a.Get("scale").Float(),
			})
			return true
		})
		if tc := raw.Get("touch_cooldown"); tc.Exists() {
			d, err := time.ParseDuration(tc.String())
			if err != nil {
				badChannel = &ParseError{
					Path:    path,
					Message: fmt.Sprintf("channel %q touch_cooldown: %v", name.String(), err),
					Err:     err,
				}
				return false
			}
			ch.TouchCooldown = Duration(d)
		}
		p.Channels[name.String()] = ch
		return true
	})
	if badChannel != nil {
		return nil, badChannel
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}

// EncodeJSON renders the profile as JSON with channels in sorted
// order, so output is diff-stable.
func EncodeJSON(p *Profile) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "touch_cooldown", p.TouchCooldown.String()); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(p.Channels))
	for name := range p.Channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ch := p.Channels[name]
		base := "channels." + name
		if out, err = sjson.SetRawBytes(out, base, []byte(`{}`)); err != nil {
			return nil, err
		}
		if len(ch.Keys) > 0 {
			if out, err = sjson.SetBytes(out, base+".keys", ch.Keys); err != nil {
				return nil, err
			}
		}
		if len(ch.Axes) > 0 {
			if out, err = sjson.SetBytes(out, base+".axes", ch.Axes); err != nil {
				return nil, err
			}
		}
		if len(ch.Triggers) > 0 {
			if out, err = sjson.SetBytes(out, base+".triggers", ch.Triggers); err != nil {
				return nil, err
			}
		}
		if ch.TouchCooldown > 0 {
			if out, err = sjson.SetBytes(out, base+".touch_cooldown", ch.TouchCooldown.String()); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// SaveJSON writes the profile to path.
func SaveJSON(path string, p *Profile) error {
	data, err := EncodeJSON(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}
	return nil
}
