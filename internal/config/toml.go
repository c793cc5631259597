package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// LoadTOML reads and validates a TOML profile from the OS file system.
func LoadTOML(path string) (*Profile, error) {
	return LoadTOMLFS(DefaultFS(), path)
}

// LoadTOMLFS reads and validates a TOML profile from fsys.
func LoadTOMLFS(fsys FileSystem, path string) (*Profile, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return ParseTOML(path, data)
}

// ParseTOML parses and validates TOML profile data. The path is only
// used in error messages.
func ParseTOML(path string, data []byte) (*Profile, error) {
	p := Default()
	if err := toml.Unmarshal(data, p); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if p.Channels == nil {
		p.Channels = make(map[string]Channel)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}
