package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for profile paths whose extension
// is neither .toml nor .json.
var ErrUnsupportedFormat = errors.New("config: unsupported profile format")

// LoaderFor returns the parser for path's extension.
func LoaderFor(path string) (func(string) (*Profile, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML, nil
	case ".json":
		return LoadJSON, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load parses path with the loader its extension selects.
func Load(path string) (*Profile, error) {
	load, err := LoaderFor(path)
	if err != nil {
		return nil, err
	}
	return load(path)
}
