// Package config loads tool configuration from an optional aghlists.toml
// file, falling back to built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = "aghlists.toml"

	// DefaultDestination is the output directory used when neither the
	// config file nor the command line names one. It is resolved relative
	// to the working directory.
	DefaultDestination = "generatedLists"

	// DefaultSource is the marker written into each list header.
	DefaultSource = "https://github.com/ChristianVerhoeven/adGuardHomeLists"
)

// Config holds the tool settings. Command-line flags override file values.
type Config struct {
	Destination string `toml:"destination"`
	Source      string `toml:"source"`
	Strict      bool   `toml:"strict"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Destination: DefaultDestination,
		Source:      DefaultSource,
	}
}

// Load reads the config file in dir. A missing file is not an error: the
// defaults are returned.
func Load(dir string) (*Config, error) {
	cnf := Default()
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cnf, nil
		}
		return nil, err
	}
	if _, err := toml.DecodeFile(path, cnf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cnf.Destination == "" {
		cnf.Destination = DefaultDestination
	}
	if cnf.Source == "" {
		cnf.Source = DefaultSource
	}
	return cnf, nil
}
