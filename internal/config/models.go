package config

import (
	"fmt"
	"strings"
)

// Store backend names accepted in the config file and on the command line.
const (
	BackendMemory = "memory"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config represents the entire user configuration file.
type Config struct {
	Version  int        `yaml:"version"`
	Store    StoreConf  `yaml:"store"`
	LogLevel string     `yaml:"log_level,omitempty"` // Empty keeps logging silent
	Form     *FormPrefs `yaml:"form,omitempty"`
}

// StoreConf selects and locates the item store.
type StoreConf struct {
	Backend string `yaml:"backend"`        // memory, yaml or sqlite
	Path    string `yaml:"path,omitempty"` // Data file; empty means the default under the data dir
}

// FormPrefs tunes the interactive form.
type FormPrefs struct {
	NameCharLimit  int `yaml:"name_char_limit"`
	CountCharLimit int `yaml:"count_char_limit"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Store: StoreConf{
			Backend: BackendYAML,
		},
		Form: defaultFormPrefs(),
	}
}

func defaultFormPrefs() *FormPrefs {
	return &FormPrefs{
		NameCharLimit:  100,
		CountCharLimit: 9,
	}
}

// Validate checks that the config can be used.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", c.Version)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendYAML, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q (want %s)", c.Store.Backend,
			strings.Join([]string{BackendMemory, BackendYAML, BackendSQLite}, ", "))
	}
	return nil
}

// DataPath returns the store file for the configured backend.
// The memory backend has no file and returns "".
func (c *Config) DataPath() (string, error) {
	if c.Store.Backend == BackendMemory {
		return "", nil
	}
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return defaultDataFile(dir, c.Store.Backend), nil
}
