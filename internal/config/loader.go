package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".geotags"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .geotags configuration file.
// Booleans are pointers so an absent key does not override a default.
type File struct {
	Output          string   `yaml:"output,omitempty"`
	Format          string   `yaml:"format,omitempty"`
	Workers         int      `yaml:"workers,omitempty"`
	Extensions      []string `yaml:"extensions,omitempty"`
	IgnoreCase      *bool    `yaml:"ignoreCase,omitempty"`
	ApplyHemisphere *bool    `yaml:"applyHemisphere,omitempty"`
	ReportSkipped   *bool    `yaml:"reportSkipped,omitempty"`
	LogFormat       string   `yaml:"logFormat,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers decide whether that matters based on whether the path was
// explicitly given by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .geotags in the current directory
// 3. Look for .geotags in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Load finds and reads the configuration file and applies it to c.
// A missing file is only an error when c.ConfigFilePath names one.
func (c *Config) Load() error {
	path := FindConfigFile(c.ConfigFilePath)
	if path == "" {
		if c.ConfigFilePath != "" {
			return ErrConfigNotFound
		}
		return nil
	}

	f, err := LoadConfigFile(path)
	if err != nil {
		return err
	}
	c.Apply(f)
	return nil
}
