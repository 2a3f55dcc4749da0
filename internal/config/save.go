package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Save writes the config to config.yaml in the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to a specific path, as TOML when the path ends
// in .toml and as YAML otherwise.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.marshal(filepath.Ext(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) marshal(ext string) ([]byte, error) {
	if strings.EqualFold(ext, ".toml") {
		return toml.Marshal(c)
	}
	return yaml.Marshal(c)
}
