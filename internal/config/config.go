// Package config loads server configuration from an optional YAML file.
// Command-line flags override file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings.
type Config struct {
	API struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"api"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Dev bool   `yaml:"dev"`
	PID struct {
		Path string `yaml:"path"`
		Lock bool   `yaml:"lock"`
	} `yaml:"pid"`
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	c.API.Host = "localhost"
	c.API.Port = 8080
	return c
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config file: %w", err)
	}

	return c, nil
}
