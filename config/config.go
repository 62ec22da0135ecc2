// Package config provides configuration loading and management for bizspec.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete bizspec configuration
type Config struct {
	Ontology OntologyConfig `yaml:"ontology"`
	Compile  CompileConfig  `yaml:"compile"`
	Log      LogConfig      `yaml:"log"`
}

// OntologyConfig configures where ontology documents live
type OntologyConfig struct {
	// Path is the ontology file or directory (default: "ontology")
	Path string `yaml:"path"`
}

// CompileConfig configures the default compilation run
type CompileConfig struct {
	// Targets are the target identifiers compiled when none are given on
	// the command line (default: ["json-schema"])
	Targets []string `yaml:"targets"`
	// Output is the directory compiled artifacts are written under
	// (default: "generated")
	Output string `yaml:"output"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn or error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{
			Path: "ontology",
		},
		Compile: CompileConfig{
			Targets: []string{"json-schema"},
			Output:  "generated",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Ontology.Path == "" {
		return fmt.Errorf("ontology.path is required")
	}
	if c.Compile.Output == "" {
		return fmt.Errorf("compile.output is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Ontology.Path != "" {
		c.Ontology.Path = other.Ontology.Path
	}

	if len(other.Compile.Targets) > 0 {
		c.Compile.Targets = other.Compile.Targets
	}
	if other.Compile.Output != "" {
		c.Compile.Output = other.Compile.Output
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
