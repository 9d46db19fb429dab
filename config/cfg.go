// Package config handles program configuration.
package config

import (
	"bytes"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

type (
	StorageConfig struct {
		// Path of the SQLite document store; empty disables persistence.
		Path string `yaml:"path,omitempty"`
	}

	Config struct {
		Version int           `yaml:"version"`
		Storage StorageConfig `yaml:"storage"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Default returns configuration used when no file was provided.
func Default() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none", Mode: "append"},
		},
	}
}

// LoadConfiguration reads YAML configuration from path, overlaying defaults.
// Empty path means "use defaults".
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration from %q: %w", path, err)
	}

	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration %q: %w", path, err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported configuration version %d", cfg.Version)
	}
	if err := cfg.Logging.validate(); err != nil {
		return nil, fmt.Errorf("bad logging configuration in %q: %w", path, err)
	}
	return cfg, nil
}
