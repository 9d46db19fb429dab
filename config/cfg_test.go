package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("unexpected default version: %d", cfg.Version)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Fatalf("unexpected default console level: %q", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Storage.Path != "" {
		t.Fatalf("persistence must be disabled by default, got %q", cfg.Storage.Path)
	}
}

func TestLoadConfigurationOverlay(t *testing.T) {
	path := writeConfig(t, `
version: 1
storage:
  path: /tmp/fdc.db
logging:
  console:
    level: debug
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	if cfg.Storage.Path != "/tmp/fdc.db" {
		t.Fatalf("storage path not read: %q", cfg.Storage.Path)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Fatalf("console level not read: %q", cfg.Logging.ConsoleLogger.Level)
	}
	// untouched sections keep their defaults
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Fatalf("file logger defaults lost: %+v", cfg.Logging.FileLogger)
	}
}

func TestLoadConfigurationRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
version: 1
no_such_section:
  enabled: true
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Fatal("expected failure for unknown configuration field")
	}
}

func TestLoadConfigurationRejectsBadLevel(t *testing.T) {
	path := writeConfig(t, `
version: 1
logging:
  console:
    level: chatty
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Fatal("expected failure for unknown log level")
	}
}

func TestLoadConfigurationRejectsBadVersion(t *testing.T) {
	path := writeConfig(t, `version: 2`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Fatal("expected failure for unsupported version")
	}
}
