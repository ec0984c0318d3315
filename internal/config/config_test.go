package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
}

func TestDefaultExpandsPaths(t *testing.T) {
	cfg := Default()
	if strings.HasPrefix(cfg.LogFile, "~") {
		t.Errorf("Expected expanded log path, got %q", cfg.LogFile)
	}
	if !strings.HasPrefix(DefaultConfig.LogFile, "~") {
		t.Error("Default modified DefaultConfig")
	}

	cfg.Keys.Evaluate[0] = "space"
	if DefaultConfig.Keys.Evaluate[0] != "Return" {
		t.Error("Default shares key slices with DefaultConfig")
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Window.Width != 235 || cfg.Window.Height != 235 {
		t.Errorf("Expected default 235x235 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.About.Version != "0.1" {
		t.Errorf("Expected default version 0.1, got %q", cfg.About.Version)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
socket_path = "/tmp/test_gocalc_socket"

[window]
title = "Calc"
width = 300

[keys]
clear = ["Escape"]

[dbus]
enabled = false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.SocketPath != "/tmp/test_gocalc_socket" {
		t.Errorf("Expected socket override, got %q", cfg.SocketPath)
	}
	if cfg.Window.Title != "Calc" || cfg.Window.Width != 300 {
		t.Errorf("Expected window override, got %+v", cfg.Window)
	}
	if cfg.Window.Height != 235 {
		t.Errorf("Expected default height to survive, got %d", cfg.Window.Height)
	}
	if len(cfg.Keys.Clear) != 1 || cfg.Keys.Clear[0] != "Escape" {
		t.Errorf("Expected clear keys [Escape], got %v", cfg.Keys.Clear)
	}
	if len(cfg.Keys.Evaluate) != 2 {
		t.Errorf("Expected default evaluate keys, got %v", cfg.Keys.Evaluate)
	}
	if cfg.DBus.Enabled {
		t.Error("Expected dbus disabled")
	}
	if len(DefaultConfig.Keys.Clear) != 2 {
		t.Error("Loading a config modified DefaultConfig")
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[window\nwidth = "), 0644)

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig
	cfg.Evaluator.CacheSize = 64

	if err := SaveConfig(&cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadAndValidateConfig(path)
	if err != nil {
		t.Fatalf("LoadAndValidateConfig failed: %v", err)
	}
	if loaded.Evaluator.CacheSize != 64 {
		t.Errorf("Expected cache size 64, got %d", loaded.Evaluator.CacheSize)
	}
}

func TestValidateRejects(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"narrow window", func(c *Config) { c.Window.Width = 10 }, "window width"},
		{"tall display", func(c *Config) { c.Window.DisplayHeight = 500 }, "display_height"},
		{"tiny button", func(c *Config) { c.Window.ButtonHeight = 1 }, "button_height"},
		{"zero cache", func(c *Config) { c.Evaluator.CacheSize = 0 }, "cache_size"},
		{"no evaluate key", func(c *Config) { c.Keys.Evaluate = nil }, "keys.evaluate"},
		{"conflicting key", func(c *Config) { c.Keys.Clear = []string{"Return"} }, "bound to both"},
		{"no version", func(c *Config) { c.About.Version = "" }, "about.version"},
		{"dbus without name", func(c *Config) { c.DBus.Name = "" }, "bus name"},
	}

	for _, tc := range testCases {
		cfg := DefaultConfig
		cfg.Keys = cloneKeys(DefaultConfig.Keys)
		tc.mutate(&cfg)

		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	got := expandPath("~/x/y")
	if strings.HasPrefix(got, "~") {
		t.Errorf("Expected home expansion, got %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("Absolute path changed to %q", got)
	}
}

func TestValidateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[window]\nwidth = -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateConfig(path); err == nil {
		t.Error("Expected negative width to fail validation")
	}

	if err := ValidateConfig(filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Errorf("Missing file should validate as defaults, got %v", err)
	}
}
