// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		// Writer goroutine
		go func(id int) {
			defer wg.Done()
			c := &Config{
				Version: "test",
				Tracker: TrackerConfig{
					DebounceMs: 1500,
					MinLength:  10,
				},
			}
			SetGlobal(c)
		}(i)

		// Reader goroutine
		go func(id int) {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}(i)
	}

	wg.Wait()
}

// TestConfig_ConcurrentReload tests concurrent ReloadGlobal and Global calls.
func TestConfig_ConcurrentReload(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	// Initialize config first
	_ = Global()

	var wg sync.WaitGroup

	// 20 reloaders, 80 readers
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// ReloadGlobal may fail if config file doesn't exist, that's ok
			_ = ReloadGlobal()
		}()
	}

	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}

	// Verify defaults are applied
	if cfg.Version == "" {
		t.Error("Config version should not be empty")
	}
	if cfg.Server.URL == "" {
		t.Error("Server URL should not be empty")
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	// Initialize with defaults
	_ = Global()

	// Set custom config
	customCfg := &Config{
		Version: "custom-version",
		Server:  ServerConfig{URL: "http://localhost:9999"},
	}
	SetGlobal(customCfg)

	// Verify the custom config is returned
	result := Global()
	if result.Version != "custom-version" {
		t.Errorf("Expected version 'custom-version', got '%s'", result.Version)
	}
	if result.Server.URL != "http://localhost:9999" {
		t.Errorf("Expected custom server URL, got '%s'", result.Server.URL)
	}
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Version == "" {
		t.Error("Default config should have a version")
	}

	if cfg.Tracker.DebounceMs != 1500 {
		t.Errorf("Expected default debounce 1500ms, got %d", cfg.Tracker.DebounceMs)
	}

	if cfg.Tracker.MinLength != 10 {
		t.Errorf("Expected default min length 10, got %d", cfg.Tracker.MinLength)
	}

	if cfg.Server.URL == "" {
		t.Error("Default config should have a server URL")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid default config",
			config:  Default(),
			wantErr: false,
		},
		{
			name: "invalid server URL",
			config: func() *Config {
				c := Default()
				c.Server.URL = "not a url at all\x00"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "server URL missing scheme",
			config: func() *Config {
				c := Default()
				c.Server.URL = "localhost:8391"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "debounce below minimum",
			config: func() *Config {
				c := Default()
				c.Tracker.DebounceMs = 50
				return c
			}(),
			wantErr: true,
		},
		{
			name: "debounce above maximum",
			config: func() *Config {
				c := Default()
				c.Tracker.DebounceMs = 120000
				return c
			}(),
			wantErr: true,
		},
		{
			name: "debounce at minimum (100)",
			config: func() *Config {
				c := Default()
				c.Tracker.DebounceMs = 100
				return c
			}(),
			wantErr: false,
		},
		{
			name: "min length zero",
			config: func() *Config {
				c := Default()
				c.Tracker.MinLength = 0
				return c
			}(),
			wantErr: true,
		},
		{
			name: "requests per minute out of range",
			config: func() *Config {
				c := Default()
				c.Tracker.RequestsPerMinute = 10000
				return c
			}(),
			wantErr: true,
		},
		{
			name: "unknown style attribute",
			config: func() *Config {
				c := Default()
				c.Overlay.StyleCopyList = []string{"bold", "blink"}
				return c
			}(),
			wantErr: true,
		},
		{
			name: "invalid theme",
			config: func() *Config {
				c := Default()
				c.UI.Theme = "invalid"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "timeout out of range",
			config: func() *Config {
				c := Default()
				c.Server.TimeoutSecs = 500
				return c
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	// Test Get
	val, err := cfg.Get("tracker.debounce_ms")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != 1500 {
		t.Errorf("Get('tracker.debounce_ms') = %v, want 1500", val)
	}

	// Test Set
	err = cfg.Set("tracker.min_length", "25")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	val, _ = cfg.Get("tracker.min_length")
	if val != 25 {
		t.Errorf("Get('tracker.min_length') after Set = %v, want 25", val)
	}

	// Test Get with invalid key
	_, err = cfg.Get("invalid.key")
	if err == nil {
		t.Error("Get() with invalid key should return error")
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	original.Version = "original"

	clone := original.Clone()

	// Modify clone, including the shared-by-default slice
	clone.Version = "cloned"
	clone.Overlay.StyleCopyList[0] = "italic"

	// Verify original unchanged
	if original.Version != "original" {
		t.Error("Clone should create an independent copy")
	}
	if original.Overlay.StyleCopyList[0] != "bold" {
		t.Error("Clone must deep-copy the style copy list")
	}
}

// TestConfig_Merge tests merging two configs.
func TestConfig_Merge(t *testing.T) {
	base := Default()
	base.Version = "base"

	other := &Config{
		Version: "merged",
		Server:  ServerConfig{URL: "http://example.com:8080"},
	}

	base.Merge(other)

	if base.Version != "merged" {
		t.Errorf("Merge should overwrite Version, got '%s'", base.Version)
	}
	if base.Server.URL != "http://example.com:8080" {
		t.Errorf("Merge should overwrite Server.URL, got '%s'", base.Server.URL)
	}
	// Verify non-overwritten values remain
	if base.Tracker.DebounceMs != 1500 {
		t.Error("Merge should not overwrite unset fields")
	}
}

// TestConfig_ApplyEnvOverrides tests GHOSTLINE_* environment overrides.
func TestConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("GHOSTLINE_SERVER_URL", "http://10.0.0.5:9000")
	t.Setenv("GHOSTLINE_DEBOUNCE_MS", "800")
	t.Setenv("GHOSTLINE_MIN_LENGTH", "15")
	t.Setenv("GHOSTLINE_TELEMETRY", "0")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.URL != "http://10.0.0.5:9000" {
		t.Errorf("Server URL = %s, want env override", cfg.Server.URL)
	}
	if cfg.Tracker.DebounceMs != 800 {
		t.Errorf("DebounceMs = %d, want 800", cfg.Tracker.DebounceMs)
	}
	if cfg.Tracker.MinLength != 15 {
		t.Errorf("MinLength = %d, want 15", cfg.Tracker.MinLength)
	}
	if cfg.Telemetry.Enabled {
		t.Error("GHOSTLINE_TELEMETRY=0 should disable telemetry")
	}
}

// TestConfig_EnvOverrideIgnoresGarbage tests that a non-numeric override
// leaves the configured value alone.
func TestConfig_EnvOverrideIgnoresGarbage(t *testing.T) {
	t.Setenv("GHOSTLINE_DEBOUNCE_MS", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Tracker.DebounceMs != 1500 {
		t.Errorf("DebounceMs = %d, want the default to survive a bad override", cfg.Tracker.DebounceMs)
	}
}

// TestConfig_LoadFromPath_TOML tests round-tripping through a TOML file.
func TestConfig_LoadFromPath_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := []byte(`
[server]
url = "http://127.0.0.1:7777"

[tracker]
debounce_ms = 2000
min_length = 12
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Server.URL != "http://127.0.0.1:7777" {
		t.Errorf("Server URL = %s", cfg.Server.URL)
	}
	if cfg.Tracker.DebounceMs != 2000 {
		t.Errorf("DebounceMs = %d, want 2000", cfg.Tracker.DebounceMs)
	}
	if cfg.Tracker.MinLength != 12 {
		t.Errorf("MinLength = %d, want 12", cfg.Tracker.MinLength)
	}
	// Unset values fall back to defaults
	if cfg.Tracker.RequestsPerMinute != 30 {
		t.Errorf("RequestsPerMinute = %d, want default 30", cfg.Tracker.RequestsPerMinute)
	}
}

// TestConfig_LoadFromPath_RejectsInvalid tests that an out-of-range value in
// the file fails validation instead of being silently carried.
func TestConfig_LoadFromPath_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := []byte(`
[tracker]
debounce_ms = 5
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() should reject debounce_ms below minimum")
	}
}

// TestConfig_SaveTOMLRoundTrip tests saving and reloading a config.
func TestConfig_SaveTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Tracker.DebounceMs = 900
	cfg.UI.Theme = "light"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Tracker.DebounceMs != 900 {
		t.Errorf("DebounceMs = %d, want 900", loaded.Tracker.DebounceMs)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Theme = %s, want light", loaded.UI.Theme)
	}
}
