// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for ghostline.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.ghostline/config.toml
//   - ~/.ghostline/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/ghostline/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ghostline configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Suggestion server configuration
	Server ServerConfig `toml:"server" json:"server"`

	// Field tracker configuration
	Tracker TrackerConfig `toml:"tracker" json:"tracker"`

	// Overlay rendering configuration
	Overlay OverlayConfig `toml:"overlay" json:"overlay"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Telemetry configuration
	Telemetry TelemetryConfig `toml:"telemetry" json:"telemetry"`
}

// ServerConfig contains suggestion server configuration.
type ServerConfig struct {
	// URL is the base URL of the suggestion server
	URL string `toml:"url" json:"url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// MaxTextLen is the maximum number of runes of field text sent per request.
	// Longer text is truncated from the front; the tail matters for completion.
	MaxTextLen int `toml:"max_text_len" json:"max_text_len"`
}

// TrackerConfig contains field tracker configuration.
type TrackerConfig struct {
	// DebounceMs is the idle time in milliseconds before a suggestion is
	// requested after the last keystroke
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
	// MinLength is the minimum number of characters (after trimming) a field
	// must hold before suggestions are requested
	MinLength int `toml:"min_length" json:"min_length"`
	// RequestsPerMinute caps how many suggestion requests may be issued per
	// minute across all tracked fields (0 = use default)
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
}

// OverlayConfig contains ghost text rendering configuration.
type OverlayConfig struct {
	// GhostColorLight is the suggestion text color on light backgrounds
	GhostColorLight string `toml:"ghost_color_light" json:"ghost_color_light"`
	// GhostColorDark is the suggestion text color on dark backgrounds
	GhostColorDark string `toml:"ghost_color_dark" json:"ghost_color_dark"`
	// StyleCopyList names the text attributes copied from the field's own
	// style onto the ghost text. Valid entries: bold, italic, underline,
	// strikethrough.
	StyleCopyList []string `toml:"style_copy_list" json:"style_copy_list"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowStatusBar displays the status bar with field state and counters
	ShowStatusBar bool `toml:"show_status_bar" json:"show_status_bar"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// TelemetryConfig contains local usage counter configuration. Counters never
// leave the machine.
type TelemetryConfig struct {
	// Enabled controls whether usage counters are recorded
	Enabled bool `toml:"enabled" json:"enabled"`
	// DBPath is the path to the counter database (empty = ~/.ghostline/telemetry.db)
	DBPath string `toml:"db_path" json:"db_path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Server: ServerConfig{
			URL:         "http://127.0.0.1:8391",
			TimeoutSecs: 10,
			MaxTextLen:  2048,
		},

		Tracker: TrackerConfig{
			DebounceMs:        1500,
			MinLength:         10,
			RequestsPerMinute: 30,
		},

		Overlay: OverlayConfig{
			GhostColorLight: "#9CA3AF",
			GhostColorDark:  "#585B70",
			StyleCopyList:   []string{"bold", "italic", "underline", "strikethrough"},
		},

		UI: UIConfig{
			Theme:         "auto",
			ShowStatusBar: true,
			CompactMode:   false,
		},

		Telemetry: TelemetryConfig{
			Enabled: true,
			DBPath:  "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ghostline configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ghostline"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Defaults, with any load error carried for informational purposes
	cfg2, err := finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg2, loadErr
}

// finishLoad applies env overrides, defaults, and validation to a loaded config.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	if cfg.Server.URL == "" {
		cfg.Server.URL = defaults.Server.URL
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if cfg.Server.MaxTextLen == 0 {
		cfg.Server.MaxTextLen = defaults.Server.MaxTextLen
	}

	if cfg.Tracker.DebounceMs == 0 {
		cfg.Tracker.DebounceMs = defaults.Tracker.DebounceMs
	}
	if cfg.Tracker.MinLength == 0 {
		cfg.Tracker.MinLength = defaults.Tracker.MinLength
	}
	if cfg.Tracker.RequestsPerMinute == 0 {
		cfg.Tracker.RequestsPerMinute = defaults.Tracker.RequestsPerMinute
	}

	if cfg.Overlay.GhostColorLight == "" {
		cfg.Overlay.GhostColorLight = defaults.Overlay.GhostColorLight
	}
	if cfg.Overlay.GhostColorDark == "" {
		cfg.Overlay.GhostColorDark = defaults.Overlay.GhostColorDark
	}
	if cfg.Overlay.StyleCopyList == nil {
		cfg.Overlay.StyleCopyList = append([]string(nil), defaults.Overlay.StyleCopyList...)
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// SetDefaults fills zero values after load. Alias kept separate from
// fillDefaults so callers loading a bare struct can invoke it directly.
func (c *Config) SetDefaults() {
	fillDefaults(c)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	fmt.Fprintln(file, "# ghostline configuration file")
	fmt.Fprintln(file, "# Generated by ghostline - edit with care")
	fmt.Fprintln(file, "#")
	fmt.Fprintln(file, "# Documentation: https://github.com/jeranaias/ghostline")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// validStyleAttrs are the text attributes the overlay knows how to copy.
var validStyleAttrs = map[string]bool{
	"bold": true, "italic": true, "underline": true, "strikethrough": true,
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Server URL must parse and carry a scheme
	if c.Server.URL != "" {
		u, err := url.Parse(c.Server.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "server.url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Server.URL),
			})
		}
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 120 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: fmt.Sprintf("must be 1-120, got %d", c.Server.TimeoutSecs),
		})
	}

	if c.Server.MaxTextLen < 64 {
		errs = append(errs, ValidationError{
			Field:   "server.max_text_len",
			Message: fmt.Sprintf("must be at least 64, got %d", c.Server.MaxTextLen),
		})
	}

	// A debounce below 100ms hammers the server on every keystroke; above a
	// minute the suggestion never feels connected to the typing.
	if c.Tracker.DebounceMs < 100 || c.Tracker.DebounceMs > 60000 {
		errs = append(errs, ValidationError{
			Field:   "tracker.debounce_ms",
			Message: fmt.Sprintf("must be 100-60000, got %d", c.Tracker.DebounceMs),
		})
	}

	if c.Tracker.MinLength < 1 || c.Tracker.MinLength > 200 {
		errs = append(errs, ValidationError{
			Field:   "tracker.min_length",
			Message: fmt.Sprintf("must be 1-200, got %d", c.Tracker.MinLength),
		})
	}

	if c.Tracker.RequestsPerMinute < 1 || c.Tracker.RequestsPerMinute > 600 {
		errs = append(errs, ValidationError{
			Field:   "tracker.requests_per_minute",
			Message: fmt.Sprintf("must be 1-600, got %d", c.Tracker.RequestsPerMinute),
		})
	}

	for _, attr := range c.Overlay.StyleCopyList {
		if !validStyleAttrs[strings.ToLower(attr)] {
			errs = append(errs, ValidationError{
				Field:   "overlay.style_copy_list",
				Message: fmt.Sprintf("unknown attribute '%s', must be one of: bold, italic, underline, strikethrough", attr),
			})
		}
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - GHOSTLINE_SERVER_URL: overrides server.url
//   - GHOSTLINE_DEBOUNCE_MS: overrides tracker.debounce_ms
//   - GHOSTLINE_MIN_LENGTH: overrides tracker.min_length
//   - GHOSTLINE_THEME: overrides ui.theme
//   - GHOSTLINE_TELEMETRY: set to "0" or "false" to disable telemetry
//   - GHOSTLINE_TELEMETRY_DB: overrides telemetry.db_path
func (c *Config) ApplyEnvOverrides() {
	if serverURL := os.Getenv("GHOSTLINE_SERVER_URL"); serverURL != "" {
		c.Server.URL = serverURL
	}

	if ms := os.Getenv("GHOSTLINE_DEBOUNCE_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			c.Tracker.DebounceMs = v
		}
	}

	if n := os.Getenv("GHOSTLINE_MIN_LENGTH"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			c.Tracker.MinLength = v
		}
	}

	if theme := os.Getenv("GHOSTLINE_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if tel := os.Getenv("GHOSTLINE_TELEMETRY"); tel != "" {
		c.Telemetry.Enabled = !(tel == "0" || strings.ToLower(tel) == "false")
	}

	if db := os.Getenv("GHOSTLINE_TELEMETRY_DB"); db != "" {
		c.Telemetry.DBPath = db
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "tracker.debounce_ms").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, return the value
		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "tracker.debounce_ms").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, set the value
		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	// Handle string input with type conversion
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	// Direct assignment for matching types
	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	// Type conversion for compatible types
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"server.url",
		"server.timeout_secs",
		"server.max_text_len",
		"tracker.debounce_ms",
		"tracker.min_length",
		"tracker.requests_per_minute",
		"overlay.ghost_color_light",
		"overlay.ghost_color_dark",
		"overlay.style_copy_list",
		"ui.theme",
		"ui.show_status_bar",
		"ui.compact_mode",
		"telemetry.enabled",
		"telemetry.db_path",
	}
}

// Merge merges another config into this one, overwriting only non-zero values.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Version != "" {
		c.Version = other.Version
	}

	if other.Server.URL != "" {
		c.Server.URL = other.Server.URL
	}
	if other.Server.TimeoutSecs != 0 {
		c.Server.TimeoutSecs = other.Server.TimeoutSecs
	}
	if other.Server.MaxTextLen != 0 {
		c.Server.MaxTextLen = other.Server.MaxTextLen
	}

	if other.Tracker.DebounceMs != 0 {
		c.Tracker.DebounceMs = other.Tracker.DebounceMs
	}
	if other.Tracker.MinLength != 0 {
		c.Tracker.MinLength = other.Tracker.MinLength
	}
	if other.Tracker.RequestsPerMinute != 0 {
		c.Tracker.RequestsPerMinute = other.Tracker.RequestsPerMinute
	}

	if other.Overlay.GhostColorLight != "" {
		c.Overlay.GhostColorLight = other.Overlay.GhostColorLight
	}
	if other.Overlay.GhostColorDark != "" {
		c.Overlay.GhostColorDark = other.Overlay.GhostColorDark
	}
	if other.Overlay.StyleCopyList != nil {
		c.Overlay.StyleCopyList = append([]string(nil), other.Overlay.StyleCopyList...)
	}

	if other.UI.Theme != "" {
		c.UI.Theme = other.UI.Theme
	}
	if other.UI.ShowStatusBar {
		c.UI.ShowStatusBar = true
	}
	if other.UI.CompactMode {
		c.UI.CompactMode = true
	}

	if other.Telemetry.Enabled {
		c.Telemetry.Enabled = true
	}
	if other.Telemetry.DBPath != "" {
		c.Telemetry.DBPath = other.Telemetry.DBPath
	}
}

// Clone creates a deep copy of the configuration. The StyleCopyList slice is
// copied so mutations on the clone never reach the original.
func (c *Config) Clone() *Config {
	clone := *c

	if c.Overlay.StyleCopyList != nil {
		clone.Overlay.StyleCopyList = append([]string(nil), c.Overlay.StyleCopyList...)
	}

	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
