// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for ghostline.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Suggestion server endpoint and timeouts
//   - TrackerConfig: Debounce, eligibility, and rate limits
//   - OverlayConfig: Ghost text colors and style copy list
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (GHOSTLINE_*)
//   - ~/.ghostline/config.toml
//   - ~/.ghostline/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	debounce := cfg.Tracker.DebounceMs
//	server := cfg.Server.URL
package config
