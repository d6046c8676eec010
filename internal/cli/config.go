// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for ghostline.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: config
// Short:   Show and modify configuration
// Aliases: cfg
//
// Examples:
//   ghostline config show                      Show current configuration
//   ghostline config get tracker.debounce_ms  Print one value
//   ghostline config set ui.theme light       Set a value and save
//   ghostline config list                     List all keys
//   ghostline config path                     Print the config file path
package cli

import (
	"fmt"

	"github.com/jeranaias/ghostline/internal/config"
)

// HandleConfig handles the "config" command and its subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args)
	case "get":
		return handleConfigGet(args)
	case "set":
		return handleConfigSet(args)
	case "list", "keys":
		return handleConfigList(args)
	case "path":
		return handleConfigPath(args)
	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"unknown config subcommand",
			"ghostline config [show|get|set|list|path]")
	}
}

// handleConfigShow displays the full configuration.
func handleConfigShow(args Args) error {
	cfg := config.Global()

	if args.JSON {
		return NewJSONResponse("config", cfg).Print()
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("ghostline Configuration"))
	fmt.Println(RenderSeparator(41))

	fmt.Println(SectionStyle.Render("Server"))
	printConfigValue("url", cfg.Server.URL)
	printConfigValue("timeout_secs", fmt.Sprintf("%d", cfg.Server.TimeoutSecs))
	printConfigValue("max_text_len", fmt.Sprintf("%d", cfg.Server.MaxTextLen))

	fmt.Println(SectionStyle.Render("Tracker"))
	printConfigValue("debounce_ms", fmt.Sprintf("%d", cfg.Tracker.DebounceMs))
	printConfigValue("min_length", fmt.Sprintf("%d", cfg.Tracker.MinLength))
	printConfigValue("requests_per_minute", fmt.Sprintf("%d", cfg.Tracker.RequestsPerMinute))

	fmt.Println(SectionStyle.Render("Overlay"))
	printConfigValue("ghost_color_light", cfg.Overlay.GhostColorLight)
	printConfigValue("ghost_color_dark", cfg.Overlay.GhostColorDark)
	printConfigValue("style_copy_list", fmt.Sprintf("%v", cfg.Overlay.StyleCopyList))

	fmt.Println(SectionStyle.Render("UI"))
	printConfigValue("theme", cfg.UI.Theme)
	printConfigValue("show_status_bar", fmt.Sprintf("%t", cfg.UI.ShowStatusBar))
	printConfigValue("compact_mode", fmt.Sprintf("%t", cfg.UI.CompactMode))

	fmt.Println(SectionStyle.Render("Telemetry"))
	printConfigValue("enabled", fmt.Sprintf("%t", cfg.Telemetry.Enabled))
	if cfg.Telemetry.DBPath != "" {
		printConfigValue("db_path", cfg.Telemetry.DBPath)
	}

	if path, err := config.ConfigPathTOML(); err == nil {
		fmt.Println()
		fmt.Printf("%s %s\n", RenderLabel("Config file", 14), DimStyle.Render(path))
	}
	fmt.Println()

	return nil
}

func printConfigValue(key, value string) {
	fmt.Printf("  %s %s\n", RenderLabel(key), ValueStyle.Render(value))
}

// handleConfigGet prints a single configuration value by dot-notation key.
func handleConfigGet(args Args) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "ghostline config get tracker.debounce_ms")
	}

	cfg := config.Global()
	value, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return NewNotFoundError("config key", args.ConfigKey)
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]interface{}{args.ConfigKey: value}).Print()
	}

	fmt.Printf("%v\n", value)
	return nil
}

// handleConfigSet sets a configuration value and saves the file.
func handleConfigSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key and value", "ghostline config set ui.theme light")
	}

	cfg := config.Global().Clone()
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewCommandError("config", "set", "could not set value", err)
	}

	// Reject a value that would leave the file invalid
	if err := cfg.Validate(); err != nil {
		return NewCommandError("config", "set", "resulting configuration is invalid", err)
	}

	if err := config.Save(cfg); err != nil {
		return NewCommandError("config", "set", "could not save configuration", err)
	}
	config.SetGlobal(cfg)

	if !args.Quiet {
		fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), args.ConfigKey, args.ConfigVal)
	}
	return nil
}

// handleConfigList lists all configuration keys with their current values.
func handleConfigList(args Args) error {
	cfg := config.Global()
	keys := config.GetAllKeys()

	if args.JSON {
		values := make(map[string]interface{}, len(keys))
		for _, key := range keys {
			if v, err := cfg.Get(key); err == nil {
				values[key] = v
			}
		}
		return NewJSONResponse("config", values).Print()
	}

	for _, key := range keys {
		v, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s = %v\n", key, v)
	}
	return nil
}

// handleConfigPath prints the path of the active config file.
func handleConfigPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config", "path", "could not determine config path", err)
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]string{"path": path}).Print()
	}

	fmt.Println(path)
	return nil
}
