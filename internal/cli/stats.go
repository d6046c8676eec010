// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stats.go - Usage counter command for ghostline.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: stats
// Short:   Show or reset local usage counters
// Aliases: usage
//
// Examples:
//   ghostline stats                  Show counters (today / 7 days / all time)
//   ghostline stats --days 30        Use a 30-day window
//   ghostline stats reset --confirm  Delete all recorded counters
//   ghostline stats --json           Structured output
//
// Counters are recorded locally in a SQLite database and never leave
// the machine.
package cli

import (
	"fmt"

	"github.com/jeranaias/ghostline/internal/config"
	"github.com/jeranaias/ghostline/internal/telemetry"
)

// HandleStats handles the "stats" command and its subcommands.
func HandleStats(args Args) error {
	cfg := config.Global()

	if !cfg.Telemetry.Enabled {
		if args.JSON {
			return NewJSONResponse("stats", map[string]bool{"enabled": false}).Print()
		}
		fmt.Println(DimStyle.Render("usage counters are disabled (telemetry.enabled = false)"))
		return nil
	}

	path := cfg.Telemetry.DBPath
	if path == "" {
		var err error
		path, err = telemetry.DefaultPath()
		if err != nil {
			return NewCommandError("stats", "open", "could not determine counter database path", err)
		}
	}

	store, err := telemetry.Open(path)
	if err != nil {
		return NewCommandError("stats", "open", "could not open counter database", err)
	}
	defer store.Close()

	switch args.Subcommand {
	case "reset":
		return handleStatsReset(args, store)
	case "", "show":
		return handleStatsShow(args, store, path)
	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"unknown stats subcommand", "ghostline stats [show|reset]")
	}
}

// handleStatsShow displays counter totals for today, a sliding window, and
// all time.
func handleStatsShow(args Args, store *telemetry.Store, path string) error {
	days := 7
	if d := args.Options["days"]; d != "" {
		parser := NewArgParser([]string{"--days", d})
		days = parser.FlagIntOrDefault("days", 7)
	}

	today, err := store.TotalsSince(1)
	if err != nil {
		return NewCommandError("stats", "show", "could not read counters", err)
	}
	window, err := store.TotalsSince(days)
	if err != nil {
		return NewCommandError("stats", "show", "could not read counters", err)
	}
	allTime, err := store.Totals()
	if err != nil {
		return NewCommandError("stats", "show", "could not read counters", err)
	}

	if args.JSON {
		return NewJSONResponse("stats", StatsData{
			Today:    today,
			Window:   window,
			AllTime:  allTime,
			Days:     days,
			Database: path,
		}).Print()
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("ghostline Usage"))
	fmt.Println(RenderSeparator(52))
	fmt.Printf("%-14s %10s %10s %10s\n", "", "today", fmt.Sprintf("%dd", days), "all time")
	for _, name := range telemetry.AllCounters {
		fmt.Printf("%-14s %10d %10d %10d\n", name, today[name], window[name], allTime[name])
	}
	fmt.Println()
	fmt.Printf("%s %s\n", DimStyle.Render("database:"), DimStyle.Render(path))
	fmt.Println()

	return nil
}

// handleStatsReset deletes all recorded counters. Requires --confirm.
func handleStatsReset(args Args, store *telemetry.Store) error {
	if args.Options["confirm"] != "true" {
		return NewValidationErrorWithExample("confirm", "",
			"resetting counters is destructive and requires confirmation",
			"ghostline stats reset --confirm")
	}

	if err := store.Reset(); err != nil {
		return NewCommandError("stats", "reset", "could not reset counters", err)
	}

	if args.JSON {
		return NewJSONResponse("stats", map[string]bool{"reset": true}).Print()
	}
	fmt.Printf("%s usage counters reset\n", SuccessStyle.Render("[OK]"))
	return nil
}
