// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for ghostline.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: status
// Short:   Display server and session status
// Aliases: s
//
// Examples:
//   ghostline status                 Show system status
//   ghostline s                      Show status (short alias)
//   ghostline status --json          Status in JSON format
//
// Status Sections:
//   Server:    Suggestion server URL and reachability
//   Tracker:   Debounce, minimum length, rate limit
//   Usage:     Lifetime counters (requests, served, accepted, ...)
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/ghostline/internal/config"
	"github.com/jeranaias/ghostline/internal/telemetry"
)

// HandleStatus handles the "status" command.
// Displays suggestion server reachability, tracker settings, and usage totals.
func HandleStatus(args Args) error {
	cfg := config.Global()
	client := newSuggestClient(cfg, args)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	reachErr := client.CheckReachable(ctx)

	usage := loadUsageTotals(cfg)

	if args.JSON {
		data := StatusData{
			Server: StatusServerInfo{
				URL:         client.GetConfig().BaseURL,
				Reachable:   reachErr == nil,
				TimeoutSecs: cfg.Server.TimeoutSecs,
			},
			Tracker: StatusTrackerInfo{
				DebounceMs:        cfg.Tracker.DebounceMs,
				MinLength:         cfg.Tracker.MinLength,
				RequestsPerMinute: cfg.Tracker.RequestsPerMinute,
			},
			Usage: usage,
		}
		if reachErr != nil {
			data.Server.Error = reachErr.Error()
		}
		return NewJSONResponse("status", data).Print()
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("ghostline Status"))
	fmt.Println(RenderSeparator(41))
	fmt.Println()

	fmt.Println(SectionStyle.Render("Server"))
	fmt.Printf("%s %s\n", RenderLabel("URL", 14), ValueStyle.Render(client.GetConfig().BaseURL))
	if reachErr == nil {
		fmt.Printf("%s %s\n", RenderLabel("Reachable", 14), RenderStatus("up"))
	} else {
		fmt.Printf("%s %s %s\n", RenderLabel("Reachable", 14), RenderStatus("down"),
			DimStyle.Render(reachErr.Error()))
	}
	fmt.Printf("%s %s\n", RenderLabel("Timeout", 14),
		ValueStyle.Render(fmt.Sprintf("%ds", cfg.Server.TimeoutSecs)))
	fmt.Println()

	fmt.Println(SectionStyle.Render("Tracker"))
	fmt.Printf("%s %s\n", RenderLabel("Debounce", 14),
		ValueStyle.Render(fmt.Sprintf("%dms", cfg.Tracker.DebounceMs)))
	fmt.Printf("%s %s\n", RenderLabel("Min length", 14),
		ValueStyle.Render(fmt.Sprintf("%d chars", cfg.Tracker.MinLength)))
	fmt.Printf("%s %s\n", RenderLabel("Rate limit", 14),
		ValueStyle.Render(fmt.Sprintf("%d req/min", cfg.Tracker.RequestsPerMinute)))
	fmt.Println()

	if usage != nil {
		fmt.Println(SectionStyle.Render("Usage (all time)"))
		for _, name := range telemetry.AllCounters {
			fmt.Printf("%s %s\n", RenderLabel(name, 14),
				ValueStyle.Render(fmt.Sprintf("%d", usage[name])))
		}
		fmt.Println()
	}

	return nil
}

// loadUsageTotals reads lifetime counters, returning nil when telemetry is
// disabled or the database cannot be opened.
func loadUsageTotals(cfg *config.Config) map[string]int64 {
	if !cfg.Telemetry.Enabled {
		return nil
	}

	path := cfg.Telemetry.DBPath
	if path == "" {
		var err error
		path, err = telemetry.DefaultPath()
		if err != nil {
			return nil
		}
	}

	store, err := telemetry.Open(path)
	if err != nil {
		return nil
	}
	defer store.Close()

	totals, err := store.Totals()
	if err != nil {
		return nil
	}
	return totals
}
