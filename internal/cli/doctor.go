// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - System diagnostics command for ghostline.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: doctor
// Short:   Run health checks on the local setup
//
// Examples:
//   ghostline doctor                 Run all health checks
//   ghostline doctor --fix           Attempt automatic fixes
//   ghostline doctor --json          Structured output
//
// Checks:
//   config      Config file exists and validates
//   server      Suggestion server answers at its base URL
//   telemetry   Counter database opens and accepts writes
//   terminal    Stdin/stdout are terminals (TUI requires both)
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/ghostline/internal/config"
	"github.com/jeranaias/ghostline/internal/telemetry"
)

// HandleDoctor handles the "doctor" command.
func HandleDoctor(args Args) error {
	fix := args.Subcommand == "fix"

	checks := []DoctorCheck{
		checkConfig(fix),
		checkServer(args),
		checkTelemetry(),
		checkTerminal(),
	}

	summary := DoctorSummary{}
	for _, c := range checks {
		switch c.Status {
		case "pass":
			summary.Passed++
		case "warn":
			summary.Warned++
		case "fail":
			summary.Failed++
		}
	}
	summary.Healthy = summary.Failed == 0

	if args.JSON {
		return NewJSONResponse("doctor", DoctorData{Checks: checks, Summary: summary}).Print()
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("ghostline Doctor"))
	fmt.Println(RenderSeparator(41))
	for _, c := range checks {
		fmt.Printf("%s %s %s\n", RenderStatus(c.Status), RenderLabel(c.Name, 12), c.Message)
		if c.Fix != "" && c.Status != "pass" {
			fmt.Printf("       %s %s\n", DimStyle.Render("fix:"), DimStyle.Render(c.Fix))
		}
	}
	fmt.Println()

	if !summary.Healthy {
		return NewCommandError("doctor", "check",
			fmt.Sprintf("%d check(s) failed", summary.Failed), nil)
	}
	if !args.Quiet {
		fmt.Printf("%s all checks passed\n\n", SuccessStyle.Render("[OK]"))
	}
	return nil
}

// checkConfig verifies the config file loads and validates. With fix enabled
// a missing file is created with defaults.
func checkConfig(fix bool) DoctorCheck {
	check := DoctorCheck{Name: "config"}

	path, err := config.ConfigPathTOML()
	if err != nil {
		check.Status = "fail"
		check.Message = "cannot determine config directory: " + err.Error()
		return check
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if fix {
			if err := config.Save(config.Default()); err != nil {
				check.Status = "fail"
				check.Message = "could not write default config: " + err.Error()
				return check
			}
			check.Status = "pass"
			check.Message = "default config written to " + path
			return check
		}
		check.Status = "warn"
		check.Message = "no config file (defaults in effect)"
		check.Fix = "ghostline doctor --fix"
		return check
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		check.Status = "fail"
		check.Message = "config invalid: " + err.Error()
		check.Fix = "edit " + path + " or delete it to fall back to defaults"
		return check
	}
	_ = cfg

	check.Status = "pass"
	check.Message = path
	return check
}

// checkServer verifies the suggestion server answers.
func checkServer(args Args) DoctorCheck {
	check := DoctorCheck{Name: "server"}

	cfg := config.Global()
	client := newSuggestClient(cfg, args)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.CheckReachable(ctx); err != nil {
		check.Status = "fail"
		check.Message = client.GetConfig().BaseURL + " not reachable"
		check.Fix = "start the suggestion server or update server.url"
		return check
	}

	check.Status = "pass"
	check.Message = client.GetConfig().BaseURL
	return check
}

// checkTelemetry verifies the counter database opens and accepts a write.
func checkTelemetry() DoctorCheck {
	check := DoctorCheck{Name: "telemetry"}

	cfg := config.Global()
	if !cfg.Telemetry.Enabled {
		check.Status = "pass"
		check.Message = "disabled"
		return check
	}

	path := cfg.Telemetry.DBPath
	if path == "" {
		var err error
		path, err = telemetry.DefaultPath()
		if err != nil {
			check.Status = "fail"
			check.Message = "cannot determine database path: " + err.Error()
			return check
		}
	}

	store, err := telemetry.Open(path)
	if err != nil {
		check.Status = "fail"
		check.Message = "cannot open " + path + ": " + err.Error()
		check.Fix = "check permissions on the directory, or set telemetry.db_path"
		return check
	}
	defer store.Close()

	// A zero-delta flush exercises the write path without recording anything
	if err := store.Flush(telemetry.Counts{}); err != nil {
		check.Status = "fail"
		check.Message = "database not writable: " + err.Error()
		return check
	}

	check.Status = "pass"
	check.Message = path
	return check
}

// checkTerminal verifies the process has a usable terminal for the TUI.
func checkTerminal() DoctorCheck {
	check := DoctorCheck{Name: "terminal"}

	if !IsTTY() || !IsStdoutTTY() {
		check.Status = "warn"
		check.Message = "stdin or stdout is not a terminal; the TUI will not start"
		return check
	}

	w, h := GetTerminalSize()
	check.Status = "pass"
	check.Message = fmt.Sprintf("%dx%d", w, h)
	return check
}
