// ghostline - inline ghost-text completion for terminal forms.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ghostline/internal/cli"
	"github.com/jeranaias/ghostline/internal/config"
	"github.com/jeranaias/ghostline/internal/suggest"
	"github.com/jeranaias/ghostline/internal/telemetry"
	"github.com/jeranaias/ghostline/internal/ui/compose"
	"github.com/jeranaias/ghostline/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		exitOnError(cli.HandleAsk(args), args)
	case cli.CmdRepl:
		exitOnError(cli.HandleRepl(args), args)
	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(args), args)
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args), args)
	case cli.CmdStats:
		exitOnError(cli.HandleStats(args), args)
	case cli.CmdDoctor:
		exitOnError(cli.HandleDoctor(args), args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// exitOnError displays the error and exits with a category-specific code.
func exitOnError(err error, args cli.Args) {
	if err == nil {
		return
	}
	cli.HandleErrorAndExit(err, args.JSON)
}

// runTUI starts the note composer.
func runTUI(args cli.Args) {
	if err := cli.RequiresTTY("start the composer"); err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}

	cfg := config.Global()

	// Apply CLI overrides on a copy so a config reload does not revert them
	if args.Server != "" {
		cfg = cfg.Clone()
		cfg.Server.URL = args.Server
	}

	styles.ApplyBackground(cfg.UI.Theme)

	client := suggest.NewClientWithConfig(&suggest.ClientConfig{
		BaseURL:    cfg.Server.URL,
		Timeout:    time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		MaxTextLen: cfg.Server.MaxTextLen,
	})

	rec, store := openTelemetry(cfg)
	if store != nil {
		defer store.Close()
	}

	m := compose.New(cfg, client, rec)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Reload the live session when the config file changes on disk
	watcher, err := config.NewWatcher(0, func(updated *config.Config) {
		p.Send(compose.ConfigReloadedMsg{Cfg: updated})
	})
	if err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running ghostline: %v\n", err)
		os.Exit(1)
	}

	// Persist session counters before exiting
	if rec != nil && store != nil {
		if err := store.Flush(rec.Snapshot()); err != nil && args.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not save usage counters: %v\n", err)
		}
	}

	if done, ok := final.(*compose.Model); ok && done.Submitted() {
		printNote(done)
	}
}

// openTelemetry opens the counter store when telemetry is enabled. Returns a
// nil recorder when counters are disabled; recorder methods are no-ops on nil.
func openTelemetry(cfg *config.Config) (*telemetry.Recorder, *telemetry.Store) {
	if !cfg.Telemetry.Enabled {
		return nil, nil
	}

	path := cfg.Telemetry.DBPath
	if path == "" {
		var err error
		path, err = telemetry.DefaultPath()
		if err != nil {
			return nil, nil
		}
	}

	store, err := telemetry.Open(path)
	if err != nil {
		// Counters are best effort; the TUI works without them
		return nil, nil
	}
	return telemetry.NewRecorder(), store
}

// printNote prints the composed note to stdout after the TUI exits.
func printNote(m *compose.Model) {
	title, body, tags := m.Note()

	fmt.Println(title)
	if body != "" {
		fmt.Println()
		fmt.Println(body)
	}
	if len(tags) > 0 {
		fmt.Println()
		fmt.Printf("tags: %s\n", strings.Join(tags, ", "))
	}
}
