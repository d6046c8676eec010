// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for ghostline.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdRepl
	CmdStatus
	CmdConfig
	CmdStats
	CmdDoctor
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	Server  string

	// Command-specific
	Query      string
	File       string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --days, --confirm)
	Options map[string]string
}

const usageText = `ghostline - inline completion for terminal forms

Ghostline tracks text fields in its TUI and shows dimmed ghost-text
completions fetched from a local suggestion server.

It provides:
  - A note composer TUI with inline suggestions
  - Tab to accept, Ctrl+Z to restore the text before the accept
  - Debounced, rate-limited suggestion fetching
  - Local-only usage counters (nothing leaves the machine)

Usage:
  ghostline                    Start TUI (default)
  ghostline ask "text"         Fetch one completion and print it
  ghostline repl               Interactive suggestion prompt
  ghostline status, s          Show server and session status
  ghostline config [show|get|set|list|path]
                               Configuration management
  ghostline stats [show|reset] Usage counter management
  ghostline doctor [--fix]     System diagnostics
  ghostline version            Show version
  ghostline help               Show this help

Ask Command:
  ghostline ask "I am writing a letter to"   Complete the given text
  ghostline ask --file draft.txt             Complete the contents of a file
  ghostline ask -                            Complete text read from stdin
    --json                                   Output in JSON format

Config Commands:
  ghostline config show              Show current configuration
  ghostline config get KEY           Print one value (dot notation)
  ghostline config set KEY VALUE     Set a value and save
  ghostline config list              List all configuration keys
  ghostline config path              Print the config file path

  Keys use dot notation, e.g. tracker.debounce_ms, server.url,
  overlay.style_copy_list, ui.theme, telemetry.enabled

Stats Commands:
  ghostline stats                    Show usage counters (today / 7 days / all)
  ghostline stats --days N           Restrict totals to the last N days
  ghostline stats reset --confirm    Delete all recorded counters

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --server URL    Override the suggestion server URL
  --json          Output in JSON format

Examples:
  ghostline                                   Start the note composer
  ghostline ask "The meeting is scheduled"    One-shot completion
  cat draft.txt | ghostline ask -             Complete piped text
  ghostline config set tracker.debounce_ms 800
  ghostline config set ui.theme light
  ghostline status --json                     Machine-readable status
  ghostline doctor --fix                      Diagnose and write defaults

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("ghostline version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments and returns the command and args.
func ParseArgs(args []string) (Command, Args) {
	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	// Check first argument for command
	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask", "complete":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "repl", "prompt":
		return CmdRepl, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config", "cfg":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "stats", "usage":
		parseStatsArgs(&parsedArgs, remaining)
		return CmdStats, parsedArgs

	case "doctor":
		parseDoctorArgs(&parsedArgs, remaining)
		return CmdDoctor, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command. Suggest a correction when the input looks like a
		// typo, otherwise treat the whole line as an ask query.
		if suggestion := SuggestCommand(cmd); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Unknown command %q. Did you mean %q?\n", cmd, suggestion)
			return CmdHelp, parsedArgs
		}
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		parseAskArgs(&parsedArgs, parsedArgs.Raw)
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.Server = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--server=") {
				parsedArgs.Server = strings.TrimPrefix(arg, "--server=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-f", "--file":
			if i+1 < len(remaining) {
				i++
				args.File = remaining[i]
			}
		case "-":
			// Read the text from stdin
			args.File = "-"
		default:
			if strings.HasPrefix(arg, "--file=") {
				args.File = strings.TrimPrefix(arg, "--file=")
			} else if !strings.HasPrefix(arg, "-") {
				query = append(query, arg)
			}
		}
		i++
	}

	args.Query = strings.Join(query, " ")
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// parseStatsArgs parses stats command specific arguments.
func parseStatsArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	args.Subcommand = parser.Subcommand()
	if days := parser.Flag("days"); days != "" {
		args.Options["days"] = days
	}
	if parser.BoolFlag("confirm") {
		args.Options["confirm"] = "true"
	}
}

// parseDoctorArgs parses doctor command specific arguments.
func parseDoctorArgs(args *Args, remaining []string) {
	for _, arg := range remaining {
		if arg == "--fix" {
			args.Subcommand = "fix"
		}
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// ERROR HANDLING: Errors must not be silently ignored

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		resp := NewJSONResponse("version", data)
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
