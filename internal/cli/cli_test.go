// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"
)

// =============================================================================
// COMMAND PARSING
// =============================================================================

func TestParseArgs_DefaultsToTUI(t *testing.T) {
	cmd, _ := ParseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("no args should start the TUI, got %v", cmd)
	}
}

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"tui", []string{"tui"}, CmdTUI},
		{"ask", []string{"ask", "hello"}, CmdAsk},
		{"complete alias", []string{"complete", "hello"}, CmdAsk},
		{"repl", []string{"repl"}, CmdRepl},
		{"prompt alias", []string{"prompt"}, CmdRepl},
		{"status", []string{"status"}, CmdStatus},
		{"status short", []string{"s"}, CmdStatus},
		{"config", []string{"config", "show"}, CmdConfig},
		{"cfg alias", []string{"cfg", "list"}, CmdConfig},
		{"stats", []string{"stats"}, CmdStats},
		{"usage alias", []string{"usage"}, CmdStats},
		{"doctor", []string{"doctor"}, CmdDoctor},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.args)
			if cmd != tt.want {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.args, cmd, tt.want)
			}
		})
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--json", "-q", "--server", "http://10.0.0.2:8391", "status"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.JSON || !args.Quiet {
		t.Errorf("global flags not parsed: %+v", args)
	}
	if args.Server != "http://10.0.0.2:8391" {
		t.Errorf("server = %q", args.Server)
	}
}

func TestParseArgs_ServerEqualsForm(t *testing.T) {
	_, args := ParseArgs([]string{"--server=http://example:80", "status"})
	if args.Server != "http://example:80" {
		t.Errorf("server = %q", args.Server)
	}
}

func TestParseArgs_AskQueryJoined(t *testing.T) {
	cmd, args := ParseArgs([]string{"ask", "I", "am", "writing", "a", "letter"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Query != "I am writing a letter" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseArgs_AskFileAndStdin(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "--file", "draft.txt"})
	if args.File != "draft.txt" {
		t.Errorf("file = %q", args.File)
	}

	_, args = ParseArgs([]string{"ask", "--file=draft.txt"})
	if args.File != "draft.txt" {
		t.Errorf("file (equals form) = %q", args.File)
	}

	_, args = ParseArgs([]string{"ask", "-"})
	if args.File != "-" {
		t.Errorf("stdin marker = %q", args.File)
	}
}

func TestParseArgs_ConfigSet(t *testing.T) {
	cmd, args := ParseArgs([]string{"config", "set", "ui.theme", "light"})
	if cmd != CmdConfig {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "light" {
		t.Errorf("config args = %+v", args)
	}
}

func TestParseArgs_StatsFlags(t *testing.T) {
	_, args := ParseArgs([]string{"stats", "reset", "--confirm"})
	if args.Subcommand != "reset" {
		t.Errorf("subcommand = %q", args.Subcommand)
	}
	if args.Options["confirm"] != "true" {
		t.Errorf("confirm option missing: %v", args.Options)
	}

	_, args = ParseArgs([]string{"stats", "--days", "30"})
	if args.Options["days"] != "30" {
		t.Errorf("days option = %q", args.Options["days"])
	}
}

func TestParseArgs_DoctorFix(t *testing.T) {
	_, args := ParseArgs([]string{"doctor", "--fix"})
	if args.Subcommand != "fix" {
		t.Errorf("subcommand = %q, want fix", args.Subcommand)
	}
}

func TestParseArgs_BareTextBecomesAsk(t *testing.T) {
	// A line of prose with no command prefix is treated as an ask query
	cmd, args := ParseArgs([]string{"writing", "to", "confirm", "our", "meeting"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.Query != "writing to confirm our meeting" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseArgs_TypoSuggestsCommand(t *testing.T) {
	// "statu" is one edit from "status"; the parser should not guess a query
	cmd, _ := ParseArgs([]string{"statu"})
	if cmd != CmdHelp {
		t.Errorf("typo should fall back to help, got %v", cmd)
	}
}

// =============================================================================
// COMMAND SUGGESTION
// =============================================================================

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"statu", "status"},
		{"repk", "repl"},
		{"confg", "config"},
		{"dokter", "doctor"},
		{"versoin", "version"},
		{"x", ""},            // too short
		{"zzzzzzzzzzzz", ""}, // no match
	}

	for _, tt := range tests {
		if got := SuggestCommand(tt.input); got != tt.want {
			t.Errorf("SuggestCommand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"status", "status", 0},
		{"statu", "status", 1},
		{"hepl", "help", 2},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParser_Formats(t *testing.T) {
	parser := NewArgParser([]string{"reset", "--days", "7", "--confirm", "--format=json"})

	if parser.Subcommand() != "reset" {
		t.Errorf("subcommand = %q", parser.Subcommand())
	}
	if parser.Flag("days") != "7" {
		t.Errorf("days = %q", parser.Flag("days"))
	}
	if !parser.BoolFlag("confirm") {
		t.Error("confirm flag not detected")
	}
	if parser.Flag("format") != "json" {
		t.Errorf("format = %q", parser.Flag("format"))
	}
}

func TestArgParser_ExplicitBool(t *testing.T) {
	parser := NewArgParser([]string{"--confirm=false"})
	if parser.BoolFlag("confirm") {
		t.Error("explicit --confirm=false should be false")
	}
	if !parser.HasFlag("confirm") {
		t.Error("flag should still be present")
	}
}

func TestArgParser_FlagIntOrDefault(t *testing.T) {
	parser := NewArgParser([]string{"--days", "abc"})
	if got := parser.FlagIntOrDefault("days", 7); got != 7 {
		t.Errorf("invalid int should fall back to default, got %d", got)
	}

	parser = NewArgParser([]string{"--days", "30"})
	if got := parser.FlagIntOrDefault("days", 7); got != 30 {
		t.Errorf("days = %d, want 30", got)
	}
}

func TestArgParser_Positional(t *testing.T) {
	parser := NewArgParser([]string{"get", "ui.theme"})
	if parser.Positional(0) != "get" || parser.Positional(1) != "ui.theme" {
		t.Errorf("positionals wrong: %q %q", parser.Positional(0), parser.Positional(1))
	}
	if parser.Positional(5) != "" {
		t.Error("out-of-range positional should be empty")
	}
	if parser.PositionalCount() != 2 {
		t.Errorf("count = %d", parser.PositionalCount())
	}
}

// =============================================================================
// ERROR HANDLING
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("text", "123", "all digits"), ExitUsageError},
		{"not found", NewNotFoundError("file", "draft.txt"), ExitNotFoundError},
		{"config", errors.New("configuration is invalid"), ExitConfigError},
		{"timeout", errors.New("request timed out"), ExitTimeoutError},
		{"network", errors.New("completion API is not reachable"), ExitNetworkError},
		{"generic", errors.New("something broke"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetExitCode_WrappedValidation(t *testing.T) {
	err := WrapError(NewValidationError("key", "", "unknown key"), "set failed")
	if got := GetExitCode(err); got != ExitUsageError {
		t.Errorf("wrapped validation error should keep its exit code, got %d", got)
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("stats", "reset", "database error", inner)
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
}

// =============================================================================
// TEXT WRAPPING
// =============================================================================

func TestWrapText(t *testing.T) {
	text := "one two three four five six seven eight"
	wrapped := WrapText(text, 12)

	for i, line := range splitLines(wrapped) {
		if len(line) > 12 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
	}
}

func TestWrapText_PreservesNewlines(t *testing.T) {
	got := WrapText("a\nb", 80)
	if got != "a\nb" {
		t.Errorf("WrapText altered short lines: %q", got)
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
