// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements command-line parsing and the non-TUI commands
// for ghostline.
//
// The package owns:
//   - Argument parsing (Parse, ParseArgs, ArgParser)
//   - The ask, repl, status, config, stats, and doctor commands
//   - Shared styling, terminal detection, and JSON output for all commands
//   - Structured errors with category-specific exit codes
//
// The TUI itself lives in internal/ui/compose; main routes CmdTUI there.
package cli
