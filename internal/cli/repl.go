// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive suggestion prompt for ghostline.
//
// CLI: Comprehensive help and examples for all commands
// USABILITY: Input history and line editing for better CLI experience
//
// Handles the "ghostline repl" command, a diagnostic loop for exercising
// the suggestion server without the TUI: type text, press Enter, see the
// completion the server would ghost in.
//
// Command: repl
// Short:   Interactive suggestion prompt
// Aliases: prompt
//
// Interactive Commands (during the session):
//   /help, /h     Show available commands
//   /server URL   Show or switch the server URL
//   /gate         Toggle the validity gate on or off
//   /quit, /q     Exit
//   Ctrl+C        Abort current input
//   Ctrl+D        Exit
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/ghostline/internal/config"
	"github.com/jeranaias/ghostline/internal/suggest"
	"github.com/jeranaias/ghostline/internal/tracker"
	"github.com/jeranaias/ghostline/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ReplCLI provides input history and line editing for the interactive prompt.
// USABILITY: Supports arrow keys for history navigation and line editing.
type ReplCLI struct {
	line        *liner.State
	historyFile string
}

// NewReplCLI creates a new ReplCLI with input history support.
func NewReplCLI() *ReplCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	// Get history file path in the config directory
	configDir, err := config.ConfigDir()
	if err != nil {
		// Fallback to temp directory if config dir unavailable
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "repl_history")

	cli := &ReplCLI{
		line:        line,
		historyFile: historyFile,
	}

	cli.LoadHistory()

	return cli
}

// LoadHistory loads input history from file.
func (c *ReplCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ReplCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists input history to file.
func (c *ReplCLI) SaveHistory() {
	var buf bytes.Buffer
	if _, err := c.line.WriteHistory(&buf); err != nil {
		return
	}
	// History can contain whatever the user typed; keep it private
	util.AtomicWriteFileWithDir(c.historyFile, buf.Bytes(), 0600, 0700)
}

// Close saves history and closes the liner.
func (c *ReplCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL SESSION
// =============================================================================

// replSession holds the state for an interactive prompt session.
type replSession struct {
	client   *suggest.Client
	cfg      *config.Config
	input    *ReplCLI
	gateOn   bool
	requests int
	served   int
}

// HandleRepl handles the "repl" command.
func HandleRepl(args Args) error {
	if err := RequiresTTY("run the suggestion prompt"); err != nil {
		return err
	}

	cfg := config.Global()
	session := &replSession{
		client: newSuggestClient(cfg, args),
		cfg:    cfg,
		input:  NewReplCLI(),
		gateOn: true,
	}
	defer session.input.Close()

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("ghostline suggestion prompt"))
		fmt.Println(DimStyle.Render("Type text and press Enter to fetch a completion. /help for commands."))
		fmt.Println()
	}

	for {
		input, err := session.input.ReadInput("> ")
		if err != nil {
			// liner returns ErrPromptAborted on Ctrl+C and io.EOF on Ctrl+D
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if session.handleCommand(input) {
				break
			}
			continue
		}

		session.fetch(input)
	}

	if !args.Quiet {
		fmt.Printf("\n%s %d requests, %d suggestions\n",
			DimStyle.Render("session:"), session.requests, session.served)
	}
	return nil
}

// handleCommand processes a slash command. Returns true to exit the loop.
func (s *replSession) handleCommand(input string) bool {
	fields := strings.Fields(input)
	cmd := fields[0]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println("  /server [URL]  show or switch the server URL")
		fmt.Println("  /gate          toggle the validity gate")
		fmt.Println("  /quit          exit")

	case "/server":
		if len(fields) > 1 {
			clientCfg := *s.client.GetConfig()
			clientCfg.BaseURL = fields[1]
			s.client = suggest.NewClientWithConfig(&clientCfg)
			fmt.Printf("server: %s\n", fields[1])
		} else {
			fmt.Printf("server: %s\n", s.client.GetConfig().BaseURL)
		}

	case "/gate":
		s.gateOn = !s.gateOn
		if s.gateOn {
			fmt.Println("validity gate: on")
		} else {
			fmt.Println("validity gate: off")
		}

	default:
		fmt.Printf("unknown command %s (try /help)\n", cmd)
	}

	return false
}

// fetch requests a completion for the given text and prints the result.
func (s *replSession) fetch(text string) {
	if s.gateOn && !tracker.Eligible(text, s.cfg.Tracker.MinLength) {
		fmt.Println(WarningStyle.Render("gated: too short, all digits, or all punctuation"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.client.GetConfig().Timeout)
	defer cancel()

	s.requests++
	start := time.Now()
	suggestion, err := s.client.GenerateSuggestion(ctx, text, nil)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		fmt.Printf("%s %v\n", ErrorStyle.Render("[ERROR]"), err)
	case suggestion == "":
		fmt.Println(DimStyle.Render("(no suggestion)"))
	default:
		s.served++
		fmt.Printf("%s%s  %s\n",
			ValueStyle.Render(text),
			DimStyle.Render(suggestion),
			DimStyle.Render(fmt.Sprintf("(%dms)", elapsed.Milliseconds())))
	}
}
