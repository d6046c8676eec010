// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot completion command for ghostline.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: ask
// Short:   Fetch a single completion and print it
// Aliases: complete
//
// Examples:
//   ghostline ask "I am writing a letter to"   Complete the given text
//   ghostline ask --file draft.txt             Complete the contents of a file
//   cat draft.txt | ghostline ask -            Complete piped text
//   ghostline ask "..." --json                 Structured output
//
// The command applies the same validity gate the TUI uses: the text must
// be at least the configured minimum length and cannot be all digits or
// all punctuation. Text failing the gate produces a usage error rather
// than a server round trip.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/ghostline/internal/config"
	"github.com/jeranaias/ghostline/internal/suggest"
	"github.com/jeranaias/ghostline/internal/tracker"
	"github.com/jeranaias/ghostline/internal/util"
)

// HandleAsk handles the "ask" command.
func HandleAsk(args Args) error {
	text, err := resolveAskText(args)
	if err != nil {
		return err
	}

	cfg := config.Global()
	minLen := cfg.Tracker.MinLength
	if !tracker.Eligible(text, minLen) {
		return NewValidationErrorWithExample("text", util.TruncateRunes(text, 40),
			"text does not qualify for completion (too short, all digits, or all punctuation)",
			fmt.Sprintf("at least %d characters of prose", minLen))
	}

	client := newSuggestClient(cfg, args)

	ctx, cancel := context.WithTimeout(context.Background(), client.GetConfig().Timeout)
	defer cancel()

	start := time.Now()
	suggestion, err := client.GenerateSuggestion(ctx, text, nil)
	elapsed := time.Since(start)
	if err != nil {
		return NewCommandError("ask", "fetch", "suggestion request failed", err)
	}

	if args.JSON {
		resp := NewJSONResponse("ask", AskData{
			Text:       text,
			Suggestion: suggestion,
			DurationMs: elapsed.Milliseconds(),
		})
		return resp.Print()
	}

	if suggestion == "" {
		if !args.Quiet {
			fmt.Println(DimStyle.Render("(no suggestion)"))
		}
		return nil
	}

	if args.Verbose {
		fmt.Fprintf(os.Stderr, "fetched in %dms\n", elapsed.Milliseconds())
	}
	fmt.Println(suggestion)
	return nil
}

// resolveAskText determines the input text from query, file, or stdin.
func resolveAskText(args Args) (string, error) {
	switch {
	case args.File == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", NewCommandError("ask", "read", "could not read stdin", err)
		}
		return strings.TrimRight(string(data), "\n"), nil

	case args.File != "":
		data, err := os.ReadFile(args.File)
		if err != nil {
			if os.IsNotExist(err) {
				return "", NewNotFoundError("file", args.File)
			}
			return "", NewCommandError("ask", "read", "could not read file", err)
		}
		return strings.TrimRight(string(data), "\n"), nil

	case args.Query != "":
		return args.Query, nil

	default:
		return "", ErrMissingArgument("text", `ghostline ask "I am writing a letter to"`)
	}
}

// newSuggestClient builds a client from config plus CLI overrides.
func newSuggestClient(cfg *config.Config, args Args) *suggest.Client {
	clientCfg := &suggest.ClientConfig{
		BaseURL:    cfg.Server.URL,
		Timeout:    time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		MaxTextLen: cfg.Server.MaxTextLen,
	}
	if args.Server != "" {
		clientCfg.BaseURL = args.Server
	}
	return suggest.NewClientWithConfig(clientCfg)
}
