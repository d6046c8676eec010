// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the ghostline TUI.

This package defines the color palette and themed component styles used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for the header and focused field labels
  - Cyan - Brand color for shortcut keys and info
  - Emerald - Success states, suggestion available
  - Amber - Warnings and pending fetches
  - Rose - Errors and unreachable server

## Ghost Text

The Ghost color renders the inline suggestion: dim enough to read as
"not yet typed" but legible on both light and dark backgrounds.

# Theme (theme.go)

Theme bundles every lipgloss style the UI needs, built once at startup
after detecting the terminal's color profile and background. ApplyBackground
forces the light or dark palette when the config overrides detection.

# Accessibility

Status messages pair color with ASCII shape indicators ([OK], [X], [!])
so states remain distinguishable without color perception.
*/
package styles
