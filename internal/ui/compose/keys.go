// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose provides the note composer view for the TUI.
//
// This file defines keyboard bindings for the composer. Tab doubles as
// suggestion accept and field navigation, so the help text spells out the
// precedence.
package compose

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the composer.
type KeyMap struct {
	Accept    key.Binding
	Undo      key.Binding
	Dismiss   key.Binding
	Trigger   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings for the composer.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "accept suggestion / next field"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("C-z", "undo accept"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss suggestion"),
		),
		Trigger: key.NewBinding(
			key.WithKeys("ctrl+@", "ctrl+space"),
			key.WithHelp("C-Space", "request suggestion now"),
		),
		NextField: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("Down", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab/Up", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save note"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h", "f1"),
			key.WithHelp("C-h/F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
