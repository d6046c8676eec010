// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - bridging tracker events into the Bubble Tea message loop.

package compose

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ghostline/internal/tracker"
)

// trackerEventMsg carries one tracker event into Update. Events originate on
// the tracker's timer and fetch goroutines; the channel hop serializes them
// with keystrokes.
type trackerEventMsg struct {
	ev tracker.Event
}

// waitForEvent blocks on the event channel and delivers the next tracker
// event. Re-issued after every delivery so the pump never stalls.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return trackerEventMsg{ev: <-m.events}
	}
}
