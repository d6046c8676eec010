// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update.go - message handling for the composer.

package compose

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ghostline/internal/tracker"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.resizeWidgets()
		m.repositionGhosts()
		return m, nil

	case ConfigReloadedMsg:
		m.ApplyConfig(msg.Cfg)
		return m, nil

	case trackerEventMsg:
		m.handleTrackerEvent(msg.ev)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleTrackerEvent applies a tracker event to the overlay and counters.
func (m *Model) handleTrackerEvent(ev tracker.Event) {
	switch ev.Kind {
	case tracker.EventFetch:
		m.rec.Requested()

	case tracker.EventFail:
		m.rec.Failed()

	case tracker.EventShow:
		f, ok := m.fieldByID(ev.Field)
		if !ok {
			return
		}
		m.rec.Served()
		m.ghosts.Show(string(ev.Field), m.overlayField(f), m.theme.InputText, ev.Suggestion)

	case tracker.EventClear:
		m.ghosts.Remove(string(ev.Field))
	}
}

// handleKey routes a keystroke: bindings first, then the focused widget.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.fieldID(m.focused)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		if m.showHelp && m.helpText == "" {
			m.helpText = renderHelp(m.width)
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.submitted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Accept):
		// Tab accepts the visible suggestion; with none it moves focus.
		if merged, ok := m.registry.Accept(id); ok {
			m.setFieldValue(m.focused, merged)
			m.rec.Accepted()
			return m, nil
		}
		m.focusNext()
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if restored, ok := m.registry.Undo(id); ok {
			m.setFieldValue(m.focused, restored)
			m.rec.Undone()
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		// Esc drops the suggestion first; with nothing showing it quits.
		if m.registry.Suggestion(id) != "" || m.registry.State(id) == tracker.StatePending {
			m.registry.Dismiss(id)
			m.rec.Dismissed()
			return m, nil
		}
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Trigger):
		m.registry.Trigger(id)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		// Up stays inside a multi-line body.
		if m.focused == FieldBody && msg.String() == "up" {
			break
		}
		m.focusPrev()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		if m.focused == FieldBody {
			break
		}
		m.focusNext()
		return m, nil
	}

	if msg.String() == "enter" && m.focused != FieldBody {
		m.focusNext()
		return m, nil
	}

	return m, m.forwardToFocused(msg)
}

// forwardToFocused delivers the keystroke to the focused widget and feeds any
// resulting value change to the tracker.
func (m *Model) forwardToFocused(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	prev := m.lastValue(m.focused)
	switch m.focused {
	case FieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case FieldBody:
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	case FieldTags:
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	}

	value := m.fieldValue(m.focused)
	if value == prev {
		return cmd
	}
	m.setLastValue(m.focused, value)

	id := m.fieldID(m.focused)
	before := m.registry.Suggestion(id)
	m.registry.Input(id, value)
	after := m.registry.Suggestion(id)

	// A suggestion visible immediately after Input came from reconciliation
	// or the cache; real fetches land asynchronously.
	if after != "" {
		if typed, grew := strings.CutPrefix(value, prev); grew && typed != "" && strings.HasPrefix(before, typed) {
			m.rec.Reconciled()
		} else if before == "" {
			m.rec.CacheHit()
		}
	}

	return cmd
}

// lastValue returns the value last fed to the tracker for a field.
func (m *Model) lastValue(f Field) string {
	switch f {
	case FieldTitle:
		return m.lastTitle
	case FieldBody:
		return m.lastBody
	default:
		return m.lastTags
	}
}

func (m *Model) setLastValue(f Field, v string) {
	switch f {
	case FieldTitle:
		m.lastTitle = v
	case FieldBody:
		m.lastBody = v
	default:
		m.lastTags = v
	}
}

// =============================================================================
// FOCUS
// =============================================================================

func (m *Model) focusNext() {
	m.blurAll()
	m.focused = (m.focused + 1) % (FieldTags + 1)
	m.focusCurrent()
}

func (m *Model) focusPrev() {
	m.blurAll()
	m.focused = (m.focused - 1 + FieldTags + 1) % (FieldTags + 1)
	m.focusCurrent()
}

func (m *Model) blurAll() {
	m.titleInput.Blur()
	m.bodyInput.Blur()
	m.tagsInput.Blur()
}

func (m *Model) focusCurrent() {
	switch m.focused {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldBody:
		m.bodyInput.Focus()
	case FieldTags:
		m.tagsInput.Focus()
	}
}

// =============================================================================
// GEOMETRY
// =============================================================================

// resizeWidgets fits the field widgets to the window.
func (m *Model) resizeWidgets() {
	inner := m.width - 16
	if inner < 20 {
		inner = 20
	}
	m.titleInput.Width = inner
	m.tagsInput.Width = inner
	m.bodyInput.SetWidth(inner)
}

// repositionGhosts refreshes overlay geometry after a resize.
func (m *Model) repositionGhosts() {
	for _, f := range []Field{FieldTitle, FieldBody, FieldTags} {
		id := string(m.fieldID(f))
		if m.ghosts.Has(id) {
			m.ghosts.Reposition(id, m.overlayField(f))
		}
	}
}
