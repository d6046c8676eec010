// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - rendering for the composer.

package compose

import (
	"fmt"
	"strings"

	"github.com/jeranaias/ghostline/internal/tracker"
)

// View renders the composer.
func (m *Model) View() string {
	if m.showHelp {
		return m.helpText
	}

	var b strings.Builder

	b.WriteString(m.theme.HeaderTitle.Render("ghostline"))
	b.WriteString(" ")
	b.WriteString(m.theme.HeaderSubtitle.Render("new note"))
	b.WriteString("\n\n")

	m.renderField(&b, FieldTitle, "Title", m.titleInput.View())
	b.WriteString("\n")
	m.renderBody(&b)
	b.WriteString("\n")
	m.renderField(&b, FieldTags, "Tags", m.tagsInput.View())

	b.WriteString("\n")
	b.WriteString(m.statusBar())

	return m.theme.Container.Render(b.String())
}

// renderField renders a single-line field with its ghost segment.
func (m *Model) renderField(b *strings.Builder, f Field, label, view string) {
	cursor := "  "
	labelStyle := m.theme.FieldLabel
	if m.focused == f {
		cursor = m.theme.FieldCursor.Render("▸") + " "
		labelStyle = m.theme.FieldLabelFocused
	}

	line := view
	if m.focused == f {
		line += m.ghostSegment(f)
	}

	b.WriteString(cursor + labelStyle.Render(label) + line + "\n")
}

// renderBody renders the multi-line body. The ghost segment attaches to the
// first line while the content is still single-line; suggestions for longer
// bodies ride the status bar state instead of breaking the layout.
func (m *Model) renderBody(b *strings.Builder) {
	cursor := "  "
	labelStyle := m.theme.FieldLabel
	if m.focused == FieldBody {
		cursor = m.theme.FieldCursor.Render("▸") + " "
		labelStyle = m.theme.FieldLabelFocused
	}

	b.WriteString(cursor + labelStyle.Render("Body") + "\n")

	lines := strings.Split(m.bodyInput.View(), "\n")
	for i, line := range lines {
		if i == 0 && m.focused == FieldBody && !strings.Contains(m.bodyInput.Value(), "\n") {
			line += m.ghostSegment(FieldBody)
		}
		b.WriteString("   " + line + "\n")
	}
}

// ghostSegment returns the styled inline suggestion for a field, or a
// loading marker while a fetch is pending.
func (m *Model) ghostSegment(f Field) string {
	id := m.fieldID(f)
	if seg, ok := m.ghosts.Segment(string(id)); ok {
		return seg
	}
	if m.registry.State(id) == tracker.StatePending {
		return m.theme.GhostLoading.Render(" ...")
	}
	return ""
}

// statusBar renders field state, session counters, and key hints.
func (m *Model) statusBar() string {
	if !m.cfg.UI.ShowStatusBar {
		return ""
	}

	id := m.fieldID(m.focused)
	var state string
	switch m.registry.State(id) {
	case tracker.StatePending:
		state = m.theme.StatePending.Render("fetching")
	case tracker.StateSuggesting:
		state = m.theme.StateSuggesting.Render("suggestion")
	default:
		state = m.theme.StateIdle.Render("idle")
	}

	c := m.rec.Snapshot()
	stats := fmt.Sprintf("%s %s  %s %s",
		m.theme.StatsLabel.Render("served"),
		m.theme.StatsValue.Render(fmt.Sprintf("%d", c.Served)),
		m.theme.StatsLabel.Render("accepted"),
		m.theme.StatsValue.Render(fmt.Sprintf("%d", c.Accepted)),
	)

	hints := strings.Join([]string{
		m.theme.ShortcutKey.Render("Tab") + m.theme.ShortcutDesc.Render(" accept"),
		m.theme.ShortcutKey.Render("C-z") + m.theme.ShortcutDesc.Render(" undo"),
		m.theme.ShortcutKey.Render("Esc") + m.theme.ShortcutDesc.Render(" dismiss"),
		m.theme.ShortcutKey.Render("C-h") + m.theme.ShortcutDesc.Render(" help"),
	}, "  ")

	return m.theme.StatusBar.Render(state + "  " + stats + "  " + hints)
}
