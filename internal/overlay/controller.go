// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package overlay renders ghost-text suggestions visually glued to host input
// fields. The controller owns one binding per field with a visible suggestion
// and nothing else; all lifecycle decisions belong to the tracker.
package overlay

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// STYLE COPYING
// =============================================================================

// StyleAttr identifies one text attribute copied from the host field's style
// onto the ghost style so the suggestion lines up visually with real text.
// The copy list is data, not code: hosts tune it without a new renderer.
type StyleAttr int

const (
	AttrBold StyleAttr = iota
	AttrItalic
	AttrUnderline
	AttrStrikethrough
)

// DefaultStyleCopyList is the attribute subset copied by default.
var DefaultStyleCopyList = []StyleAttr{AttrBold, AttrItalic, AttrUnderline, AttrStrikethrough}

// GhostColor is the default dimmed foreground for suggestion text.
var GhostColor = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#585B70"}

// applyCopyList carries the listed attributes from src onto dst.
func applyCopyList(dst, src lipgloss.Style, attrs []StyleAttr) lipgloss.Style {
	for _, a := range attrs {
		switch a {
		case AttrBold:
			if src.GetBold() {
				dst = dst.Bold(true)
			}
		case AttrItalic:
			if src.GetItalic() {
				dst = dst.Italic(true)
			}
		case AttrUnderline:
			if src.GetUnderline() {
				dst = dst.Underline(true)
			}
		case AttrStrikethrough:
			if src.GetStrikethrough() {
				dst = dst.Strikethrough(true)
			}
		}
	}
	return dst
}

// =============================================================================
// BINDING
// =============================================================================

// binding associates one field with its rendering surface. Created on the
// first Show for a field, destroyed on Remove; it never outlives the field
// because Detach in the tracker always emits the clear that removes it.
type binding struct {
	rect        Rect
	prefixWidth int
	suggestion  string
	style       lipgloss.Style
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller renders, repositions, and removes ghost-text overlays. It holds
// no suggestion-lifecycle state of its own beyond the field→binding map and
// is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	bindings map[string]*binding

	ghostStyle lipgloss.Style
	copyAttrs  []StyleAttr
}

// NewController creates a controller with the default dim ghost style and
// copy list.
func NewController() *Controller {
	return &Controller{
		bindings:   make(map[string]*binding),
		ghostStyle: lipgloss.NewStyle().Foreground(GhostColor).Faint(true),
		copyAttrs:  DefaultStyleCopyList,
	}
}

// SetGhostStyle overrides the base style used for suggestion text.
func (c *Controller) SetGhostStyle(s lipgloss.Style) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ghostStyle = s
}

// SetStyleCopyList overrides which attributes are copied from the field.
func (c *Controller) SetStyleCopyList(attrs []StyleAttr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copyAttrs = attrs
}

// Show creates or updates the overlay for a field. Idempotent: the first call
// creates the binding, later calls reuse it. Geometry and the style copy list
// are read fresh from the field so the ghost tracks resizes and restyles.
// fieldStyle is the style the host renders its real text with.
func (c *Controller) Show(id string, f Field, fieldStyle lipgloss.Style, suggestion string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.bindings[id]
	if !ok {
		b = &binding{}
		c.bindings[id] = b
	}

	b.suggestion = firstLine(suggestion)
	b.rect = f.ScreenRect()
	b.prefixWidth = prefixWidth(f)
	b.style = applyCopyList(c.ghostStyle, fieldStyle, c.copyAttrs)
}

// Reposition recomputes the overlay's rectangle and caret alignment from the
// field's current geometry. Invoked on scroll and resize. No-op when the
// field has no overlay.
func (c *Controller) Reposition(id string, f Field) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.bindings[id]
	if !ok {
		return
	}
	b.rect = f.ScreenRect()
	b.prefixWidth = prefixWidth(f)
}

// Remove detaches and forgets the overlay. Safe to call when none exists,
// and calling it twice never fails.
func (c *Controller) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, id)
}

// Has reports whether a field currently has an overlay.
func (c *Controller) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.bindings[id]
	return ok
}

// Len returns the number of live overlays.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bindings)
}

// =============================================================================
// RENDERING
// =============================================================================

// Render produces the overlay line for hosts that composite at absolute
// positions: the text before the caret rendered as blank cells (reserving
// their space) followed by the dimmed suggestion, clipped to the field's
// rectangle. row is the screen row to draw at. ok is false when the field
// has no overlay or nothing of the suggestion is visible.
func (c *Controller) Render(id string) (line string, row int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, found := c.bindings[id]
	if !found || b.suggestion == "" {
		return "", 0, false
	}

	visible := clampToWidth(b.suggestion, b.rect.W-b.prefixWidth)
	if visible == "" {
		return "", 0, false
	}

	return strings.Repeat(" ", b.prefixWidth) + b.style.Render(visible), b.rect.Y, true
}

// Segment returns just the styled suggestion text, clipped to the cells left
// of the field's rectangle after the caret. Hosts that render the field
// themselves append it directly after the caret.
func (c *Controller) Segment(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, found := c.bindings[id]
	if !found || b.suggestion == "" {
		return "", false
	}

	visible := clampToWidth(b.suggestion, b.rect.W-b.prefixWidth)
	if visible == "" {
		return "", false
	}
	return b.style.Render(visible), true
}

// firstLine keeps only the first line of a multi-line suggestion for the
// overlay; the full text is still what an accept merges.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
