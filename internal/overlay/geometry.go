// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// geometry.go - Cell geometry for gluing an overlay to a host field.
package overlay

import "github.com/mattn/go-runewidth"

// Rect is a rectangle in terminal cells. X/Y are the top-left corner of the
// field's text area in screen coordinates; W/H its size.
type Rect struct {
	X, Y, W, H int
}

// Field is the surface an overlay is glued to. The host widget exposes just
// enough geometry and style for the ghost text to line up cell-for-cell with
// the real text; the controller reads it fresh on every Show/Reposition.
type Field interface {
	// Value returns the field's current text.
	Value() string

	// CaretOffset returns the caret position as a rune index into Value.
	CaretOffset() int

	// ScreenRect returns the current rectangle of the text area.
	ScreenRect() Rect

	// ScrollOffset returns the rune index of the first visible character
	// when the content is wider than the text area, 0 otherwise.
	ScrollOffset() int
}

// prefixWidth returns the display width, in cells, of the visible text before
// the caret: the runes from the scroll offset up to the caret. Wide runes
// (CJK, emoji) count their real cell width.
func prefixWidth(f Field) int {
	runes := []rune(f.Value())

	caret := f.CaretOffset()
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}

	first := f.ScrollOffset()
	if first < 0 {
		first = 0
	}
	if first > caret {
		first = caret
	}

	return runewidth.StringWidth(string(runes[first:caret]))
}

// clampToWidth truncates s so it fits in avail cells. Returns "" when no
// cells are available.
func clampToWidth(s string, avail int) string {
	if avail <= 0 {
		return ""
	}
	return runewidth.Truncate(s, avail, "")
}
