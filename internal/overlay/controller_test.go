// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// fakeField is a scriptable Field for geometry tests.
type fakeField struct {
	value  string
	caret  int
	rect   Rect
	scroll int
}

func (f *fakeField) Value() string     { return f.value }
func (f *fakeField) CaretOffset() int  { return f.caret }
func (f *fakeField) ScreenRect() Rect  { return f.rect }
func (f *fakeField) ScrollOffset() int { return f.scroll }

func plain() lipgloss.Style { return lipgloss.NewStyle() }

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestShow_CreatesThenReuses(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "hello", caret: 5, rect: Rect{X: 2, Y: 1, W: 40, H: 1}}

	c.Show("a", f, plain(), " world")
	if !c.Has("a") || c.Len() != 1 {
		t.Fatal("first Show must create the binding")
	}

	c.Show("a", f, plain(), " world!")
	if c.Len() != 1 {
		t.Error("second Show must reuse the binding, not create another")
	}
}

func TestRemove_IsIdempotent(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "hello", caret: 5, rect: Rect{W: 40, H: 1}}

	c.Show("a", f, plain(), " world")
	c.Remove("a")

	// A second removal, and removal of a field that never had an overlay,
	// must both be harmless.
	c.Remove("a")
	c.Remove("never-shown")

	if c.Has("a") || c.Len() != 0 {
		t.Error("Remove must drop the binding")
	}
}

func TestReposition_UnknownFieldIsNoop(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "x", caret: 1, rect: Rect{W: 10, H: 1}}
	c.Reposition("ghost", f) // must not panic or create bindings
	if c.Len() != 0 {
		t.Error("Reposition must not create bindings")
	}
}

// =============================================================================
// GEOMETRY
// =============================================================================

func TestRender_ReservesPrefixCells(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "hello", caret: 5, rect: Rect{X: 0, Y: 3, W: 40, H: 1}}

	c.Show("a", f, plain(), " world")

	line, row, ok := c.Render("a")
	if !ok {
		t.Fatal("Render returned ok=false for a live overlay")
	}
	if row != 3 {
		t.Errorf("row = %d, want the field's Y", row)
	}
	if !strings.HasPrefix(line, strings.Repeat(" ", 5)) {
		t.Errorf("line %q must reserve 5 blank cells before the ghost", line)
	}
	if !strings.Contains(line, "world") {
		t.Errorf("line %q must contain the suggestion text", line)
	}
}

func TestRender_WideRunesCountTheirCells(t *testing.T) {
	c := NewController()
	// Two CJK runes occupy four cells before the caret.
	f := &fakeField{value: "日本", caret: 2, rect: Rect{W: 20, H: 1}}

	c.Show("a", f, plain(), "語")

	line, _, ok := c.Render("a")
	if !ok {
		t.Fatal("Render returned ok=false")
	}
	if !strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "     ") {
		t.Errorf("prefix of %q should be exactly 4 blank cells", line)
	}
}

func TestRender_ScrolledFieldShrinksPrefix(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "0123456789abcdef", caret: 16, rect: Rect{W: 30, H: 1}, scroll: 10}

	c.Show("a", f, plain(), "gh")

	line, _, ok := c.Render("a")
	if !ok {
		t.Fatal("Render returned ok=false")
	}
	// Only the 6 visible runes before the caret reserve space.
	if !strings.HasPrefix(line, strings.Repeat(" ", 6)) || strings.HasPrefix(line, strings.Repeat(" ", 7)) {
		t.Errorf("prefix of %q should be exactly 6 cells", line)
	}
}

func TestSegment_ClipsToFieldWidth(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "hello", caret: 5, rect: Rect{W: 10, H: 1}}

	c.Show("a", f, plain(), " a very long suggestion that cannot fit")

	seg, ok := c.Segment("a")
	if !ok {
		t.Fatal("Segment returned ok=false")
	}
	if w := lipgloss.Width(seg); w > 5 {
		t.Errorf("segment width = %d, want <= 5 (10 wide field, caret at 5)", w)
	}
}

func TestSegment_NoRoomMeansNotVisible(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "0123456789", caret: 10, rect: Rect{W: 10, H: 1}}

	c.Show("a", f, plain(), "overflow")

	if _, ok := c.Segment("a"); ok {
		t.Error("a caret at the right edge leaves no cells for the ghost")
	}
	if _, _, ok := c.Render("a"); ok {
		t.Error("Render should also report nothing visible")
	}
}

func TestReposition_TracksResize(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "hello", caret: 5, rect: Rect{Y: 2, W: 40, H: 1}}

	c.Show("a", f, plain(), " world")

	// The host moves and shrinks the field.
	f.rect = Rect{Y: 7, W: 8, H: 1}
	c.Reposition("a", f)

	line, row, ok := c.Render("a")
	if !ok {
		t.Fatal("Render returned ok=false")
	}
	if row != 7 {
		t.Errorf("row = %d, want 7 after reposition", row)
	}
	if w := lipgloss.Width(line); w > 8 {
		t.Errorf("overlay width = %d exceeds the resized field", w)
	}
}

func TestShow_MultilineSuggestionKeepsFirstLine(t *testing.T) {
	c := NewController()
	f := &fakeField{value: "hello", caret: 5, rect: Rect{W: 60, H: 1}}

	c.Show("a", f, plain(), " first line\nsecond line")

	seg, ok := c.Segment("a")
	if !ok {
		t.Fatal("Segment returned ok=false")
	}
	if strings.Contains(seg, "second") {
		t.Errorf("segment %q must only show the first line", seg)
	}
}

// =============================================================================
// STYLE COPYING
// =============================================================================

func TestApplyCopyList_CarriesOnlyListedAttributes(t *testing.T) {
	src := lipgloss.NewStyle().Bold(true).Italic(true).Underline(true)

	got := applyCopyList(lipgloss.NewStyle(), src, []StyleAttr{AttrBold, AttrItalic})
	if !got.GetBold() || !got.GetItalic() {
		t.Error("bold and italic were in the copy list and must carry over")
	}
	if got.GetUnderline() {
		t.Error("underline was not in the copy list and must not carry over")
	}

	got = applyCopyList(lipgloss.NewStyle(), src, DefaultStyleCopyList)
	if !got.GetUnderline() {
		t.Error("the default copy list includes underline")
	}
}

func TestStyleCopyList_IsData(t *testing.T) {
	c := NewController()
	c.SetStyleCopyList(nil) // copy nothing
	f := &fakeField{value: "hello", caret: 5, rect: Rect{W: 40, H: 1}}

	c.Show("a", f, lipgloss.NewStyle().Bold(true), " world")
	if _, ok := c.Segment("a"); !ok {
		t.Error("an empty copy list must still render the ghost")
	}
}
