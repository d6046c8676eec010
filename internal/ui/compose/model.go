// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose provides the note composer view for the TUI: a small form
// whose text fields receive inline ghost text completions while the user
// types.
package compose

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ghostline/internal/config"
	"github.com/jeranaias/ghostline/internal/overlay"
	"github.com/jeranaias/ghostline/internal/suggest"
	"github.com/jeranaias/ghostline/internal/telemetry"
	"github.com/jeranaias/ghostline/internal/tracker"
	"github.com/jeranaias/ghostline/internal/ui/styles"
)

// =============================================================================
// FIELD IDENTITY
// =============================================================================

// Field identifies the focusable form fields in order.
type Field int

const (
	FieldTitle Field = iota
	FieldBody
	FieldTags
)

// ConfigReloadedMsg is sent by the host when the config file changed on disk.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the composer's Bubble Tea model. It owns the field widgets and
// wires them to the tracker registry and the overlay controller.
type Model struct {
	theme *styles.Theme
	keys  KeyMap
	cfg   *config.Config

	registry *tracker.Registry
	ghosts   *overlay.Controller
	rec      *telemetry.Recorder

	titleInput textinput.Model
	bodyInput  textarea.Model
	tagsInput  textinput.Model

	titleID tracker.FieldID
	bodyID  tracker.FieldID
	tagsID  tracker.FieldID

	// Last value fed to the tracker per field. Programmatic changes (accept,
	// undo) update these directly so they never re-enter the state machine.
	lastTitle string
	lastBody  string
	lastTags  string

	focused Field
	events  chan tracker.Event

	width  int
	height int

	showHelp bool
	helpText string

	submitted bool
	cancelled bool
	statusErr string
}

// New creates the composer. fetcher is the completion backend (normally
// *suggest.Client); rec may be nil when telemetry is disabled.
func New(cfg *config.Config, fetcher tracker.Fetcher, rec *telemetry.Recorder) *Model {
	m := &Model{
		theme:  styles.NewTheme(),
		keys:   DefaultKeyMap(),
		cfg:    cfg,
		rec:    rec,
		events: make(chan tracker.Event, 128),
	}

	m.registry = tracker.NewRegistry(fetcher, m.pushEvent, &tracker.Options{
		Debounce:          time.Duration(cfg.Tracker.DebounceMs) * time.Millisecond,
		MinLength:         cfg.Tracker.MinLength,
		FetchTimeout:      time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.Tracker.RequestsPerMinute,
	})

	m.ghosts = overlay.NewController()
	m.ghosts.SetGhostStyle(m.theme.Ghost)
	m.ghosts.SetStyleCopyList(styleAttrsFromNames(cfg.Overlay.StyleCopyList))

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Note title"
	m.titleInput.Prompt = ""
	m.titleInput.Focus()

	m.bodyInput = textarea.New()
	m.bodyInput.Placeholder = "Write your note..."
	m.bodyInput.ShowLineNumbers = false
	m.bodyInput.SetHeight(6)

	m.tagsInput = textinput.New()
	m.tagsInput.Placeholder = "tags, comma, separated"
	m.tagsInput.Prompt = ""

	m.titleID = m.registry.Track(&suggest.Context{Title: "note title", Labels: []string{"title"}})
	m.bodyID = m.registry.Track(&suggest.Context{Title: "note body", Labels: []string{"body"}})
	m.tagsID = m.registry.Track(&suggest.Context{Title: "note tags", Labels: []string{"tags"}})

	return m
}

// pushEvent forwards a tracker event into the UI loop. Drops when the buffer
// is full rather than blocking a timer goroutine; the UI re-reads registry
// state on every render so a dropped event only delays a repaint.
func (m *Model) pushEvent(ev tracker.Event) {
	select {
	case m.events <- ev:
	default:
	}
}

// Init starts the cursor blink and the tracker event pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// Submitted reports whether the user saved the note.
func (m *Model) Submitted() bool { return m.submitted }

// Cancelled reports whether the user quit without saving.
func (m *Model) Cancelled() bool { return m.cancelled }

// Note returns the composed note fields.
func (m *Model) Note() (title, body string, tags []string) {
	title = strings.TrimSpace(m.titleInput.Value())
	body = m.bodyInput.Value()
	for _, tag := range strings.Split(m.tagsInput.Value(), ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return title, body, tags
}

// ApplyConfig applies a reloaded config to the live session.
func (m *Model) ApplyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.registry.SetDebounce(time.Duration(cfg.Tracker.DebounceMs) * time.Millisecond)
	m.registry.SetMinLength(cfg.Tracker.MinLength)
	m.ghosts.SetStyleCopyList(styleAttrsFromNames(cfg.Overlay.StyleCopyList))
}

// =============================================================================
// FIELD PLUMBING
// =============================================================================

// fieldID maps a form field to its tracker identity.
func (m *Model) fieldID(f Field) tracker.FieldID {
	switch f {
	case FieldTitle:
		return m.titleID
	case FieldBody:
		return m.bodyID
	default:
		return m.tagsID
	}
}

// fieldByID maps a tracker identity back to the form field.
func (m *Model) fieldByID(id tracker.FieldID) (Field, bool) {
	switch id {
	case m.titleID:
		return FieldTitle, true
	case m.bodyID:
		return FieldBody, true
	case m.tagsID:
		return FieldTags, true
	}
	return 0, false
}

// fieldValue returns the current widget text for a field.
func (m *Model) fieldValue(f Field) string {
	switch f {
	case FieldTitle:
		return m.titleInput.Value()
	case FieldBody:
		return m.bodyInput.Value()
	default:
		return m.tagsInput.Value()
	}
}

// setFieldValue writes widget text programmatically, bypassing the tracker.
func (m *Model) setFieldValue(f Field, v string) {
	switch f {
	case FieldTitle:
		m.titleInput.SetValue(v)
		m.titleInput.CursorEnd()
		m.lastTitle = v
	case FieldBody:
		m.bodyInput.SetValue(v)
		m.bodyInput.CursorEnd()
		m.lastBody = v
	default:
		m.tagsInput.SetValue(v)
		m.tagsInput.CursorEnd()
		m.lastTags = v
	}
}

// widgetField adapts a field's current geometry for the overlay controller.
type widgetField struct {
	value string
	caret int
	rect  overlay.Rect
}

func (f widgetField) Value() string            { return f.value }
func (f widgetField) CaretOffset() int         { return f.caret }
func (f widgetField) ScreenRect() overlay.Rect { return f.rect }
func (f widgetField) ScrollOffset() int        { return 0 }

// overlayField builds the geometry snapshot for a field. Rows are relative
// to the form layout; the composer renders inline so only the width matters.
func (m *Model) overlayField(f Field) widgetField {
	value := m.fieldValue(f)
	width := m.width - 14
	if width < 10 {
		width = 10
	}
	return widgetField{
		value: value,
		caret: len([]rune(value)),
		rect:  overlay.Rect{X: 0, Y: int(f), W: width, H: 1},
	}
}

// styleAttrsFromNames converts config attribute names to overlay attributes.
func styleAttrsFromNames(names []string) []overlay.StyleAttr {
	var attrs []overlay.StyleAttr
	for _, name := range names {
		switch strings.ToLower(name) {
		case "bold":
			attrs = append(attrs, overlay.AttrBold)
		case "italic":
			attrs = append(attrs, overlay.AttrItalic)
		case "underline":
			attrs = append(attrs, overlay.AttrUnderline)
		case "strikethrough":
			attrs = append(attrs, overlay.AttrStrikethrough)
		}
	}
	return attrs
}
