// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// events.go - Events the registry emits toward the rendering layer.
package tracker

// EventKind identifies what the rendering layer should do for a field.
type EventKind int

const (
	// EventShow carries a suggestion that should be rendered (or re-rendered
	// after a reconciliation shortened it).
	EventShow EventKind = iota

	// EventClear means the field's overlay must be removed.
	EventClear

	// EventFetch signals that a completion request was issued for the field.
	// Useful for spinners and telemetry; no rendering action is required.
	EventFetch

	// EventFail signals that a completion request failed (transport or API
	// error). The field degrades to idle through a separate EventClear; this
	// event exists for telemetry only.
	EventFail
)

// Event is a notification about one tracked field. Events may be delivered
// from timer goroutines; receivers decide how to marshal them onto their own
// event loop.
type Event struct {
	Kind       EventKind
	Field      FieldID
	Suggestion string
}

// Notifier receives registry events. Implementations must not call back into
// the registry synchronously.
type Notifier func(Event)
