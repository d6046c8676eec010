// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tracker owns the per-field suggestion lifecycle: the validity gate,
// debounced fetch scheduling, incremental reconciliation of a suggestion
// against continued typing, the capacity-1 request cache, and accept/undo.
//
// The registry is the single owner of all mutable per-field state. Rendering
// is delegated entirely to the receiver of the emitted events; the registry
// never touches a widget.
package tracker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/ghostline/internal/suggest"
)

// =============================================================================
// FIELD STATE
// =============================================================================

// FieldID identifies one tracked input field.
type FieldID string

// State is the suggestion lifecycle state of a single field.
type State int

const (
	// StateIdle - no suggestion, no pending fetch.
	StateIdle State = iota
	// StatePending - a fetch is scheduled or in flight.
	StatePending
	// StateSuggesting - a non-empty suggestion is visible.
	StateSuggesting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSuggesting:
		return "suggesting"
	}
	return "unknown"
}

// fieldState is the mutable record for one tracked field. All access is
// guarded by the registry mutex.
type fieldState struct {
	meta *suggest.Context

	currentText      string
	activeSuggestion string
	preAcceptText    string

	// Capacity-1 cache: the exact text a completed fetch ran for and its
	// result. Overwritten by every completed fetch, never evicted.
	cachedText       string
	cachedSuggestion string
	haveCached       bool

	// seq tags the most recently issued fetch for this field. A completion
	// whose tag no longer matches is stale and discarded silently.
	seq uint64

	cancelTimer func()
	state       State
}

// cancelPending stops the debounce timer if one is armed.
func (fs *fieldState) cancelPending() {
	if fs.cancelTimer != nil {
		fs.cancelTimer()
		fs.cancelTimer = nil
	}
}

// =============================================================================
// REGISTRY
// =============================================================================

// Fetcher is the asynchronous completion boundary. *suggest.Client satisfies
// it; tests substitute stubs. Nothing is assumed about latency or ordering.
type Fetcher interface {
	GenerateSuggestion(ctx context.Context, text string, meta *suggest.Context) (string, error)
}

// Options configures a registry. Zero values fall back to defaults.
type Options struct {
	// Debounce is the quiet period after the last keystroke before a fetch
	// fires (default: 1500ms).
	Debounce time.Duration

	// MinLength is the minimum trimmed text length for the validity gate
	// (default: 10).
	MinLength int

	// FetchTimeout bounds a single completion request (default: 10s).
	FetchTimeout time.Duration

	// RequestsPerMinute caps fetch volume across all fields (default: 30).
	RequestsPerMinute int

	// Scheduler substitutes the timer implementation; tests inject a manual
	// one. Defaults to time.AfterFunc.
	Scheduler Scheduler
}

// Registry tracks input fields and drives the suggestion state machine for
// each of them. It is safe for concurrent use; debounce timers and fetch
// completions run on their own goroutines.
//
// One registry per UI scope. Per-field state is fully independent, so no
// cross-field coordination exists beyond the shared rate limiter.
type Registry struct {
	mu     sync.Mutex
	fields map[FieldID]*fieldState

	fetcher Fetcher
	notify  Notifier
	sched   Scheduler
	limiter *rate.Limiter

	debounce     time.Duration
	minLength    int
	fetchTimeout time.Duration
}

// NewRegistry creates a registry. notify may be nil when the caller polls
// state instead of reacting to events.
func NewRegistry(fetcher Fetcher, notify Notifier, opts *Options) *Registry {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Debounce == 0 {
		opts.Debounce = 1500 * time.Millisecond
	}
	if opts.MinLength == 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.RequestsPerMinute == 0 {
		opts.RequestsPerMinute = 30
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timerScheduler{}
	}
	if notify == nil {
		notify = func(Event) {}
	}

	burst := opts.RequestsPerMinute / 6
	if burst < 1 {
		burst = 1
	}

	return &Registry{
		fields:       make(map[FieldID]*fieldState),
		fetcher:      fetcher,
		notify:       notify,
		sched:        opts.Scheduler,
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), burst),
		debounce:     opts.Debounce,
		minLength:    opts.MinLength,
		fetchTimeout: opts.FetchTimeout,
	}
}

// =============================================================================
// FIELD LIFECYCLE
// =============================================================================

// Track registers a new field and returns its identity. meta is attached to
// every fetch issued for the field and may be nil.
func (r *Registry) Track(meta *suggest.Context) FieldID {
	id := FieldID(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[id] = &fieldState{meta: meta}
	return id
}

// Detach forgets a field: its timer is cancelled, in-flight fetches become
// stale, and the overlay is told to go away. Detaching an unknown field is a
// no-op.
func (r *Registry) Detach(id FieldID) {
	var events []Event
	defer r.emit(&events)

	r.mu.Lock()
	defer r.mu.Unlock()

	fs, ok := r.fields[id]
	if !ok {
		return
	}
	fs.cancelPending()
	fs.seq++
	delete(r.fields, id)
	events = append(events, Event{Kind: EventClear, Field: id})
}

// Tracked reports whether the field is registered.
func (r *Registry) Tracked(id FieldID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.fields[id]
	return ok
}

// =============================================================================
// KEYSTROKE PATH
// =============================================================================

// Input processes the field's new value after an edit. This is the heart of
// the state machine: it applies the validity gate, reconciles the visible
// suggestion against the typed delta, answers from the capacity-1 cache, or
// (re)schedules a debounced fetch. Programmatic value changes made by Accept
// and Undo must not be fed back through Input.
func (r *Registry) Input(id FieldID, newText string) {
	var events []Event
	defer r.emit(&events)

	r.mu.Lock()
	defer r.mu.Unlock()

	fs, ok := r.fields[id]
	if !ok || newText == fs.currentText {
		return
	}

	old := fs.currentText
	fs.currentText = newText
	fs.preAcceptText = "" // any edit invalidates the undo snapshot

	// Validity gate: ineligible text forces idle and never fetches.
	if !Eligible(newText, r.minLength) {
		fs.cancelPending()
		fs.seq++
		fs.activeSuggestion = ""
		fs.state = StateIdle
		events = append(events, Event{Kind: EventClear, Field: id})
		return
	}

	// Reconciliation: typing through the suggestion consumes it in place.
	if fs.state == StateSuggesting && fs.activeSuggestion != "" {
		if typed, grew := strings.CutPrefix(newText, old); grew && typed != "" && strings.HasPrefix(fs.activeSuggestion, typed) {
			fs.activeSuggestion = fs.activeSuggestion[len(typed):]
			if fs.activeSuggestion == "" {
				fs.state = StateIdle
				events = append(events, Event{Kind: EventClear, Field: id})
			} else {
				events = append(events, Event{Kind: EventShow, Field: id, Suggestion: fs.activeSuggestion})
			}
			return
		}

		// Mismatch: the edit diverged from the suggested continuation.
		fs.activeSuggestion = ""
		fs.state = StateIdle
		events = append(events, Event{Kind: EventClear, Field: id})
	}

	// Cache short-circuit: an exact repeat of the last requested text never
	// issues a network call.
	if fs.haveCached && newText == fs.cachedText {
		fs.cancelPending()
		fs.seq++
		if fs.cachedSuggestion != "" {
			fs.activeSuggestion = fs.cachedSuggestion
			fs.state = StateSuggesting
			events = append(events, Event{Kind: EventShow, Field: id, Suggestion: fs.activeSuggestion})
		} else {
			fs.state = StateIdle
		}
		return
	}

	r.scheduleLocked(id, fs, newText, r.debounce)
}

// Trigger requests a suggestion immediately, skipping the quiet period but
// not the validity gate or the cache. Bound to a manual-complete key.
func (r *Registry) Trigger(id FieldID) {
	var events []Event
	defer r.emit(&events)

	r.mu.Lock()
	defer r.mu.Unlock()

	fs, ok := r.fields[id]
	if !ok || !Eligible(fs.currentText, r.minLength) {
		return
	}

	if fs.haveCached && fs.currentText == fs.cachedText {
		if fs.cachedSuggestion != "" && fs.activeSuggestion == "" {
			fs.activeSuggestion = fs.cachedSuggestion
			fs.state = StateSuggesting
			events = append(events, Event{Kind: EventShow, Field: id, Suggestion: fs.activeSuggestion})
		}
		return
	}

	// A reconciled suggestion may still be visible here. Scheduling puts the
	// field in StatePending, so the suggestion must go with it; keeping it
	// would let a later Accept merge text no overlay shows.
	if fs.activeSuggestion != "" {
		fs.activeSuggestion = ""
		events = append(events, Event{Kind: EventClear, Field: id})
	}

	r.scheduleLocked(id, fs, fs.currentText, 0)
}

// Dismiss drops the active suggestion and any pending fetch without touching
// the field's text. Bound to Esc.
func (r *Registry) Dismiss(id FieldID) {
	var events []Event
	defer r.emit(&events)

	r.mu.Lock()
	defer r.mu.Unlock()

	fs, ok := r.fields[id]
	if !ok {
		return
	}
	fs.cancelPending()
	fs.seq++
	fs.activeSuggestion = ""
	fs.state = StateIdle
	events = append(events, Event{Kind: EventClear, Field: id})
}

// =============================================================================
// ACCEPT / UNDO
// =============================================================================

// Accept merges the active suggestion into the field's value and returns the
// merged text for the caller to apply to its widget. The prior value becomes
// recoverable through exactly one Undo. Returns ok=false when there is no
// active suggestion.
func (r *Registry) Accept(id FieldID) (merged string, ok bool) {
	var events []Event
	defer r.emit(&events)

	r.mu.Lock()
	defer r.mu.Unlock()

	fs, tracked := r.fields[id]
	if !tracked || fs.activeSuggestion == "" {
		return "", false
	}

	fs.preAcceptText = fs.currentText
	fs.currentText += fs.activeSuggestion
	fs.activeSuggestion = ""
	fs.cancelPending()
	fs.seq++
	fs.state = StateIdle
	events = append(events, Event{Kind: EventClear, Field: id})
	return fs.currentText, true
}

// Undo restores the value snapshotted by the last Accept and returns it for
// the caller to apply. A single level deep: the snapshot is consumed, and any
// edit since the accept already discarded it. Returns ok=false when there is
// nothing to undo.
func (r *Registry) Undo(id FieldID) (restored string, ok bool) {
	var events []Event
	defer r.emit(&events)

	r.mu.Lock()
	defer r.mu.Unlock()

	fs, tracked := r.fields[id]
	if !tracked || fs.preAcceptText == "" {
		return "", false
	}

	restored = fs.preAcceptText
	fs.preAcceptText = ""
	fs.currentText = restored
	fs.activeSuggestion = ""
	fs.cancelPending()
	fs.seq++
	fs.state = StateIdle
	events = append(events, Event{Kind: EventClear, Field: id})
	return restored, true
}

// =============================================================================
// FETCH PATH
// =============================================================================

// scheduleLocked arms (or re-arms) the debounce timer for a field. Caller
// holds the registry mutex. Every call supersedes the previous schedule: the
// old timer is cancelled and the sequence number advances so a fire from a
// raced timer is discarded.
func (r *Registry) scheduleLocked(id FieldID, fs *fieldState, text string, delay time.Duration) {
	fs.cancelPending()
	fs.seq++
	seq := fs.seq
	fs.state = StatePending
	fs.cancelTimer = r.sched.Schedule(delay, func() { r.fire(id, seq, text) })
}

// fire runs when a debounce timer elapses. It re-validates that the schedule
// is still the latest for the field, then performs the fetch synchronously on
// the timer goroutine.
func (r *Registry) fire(id FieldID, seq uint64, text string) {
	r.mu.Lock()
	fs, ok := r.fields[id]
	if !ok || seq != fs.seq {
		r.mu.Unlock()
		return
	}
	if !r.limiter.Allow() {
		// Over the request ceiling. Degrade to "no ghost text".
		fs.state = StateIdle
		fs.activeSuggestion = ""
		fs.cancelTimer = nil
		r.mu.Unlock()
		r.notify(Event{Kind: EventClear, Field: id})
		return
	}
	fs.cancelTimer = nil
	fetcher, timeout, meta := r.fetcher, r.fetchTimeout, fs.meta
	r.mu.Unlock()

	r.notify(Event{Kind: EventFetch, Field: id})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := fetcher.GenerateSuggestion(ctx, text, meta)
	if err != nil {
		// Transport and API failures degrade to an empty suggestion.
		r.notify(Event{Kind: EventFail, Field: id})
		r.complete(id, seq, text, "", true)
		return
	}
	r.complete(id, seq, text, result, false)
}

// complete applies a fetch result. A result whose sequence tag has been
// superseded is discarded silently; the field may have been retyped, accepted,
// dismissed, or detached since the request went out. failed marks a transport
// or API error: the field goes idle but the cache is left alone, so returning
// to the same text retries instead of replaying the failure.
func (r *Registry) complete(id FieldID, seq uint64, text, result string, failed bool) {
	var events []Event
	defer r.emit(&events)

	r.mu.Lock()
	defer r.mu.Unlock()

	fs, ok := r.fields[id]
	if !ok || seq != fs.seq {
		return
	}

	if !failed {
		fs.cachedText = text
		fs.cachedSuggestion = result
		fs.haveCached = true
	}

	if result == "" {
		fs.activeSuggestion = ""
		fs.state = StateIdle
		events = append(events, Event{Kind: EventClear, Field: id})
		return
	}

	fs.activeSuggestion = result
	fs.state = StateSuggesting
	events = append(events, Event{Kind: EventShow, Field: id, Suggestion: result})
}

// =============================================================================
// INSPECTION & TUNING
// =============================================================================

// Suggestion returns the field's active suggestion, or "".
func (r *Registry) Suggestion(id FieldID) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fs, ok := r.fields[id]; ok {
		return fs.activeSuggestion
	}
	return ""
}

// Text returns the registry's view of the field's value.
func (r *Registry) Text(id FieldID) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fs, ok := r.fields[id]; ok {
		return fs.currentText
	}
	return ""
}

// State returns the field's lifecycle state; StateIdle for unknown fields.
func (r *Registry) State(id FieldID) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fs, ok := r.fields[id]; ok {
		return fs.state
	}
	return StateIdle
}

// CanUndo reports whether an accept snapshot is available.
func (r *Registry) CanUndo(id FieldID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fs, ok := r.fields[id]; ok {
		return fs.preAcceptText != ""
	}
	return false
}

// Len returns the number of tracked fields.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fields)
}

// SetDebounce adjusts the quiet period at runtime (config hot reload).
// Already-armed timers keep their original delay.
func (r *Registry) SetDebounce(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debounce = d
}

// SetMinLength adjusts the validity gate threshold at runtime.
func (r *Registry) SetMinLength(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.minLength = n
}

// emit delivers queued events after the registry mutex is released.
func (r *Registry) emit(events *[]Event) {
	for _, e := range *events {
		r.notify(e)
	}
}
