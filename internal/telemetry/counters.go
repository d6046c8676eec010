// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry provides local usage counters for ghostline.
// Counters are stored on the local machine and never transmitted.
package telemetry

import (
	"sync/atomic"
)

// =============================================================================
// COUNTER NAMES
// =============================================================================

// Counter names as persisted in the store.
const (
	CounterRequested  = "requested"  // suggestion requests issued
	CounterServed     = "served"     // non-empty suggestions shown
	CounterReconciled = "reconciled" // suggestions consumed by typing the prefix
	CounterAccepted   = "accepted"   // suggestions merged with Tab
	CounterUndone     = "undone"     // accepts rolled back
	CounterDismissed  = "dismissed"  // suggestions dismissed with Esc
	CounterCacheHits  = "cache_hits" // suggestions re-shown without a request
	CounterFailed     = "failed"     // requests that errored or timed out
)

// AllCounters lists every counter name in display order.
var AllCounters = []string{
	CounterRequested,
	CounterServed,
	CounterReconciled,
	CounterAccepted,
	CounterUndone,
	CounterDismissed,
	CounterCacheHits,
	CounterFailed,
}

// =============================================================================
// RECORDER
// =============================================================================

// Counts is a point-in-time snapshot of the session's counters.
type Counts struct {
	Requested  int64 `json:"requested"`
	Served     int64 `json:"served"`
	Reconciled int64 `json:"reconciled"`
	Accepted   int64 `json:"accepted"`
	Undone     int64 `json:"undone"`
	Dismissed  int64 `json:"dismissed"`
	CacheHits  int64 `json:"cache_hits"`
	Failed     int64 `json:"failed"`
}

// Recorder accumulates counters for the current session. All methods are
// safe for concurrent use. A nil Recorder is a valid no-op recorder, so
// callers never need to branch on whether telemetry is enabled.
type Recorder struct {
	requested  atomic.Int64
	served     atomic.Int64
	reconciled atomic.Int64
	accepted   atomic.Int64
	undone     atomic.Int64
	dismissed  atomic.Int64
	cacheHits  atomic.Int64
	failed     atomic.Int64
}

// NewRecorder creates an empty session recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Requested() {
	if r != nil {
		r.requested.Add(1)
	}
}

func (r *Recorder) Served() {
	if r != nil {
		r.served.Add(1)
	}
}

func (r *Recorder) Reconciled() {
	if r != nil {
		r.reconciled.Add(1)
	}
}

func (r *Recorder) Accepted() {
	if r != nil {
		r.accepted.Add(1)
	}
}

func (r *Recorder) Undone() {
	if r != nil {
		r.undone.Add(1)
	}
}

func (r *Recorder) Dismissed() {
	if r != nil {
		r.dismissed.Add(1)
	}
}

func (r *Recorder) CacheHit() {
	if r != nil {
		r.cacheHits.Add(1)
	}
}

func (r *Recorder) Failed() {
	if r != nil {
		r.failed.Add(1)
	}
}

// Snapshot returns the current counter values.
func (r *Recorder) Snapshot() Counts {
	if r == nil {
		return Counts{}
	}
	return Counts{
		Requested:  r.requested.Load(),
		Served:     r.served.Load(),
		Reconciled: r.reconciled.Load(),
		Accepted:   r.accepted.Load(),
		Undone:     r.undone.Load(),
		Dismissed:  r.dismissed.Load(),
		CacheHits:  r.cacheHits.Load(),
		Failed:     r.failed.Load(),
	}
}

// asMap returns the snapshot keyed by counter name for persistence.
func (c Counts) asMap() map[string]int64 {
	return map[string]int64{
		CounterRequested:  c.Requested,
		CounterServed:     c.Served,
		CounterReconciled: c.Reconciled,
		CounterAccepted:   c.Accepted,
		CounterUndone:     c.Undone,
		CounterDismissed:  c.Dismissed,
		CounterCacheHits:  c.CacheHits,
		CounterFailed:     c.Failed,
	}
}
