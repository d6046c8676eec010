// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry provides local usage counters for ghostline.
//
// The Recorder accumulates per-session counters (requests issued,
// suggestions served, accepted, undone, and so on) with atomic increments.
// The Store persists day-bucketed totals in a local SQLite database under
// ~/.ghostline/telemetry.db. Nothing is ever transmitted off the machine.
//
// # Usage
//
//	rec := telemetry.NewRecorder()
//	rec.Requested()
//	rec.Served()
//
//	store, err := telemetry.Open("")
//	if err == nil {
//	    defer store.Close()
//	    store.Flush(rec.Snapshot())
//	}
//
// A nil *Recorder is a valid no-op, so disabled telemetry needs no branches
// at call sites.
package telemetry
