// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// scheduler.go - Deferred callback execution behind an interface so the
// debounce machinery is testable with a manual clock.
package tracker

import "time"

// Scheduler defers a callback by a duration. The returned cancel function
// stops a run that has not started yet; cancelling a fired or already
// cancelled schedule is a no-op.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// timerScheduler is the production Scheduler backed by time.AfterFunc.
type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
