// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsEveryKind(t *testing.T) {
	rec := NewRecorder()

	rec.Requested()
	rec.Requested()
	rec.Served()
	rec.Reconciled()
	rec.Accepted()
	rec.Undone()
	rec.Dismissed()
	rec.CacheHit()
	rec.Failed()

	c := rec.Snapshot()
	if c.Requested != 2 {
		t.Errorf("Requested = %d, want 2", c.Requested)
	}
	if c.Served != 1 || c.Reconciled != 1 || c.Accepted != 1 ||
		c.Undone != 1 || c.Dismissed != 1 || c.CacheHits != 1 || c.Failed != 1 {
		t.Errorf("unexpected snapshot: %+v", c)
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder

	// Must not panic
	rec.Requested()
	rec.Accepted()

	c := rec.Snapshot()
	if c.Requested != 0 {
		t.Errorf("nil recorder snapshot = %+v, want zeros", c)
	}
}

func TestRecorder_ConcurrentIncrements(t *testing.T) {
	rec := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				rec.Requested()
				rec.Served()
			}
		}()
	}
	wg.Wait()

	c := rec.Snapshot()
	if c.Requested != 500 || c.Served != 500 {
		t.Errorf("Requested = %d, Served = %d, want 500 each", c.Requested, c.Served)
	}
}

func TestStore_FlushAndTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Flush(Counts{Requested: 3, Served: 2, Accepted: 1}))

	totals, err := store.Totals()
	require.NoError(t, err)
	require.Equal(t, int64(3), totals[CounterRequested])
	require.Equal(t, int64(2), totals[CounterServed])
	require.Equal(t, int64(1), totals[CounterAccepted])

	// Never-written counters still report zero
	v, ok := totals[CounterUndone]
	require.True(t, ok)
	require.Equal(t, int64(0), v)
}

func TestStore_FlushAccumulatesAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")

	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Flush(Counts{Accepted: 2}))
	require.NoError(t, store.Flush(Counts{Accepted: 5}))
	store.Close()

	// Reopen, as a new process would
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	totals, err := store.Totals()
	require.NoError(t, err)
	require.Equal(t, int64(7), totals[CounterAccepted])
}

func TestStore_TotalsSinceToday(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Flush(Counts{Requested: 4}))

	totals, err := store.TotalsSince(0)
	require.NoError(t, err)
	require.Equal(t, int64(4), totals[CounterRequested])
}

func TestStore_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Flush(Counts{Served: 9}))
	require.NoError(t, store.Reset())

	totals, err := store.Totals()
	require.NoError(t, err)
	require.Equal(t, int64(0), totals[CounterServed])
}

func TestStore_ClosedOperationsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")

	store, err := Open(path)
	require.NoError(t, err)
	store.Close()

	require.ErrorIs(t, store.Flush(Counts{Requested: 1}), ErrStoreClosed)
	_, err = store.Totals()
	require.ErrorIs(t, err, ErrStoreClosed)

	// Double close stays nil
	require.NoError(t, store.Close())
}
