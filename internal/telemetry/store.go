// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// store.go - SQLite-backed persistence for usage counters.

package telemetry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrStoreClosed = errors.New("telemetry store closed")
)

// schema holds day-bucketed counters. Days use the local date so "today"
// matches what the user sees.
const schema = `
CREATE TABLE IF NOT EXISTS usage (
	day   TEXT    NOT NULL,
	name  TEXT    NOT NULL,
	value INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (day, name)
);
`

// =============================================================================
// STORE
// =============================================================================

// Store persists usage counters in a local SQLite database.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// DefaultPath returns the default counter database path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ghostline", "telemetry.db"), nil
}

// Open opens (creating if needed) the counter database at path. An empty
// path uses DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Flush adds the session deltas to today's buckets. Zero deltas write nothing.
func (s *Store) Flush(c Counts) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	day := time.Now().Format("2006-01-02")

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for name, delta := range c.asMap() {
		if delta == 0 {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO usage (day, name, value) VALUES (?, ?, ?)
			ON CONFLICT (day, name) DO UPDATE SET value = value + excluded.value
		`, day, name, delta)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Totals returns the all-time value of every counter. Counters that were
// never written report zero.
func (s *Store) Totals() (map[string]int64, error) {
	return s.totalsSince("")
}

// TotalsSince returns counter totals for days on or after the given number
// of days ago (0 = today only).
func (s *Store) TotalsSince(days int) (map[string]int64, error) {
	if days < 0 {
		days = 0
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	return s.totalsSince(cutoff)
}

func (s *Store) totalsSince(cutoff string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	totals := make(map[string]int64, len(AllCounters))
	for _, name := range AllCounters {
		totals[name] = 0
	}

	query := "SELECT name, SUM(value) FROM usage GROUP BY name"
	args := []interface{}{}
	if cutoff != "" {
		query = "SELECT name, SUM(value) FROM usage WHERE day >= ? GROUP BY name"
		args = append(args, cutoff)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		totals[name] = value
	}
	return totals, rows.Err()
}

// Reset drops all recorded counters.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	_, err := s.db.Exec("DELETE FROM usage")
	return err
}

// Close flushes nothing further and releases the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
