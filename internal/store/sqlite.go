// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"database/sql"
	"fmt"
	"sync"
)

// SchemaVersion is the current on-disk schema version.
const SchemaVersion = "2"

// SQLite is a SQLite-backed Store, persisting macro definitions as an
// append-only log of versions (one row per save), with Get/List always
// reporting the latest version per name.
//
// Adapted from _examples/nperez-losp/internal/store/sqlite.go: that
// file's schema additionally tracked a corpus/embeddings/FTS5 surface
// (CreateFTSTable, StoreEmbedding, StoreVectorIndex, ...) for losp's
// LLM-script corpus search. That feature has no counterpart in
// SPEC_FULL.md (see DESIGN.md), so NewSQLite here creates none of those
// tables rather than carrying them along unused; the versioned
// "expressions" table (losp's migrateToV3) survives, renamed
// "definitions" and storing plain pattern strings instead of
// expr.Expr's serialized tree.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path, using
// modernc.org/sqlite (a pure-Go driver, registered in
// sqlite_driver_native.go) so the CLI stays a single static binary
// with no cgo dependency.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS definitions (
			name    TEXT    NOT NULL,
			version INTEGER NOT NULL,
			pattern TEXT    NOT NULL,
			ts      TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%f', 'now')),
			PRIMARY KEY (name, version)
		);
		CREATE INDEX IF NOT EXISTS idx_definitions_latest
			ON definitions(name, version DESC);
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}

	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "" {
		version = SchemaVersion
	}
	if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}
	if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Get retrieves the latest version of a definition by name.
func (s *SQLite) Get(name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pattern string
	err := s.db.QueryRow(
		"SELECT pattern FROM definitions WHERE name = ? ORDER BY version DESC LIMIT 1", name,
	).Scan(&pattern)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pattern, true, nil
}

// Put appends a new version of a definition (a no-op if the pattern is
// unchanged from the latest version).
func (s *SQLite) Put(name, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latestPattern string
	var latestVersion int
	err := s.db.QueryRow(
		"SELECT version, pattern FROM definitions WHERE name = ? ORDER BY version DESC LIMIT 1", name,
	).Scan(&latestVersion, &latestPattern)
	if err == sql.ErrNoRows {
		_, err = s.db.Exec(
			"INSERT INTO definitions (name, version, pattern) VALUES (?, 1, ?)", name, pattern,
		)
		return err
	}
	if err != nil {
		return err
	}
	if latestPattern == pattern {
		return nil
	}

	_, err = s.db.Exec(
		"INSERT INTO definitions (name, version, pattern) VALUES (?, ?, ?)",
		name, latestVersion+1, pattern,
	)
	return err
}

// Delete removes all versions of a definition by name.
func (s *SQLite) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM definitions WHERE name = ?", name)
	return err
}

// List returns the latest version of every persisted definition.
func (s *SQLite) List() ([]Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT d.name, d.pattern FROM definitions d
		INNER JOIN (
			SELECT name, MAX(version) AS version FROM definitions GROUP BY name
		) latest ON d.name = latest.name AND d.version = latest.version
		ORDER BY d.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.Name, &d.Pattern); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// GetHistory returns version entries for a name, newest first. If
// limit <= 0, all versions are returned.
func (s *SQLite) GetHistory(name string, limit int) ([]VersionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(
			"SELECT version, pattern, ts FROM definitions WHERE name = ? ORDER BY version DESC LIMIT ?",
			name, limit,
		)
	} else {
		rows, err = s.db.Query(
			"SELECT version, pattern, ts FROM definitions WHERE name = ? ORDER BY version DESC",
			name,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []VersionEntry
	for rows.Next() {
		var ve VersionEntry
		if err := rows.Scan(&ve.Version, &ve.Pattern, &ve.Ts); err != nil {
			return nil, err
		}
		entries = append(entries, ve)
	}
	return entries, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// getMetadataUnlocked retrieves metadata without locking (caller must
// hold s.mu, or call during NewSQLite before s escapes).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadataUnlocked stores metadata without locking.
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

var (
	_ Store        = (*SQLite)(nil)
	_ HistoryStore = (*SQLite)(nil)
)
