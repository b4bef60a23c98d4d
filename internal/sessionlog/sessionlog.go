// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package sessionlog tags a single repl or watch invocation with a
// session id and, optionally, appends timestamped lines to a file
// shared across invocations so separate transcripts can be correlated
// after the fact.
//
// Grounded on the session-id-plus-shared-log-file role SPEC_FULL.md §3
// assigns to github.com/google/uuid: both cmd/macroscript/repl.go and
// cmd/macroscript/watch.go construct one of these instead of calling
// uuid.New() directly, so the id and the correlation file are the same
// mechanism for both commands rather than one command printing an id
// that goes nowhere.
package sessionlog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger carries a session id and, if opened with a non-empty path, a
// handle to a shared log file that every Logf call appends to.
type Logger struct {
	id uuid.UUID

	mu sync.Mutex
	f  *os.File
}

// Open creates a Logger with a fresh session id. If path is empty, the
// Logger still has a usable id but Logf is a no-op. If path is
// non-empty, it is opened in append mode (created if absent) so
// multiple processes pointed at the same path interleave their lines
// rather than overwrite each other.
func Open(path string) (*Logger, error) {
	l := &Logger{id: uuid.New()}
	if path == "" {
		return l, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sessionlog: %w", err)
	}
	l.f = f
	return l, nil
}

// ID returns the session id.
func (l *Logger) ID() uuid.UUID {
	return l.id
}

// Logf appends a timestamped, session-tagged line to the shared log
// file. It is a no-op if no file was configured.
func (l *Logger) Logf(format string, args ...any) {
	if l.f == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, "%s [%s] %s\n", time.Now().UTC().Format(time.RFC3339), l.id, fmt.Sprintf(format, args...))
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
