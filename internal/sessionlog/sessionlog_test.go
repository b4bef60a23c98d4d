// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package sessionlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenWithoutPathIsNoop(t *testing.T) {
	l, err := Open("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	if l.ID().String() == "" {
		t.Fatal("expected a non-empty session id")
	}
	l.Logf("this should go nowhere")
}

func TestLogfAppendsToSharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")

	a, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error opening a: %v", err)
	}
	a.Logf("from a: %d", 1)
	if err := a.Close(); err != nil {
		t.Fatalf("unexpected error closing a: %v", err)
	}

	b, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error opening b: %v", err)
	}
	b.Logf("from b: %d", 2)
	if err := b.Close(); err != nil {
		t.Fatalf("unexpected error closing b: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading log: %v", err)
	}
	contents := string(data)

	if !strings.Contains(contents, a.ID().String()) {
		t.Errorf("log missing session a's id:\n%s", contents)
	}
	if !strings.Contains(contents, b.ID().String()) {
		t.Errorf("log missing session b's id:\n%s", contents)
	}
	if !strings.Contains(contents, "from a: 1") || !strings.Contains(contents, "from b: 2") {
		t.Errorf("log missing expected lines:\n%s", contents)
	}
}

func TestDistinctSessionsGetDistinctIDs(t *testing.T) {
	a, err := Open("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()
	b, err := Open("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer b.Close()

	if a.ID() == b.ID() {
		t.Error("expected distinct session ids")
	}
}
