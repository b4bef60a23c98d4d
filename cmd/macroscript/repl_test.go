package main

import "testing"

func TestHistoryCommitSkipsBlanksAndRepeats(t *testing.T) {
	h := newHistory()
	h.commit("")
	h.commit("foo")
	h.commit("foo")
	h.commit("bar")

	if len(h.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(h.entries), h.entries)
	}
	if h.entries[0] != "foo" || h.entries[1] != "bar" {
		t.Fatalf("unexpected entries: %v", h.entries)
	}
}

func TestHistoryPrevNextRecallAndDraft(t *testing.T) {
	h := newHistory()
	h.commit("one")
	h.commit("two")

	entry, ok := h.prev("typing...")
	if !ok || entry != "two" {
		t.Fatalf("expected to recall %q, got %q (ok=%v)", "two", entry, ok)
	}

	entry, ok = h.prev("typing...")
	if !ok || entry != "one" {
		t.Fatalf("expected to recall %q, got %q (ok=%v)", "one", entry, ok)
	}

	if _, ok := h.prev("typing..."); ok {
		t.Fatal("expected prev to fail past the oldest entry")
	}

	entry, ok = h.next()
	if !ok || entry != "two" {
		t.Fatalf("expected to recall %q, got %q (ok=%v)", "two", entry, ok)
	}

	entry, ok = h.next()
	if !ok || entry != "typing..." {
		t.Fatalf("expected draft %q restored, got %q (ok=%v)", "typing...", entry, ok)
	}

	if _, ok := h.next(); ok {
		t.Fatal("expected next to fail once past the draft")
	}
}

func TestHistoryCommitResetsRecallPosition(t *testing.T) {
	h := newHistory()
	h.commit("one")
	h.prev("typing...")
	h.commit("two")

	if h.pos != len(h.entries) {
		t.Fatalf("expected recall position reset after commit, pos=%d len=%d", h.pos, len(h.entries))
	}
}

func TestLineEditorInsertAtCursor(t *testing.T) {
	cases := []struct {
		line   string
		cursor int
		r      rune
		want   string
	}{
		{"", 0, 'a', "a"},
		{"ac", 1, 'b', "abc"},
		{"ab", 2, 'c', "abc"},
	}
	for _, c := range cases {
		e := &lineEditor{line: []rune(c.line), cursor: c.cursor, hist: newHistory()}
		e.insert(c.r)
		if got := string(e.line); got != c.want {
			t.Errorf("insert(%q) into %q at %d = %q, want %q", c.r, c.line, c.cursor, got, c.want)
		}
	}
}

func TestLineEditorDecodeRuneASCII(t *testing.T) {
	e := &lineEditor{hist: newHistory()}
	r, ok := e.decodeRune('a')
	if !ok || r != 'a' {
		t.Fatalf("decodeRune('a') = %q, %v; want 'a', true", r, ok)
	}
}

func TestLineEditorDecodeRuneControlByteRejected(t *testing.T) {
	e := &lineEditor{hist: newHistory()}
	if _, ok := e.decodeRune(0x01); ok {
		t.Fatal("expected control byte to be rejected")
	}
}
