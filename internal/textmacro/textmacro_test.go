// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package textmacro

import "testing"

// Cases transcribed from the doc-comment example on TextMacro in
// _examples/original_source/src/textmacro.rs. The "square" case there
// is verified end to end through the full rewrite engine (see
// internal/rewrite's scenario tests); here it's checked one level
// lower, at the point where Apply hands back the substituted pattern
// before the engine re-scans it.
func TestMacroApply(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		args    []string
		want    string
	}{
		{"escaped_dollar", `\$1`, []string{"2"}, "$1"},
		{"bad_select_indexed", "$$1", []string{"2", "α"}, "α"},
		{"bad_select_out_of_range", "$$1", []string{"3"}, "$3"},
		{"bad_select_zero", "$$1", []string{"0", "1", "2", "3"}, "0/1/2/3"},
		{"bad_select_count", "$$1", []string{"#", "β", "2", "3"}, "4"},
		{"square", "[multiply/$1/$1]", []string{"4"}, "[multiply/4/4]"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := New(c.pattern)
			got, err := m.Apply(c.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("Apply(%q, %v) = %q, want %q", c.pattern, c.args, got, c.want)
			}
		})
	}
}

func TestMacroApplyArgCountAndJoin(t *testing.T) {
	m := New("count=$# joined=$0")
	got, err := m.Apply([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "count=3 joined=a/b/c"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMacroApplyPreexistingSentinelCharacter(t *testing.T) {
	// Documented pitfall (spec.md §4.3): a literal sentinel rune in the
	// pattern is also folded to "$" at the end, since it's used
	// internally to protect escaped dollars during re-scanning.
	m := New(string(sentinel) + "1")
	got, err := m.Apply([]string{"x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "$1" {
		t.Errorf("got %q, want %q", got, "$1")
	}
}
