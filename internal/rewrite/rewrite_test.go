// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package rewrite

import (
	"testing"

	"github.com/nate-chandler/macroscript/internal/handler"
	"github.com/nate-chandler/macroscript/internal/stdlib"
	"github.com/nate-chandler/macroscript/internal/textmacro"
)

func newTestRegistry() handler.Registry {
	reg := handler.NewRegistry()
	stdlib.Register(reg)
	return reg
}

// Scenarios transcribed verbatim from spec.md §8's "end-to-end
// scenarios" table.
func TestEndToEndScenarios(t *testing.T) {
	reg := newTestRegistry()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"unescape-then-add", `[unescape/\[add\/5\/5\/3\]]`, "13"},
		{"try-catches-shift-error", `[try/\[shl\/5\/100\]]`, "false/shift amount of 100 is too large"},
		{"try-succeeds", `[try/\[add\/5\/5\]]`, "true/10"},
		{"store-then-load", `[store/x/5][load/x]`, "5"},
		{"replace-vaporeon", `[replace/vaporeon/(\[aeiou\])/$1$1]`, "vaapooreeoon"},
		{"divide-edge-cases", `[divide/1/0] [divide/-1/0] [divide/0/0]`, "inf -inf NaN"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := New()
			got, err := e.Apply(c.input, reg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("Apply(%q) = %q, want %q", c.input, got, c.want)
			}
		})
	}
}

func TestLoadOnFreshStateErrors(t *testing.T) {
	reg := newTestRegistry()
	e := New()
	_, err := e.Apply("[load/x]", reg)
	if err == nil {
		t.Fatal("expected an error")
	}
	want := `error in macro load: variable "x" does not currently exist`
	if err.Error() != want {
		t.Errorf("err.Error() = %q, want %q", err.Error(), want)
	}
}

func TestTextMacroSquare(t *testing.T) {
	reg := newTestRegistry()
	reg.Register("square", textmacro.New("[multiply/$1/$1]"))

	e := New()
	got, err := e.Apply("[square/4]", reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "16" {
		t.Errorf("got %q, want %q", got, "16")
	}
}

func TestTextMacroBadSelect(t *testing.T) {
	reg := newTestRegistry()
	reg.Register("bad_select", textmacro.New("$$1"))

	e := New()
	got, err := e.Apply("[bad_select/2/α]", reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "α" {
		t.Errorf("got %q, want %q", got, "α")
	}
}

func TestRepeatLoop(t *testing.T) {
	reg := newTestRegistry()
	e := New()
	input := `[store/x/0][repeat/\[store\/x\/\[add\/\[load\/x\]\/1\]\]\[load\/x\]/5]`
	got, err := e.Apply(input, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "12345" {
		t.Errorf("got %q, want %q", got, "12345")
	}
}

// Invariant from spec.md §8: variable-store effects from inside a
// failed try survive the failure. After
// "[try/\[store\/x\/1\]\[error\/bad\]][load/x]", the store call runs
// and commits before "error" raises, so the trailing load/x succeeds.
func TestVariableStorePersistsAcrossTryFailure(t *testing.T) {
	reg := newTestRegistry()
	e := New()
	got, err := e.Apply(`[try/\[store\/x\/1\]\[error\/bad\]][load/x]`, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "false/bad1" {
		t.Errorf("got %q, want %q", got, "false/bad1")
	}
}

// Invariant from spec.md §8: input with no unescaped '[' passes through
// unchanged.
func TestNoBracketsPassesThrough(t *testing.T) {
	reg := newTestRegistry()
	e := New()
	input := `no brackets here, just \[ an escaped one \]`
	got, err := e.Apply(input, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("got %q, want %q (unchanged)", got, input)
	}
}

func TestStepBudgetExceeded(t *testing.T) {
	reg := newTestRegistry()
	e := New(WithStepBudget(2))
	_, err := e.Apply("[store/x/0][store/y/0][store/z/0]", reg)
	if err == nil {
		t.Fatal("expected a step budget error")
	}
}

func TestNonexistentHandler(t *testing.T) {
	reg := newTestRegistry()
	e := New()
	_, err := e.Apply("[this_does_not_exist/1]", reg)
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "error in macro this_does_not_exist: not found"
	if err.Error() != want {
		t.Errorf("err.Error() = %q, want %q", err.Error(), want)
	}
}
