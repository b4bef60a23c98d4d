// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package rewrite implements the fixpoint rewrite engine: the
// try-stack, variable store, and dispatch loop that drives macro
// expansion to completion.
//
// Grounded on the control flow of
// _examples/original_source/src/execution.rs (apply_macros) and on the
// engine/option-struct shape of
// _examples/nperez-losp/internal/eval/eval.go (Evaluator, functional
// Options, New(opts...)).
package rewrite

import (
	"fmt"
	"strings"

	"github.com/nate-chandler/macroscript/internal/handler"
	"github.com/nate-chandler/macroscript/internal/scanner"
)

const defaultStepBudget = 100_000

// defaultMaxTryDepth caps in-flight try frames, per spec.md §5's
// "reasonable hard cap (e.g. 1024)".
const defaultMaxTryDepth = 1024

// Option configures an Engine constructed by New.
type Option func(*Engine)

// WithStepBudget bounds the number of rewrite steps a single Apply call
// may perform before it fails with a User error. 0 disables the check.
func WithStepBudget(n int) Option {
	return func(e *Engine) { e.stepBudget = n }
}

// WithMaxTryDepth overrides the try-stack depth cap.
func WithMaxTryDepth(n int) Option {
	return func(e *Engine) { e.maxTryDepth = n }
}

// Engine holds the configuration shared by successive Apply calls. It
// carries no per-evaluation state: variables and the try stack are
// local to each Apply, matching spec.md §3's variable-store lifecycle
// ("created empty at the start of each top-level evaluation... destroyed
// when top-level evaluation returns").
type Engine struct {
	stepBudget  int
	maxTryDepth int
}

// New builds an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		stepBudget:  defaultStepBudget,
		maxTryDepth: defaultMaxTryDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// frame is a try frame: a buffer being rewritten and the byte range in
// its parent's buffer where the frame's eventual result will land.
type frame struct {
	buf  string
	hole scanner.Range
}

// Apply rewrites input to a fixpoint against reg, per spec.md §4.2.
func (e *Engine) Apply(input string, reg handler.Registry) (string, error) {
	stack := []frame{{buf: input, hole: scanner.Range{Start: 0, End: len(input)}}}
	vars := make(map[string]string)
	steps := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		buf := top.buf

	innerLoop:
		for {
			r, found := scanner.FindInnermost(buf)
			if !found {
				// Frame finished: splice a success token into the parent,
				// or return buf if this was the outermost frame.
				if len(stack) == 0 {
					return buf, nil
				}
				parent := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				stack = append(stack, frame{
					buf:  spliceString(parent.buf, top.hole, "true/"+buf),
					hole: parent.hole,
				})
				break innerLoop
			}

			if e.stepBudget > 0 {
				steps++
				if steps > e.stepBudget {
					err := handler.NewError("apply", handler.UserError("step budget of %d exceeded", e.stepBudget))
					var ok bool
					buf, stack, ok = raiseInto(stack, top.hole, err)
					if !ok {
						return "", err
					}
					break innerLoop
				}
			}

			interior := buf[r.Start+1 : r.End-1]
			rawName, rawArgs := scanner.SplitArguments(interior)
			name := scanner.Unescape(rawName)
			args := make([]string, len(rawArgs))
			for i, a := range rawArgs {
				args[i] = scanner.Unescape(a)
			}

			if name == "try" {
				if len(args) < 1 {
					err := handler.NewError("try", handler.NotEnoughArgs(1, len(args)))
					var ok bool
					buf, stack, ok = raiseInto(stack, top.hole, err)
					if !ok {
						return "", err
					}
					break innerLoop
				}
				if e.maxTryDepth > 0 && len(stack)+1 >= e.maxTryDepth {
					err := handler.NewError("try", handler.UserError("try-stack depth of %d exceeded", e.maxTryDepth))
					var ok bool
					buf, stack, ok = raiseInto(stack, top.hole, err)
					if !ok {
						return "", err
					}
					break innerLoop
				}
				stack = append(stack, frame{buf: buf, hole: top.hole})
				stack = append(stack, frame{buf: args[0], hole: r})
				break innerLoop
			}

			result, mErr := dispatchCore(name, args, vars, reg)
			if mErr != nil {
				var ok bool
				buf, stack, ok = raiseInto(stack, top.hole, mErr)
				if !ok {
					return "", mErr
				}
				break innerLoop
			}
			buf = spliceString(buf, r, result)
		}
	}

	// Unreachable: the loop above always returns or continues via the
	// stack. Kept for completeness if stack somehow empties mid-frame.
	return "", fmt.Errorf("rewrite: internal error: stack exhausted without result")
}

// raiseInto handles error propagation for a frame whose hole is hole
// and whose enclosing stack (with the frame itself already popped) is
// stack. It walks to the nearest ancestor, splices a failure token into
// its buffer, and returns the updated (buf, stack, true) to resume the
// outer loop with. If stack is empty, it returns (_, _, false) meaning
// the caller must return err directly.
func raiseInto(stack []frame, hole scanner.Range, err *handler.MacroError) (string, []frame, bool) {
	if len(stack) == 0 {
		return "", stack, false
	}
	parent := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	// The failure token carries only the error kind's rendering, not the
	// "error in macro <name>:" wrapper that err.Error() adds for the Go
	// error value returned to a top-level caller — spec.md §8's worked
	// scenarios (e.g. `false/shift amount of 100 is too large`, with no
	// "error in macro shl:" prefix) are the authoritative form here.
	token := "false/" + escapeFailureText(err.Kind.String())
	newBuf := spliceString(parent.buf, hole, token)
	stack = append(stack, frame{buf: newBuf, hole: parent.hole})
	return newBuf, stack, true
}

// escapeFailureText applies spec.md §6's failure-token escaping:
// '\' -> '\\', '[' -> '\[', ']' -> '\]'. '/' is deliberately untouched.
func escapeFailureText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '[':
			b.WriteString(`\[`)
		case ']':
			b.WriteString(`\]`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// spliceString replaces r within s with replacement.
func spliceString(s string, r scanner.Range, replacement string) string {
	var b strings.Builder
	b.Grow(len(s) - r.Len() + len(replacement))
	b.WriteString(s[:r.Start])
	b.WriteString(replacement)
	b.WriteString(s[r.End:])
	return b.String()
}

// dispatchCore handles five of the six engine-state-touching core
// handlers (load/store/drop/get/is_stored), plus registry fallthrough. try is
// handled by the caller since it manipulates the try stack itself, not
// just vars.
func dispatchCore(name string, args []string, vars map[string]string, reg handler.Registry) (string, *handler.MacroError) {
	switch name {
	case "load":
		if len(args) < 1 {
			return "", handler.NewError("load", handler.NotEnoughArgs(1, len(args)))
		}
		v, ok := vars[args[0]]
		if !ok {
			return "", handler.NewError("load", handler.UserError("variable %q does not currently exist", args[0]))
		}
		return v, nil
	case "store":
		if len(args) < 2 {
			return "", handler.NewError("store", handler.NotEnoughArgs(2, len(args)))
		}
		vars[args[0]] = args[1]
		return "", nil
	case "drop":
		if len(args) < 1 {
			return "", handler.NewError("drop", handler.NotEnoughArgs(1, len(args)))
		}
		delete(vars, args[0])
		return "", nil
	case "get":
		if len(args) < 2 {
			return "", handler.NewError("get", handler.NotEnoughArgs(2, len(args)))
		}
		v, ok := vars[args[0]]
		if !ok {
			v = args[1]
			vars[args[0]] = v
		}
		return v, nil
	case "is_stored":
		if len(args) < 1 {
			return "", handler.NewError("is_stored", handler.NotEnoughArgs(1, len(args)))
		}
		_, ok := vars[args[0]]
		if ok {
			return "true", nil
		}
		return "false", nil
	default:
		h, ok := reg.Lookup(name)
		if !ok {
			return "", handler.NewError(name, handler.NonexistentKind())
		}
		out, err := h.Apply(args)
		if err != nil {
			if kind, ok := err.(interface{ ErrorKind() handler.ErrorKind }); ok {
				return "", handler.NewError(name, kind.ErrorKind())
			}
			return "", handler.NewError(name, handler.UserError("%s", err.Error()))
		}
		return out, nil
	}
}
