// Package macroscript is the public API for the bracket-macro
// interpreter: a thin, stateful wrapper around internal/rewrite that
// owns a handler registry and an optional persistent definition store.
//
// Adapted from _examples/nperez-losp/pkg/losp/losp.go: losp's Runtime
// wraps an eval.Evaluator plus an LLM provider and async registry; this
// Runtime wraps a rewrite.Engine plus a handler.Registry and drops every
// LLM/provider/async concern (SPEC_FULL.md §5 — not part of this spec).
package macroscript

import (
	"io"
	"os"

	"github.com/nate-chandler/macroscript/internal/handler"
	"github.com/nate-chandler/macroscript/internal/rewrite"
	"github.com/nate-chandler/macroscript/internal/stdlib"
	"github.com/nate-chandler/macroscript/internal/store"
	"github.com/nate-chandler/macroscript/internal/textmacro"
)

// Runtime evaluates macroscript text against a handler registry built
// from the stdlib, optional config-file text-macros, and optional
// persisted user definitions.
type Runtime struct {
	engine   *rewrite.Engine
	registry handler.Registry
	store    store.Store
}

// New builds a Runtime with the given options. The stdlib handler
// library is registered by default; WithNoStdlib skips it for a bare-core
// runtime (useful for testing the engine in isolation).
func New(opts ...Option) *Runtime {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	reg := handler.NewRegistry()
	if !cfg.noStdlib {
		stdlib.Register(reg)
	}
	for _, mc := range cfg.macroConfigs {
		mc.Register(reg)
	}

	r := &Runtime{
		engine:   rewrite.New(cfg.engineOpts...),
		registry: reg,
		store:    cfg.store,
	}

	if r.store != nil {
		defs, err := r.store.List()
		if err == nil {
			for _, d := range defs {
				reg.Register(d.Name, textmacro.New(d.Pattern))
			}
		}
	}

	return r
}

// Eval evaluates a single macroscript string to completion.
func (r *Runtime) Eval(input string) (string, error) {
	return r.engine.Apply(input, r.registry)
}

// EvalReader reads all of reader and evaluates it.
func (r *Runtime) EvalReader(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return r.Eval(string(data))
}

// EvalFile evaluates the contents of the file at path.
func (r *Runtime) EvalFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return r.EvalReader(f)
}

// Define registers name as a text-macro handler for pattern and, if a
// store is configured, persists it for future Runtime instances.
func (r *Runtime) Define(name, pattern string) error {
	r.registry.Register(name, textmacro.New(pattern))
	if r.store != nil {
		return r.store.Put(name, pattern)
	}
	return nil
}

// Handlers returns the sorted-by-caller-irrelevant set of every
// registered handler name, core handlers excluded (those are always
// available and are not part of the registry).
func (r *Runtime) Handlers() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	return names
}

// Registry exposes the underlying handler registry, for callers that
// need direct access.
func (r *Runtime) Registry() handler.Registry {
	return r.registry
}

// Close releases the configured store, if any.
func (r *Runtime) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
