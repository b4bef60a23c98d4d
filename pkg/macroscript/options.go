package macroscript

import (
	"github.com/nate-chandler/macroscript/internal/macroconfig"
	"github.com/nate-chandler/macroscript/internal/rewrite"
	"github.com/nate-chandler/macroscript/internal/store"
)

// config accumulates Option values before New builds the Runtime.
type config struct {
	noStdlib     bool
	store        store.Store
	macroConfigs []macroconfig.Config
	engineOpts   []rewrite.Option
}

// Option configures a Runtime.
type Option func(*config)

// WithNoStdlib skips registering the built-in handler library, leaving
// only the engine's core handlers (try/load/store/drop/get/is_stored).
func WithNoStdlib() Option {
	return func(c *config) { c.noStdlib = true }
}

// WithSQLiteStore configures SQLite persistence of user definitions at
// the given path.
func WithSQLiteStore(path string) Option {
	return func(c *config) {
		s, err := store.NewSQLite(path)
		if err == nil {
			c.store = s
		}
	}
}

// WithMemoryStore configures an in-memory definition store (for
// testing, or a session with no "--db" path to persist to).
func WithMemoryStore() Option {
	return func(c *config) { c.store = store.NewMemory() }
}

// WithStore configures an arbitrary store.Store implementation.
func WithStore(s store.Store) Option {
	return func(c *config) { c.store = s }
}

// WithMacroConfig loads name/pattern definitions from a TOML file (per
// internal/macroconfig) and registers them alongside the stdlib.
func WithMacroConfig(path string) Option {
	return func(c *config) {
		cfg, err := macroconfig.Load(path)
		if err != nil {
			return
		}
		c.macroConfigs = append(c.macroConfigs, cfg)
	}
}

// WithStepBudget bounds the rewrite engine's per-Eval step count. 0
// disables the check.
func WithStepBudget(n int) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, rewrite.WithStepBudget(n)) }
}

// WithMaxTryDepth overrides the rewrite engine's try-stack depth cap.
func WithMaxTryDepth(n int) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, rewrite.WithMaxTryDepth(n)) }
}
