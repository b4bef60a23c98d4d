// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package macroconfig loads project-specific text-macro definitions
// from a TOML file, letting a user extend the handler registry without
// recompiling — the role losp's "--no-stdlib"/prelude flags play for
// losp's own prelude, per SPEC_FULL.md §3.
//
// A config file is a flat table of name to pattern:
//
//	shout = "[upper/$1]!"
//	greet = "Hello, $1."
//
// Each entry is registered as an internal/textmacro.Macro handler.
package macroconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nate-chandler/macroscript/internal/handler"
	"github.com/nate-chandler/macroscript/internal/textmacro"
)

// Config is the decoded contents of a macro config file: handler name
// to text-macro pattern.
type Config map[string]string

// Load parses a TOML file at path into a Config.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("macroconfig: %w", err)
	}
	return cfg, nil
}

// Register installs every definition in cfg into reg as a
// textmacro.Macro handler, overwriting any existing registration of the
// same name (so a project config can shadow a stdlib handler).
func (cfg Config) Register(reg handler.Registry) {
	for name, pattern := range cfg {
		reg.Register(name, textmacro.New(pattern))
	}
}
