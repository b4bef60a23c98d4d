// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package macroconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nate-chandler/macroscript/internal/handler"
)

func TestLoadAndRegister(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "macros.toml")
	contents := "shout = \"[upper/$1]!\"\ngreet = \"Hello, $1.\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "[upper/$1]!", cfg["shout"])
	assert.Equal(t, "Hello, $1.", cfg["greet"])

	reg := handler.NewRegistry()
	cfg.Register(reg)

	h, ok := reg.Lookup("shout")
	require.True(t, ok)
	out, err := h.Apply([]string{"hi"})
	require.NoError(t, err)
	assert.Equal(t, "[upper/hi]!", out)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestRegisterShadowsExisting(t *testing.T) {
	reg := handler.NewRegistry()
	reg.RegisterFunc("upper", func(args []string) (string, error) { return "stdlib-upper", nil })

	cfg := Config{"upper": "project-upper"}
	cfg.Register(reg)

	h, ok := reg.Lookup("upper")
	require.True(t, ok)
	out, err := h.Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, "project-upper", out)
}
