// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package macroscript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalWithStdlib(t *testing.T) {
	rt := New(WithMemoryStore())
	defer rt.Close()

	out, err := rt.Eval("[add/2/3]")
	require.NoError(t, err)
	assert.Equal(t, "5", out)
}

func TestNoStdlibDropsHandlers(t *testing.T) {
	rt := New(WithNoStdlib(), WithMemoryStore())
	defer rt.Close()

	_, err := rt.Eval("[add/2/3]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	out, err := rt.Eval("[store/x/1][load/x]")
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestDefinePersistsAcrossRuntimes(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "defs.db")

	rt1 := New(WithSQLiteStore(dbPath))
	require.NoError(t, rt1.Define("square", "[multiply/$1/$1]"))
	require.NoError(t, rt1.Close())

	rt2 := New(WithSQLiteStore(dbPath))
	defer rt2.Close()
	out, err := rt2.Eval("[square/4]")
	require.NoError(t, err)
	assert.Equal(t, "16", out)
}

func TestEvalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.macro")
	require.NoError(t, os.WriteFile(path, []byte("[add/1/2]"), 0o644))

	rt := New(WithMemoryStore())
	defer rt.Close()

	out, err := rt.EvalFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3", out)
}

func TestWithMacroConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "macros.toml")
	require.NoError(t, os.WriteFile(path, []byte(`square = "[multiply/$1/$1]"`+"\n"), 0o644))

	rt := New(WithMemoryStore(), WithMacroConfig(path))
	defer rt.Close()

	out, err := rt.Eval("[square/5]")
	require.NoError(t, err)
	assert.Equal(t, "25", out)
}

func TestHandlersListsRegisteredNames(t *testing.T) {
	rt := New(WithMemoryStore())
	defer rt.Close()

	names := rt.Handlers()
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "add")
	assert.Contains(t, joined, "replace")
}

func TestWithStepBudgetPropagates(t *testing.T) {
	rt := New(WithMemoryStore(), WithStepBudget(1))
	defer rt.Close()

	_, err := rt.Eval("[store/a/0][store/b/0]")
	require.Error(t, err)
}
