// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points NDJDIFF_CFG_FILE at a testdata file, reloads the global
// Config with the given namespace and runs fn.
func withConfig(t *testing.T, testFile, namespace string, fn func(t *testing.T)) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testFile))
	require.NoError(t, err)

	t.Setenv("NDJDIFF_CFG_FILE", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, err = Load(namespace)
	require.NoError(t, err)

	fn(t)
}

func TestLoad(t *testing.T) {
	withConfig(t, "basic.yaml", "", func(t *testing.T) {
		assert.NotEmpty(t, Config.Source)
		assert.Contains(t, Config.Data, "key")
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("NDJDIFF_CFG_FILE", filepath.Join("testdata", "nope.yaml"))
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, err := Load()
	assert.Error(t, err)
}

func TestGetString(t *testing.T) {
	withConfig(t, "basic.yaml", "", func(t *testing.T) {
		got, err := GetString("key")
		assert.NoError(t, err)
		assert.Equal(t, "id", got)

		got, err = GetString("missing", "fallback")
		assert.NoError(t, err)
		assert.Equal(t, "fallback", got)

		_, err = GetString("missing")
		assert.Error(t, err)
	})
}

func TestGetStringNamespaced(t *testing.T) {
	withConfig(t, "basic.yaml", "diff", func(t *testing.T) {
		// Namespaced key wins over the top-level one.
		got, err := GetString("key")
		assert.NoError(t, err)
		assert.Equal(t, "meta.uid", got)
	})
}

func TestGetInt(t *testing.T) {
	withConfig(t, "basic.yaml", "", func(t *testing.T) {
		got, err := GetInt("purge_hours")
		assert.NoError(t, err)
		assert.Equal(t, 24, got)

		got, err = GetInt("missing", 48)
		assert.NoError(t, err)
		assert.Equal(t, 48, got)

		// Existing non-int value.
		_, err = GetInt("key")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "basic.yaml", "", func(t *testing.T) {
		got, err := GetStringSlice("diff.defaults")
		assert.NoError(t, err)
		assert.Equal(t, []string{"--output text", "--color"}, got)

		def := []string{"--titles"}
		got, err = GetStringSlice("missing", def)
		assert.NoError(t, err)
		assert.Equal(t, def, got)
	})
}
