// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/propgrid/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func run(t *testing.T, args ...string) (string, error) {
	cmd := RootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T) (dir, file string) {
	dir = t.TempDir()
	file = filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"name":"box","width":10,"visible":true}`), 0o644))
	return dir, file
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 12.0, parseValue("12"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, "hello", parseValue("hello"))
	assert.Equal(t, "hello", parseValue(`"hello"`))
}

func TestSet(t *testing.T) {
	dir, file := writeDoc(t)
	settings := filepath.Join(dir, "settings.toml")

	out, err := run(t, "--settings", settings, "set", file, "width=14", "name=crate")
	require.NoError(t, err)
	assert.Equal(t, 14.0, gjson.Get(out, "width").Float())
	assert.Equal(t, "crate", gjson.Get(out, "name").String())

	_, err = run(t, "--settings", settings, "set", file, "width=14", "--write")
	require.NoError(t, err)
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 14.0, gjson.GetBytes(b, "width").Float())

	_, err = run(t, "--settings", settings, "set", file, "width")
	assert.Error(t, err)
	_, err = run(t, "--settings", settings, "set", file, "missing=1")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	dir, file := writeDoc(t)
	settings := filepath.Join(dir, "settings.toml")

	out, err := run(t, "--settings", settings, "show", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Document")
	assert.Contains(t, out, "box")

	out, err = run(t, "--settings", settings, "show", file, "--filter", "wid")
	require.NoError(t, err)
	assert.Contains(t, out, "10")
	assert.NotContains(t, out, "box")

	_, err = run(t, "--settings", settings, "show", file, "--mode", "bogus")
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "sub", "settings.yaml")

	out, err := run(t, "--settings", settings, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "max_commands = 100")

	out, err = run(t, "--settings", settings, "settings", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "max_commands: 100")

	_, err = run(t, "--settings", settings, "settings", "init")
	require.NoError(t, err)
	assert.FileExists(t, settings)
}

func TestReloadKeepsMode(t *testing.T) {
	_, file := writeDoc(t)
	cmd := ShowCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.ParseFlags([]string{"--mode", "glob", "--filter", "wid*"}))

	s, _, err := openSession(config.Defaults(), file)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, applyFilter(cmd, s))
	assert.True(t, s.Visible("width"))

	require.NoError(t, reload(cmd, s, config.Defaults()))
	assert.Equal(t, config.FilterGlob, s.Settings.FilterMode)
	assert.True(t, s.Visible("width"))
	assert.False(t, s.Visible("name"))
	assert.Contains(t, out.String(), "Width: 10")
}

func TestFlagCompletion(t *testing.T) {
	out, err := run(t, "__complete", "show", "doc.json", "--mode", "")
	require.NoError(t, err)
	for _, mode := range []string{"substring", "regexp", "glob", "fuzzy"} {
		assert.Contains(t, out, mode)
	}

	out, err = run(t, "__complete", "settings", "--format", "y")
	require.NoError(t, err)
	assert.Contains(t, out, "yaml")
}
