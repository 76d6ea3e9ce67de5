// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/propgrid/base/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables read by [ApplyEnv].
const EnvPrefix = "PROPGRID"

// DefaultFile returns the default settings file,
// ~/.config/propgrid/settings.toml.
func DefaultFile() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "propgrid", "settings.toml"), nil
}

// Open reads the settings from the given TOML or YAML file, as
// determined by its extension, overwriting the fields it sets.
// A leading ~ in the file name is expanded to the home directory.
func Open(s *Settings, file string) error {
	file, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		err = toml.Unmarshal(b, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, s)
	default:
		return fmt.Errorf("config: unsupported settings file type %q", ext)
	}
	if err != nil {
		return fmt.Errorf("config: %s: %w", file, err)
	}
	return nil
}

// Save writes the settings to the given TOML or YAML file,
// creating its directory if needed.
func Save(s *Settings, file string) error {
	file, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	b, err := Marshal(s, filepath.Ext(file))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	return os.WriteFile(file, b, 0o644)
}

// Marshal encodes the settings in the format of the given file
// extension, ".toml", ".yaml" or ".yml".
func Marshal(s *Settings, ext string) ([]byte, error) {
	switch ext = strings.ToLower(ext); ext {
	case ".toml":
		return toml.Marshal(s)
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	}
	return nil, fmt.Errorf("config: unsupported settings file type %q", ext)
}

// ApplyEnv overwrites the settings with the PROPGRID_ environment
// variables that are set, such as PROPGRID_MAX_COMMANDS and
// PROPGRID_DIMENSIONS_TEXT.
func ApplyEnv(s *Settings) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	keys := []string{
		"max_commands", "no_command_text", "filter_mode", "case_sensitive",
		"fuzzy_threshold", "sort_categories", "sort_properties", "max_depth",
		"dimensions.condition", "dimensions.factory", "dimensions.text", "dimensions.category",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return err
		}
	}
	set := func(key string, fun func(key string)) {
		if v.IsSet(key) {
			fun(key)
		}
	}
	set("max_commands", func(k string) { s.MaxCommands = v.GetInt(k) })
	set("no_command_text", func(k string) { s.NoCommandText = v.GetString(k) })
	set("filter_mode", func(k string) { s.FilterMode = v.GetString(k) })
	set("case_sensitive", func(k string) { s.CaseSensitive = v.GetBool(k) })
	set("fuzzy_threshold", func(k string) { s.FuzzyThreshold = v.GetFloat64(k) })
	set("sort_categories", func(k string) { s.SortCategories = v.GetString(k) })
	set("sort_properties", func(k string) { s.SortProperties = v.GetString(k) })
	set("max_depth", func(k string) { s.MaxDepth = v.GetInt(k) })
	set("dimensions.condition", func(k string) { s.Dimensions.Condition = v.GetBool(k) })
	set("dimensions.factory", func(k string) { s.Dimensions.Factory = v.GetBool(k) })
	set("dimensions.text", func(k string) { s.Dimensions.Text = v.GetBool(k) })
	set("dimensions.category", func(k string) { s.Dimensions.Category = v.GetBool(k) })
	return nil
}

// Load returns the default settings overwritten by the given file,
// if it exists, and then by the environment. An empty file name
// means [DefaultFile].
func Load(file string) (*Settings, error) {
	s := Defaults()
	if file == "" {
		f, err := DefaultFile()
		if err != nil {
			return s, err
		}
		file = f
	}
	if err := Open(s, file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return s, err
	}
	if err := ApplyEnv(s); err != nil {
		return s, err
	}
	return s, s.Validate()
}
