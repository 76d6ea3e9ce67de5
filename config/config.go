// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the user settings of a property grid,
// which are read from TOML or YAML files and PROPGRID_ environment
// variables, and can be watched for changes.
package config

import (
	"fmt"

	"cogentcore.org/propgrid/base/errors"
	"cogentcore.org/propgrid/base/reflectx"
)

// Sort orders are the values of [Settings.SortProperties]
// and [Settings.SortCategories].
const (
	SortDeclaration  = "declaration"
	SortAlphabetical = "alphabetical"
)

// Filter modes are the values of [Settings.FilterMode].
const (
	FilterSubstring = "substring"
	FilterRegexp    = "regexp"
	FilterGlob      = "glob"
	FilterFuzzy     = "fuzzy"
)

// Settings are the user settings of a property grid.
type Settings struct {

	// MaxCommands is the number of commands kept in the undo history;
	// 0 keeps all of them.
	MaxCommands int `toml:"max_commands" yaml:"max_commands" default:"100"`

	// NoCommandText is the description shown when there is nothing
	// to undo or redo.
	NoCommandText string `toml:"no_command_text" yaml:"no_command_text" default:"(none)"`

	// FilterMode is how the filter text is matched: substring,
	// regexp, glob or fuzzy.
	FilterMode string `toml:"filter_mode" yaml:"filter_mode" default:"substring"`

	// CaseSensitive makes the filter text case sensitive.
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`

	// FuzzyThreshold is the minimum similarity of a fuzzy match.
	FuzzyThreshold float64 `toml:"fuzzy_threshold" yaml:"fuzzy_threshold" default:"0.8"`

	// SortCategories is the order of categories: declaration or alphabetical.
	SortCategories string `toml:"sort_categories" yaml:"sort_categories" default:"declaration"`

	// SortProperties is the order of properties within a category:
	// declaration or alphabetical.
	SortProperties string `toml:"sort_properties" yaml:"sort_properties" default:"declaration"`

	// MaxDepth is the depth to which property values that are
	// themselves objects are expanded.
	MaxDepth int `toml:"max_depth" yaml:"max_depth" default:"4"`

	// Dimensions are the enabled dimensions of visibility filtering.
	Dimensions Dimensions `toml:"dimensions" yaml:"dimensions"`
}

// Dimensions toggles the dimensions of visibility filtering.
type Dimensions struct {
	Condition bool `toml:"condition" yaml:"condition" default:"true"`
	Factory   bool `toml:"factory" yaml:"factory" default:"true"`
	Text      bool `toml:"text" yaml:"text" default:"true"`
	Category  bool `toml:"category" yaml:"category" default:"true"`
}

// Defaults returns new [Settings] with default values.
func Defaults() *Settings {
	s := &Settings{}
	errors.Log(SetFromDefaults(s))
	return s
}

// SetFromDefaults sets the fields of the settings from their
// `default:` struct field tags.
func SetFromDefaults(s *Settings) error {
	return reflectx.SetFromDefaultTags(s)
}

// Validate returns an error for an invalid setting.
func (s *Settings) Validate() error {
	if s.MaxCommands < 0 {
		return fmt.Errorf("config: max_commands must not be negative: %d", s.MaxCommands)
	}
	switch s.FilterMode {
	case FilterSubstring, FilterRegexp, FilterGlob, FilterFuzzy:
	default:
		return fmt.Errorf("config: unknown filter_mode %q", s.FilterMode)
	}
	if s.FuzzyThreshold < 0 || s.FuzzyThreshold > 1 {
		return fmt.Errorf("config: fuzzy_threshold must be in [0, 1]: %g", s.FuzzyThreshold)
	}
	for _, o := range []string{s.SortCategories, s.SortProperties} {
		if o != SortDeclaration && o != SortAlphabetical {
			return fmt.Errorf("config: unknown sort order %q", o)
		}
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth must not be negative: %d", s.MaxDepth)
	}
	return nil
}
