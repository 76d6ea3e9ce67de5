// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visibility

import (
	"fmt"
	"regexp"
	"strings"

	"cogentcore.org/propgrid/base/strcase"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/gobwas/glob"
	"golang.org/x/text/cases"
)

// Mode is the way filter text is matched.
type Mode int32

const (
	// Substring matches text containing the filter text.
	Substring Mode = iota

	// Regexp matches text against the filter text as a regular expression.
	Regexp

	// Glob matches the whole text against the filter text as a glob
	// pattern, such as "*Size".
	Glob

	// Fuzzy matches text similar enough to the filter text, by
	// Jaro-Winkler similarity of the whole text or any of its words.
	Fuzzy
)

var modeNames = [...]string{"substring", "regexp", "glob", "fuzzy"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

// ParseMode returns the [Mode] with the given name.
func ParseMode(s string) (Mode, error) {
	for i, nm := range modeNames {
		if strings.EqualFold(s, nm) {
			return Mode(i), nil
		}
	}
	return Substring, fmt.Errorf("visibility: unknown filter mode %q", s)
}

// DefaultFuzzyThreshold is the default minimum similarity of a [Fuzzy] match.
const DefaultFuzzyThreshold = 0.8

// Matcher matches text against a filter pattern.
type Matcher interface {

	// Match returns whether the text matches.
	Match(text string) bool

	// Pattern returns the filter text.
	Pattern() string
}

// MatchOptions are the options of [NewMatcher].
type MatchOptions struct {
	Mode          Mode
	CaseSensitive bool

	// Threshold is the minimum similarity in [0, 1] of a [Fuzzy]
	// match; 0 means [DefaultFuzzyThreshold].
	Threshold float64
}

// NewMatcher returns a [Matcher] for the given pattern.
func NewMatcher(pattern string, opts MatchOptions) (Matcher, error) {
	switch opts.Mode {
	case Substring:
		m := &substringMatcher{pattern: pattern, fold: !opts.CaseSensitive}
		m.needle = m.norm(pattern)
		return m, nil
	case Regexp:
		expr := pattern
		if !opts.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("visibility: filter %q: %w", pattern, err)
		}
		return &regexpMatcher{pattern: pattern, re: re}, nil
	case Glob:
		fold := !opts.CaseSensitive
		p := pattern
		if fold {
			p = cases.Fold().String(p)
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("visibility: filter %q: %w", pattern, err)
		}
		return &globMatcher{pattern: pattern, g: g, fold: fold}, nil
	case Fuzzy:
		th := opts.Threshold
		if th <= 0 {
			th = DefaultFuzzyThreshold
		}
		jw := metrics.NewJaroWinkler()
		jw.CaseSensitive = opts.CaseSensitive
		return &fuzzyMatcher{pattern: pattern, metric: jw, threshold: th}, nil
	}
	return nil, fmt.Errorf("visibility: unknown filter mode %v", opts.Mode)
}

type substringMatcher struct {
	pattern string
	needle  string
	fold    bool
}

func (m *substringMatcher) norm(s string) string {
	if m.fold {
		return cases.Fold().String(s)
	}
	return s
}

func (m *substringMatcher) Match(text string) bool {
	return strings.Contains(m.norm(text), m.needle)
}

func (m *substringMatcher) Pattern() string { return m.pattern }

type regexpMatcher struct {
	pattern string
	re      *regexp.Regexp
}

func (m *regexpMatcher) Match(text string) bool { return m.re.MatchString(text) }
func (m *regexpMatcher) Pattern() string { return m.pattern }

type globMatcher struct {
	pattern string
	g       glob.Glob
	fold    bool
}

func (m *globMatcher) Match(text string) bool {
	if m.fold {
		text = cases.Fold().String(text)
	}
	return m.g.Match(text)
}

func (m *globMatcher) Pattern() string { return m.pattern }

type fuzzyMatcher struct {
	pattern   string
	metric    *metrics.JaroWinkler
	threshold float64
}

func (m *fuzzyMatcher) Match(text string) bool {
	if m.similar(text) {
		return true
	}
	for _, w := range strcase.Words(text) {
		if m.similar(w) {
			return true
		}
	}
	return false
}

func (m *fuzzyMatcher) similar(s string) bool {
	return strutil.Similarity(m.pattern, s, m.metric) >= m.threshold
}

func (m *fuzzyMatcher) Pattern() string { return m.pattern }
