// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visibility

import (
	"reflect"
	"testing"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type button struct {
	Mode    string
	Size    int
	Label   string
	Padding int
}

var buttonType = func() *props.Type {
	t := props.NewType[*button]()
	props.AddField(t, "Mode", func(b *button) string { return b.Mode },
		func(b *button, v string) error { b.Mode = v; return nil }, attrs.Category("Behavior"))
	props.AddField(t, "Size", func(b *button) int { return b.Size },
		func(b *button, v int) error { b.Size = v; return nil }, attrs.Category("Layout"))
	props.AddField(t, "Label", func(b *button) string { return b.Label },
		func(b *button, v string) error { b.Label = v; return nil },
		attrs.Category("Appearance"), attrs.DisplayName("Caption"), attrs.Description("text on the button"))
	props.AddField(t, "Padding", func(b *button) int { return b.Padding },
		func(b *button, v int) error { b.Padding = v; return nil },
		attrs.Category("Layout"), attrs.ShowIf("Mode", "advanced"))
	return t
}()

// buildTree returns the categories of the given object, one per
// declared category in declaration order.
func buildTree(obj props.Object) []*Category {
	var cats []*Category
	byName := map[string]*Category{}
	for _, p := range obj.Properties() {
		cell := NewCell(obj, p)
		c, ok := byName[cell.Category]
		if !ok {
			c = NewCategory(cell.Category)
			byName[cell.Category] = c
			cats = append(cats, c)
		}
		c.Add(cell)
	}
	return cats
}

func find(cats []*Category, name string) *Cell {
	var found *Cell
	Walk(cats, func(cell *Cell) bool {
		if cell.Name() == name {
			found = cell
		}
		return found == nil
	})
	return found
}

func category(cats []*Category, name string) *Category {
	for _, c := range cats {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func newEngine(t *testing.T, b *button) (*Engine, []*Category) {
	e := NewEngine()
	t.Cleanup(e.Close)
	cats := buildTree(buttonType.Bind(b))
	e.SetRoots(cats...)
	return e, cats
}

func matcher(t *testing.T, pattern string) Matcher {
	m, err := NewMatcher(pattern, MatchOptions{})
	require.NoError(t, err)
	return m
}

func TestCategoryRoundTrip(t *testing.T) {
	e, cats := newEngine(t, &button{})
	size := find(cats, "Size")
	require.True(t, size.Visible)

	e.Checklist.Uncheck("Layout")
	assert.False(t, size.Visible)
	assert.True(t, size.HiddenBy(HiddenByCategory))
	assert.False(t, category(cats, "Layout").Visible)

	e.Checklist.Check("Layout")
	assert.True(t, size.Visible)
	assert.Zero(t, size.Hidden)
	assert.True(t, category(cats, "Layout").Visible)
}

func TestNameMatchReveal(t *testing.T) {
	e, cats := newEngine(t, &button{Mode: "advanced"})
	e.SetMatcher(matcher(t, "layout"))

	size := find(cats, "Size")
	assert.True(t, size.Visible, "revealed by its category name")
	assert.Zero(t, size.Hidden)
	assert.False(t, find(cats, "Mode").Visible)
	assert.True(t, find(cats, "Mode").HiddenBy(HiddenByFilter))
	assert.False(t, category(cats, "Behavior").Visible)
	assert.True(t, category(cats, "Layout").NameMatched)
	assert.False(t, category(cats, "Behavior").NameMatched)

	e.Checklist.Uncheck("Layout")
	assert.False(t, size.Visible, "the checklist wins over a name match")
	assert.True(t, size.HiddenBy(HiddenByCategory))
	assert.False(t, category(cats, "Layout").Visible)
}

func TestNameMatchDoesNotRevealConditions(t *testing.T) {
	e, cats := newEngine(t, &button{})
	e.SetMatcher(matcher(t, "layout"))
	pad := find(cats, "Padding")
	assert.False(t, pad.Visible)
	assert.True(t, pad.HiddenBy(HiddenByCondition))
	assert.True(t, find(cats, "Size").Visible)
}

func TestUpdateIdempotent(t *testing.T) {
	e, cats := newEngine(t, &button{})
	e.SetMatcher(matcher(t, "layout"))
	changes := 0
	e.OnChange(func(*Engine) { changes++ })

	snapshot := func() []int64 {
		var s []int64
		Walk(cats, func(cell *Cell) bool {
			s = append(s, cell.Hidden)
			return true
		})
		return s
	}
	before := snapshot()
	first := e.Update()
	second := e.Update()
	assert.Equal(t, first, second)
	assert.Equal(t, before, snapshot())
	assert.Equal(t, 0, changes)

	e.SetMatcher(nil)
	assert.Equal(t, 1, changes)
}

func TestConditions(t *testing.T) {
	b := &button{}
	e, cats := newEngine(t, b)
	pad := find(cats, "Padding")
	assert.False(t, pad.Visible)

	b.Mode = "advanced"
	assert.False(t, e.PropertyChanged("Size"))
	assert.False(t, pad.Visible)
	assert.True(t, e.PropertyChanged("Mode"))
	assert.True(t, pad.Visible)

	e.SetDimension(DimCondition, false)
	b.Mode = ""
	e.Update()
	assert.True(t, pad.Visible)
}

type orphan struct{}

func (orphan) Properties() []props.Property { return nil }
func (orphan) Property(string) (props.Property, bool) { return nil, false }

func TestConditionMissingSource(t *testing.T) {
	p, _ := buttonType.Bind(&button{Mode: "advanced"}).Property("Padding")
	cell := NewCell(orphan{}, p)
	e := NewEngine()
	e.SetRoots(NewCategory("Layout", cell))
	assert.False(t, cell.Visible)
	assert.True(t, cell.HiddenBy(HiddenByCondition))
}

func TestFactoryOverride(t *testing.T) {
	e, cats := newEngine(t, &button{})
	e.Factories.RegisterType(reflect.TypeFor[int](), FactoryFunc(func(cell *Cell) Override {
		if cell.Name() == "Size" {
			return ForceVisible
		}
		return NoOverride
	}))
	e.Factories.RegisterEditor("hidden", FactoryFunc(func(*Cell) Override { return ForceHidden }))
	e.Checklist.Uncheck("Layout")
	assert.True(t, find(cats, "Size").Visible, "forced visible over the checklist")

	e.SetDimension(DimFactory, false)
	assert.False(t, find(cats, "Size").Visible)
	e.SetDimension(DimFactory, true)

	hidden := props.NewType[*button]()
	props.AddField(hidden, "Label", func(b *button) string { return b.Label }, nil, attrs.Editor("hidden"))
	cell := NewCell(nil, hidden.Bind(&button{}).Properties()[0])
	e.SetRoots(NewCategory("Misc", cell))
	assert.False(t, cell.Visible)
	assert.Equal(t, "HiddenByFactory", Reasons(cell.Hidden))
}

func TestFilterMatchesMetadata(t *testing.T) {
	e, cats := newEngine(t, &button{})
	e.SetMatcher(matcher(t, "caption"))
	assert.True(t, find(cats, "Label").Visible)
	e.SetMatcher(matcher(t, "on the button"))
	assert.True(t, find(cats, "Label").Visible)
	assert.False(t, find(cats, "Size").Visible)
	assert.True(t, e.Update())

	e.SetMatcher(matcher(t, "nothing matches this"))
	assert.False(t, e.Update())

	e.SetDimension(DimText, false)
	assert.True(t, find(cats, "Size").Visible)
	assert.Equal(t, "", e.FilterText())
}

type highlight struct{ text string }

func (h *highlight) SetHighlight(text string) { h.text = text }

func TestHighlighter(t *testing.T) {
	e, cats := newEngine(t, &button{})
	h := &highlight{}
	category(cats, "Layout").Highlighter = h
	e.SetMatcher(matcher(t, "lay"))
	assert.Equal(t, "lay", h.text)
	e.SetMatcher(nil)
	assert.Equal(t, "", h.text)
}

func TestNestedReveal(t *testing.T) {
	outer := props.NewType[*button]()
	props.AddField(outer, "Inner", func(b *button) string { return b.Label }, nil)
	b := &button{}
	cell := NewCell(nil, outer.Bind(b).Properties()[0])
	cell.Categories = buildTree(buttonType.Bind(b))
	e := NewEngine()
	e.SetRoots(NewCategory("Misc", cell))
	e.SetMatcher(matcher(t, "size"))
	assert.True(t, cell.Visible, "revealed by a visible nested cell")
	assert.True(t, find(cell.Categories, "Size").Visible)
	assert.False(t, find(cell.Categories, "Mode").Visible)
}

func TestMatchers(t *testing.T) {
	tests := []struct {
		pattern string
		opts    MatchOptions
		text    string
		want    bool
	}{
		{"size", MatchOptions{}, "FontSize", true},
		{"size", MatchOptions{CaseSensitive: true}, "FontSize", false},
		{"^Font", MatchOptions{Mode: Regexp}, "FontSize", true},
		{"^size", MatchOptions{Mode: Regexp}, "FontSize", false},
		{"*size", MatchOptions{Mode: Glob}, "FontSize", true},
		{"font", MatchOptions{Mode: Glob}, "FontSize", false},
		{"colr", MatchOptions{Mode: Fuzzy}, "BackgroundColor", true},
		{"colr", MatchOptions{Mode: Fuzzy}, "Size", false},
	}
	for _, tt := range tests {
		m, err := NewMatcher(tt.pattern, tt.opts)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m.Match(tt.text), "%v %q %q", tt.opts.Mode, tt.pattern, tt.text)
		assert.Equal(t, tt.pattern, m.Pattern())
	}

	_, err := NewMatcher("(", MatchOptions{Mode: Regexp})
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Glob")
	require.NoError(t, err)
	assert.Equal(t, Glob, m)
	assert.Equal(t, "fuzzy", Fuzzy.String())
	_, err = ParseMode("soundex")
	assert.Error(t, err)
}

func TestChecklist(t *testing.T) {
	var cl Checklist
	var got []string
	cl.OnChange(func(name string) { got = append(got, name) })
	assert.True(t, cl.IsChecked("Layout"))
	cl.Uncheck("Layout")
	cl.Uncheck("Layout")
	cl.Uncheck("Appearance")
	assert.Equal(t, []string{"Appearance", "Layout"}, cl.Unchecked())
	cl.CheckAll()
	assert.Empty(t, cl.Unchecked())
	assert.Equal(t, []string{"Layout", "Appearance", "Appearance", "Layout"}, got)
}

func TestNameMatchChangeNotifies(t *testing.T) {
	pt := props.NewType[*button]()
	props.AddField(pt, "Size", func(b *button) int { return b.Size }, nil, attrs.Category("Sizing"))
	cats := buildTree(pt.Bind(&button{}))
	e := NewEngine()
	t.Cleanup(e.Close)
	e.SetRoots(cats...)
	sizing := category(cats, "Sizing")

	e.SetMatcher(matcher(t, "size"))
	require.True(t, find(cats, "Size").Visible)
	assert.False(t, sizing.NameMatched)

	changes := 0
	e.OnChange(func(*Engine) { changes++ })
	e.SetMatcher(matcher(t, "sizi"))
	assert.True(t, find(cats, "Size").Visible, "revealed by the category name")
	assert.True(t, sizing.NameMatched)
	assert.Equal(t, 1, changes)

	e.Update()
	assert.Equal(t, 1, changes)
}
