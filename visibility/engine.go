// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visibility decides which rows of a property grid are shown.
//
// The rows form a tree of [Category] nodes containing [Cell] nodes, and
// cells of expandable values contain nested categories of their own.
// An [Engine] computes, bottom up, a mask of [Reason] bits for every cell
// from the enabled dimensions: editor [Factory] overrides, [attrs.VisibleIf]
// conditions, the filter text, and the category [Checklist]. A cell is
// visible when its mask is clear. A category is visible when it has a
// visible cell, and a category whose name matches the filter text also
// reveals its cells hidden only by the filter text.
package visibility

import (
	"log/slog"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/base/bitflag"
	"cogentcore.org/propgrid/events"
	"cogentcore.org/propgrid/props"
)

// Engine computes the visibility of a tree of categories.
// Recomputation is a pure function of the tree and the filter state,
// so [Engine.Update] can be called any number of times.
type Engine struct {

	// Checklist is the category checklist. Checking or unchecking a
	// category updates the visibility.
	Checklist *Checklist

	// Factories are the editor factories consulted for overrides.
	Factories *FactoryRegistry

	dims    int64
	matcher Matcher
	roots   []*Category

	// conditions are the names of the properties read by
	// VisibleIf conditions in the tree.
	conditions map[string]bool

	checkID   events.ID
	listeners events.Listeners[*Engine]
}

// NewEngine returns a new [Engine] with all dimensions enabled.
func NewEngine() *Engine {
	e := &Engine{dims: AllDimensions, Checklist: &Checklist{}, Factories: &FactoryRegistry{}}
	e.checkID = e.Checklist.OnChange(func(string) { e.Update() })
	return e
}

// Close detaches the engine from its checklist.
func (e *Engine) Close() {
	e.Checklist.RemoveOnChange(e.checkID)
}

// SetRoots sets the categories of the tree and updates the visibility.
func (e *Engine) SetRoots(roots ...*Category) {
	e.roots = roots
	e.conditions = map[string]bool{}
	Walk(roots, func(cell *Cell) bool {
		for _, vi := range attrs.All[attrs.VisibleIf](cell.Property.Attrs()) {
			if !vi.IsZero() {
				e.conditions[vi.Property] = true
			}
		}
		return true
	})
	e.Update()
}

// Roots returns the categories of the tree.
func (e *Engine) Roots() []*Category { return e.roots }

// SetDimension enables or disables the given dimension and updates
// the visibility.
func (e *Engine) SetDimension(d Dimension, on bool) {
	bitflag.SetState(&e.dims, on, d)
	e.Update()
}

// HasDimension returns whether the given dimension is enabled.
func (e *Engine) HasDimension(d Dimension) bool {
	return bitflag.Has(e.dims, d)
}

// SetMatcher sets the filter text matcher, nil or an empty pattern
// meaning no filter text, and updates the visibility.
func (e *Engine) SetMatcher(m Matcher) {
	if m != nil && m.Pattern() == "" {
		m = nil
	}
	e.matcher = m
	e.Update()
}

// FilterText returns the active filter text.
func (e *Engine) FilterText() string {
	if !e.filtering() {
		return ""
	}
	return e.matcher.Pattern()
}

func (e *Engine) filtering() bool {
	return e.matcher != nil && e.HasDimension(DimText)
}

// OnChange adds a function called after an update that changed the
// visibility of any node.
func (e *Engine) OnChange(fun func(e *Engine)) events.ID {
	return e.listeners.Add(fun)
}

// RemoveOnChange removes the change listener with the given ID.
func (e *Engine) RemoveOnChange(id events.ID) bool {
	return e.listeners.Remove(id)
}

// PropertyChanged updates the visibility if the property with the
// given name is read by a visibility condition, returning whether it did.
func (e *Engine) PropertyChanged(name string) bool {
	if !e.conditions[name] {
		return false
	}
	e.Update()
	return true
}

// Update recomputes the visibility of every node, and returns whether
// any root category is visible.
func (e *Engine) Update() bool {
	changed := false
	vis := false
	for _, c := range e.roots {
		if e.updateCategory(c, &changed) {
			vis = true
		}
	}
	slog.Debug("visibility: updated", "filter", e.FilterText(), "changed", changed)
	if changed {
		e.listeners.Call(e)
	}
	return vis
}

func (e *Engine) updateCategory(c *Category, changed *bool) bool {
	nameMatch := e.filtering() && e.matcher.Match(c.Name)
	if c.NameMatched != nameMatch {
		*changed = true
	}
	c.NameMatched = nameMatch
	vis := false
	for _, cell := range c.Cells {
		e.updateCell(cell, nameMatch, changed)
		if cell.Visible {
			vis = true
		}
	}
	if c.Highlighter != nil {
		c.Highlighter.SetHighlight(e.FilterText())
	}
	if c.Visible != vis {
		*changed = true
	}
	c.Visible = vis
	return vis
}

// updateCell updates the cell and its sub-tree. A cell hidden only by
// the filter text is revealed when reveal is set, because its category
// name matches, or when its sub-tree has a visible category.
func (e *Engine) updateCell(cell *Cell, reveal bool, changed *bool) {
	old, oldHidden := cell.Visible, cell.Hidden
	cell.Hidden = e.mask(cell)
	sub := false
	for _, c := range cell.Categories {
		if e.updateCategory(c, changed) {
			sub = true
		}
	}
	if (reveal || sub) && bitflag.Only(cell.Hidden, HiddenByFilter) {
		bitflag.Clear(&cell.Hidden, HiddenByFilter)
	}
	cell.Visible = cell.Hidden == 0
	if cell.Visible != old || cell.Hidden != oldHidden {
		*changed = true
	}
}

// mask returns the [Reason] bits of the given cell.
func (e *Engine) mask(cell *Cell) int64 {
	var mask int64
	if e.HasDimension(DimFactory) {
		switch e.Factories.Lookup(cell).Override(cell) {
		case ForceVisible:
			return 0
		case ForceHidden:
			bitflag.Set(&mask, HiddenByFactory)
		}
	}
	if e.HasDimension(DimCondition) && !e.conditionsMet(cell) {
		bitflag.Set(&mask, HiddenByCondition)
	}
	if e.filtering() && !e.matchCell(cell) {
		bitflag.Set(&mask, HiddenByFilter)
	}
	if e.HasDimension(DimCategory) && e.Checklist != nil && !e.Checklist.IsChecked(cell.Category) {
		bitflag.Set(&mask, HiddenByCategory)
	}
	return mask
}

// matchCell matches the name, display name and description of the cell.
func (e *Engine) matchCell(cell *Cell) bool {
	p := cell.Property
	if e.matcher.Match(p.Name()) {
		return true
	}
	if dn, ok := attrs.Get[attrs.DisplayName](p.Attrs()); ok && dn != "" && e.matcher.Match(string(dn)) {
		return true
	}
	if d, ok := attrs.Get[attrs.Description](p.Attrs()); ok && d != "" && e.matcher.Match(string(d)) {
		return true
	}
	return false
}

// conditionsMet evaluates the VisibleIf conditions of the cell against
// its owner. A missing or unreadable source property, or one without a
// common value, does not satisfy its condition.
func (e *Engine) conditionsMet(cell *Cell) bool {
	for _, vi := range attrs.All[attrs.VisibleIf](cell.Property.Attrs()) {
		if vi.IsZero() {
			continue
		}
		if cell.Owner == nil {
			return false
		}
		src, ok := cell.Owner.Property(vi.Property)
		if !ok {
			slog.Warn("visibility: condition property not found", "property", cell.Name(), "source", vi.Property)
			return false
		}
		v, err := src.Value()
		if err != nil {
			slog.Warn("visibility: condition property unreadable", "property", cell.Name(), "source", vi.Property, "err", err)
			return false
		}
		if props.IsIndeterminate(v) || !vi.Eval(v) {
			return false
		}
	}
	return true
}
