// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visibility

import (
	"cogentcore.org/propgrid/base/bitflag"
	"cogentcore.org/propgrid/props"
)

// Highlighter is implemented by category rows that highlight the
// part of their label matching the filter text.
type Highlighter interface {
	SetHighlight(text string)
}

// Category is a named group of cells.
type Category struct {

	// Name is the label of the category.
	Name string

	// Cells are the properties in the category, in display order.
	Cells []*Cell

	// Visible is set by the [Engine].
	Visible bool

	// NameMatched is set by the [Engine] when the filter text matches
	// the category name.
	NameMatched bool

	// Highlighter is an optional row control updated with the
	// filter text on every pass.
	Highlighter Highlighter
}

// NewCategory returns a new [Category] with the given cells.
func NewCategory(name string, cells ...*Cell) *Category {
	return &Category{Name: name, Cells: cells}
}

// Add adds the given cell.
func (c *Category) Add(cell *Cell) *Category {
	c.Cells = append(c.Cells, cell)
	return c
}

// Cell is one property row, owned by the object the property is read
// from. A cell whose value is itself an object has the categories of
// that object as an expandable sub-tree.
type Cell struct {

	// Property is the edited property.
	Property props.Property

	// Owner is the object the property belongs to, used to evaluate
	// visibility conditions against sibling properties.
	Owner props.Object

	// Category is the name of the category the cell is in.
	Category string

	// Categories is the nested sub-tree of an expandable cell.
	Categories []*Category

	// Visible is set by the [Engine].
	Visible bool

	// Hidden is the mask of [Reason] bits set by the [Engine].
	Hidden int64
}

// NewCell returns a new [Cell] for the given property of the given owner,
// in the category declared by the property.
func NewCell(owner props.Object, p props.Property) *Cell {
	return &Cell{Property: p, Owner: owner, Category: p.Attrs().CategoryOf()}
}

// Name returns the name of the property.
func (c *Cell) Name() string { return c.Property.Name() }

// HiddenBy returns whether the cell is hidden for the given reason.
func (c *Cell) HiddenBy(r Reason) bool {
	return bitflag.Has(c.Hidden, r)
}

// Walk calls the function on every cell under the given categories,
// depth first, including the cells of nested sub-trees. It stops
// descending into a cell when the function returns false.
func Walk(cats []*Category, fun func(cell *Cell) bool) {
	for _, c := range cats {
		for _, cell := range c.Cells {
			if fun(cell) {
				Walk(cell.Categories, fun)
			}
		}
	}
}
