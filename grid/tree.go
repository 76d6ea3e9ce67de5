// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"cmp"
	"reflect"
	"slices"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/base/keylist"
	"cogentcore.org/propgrid/base/strcase"
	"cogentcore.org/propgrid/config"
	"cogentcore.org/propgrid/props"
	"cogentcore.org/propgrid/visibility"
)

// buildTree returns the categories of the browsable properties of the
// given object, registering their cells under the given path prefix.
// Property values of registered pointer types are expanded into
// nested categories up to the maximum depth.
func (s *Session) buildTree(obj props.Object, prefix string, depth int) []*visibility.Category {
	var cats keylist.List[string, *visibility.Category]
	for _, p := range obj.Properties() {
		if !p.Attrs().IsBrowsable() {
			continue
		}
		cell := visibility.NewCell(obj, p)
		c, ok := cats.AtTry(cell.Category)
		if !ok {
			c = visibility.NewCategory(cell.Category)
			cats.Set(cell.Category, c)
		}
		c.Add(cell)
	}
	roots := slices.Clone(cats.Values)
	if s.Settings.SortCategories == config.SortAlphabetical {
		slices.SortStableFunc(roots, func(a, b *visibility.Category) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}
	for _, c := range roots {
		s.sortCells(c.Cells)
		for _, cell := range c.Cells {
			path := cell.Name()
			if prefix != "" {
				path = prefix + "." + path
			}
			s.cells.Set(path, cell)
			if depth >= s.Settings.MaxDepth {
				continue
			}
			if sub, ok := s.expand(cell.Property); ok {
				cell.Categories = s.buildTree(sub, path, depth+1)
			}
		}
	}
	return roots
}

// sortCells sorts by [attrs.Order], and then alphabetically by label
// if so configured, keeping the declaration order otherwise.
func (s *Session) sortCells(cells []*visibility.Cell) {
	alpha := s.Settings.SortProperties == config.SortAlphabetical
	slices.SortStableFunc(cells, func(a, b *visibility.Cell) int {
		oa, _ := attrs.Get[attrs.Order](a.Property.Attrs())
		ob, _ := attrs.Get[attrs.Order](b.Property.Attrs())
		if c := cmp.Compare(oa, ob); c != 0 || !alpha {
			return c
		}
		return cmp.Compare(Label(a.Property), Label(b.Property))
	})
}

// expandable returns whether the value of the property is a non-nil
// pointer to a value that can be edited as an object.
func (s *Session) expandable(p props.Property) bool {
	_, ok := s.expand(p)
	return ok
}

func (s *Session) expand(p props.Property) (props.Object, bool) {
	v, err := p.Value()
	if err != nil || v == nil || props.IsIndeterminate(v) {
		return nil, false
	}
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	if obj, ok := v.(props.Object); ok {
		return obj, true
	}
	if s.Types == nil {
		return nil, false
	}
	t, ok := s.Types.Lookup(reflect.TypeOf(v))
	if !ok {
		return nil, false
	}
	return t.Bind(v), true
}

// Label returns the label of the property: its [attrs.DisplayName]
// if it has one, and its name in sentence case otherwise.
func Label(p props.Property) string {
	if dn, ok := attrs.Get[attrs.DisplayName](p.Attrs()); ok && dn != "" {
		return string(dn)
	}
	return strcase.ToSentence(p.Name())
}
