// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"fmt"
	"reflect"
	"strings"

	"cogentcore.org/propgrid/base/errors"
	"cogentcore.org/propgrid/base/reflectx"
	"cogentcore.org/propgrid/props"
	"cogentcore.org/propgrid/visibility"
	"github.com/ddddddO/gtree"
)

// MixedText is shown for a property whose targets have different values.
const MixedText = "<mixed>"

// Dump returns the visible rows of the grid as a text tree,
// with the categories as branches and "label: value" leaves.
func (s *Session) Dump() (string, error) {
	root := gtree.NewRoot(s.title())
	for _, c := range s.roots {
		dumpCategory(root, c)
	}
	var b strings.Builder
	if err := gtree.OutputFromRoot(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Session) title() string {
	if len(s.targets) == 1 {
		return reflectx.ShortTypeName(reflect.TypeOf(s.targets[0]))
	}
	return fmt.Sprintf("%d objects", len(s.targets))
}

func dumpCategory(parent *gtree.Node, c *visibility.Category) {
	if !c.Visible {
		return
	}
	node := parent.Add(c.Name)
	for _, cell := range c.Cells {
		if !cell.Visible {
			continue
		}
		cn := node.Add(cellText(cell))
		for _, sc := range cell.Categories {
			dumpCategory(cn, sc)
		}
	}
}

func cellText(cell *visibility.Cell) string {
	p := cell.Property
	var val string
	v, err := p.Value()
	switch {
	case err != nil:
		val = "<" + errors.Innermost(err).Error() + ">"
	case props.IsIndeterminate(v):
		val = MixedText
	case len(cell.Categories) > 0:
		val = reflectx.ShortTypeName(reflect.TypeOf(v))
	default:
		val = fmt.Sprint(v)
	}
	text := Label(p) + ": " + val
	if p.IsReadOnly() {
		text += " (read-only)"
	}
	return text
}
