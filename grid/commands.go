// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"errors"
	"fmt"
	"reflect"

	"cogentcore.org/propgrid/base/reflectx"
	"cogentcore.org/propgrid/multi"
	"cogentcore.org/propgrid/props"
)

// editCommand is the undoable edit of one property path. It remembers
// the previous value of every target separately, so that undoing an
// edit of several targets restores each of them. Previous values are
// deep copies, except for pointers, which are restored as is.
type editCommand struct {
	label string
	path  string
	prop  props.Property

	// apply edits the property.
	apply func(p props.Property) error

	old []any
}

func newSetCommand(path string, p props.Property, v any) *editCommand {
	return &editCommand{
		label: fmt.Sprintf("Set %s", Label(p)),
		path:  path,
		prop:  p,
		apply: func(p props.Property) error { return p.SetValue(v) },
	}
}

func newResetCommand(path string, p props.Property) *editCommand {
	return &editCommand{
		label: fmt.Sprintf("Reset %s", Label(p)),
		path:  path,
		prop:  p,
		apply: func(p props.Property) error { return p.ResetValue() },
	}
}

// handles returns the per target properties.
func (c *editCommand) handles() []props.Property {
	if mp, ok := c.prop.(*multi.Property); ok {
		return mp.Handles()
	}
	return []props.Property{c.prop}
}

func (c *editCommand) Name() string { return c.label }
func (c *editCommand) CanExecute() bool { return !c.prop.IsReadOnly() }
func (c *editCommand) CanCancel() bool { return c.old != nil }

// Execute snapshots the current values and applies the edit. An edit
// whose previous values can not all be read is not applied, since it
// could not be undone. When only some of the targets were written
// before a failure, those are restored.
func (c *editCommand) Execute() error {
	hs := c.handles()
	old := make([]any, len(hs))
	for i, h := range hs {
		v, err := h.Value()
		if err == nil && reflect.ValueOf(v).Kind() != reflect.Pointer {
			v, err = reflectx.Snapshot(v)
		}
		if err != nil {
			return fmt.Errorf("grid: %s: reading previous value: %w", c.path, err)
		}
		old[i] = v
	}
	c.old = old
	err := c.apply(c.prop)
	if err == nil {
		return nil
	}
	var se *multi.SetError
	if errors.As(err, &se) {
		if rerr := c.restore(hs[:se.Index]); rerr != nil {
			return errors.Join(err, rerr)
		}
	}
	return err
}

// Cancel restores the previous values, in reverse target order.
func (c *editCommand) Cancel() error {
	if !c.CanCancel() {
		return fmt.Errorf("grid: %s: previous value unknown", c.path)
	}
	return c.restore(c.handles())
}

func (c *editCommand) restore(hs []props.Property) error {
	var errs []error
	for i := len(hs) - 1; i >= 0; i-- {
		if err := hs[i].SetValue(c.old[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
