// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"fmt"
	"reflect"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/base/errors"
	"cogentcore.org/propgrid/base/reflectx"
	"cogentcore.org/propgrid/events"
)

// Handle is a [Property] for one [Field] of one target.
type Handle struct {
	field  *Field
	target any
}

// NewHandle returns a new [Handle] for the given field of the given target.
func NewHandle(f *Field, target any) *Handle {
	return &Handle{field: f, target: target}
}

func (h *Handle) Name() string { return h.field.Name }
func (h *Handle) Type() reflect.Type { return h.field.Type }
func (h *Handle) Attrs() *attrs.Set { return h.field.Attrs }
func (h *Handle) Target() any { return h.target }
func (h *Handle) Field() *Field { return h.field }
func (h *Handle) String() string { return h.field.Name }

// Value returns the value of the field. A panic in the getter is
// returned as an error.
func (h *Handle) Value() (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %w", h.Name(), errors.FromPanic(r))
		}
	}()
	return h.field.Get(h.target)
}

// IsReadOnly returns whether the field has no setter or is marked
// [attrs.ReadOnly].
func (h *Handle) IsReadOnly() bool {
	if h.field.Set == nil {
		return true
	}
	ro, _ := h.field.Attrs.IsReadOnly()
	return ro
}

// SetValue converts the value to the field type if needed and sets it.
// On success, the change is announced through the target if it
// implements [Raiser]. A panic in the setter is returned as an error.
func (h *Handle) SetValue(v any) error {
	if h.IsReadOnly() {
		return fmt.Errorf("%s: %w", h.Name(), ErrReadOnly)
	}
	cv, err := reflectx.Convert(v, h.field.Type)
	if err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	if err := h.set(cv); err != nil {
		return err
	}
	if r, ok := h.target.(Raiser); ok {
		r.RaisePropertyChanged(h.Name())
	}
	return nil
}

func (h *Handle) set(v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %w", h.Name(), errors.FromPanic(r))
		}
	}()
	if err := h.field.Set(h.target, v); err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	return nil
}

// defaultValue returns the declared default value.
func (h *Handle) defaultValue() (any, bool) {
	d, ok := attrs.Get[attrs.Default](h.field.Attrs)
	return d.Value, ok
}

// CanResetValue returns whether the field is writable and has a default.
func (h *Handle) CanResetValue() bool {
	_, ok := h.defaultValue()
	return ok && !h.IsReadOnly()
}

// ResetValue sets the field to its declared default. A [Cloner] default
// is cloned, so that the target never aliases the default itself.
func (h *Handle) ResetValue() error {
	if !h.CanResetValue() {
		return fmt.Errorf("%s: %w", h.Name(), ErrNoDefault)
	}
	d, _ := h.defaultValue()
	if c, ok := d.(Cloner); ok {
		d = c.Clone()
	}
	return h.SetValue(d)
}

// ShouldSerializeValue returns true when there is no declared default
// or the current value differs from it.
func (h *Handle) ShouldSerializeValue() bool {
	d, ok := h.defaultValue()
	if !ok {
		return true
	}
	v, err := h.Value()
	if err != nil {
		return false
	}
	return !reflectx.Equal(v, d)
}

// AddChangeListener adds a function called whenever the target announces
// a change of this field. It returns [events.NoID] if the target is not
// [Observable].
func (h *Handle) AddChangeListener(fun func(p Property)) events.ID {
	obs, ok := h.target.(Observable)
	if !ok {
		return events.NoID
	}
	name := h.Name()
	return obs.OnPropertyChanged(func(changed string) {
		if changed == name {
			fun(h)
		}
	})
}

// RemoveChangeListener removes the listener with the given ID.
func (h *Handle) RemoveChangeListener(id events.ID) {
	if obs, ok := h.target.(Observable); ok && id != events.NoID {
		obs.RemovePropertyChanged(id)
	}
}
