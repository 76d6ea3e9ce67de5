// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package multi presents the properties of several targets as one,
// so that many objects can be edited at once. Attributes are reconciled
// per kind, reads collapse to [props.Indeterminate] when the targets
// disagree, and writes fan out to every target in order.
package multi

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"cogentcore.org/propgrid/attrs"
	perrors "cogentcore.org/propgrid/base/errors"
	"cogentcore.org/propgrid/base/keylist"
	"cogentcore.org/propgrid/base/reflectx"
	"cogentcore.org/propgrid/events"
	"cogentcore.org/propgrid/props"
)

// ErrNoHandles is returned when creating a [Property] without handles.
var ErrNoHandles = errors.New("multi: no property handles")

// SetError is returned when writing to one of the handles of a [Property]
// fails. The handles before Index have already been written.
type SetError struct {
	Index int
	Name  string
	Err   error
}

func (e *SetError) Error() string {
	return fmt.Sprintf("multi: setting %s on target %d: %v", e.Name, e.Index, e.Err)
}

func (e *SetError) Unwrap() error { return e.Err }

// Property is a [props.Property] spanning one handle per target, all with
// the same name. With a single handle it behaves exactly like that handle.
type Property struct {
	handles []props.Property
	attrs   *attrs.Set
	typ     reflect.Type

	// last is the last listener ID handed out.
	last events.ID

	// subs are the handle subscriptions of each listener.
	subs keylist.List[events.ID, []subscription]
}

type subscription struct {
	notifier props.ChangeNotifier
	id       events.ID
}

// New returns a new [Property] over the given handles, which must
// be non-empty and share the same name.
func New(handles ...props.Property) (*Property, error) {
	if len(handles) == 0 {
		return nil, ErrNoHandles
	}
	name := handles[0].Name()
	for i, h := range handles[1:] {
		if h.Name() != name {
			return nil, fmt.Errorf("multi: handle %d is %q, not %q", i+1, h.Name(), name)
		}
	}
	p := &Property{handles: handles}
	p.attrs = unifyAttrs(handles)
	p.typ = unifyType(handles)
	return p, nil
}

// unifyAttrs keeps, for each kind of attribute on the first handle,
// the attributes if all handles agree, and the neutral attribute of
// that kind otherwise.
func unifyAttrs(handles []props.Property) *attrs.Set {
	first := handles[0].Attrs()
	if len(handles) == 1 {
		return first
	}
	s := attrs.New()
	for _, k := range first.Kinds() {
		same := true
		for _, h := range handles[1:] {
			if !attrs.SameKind(first, h.Attrs(), k) {
				same = false
				break
			}
		}
		if same {
			s.Replace(k, first.All(k)...)
		} else {
			s.Replace(k, attrs.Neutral(k))
		}
	}
	return s
}

// unifyType returns the common value type, or the empty interface type.
func unifyType(handles []props.Property) reflect.Type {
	typ := handles[0].Type()
	for _, h := range handles[1:] {
		if h.Type() != typ {
			return reflect.TypeFor[any]()
		}
	}
	return typ
}

func (p *Property) Name() string { return p.handles[0].Name() }
func (p *Property) Type() reflect.Type { return p.typ }
func (p *Property) Attrs() *attrs.Set { return p.attrs }

// Handles returns the underlying handles, in target order.
func (p *Property) Handles() []props.Property { return p.handles }

// Len returns the number of handles.
func (p *Property) Len() int { return len(p.handles) }

// IsReadOnly returns the reconciled [attrs.ReadOnly] attribute if there is
// one, and whether the first handle is read-only otherwise.
func (p *Property) IsReadOnly() bool {
	if len(p.handles) > 1 {
		if ro, ok := p.attrs.IsReadOnly(); ok && ro {
			return true
		}
	}
	return p.handles[0].IsReadOnly()
}

// Value returns the common value of all handles, or [props.Indeterminate]
// as soon as one handle differs from the first. A handle that fails to
// read contributes the message of the innermost error as its value, so
// the read itself never fails for more than one handle.
func (p *Property) Value() (any, error) {
	if len(p.handles) == 1 {
		return p.handles[0].Value()
	}
	first := p.read(0)
	for i := 1; i < len(p.handles); i++ {
		if !reflectx.Equal(first, p.read(i)) {
			return props.Indeterminate, nil
		}
	}
	return first, nil
}

func (p *Property) read(i int) any {
	v, err := p.handles[i].Value()
	if err != nil {
		msg := perrors.Innermost(err).Error()
		slog.Debug("multi: substituting read error", "property", p.Name(), "target", i, "err", msg)
		return msg
	}
	return v
}

// SetValue writes the value to every handle in order, stopping at the
// first failure with a [*SetError]. A [props.Cloner] value is cloned for
// each handle, so that targets never share one mutable value.
func (p *Property) SetValue(v any) error {
	if len(p.handles) == 1 {
		return p.handles[0].SetValue(v)
	}
	cl, isCloner := v.(props.Cloner)
	for i, h := range p.handles {
		hv := v
		if isCloner {
			hv = cl.Clone()
		}
		if err := h.SetValue(hv); err != nil {
			return &SetError{Index: i, Name: p.Name(), Err: err}
		}
	}
	return nil
}

// CanResetValue returns true only if every handle can be reset.
func (p *Property) CanResetValue() bool {
	for _, h := range p.handles {
		if !h.CanResetValue() {
			return false
		}
	}
	return true
}

// ResetValue resets every handle in order, stopping at the first failure
// with a [*SetError].
func (p *Property) ResetValue() error {
	if len(p.handles) == 1 {
		return p.handles[0].ResetValue()
	}
	for i, h := range p.handles {
		if err := h.ResetValue(); err != nil {
			return &SetError{Index: i, Name: p.Name(), Err: err}
		}
	}
	return nil
}

// ShouldSerializeValue returns true if any handle should be serialized.
func (p *Property) ShouldSerializeValue() bool {
	for _, h := range p.handles {
		if h.ShouldSerializeValue() {
			return true
		}
	}
	return false
}

// AddChangeListener adds the function to every handle that notifies
// changes, calling it with this property as the changed property.
// It returns [events.NoID] if no handle notifies changes.
func (p *Property) AddChangeListener(fun func(pr props.Property)) events.ID {
	var subs []subscription
	for _, h := range p.handles {
		cn, ok := h.(props.ChangeNotifier)
		if !ok {
			continue
		}
		id := cn.AddChangeListener(func(props.Property) { fun(p) })
		if id != events.NoID {
			subs = append(subs, subscription{notifier: cn, id: id})
		}
	}
	if len(subs) == 0 {
		return events.NoID
	}
	p.last++
	p.subs.Set(p.last, subs)
	return p.last
}

// RemoveChangeListener removes the listener with the given ID from
// exactly the handles it was added to.
func (p *Property) RemoveChangeListener(id events.ID) {
	subs, ok := p.subs.AtTry(id)
	if !ok {
		return
	}
	for _, s := range subs {
		s.notifier.RemoveChangeListener(s.id)
	}
	p.subs.Delete(id)
}

// Listeners returns the number of active change listeners.
func (p *Property) Listeners() int {
	return p.subs.Len()
}
