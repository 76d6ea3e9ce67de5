// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"cogentcore.org/propgrid/base/keylist"
)

// Instance is the [Object] of one target bound to its [Type].
type Instance struct {
	typ     *Type
	target  any
	handles keylist.List[string, *Handle]
}

// Bind returns the [Instance] of the given target.
func (t *Type) Bind(target any) *Instance {
	in := &Instance{typ: t, target: target}
	for _, f := range t.Fields() {
		in.handles.Set(f.Name, NewHandle(f, target))
	}
	return in
}

// Type returns the type of the instance.
func (in *Instance) Type() *Type { return in.typ }

// Target returns the bound target.
func (in *Instance) Target() any { return in.target }

// Properties returns the handles of all fields in declaration order.
func (in *Instance) Properties() []Property {
	ps := make([]Property, len(in.handles.Values))
	for i, h := range in.handles.Values {
		ps[i] = h
	}
	return ps
}

// Property returns the handle of the field with the given name.
func (in *Instance) Property(name string) (Property, bool) {
	h, ok := in.handles.AtTry(name)
	if !ok {
		return nil, false
	}
	return h, true
}

// Handle returns the handle of the field with the given name.
func (in *Instance) Handle(name string) (*Handle, bool) {
	return in.handles.AtTry(name)
}
