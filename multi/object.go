// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package multi

import (
	"errors"

	"cogentcore.org/propgrid/base/keylist"
	"cogentcore.org/propgrid/props"
)

// ErrNoObjects is returned when creating an [Object] without objects.
var ErrNoObjects = errors.New("multi: no objects")

// Object is a [props.Object] over several objects, presenting every
// property name that all of them have as one [Property], in the
// declaration order of the first object. With a single object it
// presents that object's own properties.
type Object struct {
	objects []props.Object
	props   keylist.List[string, props.Property]
}

// NewObject returns a new [Object] over the given objects.
func NewObject(objects ...props.Object) (*Object, error) {
	if len(objects) == 0 {
		return nil, ErrNoObjects
	}
	o := &Object{objects: objects}
	for _, fp := range objects[0].Properties() {
		if len(objects) == 1 {
			o.props.Set(fp.Name(), fp)
			continue
		}
		handles := []props.Property{fp}
		for _, obj := range objects[1:] {
			h, ok := obj.Property(fp.Name())
			if !ok {
				break
			}
			handles = append(handles, h)
		}
		if len(handles) != len(objects) {
			continue
		}
		p, err := New(handles...)
		if err != nil {
			return nil, err
		}
		o.props.Set(fp.Name(), p)
	}
	return o, nil
}

// Objects returns the underlying objects.
func (o *Object) Objects() []props.Object { return o.objects }

// Properties returns the common properties.
func (o *Object) Properties() []props.Property {
	return o.props.Values
}

// Property returns the common property with the given name.
func (o *Object) Property(name string) (props.Property, bool) {
	return o.props.AtTry(name)
}
