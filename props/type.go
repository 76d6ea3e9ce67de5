// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"fmt"
	"reflect"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/base/keylist"
	"cogentcore.org/propgrid/base/reflectx"
)

// Field is one entry of the metadata table of a [Type].
type Field struct {

	// Name is the name of the property.
	Name string

	// Type is the declared type of the value.
	Type reflect.Type

	// Get returns the value of the field on the given target.
	Get func(target any) (any, error)

	// Set sets the value of the field on the given target.
	// It is nil for read-only fields.
	Set func(target any, v any) error

	// Attrs is the declarative metadata of the field.
	Attrs *attrs.Set
}

// Type is the metadata table for one target type, listing its
// editable fields in declaration order.
type Type struct {

	// Name is the name of the type.
	Name string

	// Target is the Go type of the targets, typically a pointer type.
	Target reflect.Type

	fields keylist.List[string, *Field]
}

// NewType returns a new [Type] for targets of Go type T.
func NewType[T any]() *Type {
	rt := reflect.TypeFor[T]()
	return &Type{Name: reflectx.ShortTypeName(rt), Target: rt}
}

// Add adds the given field, replacing any existing field with the same name.
func (t *Type) Add(f *Field) *Type {
	if f.Attrs == nil {
		f.Attrs = attrs.New()
	}
	t.fields.Set(f.Name, f)
	return t
}

// Fields returns the fields in declaration order.
func (t *Type) Fields() []*Field {
	return t.fields.Values
}

// Field returns the field with the given name.
func (t *Type) Field(name string) (*Field, bool) {
	return t.fields.AtTry(name)
}

// Len returns the number of fields.
func (t *Type) Len() int {
	return t.fields.Len()
}

func (t *Type) String() string {
	return t.Name
}

// AddField adds a field of value type V to the given [Type] with targets
// of type T. The set function may be nil for a read-only field, which is
// typical of computed properties declaring [attrs.DependsOn].
func AddField[T, V any](t *Type, name string, get func(T) V, set func(T, V) error, as ...attrs.Attribute) *Field {
	f := &Field{
		Name:  name,
		Type:  reflect.TypeFor[V](),
		Attrs: attrs.New(as...),
	}
	f.Get = func(target any) (any, error) {
		tg, ok := target.(T)
		if !ok {
			return nil, fmt.Errorf("props: target %T is not %v", target, t.Target)
		}
		return get(tg), nil
	}
	if set != nil {
		f.Set = func(target any, v any) error {
			tg, ok := target.(T)
			if !ok {
				return fmt.Errorf("props: target %T is not %v", target, t.Target)
			}
			var vv V
			if v != nil {
				vv = v.(V)
			}
			return set(tg, vv)
		}
	}
	t.Add(f)
	return f
}
