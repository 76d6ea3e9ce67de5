// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package props provides editable properties of target objects.
//
// The editable members of a Go type are registered ahead of time as a
// [Type]: an explicit metadata table of fields, each with a name, a
// value type, getter and setter functions, and an [attrs.Set]. Binding a
// Type to a target value yields an [Instance], whose [Handle]s are the
// [Property] values consumed by the rest of propgrid.
package props

import (
	"errors"
	"reflect"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/events"
)

var (
	// ErrReadOnly is returned when setting a read-only property.
	ErrReadOnly = errors.New("property is read-only")

	// ErrNotFound is returned when a property does not exist.
	ErrNotFound = errors.New("property not found")

	// ErrNoDefault is returned when resetting a property that
	// has no default value.
	ErrNoDefault = errors.New("property has no default value")

	// ErrNotRegistered is returned when binding a target whose type
	// has not been registered.
	ErrNotRegistered = errors.New("type not registered")
)

// Property is one editable, named property, bound to its target(s).
type Property interface {

	// Name returns the name of the property, unique within its target.
	Name() string

	// Type returns the declared type of the property value.
	Type() reflect.Type

	// Attrs returns the declarative metadata of the property.
	// It must not be modified.
	Attrs() *attrs.Set

	// Value returns the current value of the property.
	Value() (any, error)

	// SetValue sets the value of the property. Errors returned by the
	// target's own validation are passed through.
	SetValue(v any) error

	// IsReadOnly returns whether the property can not be set.
	IsReadOnly() bool

	// CanResetValue returns whether ResetValue can be called.
	CanResetValue() bool

	// ResetValue sets the property to its default value.
	ResetValue() error

	// ShouldSerializeValue returns whether the current value differs
	// from the default, such that it is worth persisting and a
	// "reset to default" action should be offered.
	ShouldSerializeValue() bool
}

// ChangeNotifier is implemented by properties that can report changes
// of their value. Listeners are removed by the returned ID. An ID of
// [events.NoID] means the underlying target does not notify changes.
type ChangeNotifier interface {
	AddChangeListener(fun func(p Property)) events.ID
	RemoveChangeListener(id events.ID)
}

// Object is a set of properties, typically those of one target.
type Object interface {

	// Properties returns all properties in declaration order.
	Properties() []Property

	// Property returns the property with the given name.
	Property(name string) (Property, bool)
}

// Cloner is implemented by values that can make independent copies of
// themselves. When one value is written to several targets, each target
// receives its own clone.
type Cloner interface {
	Clone() any
}

// Raiser is implemented by targets that announce changes of their
// properties, typically by embedding a notify.Notifier.
type Raiser interface {
	RaisePropertyChanged(name string)
}

// Observable is implemented by targets whose property changes can be
// listened to, typically by embedding a notify.Notifier.
type Observable interface {
	OnPropertyChanged(fun func(name string)) events.ID
	RemovePropertyChanged(id events.ID) bool
}

type indeterminate struct{}

func (indeterminate) String() string { return "" }

// Indeterminate is the value of a property that spans several targets
// whose values disagree. It is shown as a blank value.
var Indeterminate any = indeterminate{}

// IsIndeterminate returns whether v is [Indeterminate].
func IsIndeterminate(v any) bool {
	_, ok := v.(indeterminate)
	return ok
}

// Label returns the display label of the property: its [attrs.DisplayName]
// if set, and its name otherwise.
func Label(p Property) string {
	if dn, ok := attrs.Get[attrs.DisplayName](p.Attrs()); ok && dn != "" {
		return string(dn)
	}
	return p.Name()
}
