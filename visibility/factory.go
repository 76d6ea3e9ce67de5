// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visibility

import (
	"reflect"
	"sync"

	"cogentcore.org/propgrid/attrs"
)

// Override is the decision of a [Factory] about the visibility of a cell.
type Override int32

const (
	// NoOverride leaves the decision to the other dimensions.
	NoOverride Override = iota

	// ForceVisible shows the cell regardless of the other dimensions.
	ForceVisible

	// ForceHidden hides the cell.
	ForceHidden
)

func (o Override) String() string {
	switch o {
	case ForceVisible:
		return "ForceVisible"
	case ForceHidden:
		return "ForceHidden"
	}
	return "NoOverride"
}

// Factory is the editor factory of a kind of value, which can override
// the visibility of the cells it creates editors for.
type Factory interface {
	Override(cell *Cell) Override
}

// FactoryFunc is a function implementing [Factory].
type FactoryFunc func(cell *Cell) Override

func (f FactoryFunc) Override(cell *Cell) Override { return f(cell) }

// NoopFactory is the [Factory] of values without a registered factory.
type NoopFactory struct{}

func (NoopFactory) Override(*Cell) Override { return NoOverride }

// FactoryRegistry maps editor names and value types to factories.
// The zero value is ready to use.
type FactoryRegistry struct {
	mu       sync.RWMutex
	byEditor map[string]Factory
	byType   map[reflect.Type]Factory
}

// RegisterType sets the factory of values of the given type.
func (r *FactoryRegistry) RegisterType(typ reflect.Type, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byType == nil {
		r.byType = make(map[reflect.Type]Factory)
	}
	r.byType[typ] = f
}

// RegisterEditor sets the factory of properties declaring the given
// [attrs.Editor].
func (r *FactoryRegistry) RegisterEditor(editor string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byEditor == nil {
		r.byEditor = make(map[string]Factory)
	}
	r.byEditor[editor] = f
}

// Lookup returns the factory of the given cell: the factory of its
// declared editor, else of its value type, else [NoopFactory].
func (r *FactoryRegistry) Lookup(cell *Cell) Factory {
	if r == nil {
		return NoopFactory{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ed, ok := attrs.Get[attrs.Editor](cell.Property.Attrs()); ok && ed != "" {
		if f, ok := r.byEditor[string(ed)]; ok {
			return f
		}
	}
	if f, ok := r.byType[cell.Property.Type()]; ok {
		return f
	}
	return NoopFactory{}
}
