// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry maps Go types to their registered [Type]. It is passed
// explicitly to the editing sessions that use it.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*Type
}

// NewRegistry returns a new empty [Registry].
func NewRegistry() *Registry {
	return &Registry{types: map[reflect.Type]*Type{}}
}

// Register registers the given types. It is an error to register
// two types for the same Go type.
func (r *Registry) Register(ts ...*Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.types == nil {
		r.types = map[reflect.Type]*Type{}
	}
	for _, t := range ts {
		if _, has := r.types[t.Target]; has {
			return fmt.Errorf("props.Registry: type %v is already registered", t.Target)
		}
		r.types[t.Target] = t
	}
	return nil
}

// Lookup returns the [Type] registered for the given Go type.
func (r *Registry) Lookup(rt reflect.Type) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[rt]
	return t, ok
}

// Bind returns the [Object] of the given target. Targets that already
// are an Object are returned as is; otherwise the registered [Type] of
// the target is bound to it.
func (r *Registry) Bind(target any) (Object, error) {
	if obj, ok := target.(Object); ok {
		return obj, nil
	}
	t, ok := r.Lookup(reflect.TypeOf(target))
	if !ok {
		return nil, fmt.Errorf("props.Registry: %T: %w", target, ErrNotRegistered)
	}
	return t.Bind(target), nil
}
