// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notify

import (
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/propgrid/base/keylist"
	"cogentcore.org/propgrid/props"
)

// DependencyMap maps the name of a source property to the names of the
// properties that depend on it, in declaration order. It is immutable
// once built.
type DependencyMap struct {
	deps keylist.List[string, []string]
}

// BuildDependencyMap inverts the [attrs.DependsOn] declarations of the
// fields of the given type. It returns nil if no field declares any
// dependency. Names of unknown source properties are kept as is; they
// never fire.
func BuildDependencyMap(t *props.Type) *DependencyMap {
	m := &DependencyMap{}
	for _, f := range t.Fields() {
		for _, src := range f.Attrs.Dependencies() {
			ds := m.deps.At(src)
			if slices.Contains(ds, f.Name) {
				continue
			}
			m.deps.Set(src, append(ds, f.Name))
		}
	}
	if m.deps.Len() == 0 {
		return nil
	}
	return m
}

// Dependents returns the names of the properties depending on the given
// property. The result must not be modified.
func (m *DependencyMap) Dependents(name string) []string {
	if m == nil {
		return nil
	}
	return m.deps.At(name)
}

// Len returns the number of source properties.
func (m *DependencyMap) Len() int {
	if m == nil {
		return 0
	}
	return m.deps.Len()
}

// Registry caches the [DependencyMap] of each [props.Type]. Maps are built
// once, on first request, and kept for the lifetime of the registry.
// It is safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	maps map[*props.Type]*DependencyMap
}

// NewRegistry returns a new empty [Registry].
func NewRegistry() *Registry {
	return &Registry{maps: map[*props.Type]*DependencyMap{}}
}

// Map returns the dependency map of the given type, building it if this
// is the first request for the type. It returns nil for types without
// dependencies.
func (r *Registry) Map(t *props.Type) *DependencyMap {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maps == nil {
		r.maps = map[*props.Type]*DependencyMap{}
	}
	if m, ok := r.maps[t]; ok {
		return m
	}
	m := BuildDependencyMap(t)
	r.maps[t] = m
	slog.Debug("notify: built dependency map", "type", t.Name, "sources", m.Len())
	return m
}
