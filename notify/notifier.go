// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notify provides property change notification for targets,
// with automatic re-announcement of dependent (computed) properties.
//
// A target embeds a [Notifier] and initializes it with the
// [DependencyMap] of its [props.Type]. Raising a change of a property
// then also raises changes of all properties declaring an
// [attrs.DependsOn] on it, transitively and in declaration order,
// without looping on cyclic declarations.
package notify

import (
	"cogentcore.org/propgrid/events"
	"cogentcore.org/propgrid/props"
)

// Notifier provides property change notification for one target.
// The zero value notifies plain changes only, with no dependents.
// A Notifier must not be copied after first use.
type Notifier struct {
	deps      *DependencyMap
	listeners events.Listeners[string]

	// guard is the stack of names whose dependents are being announced.
	guard []frame
}

// frame is one entry of the propagation guard.
type frame struct {
	name string
	deps []string
	next int
}

// Init sets the dependency map from the given registry and type.
func (n *Notifier) Init(r *Registry, t *props.Type) {
	n.deps = r.Map(t)
}

// SetDependencyMap sets the dependency map directly.
func (n *Notifier) SetDependencyMap(m *DependencyMap) {
	n.deps = m
}

// DependencyMap returns the dependency map, which may be nil.
func (n *Notifier) DependencyMap() *DependencyMap {
	return n.deps
}

// OnPropertyChanged adds a function called with the name of each
// property change announced.
func (n *Notifier) OnPropertyChanged(fun func(name string)) events.ID {
	return n.listeners.Add(fun)
}

// RemovePropertyChanged removes the listener with the given ID.
func (n *Notifier) RemovePropertyChanged(id events.ID) bool {
	return n.listeners.Remove(id)
}

// Listeners returns the number of change listeners.
func (n *Notifier) Listeners() int {
	return n.listeners.Len()
}

// RaisePropertyChanged announces a change of the given property, then of
// its dependents, depth first in declaration order. A name that is already
// being propagated (a cyclic declaration, or a listener raising it again)
// is skipped. The guard is released even if a listener panics.
func (n *Notifier) RaisePropertyChanged(name string) {
	base := len(n.guard)
	defer func() {
		n.guard = n.guard[:base]
	}()
	n.visit(name)
	for len(n.guard) > base {
		top := &n.guard[len(n.guard)-1]
		if top.next >= len(top.deps) {
			n.guard = n.guard[:len(n.guard)-1]
			continue
		}
		dep := top.deps[top.next]
		top.next++
		n.visit(dep)
	}
}

// visit announces the given name and pushes its dependents, if any.
func (n *Notifier) visit(name string) {
	if n.propagating(name) {
		return
	}
	n.listeners.Call(name)
	deps := n.deps.Dependents(name)
	if len(deps) == 0 {
		return
	}
	n.guard = append(n.guard, frame{name: name, deps: deps})
}

// propagating returns whether the name is on the guard.
func (n *Notifier) propagating(name string) bool {
	for i := range n.guard {
		if n.guard[i].name == name {
			return true
		}
	}
	return false
}
