// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visibility

import (
	"slices"

	"cogentcore.org/propgrid/events"
)

// Checklist is the set of categories the user has checked.
// Every category is checked until it is unchecked.
type Checklist struct {
	unchecked map[string]bool
	listeners events.Listeners[string]
}

// IsChecked returns whether the category with the given name is checked.
func (cl *Checklist) IsChecked(name string) bool {
	return !cl.unchecked[name]
}

// Check checks the category with the given name.
func (cl *Checklist) Check(name string) { cl.SetChecked(name, true) }

// Uncheck unchecks the category with the given name.
func (cl *Checklist) Uncheck(name string) { cl.SetChecked(name, false) }

// SetChecked sets whether the category with the given name is checked,
// calling the change listeners with the name if that changes it.
func (cl *Checklist) SetChecked(name string, checked bool) {
	if cl.IsChecked(name) == checked {
		return
	}
	if checked {
		delete(cl.unchecked, name)
	} else {
		if cl.unchecked == nil {
			cl.unchecked = make(map[string]bool)
		}
		cl.unchecked[name] = true
	}
	cl.listeners.Call(name)
}

// CheckAll checks every category.
func (cl *Checklist) CheckAll() {
	for _, name := range cl.Unchecked() {
		cl.Check(name)
	}
}

// Unchecked returns the sorted names of the unchecked categories.
func (cl *Checklist) Unchecked() []string {
	names := make([]string, 0, len(cl.unchecked))
	for name := range cl.unchecked {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// OnChange adds a function called with the category name
// whenever a category is checked or unchecked.
func (cl *Checklist) OnChange(fun func(name string)) events.ID {
	return cl.listeners.Add(fun)
}

// RemoveOnChange removes the change listener with the given ID.
func (cl *Checklist) RemoveOnChange(id events.ID) bool {
	return cl.listeners.Remove(id)
}
