// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"cogentcore.org/propgrid/base/keylist"
)

// ID identifies one registered listener function, so that it can be
// removed exactly. Go functions are not comparable, so listeners are
// always removed by the ID returned when they were added.
type ID uint64

// NoID is the zero ID, which is never assigned to a listener.
// It is returned by sources that do not support notification.
const NoID ID = 0

// Listeners is an ordered registry of listener functions receiving
// events of type E. The zero value is ready to use.
type Listeners[E any] struct {
	last  ID
	funcs keylist.List[ID, func(E)]
}

// Add adds the given function and returns the ID needed to remove it.
func (ls *Listeners[E]) Add(fun func(E)) ID {
	ls.last++
	ls.funcs.Set(ls.last, fun)
	return ls.last
}

// Remove removes the listener with the given ID, returning false
// if there is no such listener.
func (ls *Listeners[E]) Remove(id ID) bool {
	return ls.funcs.Delete(id)
}

// Len returns the number of listeners.
func (ls *Listeners[E]) Len() int {
	return ls.funcs.Len()
}

// Reset removes all listeners.
func (ls *Listeners[E]) Reset() {
	ls.funcs.Reset()
}

// Call calls all functions with the given event, in the order in which
// they were added. Listeners added or removed during the call take effect
// on the next call.
func (ls *Listeners[E]) Call(ev E) {
	n := ls.funcs.Len()
	if n == 0 {
		return
	}
	funs := make([]func(E), n)
	copy(funs, ls.funcs.Values)
	for _, fun := range funs {
		fun(ev)
	}
}
