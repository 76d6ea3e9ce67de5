// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keylist provides a list of values kept in insertion order
// and indexed by key. Property tables, dependency maps, attribute
// sets and grid rows are all keylists, since their declaration order
// is part of what they mean.
package keylist

import "slices"

// List is a slice of values in insertion order with an index from
// key to position. The zero value is an empty list ready to use.
// Keys and Values must not be modified directly.
type List[K comparable, V any] struct {
	Keys   []K
	Values []V

	index map[K]int
}

// Set sets the value of the given key, appending it if the key
// is new and replacing the value in place otherwise.
func (kl *List[K, V]) Set(key K, val V) {
	if i, ok := kl.index[key]; ok {
		kl.Values[i] = val
		return
	}
	if kl.index == nil {
		kl.index = map[K]int{}
	}
	kl.index[key] = len(kl.Keys)
	kl.Keys = append(kl.Keys, key)
	kl.Values = append(kl.Values, val)
}

// At returns the value of the given key, or the zero value.
func (kl *List[K, V]) At(key K) V {
	v, _ := kl.AtTry(key)
	return v
}

// AtTry returns the value of the given key and whether it is present.
// It is safe on a nil list.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	if kl != nil {
		if i, ok := kl.index[key]; ok {
			return kl.Values[i], true
		}
	}
	var zero V
	return zero, false
}

// Delete removes the given key, returning whether it was present.
// Positions after it shift down by one.
func (kl *List[K, V]) Delete(key K) bool {
	i, ok := kl.index[key]
	if !ok {
		return false
	}
	kl.Keys = slices.Delete(kl.Keys, i, i+1)
	kl.Values = slices.Delete(kl.Values, i, i+1)
	delete(kl.index, key)
	for j := i; j < len(kl.Keys); j++ {
		kl.index[kl.Keys[j]] = j
	}
	return true
}

// Len returns the number of keys. It is safe on a nil list.
func (kl *List[K, V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Keys)
}

// Reset empties the list.
func (kl *List[K, V]) Reset() {
	kl.Keys, kl.Values, kl.index = nil, nil, nil
}
