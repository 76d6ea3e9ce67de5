// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bitflag provides simple bit flag setting, checking, and clearing
// methods that take bit position args as ordinal values (from const iota
// enums) and do the bit shifting from there. Although a tiny bit slower,
// the convenience of maintaining ordinal lists of bit positions greatly
// outweighs that cost.
package bitflag

// Flag is the constraint for ordinal bit position types.
type Flag interface {
	~int | ~int32 | ~int64
}

// Mask makes a mask for checking multiple different flags.
func Mask[F Flag](flags ...F) int64 {
	var mask int64
	for _, f := range flags {
		mask |= 1 << uint32(f)
	}
	return mask
}

// Set sets bit value(s) for ordinal bit position flags.
func Set[F Flag](bits *int64, flags ...F) {
	*bits |= Mask(flags...)
}

// Clear clears bit value(s) for ordinal bit position flags.
func Clear[F Flag](bits *int64, flags ...F) {
	*bits &^= Mask(flags...)
}

// SetState sets or clears bit value(s) depending on state (on / off) for
// ordinal bit position flags.
func SetState[F Flag](bits *int64, state bool, flags ...F) {
	if state {
		Set(bits, flags...)
	} else {
		Clear(bits, flags...)
	}
}

// Has checks if given bit value is set for ordinal bit position flag.
func Has[F Flag](bits int64, flag F) bool {
	return bits&(1<<uint32(flag)) != 0
}

// Only returns whether the given flag is the only bit set.
func Only[F Flag](bits int64, flag F) bool {
	return bits == Mask(flag)
}
