// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrs

import (
	"fmt"

	"cogentcore.org/propgrid/base/reflectx"
)

// Logic is the comparison applied by a [VisibleIf] condition.
type Logic int32

const (
	// Equal is satisfied when the value equals the condition value.
	Equal Logic = iota

	// NotEqual is satisfied when the value differs from the condition value.
	NotEqual

	// OneOf is satisfied when the value equals any element of the
	// condition value, which must be a []any.
	OneOf

	// NoneOf is satisfied when the value equals no element of the
	// condition value, which must be a []any.
	NoneOf
)

func (l Logic) String() string {
	switch l {
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	case OneOf:
		return "OneOf"
	case NoneOf:
		return "NoneOf"
	}
	return fmt.Sprintf("Logic(%d)", int32(l))
}

// VisibleIf makes a property visible only while another property of the
// same target satisfies the condition. Several VisibleIf attributes on
// one property must all be satisfied. The zero VisibleIf has no
// Property and is always satisfied.
type VisibleIf struct {

	// Property is the name of the property the condition reads.
	Property string

	// Value is compared against the property value according to Logic.
	Value any

	// Logic is the comparison.
	Logic Logic
}

// ShowIf returns a [VisibleIf] condition with [Equal] logic.
func ShowIf(property string, value any) VisibleIf {
	return VisibleIf{Property: property, Value: value}
}

// IsZero returns whether the condition has no property, in which case
// it is always satisfied.
func (c VisibleIf) IsZero() bool {
	return c.Property == ""
}

// Eval returns whether the given property value satisfies the condition.
func (c VisibleIf) Eval(v any) bool {
	if c.IsZero() {
		return true
	}
	switch c.Logic {
	case Equal:
		return reflectx.Equal(v, c.Value)
	case NotEqual:
		return !reflectx.Equal(v, c.Value)
	case OneOf, NoneOf:
		found := false
		list, _ := c.Value.([]any)
		for _, e := range list {
			if reflectx.Equal(v, e) {
				found = true
				break
			}
		}
		return found == (c.Logic == OneOf)
	}
	return false
}

func (c VisibleIf) String() string {
	return fmt.Sprintf("VisibleIf(%s %v %v)", c.Property, c.Logic, c.Value)
}
