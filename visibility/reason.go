// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visibility

import (
	"fmt"
	"strings"

	"cogentcore.org/propgrid/base/bitflag"
)

// Reason is the bit position of one reason a [Cell] is hidden.
type Reason int32

const (
	// HiddenByCondition is set when an [attrs.VisibleIf] condition
	// of the property is not satisfied.
	HiddenByCondition Reason = iota

	// HiddenByFilter is set when the property does not match the
	// filter text.
	HiddenByFilter

	// HiddenByCategory is set when the category of the property is
	// unchecked in the [Checklist].
	HiddenByCategory

	// HiddenByFactory is set when the editor factory of the property
	// forces it hidden.
	HiddenByFactory
)

var reasonNames = [...]string{"HiddenByCondition", "HiddenByFilter", "HiddenByCategory", "HiddenByFactory"}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", int32(r))
}

// Reasons returns a string listing the reasons set in the given mask.
func Reasons(mask int64) string {
	var names []string
	for r := range Reason(len(reasonNames)) {
		if bitflag.Has(mask, r) {
			names = append(names, r.String())
		}
	}
	return strings.Join(names, "|")
}

// Dimension is the bit position of one independently toggled
// dimension of visibility filtering.
type Dimension int32

const (
	// DimCondition evaluates [attrs.VisibleIf] conditions.
	DimCondition Dimension = iota

	// DimFactory consults the editor [Factory] overrides.
	DimFactory

	// DimText matches properties and categories against the filter text.
	DimText

	// DimCategory applies the category [Checklist].
	DimCategory
)

// AllDimensions is the mask with every [Dimension] enabled.
var AllDimensions = bitflag.Mask(DimCondition, DimFactory, DimText, DimCategory)
