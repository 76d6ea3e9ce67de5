// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package attrs provides the declarative metadata attached to editable
// properties: category, display name, read-only and browsable flags,
// defaults, dependency declarations and visibility conditions.
//
// Attributes are plain typed values registered alongside a property,
// rather than discovered through struct tags at runtime. Each attribute
// type has a [Kind], and a [Set] holds the attributes of one property
// in declaration order, grouped by kind.
package attrs

import (
	"fmt"
	"strings"

	"cogentcore.org/propgrid/base/keylist"
	"cogentcore.org/propgrid/base/reflectx"
)

// Kind identifies the type of an [Attribute].
type Kind int32

const (
	KindCategory Kind = iota
	KindDisplayName
	KindDescription
	KindReadOnly
	KindBrowsable
	KindOrder
	KindDefault
	KindDependsOn
	KindVisibleIf
	KindEditor
)

var kindNames = [...]string{"Category", "DisplayName", "Description", "ReadOnly", "Browsable", "Order", "Default", "DependsOn", "VisibleIf", "Editor"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Attribute is one piece of declarative metadata on a property.
type Attribute interface {
	Kind() Kind
}

// DefaultCategory is the category of properties that do not declare one.
const DefaultCategory = "Misc"

// Category is the name of the category a property is grouped under.
type Category string

// DisplayName is the label shown for a property instead of its name.
type DisplayName string

// Description is the help text for a property.
type Description string

// ReadOnly marks a property as not editable.
type ReadOnly bool

// Browsable controls whether a property is shown at all.
type Browsable bool

// Order sorts a property within its category; lower first.
type Order int

// Default is the value a property can be reset to.
type Default struct {
	Value any
}

// DependsOn declares the properties whose changes also change
// the value of the declaring property.
type DependsOn []string

// Editor names the editor used for a property, which selects the
// editor factory consulted for visibility overrides.
type Editor string

func (Category) Kind() Kind { return KindCategory }
func (DisplayName) Kind() Kind { return KindDisplayName }
func (Description) Kind() Kind { return KindDescription }
func (ReadOnly) Kind() Kind { return KindReadOnly }
func (Browsable) Kind() Kind { return KindBrowsable }
func (Order) Kind() Kind { return KindOrder }
func (Default) Kind() Kind { return KindDefault }
func (DependsOn) Kind() Kind { return KindDependsOn }
func (VisibleIf) Kind() Kind { return KindVisibleIf }
func (Editor) Kind() Kind { return KindEditor }

// Neutral returns the neutral instance of the given kind of attribute,
// used where the attribute values of several properties disagree.
func Neutral(k Kind) Attribute {
	switch k {
	case KindCategory:
		return Category(DefaultCategory)
	case KindDisplayName:
		return DisplayName("")
	case KindDescription:
		return Description("")
	case KindReadOnly:
		return ReadOnly(false)
	case KindBrowsable:
		return Browsable(true)
	case KindOrder:
		return Order(0)
	case KindDefault:
		return Default{}
	case KindDependsOn:
		return DependsOn(nil)
	case KindVisibleIf:
		return VisibleIf{}
	case KindEditor:
		return Editor("")
	}
	return nil
}

// Set is an ordered set of attributes, grouped by [Kind]. Kinds such
// as [DependsOn] and [VisibleIf] can occur more than once.
// The zero value is ready to use.
type Set struct {
	kinds keylist.List[Kind, []Attribute]
}

// New returns a new [Set] with the given attributes.
func New(as ...Attribute) *Set {
	s := &Set{}
	for _, a := range as {
		s.Add(a)
	}
	return s
}

// Add adds the given attribute after any existing ones of its kind.
// Nil attributes are ignored.
func (s *Set) Add(a Attribute) {
	if a == nil {
		return
	}
	k := a.Kind()
	s.kinds.Set(k, append(s.kinds.At(k), a))
}

// Replace replaces all attributes of the given kind with the given ones.
func (s *Set) Replace(k Kind, as ...Attribute) {
	s.kinds.Set(k, as)
}

// Len returns the number of kinds present in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.kinds.Len()
}

// Kinds returns the kinds present in the set, in the order
// in which they were first added.
func (s *Set) Kinds() []Kind {
	if s == nil {
		return nil
	}
	return s.kinds.Keys
}

// All returns all attributes of the given kind, in declaration order.
func (s *Set) All(k Kind) []Attribute {
	if s == nil {
		return nil
	}
	return s.kinds.At(k)
}

// Has returns whether the set has an attribute of the given kind.
func (s *Set) Has(k Kind) bool {
	return len(s.All(k)) > 0
}

// Clone returns a copy of the set that can be modified independently.
func (s *Set) Clone() *Set {
	cl := &Set{}
	if s == nil {
		return cl
	}
	for i, k := range s.kinds.Keys {
		cl.kinds.Set(k, append([]Attribute(nil), s.kinds.Values[i]...))
	}
	return cl
}

// Get returns the first attribute of type A in the set.
func Get[A Attribute](s *Set) (A, bool) {
	var z A
	for _, a := range s.All(z.Kind()) {
		if v, ok := a.(A); ok {
			return v, true
		}
	}
	return z, false
}

// All returns all attributes of type A in the set.
func All[A Attribute](s *Set) []A {
	var z A
	var res []A
	for _, a := range s.All(z.Kind()) {
		if v, ok := a.(A); ok {
			res = append(res, v)
		}
	}
	return res
}

// SameKind returns whether the attributes of the given kind
// are identical in both sets.
func SameKind(a, b *Set, k Kind) bool {
	aa, ba := a.All(k), b.All(k)
	if len(aa) != len(ba) {
		return false
	}
	for i := range aa {
		if !reflectx.Equal(aa[i], ba[i]) {
			return false
		}
	}
	return true
}

// CategoryOf returns the category of the set, or [DefaultCategory].
func (s *Set) CategoryOf() string {
	if c, ok := Get[Category](s); ok && c != "" {
		return string(c)
	}
	return DefaultCategory
}

// IsReadOnly returns the read-only attribute and whether it is present.
func (s *Set) IsReadOnly() (readOnly, ok bool) {
	r, ok := Get[ReadOnly](s)
	return bool(r), ok
}

// IsBrowsable returns whether the property should be shown. Properties
// are browsable unless they declare otherwise.
func (s *Set) IsBrowsable() bool {
	b, ok := Get[Browsable](s)
	return !ok || bool(b)
}

// Dependencies returns all property names declared in [DependsOn]
// attributes, in declaration order.
func (s *Set) Dependencies() []string {
	var res []string
	for _, d := range All[DependsOn](s) {
		res = append(res, d...)
	}
	return res
}

// String returns a short description of the set.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range s.Kinds() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", k, s.All(k))
	}
	b.WriteString("}")
	return b.String()
}
