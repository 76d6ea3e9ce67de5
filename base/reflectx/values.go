// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
)

// Equal returns whether the two values are exactly equal. Comparable
// values of the same dynamic type are compared with ==, and everything
// else (slices, maps, structs containing them) with [reflect.DeepEqual].
// A nil value is only equal to another nil value.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return safeCompare(a, b)
	}
	return reflect.DeepEqual(a, b)
}

// safeCompare compares with ==, which can still panic for interface
// fields holding incomparable values; those fall back to DeepEqual.
func safeCompare(a, b any) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			eq = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}

// Snapshot returns an independent deep copy of the given value, such that
// later mutation of the original through a pointer, slice or map does not
// affect the copy. Values implementing Clone() any are cloned with it.
// Scalars and other immutable values are returned as is.
func Snapshot(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if cl, ok := v.(interface{ Clone() any }); ok {
		return cl.Clone(), nil
	}
	rv := reflect.ValueOf(v)
	opt := copier.Option{DeepCopy: true, CaseSensitive: true}
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return v, nil
		}
		nv := reflect.New(rv.Elem().Type())
		if err := copier.CopyWithOption(nv.Interface(), v, opt); err != nil {
			return nil, fmt.Errorf("reflectx.Snapshot: %w", err)
		}
		return nv.Interface(), nil
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return v, nil
		}
		fallthrough
	case reflect.Struct:
		nv := reflect.New(rv.Type())
		if err := copier.CopyWithOption(nv.Interface(), v, opt); err != nil {
			return nil, fmt.Errorf("reflectx.Snapshot: %w", err)
		}
		return nv.Elem().Interface(), nil
	}
	return v, nil
}

// Convert returns the given value as the given type, if it is assignable
// or is a numeric value convertible to a numeric type. A nil value converts
// to the zero value of nillable types.
func Convert(v any, typ reflect.Type) (any, error) {
	if typ == nil || typ.Kind() == reflect.Interface && v == nil {
		return v, nil
	}
	if v == nil {
		if IsNillable(typ.Kind()) {
			return reflect.Zero(typ).Interface(), nil
		}
		return nil, fmt.Errorf("cannot use nil as %v", typ)
	}
	vt := reflect.TypeOf(v)
	if vt.AssignableTo(typ) {
		return v, nil
	}
	if isNumeric(vt.Kind()) && isNumeric(typ.Kind()) || vt.Kind() == reflect.String && typ.Kind() == reflect.String {
		return reflect.ValueOf(v).Convert(typ).Interface(), nil
	}
	return nil, fmt.Errorf("cannot use %v (type %v) as %v", v, vt, typ)
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}
