// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
)

// NonPointerType returns a non-pointer version of the given type.
func NonPointerType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return typ
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// NonPointerValue returns a non-pointer version of the given value.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// ShortTypeName returns the name of the non-pointer version
// of the given type, without the package path.
func ShortTypeName(typ reflect.Type) string {
	typ = NonPointerType(typ)
	if typ == nil {
		return "nil"
	}
	if nm := typ.Name(); nm != "" {
		return nm
	}
	return typ.String()
}

// IsNillable returns whether values of the given kind can be nil.
func IsNillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// AnyIsNil checks if an interface value is nil. The interface itself
// could be nil, or the value pointed to by the interface could be nil.
// This safely checks both.
func AnyIsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return IsNillable(rv.Kind()) && rv.IsNil()
}
