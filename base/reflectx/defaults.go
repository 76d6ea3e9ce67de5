// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// SetFromDefaultTags sets the fields of the given struct pointer from
// their `default:` struct field tags, descending into struct fields
// without a tag. Only basic kinds of fields can have a default.
func SetFromDefaultTags(obj any) error {
	if AnyIsNil(obj) {
		return nil
	}
	val := NonPointerValue(reflect.ValueOf(obj))
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("SetFromDefaultTags: %T is not a struct pointer", obj)
	}
	typ := val.Type()
	var errs []error
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok && f.Type.Kind() == reflect.Struct {
			errs = append(errs, SetFromDefaultTags(fv.Addr().Interface()))
			continue
		}
		if !ok {
			continue
		}
		if err := SetString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("SetFromDefaultTags: field %s of %s: %w", f.Name, typ.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// SetString sets the given settable value of a basic kind
// from its string representation.
func SetString(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("cannot set %v from a string", v.Type())
	}
	return nil
}
