// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsondoc edits JSON documents as property sets. A [Schema]
// lists the editable paths of a kind of document, and a [Document]
// is a [props.Object] whose properties read and write those paths.
package jsondoc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/notify"
	"cogentcore.org/propgrid/props"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalid is returned for data that is not valid JSON.
var ErrInvalid = errors.New("jsondoc: invalid JSON")

// Schema is the list of editable paths of a kind of JSON document.
type Schema struct {

	// Type is the metadata table of the documents, with one field
	// per path, named by the path.
	Type *props.Type
}

// NewSchema returns a new empty [Schema] with the given name.
func NewSchema(name string) *Schema {
	t := props.NewType[*Document]()
	t.Name = name
	return &Schema{Type: t}
}

// Field adds an editable field at the given gjson path, with values of
// the given type. Values of basic kinds are read and written directly,
// others through their JSON encoding.
func (s *Schema) Field(path string, typ reflect.Type, as ...attrs.Attribute) *props.Field {
	f := &props.Field{
		Name:  path,
		Type:  typ,
		Attrs: attrs.New(as...),
		Get: func(target any) (any, error) {
			d, err := document(target)
			if err != nil {
				return nil, err
			}
			return d.get(path, typ)
		},
		Set: func(target any, v any) error {
			d, err := document(target)
			if err != nil {
				return err
			}
			return d.set(path, v)
		},
	}
	s.Type.Add(f)
	return f
}

func document(target any) (*Document, error) {
	d, ok := target.(*Document)
	if !ok {
		return nil, fmt.Errorf("jsondoc: target %T is not a *Document", target)
	}
	return d, nil
}

// InferSchema returns a [Schema] with a field for every scalar value of
// the given JSON object, descending into nested objects, whose fields are
// in the category named by the top level key. Strings are string fields,
// numbers float64, booleans bool, and arrays and nulls any.
func InferSchema(name string, data []byte) (*Schema, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalid
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("jsondoc: %s: top level value is not an object", name)
	}
	s := NewSchema(name)
	s.infer("", "", root)
	return s, nil
}

func (s *Schema) infer(prefix, category string, obj gjson.Result) {
	obj.ForEach(func(key, val gjson.Result) bool {
		path := EscapePath(key.String())
		if prefix != "" {
			path = prefix + "." + path
		}
		cat := category
		if cat == "" && prefix == "" && val.IsObject() {
			cat = key.String()
		}
		if val.IsObject() {
			s.infer(path, cat, val)
			return true
		}
		var as []attrs.Attribute
		if cat != "" {
			as = append(as, attrs.Category(cat))
		}
		s.Field(path, inferType(val), as...)
		return true
	})
}

func inferType(r gjson.Result) reflect.Type {
	switch r.Type {
	case gjson.String:
		return reflect.TypeFor[string]()
	case gjson.Number:
		return reflect.TypeFor[float64]()
	case gjson.True, gjson.False:
		return reflect.TypeFor[bool]()
	}
	return reflect.TypeFor[any]()
}

// EscapePath escapes the gjson path syntax characters of a key.
func EscapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Document is a JSON document edited through the properties of its
// [Schema]. Changes are announced through the embedded [notify.Notifier],
// including the paths declared to depend on the changed path.
type Document struct {
	notify.Notifier
	schema *Schema
	data   []byte
	inst   *props.Instance
}

// Open returns a new [Document] of the given schema over a copy of
// the given JSON data. The dependency map of the schema is taken from
// the given registry.
func (s *Schema) Open(reg *notify.Registry, data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalid
	}
	d := &Document{schema: s, data: append([]byte(nil), data...)}
	d.Init(reg, s.Type)
	d.inst = s.Type.Bind(d)
	return d, nil
}

// Schema returns the schema of the document.
func (d *Document) Schema() *Schema { return d.schema }

// Bytes returns the current JSON data.
func (d *Document) Bytes() []byte { return d.data }

func (d *Document) String() string { return string(d.data) }

func (d *Document) Properties() []props.Property { return d.inst.Properties() }

func (d *Document) Property(name string) (props.Property, bool) {
	return d.inst.Property(name)
}

func (d *Document) get(path string, typ reflect.Type) (any, error) {
	r := gjson.GetBytes(d.data, path)
	if !r.Exists() {
		return nil, fmt.Errorf("jsondoc: %s: %w", path, props.ErrNotFound)
	}
	rv := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.String:
		rv.SetString(r.String())
	case reflect.Bool:
		rv.SetBool(r.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		rv.SetInt(r.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		rv.SetUint(r.Uint())
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(r.Float())
	default:
		if err := json.Unmarshal([]byte(r.Raw), rv.Addr().Interface()); err != nil {
			return nil, fmt.Errorf("jsondoc: %s: %w", path, err)
		}
	}
	return rv.Interface(), nil
}

func (d *Document) set(path string, v any) error {
	var data []byte
	var err error
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		data, err = sjson.SetBytes(d.data, path, v)
	default:
		var raw []byte
		raw, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("jsondoc: %s: %w", path, err)
		}
		data, err = sjson.SetRawBytes(d.data, path, raw)
	}
	if err != nil {
		return fmt.Errorf("jsondoc: %s: %w", path, err)
	}
	d.data = data
	return nil
}
