// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsondoc

import (
	"reflect"
	"testing"

	"cogentcore.org/propgrid/attrs"
	"cogentcore.org/propgrid/multi"
	"cogentcore.org/propgrid/notify"
	"cogentcore.org/propgrid/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const server = `{
  "name": "api",
  "enabled": true,
  "listen": {"host": "localhost", "port": 8080},
  "tags": ["a", "b"],
  "owner": null
}`

func TestInferSchema(t *testing.T) {
	s, err := InferSchema("server", []byte(server))
	require.NoError(t, err)
	var names []string
	for _, f := range s.Type.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"name", "enabled", "listen.host", "listen.port", "tags", "owner"}, names)

	port, ok := s.Type.Field("listen.port")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[float64](), port.Type)
	assert.Equal(t, "listen", port.Attrs.CategoryOf())
	name, _ := s.Type.Field("name")
	assert.Equal(t, attrs.DefaultCategory, name.Attrs.CategoryOf())
	tags, _ := s.Type.Field("tags")
	assert.Equal(t, reflect.TypeFor[any](), tags.Type)

	_, err = InferSchema("bad", []byte(`{"a":`))
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = InferSchema("array", []byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestDocumentGetSet(t *testing.T) {
	s, err := InferSchema("server", []byte(server))
	require.NoError(t, err)
	d, err := s.Open(notify.NewRegistry(), []byte(server))
	require.NoError(t, err)

	p, ok := d.Property("listen.port")
	require.True(t, ok)
	v, err := p.Value()
	require.NoError(t, err)
	assert.Equal(t, 8080.0, v)

	require.NoError(t, p.SetValue(9090))
	assert.Equal(t, int64(9090), gjson.GetBytes(d.Bytes(), "listen.port").Int())

	tags, _ := d.Property("tags")
	v, err = tags.Value()
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, v)
	require.NoError(t, tags.SetValue([]string{"x"}))
	assert.JSONEq(t, `["x"]`, gjson.GetBytes(d.Bytes(), "tags").Raw)

	owner, _ := d.Property("owner")
	v, err = owner.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = s.Open(nil, []byte("{"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDocumentMissingPath(t *testing.T) {
	s := NewSchema("partial")
	s.Field("missing", reflect.TypeFor[string]())
	d, err := s.Open(notify.NewRegistry(), []byte(`{}`))
	require.NoError(t, err)
	p, _ := d.Property("missing")
	_, err = p.Value()
	assert.ErrorIs(t, err, props.ErrNotFound)

	require.NoError(t, p.SetValue("now"))
	v, err := p.Value()
	require.NoError(t, err)
	assert.Equal(t, "now", v)
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, `a\.b`, EscapePath("a.b"))
	s, err := InferSchema("dots", []byte(`{"a.b": 1}`))
	require.NoError(t, err)
	d, err := s.Open(notify.NewRegistry(), []byte(`{"a.b": 1}`))
	require.NoError(t, err)
	p, ok := d.Property(`a\.b`)
	require.True(t, ok)
	v, _ := p.Value()
	assert.Equal(t, 1.0, v)
}

func TestDocumentNotifies(t *testing.T) {
	s := NewSchema("box")
	s.Field("width", reflect.TypeFor[int]())
	s.Field("label", reflect.TypeFor[string](), attrs.DependsOn{"width"})
	d, err := s.Open(notify.NewRegistry(), []byte(`{"width": 1, "label": "w"}`))
	require.NoError(t, err)

	var got []string
	d.OnPropertyChanged(func(name string) { got = append(got, name) })
	w, _ := d.Property("width")
	require.NoError(t, w.SetValue(3))
	assert.Equal(t, []string{"width", "label"}, got)
	v, _ := w.Value()
	assert.Equal(t, 3, v)
}

func TestDocumentsAsMultiObject(t *testing.T) {
	s, err := InferSchema("server", []byte(server))
	require.NoError(t, err)
	reg := notify.NewRegistry()
	a, _ := s.Open(reg, []byte(server))
	b, _ := s.Open(reg, []byte(`{"name": "web", "enabled": true, "listen": {"host": "localhost", "port": 80}}`))
	o, err := multi.NewObject(a, b)
	require.NoError(t, err)

	host, _ := o.Property("listen.host")
	v, _ := host.Value()
	assert.Equal(t, "localhost", v)
	name, _ := o.Property("name")
	v, _ = name.Value()
	assert.True(t, props.IsIndeterminate(v))

	tags, _ := o.Property("tags")
	v, _ = tags.Value()
	assert.True(t, props.IsIndeterminate(v), "a missing path reads as its error message")

	require.NoError(t, name.SetValue("svc"))
	assert.Equal(t, "svc", gjson.GetBytes(b.Bytes(), "name").String())
}
