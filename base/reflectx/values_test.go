// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
	Tags []string
}

type cloneable struct {
	N int
}

func (c *cloneable) Clone() any { return &cloneable{N: c.N + 100} }

func TestEqual(t *testing.T) {
	assert.True(t, Equal(5, 5))
	assert.False(t, Equal(5, 7))
	assert.False(t, Equal(5, int64(5)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, 0))
	assert.False(t, Equal("", nil))
	assert.True(t, Equal([]int{1, 2}, []int{1, 2}))
	assert.False(t, Equal([]int{1, 2}, []int{2, 1}))
	assert.True(t, Equal(point{X: 1, Tags: []string{"a"}}, point{X: 1, Tags: []string{"a"}}))

	a, b := &point{X: 1}, &point{X: 1}
	assert.False(t, Equal(a, b), "pointers compare by identity")
	assert.True(t, Equal(a, a))
	assert.True(t, Equal([]any{1, "x"}, []any{1, "x"}))
}

func TestSnapshot(t *testing.T) {
	orig := &point{X: 1, Y: 2, Tags: []string{"a"}}
	s, err := Snapshot(orig)
	require.NoError(t, err)
	cp := s.(*point)
	orig.X = 10
	orig.Tags[0] = "changed"
	assert.Equal(t, 1, cp.X)
	assert.Equal(t, []string{"a"}, cp.Tags)

	sl := []int{1, 2, 3}
	s, err = Snapshot(sl)
	require.NoError(t, err)
	sl[0] = 100
	assert.Equal(t, []int{1, 2, 3}, s)

	m := map[string]int{"a": 1}
	s, err = Snapshot(m)
	require.NoError(t, err)
	m["a"] = 2
	assert.Equal(t, map[string]int{"a": 1}, s)

	s, err = Snapshot(42)
	require.NoError(t, err)
	assert.Equal(t, 42, s)

	s, err = Snapshot(&cloneable{N: 1})
	require.NoError(t, err)
	assert.Equal(t, 101, s.(*cloneable).N)

	s, err = Snapshot(nil)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestConvert(t *testing.T) {
	v, err := Convert(3, reflect.TypeFor[float64]())
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = Convert("x", reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = Convert(nil, reflect.TypeFor[*point]())
	require.NoError(t, err)
	assert.Nil(t, v.(*point))

	_, err = Convert(nil, reflect.TypeFor[int]())
	assert.Error(t, err)
	_, err = Convert("x", reflect.TypeFor[int]())
	assert.Error(t, err)

	v, err = Convert([]int{1}, reflect.TypeFor[any]())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
}
