// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	var kl List[string, int]
	kl.Set("Width", 1)
	kl.Set("Height", 2)
	kl.Set("Area", 3)
	assert.Equal(t, 3, kl.Len())
	assert.Equal(t, 2, kl.At("Height"))
	assert.Equal(t, 0, kl.At("Depth"))

	kl.Set("Height", 20)
	assert.Equal(t, []string{"Width", "Height", "Area"}, kl.Keys)
	assert.Equal(t, []int{1, 20, 3}, kl.Values)

	assert.True(t, kl.Delete("Width"))
	assert.False(t, kl.Delete("Width"))
	assert.Equal(t, []string{"Height", "Area"}, kl.Keys)
	v, ok := kl.AtTry("Area")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = kl.AtTry("Width")
	assert.False(t, ok)

	kl.Set("Width", 5)
	assert.Equal(t, []string{"Height", "Area", "Width"}, kl.Keys)
	assert.Equal(t, 5, kl.At("Width"))

	kl.Reset()
	assert.Equal(t, 0, kl.Len())
	assert.False(t, kl.Delete("Area"))
}

func TestNilList(t *testing.T) {
	var kl *List[string, int]
	assert.Equal(t, 0, kl.Len())
	_, ok := kl.AtTry("x")
	assert.False(t, ok)
}
