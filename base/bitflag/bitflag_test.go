// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitflag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testFlags int64

const (
	flagA testFlags = iota
	flagB
	flagC
)

func TestBitFlags(t *testing.T) {
	var bits int64
	Set(&bits, flagA, flagC)
	assert.True(t, Has(bits, flagA))
	assert.False(t, Has(bits, flagB))
	assert.True(t, Has(bits, flagC))
	assert.False(t, Only(bits, flagC))

	Clear(&bits, flagA)
	assert.True(t, Only(bits, flagC))

	SetState(&bits, false, flagC)
	assert.Equal(t, int64(0), bits)
	SetState(&bits, true, flagB)
	assert.Equal(t, Mask(flagB), bits)
}
