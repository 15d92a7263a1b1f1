// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bcerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "value error", Value.String())
	assert.Equal(t, "type error", Type.String())
	assert.Equal(t, "runtime error", Runtime.String())
}

func TestConstructors(t *testing.T) {
	v := Valuef("bad %s", "input")
	require.Error(t, v)
	assert.Equal(t, Value, v.Kind)
	assert.Equal(t, "value error: bad input", v.Error())

	ty := Typef("wrong %s", "type")
	assert.Equal(t, Type, ty.Kind)

	rt := Runtimef("invariant %s", "violated")
	assert.Equal(t, Runtime, rt.Kind)
}

func TestIsSentinel(t *testing.T) {
	err := Valuef("anything at all")
	assert.True(t, errors.Is(err, ValueErr))
	assert.False(t, errors.Is(err, TypeErr))
	assert.False(t, errors.Is(err, RuntimeErr))

	var plain = errors.New("plain")
	assert.False(t, errors.Is(err, plain))
}
