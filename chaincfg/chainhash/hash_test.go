// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringIsByteReversedHex(t *testing.T) {
	var h Hash
	h[0] = 0xAB
	h[HashSize-1] = 0xCD
	s := h.String()
	assert.Equal(t, "cd", s[:2])
	assert.Equal(t, "ab", s[len(s)-2:])
}

func TestSetBytesRejectsWrongLength(t *testing.T) {
	var h Hash
	err := h.SetBytes(make([]byte, HashSize-1))
	assert.Error(t, err)
}

func TestSetBytesCloneBytesRoundTrip(t *testing.T) {
	var h Hash
	in := make([]byte, HashSize)
	in[0] = 0x42
	require.NoError(t, h.SetBytes(in))
	assert.Equal(t, in, h.CloneBytes())
}

func TestIsEqual(t *testing.T) {
	var a, b Hash
	a[0] = 1
	b[0] = 1
	assert.True(t, a.IsEqual(&b))

	b[0] = 2
	assert.False(t, a.IsEqual(&b))

	var nilHash *Hash
	assert.True(t, nilHash.IsEqual(nil))
	assert.False(t, a.IsEqual(nil))
}

func TestNewHashFromStrRoundTripsWithString(t *testing.T) {
	h, err := NewHash(make([]byte, HashSize))
	require.NoError(t, err)
	h[0] = 0x01
	h[HashSize-1] = 0xff

	s := h.String()
	back, err := NewHashFromStr(s)
	require.NoError(t, err)
	assert.Equal(t, *h, *back)
}

func TestNewHashFromStrRejectsWrongLength(t *testing.T) {
	_, err := NewHashFromStr("abcd")
	assert.Error(t, err)
}

func TestNewHashFromStrRejectsInvalidHex(t *testing.T) {
	_, err := NewHashFromStr("zz" + string(make([]byte, 62)))
	assert.Error(t, err)
}

func TestHashHMatchesHashB(t *testing.T) {
	data := []byte("hello")
	hb := HashB(data)
	hh := HashH(data)
	assert.Equal(t, hb, hh[:])
	assert.Equal(t, hb, DoubleHashB(data))
	assert.Equal(t, hh, DoubleHashH(data))
}
