// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeDecodeRoundTripBech32(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOfN(rapid.IntRange(0, 31), 1, 40).Draw(rt, "data")
		buf := make([]byte, len(data))
		for i, v := range data {
			buf[i] = byte(v)
		}

		s, err := Encode("bc", buf, Bech32)
		require.NoError(rt, err)

		hrp, got, err := Decode(s, Bech32)
		require.NoError(rt, err)
		assert.Equal(rt, "bc", hrp)
		assert.Equal(rt, buf, got)
	})
}

func TestEncodeDecodeRoundTripBech32m(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOfN(rapid.IntRange(0, 31), 1, 40).Draw(rt, "data")
		buf := make([]byte, len(data))
		for i, v := range data {
			buf[i] = byte(v)
		}

		s, err := Encode("bc", buf, Bech32m)
		require.NoError(rt, err)

		_, got, err := Decode(s, Bech32m)
		require.NoError(rt, err)
		assert.Equal(rt, buf, got)
	})
}

func TestDecodeRejectsWrongChecksumType(t *testing.T) {
	s, err := Encode("bc", []byte{0, 1, 2, 3}, Bech32)
	require.NoError(t, err)

	_, _, err = Decode(s, Bech32m)
	assert.Error(t, err)
}

func TestDecodeRejectsMixedCase(t *testing.T) {
	s, err := Encode("bc", []byte{0, 1, 2, 3}, Bech32)
	require.NoError(t, err)
	mixed := s[:len(s)-1] + string(upper(s[len(s)-1]))
	_, _, err = Decode(mixed, Bech32)
	assert.Error(t, err)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func TestDecodeRejectsMissingSeparator(t *testing.T) {
	_, _, err := Decode("nosplitherexxxxxx", Bech32)
	assert.Error(t, err)
}

func TestDecodeRejectsInvalidCharacter(t *testing.T) {
	s, err := Encode("bc", []byte{0, 1, 2, 3}, Bech32)
	require.NoError(t, err)
	corrupted := []byte(s)
	corrupted[len(corrupted)-1] = 'b' // 'b' is not in the charset
	_, _, err = Decode(string(corrupted), Bech32)
	assert.Error(t, err)
}

func TestEncodeRejectsMixedCaseHRP(t *testing.T) {
	_, err := Encode("Bc", []byte{0, 1}, Bech32)
	assert.Error(t, err)
}

func TestConvertBitsRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(rt, "data")
		fiveBit, err := ConvertBits(data, 8, 5, true)
		require.NoError(rt, err)

		back, err := ConvertBits(fiveBit, 5, 8, false)
		require.NoError(rt, err)
		assert.Equal(rt, data, back)
	})
}

func TestConvertBitsRejectsOutOfRangeInput(t *testing.T) {
	_, err := ConvertBits([]byte{32}, 5, 8, false)
	assert.Error(t, err)
}

func TestConvertBitsRejectsNonZeroPaddingWithoutPad(t *testing.T) {
	// Two all-ones 5-bit groups leave a non-zero 2-bit remainder after
	// extracting one full 8-bit group, which pad=false must reject.
	_, err := ConvertBits([]byte{31, 31}, 5, 8, false)
	assert.Error(t, err)
}
