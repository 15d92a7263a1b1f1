// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNetworksAreRegistered(t *testing.T) {
	assert.True(t, IsPubKeyHashAddrID(MainNetParams.PubKeyHashAddrID))
	assert.True(t, IsScriptHashAddrID(MainNetParams.ScriptHashAddrID))
	assert.True(t, IsPubKeyHashAddrID(TestNet3Params.PubKeyHashAddrID))
	assert.True(t, IsBech32SegwitPrefix("bc1"))
	assert.True(t, IsBech32SegwitPrefix("BC1"))
	assert.True(t, IsBech32SegwitPrefix("tb1"))
	assert.True(t, IsBech32SegwitPrefix("bcrt1"))
}

func TestIsPubKeyHashAddrIDRejectsUnknown(t *testing.T) {
	assert.False(t, IsPubKeyHashAddrID(0xFF))
	assert.False(t, IsBech32SegwitPrefix("xy1"))
}

func TestRegisterRejectsDuplicateNetwork(t *testing.T) {
	err := Register(&MainNetParams)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateNet))
}

func TestRegisterNewNetwork(t *testing.T) {
	custom := &Params{
		Name:             "custom-test-net",
		Bech32HRPSegwit:  "xy",
		PubKeyHashAddrID: 0x11,
		ScriptHashAddrID: 0x22,
		PrivateKeyID:     0x33,
	}
	require.NoError(t, Register(custom))
	assert.True(t, IsPubKeyHashAddrID(0x11))
	assert.True(t, IsScriptHashAddrID(0x22))
	assert.True(t, IsBech32SegwitPrefix("xy1"))

	assert.ErrorIs(t, Register(custom), ErrDuplicateNet)
}
