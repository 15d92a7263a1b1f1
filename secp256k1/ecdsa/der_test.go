// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ledgerforge/btccore/secp256k1"
)

func TestDERSerializeParseRoundTrip(t *testing.T) {
	curve := secp256k1.Secp256k1()
	rapid.Check(t, func(rt *rapid.T) {
		r := rapid.Int64Range(1, 1<<62).Draw(rt, "r")
		s := rapid.Int64Range(1, 1<<62).Draw(rt, "s")
		sig := &Signature{R: big.NewInt(r), S: big.NewInt(s)}

		der := sig.Serialize()
		back, err := ParseDERStrict(curve, der)
		require.NoError(rt, err)
		assert.Equal(rt, sig.R, back.R)
		assert.Equal(rt, sig.S, back.S)
	})
}

func TestDERSerializeIsMinimal(t *testing.T) {
	// A high-bit-set integer gets a leading zero pad byte; a low value
	// doesn't.
	sig := &Signature{R: big.NewInt(0x80), S: big.NewInt(1)}
	der := sig.Serialize()

	// 0x30 len 0x02 len(r) r... 0x02 len(s) s...
	assert.Equal(t, byte(0x30), der[0])
	assert.Equal(t, byte(0x02), der[2])
	rLen := int(der[3])
	assert.Equal(t, 2, rLen) // 0x00 0x80
	assert.Equal(t, byte(0x00), der[4])
	assert.Equal(t, byte(0x80), der[5])
}

func TestDERRejectsBitFlipInLength(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: big.NewInt(12345), S: big.NewInt(67890)}
	der := sig.Serialize()

	flipped := append([]byte{}, der...)
	flipped[1] ^= 0x01
	_, err := ParseDERStrict(curve, flipped)
	assert.Error(t, err)
}

func TestDERRejectsLeadingZeroInsertion(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(1)}
	der := sig.Serialize()

	// Insert a redundant leading zero into r's body and bump lengths to
	// match, which must still fail since the encoding is non-minimal.
	bad := make([]byte, 0, len(der)+1)
	bad = append(bad, der[0], der[1]+1, der[2], der[3]+1, 0x00)
	bad = append(bad, der[4:]...)
	_, err := ParseDERStrict(curve, bad)
	assert.Error(t, err)
}

func TestDERRejectsWrongSequenceTag(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(1)}
	der := sig.Serialize()
	der[0] = 0x31
	_, err := ParseDERStrict(curve, der)
	assert.Error(t, err)
}

func TestDERRejectsTrailingBytes(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(1)}
	der := append(sig.Serialize(), 0x01)
	_, err := ParseDERStrict(curve, der)
	assert.Error(t, err)
}

func TestDERRejectsNegativeInteger(t *testing.T) {
	curve := secp256k1.Secp256k1()
	// Manually construct 0x30 06 0x02 01 0x80 0x02 01 0x01: r's single
	// body byte has its high bit set with no padding, i.e. negative.
	buf := []byte{0x30, 0x06, 0x02, 0x01, 0x80, 0x02, 0x01, 0x01}
	_, err := ParseDERStrict(curve, buf)
	assert.Error(t, err)
}

func TestDERLowSStrict(t *testing.T) {
	curve := secp256k1.Secp256k1()
	halfN := new(big.Int).Rsh(curve.N, 1)
	highS := new(big.Int).Add(halfN, big.NewInt(1))

	sig := &Signature{R: big.NewInt(1), S: highS}
	der := sig.Serialize()

	_, err := ParseDERStrictLowS(curve, der)
	assert.Error(t, err)

	_, err = ParseDERStrict(curve, der)
	assert.NoError(t, err)
}

func TestDERRejectsROutOfRange(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: curve.N, S: big.NewInt(1)}
	der := sig.Serialize()
	_, err := ParseDERStrict(curve, der)
	assert.Error(t, err)
}

func TestParseDERFromScriptWithSighash(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: big.NewInt(12345), S: big.NewInt(67890)}
	der := append(sig.Serialize(), 0x01)

	back, sighash, hasSighash, err := ParseDERFromScript(curve, der)
	require.NoError(t, err)
	assert.True(t, hasSighash)
	assert.Equal(t, byte(0x01), sighash)
	assert.Equal(t, sig.R, back.R)
	assert.Equal(t, sig.S, back.S)
}

func TestParseDERFromScriptWithoutSighash(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: big.NewInt(12345), S: big.NewInt(67890)}

	back, _, hasSighash, err := ParseDERFromScript(curve, sig.Serialize())
	require.NoError(t, err)
	assert.False(t, hasSighash)
	assert.Equal(t, sig.R, back.R)
}

func TestParseDERFromScriptRejectsTwoTrailingBytes(t *testing.T) {
	curve := secp256k1.Secp256k1()
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(1)}
	der := append(sig.Serialize(), 0x01, 0x02)
	_, _, _, err := ParseDERFromScript(curve, der)
	assert.Error(t, err)
}
