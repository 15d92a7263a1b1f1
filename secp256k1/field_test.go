// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestModInvKnown(t *testing.T) {
	// 3 * 4 = 12 = 1 (mod 11)
	inv, err := ModInv(big.NewInt(3), big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(4), inv)
}

func TestModInvNoInverse(t *testing.T) {
	_, err := ModInv(big.NewInt(2), big.NewInt(4))
	assert.Error(t, err)
}

func TestModInvRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := Secp256k1().P
		a := rapid.Int64Range(1, 1<<62).Draw(rt, "a")
		av := big.NewInt(a)
		inv, err := ModInv(av, p)
		require.NoError(rt, err)
		prod := new(big.Int).Mul(av, inv)
		prod.Mod(prod, p)
		assert.Equal(rt, big.NewInt(1), prod)
	})
}

func TestModSqrtKnownSquare(t *testing.T) {
	p := Secp256k1().P
	x := big.NewInt(12345)
	xsq := new(big.Int).Mul(x, x)
	xsq.Mod(xsq, p)

	root, err := ModSqrt(xsq, p)
	require.NoError(t, err)

	rsq := new(big.Int).Mul(root, root)
	rsq.Mod(rsq, p)
	assert.Equal(t, xsq, rsq)
}

func TestModSqrtZero(t *testing.T) {
	root, err := ModSqrt(big.NewInt(0), Secp256k1().P)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), root)
}

func TestModSqrtNonResidue(t *testing.T) {
	// secp256k1's p is 3 mod 4, and 3 is known not to be a QR for it
	// (verified via the fast-path exponentiation disagreeing with its
	// own square), use a value guaranteed non-residue: -1 is a
	// non-residue whenever p = 3 (mod 4).
	p := Secp256k1().P
	negOne := new(big.Int).Sub(p, big.NewInt(1))
	_, err := ModSqrt(negOne, p)
	assert.Error(t, err)
}

func TestIntFromBitsTruncatesExcessBits(t *testing.T) {
	buf := []byte{0xff, 0xff}
	got := IntFromBits(buf, 8)
	assert.Equal(t, big.NewInt(0xff), got)
}

func TestIntFromBitsKeepsAllBitsWhenNotExcess(t *testing.T) {
	buf := []byte{0x01, 0x02}
	got := IntFromBits(buf, 16)
	assert.Equal(t, big.NewInt(0x0102), got)
}

func TestTonelliShanksAgreesWithFastPath(t *testing.T) {
	// secp256k1's p = 3 (mod 4), so ModSqrt always takes the fast path;
	// calling tonelliShanks directly against the same prime goes through
	// its s == 1 branch, and this confirms that branch agrees with
	// ModSqrt on the answer (up to sign). The general loop is not reached
	// for this prime.
	p := Secp256k1().P
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		x := new(big.Int).Rand(r, p)
		if x.Sign() == 0 {
			continue
		}
		xsq := new(big.Int).Mul(x, x)
		xsq.Mod(xsq, p)

		fast, err := ModSqrt(xsq, p)
		require.NoError(t, err)
		general, err := tonelliShanks(xsq, p)
		require.NoError(t, err)

		negFast := new(big.Int).Sub(p, fast)
		ok := general.Cmp(fast) == 0 || general.Cmp(negFast) == 0
		assert.True(t, ok, "tonelli-shanks disagreed with fast path for x=%s", x)
	}
}
