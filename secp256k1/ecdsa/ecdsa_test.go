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

type helperTB interface {
	Helper()
}

func privFor(t helperTB, curve *secp256k1.Curve, d int64) *secp256k1.PrivateKey {
	t.Helper()
	return &secp256k1.PrivateKey{Curve: curve, D: big.NewInt(d), Compressed: true}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)
	pub := priv.PubKey()

	sig, err := Sign(priv, []byte("Satoshi Nakamoto"), true)
	require.NoError(t, err)

	assert.True(t, sig.R.Sign() > 0)
	assert.True(t, sig.R.Cmp(curve.N) < 0)
	assert.True(t, sig.S.Sign() > 0)
	halfN := new(big.Int).Rsh(curve.N, 1)
	assert.True(t, sig.S.Cmp(halfN) <= 0)

	assert.True(t, Verify(curve, pub, []byte("Satoshi Nakamoto"), sig))
	assert.False(t, Verify(curve, pub, []byte("wrong message"), sig))
}

func TestSignIsDeterministic(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)

	sig1, err := Sign(priv, []byte("Satoshi Nakamoto"), true)
	require.NoError(t, err)
	sig2, err := Sign(priv, []byte("Satoshi Nakamoto"), true)
	require.NoError(t, err)

	assert.Equal(t, sig1.R, sig2.R)
	assert.Equal(t, sig1.S, sig2.S)
}

func TestSignVerifyProperty(t *testing.T) {
	curve := secp256k1.Secp256k1()
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.Int64Range(1, 1<<60).Draw(rt, "d")
		msg := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(rt, "msg")
		priv := privFor(rt, curve, d)
		pub := priv.PubKey()

		sig, err := Sign(priv, msg, true)
		require.NoError(rt, err)
		assert.True(rt, Verify(curve, pub, msg, sig))

		assert.True(rt, sig.R.Sign() > 0 && sig.R.Cmp(curve.N) < 0)
		halfN := new(big.Int).Rsh(curve.N, 1)
		assert.True(rt, sig.S.Cmp(halfN) <= 0)
	})
}

func TestVerifyRejectsMalformedInputsAsFalse(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)
	pub := priv.PubKey()

	// Out-of-range r, s should make Verify return false, not panic or
	// propagate an error; verify's contract is a plain bool.
	bad := &Signature{R: big.NewInt(0), S: big.NewInt(1)}
	assert.False(t, Verify(curve, pub, []byte("msg"), bad))

	bad2 := &Signature{R: curve.N, S: big.NewInt(1)}
	assert.False(t, Verify(curve, pub, []byte("msg"), bad2))

	infPub := &secp256k1.PublicKey{Curve: curve, Point: secp256k1.InfinityPoint}
	sig, _ := Sign(priv, []byte("msg"), true)
	assert.False(t, Verify(curve, infPub, []byte("msg"), sig))
}

func TestLowSCanonicalization(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)
	halfN := new(big.Int).Rsh(curve.N, 1)

	// Sign one digest with and without low_s: if the raw s exceeds n/2,
	// the low_s signature must carry n - s; otherwise the two must match.
	digest := bchashDigest([]byte("Satoshi Nakamoto"))
	raw, err := SignHash(priv, digest, nil, false)
	require.NoError(t, err)

	canon, err := SignHash(priv, digest, nil, true)
	require.NoError(t, err)

	if raw.S.Cmp(halfN) > 0 {
		want := new(big.Int).Sub(curve.N, raw.S)
		assert.Equal(t, want, canon.S)
	} else {
		assert.Equal(t, raw.S, canon.S)
	}
	assert.True(t, canon.S.Cmp(halfN) <= 0)
}

func bchashDigest(msg []byte) []byte {
	return digestExternal(msg)
}

func TestRecoverIncludesSigningKey(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)
	pub := priv.PubKey()

	msg := []byte("Satoshi Nakamoto")
	sig, err := Sign(priv, msg, true)
	require.NoError(t, err)

	candidates, err := Recover(curve, msg, sig)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	found := false
	for _, cand := range candidates {
		if cand.Point.Equal(pub.Point) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRecoverCompactMatchesOneCandidate(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)
	pub := priv.PubKey()

	msg := []byte("Satoshi Nakamoto")
	sig, err := Sign(priv, msg, true)
	require.NoError(t, err)
	digest := digestExternal(msg)

	found := false
	for id := 0; id < 4; id++ {
		cand, err := RecoverCompact(curve, digest, sig, id)
		if err != nil {
			continue
		}
		if cand.Point.Equal(pub.Point) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRecoverCompactRejectsOutOfRangeID(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)
	msg := []byte("msg")
	sig, err := Sign(priv, msg, true)
	require.NoError(t, err)
	digest := digestExternal(msg)

	_, err = RecoverCompact(curve, digest, sig, -1)
	assert.Error(t, err)
	_, err = RecoverCompact(curve, digest, sig, 4)
	assert.Error(t, err)
}

// TestCrackRecoversSharedNonceKey: two signatures over distinct
// messages, produced with the same forced nonce, let Crack recover
// both the private key and the nonce.
func TestCrackRecoversSharedNonceKey(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 0xC0FFEE)
	k := big.NewInt(42)

	sig1, err := SignHash(priv, digestExternal([]byte("Alice")), k, false)
	require.NoError(t, err)
	sig2, err := SignHash(priv, digestExternal([]byte("Bob")), k, false)
	require.NoError(t, err)

	require.Equal(t, sig1.R, sig2.R)

	q, gotK, err := Crack(curve, []byte("Alice"), sig1, []byte("Bob"), sig2)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0xC0FFEE), q)
	assert.Equal(t, k, gotK)
}

func TestCrackRejectsMismatchedR(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 7)

	sig1, err := Sign(priv, []byte("a"), true)
	require.NoError(t, err)
	sig2, err := Sign(priv, []byte("b"), true)
	require.NoError(t, err)

	// Different messages signed with RFC 6979 (distinct nonces) almost
	// certainly produce distinct r, so crack must reject the pair.
	_, _, err = Crack(curve, []byte("a"), sig1, []byte("b"), sig2)
	assert.Error(t, err)
}

func TestCrackRejectsIdenticalS(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 7)
	sig, err := Sign(priv, []byte("a"), true)
	require.NoError(t, err)

	_, _, err = Crack(curve, []byte("a"), sig, []byte("a"), sig)
	assert.Error(t, err)
}

func TestSignRejectsForcedNonceOutOfRange(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)
	_, err := SignHash(priv, digestExternal([]byte("m")), big.NewInt(0), false)
	assert.Error(t, err)
	_, err = SignHash(priv, digestExternal([]byte("m")), curve.N, false)
	assert.Error(t, err)
}

// TestSignMatchesKnownRFC6979Vector pins the widely replicated secp256k1
// SHA-256 deterministic-nonce vector: d = 1, message "Satoshi Nakamoto",
// low-s. Any drift in the nonce state machine or the low-s
// canonicalization shows up as a bit-level mismatch here.
func TestSignMatchesKnownRFC6979Vector(t *testing.T) {
	curve := secp256k1.Secp256k1()
	priv := privFor(t, curve, 1)

	sig, err := Sign(priv, []byte("Satoshi Nakamoto"), true)
	require.NoError(t, err)

	assert.Equal(t, "934b1ea10a4b3c1757e2b0c017d0b6143ce3c9a7e6a4a49860d7a6ab210ee3d8", sig.R.Text(16))
	assert.Equal(t, "2442ce9d2b916064108014783e923ec36b49743e2ffa1c4496f01a512aafd9e5", sig.S.Text(16))
}
