// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecdsa implements deterministic (RFC 6979) ECDSA signing,
// verification, public-key recovery, and nonce-reuse key recovery over
// a secp256k1.Curve, plus the BIP-66 strict DER codec used to move
// signatures on and off the wire.
package ecdsa

import (
	"math/big"

	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/bchash"
	"github.com/ledgerforge/btccore/secp256k1"
)

// challengeFromDigest turns a digest of the curve's native length into
// the integer challenge c used throughout this package. It is the only
// place a hash digest becomes a scalar-shaped *big.Int.
func challengeFromDigest(curve *secp256k1.Curve, digest []byte) *big.Int {
	return secp256k1.IntFromBits(digest, curve.NLen)
}

// digestExternal reduces an arbitrary message to the curve's native
// hash length by applying sha256 once. Callers holding an
// already-computed digest should call the Hash-suffixed entry points
// directly to avoid hashing twice.
func digestExternal(msg []byte) []byte {
	return bchash.ReduceToHlen(msg, bchash.Sha256)
}

// bits2octets reproduces RFC 6979 §3.2's bits2octets step: the
// challenge is reduced by at most one subtraction of n, not a full mod,
// so that nonce derivation is bit-exact against published test
// vectors.
func bits2octets(curve *secp256k1.Curve, c *big.Int) []byte {
	z := c
	if z.Cmp(curve.N) >= 0 {
		z = new(big.Int).Sub(z, curve.N)
	}
	return leftPad(z.Bytes(), curve.NSize)
}

// SignHash produces a deterministic ECDSA signature over a pre-digested
// message (exactly hlen bytes). If k is nil, the nonce is derived via
// RFC 6979; otherwise the caller-supplied nonce is validated and used
// directly (needed for cross-checking test vectors and the crack
// demonstration). If lowS is true, s is canonicalized to s <= n/2.
func SignHash(priv *secp256k1.PrivateKey, digest []byte, k *big.Int, lowS bool) (*Signature, error) {
	curve := priv.Curve
	c := challengeFromDigest(curve, digest)

	nonce := k
	if nonce == nil {
		nonce = rfc6979NonceFromChallenge(curve, priv.D, c)
	} else if nonce.Sign() <= 0 || nonce.Cmp(curve.N) >= 0 {
		return nil, bcerr.Valuef("ecdsa: supplied nonce out of range [1, n-1]")
	}

	K := curve.ScalarBaseMult(nonce)
	r := new(big.Int).Mod(K.X, curve.N)
	if r.Sign() == 0 {
		return nil, bcerr.Runtimef("ecdsa: r = 0")
	}

	kInv, err := secp256k1.ModInv(nonce, curve.N)
	if err != nil {
		return nil, err
	}
	s := new(big.Int).Mul(r, priv.D)
	s.Add(s, c)
	s.Mul(s, kInv)
	s.Mod(s, curve.N)
	if s.Sign() == 0 {
		return nil, bcerr.Runtimef("ecdsa: s = 0")
	}

	if lowS {
		halfN := new(big.Int).Rsh(curve.N, 1)
		if s.Cmp(halfN) > 0 {
			s = new(big.Int).Sub(curve.N, s)
		}
	}

	return &Signature{R: r, S: s}, nil
}

// rfc6979NonceFromChallenge applies bits2octets to c before delegating
// to the HMAC-DRBG state machine, so SignHash's nonce matches RFC 6979
// test vectors bit-for-bit.
func rfc6979NonceFromChallenge(curve *secp256k1.Curve, q, c *big.Int) *big.Int {
	reduced := new(big.Int).SetBytes(bits2octets(curve, c))
	return rfc6979Nonce(curve, q, reduced)
}

// Sign hashes an arbitrary message with sha256 and signs the result.
func Sign(priv *secp256k1.PrivateKey, msg []byte, lowS bool) (*Signature, error) {
	return SignHash(priv, digestExternal(msg), nil, lowS)
}

// assertValidHash verifies a signature over a pre-digested message,
// returning a typed error describing the first failed check instead of
// a bare boolean. Used internally by VerifyHash and by the recovery
// loop, which both need to distinguish "malformed input" from "does
// not verify".
func assertValidHash(curve *secp256k1.Curve, pub *secp256k1.PublicKey, digest []byte, sig *Signature) error {
	if pub.Point.IsInfinity() {
		return bcerr.Valuef("ecdsa: public key is point at infinity")
	}
	if sig.R.Sign() <= 0 || sig.R.Cmp(curve.N) >= 0 {
		return bcerr.Valuef("ecdsa: r out of range [1, n-1]")
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(curve.N) >= 0 {
		return bcerr.Valuef("ecdsa: s out of range [1, n-1]")
	}

	c := challengeFromDigest(curve, digest)
	w, err := secp256k1.ModInv(sig.S, curve.N)
	if err != nil {
		return err
	}
	u := new(big.Int).Mul(c, w)
	u.Mod(u, curve.N)
	v := new(big.Int).Mul(sig.R, w)
	v.Mod(v, curve.N)

	K := curve.DoubleScalarMult(u, curve.G(), v, pub.Point)
	if K.IsInfinity() {
		return bcerr.Runtimef("ecdsa: verification point is infinity")
	}
	x := new(big.Int).Mod(K.X, curve.N)
	if x.Cmp(sig.R) != 0 {
		return bcerr.Runtimef("ecdsa: signature does not verify")
	}
	return nil
}

// VerifyHash reports whether sig is a valid signature by pub over a
// pre-digested message, catching every failure path as false.
func VerifyHash(curve *secp256k1.Curve, pub *secp256k1.PublicKey, digest []byte, sig *Signature) bool {
	if err := assertValidHash(curve, pub, digest, sig); err != nil {
		log.Debugf("signature rejected: %v", err)
		return false
	}
	return true
}

// Verify hashes an arbitrary message with sha256 and verifies sig
// against it.
func Verify(curve *secp256k1.Curve, pub *secp256k1.PublicKey, msg []byte, sig *Signature) bool {
	return VerifyHash(curve, pub, digestExternal(msg), sig)
}

// RecoverHash returns every public key consistent with sig over a
// pre-digested message, in the order (j=0 even, j=0 odd, j=1 even, ...)
// up to the curve's cofactor.
func RecoverHash(curve *secp256k1.Curve, digest []byte, sig *Signature) ([]*secp256k1.PublicKey, error) {
	if sig.R.Sign() <= 0 || sig.R.Cmp(curve.N) >= 0 {
		return nil, bcerr.Valuef("ecdsa: r out of range [1, n-1]")
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(curve.N) >= 0 {
		return nil, bcerr.Valuef("ecdsa: s out of range [1, n-1]")
	}
	c := challengeFromDigest(curve, digest)

	rInv, err := secp256k1.ModInv(sig.R, curve.N)
	if err != nil {
		return nil, err
	}

	var results []*secp256k1.PublicKey
	for j := int64(0); j <= curve.H; j++ {
		xK := new(big.Int).Mul(big.NewInt(j), curve.N)
		xK.Add(xK, sig.R)
		xK.Mod(xK, curve.P)

		for _, wantOdd := range []bool{false, true} {
			yEven, err := curve.YEven(xK)
			if err != nil {
				continue
			}
			y := yEven
			if wantOdd {
				y = new(big.Int).Sub(curve.P, yEven)
			}
			K := secp256k1.AffinePoint{X: xK, Y: y}

			sK := curve.ScalarMult(sig.S, K)
			cG := curve.ScalarBaseMult(c)
			negCG := curve.Neg(cG)
			sum := curve.AffAdd(sK, negCG)
			Q := curve.ScalarMult(rInv, sum)

			if Q.IsInfinity() {
				continue
			}
			pub := &secp256k1.PublicKey{Curve: curve, Point: Q, Compressed: true}
			if assertValidHash(curve, pub, digest, sig) == nil {
				results = append(results, pub)
			}
		}
	}
	return results, nil
}

// Recover hashes an arbitrary message with sha256 and recovers every
// consistent public key.
func Recover(curve *secp256k1.Curve, msg []byte, sig *Signature) ([]*secp256k1.PublicKey, error) {
	return RecoverHash(curve, digestExternal(msg), sig)
}

// RecoverCompact returns the single public key indexed by keyID, the
// recovery id used by compact-signature encodings (keyID in
// [0, 2*(h+1))).
func RecoverCompact(curve *secp256k1.Curve, digest []byte, sig *Signature, keyID int) (*secp256k1.PublicKey, error) {
	if keyID < 0 || keyID >= 2*int(curve.H+1) {
		return nil, bcerr.Valuef("ecdsa: key id %d out of range", keyID)
	}
	candidates, err := RecoverHash(curve, digest, sig)
	if err != nil {
		return nil, err
	}
	_ = candidates

	// candidates is already ordered (j=0 even, j=0 odd, j=1 even, ...),
	// but entries that failed verification are omitted, so keyID cannot
	// be used as a direct index; re-derive the exact (j, parity) pair.
	j := keyID / 2
	wantOdd := keyID%2 == 1

	rInv, err := secp256k1.ModInv(sig.R, curve.N)
	if err != nil {
		return nil, err
	}
	c := challengeFromDigest(curve, digest)

	xK := new(big.Int).Mul(big.NewInt(int64(j)), curve.N)
	xK.Add(xK, sig.R)
	xK.Mod(xK, curve.P)

	yEven, err := curve.YEven(xK)
	if err != nil {
		return nil, bcerr.Valuef("ecdsa: key id %d does not correspond to a point on the curve", keyID)
	}
	y := yEven
	if wantOdd {
		y = new(big.Int).Sub(curve.P, yEven)
	}
	K := secp256k1.AffinePoint{X: xK, Y: y}

	sK := curve.ScalarMult(sig.S, K)
	cG := curve.ScalarBaseMult(c)
	negCG := curve.Neg(cG)
	sum := curve.AffAdd(sK, negCG)
	Q := curve.ScalarMult(rInv, sum)
	if Q.IsInfinity() {
		return nil, bcerr.Valuef("ecdsa: key id %d recovers to infinity", keyID)
	}

	pub := &secp256k1.PublicKey{Curve: curve, Point: Q, Compressed: true}
	if err := assertValidHash(curve, pub, digest, sig); err != nil {
		return nil, bcerr.Valuef("ecdsa: key id %d does not recover a valid public key: %v", keyID, err)
	}
	return pub, nil
}

// CrackHash recovers the private key and nonce from two signatures
// over distinct pre-digested messages that share the same r (and
// therefore the same nonce). This is a deliberate demonstration of
// ECDSA's one hard rule, never reuse a nonce, not a general attack
// primitive.
func CrackHash(curve *secp256k1.Curve, digest1 []byte, sig1 *Signature, digest2 []byte, sig2 *Signature) (q, k *big.Int, err error) {
	if sig1.R.Cmp(sig2.R) != 0 {
		return nil, nil, bcerr.Valuef("ecdsa: signatures do not share r")
	}
	if sig1.S.Cmp(sig2.S) == 0 {
		return nil, nil, bcerr.Valuef("ecdsa: signatures have identical s")
	}
	c1 := challengeFromDigest(curve, digest1)
	c2 := challengeFromDigest(curve, digest2)
	if c1.Cmp(c2) == 0 {
		return nil, nil, bcerr.Valuef("ecdsa: signatures are over identical challenges")
	}

	sDiff := new(big.Int).Sub(sig1.S, sig2.S)
	sDiff.Mod(sDiff, curve.N)
	sDiffInv, err := secp256k1.ModInv(sDiff, curve.N)
	if err != nil {
		return nil, nil, err
	}

	cDiff := new(big.Int).Sub(c1, c2)
	cDiff.Mod(cDiff, curve.N)

	k = new(big.Int).Mul(cDiff, sDiffInv)
	k.Mod(k, curve.N)

	rInv, err := secp256k1.ModInv(sig1.R, curve.N)
	if err != nil {
		return nil, nil, err
	}
	q = new(big.Int).Mul(sig2.S, k)
	q.Sub(q, c2)
	q.Mul(q, rInv)
	q.Mod(q, curve.N)

	return q, k, nil
}

// Crack hashes two arbitrary messages with sha256 and recovers the
// shared-nonce private key and nonce from the resulting signatures.
func Crack(curve *secp256k1.Curve, msg1 []byte, sig1 *Signature, msg2 []byte, sig2 *Signature) (q, k *big.Int, err error) {
	return CrackHash(curve, digestExternal(msg1), sig1, digestExternal(msg2), sig2)
}
