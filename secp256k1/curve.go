// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package secp256k1 implements short-Weierstrass elliptic curve arithmetic
// over a prime field (point representation, Jacobian scalar
// multiplication, and SEC 1 key encoding), parameterized so that any curve
// of the form y^2 = x^3 + a*x + b (mod p) with prime order n can be
// plugged in. Production code uses the Secp256k1 instance.
package secp256k1

import (
	"math/big"
	"sync"
)

// Curve holds the immutable parameters of a short-Weierstrass curve over a
// prime field, plus its derived sizes and precomputed generator.
type Curve struct {
	P *big.Int // field prime
	A *big.Int // curve coefficient a
	B *big.Int // curve coefficient b
	N *big.Int // subgroup order
	H int64    // cofactor

	Gx, Gy *big.Int // generator, affine
	gJ     JacobianPoint

	PSize int // ceil(log2(p)/8)
	NSize int // ceil(log2(n)/8)
	PLen  int // bit length of p
	NLen  int // bit length of n
}

var (
	secp256k1Curve *Curve
	secp256k1Once  sync.Once
)

// Secp256k1 returns the curve parameters for secp256k1: y^2 = x^3 + 7 over
// the prime field of size 2^256 - 2^32 - 977, cofactor 1. The instance is
// built once under a one-shot guard and never mutated afterwards, so it is
// safe to share across goroutines.
func Secp256k1() *Curve {
	secp256k1Once.Do(func() {
		secp256k1Curve = newSecp256k1()
	})
	return secp256k1Curve
}

func newSecp256k1() *Curve {
	p := fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	n := fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")
	gx := fromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	gy := fromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")

	c := &Curve{
		P:  p,
		A:  big.NewInt(0),
		B:  big.NewInt(7),
		N:  n,
		H:  1,
		Gx: gx,
		Gy: gy,
	}
	c.PSize = byteSizeOf(p)
	c.NSize = byteSizeOf(n)
	c.PLen = p.BitLen()
	c.NLen = n.BitLen()
	c.gJ = JacobianPoint{X: new(big.Int).Set(gx), Y: new(big.Int).Set(gy), Z: big.NewInt(1)}
	return c
}

// NewCurve constructs a generic short-Weierstrass curve from its
// parameters. It does not validate that the curve is actually prime-order
// or that the generator lies on the curve; callers that need that
// assurance should call IsOnCurve on the result themselves.
func NewCurve(p, a, b, gx, gy, n *big.Int, h int64) *Curve {
	c := &Curve{
		P: p, A: a, B: b, N: n, H: h,
		Gx: gx, Gy: gy,
	}
	c.PSize = byteSizeOf(p)
	c.NSize = byteSizeOf(n)
	c.PLen = p.BitLen()
	c.NLen = n.BitLen()
	c.gJ = JacobianPoint{X: new(big.Int).Set(gx), Y: new(big.Int).Set(gy), Z: big.NewInt(1)}
	return c
}

// G returns the generator in affine form.
func (c *Curve) G() AffinePoint {
	return AffinePoint{X: new(big.Int).Set(c.Gx), Y: new(big.Int).Set(c.Gy)}
}

// GJ returns the generator in Jacobian form (Z=1).
func (c *Curve) GJ() JacobianPoint {
	return JacobianPoint{X: new(big.Int).Set(c.gJ.X), Y: new(big.Int).Set(c.gJ.Y), Z: big.NewInt(1)}
}

func byteSizeOf(v *big.Int) int {
	return (v.BitLen() + 7) / 8
}

func fromHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: invalid hex constant: " + s)
	}
	return v
}
