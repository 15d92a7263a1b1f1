// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// AffinePoint is a point on the curve in affine coordinates, or the point
// at infinity. Infinity is represented by the distinguished sentinel of
// both coordinates being nil, never by a magic coordinate value.
type AffinePoint struct {
	X, Y *big.Int
}

// InfinityPoint is the point at infinity.
var InfinityPoint = AffinePoint{}

// IsInfinity reports whether p is the point at infinity.
func (p AffinePoint) IsInfinity() bool {
	return p.X == nil || p.Y == nil
}

// Equal reports whether p and q represent the same affine point.
func (p AffinePoint) Equal(q AffinePoint) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Neg returns the negation of p: (x, -y mod p). Infinity negates to
// itself.
func (c *Curve) Neg(p AffinePoint) AffinePoint {
	if p.IsInfinity() {
		return InfinityPoint
	}
	negY := new(big.Int).Neg(p.Y)
	negY.Mod(negY, c.P)
	return AffinePoint{X: new(big.Int).Set(p.X), Y: negY}
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + a*x + b (mod p).
// Infinity is always considered on-curve.
func (c *Curve) IsOnCurve(p AffinePoint) bool {
	if p.IsInfinity() {
		return true
	}
	if p.X.Sign() < 0 || p.X.Cmp(c.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(c.P) >= 0 {
		return false
	}

	lhs := new(big.Int).Mul(p.Y, p.Y)
	lhs.Mod(lhs, c.P)

	rhs := new(big.Int).Mul(p.X, p.X)
	rhs.Mul(rhs, p.X)
	ax := new(big.Int).Mul(c.A, p.X)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.B)
	rhs.Mod(rhs, c.P)

	return lhs.Cmp(rhs) == 0
}

// YEven returns the unique square root of x^3+a*x+b whose least
// significant bit is zero. It fails with a Value error if x is not the
// x-coordinate of any point on the curve.
func (c *Curve) YEven(x *big.Int) (*big.Int, error) {
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	ax := new(big.Int).Mul(c.A, x)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.B)
	rhs.Mod(rhs, c.P)

	y, err := ModSqrt(rhs, c.P)
	if err != nil {
		return nil, errValuef("y_even: x=%s is not on curve: %v", x, err)
	}
	if y.Bit(0) != 0 {
		y.Sub(c.P, y)
	}
	return y, nil
}

// AffAdd adds two affine points using the textbook (non-constant-time)
// addition formulas. Used for non-secret computations (tests and
// public-key recovery in package ecdsa); signing and verification go
// through the Jacobian path in jacobian.go.
func (c *Curve) AffAdd(p, q AffinePoint) AffinePoint {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	if p.X.Cmp(q.X) == 0 {
		if p.Y.Cmp(q.Y) != 0 || p.Y.Sign() == 0 {
			return InfinityPoint
		}
		return c.AffDouble(p)
	}

	lambda := c.affSlope(q.Y, p.Y, q.X, p.X)
	return c.affFromSlope(lambda, p.X, q.X, p.Y)
}

// AffDouble doubles an affine point using the textbook tangent-slope
// formula.
func (c *Curve) AffDouble(p AffinePoint) AffinePoint {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return InfinityPoint
	}

	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.A)
	den := new(big.Int).Lsh(p.Y, 1)
	lambda := c.affSlope(num, big.NewInt(0), den, big.NewInt(0))
	return c.affFromSlope(lambda, p.X, p.X, p.Y)
}

func (c *Curve) affSlope(yNum, ySub, xNum, xSub *big.Int) *big.Int {
	num := new(big.Int).Sub(yNum, ySub)
	den := new(big.Int).Sub(xNum, xSub)
	den.Mod(den, c.P)
	inv, err := ModInv(den, c.P)
	if err != nil {
		// den is guaranteed non-zero by the caller's distinctness check.
		panic(err)
	}
	lambda := num.Mul(num, inv)
	return lambda.Mod(lambda, c.P)
}

func (c *Curve) affFromSlope(lambda, x1, x2, y1 *big.Int) AffinePoint {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, c.P)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, y1)
	y3.Mod(y3, c.P)

	return AffinePoint{X: x3, Y: y3}
}
