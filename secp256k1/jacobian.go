// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// JacobianPoint is (X, Y, Z) representing the affine point (X/Z^2, Y/Z^3)
// when Z != 0, and infinity when Z == 0. Many Jacobian triples can
// represent the same affine point; only AffFromJac (or cross-multiplying
// two triples) gives a meaningful equality test.
type JacobianPoint struct {
	X, Y, Z *big.Int
}

// InfinityJacobian is the point at infinity in Jacobian form.
func InfinityJacobian() JacobianPoint {
	return JacobianPoint{X: big.NewInt(1), Y: big.NewInt(1), Z: big.NewInt(0)}
}

// IsInfinity reports whether j represents the point at infinity.
func (j JacobianPoint) IsInfinity() bool {
	return j.Z == nil || j.Z.Sign() == 0
}

// JacFromAff lifts an affine point to Jacobian coordinates with Z=1.
func JacFromAff(p AffinePoint) JacobianPoint {
	if p.IsInfinity() {
		return InfinityJacobian()
	}
	return JacobianPoint{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y), Z: big.NewInt(1)}
}

// AffFromJac projects a Jacobian point back to affine coordinates.
func (c *Curve) AffFromJac(j JacobianPoint) AffinePoint {
	if j.IsInfinity() {
		return InfinityPoint
	}
	zInv, err := ModInv(j.Z, c.P)
	if err != nil {
		// Z is guaranteed non-zero by the IsInfinity check above.
		panic(err)
	}
	zInv2 := new(big.Int).Mul(zInv, zInv)
	zInv2.Mod(zInv2, c.P)
	zInv3 := new(big.Int).Mul(zInv2, zInv)
	zInv3.Mod(zInv3, c.P)

	x := new(big.Int).Mul(j.X, zInv2)
	x.Mod(x, c.P)
	y := new(big.Int).Mul(j.Y, zInv3)
	y.Mod(y, c.P)
	return AffinePoint{X: x, Y: y}
}

// AddJacobian adds two Jacobian points using the general (both Z != 1)
// addition formulas. It also handles the mixed case (either input already
// affine, Z=1) correctly since that is simply Z2 = 1.
func (c *Curve) AddJacobian(p, q JacobianPoint) JacobianPoint {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}

	P := c.P

	z1z1 := sqMod(p.Z, P)
	z2z2 := sqMod(q.Z, P)

	u1 := mulMod(p.X, z2z2, P)
	u2 := mulMod(q.X, z1z1, P)

	z1cubed := mulMod(z1z1, p.Z, P)
	z2cubed := mulMod(z2z2, q.Z, P)
	s1 := mulMod(p.Y, z2cubed, P)
	s2 := mulMod(q.Y, z1cubed, P)

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) != 0 {
			return InfinityJacobian()
		}
		return c.DoubleJacobian(p)
	}

	h := subMod(u2, u1, P)
	r := subMod(s2, s1, P)

	hh := sqMod(h, P)
	hhh := mulMod(hh, h, P)
	v := mulMod(u1, hh, P)

	x3 := sqMod(r, P)
	x3 = subMod(x3, hhh, P)
	x3 = subMod(x3, v, P)
	x3 = subMod(x3, v, P)

	y3 := subMod(v, x3, P)
	y3 = mulMod(y3, r, P)
	s1hhh := mulMod(s1, hhh, P)
	y3 = subMod(y3, s1hhh, P)

	z3 := mulMod(p.Z, q.Z, P)
	z3 = mulMod(z3, h, P)

	return JacobianPoint{X: x3, Y: y3, Z: z3}
}

// DoubleJacobian doubles a Jacobian point.
func (c *Curve) DoubleJacobian(p JacobianPoint) JacobianPoint {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return InfinityJacobian()
	}
	P := c.P

	xx := sqMod(p.X, P)
	yy := sqMod(p.Y, P)
	yyyy := sqMod(yy, P)
	zz := sqMod(p.Z, P)

	s := addMod(p.X, yy, P)
	s = sqMod(s, P)
	s = subMod(s, xx, P)
	s = subMod(s, yyyy, P)
	s = addMod(s, s, P)

	m := addMod(xx, xx, P)
	m = addMod(m, xx, P)
	azz := mulMod(c.A, sqMod(zz, P), P)
	m = addMod(m, azz, P)

	t := sqMod(m, P)
	t = subMod(t, addMod(s, s, P), P)

	x3 := t
	y3 := subMod(s, t, P)
	y3 = mulMod(y3, m, P)
	yyyy8 := mulMod(big.NewInt(8), yyyy, P)
	y3 = subMod(y3, yyyy8, P)

	z3 := addMod(p.Y, p.Z, P)
	z3 = sqMod(z3, P)
	z3 = subMod(z3, yy, P)
	z3 = subMod(z3, zz, P)

	return JacobianPoint{X: x3, Y: y3, Z: z3}
}

// ScalarMult returns k*P using a fixed-iteration Montgomery ladder: one
// addition and one doubling are performed for every bit of the scalar's
// fixed bit-width (c.NLen), regardless of that bit's value, so the
// operation sequence does not depend on k's bit pattern. k=0 yields
// infinity; k is taken mod n first.
func (c *Curve) ScalarMult(k *big.Int, p AffinePoint) AffinePoint {
	kk := new(big.Int).Mod(k, c.N)

	r0 := InfinityJacobian()
	r1 := JacFromAff(p)

	for i := c.NLen - 1; i >= 0; i-- {
		if kk.Bit(i) == 0 {
			r1 = c.AddJacobian(r0, r1)
			r0 = c.DoubleJacobian(r0)
		} else {
			r0 = c.AddJacobian(r0, r1)
			r1 = c.DoubleJacobian(r1)
		}
	}
	return c.AffFromJac(r0)
}

// ScalarBaseMult returns k*G.
func (c *Curve) ScalarBaseMult(k *big.Int) AffinePoint {
	return c.ScalarMult(k, c.G())
}

// DoubleScalarMult returns u*P + v*Q using Shamir's trick: a single
// left-to-right scan over the larger of the bit-lengths of u and v, with a
// precomputed table of {O, P, Q, P+Q} selected by the (u_i, v_i) bit pair
// at each step.
func (c *Curve) DoubleScalarMult(u *big.Int, p AffinePoint, v *big.Int, q AffinePoint) AffinePoint {
	uu := new(big.Int).Mod(u, c.N)
	vv := new(big.Int).Mod(v, c.N)

	pj := JacFromAff(p)
	qj := JacFromAff(q)
	pq := c.AddJacobian(pj, qj)

	table := [4]JacobianPoint{InfinityJacobian(), pj, qj, pq}

	bitLen := uu.BitLen()
	if vv.BitLen() > bitLen {
		bitLen = vv.BitLen()
	}
	if bitLen == 0 {
		return InfinityPoint
	}

	r := InfinityJacobian()
	for i := bitLen - 1; i >= 0; i-- {
		r = c.DoubleJacobian(r)
		idx := uu.Bit(i) | (vv.Bit(i) << 1)
		if idx != 0 {
			r = c.AddJacobian(r, table[idx])
		}
	}
	return c.AffFromJac(r)
}

func addMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, m)
}

func subMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, m)
}

func mulMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, m)
}

func sqMod(a, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, a)
	return r.Mod(r, m)
}
