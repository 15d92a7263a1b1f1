// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// ModInv returns the unique x in [1, m-1] such that a*x = 1 (mod m). It
// fails with a Runtime error if gcd(a, m) != 1: mod_inv is always called
// internally on values this package has already range-checked, so a
// non-invertible argument is an internal invariant failure rather than a
// caller-input problem.
//
// Implemented with the extended Euclidean algorithm (big.Int.GCD), not
// Fermat's little theorem, so it works for composite moduli too (it is
// used both mod p, a prime, and mod n, also prime for secp256k1, but the
// algorithm itself does not assume primality).
func ModInv(a, m *big.Int) (*big.Int, error) {
	a = new(big.Int).Mod(a, m)
	g := new(big.Int)
	x := new(big.Int)
	g.GCD(x, nil, a, m)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, errRuntimef("mod_inv: %s has no inverse mod %s", a, m)
	}
	return x.Mod(x, m), nil
}

// ModSqrt returns a square root of a modulo the prime p, if one exists.
// Tonelli-Shanks is used in general; when p = 3 (mod 4), as is true for
// secp256k1, the fast path r = a^((p+1)/4) mod p applies directly.
func ModSqrt(a, p *big.Int) (*big.Int, error) {
	a = new(big.Int).Mod(a, p)
	if a.Sign() == 0 {
		return big.NewInt(0), nil
	}

	if !isQuadraticResidue(a, p) {
		return nil, errValuef("mod_sqrt: %s is not a quadratic residue mod %s", a, p)
	}

	three := big.NewInt(3)
	four := big.NewInt(4)
	mod4 := new(big.Int).Mod(p, four)
	if mod4.Cmp(three) == 0 {
		exp := new(big.Int).Add(p, big.NewInt(1))
		exp.Rsh(exp, 2)
		return new(big.Int).Exp(a, exp, p), nil
	}

	return tonelliShanks(a, p)
}

func isQuadraticResidue(a, p *big.Int) bool {
	exp := new(big.Int).Sub(p, big.NewInt(1))
	exp.Rsh(exp, 1)
	r := new(big.Int).Exp(a, exp, p)
	return r.Cmp(big.NewInt(1)) == 0
}

// tonelliShanks implements the general Tonelli-Shanks square-root algorithm
// for an odd prime p. Used only for curves whose prime is not 3 (mod 4);
// secp256k1 never reaches this path, but the generic Curve type supports
// other short-Weierstrass prime-order curves.
func tonelliShanks(n, p *big.Int) (*big.Int, error) {
	one := big.NewInt(1)

	q := new(big.Int).Sub(p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	if s == 1 {
		exp := new(big.Int).Add(p, one)
		exp.Rsh(exp, 2)
		return new(big.Int).Exp(n, exp, p), nil
	}

	var z *big.Int
	for cand := big.NewInt(2); ; cand.Add(cand, one) {
		if !isQuadraticResidue(cand, p) {
			z = new(big.Int).Set(cand)
			break
		}
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(n, q, p)
	qPlus1Over2 := new(big.Int).Add(q, one)
	qPlus1Over2.Rsh(qPlus1Over2, 1)
	r := new(big.Int).Exp(n, qPlus1Over2, p)

	for {
		if t.Cmp(one) == 0 {
			return r, nil
		}

		i := 0
		tt := new(big.Int).Set(t)
		for tt.Cmp(one) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, p)
			i++
			if i == m {
				return nil, errRuntimef("mod_sqrt: tonelli-shanks failed to converge")
			}
		}

		b := new(big.Int).Exp(c, new(big.Int).Lsh(one, uint(m-i-1)), p)
		m = i
		c = new(big.Int).Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
}

// IntFromBits interprets the leftmost nbits bits of buf as a big-endian
// integer, per SEC 1 section 2.3.8. This is the only sanctioned way a
// scalar is derived from a hash digest in this package: when buf is longer
// (in bits) than nbits, the excess low-order bits are discarded by a right
// shift rather than a mod reduction.
func IntFromBits(buf []byte, nbits int) *big.Int {
	v := new(big.Int).SetBytes(buf)
	bufBits := len(buf) * 8
	if bufBits > nbits {
		v.Rsh(v, uint(bufBits-nbits))
	}
	return v
}
