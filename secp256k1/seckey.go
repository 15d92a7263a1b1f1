// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// EncodeScalar serializes a scalar (private key) as c.NSize big-endian
// bytes. It fails if k is not in [1, n-1].
func (c *Curve) EncodeScalar(k *big.Int) ([]byte, error) {
	if k.Sign() <= 0 || k.Cmp(c.N) >= 0 {
		return nil, errValuef("scalar out of range [1, n-1]")
	}
	buf := make([]byte, c.NSize)
	kb := k.Bytes()
	copy(buf[c.NSize-len(kb):], kb)
	return buf, nil
}

// DecodeScalar parses a big-endian scalar, rejecting zero and any value
// >= n.
func (c *Curve) DecodeScalar(buf []byte) (*big.Int, error) {
	if len(buf) != c.NSize {
		return nil, errValuef("invalid scalar length: got %d, want %d", len(buf), c.NSize)
	}
	k := new(big.Int).SetBytes(buf)
	if k.Sign() <= 0 || k.Cmp(c.N) >= 0 {
		return nil, errValuef("scalar out of range [1, n-1]")
	}
	return k, nil
}

// EncodePoint serializes an affine point per SEC 1: 0x04 || X || Y
// uncompressed, or 0x02/0x03 || X compressed (0x02 for even Y, 0x03 for
// odd). Infinity is rejected; callers that need to serialize "no public
// key yet" should use a sum type at a higher layer, not a magic 0x00 byte.
func (c *Curve) EncodePoint(p AffinePoint, compressed bool) ([]byte, error) {
	if p.IsInfinity() {
		return nil, errValuef("cannot encode point at infinity")
	}

	xb := make([]byte, c.PSize)
	xBytes := p.X.Bytes()
	copy(xb[c.PSize-len(xBytes):], xBytes)

	if !compressed {
		yb := make([]byte, c.PSize)
		yBytes := p.Y.Bytes()
		copy(yb[c.PSize-len(yBytes):], yBytes)
		out := make([]byte, 0, 1+2*c.PSize)
		out = append(out, 0x04)
		out = append(out, xb...)
		out = append(out, yb...)
		return out, nil
	}

	prefix := byte(0x02)
	if p.Y.Bit(0) != 0 {
		prefix = 0x03
	}
	out := make([]byte, 0, 1+c.PSize)
	out = append(out, prefix)
	out = append(out, xb...)
	return out, nil
}

// DecodePoint parses a SEC 1 encoded point: length is checked first, then
// X < p, then Y is recomputed via ModSqrt and its parity selected per the
// prefix byte (for compressed form) or verified directly (uncompressed
// form). The encoded infinity byte 0x00 is rejected, per spec: all public
// key parsers reject it.
func (c *Curve) DecodePoint(buf []byte) (AffinePoint, error) {
	if len(buf) == 0 {
		return InfinityPoint, errValuef("empty point encoding")
	}

	switch buf[0] {
	case 0x00:
		return InfinityPoint, errValuef("infinity is not a valid public key encoding")

	case 0x04:
		if len(buf) != 1+2*c.PSize {
			return InfinityPoint, errValuef("invalid uncompressed point length: got %d, want %d", len(buf), 1+2*c.PSize)
		}
		x := new(big.Int).SetBytes(buf[1 : 1+c.PSize])
		y := new(big.Int).SetBytes(buf[1+c.PSize:])
		if x.Cmp(c.P) >= 0 || y.Cmp(c.P) >= 0 {
			return InfinityPoint, errValuef("point coordinate out of range")
		}
		p := AffinePoint{X: x, Y: y}
		if !c.IsOnCurve(p) {
			log.Debugf("rejecting uncompressed point: not on curve")
			return InfinityPoint, errValuef("point is not on curve")
		}
		return p, nil

	case 0x02, 0x03:
		if len(buf) != 1+c.PSize {
			return InfinityPoint, errValuef("invalid compressed point length: got %d, want %d", len(buf), 1+c.PSize)
		}
		x := new(big.Int).SetBytes(buf[1:])
		if x.Cmp(c.P) >= 0 {
			return InfinityPoint, errValuef("x coordinate out of range")
		}
		yEven, err := c.YEven(x)
		if err != nil {
			return InfinityPoint, err
		}
		wantOdd := buf[0] == 0x03
		y := yEven
		if wantOdd {
			y = new(big.Int).Sub(c.P, yEven)
		}
		return AffinePoint{X: x, Y: y}, nil

	default:
		return InfinityPoint, errValuef("invalid point encoding prefix: 0x%02x", buf[0])
	}
}
