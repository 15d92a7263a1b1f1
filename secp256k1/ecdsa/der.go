// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"math/big"

	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/secp256k1"
)

// Signature is an ECDSA signature (r, s), each in [1, n-1].
type Signature struct {
	R, S *big.Int
}

// Serialize encodes the signature in strict, minimal DER form:
// 0x30 L 0x02 Lr R 0x02 Ls S.
func (sig *Signature) Serialize() []byte {
	rb := canonicalDERInt(sig.R)
	sb := canonicalDERInt(sig.S)

	body := make([]byte, 0, 4+len(rb)+len(sb))
	body = append(body, 0x02, byte(len(rb)))
	body = append(body, rb...)
	body = append(body, 0x02, byte(len(sb)))
	body = append(body, sb...)

	out := make([]byte, 0, 2+len(body))
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	return out
}

// canonicalDERInt renders a non-negative integer as a minimal
// big-endian two's-complement DER INTEGER body: no leading 0x00 byte
// unless the following byte's high bit is set (which would otherwise
// make the value read as negative).
func canonicalDERInt(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 {
		return []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		return append([]byte{0x00}, b...)
	}
	return b
}

// ParseDERStrict parses a BIP-66 strict DER-encoded signature with no
// trailing bytes permitted, validating r, s in [1, n-1]. Callers that
// need to additionally enforce low-s should check sig.S against
// curve.N themselves, or call ParseDERStrictLowS.
func ParseDERStrict(curve *secp256k1.Curve, buf []byte) (*Signature, error) {
	if len(buf) < 8 {
		return nil, bcerr.Valuef("der: signature too short: %d bytes", len(buf))
	}
	if buf[0] != 0x30 {
		return nil, bcerr.Valuef("der: invalid sequence tag 0x%02x", buf[0])
	}
	totalLen := int(buf[1])
	if totalLen != len(buf)-2 {
		return nil, bcerr.Valuef("der: declared length %d does not match remaining %d bytes", totalLen, len(buf)-2)
	}

	rest := buf[2:]
	r, rest, err := parseDERInt(rest)
	if err != nil {
		return nil, err
	}
	s, rest, err := parseDERInt(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, bcerr.Valuef("der: %d trailing bytes after signature", len(rest))
	}

	if r.Sign() <= 0 || r.Cmp(curve.N) >= 0 {
		return nil, bcerr.Valuef("der: r out of range [1, n-1]")
	}
	if s.Sign() <= 0 || s.Cmp(curve.N) >= 0 {
		return nil, bcerr.Valuef("der: s out of range [1, n-1]")
	}

	return &Signature{R: r, S: s}, nil
}

// ParseDERStrictLowS parses like ParseDERStrict and additionally
// requires s <= n/2.
func ParseDERStrictLowS(curve *secp256k1.Curve, buf []byte) (*Signature, error) {
	sig, err := ParseDERStrict(curve, buf)
	if err != nil {
		return nil, err
	}
	halfN := new(big.Int).Rsh(curve.N, 1)
	if sig.S.Cmp(halfN) > 0 {
		return nil, bcerr.Valuef("der: s is not in low-s canonical form")
	}
	return sig, nil
}

// ParseDERFromScript parses a signature as it appears inside script
// data: strict DER, optionally followed by a single sighash byte. The
// returned hasSighash reports whether a sighash byte was present; the
// raw ECDSA boundary (ParseDERStrict) never permits one.
func ParseDERFromScript(curve *secp256k1.Curve, buf []byte) (sig *Signature, sighash byte, hasSighash bool, err error) {
	if len(buf) < 2 || buf[0] != 0x30 {
		sig, err = ParseDERStrict(curve, buf)
		return sig, 0, false, err
	}
	derLen := 2 + int(buf[1])
	if len(buf) == derLen+1 {
		sig, err = ParseDERStrict(curve, buf[:derLen])
		if err != nil {
			return nil, 0, false, err
		}
		return sig, buf[derLen], true, nil
	}
	sig, err = ParseDERStrict(curve, buf)
	return sig, 0, false, err
}

func parseDERInt(buf []byte) (val *big.Int, rest []byte, err error) {
	if len(buf) < 3 {
		return nil, nil, bcerr.Valuef("der: truncated integer")
	}
	if buf[0] != 0x02 {
		return nil, nil, bcerr.Valuef("der: invalid integer tag 0x%02x", buf[0])
	}
	n := int(buf[1])
	if n < 1 || n > 33 {
		return nil, nil, bcerr.Valuef("der: integer body length %d out of range [1,33]", n)
	}
	if len(buf) < 2+n {
		return nil, nil, bcerr.Valuef("der: integer body runs past end of buffer")
	}
	body := buf[2 : 2+n]

	if body[0]&0x80 != 0 {
		return nil, nil, bcerr.Valuef("der: negative integer not permitted")
	}
	if len(body) > 1 && body[0] == 0x00 && body[1]&0x80 == 0 {
		return nil, nil, bcerr.Valuef("der: non-minimal integer encoding")
	}

	val = new(big.Int).SetBytes(body)
	return val, buf[2+n:], nil
}
