// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"math/big"

	"github.com/ledgerforge/btccore/bchash"
	"github.com/ledgerforge/btccore/secp256k1"
)

const hlen = 32

// rfc6979Nonce derives a deterministic per-signature nonce from the
// reduced challenge c and private key q, following the HMAC-DRBG state
// machine of RFC 6979 §3.2. It is a pure function of (c, q, curve): no
// randomness, no mutable package state survives the call.
func rfc6979Nonce(curve *secp256k1.Curve, q, c *big.Int) *big.Int {
	qBytes := leftPad(q.Bytes(), curve.NSize)
	cBytes := leftPad(c.Bytes(), curve.NSize)

	v := repeat(0x01, hlen)
	k := repeat(0x00, hlen)

	k = bchash.HMACSHA256(k, concat(v, []byte{0x00}, qBytes, cBytes))
	v = bchash.HMACSHA256(k, v)
	k = bchash.HMACSHA256(k, concat(v, []byte{0x01}, qBytes, cBytes))
	v = bchash.HMACSHA256(k, v)

	for {
		var t []byte
		for len(t) < curve.NSize {
			v = bchash.HMACSHA256(k, v)
			t = append(t, v...)
		}
		cand := secp256k1.IntFromBits(t, curve.NLen)
		if cand.Sign() > 0 && cand.Cmp(curve.N) < 0 {
			return cand
		}
		k = bchash.HMACSHA256(k, concat(v, []byte{0x00}))
		v = bchash.HMACSHA256(k, v)
	}
}

func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b[len(b)-size:]
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

func repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
