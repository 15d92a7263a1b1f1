// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package base58 implements the Bitcoin Base58 and Base58Check encodings:
// a base-58 big-integer encoding over a custom alphabet that avoids the
// visually ambiguous characters 0, O, I, and l, plus a 4-byte
// double-SHA256 checksum wrapper.
package base58

import (
	"math/big"

	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/bchash"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	bigRadix  = big.NewInt(58)
	decodeMap [256]int8
)

func init() {
	for i := range decodeMap {
		decodeMap[i] = -1
	}
	for i, c := range alphabet {
		decodeMap[c] = int8(i)
	}
}

// Encode returns the base58 encoding of b, preserving leading-zero bytes
// as leading '1' characters.
func Encode(b []byte) string {
	x := new(big.Int).SetBytes(b)

	var out []byte
	zero := big.NewInt(0)
	mod := new(big.Int)
	for x.Cmp(zero) > 0 {
		x.DivMod(x, bigRadix, mod)
		out = append(out, alphabet[mod.Int64()])
	}

	for _, c := range b {
		if c != 0 {
			break
		}
		out = append(out, alphabet[0])
	}
	reverse(out)
	return string(out)
}

// Decode parses a base58 string back to its original bytes. It fails if
// the string contains a character outside the base58 alphabet.
func Decode(s string) ([]byte, error) {
	x := new(big.Int)
	for i := 0; i < len(s); i++ {
		d := decodeMap[s[i]]
		if d < 0 {
			return nil, bcerr.Valuef("invalid base58 character %q at position %d", s[i], i)
		}
		x.Mul(x, bigRadix)
		x.Add(x, big.NewInt(int64(d)))
	}

	decoded := x.Bytes()

	numZeros := 0
	for numZeros < len(s) && s[numZeros] == alphabet[0] {
		numZeros++
	}

	out := make([]byte, numZeros+len(decoded))
	copy(out[numZeros:], decoded)
	return out, nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// CheckEncode returns the Base58Check encoding of payload with the given
// version byte: base58(version || payload || hash256(version || payload)[:4]).
func CheckEncode(payload []byte, version byte) string {
	body := make([]byte, 0, 1+len(payload)+4)
	body = append(body, version)
	body = append(body, payload...)
	sum := bchash.Hash256(body)
	body = append(body, sum[:4]...)
	return Encode(body)
}

// CheckDecode decodes a Base58Check string, verifies its checksum, and
// returns the version byte and payload separately.
func CheckDecode(s string) (version byte, payload []byte, err error) {
	raw, err := Decode(s)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) < 5 {
		return 0, nil, bcerr.Valuef("base58check input too short: %d bytes", len(raw))
	}

	body := raw[:len(raw)-4]
	checksum := raw[len(raw)-4:]
	want := bchash.Hash256(body)
	for i := 0; i < 4; i++ {
		if checksum[i] != want[i] {
			return 0, nil, bcerr.Valuef("base58check checksum mismatch")
		}
	}
	return body[0], body[1:], nil
}
