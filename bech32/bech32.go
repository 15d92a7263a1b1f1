// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bech32 implements the Bech32 and Bech32m checksummed encodings
// defined by BIP-173 and BIP-350, used by segwit addresses.
package bech32

import (
	"strings"

	"github.com/ledgerforge/btccore/bcerr"
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Encoding distinguishes the two checksum constants introduced by BIP-350.
type Encoding int

const (
	// Bech32 is the original checksum, used for segwit version 0.
	Bech32 Encoding = iota
	// Bech32m is the BIP-350 checksum, used for segwit version 1 and up.
	Bech32m
)

const (
	bech32Const  = 1
	bech32mConst = 0x2bc830a3
)

var charsetRev [256]int8

func init() {
	for i := range charsetRev {
		charsetRev[i] = -1
	}
	for i, c := range charset {
		charsetRev[c] = int8(i)
	}
}

func polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		b := byte(chk >> 25)
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 != 0 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func hrpExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for _, c := range hrp {
		out = append(out, byte(c)>>5)
	}
	out = append(out, 0)
	for _, c := range hrp {
		out = append(out, byte(c)&31)
	}
	return out
}

func verifyChecksum(hrp string, data []byte, enc Encoding) bool {
	values := append(hrpExpand(hrp), data...)
	return polymod(values) == checksumConst(enc)
}

func checksumConst(enc Encoding) uint32 {
	if enc == Bech32m {
		return bech32mConst
	}
	return bech32Const
}

func createChecksum(hrp string, data []byte, enc Encoding) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := polymod(values) ^ checksumConst(enc)
	out := make([]byte, 6)
	for i := 0; i < 6; i++ {
		out[i] = byte((mod >> uint(5*(5-i))) & 31)
	}
	return out
}

// Encode produces a checksummed Bech32 or Bech32m string from a human
// readable prefix and a sequence of 5-bit groups.
func Encode(hrp string, data []byte, enc Encoding) (string, error) {
	if len(hrp) < 1 {
		return "", bcerr.Valuef("bech32: empty hrp")
	}
	lower, upper := false, false
	for _, c := range hrp {
		if c < 33 || c > 126 {
			return "", bcerr.Valuef("bech32: hrp character out of range: %q", c)
		}
		if c >= 'a' && c <= 'z' {
			lower = true
		}
		if c >= 'A' && c <= 'Z' {
			upper = true
		}
	}
	if lower && upper {
		return "", bcerr.Valuef("bech32: mixed case hrp")
	}
	hrpLower := strings.ToLower(hrp)

	checksum := createChecksum(hrpLower, data, enc)
	combined := append(append([]byte{}, data...), checksum...)

	var sb strings.Builder
	sb.WriteString(hrpLower)
	sb.WriteByte('1')
	for _, d := range combined {
		if d >= 32 {
			return "", bcerr.Valuef("bech32: invalid 5-bit value %d", d)
		}
		sb.WriteByte(charset[d])
	}
	return sb.String(), nil
}

// Decode parses a Bech32 or Bech32m string, verifying its checksum against
// the requested encoding, and returns the human-readable prefix and the
// 5-bit data groups (checksum stripped).
func Decode(s string, enc Encoding) (hrp string, data []byte, err error) {
	if len(s) < 8 || len(s) > 90 {
		return "", nil, bcerr.Valuef("bech32: invalid length %d", len(s))
	}
	lower, upper := false, false
	for _, c := range s {
		if c < 33 || c > 126 {
			return "", nil, bcerr.Valuef("bech32: character out of range: %q", c)
		}
		if c >= 'a' && c <= 'z' {
			lower = true
		}
		if c >= 'A' && c <= 'Z' {
			upper = true
		}
	}
	if lower && upper {
		return "", nil, bcerr.Valuef("bech32: mixed case string")
	}
	s = strings.ToLower(s)

	pos := strings.LastIndexByte(s, '1')
	if pos < 1 || pos+7 > len(s) {
		return "", nil, bcerr.Valuef("bech32: missing or misplaced separator")
	}
	hrp = s[:pos]
	dataPart := s[pos+1:]

	decoded := make([]byte, len(dataPart))
	for i := 0; i < len(dataPart); i++ {
		v := charsetRev[dataPart[i]]
		if v < 0 {
			return "", nil, bcerr.Valuef("bech32: invalid character %q", dataPart[i])
		}
		decoded[i] = byte(v)
	}

	if !verifyChecksum(hrp, decoded, enc) {
		return "", nil, bcerr.Valuef("bech32: checksum mismatch")
	}
	return hrp, decoded[:len(decoded)-6], nil
}

// ConvertBits regroups a sequence of fromBits-wide integers into toBits-wide
// integers, used to translate between 8-bit payload bytes and the 5-bit
// groups bech32 encodes. When pad is true, a final short group is padded
// with zero bits; when false, it is required to be all zero and dropped.
func ConvertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	var acc uint32
	var bits uint
	var out []byte
	maxV := uint32(1)<<toBits - 1
	maxAcc := uint32(1)<<(fromBits+toBits-1) - 1

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, bcerr.Valuef("convertbits: input value %d exceeds %d bits", b, fromBits)
		}
		acc = ((acc << fromBits) | uint32(b)) & maxAcc
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte((acc>>bits)&maxV))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte((acc<<(toBits-bits))&maxV))
		}
	} else if bits >= fromBits || (acc<<(toBits-bits))&maxV != 0 {
		return nil, bcerr.Valuef("convertbits: non-zero padding")
	}
	return out, nil
}
