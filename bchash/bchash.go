// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bchash implements the small set of hash helpers Bitcoin-protocol
// code builds on top of: sha256, ripemd160, their hash160/hash256
// compositions, tagged sha256 (BIP-340 style domain separation), and
// HMAC-SHA256 for RFC 6979.
package bchash

import (
	"crypto/hmac"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // no stdlib replacement exists
)

// Sha256 returns the SHA-256 digest of m.
func Sha256(m []byte) [32]byte {
	return sha256.Sum256(m)
}

// Ripemd160 returns the RIPEMD-160 digest of m.
func Ripemd160(m []byte) [20]byte {
	h := ripemd160.New()
	h.Write(m)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 returns ripemd160(sha256(m)), the standard Bitcoin public-key and
// script digest.
func Hash160(m []byte) [20]byte {
	s := Sha256(m)
	return Ripemd160(s[:])
}

// Hash256 returns sha256(sha256(m)), used for txid/wtxid and Base58Check
// checksums.
func Hash256(m []byte) [32]byte {
	first := Sha256(m)
	return Sha256(first[:])
}

// TaggedHash returns sha256(sha256(tag) || sha256(tag) || msg), the
// domain-separated hash construction used wherever a challenge or nonce
// needs to be bound to a specific protocol role.
func TaggedHash(tag string, msg []byte) [32]byte {
	tagHash := Sha256([]byte(tag))
	buf := make([]byte, 0, 64+len(msg))
	buf = append(buf, tagHash[:]...)
	buf = append(buf, tagHash[:]...)
	buf = append(buf, msg...)
	return Sha256(buf)
}

// HMACSHA256 computes HMAC-SHA256(key, msg), the primitive RFC 6979's
// deterministic nonce derivation is built from.
func HMACSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// ReduceToHlen normalizes an arbitrary-length message to the digest length
// of hf by applying hf once. Callers that already hold a digest should use
// it directly rather than calling ReduceToHlen a second time; re-hashing
// an already-reduced value is a caller bug, not something this function
// guards against.
func ReduceToHlen(msg []byte, hf func([]byte) [32]byte) []byte {
	d := hf(msg)
	return d[:]
}
