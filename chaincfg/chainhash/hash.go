// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the fixed-size double-SHA256 hash type used
// for transaction and witness transaction identifiers.
package chainhash

import (
	"encoding/hex"

	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/bchash"
)

// HashSize is the size, in bytes, of a hash used to identify transactions.
const HashSize = 32

// Hash is a double sha256.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, which is the order Bitcoin traditionally displays hashes in.
func (h Hash) String() string {
	var reversed Hash
	for i, b := range h {
		reversed[HashSize-1-i] = b
	}
	return hex.EncodeToString(reversed[:])
}

// CloneBytes returns a copy of the bytes in the hash, in internal
// (non-reversed) byte order.
func (h Hash) CloneBytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

// SetBytes sets the bytes of the hash to the passed slice, which must be
// exactly HashSize bytes, in internal (non-reversed) byte order.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return bcerr.Valuef("invalid hash length: got %d, want %d", len(newHash), HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// IsEqual returns true if target is the same as the hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// NewHash returns a new Hash from a byte slice in internal (non-reversed)
// byte order.
func NewHash(newHash []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(newHash); err != nil {
		return nil, err
	}
	return &h, nil
}

// NewHashFromStr creates a Hash from a hash string, interpreting the string
// the way Bitcoin displays hashes: a big-endian hex string representing the
// byte-reversed hash.
func NewHashFromStr(hash string) (*Hash, error) {
	if len(hash)%2 != 0 {
		hash = "0" + hash
	}
	buf, err := hex.DecodeString(hash)
	if err != nil {
		return nil, bcerr.Valuef("invalid hash hex: %v", err)
	}
	if len(buf) != HashSize {
		return nil, bcerr.Valuef("invalid hash string length: got %d, want %d", len(buf), HashSize)
	}
	var h Hash
	for i := 0; i < HashSize; i++ {
		h[i] = buf[HashSize-1-i]
	}
	return &h, nil
}

// HashB calculates hash256(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	d := bchash.Hash256(b)
	return d[:]
}

// HashH calculates hash256(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(bchash.Hash256(b))
}

// DoubleHashB is an alias of HashB provided for readability at call sites
// that want to foreground that this is the double-SHA256 construction
// rather than a single hash256 call.
func DoubleHashB(b []byte) []byte {
	return HashB(b)
}

// DoubleHashH is an alias of HashH, see DoubleHashB.
func DoubleHashH(b []byte) Hash {
	return HashH(b)
}
