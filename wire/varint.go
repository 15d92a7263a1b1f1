// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the Bitcoin transaction wire format: the
// compact-size variable-length integer, var-bytes and witness-stream
// encodings, and legacy/segwit transaction (de)serialization.
package wire

import (
	"encoding/binary"

	"github.com/ledgerforge/btccore/bcerr"
)

const (
	varIntPrefix16 = 0xfd
	varIntPrefix32 = 0xfe
	varIntPrefix64 = 0xff
)

// PutVarInt appends the compact-size encoding of n to buf and returns
// the result.
func PutVarInt(buf []byte, n uint64) []byte {
	switch {
	case n < varIntPrefix16:
		return append(buf, byte(n))
	case n < 0x10000:
		buf = append(buf, varIntPrefix16)
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], uint16(n))
		return append(buf, tmp[:]...)
	case n < 0x100000000:
		buf = append(buf, varIntPrefix32)
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], uint32(n))
		return append(buf, tmp[:]...)
	default:
		buf = append(buf, varIntPrefix64)
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], n)
		return append(buf, tmp[:]...)
	}
}

// VarIntSize returns the number of bytes PutVarInt would emit for n.
func VarIntSize(n uint64) int {
	switch {
	case n < varIntPrefix16:
		return 1
	case n < 0x10000:
		return 3
	case n < 0x100000000:
		return 5
	default:
		return 9
	}
}

// ReadVarInt decodes a compact-size integer from the front of buf and
// returns its value and the number of bytes consumed.
func ReadVarInt(buf []byte) (n uint64, consumed int, err error) {
	if len(buf) < 1 {
		return 0, 0, bcerr.Valuef("varint: empty buffer")
	}
	switch buf[0] {
	case varIntPrefix64:
		if len(buf) < 9 {
			return 0, 0, bcerr.Valuef("varint: truncated 8-byte form")
		}
		return binary.LittleEndian.Uint64(buf[1:9]), 9, nil
	case varIntPrefix32:
		if len(buf) < 5 {
			return 0, 0, bcerr.Valuef("varint: truncated 4-byte form")
		}
		return uint64(binary.LittleEndian.Uint32(buf[1:5])), 5, nil
	case varIntPrefix16:
		if len(buf) < 3 {
			return 0, 0, bcerr.Valuef("varint: truncated 2-byte form")
		}
		return uint64(binary.LittleEndian.Uint16(buf[1:3])), 3, nil
	default:
		return uint64(buf[0]), 1, nil
	}
}
