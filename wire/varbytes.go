// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/ledgerforge/btccore/bcerr"

// PutVarBytes appends a var-int length prefix followed by data.
func PutVarBytes(buf []byte, data []byte) []byte {
	buf = PutVarInt(buf, uint64(len(data)))
	return append(buf, data...)
}

// ReadVarBytes decodes a var-int-prefixed byte string from the front
// of buf and returns it and the number of bytes consumed.
func ReadVarBytes(buf []byte) (data []byte, consumed int, err error) {
	n, off, err := ReadVarInt(buf)
	if err != nil {
		return nil, 0, err
	}
	end := off + int(n)
	if end < off || end > len(buf) {
		return nil, 0, bcerr.Valuef("varbytes: declared length %d runs past end of buffer", n)
	}
	return buf[off:end], end, nil
}

// PutWitness appends a witness stream: a var-int item count followed
// by that many var-bytes entries.
func PutWitness(buf []byte, items [][]byte) []byte {
	buf = PutVarInt(buf, uint64(len(items)))
	for _, item := range items {
		buf = PutVarBytes(buf, item)
	}
	return buf
}

// ReadWitness decodes a witness stream from the front of buf.
func ReadWitness(buf []byte) (items [][]byte, consumed int, err error) {
	count, off, err := ReadVarInt(buf)
	if err != nil {
		return nil, 0, err
	}
	items = make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		item, n, err := ReadVarBytes(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		off += n
	}
	return items, off, nil
}
