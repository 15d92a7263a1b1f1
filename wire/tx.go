// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/bchash"
	"github.com/ledgerforge/btccore/chaincfg/chainhash"
)

// OutPoint identifies a specific output of a prior transaction.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// TxIn is a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
	Witness          [][]byte
}

// HasWitness reports whether this input carries a non-empty witness.
func (in *TxIn) HasWitness() bool {
	return len(in.Witness) > 0
}

// TxOut is a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// Tx is a Bitcoin transaction.
type Tx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// hasWitness reports whether any input in tx carries a non-empty
// witness, which determines whether the segwit marker/flag bytes and
// witness block appear on the wire.
func (tx *Tx) hasWitness() bool {
	for _, in := range tx.TxIn {
		if in.HasWitness() {
			return true
		}
	}
	return false
}

func putUint32LE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func putInt64LE(buf []byte, v int64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:]...)
}

func (op *OutPoint) serialize(buf []byte) []byte {
	buf = append(buf, op.Hash[:]...)
	return putUint32LE(buf, op.Index)
}

func (in *TxIn) serialize(buf []byte) []byte {
	buf = in.PreviousOutPoint.serialize(buf)
	buf = PutVarBytes(buf, in.SignatureScript)
	return putUint32LE(buf, in.Sequence)
}

func (out *TxOut) serialize(buf []byte) []byte {
	buf = putInt64LE(buf, out.Value)
	return PutVarBytes(buf, out.PkScript)
}

// SerializeLegacy encodes tx in the pre-segwit wire form:
// version || varint(|vin|) || vin || varint(|vout|) || vout || lock_time.
func (tx *Tx) SerializeLegacy() []byte {
	buf := make([]byte, 0, 256)
	buf = putUint32LE(buf, uint32(tx.Version))
	buf = PutVarInt(buf, uint64(len(tx.TxIn)))
	for _, in := range tx.TxIn {
		buf = in.serialize(buf)
	}
	buf = PutVarInt(buf, uint64(len(tx.TxOut)))
	for _, out := range tx.TxOut {
		buf = out.serialize(buf)
	}
	return putUint32LE(buf, tx.LockTime)
}

// Serialize encodes tx in segwit wire form (BIP-141) when any input
// carries a witness, or the legacy form otherwise. The marker (0x00)
// and flag (0x01) bytes appear on the wire only in the former case.
func (tx *Tx) Serialize() []byte {
	if !tx.hasWitness() {
		return tx.SerializeLegacy()
	}

	buf := make([]byte, 0, 256)
	buf = putUint32LE(buf, uint32(tx.Version))
	buf = append(buf, 0x00, 0x01)
	buf = PutVarInt(buf, uint64(len(tx.TxIn)))
	for _, in := range tx.TxIn {
		buf = in.serialize(buf)
	}
	buf = PutVarInt(buf, uint64(len(tx.TxOut)))
	for _, out := range tx.TxOut {
		buf = out.serialize(buf)
	}
	for _, in := range tx.TxIn {
		buf = PutWitness(buf, in.Witness)
	}
	return putUint32LE(buf, tx.LockTime)
}

// TxID returns hash256 of the legacy serialization, independent of any
// witness data.
func (tx *Tx) TxID() chainhash.Hash {
	return bchash.Hash256(tx.SerializeLegacy())
}

// WTxID returns hash256 of the full (segwit, if applicable)
// serialization.
func (tx *Tx) WTxID() chainhash.Hash {
	return bchash.Hash256(tx.Serialize())
}

// Deserialize parses a transaction from its wire form, legacy or
// segwit, auto-detecting the marker/flag bytes.
func Deserialize(buf []byte) (*Tx, int, error) {
	if len(buf) < 4 {
		return nil, 0, bcerr.Valuef("tx: buffer too short for version")
	}
	tx := &Tx{Version: int32(binary.LittleEndian.Uint32(buf[:4]))}
	off := 4

	segwit := false
	if len(buf) >= off+2 && buf[off] == 0x00 && buf[off+1] == 0x01 {
		segwit = true
		off += 2
	}

	inCount, n, err := ReadVarInt(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	off += n

	tx.TxIn = make([]*TxIn, inCount)
	for i := range tx.TxIn {
		in, n, err := deserializeTxIn(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		tx.TxIn[i] = in
		off += n
	}

	outCount, n, err := ReadVarInt(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	off += n

	tx.TxOut = make([]*TxOut, outCount)
	for i := range tx.TxOut {
		out, n, err := deserializeTxOut(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		tx.TxOut[i] = out
		off += n
	}

	if segwit {
		for i := range tx.TxIn {
			items, n, err := ReadWitness(buf[off:])
			if err != nil {
				return nil, 0, err
			}
			tx.TxIn[i].Witness = items
			off += n
		}
	}

	if len(buf) < off+4 {
		return nil, 0, bcerr.Valuef("tx: buffer too short for lock_time")
	}
	tx.LockTime = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4

	return tx, off, nil
}

func deserializeTxIn(buf []byte) (*TxIn, int, error) {
	if len(buf) < 36 {
		return nil, 0, bcerr.Valuef("txin: buffer too short for outpoint")
	}
	in := &TxIn{}
	copy(in.PreviousOutPoint.Hash[:], buf[:32])
	in.PreviousOutPoint.Index = binary.LittleEndian.Uint32(buf[32:36])
	off := 36

	script, n, err := ReadVarBytes(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	in.SignatureScript = script
	off += n

	if len(buf) < off+4 {
		return nil, 0, bcerr.Valuef("txin: buffer too short for sequence")
	}
	in.Sequence = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4

	return in, off, nil
}

func deserializeTxOut(buf []byte) (*TxOut, int, error) {
	if len(buf) < 8 {
		return nil, 0, bcerr.Valuef("txout: buffer too short for value")
	}
	out := &TxOut{Value: int64(binary.LittleEndian.Uint64(buf[:8]))}
	off := 8

	script, n, err := ReadVarBytes(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	out.PkScript = script
	off += n

	return out, off, nil
}
