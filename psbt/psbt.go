// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package psbt implements the Partially Signed Bitcoin Transaction
// format (BIP-174): a magic-prefixed sequence of key-value maps, one
// global map followed by one input map per transaction input and one
// output map per transaction output.
package psbt

import (
	"bytes"

	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/wire"
)

var magic = [5]byte{0x70, 0x73, 0x62, 0x74, 0xff}

// Global map key types.
const (
	PsbtGlobalUnsignedTx  = 0x00
	PsbtGlobalXpub        = 0x01
	PsbtGlobalVersion     = 0xfb
	PsbtGlobalProprietary = 0xfc
)

// Input map key types.
const (
	PsbtInNonWitnessUTXO     = 0x00
	PsbtInWitnessUTXO        = 0x01
	PsbtInPartialSig         = 0x02
	PsbtInSighashType        = 0x03
	PsbtInRedeemScript       = 0x04
	PsbtInWitnessScript      = 0x05
	PsbtInBIP32Derivation    = 0x06
	PsbtInFinalScriptSig     = 0x07
	PsbtInFinalScriptWitness = 0x08
	PsbtInPorCommitment      = 0x09
	PsbtInProprietary        = 0xfc
)

// Output map key types.
const (
	PsbtOutRedeemScript    = 0x00
	PsbtOutWitnessScript   = 0x01
	PsbtOutBIP32Derivation = 0x02
	PsbtOutProprietary     = 0xfc
)

// KeyValue is one record of a PSBT map: the full key (type byte plus
// any key data) and its value, exactly as they appear on the wire.
// Unknown key types round-trip through this representation verbatim.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// KeyType returns the leading type byte of the record's key.
func (kv KeyValue) KeyType() byte {
	if len(kv.Key) == 0 {
		return 0
	}
	return kv.Key[0]
}

// KeyData returns the key bytes after the leading type byte (e.g. the
// SEC pubkey for a partial-signature or BIP-32-derivation record).
func (kv KeyValue) KeyData() []byte {
	if len(kv.Key) <= 1 {
		return nil
	}
	return kv.Key[1:]
}

// Packet is a parsed PSBT: the global map, then one map per input and
// output of the unsigned transaction embedded in the global map.
type Packet struct {
	Global  []KeyValue
	Inputs  [][]KeyValue
	Outputs [][]KeyValue
}

// Serialize encodes the packet to its wire form.
func (p *Packet) Serialize() []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, magic[:]...)
	buf = serializeMap(buf, p.Global)
	for _, m := range p.Inputs {
		buf = serializeMap(buf, m)
	}
	for _, m := range p.Outputs {
		buf = serializeMap(buf, m)
	}
	return buf
}

func serializeMap(buf []byte, m []KeyValue) []byte {
	for _, kv := range m {
		buf = wire.PutVarBytes(buf, kv.Key)
		buf = wire.PutVarBytes(buf, kv.Value)
	}
	return append(buf, 0x00)
}

// UnsignedTx parses and returns the unsigned transaction embedded in
// the global map, or an error if the map has no unsigned-tx record or
// the record does not deserialize.
func (p *Packet) UnsignedTx() (*wire.Tx, error) {
	for _, kv := range p.Global {
		if len(kv.Key) == 1 && kv.Key[0] == PsbtGlobalUnsignedTx {
			tx, n, err := wire.Deserialize(kv.Value)
			if err != nil {
				return nil, err
			}
			if n != len(kv.Value) {
				return nil, bcerr.Valuef("psbt: %d trailing bytes after unsigned tx", len(kv.Value)-n)
			}
			return tx, nil
		}
	}
	return nil, bcerr.Valuef("psbt: global map has no unsigned tx")
}

// Decode parses a PSBT whose input and output map counts are taken
// from the unsigned transaction in its own global map, per BIP-174:
// one input map per tx input, one output map per tx output. Trailing
// bytes after the final output map are rejected.
func Decode(buf []byte) (*Packet, error) {
	if len(buf) < 5 || !bytes.Equal(buf[:5], magic[:]) {
		return nil, bcerr.Valuef("psbt: bad magic bytes")
	}
	off := 5

	global, n, err := deserializeMap(buf[off:])
	if err != nil {
		return nil, err
	}
	off += n

	p := &Packet{Global: global}
	tx, err := p.UnsignedTx()
	if err != nil {
		return nil, err
	}

	p.Inputs = make([][]KeyValue, len(tx.TxIn))
	for i := range p.Inputs {
		m, n, err := deserializeMap(buf[off:])
		if err != nil {
			return nil, err
		}
		p.Inputs[i] = m
		off += n
	}

	p.Outputs = make([][]KeyValue, len(tx.TxOut))
	for i := range p.Outputs {
		m, n, err := deserializeMap(buf[off:])
		if err != nil {
			return nil, err
		}
		p.Outputs[i] = m
		off += n
	}

	if off != len(buf) {
		return nil, bcerr.Valuef("psbt: %d trailing bytes after final map", len(buf)-off)
	}
	return p, nil
}

// Deserialize parses a PSBT, given the number of inputs and outputs
// (read from the unsigned transaction embedded in the global map by
// the caller, or known ahead of time).
func Deserialize(buf []byte, numInputs, numOutputs int) (*Packet, error) {
	if len(buf) < 5 || !bytes.Equal(buf[:5], magic[:]) {
		return nil, bcerr.Valuef("psbt: bad magic bytes")
	}
	off := 5

	global, n, err := deserializeMap(buf[off:])
	if err != nil {
		return nil, err
	}
	off += n

	inputs := make([][]KeyValue, numInputs)
	for i := range inputs {
		m, n, err := deserializeMap(buf[off:])
		if err != nil {
			return nil, err
		}
		inputs[i] = m
		off += n
	}

	outputs := make([][]KeyValue, numOutputs)
	for i := range outputs {
		m, n, err := deserializeMap(buf[off:])
		if err != nil {
			return nil, err
		}
		outputs[i] = m
		off += n
	}

	return &Packet{Global: global, Inputs: inputs, Outputs: outputs}, nil
}

func deserializeMap(buf []byte) (kvs []KeyValue, consumed int, err error) {
	off := 0
	seen := make(map[string]bool)
	for {
		if off >= len(buf) {
			return nil, 0, bcerr.Valuef("psbt: map not terminated before end of buffer")
		}
		if buf[off] == 0x00 {
			off++
			return kvs, off, nil
		}

		key, n, err := wire.ReadVarBytes(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		off += n

		if seen[string(key)] {
			log.Debugf("rejecting PSBT map: duplicate key %x", key)
			return nil, 0, bcerr.Valuef("psbt: duplicate key in map")
		}
		seen[string(key)] = true

		value, n, err := wire.ReadVarBytes(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		off += n

		kvs = append(kvs, KeyValue{Key: key, Value: value})
	}
}
