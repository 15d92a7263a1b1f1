// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"sort"

	"github.com/ledgerforge/btccore/bcerr"
)

// ScriptClass identifies a recognized scriptPubKey template.
type ScriptClass int

const (
	// NonStandard is any script that does not match a recognized
	// template.
	NonStandard ScriptClass = iota
	PubKey
	PubKeyHash
	ScriptHash
	MultiSig
	WitnessV0PubKeyHash
	WitnessV0ScriptHash
	NullData
)

func (c ScriptClass) String() string {
	switch c {
	case PubKey:
		return "p2pk"
	case PubKeyHash:
		return "p2pkh"
	case ScriptHash:
		return "p2sh"
	case MultiSig:
		return "p2ms"
	case WitnessV0PubKeyHash:
		return "p2wpkh"
	case WitnessV0ScriptHash:
		return "p2wsh"
	case NullData:
		return "nulldata"
	default:
		return "nonstandard"
	}
}

// PayloadFromScriptPubKey classifies a scriptPubKey and returns its
// class, its payload (pubkey, hash, or concatenated pubkeys), and the
// multisig threshold m (zero for every class but p2ms).
func PayloadFromScriptPubKey(script []byte) (class ScriptClass, payload []byte, m int) {
	ops, err := Parse(script)
	if err != nil {
		return NonStandard, nil, 0
	}

	if p, ok := matchPubKey(ops); ok {
		return PubKey, p, 0
	}
	if p, ok := matchPubKeyHash(ops); ok {
		return PubKeyHash, p, 0
	}
	if p, ok := matchScriptHash(ops); ok {
		return ScriptHash, p, 0
	}
	if p, threshold, ok := matchMultiSig(ops); ok {
		return MultiSig, p, threshold
	}
	if p, ok := matchWitnessV0PubKeyHash(ops); ok {
		return WitnessV0PubKeyHash, p, 0
	}
	if p, ok := matchWitnessV0ScriptHash(ops); ok {
		return WitnessV0ScriptHash, p, 0
	}
	if p, ok := matchNullData(ops); ok {
		return NullData, p, 0
	}
	return NonStandard, nil, 0
}

func matchPubKey(ops []ParsedOp) ([]byte, bool) {
	if len(ops) != 2 || ops[1].Opcode != OP_CHECKSIG {
		return nil, false
	}
	pub := ops[0].Data
	if len(pub) != 33 && len(pub) != 65 {
		return nil, false
	}
	return pub, true
}

func matchPubKeyHash(ops []ParsedOp) ([]byte, bool) {
	if len(ops) != 5 {
		return nil, false
	}
	if ops[0].Opcode != OP_DUP || ops[1].Opcode != OP_HASH160 ||
		ops[3].Opcode != OP_EQUALVERIFY || ops[4].Opcode != OP_CHECKSIG {
		return nil, false
	}
	if len(ops[2].Data) != 20 {
		return nil, false
	}
	return ops[2].Data, true
}

func matchScriptHash(ops []ParsedOp) ([]byte, bool) {
	if len(ops) != 3 {
		return nil, false
	}
	if ops[0].Opcode != OP_HASH160 || ops[2].Opcode != OP_EQUAL {
		return nil, false
	}
	if len(ops[1].Data) != 20 {
		return nil, false
	}
	return ops[1].Data, true
}

func matchMultiSig(ops []ParsedOp) ([]byte, int, bool) {
	if len(ops) < 4 {
		return nil, 0, false
	}
	if ops[len(ops)-1].Opcode != OP_CHECKMULTISIG {
		return nil, 0, false
	}
	m, ok := asSmallInt(ops[0].Opcode)
	if !ok || m < 1 || m > 16 {
		return nil, 0, false
	}
	n, ok := asSmallInt(ops[len(ops)-2].Opcode)
	if !ok || n < m || n > 16 {
		return nil, 0, false
	}
	if len(ops)-3 != n {
		return nil, 0, false
	}

	var payload []byte
	for i := 1; i <= n; i++ {
		pub := ops[i].Data
		if len(pub) != 33 && len(pub) != 65 {
			return nil, 0, false
		}
		payload = append(payload, pub...)
	}
	return payload, m, true
}

func matchWitnessV0PubKeyHash(ops []ParsedOp) ([]byte, bool) {
	if len(ops) != 2 || ops[0].Opcode != OP_0 {
		return nil, false
	}
	if len(ops[1].Data) != 20 {
		return nil, false
	}
	return ops[1].Data, true
}

func matchWitnessV0ScriptHash(ops []ParsedOp) ([]byte, bool) {
	if len(ops) != 2 || ops[0].Opcode != OP_0 {
		return nil, false
	}
	if len(ops[1].Data) != 32 {
		return nil, false
	}
	return ops[1].Data, true
}

func matchNullData(ops []ParsedOp) ([]byte, bool) {
	if len(ops) != 2 || ops[0].Opcode != OP_RETURN {
		return nil, false
	}
	if len(ops[1].Data) > 80 {
		return nil, false
	}
	return ops[1].Data, true
}

// P2PK builds a pay-to-pubkey scriptPubKey.
func P2PK(pubKey []byte) ([]byte, error) {
	if len(pubKey) != 33 && len(pubKey) != 65 {
		return nil, bcerr.Valuef("p2pk: invalid public key length %d", len(pubKey))
	}
	return NewScriptBuilder().AddData(pubKey).AddOp(OP_CHECKSIG).Script()
}

// P2PKH builds a pay-to-pubkey-hash scriptPubKey from a 20-byte hash160.
func P2PKH(hash160 []byte) ([]byte, error) {
	if len(hash160) != 20 {
		return nil, bcerr.Valuef("p2pkh: hash must be 20 bytes, got %d", len(hash160))
	}
	return NewScriptBuilder().
		AddOp(OP_DUP).
		AddOp(OP_HASH160).
		AddData(hash160).
		AddOp(OP_EQUALVERIFY).
		AddOp(OP_CHECKSIG).
		Script()
}

// P2SH builds a pay-to-script-hash scriptPubKey from a 20-byte hash160.
func P2SH(hash160 []byte) ([]byte, error) {
	if len(hash160) != 20 {
		return nil, bcerr.Valuef("p2sh: hash must be 20 bytes, got %d", len(hash160))
	}
	return NewScriptBuilder().
		AddOp(OP_HASH160).
		AddData(hash160).
		AddOp(OP_EQUAL).
		Script()
}

// P2MS builds an m-of-n bare multisig scriptPubKey. If sortPubKeys is
// true, the keys are ordered lexicographically per BIP-67 before being
// embedded.
func P2MS(m int, pubKeys [][]byte, sortPubKeys bool) ([]byte, error) {
	n := len(pubKeys)
	if m < 1 || n < 1 || m > n || n > 16 {
		return nil, bcerr.Valuef("p2ms: invalid threshold %d of %d", m, n)
	}
	for _, pub := range pubKeys {
		if len(pub) != 33 && len(pub) != 65 {
			return nil, bcerr.Valuef("p2ms: invalid public key length %d", len(pub))
		}
	}

	keys := pubKeys
	if sortPubKeys {
		keys = SortPubKeysBIP67(pubKeys)
	}

	b := NewScriptBuilder().AddInt64(int64(m))
	for _, pub := range keys {
		b.AddData(pub)
	}
	b.AddInt64(int64(n)).AddOp(OP_CHECKMULTISIG)
	return b.Script()
}

// SortPubKeysBIP67 returns a copy of pubKeys sorted lexicographically
// by their serialized bytes, per BIP-67.
func SortPubKeysBIP67(pubKeys [][]byte) [][]byte {
	sorted := make([][]byte, len(pubKeys))
	copy(sorted, pubKeys)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// P2WPKH builds a version-0 witness pubkey-hash scriptPubKey.
func P2WPKH(hash160 []byte) ([]byte, error) {
	if len(hash160) != 20 {
		return nil, bcerr.Valuef("p2wpkh: hash must be 20 bytes, got %d", len(hash160))
	}
	return NewScriptBuilder().AddOp(OP_0).AddData(hash160).Script()
}

// P2WSH builds a version-0 witness script-hash scriptPubKey.
func P2WSH(hash256 []byte) ([]byte, error) {
	if len(hash256) != 32 {
		return nil, bcerr.Valuef("p2wsh: hash must be 32 bytes, got %d", len(hash256))
	}
	return NewScriptBuilder().AddOp(OP_0).AddData(hash256).Script()
}

// NullDataScript builds an OP_RETURN scriptPubKey carrying up to 80
// bytes of arbitrary data.
func NullDataScript(data []byte) ([]byte, error) {
	if len(data) > 80 {
		return nil, bcerr.Valuef("nulldata: payload exceeds 80 bytes: %d", len(data))
	}
	return NewScriptBuilder().AddOp(OP_RETURN).AddData(data).Script()
}
