// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addresses implements the Base58Check and Bech32/Bech32m
// address encodings, and the round trip between an address string and
// the scriptPubKey it represents.
package addresses

import (
	"github.com/ledgerforge/btccore/base58"
	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/bech32"
	"github.com/ledgerforge/btccore/chaincfg"
	"github.com/ledgerforge/btccore/txscript"
)

// Kind identifies the address template.
type Kind int

const (
	PubKeyHash Kind = iota
	ScriptHash
	WitnessPubKeyHash
	WitnessScriptHash
)

func (k Kind) String() string {
	switch k {
	case PubKeyHash:
		return "p2pkh"
	case ScriptHash:
		return "p2sh"
	case WitnessPubKeyHash:
		return "p2wpkh"
	case WitnessScriptHash:
		return "p2wsh"
	default:
		return "unknown"
	}
}

// Address is a decoded Bitcoin address: its template kind, the network
// it belongs to, and its payload (a 20-byte hash for p2pkh/p2sh/p2wpkh,
// a 32-byte hash for p2wsh).
type Address struct {
	Kind   Kind
	Params *chaincfg.Params
	Hash   []byte
}

// EncodePubKeyHash returns the Base58Check P2PKH address for a 20-byte
// hash160.
func EncodePubKeyHash(hash160 []byte, params *chaincfg.Params) (string, error) {
	if len(hash160) != 20 {
		return "", bcerr.Valuef("address: pubkey hash must be 20 bytes, got %d", len(hash160))
	}
	return base58.CheckEncode(hash160, params.PubKeyHashAddrID), nil
}

// EncodeScriptHash returns the Base58Check P2SH address for a 20-byte
// hash160.
func EncodeScriptHash(hash160 []byte, params *chaincfg.Params) (string, error) {
	if len(hash160) != 20 {
		return "", bcerr.Valuef("address: script hash must be 20 bytes, got %d", len(hash160))
	}
	return base58.CheckEncode(hash160, params.ScriptHashAddrID), nil
}

// EncodeWitness returns the Bech32 (version 0) or Bech32m (version ≥ 1)
// segwit address for a witness program.
func EncodeWitness(version byte, program []byte, params *chaincfg.Params) (string, error) {
	if version > 16 {
		return "", bcerr.Valuef("address: witness version must be 0-16, got %d", version)
	}
	if len(program) < 2 || len(program) > 40 {
		return "", bcerr.Valuef("address: witness program must be 2-40 bytes, got %d", len(program))
	}
	if version == 0 && len(program) != 20 && len(program) != 32 {
		return "", bcerr.Valuef("address: witness v0 program must be 20 or 32 bytes, got %d", len(program))
	}

	conv, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := make([]byte, 0, 1+len(conv))
	data = append(data, version)
	data = append(data, conv...)

	enc := bech32.Bech32
	if version != 0 {
		enc = bech32.Bech32m
	}
	return bech32.Encode(params.Bech32HRPSegwit, data, enc)
}

// Decode parses an address string for the given network, trying
// Base58Check first and then Bech32/Bech32m.
func Decode(addr string, params *chaincfg.Params) (*Address, error) {
	if version, payload, err := base58.CheckDecode(addr); err == nil {
		switch version {
		case params.PubKeyHashAddrID:
			if len(payload) != 20 {
				return nil, bcerr.Valuef("address: decoded pubkey hash has wrong length %d", len(payload))
			}
			return &Address{Kind: PubKeyHash, Params: params, Hash: payload}, nil
		case params.ScriptHashAddrID:
			if len(payload) != 20 {
				return nil, bcerr.Valuef("address: decoded script hash has wrong length %d", len(payload))
			}
			return &Address{Kind: ScriptHash, Params: params, Hash: payload}, nil
		default:
			return nil, bcerr.Valuef("address: unrecognized version byte 0x%02x", version)
		}
	}

	version, program, err := decodeWitness(addr, params)
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, bcerr.Valuef("address: unsupported witness version %d", version)
	}
	switch len(program) {
	case 20:
		return &Address{Kind: WitnessPubKeyHash, Params: params, Hash: program}, nil
	case 32:
		return &Address{Kind: WitnessScriptHash, Params: params, Hash: program}, nil
	default:
		return nil, bcerr.Valuef("address: witness program has unsupported length %d", len(program))
	}
}

func decodeWitness(addr string, params *chaincfg.Params) (version byte, program []byte, err error) {
	enc := bech32.Bech32
	hrp, data, err := bech32.Decode(addr, enc)
	if err != nil {
		enc = bech32.Bech32m
		hrp, data, err = bech32.Decode(addr, enc)
		if err != nil {
			return 0, nil, bcerr.Valuef("address: not a valid base58check or bech32 string")
		}
	}
	if hrp != params.Bech32HRPSegwit {
		return 0, nil, bcerr.Valuef("address: hrp %q does not match network %q", hrp, params.Bech32HRPSegwit)
	}
	if len(data) < 1 {
		return 0, nil, bcerr.Valuef("address: empty bech32 data part")
	}
	version = data[0]

	// BIP-350: version 0 programs must carry the original Bech32
	// checksum, and versions 1+ must carry Bech32m. A checksum that
	// validates under the wrong constant is rejected, not coerced.
	if version == 0 && enc != bech32.Bech32 {
		return 0, nil, bcerr.Valuef("address: witness v0 requires bech32, not bech32m")
	}
	if version != 0 && enc != bech32.Bech32m {
		return 0, nil, bcerr.Valuef("address: witness v%d requires bech32m", version)
	}

	program, err = bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, err
	}
	return version, program, nil
}

// ScriptPubKeyFromAddress returns the scriptPubKey corresponding to a
// decoded address.
func ScriptPubKeyFromAddress(addr *Address) ([]byte, error) {
	switch addr.Kind {
	case PubKeyHash:
		return txscript.P2PKH(addr.Hash)
	case ScriptHash:
		return txscript.P2SH(addr.Hash)
	case WitnessPubKeyHash:
		return txscript.P2WPKH(addr.Hash)
	case WitnessScriptHash:
		return txscript.P2WSH(addr.Hash)
	default:
		return nil, bcerr.Valuef("address: unknown kind %v", addr.Kind)
	}
}

// AddressFromScriptPubKey classifies a scriptPubKey and, if it is one
// of the address-bearing templates (p2pkh, p2sh, p2wpkh, p2wsh),
// returns its address string. Any other script yields ("", false).
func AddressFromScriptPubKey(script []byte, params *chaincfg.Params) (string, bool) {
	class, payload, _ := txscript.PayloadFromScriptPubKey(script)
	switch class {
	case txscript.PubKeyHash:
		s, err := EncodePubKeyHash(payload, params)
		return s, err == nil
	case txscript.ScriptHash:
		s, err := EncodeScriptHash(payload, params)
		return s, err == nil
	case txscript.WitnessV0PubKeyHash, txscript.WitnessV0ScriptHash:
		s, err := EncodeWitness(0, payload, params)
		return s, err == nil
	default:
		return "", false
	}
}

// String returns the canonical encoded form of the address.
func (a *Address) String() string {
	var s string
	var err error
	switch a.Kind {
	case PubKeyHash:
		s, err = EncodePubKeyHash(a.Hash, a.Params)
	case ScriptHash:
		s, err = EncodeScriptHash(a.Hash, a.Params)
	case WitnessPubKeyHash, WitnessScriptHash:
		s, err = EncodeWitness(0, a.Hash, a.Params)
	}
	if err != nil {
		return ""
	}
	return s
}
