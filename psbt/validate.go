// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"github.com/ledgerforge/btccore/bcerr"
	"github.com/ledgerforge/btccore/secp256k1"
	"github.com/ledgerforge/btccore/secp256k1/ecdsa"
)

// recognizedSighashTypes are the sighash flags accepted in a
// PsbtInSighashType record's 4-byte little-endian value.
var recognizedSighashTypes = map[uint32]bool{
	0x01: true, // SIGHASH_ALL
	0x02: true, // SIGHASH_NONE
	0x03: true, // SIGHASH_SINGLE
	0x81: true, // SIGHASH_ALL | ANYONECANPAY
	0x82: true, // SIGHASH_NONE | ANYONECANPAY
	0x83: true, // SIGHASH_SINGLE | ANYONECANPAY
}

// ValidateInputMap checks the structural invariants of a single input
// map: at most one of non-witness/witness UTXO, partial-signature
// pubkeys decode to valid curve points, partial-signature values
// DER-decode, sighash flags are recognized, and BIP-32 derivation
// paths are a whole number of 4-byte steps.
func ValidateInputMap(curve *secp256k1.Curve, m []KeyValue) error {
	haveNonWitnessUTXO := false
	haveWitnessUTXO := false

	for _, kv := range m {
		switch kv.KeyType() {
		case PsbtInNonWitnessUTXO:
			haveNonWitnessUTXO = true

		case PsbtInWitnessUTXO:
			haveWitnessUTXO = true

		case PsbtInPartialSig:
			if _, err := secp256k1.ParsePubKey(curve, kv.KeyData()); err != nil {
				return bcerr.Valuef("psbt: partial signature key is not a valid public key: %v", err)
			}
			_, _, hasSighash, err := ecdsa.ParseDERFromScript(curve, kv.Value)
			if err != nil {
				return bcerr.Valuef("psbt: partial signature does not DER-decode: %v", err)
			}
			if !hasSighash {
				return bcerr.Valuef("psbt: partial signature value missing sighash byte")
			}

		case PsbtInSighashType:
			if len(kv.Value) != 4 {
				return bcerr.Valuef("psbt: sighash type value must be 4 bytes, got %d", len(kv.Value))
			}
			flag := uint32(kv.Value[0]) | uint32(kv.Value[1])<<8 | uint32(kv.Value[2])<<16 | uint32(kv.Value[3])<<24
			if !recognizedSighashTypes[flag] {
				return bcerr.Valuef("psbt: unrecognized sighash type 0x%02x", flag)
			}

		case PsbtInBIP32Derivation:
			if _, err := secp256k1.ParsePubKey(curve, kv.KeyData()); err != nil {
				return bcerr.Valuef("psbt: bip32 derivation key is not a valid public key: %v", err)
			}
			if err := validateBIP32Path(kv.Value); err != nil {
				return err
			}
		}
	}

	if haveNonWitnessUTXO && haveWitnessUTXO {
		return bcerr.Valuef("psbt: input has both non-witness and witness utxo")
	}
	return nil
}

// ValidateOutputMap checks the structural invariants of a single
// output map: BIP-32 derivation keys decode to valid curve points and
// their paths are a whole number of 4-byte steps.
func ValidateOutputMap(curve *secp256k1.Curve, m []KeyValue) error {
	for _, kv := range m {
		if kv.KeyType() != PsbtOutBIP32Derivation {
			continue
		}
		if _, err := secp256k1.ParsePubKey(curve, kv.KeyData()); err != nil {
			return bcerr.Valuef("psbt: bip32 derivation key is not a valid public key: %v", err)
		}
		if err := validateBIP32Path(kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the whole packet: the global map carries a parseable
// unsigned transaction whose input and output counts match the packet's
// map counts, and every input and output map passes its own checks.
func (p *Packet) Validate(curve *secp256k1.Curve) error {
	tx, err := p.UnsignedTx()
	if err != nil {
		return err
	}
	if len(p.Inputs) != len(tx.TxIn) {
		return bcerr.Valuef("psbt: %d input maps for %d tx inputs", len(p.Inputs), len(tx.TxIn))
	}
	if len(p.Outputs) != len(tx.TxOut) {
		return bcerr.Valuef("psbt: %d output maps for %d tx outputs", len(p.Outputs), len(tx.TxOut))
	}
	for _, m := range p.Inputs {
		if err := ValidateInputMap(curve, m); err != nil {
			return err
		}
	}
	for _, m := range p.Outputs {
		if err := ValidateOutputMap(curve, m); err != nil {
			return err
		}
	}
	return nil
}

// validateBIP32Path checks that a BIP-32-derivation value is a 4-byte
// master fingerprint followed by a whole number of 4-byte path steps.
func validateBIP32Path(value []byte) error {
	if len(value) < 4 {
		return bcerr.Valuef("psbt: bip32 derivation value shorter than master fingerprint")
	}
	if (len(value)-4)%4 != 0 {
		return bcerr.Valuef("psbt: bip32 derivation path is not a whole number of 4-byte steps")
	}
	return nil
}
