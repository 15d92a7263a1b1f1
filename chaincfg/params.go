// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network parameters that distinguish
// addresses and keys of one Bitcoin-style network from another: the
// human-readable Bech32 prefix and the Base58Check version bytes.
package chaincfg

import (
	"errors"
	"strings"
)

// Params defines the address and key encoding parameters of a network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Bech32HRPSegwit is the human-readable part for Bech32/Bech32m
	// encoded segwit addresses, as defined in BIP 173.
	Bech32HRPSegwit string

	// PubKeyHashAddrID is the first byte of a P2PKH address.
	PubKeyHashAddrID byte
	// ScriptHashAddrID is the first byte of a P2SH address.
	ScriptHashAddrID byte
	// PrivateKeyID is the first byte of a WIF private key.
	PrivateKeyID byte
	// WitnessPubKeyHashAddrID is the first byte of a P2WPKH address
	// (unused by Bech32 addresses, retained for parity with the
	// Base58Check-only legacy-address fallback).
	WitnessPubKeyHashAddrID byte
	// WitnessScriptHashAddrID is the first byte of a P2WSH address.
	WitnessScriptHashAddrID byte
}

// MainNetParams defines the network parameters for the Bitcoin main
// network.
var MainNetParams = Params{
	Name:            "mainnet",
	Bech32HRPSegwit: "bc",

	PubKeyHashAddrID:        0x00,
	ScriptHashAddrID:        0x05,
	PrivateKeyID:            0x80,
	WitnessPubKeyHashAddrID: 0x06,
	WitnessScriptHashAddrID: 0x0A,
}

// TestNet3Params defines the network parameters for the Bitcoin test
// network (version 3).
var TestNet3Params = Params{
	Name:            "testnet3",
	Bech32HRPSegwit: "tb",

	PubKeyHashAddrID:        0x6F,
	ScriptHashAddrID:        0xC4,
	PrivateKeyID:            0xEF,
	WitnessPubKeyHashAddrID: 0x03,
	WitnessScriptHashAddrID: 0x28,
}

// RegressionNetParams defines the network parameters for the regression
// test network.
var RegressionNetParams = Params{
	Name:            "regtest",
	Bech32HRPSegwit: "bcrt",

	PubKeyHashAddrID:        0x6F,
	ScriptHashAddrID:        0xC4,
	PrivateKeyID:            0xEF,
	WitnessPubKeyHashAddrID: 0x03,
	WitnessScriptHashAddrID: 0x28,
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a
	// standard network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")
)

var (
	registeredNets       = make(map[string]struct{})
	pubKeyHashAddrIDs    = make(map[byte]struct{})
	scriptHashAddrIDs    = make(map[byte]struct{})
	bech32SegwitPrefixes = make(map[string]struct{})
)

// Register registers the network parameters for a network. This may
// error with ErrDuplicateNet if the network is already registered
// (either due to a previous Register call, or the network being one of
// the default networks).
//
// Network parameters should be registered into this package by a main
// package as early as possible. Then, library packages may look up
// networks or network parameters based on inputs and work regardless
// of the network being standard or not.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Name] = struct{}{}
	pubKeyHashAddrIDs[params.PubKeyHashAddrID] = struct{}{}
	scriptHashAddrIDs[params.ScriptHashAddrID] = struct{}{}

	// A valid Bech32 encoded segwit address always has as prefix the
	// human-readable part for the given net followed by '1'.
	bech32SegwitPrefixes[params.Bech32HRPSegwit+"1"] = struct{}{}
	return nil
}

// mustRegister performs the same function as Register except it panics
// if there is an error. This should only be called from package init
// functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("chaincfg: failed to register network: " + err.Error())
	}
}

// IsPubKeyHashAddrID returns whether the id is an identifier known to
// prefix a pay-to-pubkey-hash address on any default or registered
// network. It is up to the caller to check both this and
// IsScriptHashAddrID and decide whether an address is a pubkey hash
// address, script hash address, neither, or undeterminable (if both
// return true).
func IsPubKeyHashAddrID(id byte) bool {
	_, ok := pubKeyHashAddrIDs[id]
	return ok
}

// IsScriptHashAddrID returns whether the id is an identifier known to
// prefix a pay-to-script-hash address on any default or registered
// network.
func IsScriptHashAddrID(id byte) bool {
	_, ok := scriptHashAddrIDs[id]
	return ok
}

// IsBech32SegwitPrefix returns whether the prefix is a known prefix for
// segwit addresses on any default or registered network.
func IsBech32SegwitPrefix(prefix string) bool {
	prefix = strings.ToLower(prefix)
	_, ok := bech32SegwitPrefixes[prefix]
	return ok
}

func init() {
	mustRegister(&MainNetParams)
	mustRegister(&TestNet3Params)
	mustRegister(&RegressionNetParams)
}
