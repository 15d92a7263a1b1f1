// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/rand"
	"math/big"

	"github.com/ledgerforge/btccore/base58"
	"github.com/ledgerforge/btccore/chaincfg"
)

// PrivateKey is a scalar in [1, n-1] together with a hint for whether
// its corresponding public key should be serialized compressed. It does
// not record a network; EncodeWIF and DecodeWIF take the network
// parameters as an argument.
type PrivateKey struct {
	Curve      *Curve
	D          *big.Int
	Compressed bool
}

// PublicKey is an affine point not equal to infinity, plus the same
// compression hint.
type PublicKey struct {
	Curve      *Curve
	Point      AffinePoint
	Compressed bool
}

// GenerateKey draws a uniformly random private key in [1, n-1] using a
// cryptographically secure source.
func GenerateKey(c *Curve, compressed bool) (*PrivateKey, error) {
	for {
		buf := make([]byte, c.NSize)
		if _, err := rand.Read(buf); err != nil {
			return nil, errRuntimef("generate key: %v", err)
		}
		d := new(big.Int).SetBytes(buf)
		if d.Sign() == 0 || d.Cmp(c.N) >= 0 {
			continue
		}
		return &PrivateKey{Curve: c, D: d, Compressed: compressed}, nil
	}
}

// PubKey derives the public key for the private key by scalar-multiplying
// the generator.
func (priv *PrivateKey) PubKey() *PublicKey {
	pt := priv.Curve.ScalarBaseMult(priv.D)
	return &PublicKey{Curve: priv.Curve, Point: pt, Compressed: priv.Compressed}
}

// Serialize returns the private key's nsize-byte big-endian scalar
// encoding.
func (priv *PrivateKey) Serialize() ([]byte, error) {
	return priv.Curve.EncodeScalar(priv.D)
}

// Serialize returns the public key's SEC 1 encoding, compressed or
// uncompressed per the key's hint.
func (pub *PublicKey) Serialize() ([]byte, error) {
	return pub.Curve.EncodePoint(pub.Point, pub.Compressed)
}

// ParsePubKey decodes a SEC 1 encoded public key, inferring the
// compression hint from the encoding's prefix byte.
func ParsePubKey(c *Curve, buf []byte) (*PublicKey, error) {
	pt, err := c.DecodePoint(buf)
	if err != nil {
		return nil, err
	}
	compressed := len(buf) > 0 && (buf[0] == 0x02 || buf[0] == 0x03)
	return &PublicKey{Curve: c, Point: pt, Compressed: compressed}, nil
}

// EncodeWIF returns the Wallet Import Format encoding of priv: a
// Base58Check string over the network's PrivateKeyID version byte, the
// scalar bytes, and a trailing 0x01 suffix when the key is marked
// compressed.
func EncodeWIF(priv *PrivateKey, params *chaincfg.Params) (string, error) {
	scalar, err := priv.Serialize()
	if err != nil {
		return "", err
	}
	payload := scalar
	if priv.Compressed {
		payload = append(append([]byte{}, scalar...), 0x01)
	}
	return base58.CheckEncode(payload, params.PrivateKeyID), nil
}

// DecodeWIF parses a Wallet Import Format string, verifying it was
// minted with the given network's PrivateKeyID.
func DecodeWIF(c *Curve, wif string, params *chaincfg.Params) (*PrivateKey, error) {
	version, payload, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, err
	}
	if version != params.PrivateKeyID {
		return nil, errValuef("wif: version byte 0x%02x does not match network", version)
	}

	compressed := false
	scalarBytes := payload
	switch len(payload) {
	case c.NSize:
	case c.NSize + 1:
		if payload[c.NSize] != 0x01 {
			return nil, errValuef("wif: invalid compression suffix 0x%02x", payload[c.NSize])
		}
		compressed = true
		scalarBytes = payload[:c.NSize]
	default:
		return nil, errValuef("wif: invalid payload length %d", len(payload))
	}

	d, err := c.DecodeScalar(scalarBytes)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{Curve: c, D: d, Compressed: compressed}, nil
}
