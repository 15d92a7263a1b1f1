// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "github.com/ledgerforge/btccore/bcerr"

var (
	errValuef   = bcerr.Valuef
	errTypef    = bcerr.Typef
	errRuntimef = bcerr.Runtimef
)
