// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amount converts between satoshi counts and decimal BTC
// strings without ever routing the value through binary floating
// point, so no representable value is ever rounded.
package amount

import (
	"math/big"
	"strings"

	"github.com/ledgerforge/btccore/bcerr"
)

// MaxSatoshi is the maximum meaningful satoshi count (20,999,999.9769 BTC
// in satoshis, the Bitcoin supply cap).
const MaxSatoshi int64 = 2_099_999_997_690_000

// MaxBitcoin is MaxSatoshi expressed in decimal BTC, kept as an exact
// decimal string since this package never represents an amount in binary
// floating point.
const MaxBitcoin = "20999999.9769"

const satsPerBTC = 100_000_000

// SatsFromBTC parses a decimal BTC string (e.g. "1.5", "-0.00000001")
// and returns the exact number of satoshis it represents. It fails if
// the string has more than 8 fractional digits, or if the resulting
// magnitude exceeds MaxBitcoin.
func SatsFromBTC(x string) (int64, error) {
	x = strings.TrimSpace(x)
	if x == "" {
		return 0, bcerr.Valuef("invalid BTC amount: empty string")
	}

	neg := false
	s := x
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, bcerr.Valuef("invalid BTC amount %q: no digits", x)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 8 {
		return 0, bcerr.Valuef("invalid BTC amount %q: too many decimals", x)
	}
	for _, c := range intPart + fracPart {
		if c < '0' || c > '9' {
			return 0, bcerr.Valuef("invalid BTC amount %q: not a decimal number", x)
		}
	}

	fracPart += strings.Repeat("0", 8-len(fracPart))

	whole, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return 0, bcerr.Valuef("invalid BTC amount %q", x)
	}
	frac, ok := new(big.Int).SetString(fracPart, 10)
	if !ok {
		return 0, bcerr.Valuef("invalid BTC amount %q", x)
	}

	sats := new(big.Int).Mul(whole, big.NewInt(satsPerBTC))
	sats.Add(sats, frac)
	if neg {
		sats.Neg(sats)
	}

	if !sats.IsInt64() {
		return 0, bcerr.Valuef("invalid BTC amount %q: out of range", x)
	}
	n := sats.Int64()
	if n > MaxSatoshi || n < -MaxSatoshi {
		return 0, bcerr.Valuef("invalid BTC amount %q: exceeds max supply", x)
	}
	return n, nil
}

// BTCFromSats renders a satoshi count as a canonical decimal BTC
// string with no trailing fractional zeros (and no trailing '.'
// when the fractional part is entirely zero). It fails if the
// magnitude exceeds MaxSatoshi.
func BTCFromSats(n int64) (string, error) {
	if n > MaxSatoshi || n < -MaxSatoshi {
		return "", bcerr.Valuef("invalid satoshi amount %d: exceeds max supply", n)
	}

	neg := n < 0
	abs := n
	if neg {
		abs = -n
	}

	whole := abs / satsPerBTC
	frac := abs % satsPerBTC

	fracStr := ""
	if frac != 0 {
		fracStr = trimTrailingZeros(padLeft(frac, 8))
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(itoa(whole))
	if fracStr != "" {
		sb.WriteByte('.')
		sb.WriteString(fracStr)
	}
	return sb.String(), nil
}

func padLeft(n int64, width int) string {
	s := itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func trimTrailingZeros(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	return s[:i]
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
