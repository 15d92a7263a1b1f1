// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/ledgerforge/btccore/bcerr"
)

const maxScriptSize = 10000

// ScriptBuilder assembles a script from a sequence of tokens: opcodes,
// small integers, and data pushes. Each AddX call records the first
// error encountered so call chains can be written fluently and checked
// once at Script().
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns an empty ScriptBuilder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{script: make([]byte, 0, 16)}
}

// AddOp appends a single opcode byte given by its raw value; AddOpName
// takes a mnemonic such as "OP_DUP".
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+1 > maxScriptSize {
		b.err = bcerr.Valuef("script exceeds maximum size %d", maxScriptSize)
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddOpName appends the opcode identified by its mnemonic.
func (b *ScriptBuilder) AddOpName(name string) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	op, ok := opcodeNames[name]
	if !ok {
		b.err = bcerr.Valuef("unknown opcode name %q", name)
		return b
	}
	return b.AddOp(op)
}

// AddInt64 appends the small integer n using OP_1NEGATE/OP_0/OP_1..OP_16
// when n is in −1…16, or a minimal data push otherwise.
func (b *ScriptBuilder) AddInt64(n int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if op, ok := smallIntOpcode(int(n)); ok {
		return b.AddOp(op)
	}
	return b.AddData(scriptNum(n))
}

// AddData appends data using the canonical minimal push opcode for its
// length: direct OP_PUSHBYTES_n for 0-75 bytes, OP_PUSHDATA1/2/4 for
// longer data selecting the shortest length-prefix form that fits.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(b.script)+len(data)+5 > maxScriptSize {
		b.err = bcerr.Valuef("script exceeds maximum size %d", maxScriptSize)
		return b
	}

	n := len(data)
	switch {
	case n == 0:
		b.script = append(b.script, OP_0)
	case n <= 75:
		b.script = append(b.script, byte(n))
	case n <= 0xff:
		b.script = append(b.script, OP_PUSHDATA1, byte(n))
	case n <= 0xffff:
		b.script = append(b.script, OP_PUSHDATA2, byte(n), byte(n>>8))
	default:
		b.script = append(b.script, OP_PUSHDATA4,
			byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}
	b.script = append(b.script, data...)
	return b
}

// Script returns the assembled script, or the first error recorded
// during building.
func (b *ScriptBuilder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.script, nil
}

// scriptNum encodes n as a minimal little-endian byte string with an
// explicit sign bit in the high bit of the last byte, per Bitcoin's
// script number encoding.
func scriptNum(n int64) []byte {
	if n == 0 {
		return nil
	}

	neg := n < 0
	abs := n
	if neg {
		abs = -n
	}

	var result []byte
	for abs > 0 {
		result = append(result, byte(abs&0xff))
		abs >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		if neg {
			result = append(result, 0x80)
		} else {
			result = append(result, 0x00)
		}
	} else if neg {
		result[len(result)-1] |= 0x80
	}
	return result
}
