// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectPush(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	script := append([]byte{byte(len(data))}, data...)
	ops, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, data, ops[0].Data)
}

func TestParsePushdata1(t *testing.T) {
	data := make([]byte, 100)
	script, err := NewScriptBuilder().AddData(data).Script()
	require.NoError(t, err)
	ops, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OP_PUSHDATA1, int(ops[0].Opcode))
	assert.Equal(t, data, ops[0].Data)
}

func TestParsePushdata2(t *testing.T) {
	data := make([]byte, 300)
	script, err := NewScriptBuilder().AddData(data).Script()
	require.NoError(t, err)
	ops, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, data, ops[0].Data)
}

func TestParseRejectsTruncatedPush(t *testing.T) {
	_, err := Parse([]byte{0x05, 0x01, 0x02})
	assert.Error(t, err)
}

func TestParseRejectsTruncatedPushdata1Length(t *testing.T) {
	_, err := Parse([]byte{OP_PUSHDATA1})
	assert.Error(t, err)
}

func TestParseMixedOpcodesAndPushes(t *testing.T) {
	script, err := P2PKH(make([]byte, 20))
	require.NoError(t, err)
	ops, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, ops, 5)
	assert.Equal(t, byte(OP_DUP), ops[0].Opcode)
	assert.Equal(t, byte(OP_HASH160), ops[1].Opcode)
	assert.Equal(t, byte(OP_EQUALVERIFY), ops[3].Opcode)
	assert.Equal(t, byte(OP_CHECKSIG), ops[4].Opcode)
}

func TestDisasmRendersOpcodesAndData(t *testing.T) {
	script, err := P2SH(make([]byte, 20))
	require.NoError(t, err)
	out, err := Disasm(script)
	require.NoError(t, err)
	assert.Contains(t, out, "OP_HASH160")
	assert.Contains(t, out, "OP_EQUAL")
}

func TestDisasmRendersOP0As0(t *testing.T) {
	script, err := NewScriptBuilder().AddOp(OP_0).Script()
	require.NoError(t, err)
	out, err := Disasm(script)
	require.NoError(t, err)
	assert.Equal(t, "0", out)
}
