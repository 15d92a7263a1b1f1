// Copyright (c) 2025 The btccore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/ledgerforge/btccore/bcerr"

// ParsedOp is a single decoded script element: an opcode together with
// any data it pushed.
type ParsedOp struct {
	Opcode byte
	Data   []byte
}

// Parse decodes a script into its sequence of opcodes/pushes. It fails
// on a push whose declared length runs past the end of the script.
func Parse(script []byte) ([]ParsedOp, error) {
	var ops []ParsedOp
	i := 0
	for i < len(script) {
		op := script[i]
		i++

		switch {
		case op >= 1 && op <= 75:
			end := i + int(op)
			if end > len(script) {
				return nil, bcerr.Valuef("script: push of %d bytes runs past end at offset %d", op, i)
			}
			ops = append(ops, ParsedOp{Opcode: op, Data: script[i:end]})
			i = end

		case op == OP_PUSHDATA1:
			if i+1 > len(script) {
				return nil, bcerr.Valuef("script: truncated OP_PUSHDATA1 length")
			}
			n := int(script[i])
			i++
			end := i + n
			if end > len(script) {
				return nil, bcerr.Valuef("script: OP_PUSHDATA1 push of %d bytes runs past end", n)
			}
			ops = append(ops, ParsedOp{Opcode: op, Data: script[i:end]})
			i = end

		case op == OP_PUSHDATA2:
			if i+2 > len(script) {
				return nil, bcerr.Valuef("script: truncated OP_PUSHDATA2 length")
			}
			n := int(script[i]) | int(script[i+1])<<8
			i += 2
			end := i + n
			if end > len(script) {
				return nil, bcerr.Valuef("script: OP_PUSHDATA2 push of %d bytes runs past end", n)
			}
			ops = append(ops, ParsedOp{Opcode: op, Data: script[i:end]})
			i = end

		case op == OP_PUSHDATA4:
			if i+4 > len(script) {
				return nil, bcerr.Valuef("script: truncated OP_PUSHDATA4 length")
			}
			n := int(script[i]) | int(script[i+1])<<8 | int(script[i+2])<<16 | int(script[i+3])<<24
			i += 4
			end := i + n
			if end > len(script) || end < i {
				return nil, bcerr.Valuef("script: OP_PUSHDATA4 push of %d bytes runs past end", n)
			}
			ops = append(ops, ParsedOp{Opcode: op, Data: script[i:end]})
			i = end

		default:
			ops = append(ops, ParsedOp{Opcode: op})
		}
	}
	return ops, nil
}

// Disasm renders a script as a human-readable token sequence, for
// debugging and logging. Opcodes that do not have a reverse mnemonic
// are rendered by numeric value.
func Disasm(script []byte) (string, error) {
	ops, err := Parse(script)
	if err != nil {
		return "", err
	}
	names := reverseOpcodeNames()

	out := ""
	for i, op := range ops {
		if i > 0 {
			out += " "
		}
		if op.Data != nil || op.Opcode == OP_0 {
			if op.Data == nil {
				out += "0"
			} else {
				out += hexString(op.Data)
			}
			continue
		}
		if name, ok := names[op.Opcode]; ok {
			out += name
			continue
		}
		out += hexString([]byte{op.Opcode})
	}
	return out, nil
}

func reverseOpcodeNames() map[byte]string {
	rev := make(map[byte]string, len(opcodeNames))
	for name, op := range opcodeNames {
		if _, ok := rev[op]; !ok {
			rev[op] = name
		}
	}
	return rev
}

const hexDigits = "0123456789abcdef"

func hexString(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}
