/*
 * UM - Word and instruction codec.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package word decodes and encodes the 32-bit instruction words of the
// Universal Machine. A word's top nibble selects one of fourteen opcodes;
// opcodes 0-12 carry three 3-bit register fields, opcode 13 carries a
// register field and a 25-bit immediate.
package word

// Opcode identifies one of the fourteen instruction handlers, or one of the
// two reserved (always-invalid) top-nibble values.
type Opcode uint8

const (
	CondMove Opcode = iota
	SegLoad
	SegStore
	Add
	Mul
	Div
	Nand
	Halt
	MapSegment
	UnmapSegment
	Output
	Input
	LoadProgram
	LoadImmediate
	invalid14
	invalid15
)

// Instruction is a decoded word. For LoadImmediate, B and C are unused and
// Imm holds the 25-bit unsigned immediate. It is a plain value type - decode
// never allocates.
type Instruction struct {
	Op      Opcode
	A, B, C uint8
	Imm     uint32
}

// Invalid reports whether Op names one of the two reserved opcodes (14, 15)
// that spec.md classifies as a decode-level invalid opcode.
func (ins Instruction) Invalid() bool {
	return ins.Op == invalid14 || ins.Op == invalid15
}

// Decode is pure and total over all 32-bit words.
func Decode(w uint32) Instruction {
	op := Opcode(w >> 28)
	if op == LoadImmediate {
		return Instruction{
			Op:  op,
			A:   uint8((w >> 25) & 0x7),
			Imm: w & 0x01ffffff,
		}
	}
	return Instruction{
		Op: op,
		A:  uint8((w >> 6) & 0x7),
		B:  uint8((w >> 3) & 0x7),
		C:  uint8(w & 0x7),
	}
}

// EncodeThree builds a three-register instruction word. Register operands
// are truncated to 3 bits; used only by the test-image generator.
func EncodeThree(op Opcode, a, b, c uint8) uint32 {
	return uint32(op&0xf)<<28 | uint32(a&0x7)<<6 | uint32(b&0x7)<<3 | uint32(c&0x7)
}

// EncodeLoadImmediate builds a Load Immediate instruction word. value is
// truncated to 25 bits; used only by the test-image generator.
func EncodeLoadImmediate(a uint8, value uint32) uint32 {
	return uint32(LoadImmediate)<<28 | uint32(a&0x7)<<25 | (value & 0x01ffffff)
}
