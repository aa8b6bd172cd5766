/*
 * UM - Instruction-stream builders for tests.
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

// Package umtest builds canonical instruction streams for unit tests, the
// Go counterpart of the original lab's umlab.c generator. Each function
// wraps word.EncodeThree/EncodeLoadImmediate; a caller assembles a []uint32
// program image directly, or hands it to loader.WriteImage to produce a
// byte-for-byte program file.
package umtest

import "github.com/rcornwell/um/internal/word"

// Reg names a register operand for readability at call sites.
type Reg = uint8

const (
	R0 Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
)

func CondMove(a, b, c Reg) uint32 { return word.EncodeThree(word.CondMove, a, b, c) }
func SegLoad(a, b, c Reg) uint32  { return word.EncodeThree(word.SegLoad, a, b, c) }
func SegStore(a, b, c Reg) uint32 { return word.EncodeThree(word.SegStore, a, b, c) }
func Add(a, b, c Reg) uint32      { return word.EncodeThree(word.Add, a, b, c) }
func Mul(a, b, c Reg) uint32      { return word.EncodeThree(word.Mul, a, b, c) }
func Div(a, b, c Reg) uint32      { return word.EncodeThree(word.Div, a, b, c) }
func Nand(a, b, c Reg) uint32     { return word.EncodeThree(word.Nand, a, b, c) }
func Halt() uint32                { return word.EncodeThree(word.Halt, 0, 0, 0) }
func Map(b, c Reg) uint32         { return word.EncodeThree(word.MapSegment, 0, b, c) }
func Unmap(c Reg) uint32          { return word.EncodeThree(word.UnmapSegment, 0, 0, c) }
func Output(c Reg) uint32         { return word.EncodeThree(word.Output, 0, 0, c) }
func Input(c Reg) uint32          { return word.EncodeThree(word.Input, 0, 0, c) }
func LoadProgram(b, c Reg) uint32 { return word.EncodeThree(word.LoadProgram, 0, b, c) }
func LoadImmediate(a Reg, value uint32) uint32 {
	return word.EncodeLoadImmediate(a, value)
}

// InvalidOpcode returns a word whose top nibble names a reserved,
// always-invalid opcode (14 or 15).
func InvalidOpcode() uint32 {
	return 0xF << 28
}
