/*
 * UM - Instruction disassembler.
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

// Package disasm renders one decoded UM instruction as a single line of
// text, used by the CLI's trace mode and nowhere in the execution path
// itself.
package disasm

import (
	"fmt"
	"strings"

	"github.com/rcornwell/um/internal/word"
	"github.com/rcornwell/um/util/hex"
)

var opName = map[word.Opcode]string{
	word.CondMove:      "CMOV",
	word.SegLoad:       "SLOAD",
	word.SegStore:      "SSTORE",
	word.Add:           "ADD",
	word.Mul:           "MUL",
	word.Div:           "DIV",
	word.Nand:          "NAND",
	word.Halt:          "HALT",
	word.MapSegment:    "MAP",
	word.UnmapSegment:  "UNMAP",
	word.Output:        "OUT",
	word.Input:         "IN",
	word.LoadProgram:   "LOADP",
	word.LoadImmediate: "LV",
}

func formatWord(w uint32) string {
	var str strings.Builder
	hex.FormatWord(&str, []uint32{w})
	return strings.TrimSpace(str.String())
}

// Format renders ins as a single disassembly line, in the style
// "pc: OP r1, r2, r3" or, for Load Immediate, "pc: LV r1, value".
func Format(pc uint32, ins word.Instruction) string {
	if ins.Invalid() {
		return fmt.Sprintf("%s: .INVALID", formatWord(pc))
	}

	name := opName[ins.Op]
	if ins.Op == word.LoadImmediate {
		return fmt.Sprintf("%s: %s r%d, %s", formatWord(pc), name, ins.A, formatWord(ins.Imm))
	}
	return fmt.Sprintf("%s: %s r%d, r%d, r%d", formatWord(pc), name, ins.A, ins.B, ins.C)
}
