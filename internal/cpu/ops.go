/*
 * UM - Opcode handlers.
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

package cpu

import (
	"fmt"

	"github.com/rcornwell/um/internal/word"
)

func opCondMove(m *Machine, ins word.Instruction) error {
	if m.Regs.Get(ins.C) != 0 {
		m.Regs.Set(ins.A, m.Regs.Get(ins.B))
	}
	return nil
}

func opSegLoad(m *Machine, ins word.Instruction) error {
	v, err := m.Mem.LoadWord(m.Regs.Get(ins.B), m.Regs.Get(ins.C))
	if err != nil {
		return err
	}
	m.Regs.Set(ins.A, v)
	return nil
}

func opSegStore(m *Machine, ins word.Instruction) error {
	return m.Mem.StoreWord(m.Regs.Get(ins.A), m.Regs.Get(ins.B), m.Regs.Get(ins.C))
}

func opAdd(m *Machine, ins word.Instruction) error {
	m.Regs.Set(ins.A, m.Regs.Get(ins.B)+m.Regs.Get(ins.C))
	return nil
}

func opMul(m *Machine, ins word.Instruction) error {
	m.Regs.Set(ins.A, m.Regs.Get(ins.B)*m.Regs.Get(ins.C))
	return nil
}

func opDiv(m *Machine, ins word.Instruction) error {
	rc := m.Regs.Get(ins.C)
	if rc == 0 {
		return newError(ErrDivideByZero, "cpu: divide by zero")
	}
	m.Regs.Set(ins.A, m.Regs.Get(ins.B)/rc)
	return nil
}

func opNand(m *Machine, ins word.Instruction) error {
	m.Regs.Set(ins.A, ^(m.Regs.Get(ins.B) & m.Regs.Get(ins.C)))
	return nil
}

func opHalt(_ *Machine, _ word.Instruction) error {
	return errHalt
}

func opMapSegment(m *Machine, ins word.Instruction) error {
	id := m.Mem.Map(m.Regs.Get(ins.C))
	m.Regs.Set(ins.B, id)
	return nil
}

func opUnmapSegment(m *Machine, ins word.Instruction) error {
	return m.Mem.Unmap(m.Regs.Get(ins.C))
}

func opOutput(m *Machine, ins word.Instruction) error {
	v := m.Regs.Get(ins.C)
	if v > 255 {
		return newError(ErrOutputOverflow, fmt.Sprintf("cpu: output value %d exceeds a byte", v))
	}
	_, err := m.Stdout.Write([]byte{byte(v)})
	return err
}

// eofSentinel is the value Input leaves in rC once stdin is exhausted.
const eofSentinel = 0xFFFFFFFF

func opInput(m *Machine, ins word.Instruction) error {
	var b [1]byte
	n, _ := m.Stdin.Read(b[:])
	// A Reader may legitimately return a final byte together with io.EOF
	// (n=1, err=io.EOF); the byte it read still belongs in rC, and only a
	// read that produced nothing falls back to the sentinel.
	if n > 0 {
		m.Regs.Set(ins.C, uint32(b[0]))
		return nil
	}
	m.Regs.Set(ins.C, eofSentinel)
	return nil
}

func opLoadProgram(m *Machine, ins word.Instruction) error {
	rb := m.Regs.Get(ins.B)
	rc := m.Regs.Get(ins.C)

	if rb != 0 {
		dup, err := m.Mem.Duplicate(rb)
		if err != nil {
			return err
		}
		m.Mem.ReplaceZero(dup)
	}

	m.PC = rc
	return nil
}

func opLoadImmediate(m *Machine, ins word.Instruction) error {
	m.Regs.Set(ins.A, ins.Imm)
	return nil
}
