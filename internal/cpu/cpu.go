/*
 * UM - Main CPU instruction fetch and execute.
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

// Package cpu drives the Universal Machine's fetch-decode-dispatch loop:
// it owns the program counter and the register file, and routes each
// decoded instruction to one of fourteen handlers through a dispatch table
// built once at construction, the same shape as a real 256-opcode table
// would take for a richer instruction set.
package cpu

import (
	"errors"
	"io"

	"github.com/rcornwell/um/internal/memory"
	"github.com/rcornwell/um/internal/registers"
	"github.com/rcornwell/um/internal/word"
)

// ErrKind distinguishes the program-error conditions spec.md §7 groups
// under distinct dispositions, all of which are terminal and exit nonzero.
type ErrKind int

const (
	ErrInvalidOpcode ErrKind = iota
	ErrDivideByZero
	ErrOutputOverflow
	ErrPCOutOfRange
)

// MachineError is returned by Run for an invalid opcode, a divide by zero,
// an output overflow or a program counter out of range. Memory errors raised
// by a handler reach the caller as the underlying *memory.Error, and a write
// error from Stdout is returned as it came.
type MachineError struct {
	Kind ErrKind
	msg  string
}

func (e *MachineError) Error() string { return e.msg }

func newError(kind ErrKind, msg string) *MachineError {
	return &MachineError{Kind: kind, msg: msg}
}

// Tracer receives one call per executed instruction, before dispatch. It is
// an ambient, non-semantic hook used for the CLI's -t trace flag; the
// machine's behavior never depends on whether a tracer is installed.
type Tracer func(pc uint32, instr word.Instruction)

// Machine holds the complete state of a running Universal Machine: the
// register file, segmented memory, and program counter. It stores only the
// identifier of the current instruction segment (always 0) and re-reads
// segment 0 from Memory on every fetch, so a Load Program reinstall is
// automatically visible on the next cycle without any cached pointer to
// invalidate.
type Machine struct {
	Regs  registers.File
	Mem   *memory.Memory
	PC    uint32
	table [16]func(*Machine, word.Instruction) error

	// Instructions counts executed instructions; ambient statistics only,
	// never consulted by instruction semantics.
	Instructions uint64

	Stdout io.Writer
	Stdin  io.Reader

	trace Tracer
}

// New constructs a Machine with segment0 installed as segment 0 and the
// program counter at 0.
func New(segment0 memory.Segment, stdin io.Reader, stdout io.Writer) *Machine {
	m := &Machine{
		Mem:    memory.New(segment0),
		Stdin:  stdin,
		Stdout: stdout,
	}
	m.buildTable()
	return m
}

// SetTracer installs (or, with nil, removes) the instruction tracer.
func (m *Machine) SetTracer(t Tracer) {
	m.trace = t
}

func (m *Machine) buildTable() {
	m.table = [16]func(*Machine, word.Instruction) error{
		word.CondMove:      opCondMove,
		word.SegLoad:       opSegLoad,
		word.SegStore:      opSegStore,
		word.Add:           opAdd,
		word.Mul:           opMul,
		word.Div:           opDiv,
		word.Nand:          opNand,
		word.Halt:          opHalt,
		word.MapSegment:    opMapSegment,
		word.UnmapSegment:  opUnmapSegment,
		word.Output:        opOutput,
		word.Input:         opInput,
		word.LoadProgram:   opLoadProgram,
		word.LoadImmediate: opLoadImmediate,
	}
}

// errHalt is returned by opHalt to unwind the Run loop without being
// reported as a program error.
var errHalt = errors.New("halt")

// Run executes instructions until Halt or a program error. It returns nil
// on a clean Halt.
func (m *Machine) Run() error {
	for {
		w, err := m.Mem.LoadWord(0, m.PC)
		if err != nil {
			return newError(ErrPCOutOfRange, "cpu: "+err.Error())
		}

		instr := word.Decode(w)
		if instr.Invalid() {
			return newError(ErrInvalidOpcode, "cpu: invalid opcode at pc")
		}

		if m.trace != nil {
			m.trace(m.PC, instr)
		}

		handler := m.table[instr.Op]
		err = handler(m, instr)
		m.Instructions++

		if err != nil {
			if errors.Is(err, errHalt) {
				return nil
			}
			return err
		}

		// Load Program sets PC explicitly in its handler and must not be
		// post-incremented; every other handler leaves PC for us to bump.
		if instr.Op != word.LoadProgram {
			m.PC++
		}
	}
}
