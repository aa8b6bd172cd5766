/*
 * UM - Segmented memory.
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

// Package memory implements the Universal Machine's segmented memory: a
// mapping from 32-bit segment identifiers to variable-length word arrays,
// with a freed-identifier pool that a later Map call draws from before
// growing the mapping.
package memory

import "fmt"

// Segment is a length-fixed array of Words, addressable by offset.
type Segment []uint32

// ErrKind distinguishes the memory-error conditions spec.md §7 classifies
// as a single "Memory error" disposition, so callers can report a precise
// message while the executor still treats them uniformly.
type ErrKind int

const (
	ErrUnmappedSegment ErrKind = iota
	ErrOutOfBounds
	ErrUnmapZero
	ErrUnmapNotMapped
)

// Error reports a memory-access or unmap violation.
type Error struct {
	Kind ErrKind
	ID   uint32
	Off  uint32
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnmappedSegment:
		return fmt.Sprintf("memory: segment %d is not mapped", e.ID)
	case ErrOutOfBounds:
		return fmt.Sprintf("memory: offset %d out of bounds in segment %d", e.Off, e.ID)
	case ErrUnmapZero:
		return "memory: cannot unmap segment 0"
	case ErrUnmapNotMapped:
		return fmt.Sprintf("memory: cannot unmap segment %d: not mapped", e.ID)
	default:
		return "memory: error"
	}
}

// Memory owns every live segment and the pool of identifiers available for
// reuse. The zero value is not usable; construct with New.
type Memory struct {
	segs []Segment // dense vector indexed by id; nil entry means unmapped
	free []uint32  // freed ids available for reuse, LIFO (stack discipline)
}

// New returns a Memory with segment0 installed at identifier 0, since
// segment 0 is always mapped while the machine is running.
func New(segment0 Segment) *Memory {
	return &Memory{segs: []Segment{segment0}}
}

// Map allocates a new zero-initialized segment of the given length, reusing
// a freed identifier if one is available, and returns its id.
func (m *Memory) Map(length uint32) uint32 {
	seg := make(Segment, length)

	if n := len(m.free); n > 0 {
		id := m.free[n-1]
		m.free = m.free[:n-1]
		m.segs[id] = seg
		return id
	}

	id := uint32(len(m.segs))
	m.segs = append(m.segs, seg)
	return id
}

// Unmap returns id to the freed pool. The segment's storage is released now
// rather than deferred, one of the two disciplines spec.md §4.3 allows.
func (m *Memory) Unmap(id uint32) error {
	if id == 0 {
		return &Error{Kind: ErrUnmapZero}
	}
	if int(id) >= len(m.segs) || m.segs[id] == nil {
		return &Error{Kind: ErrUnmapNotMapped, ID: id}
	}
	m.segs[id] = nil
	m.free = append(m.free, id)
	return nil
}

func (m *Memory) segment(id uint32) (Segment, error) {
	if int(id) >= len(m.segs) || m.segs[id] == nil {
		return nil, &Error{Kind: ErrUnmappedSegment, ID: id}
	}
	return m.segs[id], nil
}

// LoadWord returns memory[id][offset].
func (m *Memory) LoadWord(id, offset uint32) (uint32, error) {
	seg, err := m.segment(id)
	if err != nil {
		return 0, err
	}
	if int(offset) >= len(seg) {
		return 0, &Error{Kind: ErrOutOfBounds, ID: id, Off: offset}
	}
	return seg[offset], nil
}

// StoreWord writes memory[id][offset].
func (m *Memory) StoreWord(id, offset, value uint32) error {
	seg, err := m.segment(id)
	if err != nil {
		return err
	}
	if int(offset) >= len(seg) {
		return &Error{Kind: ErrOutOfBounds, ID: id, Off: offset}
	}
	seg[offset] = value
	return nil
}

// Duplicate returns a fresh word-wise copy of the segment at id. The caller
// owns the returned segment.
func (m *Memory) Duplicate(id uint32) (Segment, error) {
	seg, err := m.segment(id)
	if err != nil {
		return nil, err
	}
	dup := make(Segment, len(seg))
	copy(dup, seg)
	return dup, nil
}

// ReplaceZero atomically releases the current segment 0 and installs
// newSegment at identifier 0.
func (m *Memory) ReplaceZero(newSegment Segment) {
	m.segs[0] = newSegment
}

// SegmentLength returns the length of segment id. The executor does not call
// it; a Load Program branch target is checked only at the next fetch.
func (m *Memory) SegmentLength(id uint32) (int, error) {
	seg, err := m.segment(id)
	if err != nil {
		return 0, err
	}
	return len(seg), nil
}

// Live reports whether id names a currently mapped segment; exposed for
// tests that assert on the identifier-reuse invariants of spec.md §8.
func (m *Memory) Live(id uint32) bool {
	return int(id) < len(m.segs) && m.segs[id] != nil
}
