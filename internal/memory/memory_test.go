/*
 * UM memory test cases.
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

package memory

import "testing"

func TestMapZeroInitialized(t *testing.T) {
	m := New(Segment{0})
	id := m.Map(4)
	for off := uint32(0); off < 4; off++ {
		v, err := m.LoadWord(id, off)
		if err != nil {
			t.Fatalf("LoadWord(%d, %d): %v", id, off, err)
		}
		if v != 0 {
			t.Fatalf("segment %d offset %d = %d, want 0", id, off, v)
		}
	}
}

func TestMapGrowsWhenPoolEmpty(t *testing.T) {
	m := New(Segment{0})
	id1 := m.Map(1)
	id2 := m.Map(1)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
}

func TestUnmapThenMapReusesID(t *testing.T) {
	m := New(Segment{0})
	id := m.Map(3)
	if err := m.Unmap(id); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
	if m.Live(id) {
		t.Fatalf("segment %d should not be live after unmap", id)
	}
	reused := m.Map(7)
	if reused != id {
		t.Fatalf("reused id = %d, want %d", reused, id)
	}
	length, err := m.SegmentLength(reused)
	if err != nil {
		t.Fatalf("SegmentLength: %v", err)
	}
	if length != 7 {
		t.Fatalf("length = %d, want 7", length)
	}
}

func TestUnmapZeroIsError(t *testing.T) {
	m := New(Segment{0})
	err := m.Unmap(0)
	merr, ok := err.(*Error)
	if !ok || merr.Kind != ErrUnmapZero {
		t.Fatalf("err = %v, want ErrUnmapZero", err)
	}
}

func TestUnmapAlreadyFreedIsError(t *testing.T) {
	m := New(Segment{0})
	id := m.Map(1)
	if err := m.Unmap(id); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
	if err := m.Unmap(id); err == nil {
		t.Fatal("expected error unmapping an already-freed id")
	}
}

func TestLoadWordOutOfBounds(t *testing.T) {
	m := New(Segment{0})
	id := m.Map(2)
	if _, err := m.LoadWord(id, 2); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestLoadWordUnmappedSegment(t *testing.T) {
	m := New(Segment{0})
	if _, err := m.LoadWord(99, 0); err == nil {
		t.Fatal("expected unmapped-segment error")
	}
}

func TestDuplicateIsIndependentCopy(t *testing.T) {
	m := New(Segment{0})
	id := m.Map(2)
	_ = m.StoreWord(id, 0, 42)

	dup, err := m.Duplicate(id)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	dup[0] = 99

	v, _ := m.LoadWord(id, 0)
	if v != 42 {
		t.Fatalf("original segment mutated through duplicate: got %d", v)
	}
}

func TestReplaceZero(t *testing.T) {
	m := New(Segment{1, 2, 3})
	m.ReplaceZero(Segment{9, 9})
	length, _ := m.SegmentLength(0)
	if length != 2 {
		t.Fatalf("segment 0 length = %d, want 2", length)
	}
}

func TestReuseAfterUnmappingHighestID(t *testing.T) {
	m := New(Segment{0})
	var ids []uint32
	for i := 0; i < 4; i++ {
		ids = append(ids, m.Map(1))
	}
	highest := ids[len(ids)-1]
	if err := m.Unmap(highest); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
	reused := m.Map(1)
	for _, live := range ids[:len(ids)-1] {
		if reused == live {
			t.Fatalf("reused id %d collides with a still-live id", reused)
		}
	}
}
