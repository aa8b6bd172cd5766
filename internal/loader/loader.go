/*
 * UM - Program image loader.
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

// Package loader reads a Universal Machine program image - a raw file of
// big-endian 32-bit words with no header - into segment 0, and provides the
// inverse encoding for writing program images.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/rcornwell/um/internal/memory"
)

// Load opens path, validates its size is a multiple of 4 bytes, and decodes
// it as a sequence of big-endian 32-bit words.
func Load(path string) (memory.Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	size := info.Size()
	if size%4 != 0 {
		return nil, fmt.Errorf("loader: %s: size %d is not a multiple of 4", path, size)
	}

	words := make(memory.Segment, size/4)
	buf := make([]byte, 4)
	for i := range words {
		if _, err := io.ReadFull(file, buf); err != nil {
			return nil, fmt.Errorf("loader: %s: %w", path, err)
		}
		words[i] = binary.BigEndian.Uint32(buf)
	}
	return words, nil
}

// WriteImage encodes words as big-endian 32-bit words, the inverse of Load.
// A program built with internal/umtest can be passed to it to produce an
// image file; internal/umtest itself does not call it.
func WriteImage(w io.Writer, words []uint32) error {
	buf := make([]byte, 4)
	for _, word := range words {
		binary.BigEndian.PutUint32(buf, word)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("loader: %w", err)
		}
	}
	return nil
}
