/*
 * UM - Wrapper for slog.
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

// Package ulog wraps log/slog with a single-line text handler that mirrors
// every record above debug level to stderr while writing every record to an optional
// log file. Debug-level records get a lighter line format than the rest,
// since the only debug-level records this emulator ever emits are
// instruction-trace lines from internal/disasm, one per executed
// instruction - at that volume a timestamp and level tag on every line
// would be pure noise on top of disasm.Format's own program-counter prefix.
package ulog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler that writes single-line records (timestamped
// above debug level) to an optional file, additionally mirroring them to stderr when trace is
// enabled or the record is above debug level.
type Handler struct {
	out   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	trace bool
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu, trace: h.trace}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithGroup(name), mu: h.mu, trace: h.trace}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var result string
	if r.Level == slog.LevelDebug {
		// Instruction-trace line: disasm.Format already carries the pc, so
		// the record's message is the whole line.
		result = r.Message + "\n"
	} else {
		level := r.Level.String() + ":"
		formattedTime := r.Time.Format("2006/01/02 15:04:05")

		strs := []string{formattedTime, level, r.Message}
		r.Attrs(func(a slog.Attr) bool {
			strs = append(strs, a.Key+"="+a.Value.String())
			return true
		})
		result = strings.Join(strs, " ") + "\n"
	}
	b := []byte(result)

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}

	if h.trace || r.Level > slog.LevelDebug {
		_, err = os.Stderr.Write(b)
	}
	return err
}

// SetTrace toggles whether debug-level records are also mirrored to stderr.
func (h *Handler) SetTrace(trace bool) {
	h.trace = trace
}

// NewHandler builds a Handler writing to file (nil disables file output).
func NewHandler(file io.Writer, opts *slog.HandlerOptions, trace bool) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out: file,
		h: slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: nil,
		}),
		mu:    &sync.Mutex{},
		trace: trace,
	}
}
