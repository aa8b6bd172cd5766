/*
 * UM - Configuration file parser.
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

// Package umconfig reads the optional um.cfg file: ambient knobs that are
// not part of execution semantics (trace-to-log, statistics-on-halt). The
// file format follows the line-oriented style of the larger config file
// format this emulator's wider family uses - '#' starts a comment, blank
// lines are ignored, and each remaining line is a "key = value" pair - cut
// down to the handful of keys this emulator actually has.
//
// Configuration file format:
//
//	'#' indicates comment, rest of line is ignored.
//	<line> := <key> '=' <value>
//	<key>  := 'trace' | 'stats'
//	<value> := 'true' | 'false'
package umconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config holds the ambient knobs read from um.cfg.
type Config struct {
	Trace bool // mirror every executed instruction to the logger
	Stats bool // log an instruction count and halt reason after Run
}

// Load reads path and returns the Config it describes. A missing file is
// not an error: it returns the zero Config, since these knobs are optional
// ambient plumbing rather than a requirement of execution.
func Load(path string) (Config, error) {
	var cfg Config

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	lineNumber := 0
	for {
		line, err := reader.ReadString('\n')
		lineNumber++
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return cfg, err
		}

		if perr := parseLine(&cfg, line, lineNumber); perr != nil {
			return cfg, perr
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return cfg, err
		}
	}
	return cfg, nil
}

func parseLine(cfg *Config, line string, lineNumber int) error {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("um.cfg:%d: expected key = value", lineNumber)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("um.cfg:%d: %s: %w", lineNumber, key, err)
	}

	switch key {
	case "trace":
		cfg.Trace = b
	case "stats":
		cfg.Stats = b
	default:
		return fmt.Errorf("um.cfg:%d: unknown key %q", lineNumber, key)
	}
	return nil
}
