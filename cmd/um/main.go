/*
 * UM - Main process.
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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/um/internal/cpu"
	"github.com/rcornwell/um/internal/disasm"
	"github.com/rcornwell/um/internal/loader"
	"github.com/rcornwell/um/internal/ulog"
	"github.com/rcornwell/um/internal/umconfig"
	"github.com/rcornwell/um/internal/word"
)

var logger *slog.Logger

func main() {
	os.Exit(run())
}

// run does all of the work and returns the process exit code, so that
// deferred cleanup (flushing the log file) always happens ahead of
// os.Exit, which a direct os.Exit call in main would skip.
func run() int {
	optConfig := getopt.StringLong("config", 'c', "um.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optTrace := getopt.BoolLong("trace", 't', "Trace every executed instruction")
	optStats := getopt.BoolLong("stats", 's', "Report instruction count and halt reason")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return 0
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: um [options] <program-image>")
		getopt.Usage()
		return 2
	}
	imagePath := args[0]

	var logWriter io.Writer
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "um: opening log file: %v\n", err)
			return 1
		}
		defer file.Close()
		logWriter = file
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	logger = slog.New(ulog.NewHandler(logWriter, &slog.HandlerOptions{Level: programLevel}, *optTrace))
	slog.SetDefault(logger)

	cfg, err := umconfig.Load(*optConfig)
	if err != nil {
		logger.Error("loading configuration", "error", err)
		return 1
	}
	trace := *optTrace || cfg.Trace
	stats := *optStats || cfg.Stats
	if trace {
		programLevel.Set(slog.LevelDebug)
	}

	segment0, err := loader.Load(imagePath)
	if err != nil {
		logger.Error("loading program image", "error", err)
		return 1
	}

	machine := cpu.New(segment0, os.Stdin, os.Stdout)
	if trace {
		machine.SetTracer(func(pc uint32, instr word.Instruction) {
			logger.Debug(disasm.Format(pc, instr))
		})
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan error, 1)
	go func() { done <- machine.Run() }()

	var runErr error
	select {
	case runErr = <-done:
	case sig := <-sigChan:
		logger.Info("received signal, stopping", "signal", sig.String())
		return 130
	}

	if stats {
		logger.Info("halted", "instructions", machine.Instructions)
	}

	if runErr != nil {
		logger.Error("program error", "error", runErr)
		if merr, ok := runErr.(*cpu.MachineError); ok {
			switch merr.Kind {
			case cpu.ErrInvalidOpcode:
				return 3
			case cpu.ErrDivideByZero:
				return 4
			case cpu.ErrOutputOverflow:
				return 5
			case cpu.ErrPCOutOfRange:
				return 6
			}
		}
		return 1
	}

	return 0
}
