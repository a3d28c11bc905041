//
// goperft - a parallel bitboard perft engine
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package config holds settings overridable from a TOML file and then
// from command line flags, in that order. Defaults live in the zero
// value of Settings set up by init(); Setup reads a file on top of
// them and command line flags (applied by the caller) win last.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LogLevel and TestLogLevel are the numeric levels GetLog/GetTestLog
// in internal/logging configure their backends with.
var (
	LogLevel     = 2
	TestLogLevel = 2
)

// Settings is the global configuration, readable after Setup runs.
var Settings conf

var initialized = false

type conf struct {
	Log    logConfiguration
	Run    runConfiguration
}

type logConfiguration struct {
	LogLvl     string
	TestLogLvl string
}

type runConfiguration struct {
	// Workers is the number of perft worker goroutines. cmd/goperft
	// does not read it; its worker count comes from the -w flag.
	Workers int
	// HashSizeLog2 is log2 of the transposition table's entry count.
	// cmd/goperft does not read it; its table size comes from the -h flag.
	HashSizeLog2 int
	// MinHashDepth is the depth at or above which the transposition
	// table is consulted.
	MinHashDepth int
	// MinWorkItemDepth is the depth above which the scheduler still
	// splits a subtree into new work items; at or below it the subtree
	// is counted sequentially.
	MinWorkItemDepth int
}

func init() {
	Settings.Log.LogLvl = "notice"
	Settings.Log.TestLogLvl = "warning"
	Settings.Run.Workers = 0
	Settings.Run.HashSizeLog2 = 22
	Settings.Run.MinHashDepth = 3
	Settings.Run.MinWorkItemDepth = 4
}

// LogLevels maps the config file's log level names to go-logging's
// numeric levels.
var LogLevels = map[string]int{
	"off":      -1,
	"critical": 0,
	"error":    1,
	"warning":  2,
	"notice":   3,
	"info":     4,
	"debug":    5,
}

// Setup reads path as a TOML file into Settings, on top of the
// defaults set in init(), then derives LogLevel/TestLogLevel from it.
// An empty path skips the file and keeps every default. A file that
// cannot be read or decoded, including a missing one, is returned as
// an error and Setup may be called again. After a successful call
// Setup is idempotent; later calls are no-ops.
func Setup(path string) error {
	if initialized {
		return nil
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &Settings); err != nil {
			return fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	if lvl, ok := LogLevels[Settings.Log.LogLvl]; ok {
		LogLevel = lvl
	}
	if lvl, ok := LogLevels[Settings.Log.TestLogLvl]; ok {
		TestLogLevel = lvl
	}
	initialized = true
	return nil
}
