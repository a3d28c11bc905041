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

package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/frankkopp/goperft/internal/fen"
	"github.com/frankkopp/goperft/internal/perft"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it - runDivide and printResult both print
// through the package-level message.Printer, which writes straight to
// os.Stdout rather than taking an io.Writer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	saved := os.Stdout
	os.Stdout = w
	fn()
	require.NoError(t, w.Close())
	os.Stdout = saved

	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	require.NoError(t, scanner.Err())
	return sb.String()
}

// parseTotal extracts the integer following "Total:" from divide output,
// undoing the German thousands-separator grouping out.Printf applies.
func parseTotal(t *testing.T, output string) uint64 {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Total:") {
			continue
		}
		digits := strings.NewReplacer(".", "", ",", "").Replace(strings.TrimSpace(strings.TrimPrefix(line, "Total:")))
		n, err := strconv.ParseUint(digits, 10, 64)
		require.NoError(t, err)
		return n
	}
	t.Fatalf("no Total: line found in divide output:\n%s", output)
	return 0
}

// TestRunDivideRootCountsSumToFullPerft exercises the buffer handoff
// into the recursive runner.Perft calls: at depth 3 each root move's
// own move-generation writes into the same shared buffer runDivide
// built from the root move list, so the root moves must have already
// been copied out before any child recursion reuses that space.
func TestRunDivideRootCountsSumToFullPerft(t *testing.T) {
	pos, err := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)

	const depth = 3
	runner := perft.NewRunner(nil, nil)
	want := runner.Perft(&pos, pos.WhiteToMove(), depth, perft.NewBuffer(depth))

	output := captureStdout(t, func() {
		runDivide(runner, &pos, depth, 1)
	})

	require.Equal(t, want, parseTotal(t, output))

	lineCount := 0
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line != "" && !strings.HasPrefix(line, "Total:") {
			lineCount++
		}
	}
	require.Equal(t, 20, lineCount, "initial position has 20 root moves")
}
