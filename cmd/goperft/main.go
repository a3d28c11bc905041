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
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/goperft/internal/config"
	"github.com/frankkopp/goperft/internal/fen"
	"github.com/frankkopp/goperft/internal/logging"
	"github.com/frankkopp/goperft/internal/movegen"
	"github.com/frankkopp/goperft/internal/perft"
	"github.com/frankkopp/goperft/internal/position"
	"github.com/frankkopp/goperft/internal/scheduler"
	"github.com/frankkopp/goperft/internal/stats"
	"github.com/frankkopp/goperft/internal/tt"
)

var out = message.NewPrinter(language.German)

const startFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

func main() {
	depth := flag.Int("d", 1, "perft depth, non-negative")
	hashLog2 := flag.Int("h", 26, "log2 of transposition table entry count; negative disables the table")
	workers := flag.Int("w", 8, "worker goroutine count")
	showStats := flag.Bool("s", false, "print move-kind and transposition table statistics")
	fenStr := flag.String("f", startFen, "starting position in FEN")
	configPath := flag.String("config", "./goperft.toml", "path to an optional TOML settings file")
	profileMode := flag.String("profile", "", "enable profiling: cpu, mem, or empty to disable")
	divide := flag.Bool("divide", false, "print the perft count for each root move individually")
	flag.Parse()

	if *depth < 0 {
		fmt.Fprintln(os.Stderr, "goperft: -d must be non-negative")
		flag.Usage()
		os.Exit(1)
	}
	if *workers < 1 {
		fmt.Fprintln(os.Stderr, "goperft: -w must be at least 1")
		flag.Usage()
		os.Exit(1)
	}
	if *hashLog2 >= 0 && *hashLog2 < 2 {
		fmt.Fprintln(os.Stderr, "goperft: -h must be at least 2, or negative to disable the table")
		flag.Usage()
		os.Exit(1)
	}

	// the settings file is optional: a missing one leaves the defaults
	err := config.Setup(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		err = config.Setup("")
	}
	if err != nil {
		log.Fatalf("goperft: %v", err)
	}
	logging.GetLog()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		fmt.Fprintf(os.Stderr, "goperft: unknown -profile value %q\n", *profileMode)
		flag.Usage()
		os.Exit(1)
	}

	pos, err := fen.Parse(*fenStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goperft: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	var table *tt.Table
	if *hashLog2 >= 0 {
		table = tt.New(*hashLog2)
	}
	var st *stats.Stats
	if *showStats {
		st = &stats.Stats{}
	}

	runner := perft.NewRunner(table, st)
	runner.MinHashDepth = config.Settings.Run.MinHashDepth

	if *divide {
		runDivide(runner, &pos, *depth, *workers)
		return
	}

	start := time.Now()
	var count uint64
	if *workers <= 1 {
		buf := perft.NewBuffer(*depth)
		count = runner.Perft(&pos, pos.WhiteToMove(), *depth, buf)
	} else {
		sched := scheduler.New(*workers, runner, config.Settings.Run.MinWorkItemDepth)
		count = sched.Run(&pos, pos.WhiteToMove(), *depth)
	}
	elapsed := time.Since(start)

	printResult(count, elapsed, st)
}

// runDivide prints, for each of the root position's legal moves, the
// perft count of the subtree that move leads into - a standard
// perft-debugging aid for locating exactly which branch of a move
// generator disagrees with a known-good count.
func runDivide(runner *perft.Runner, pos *position.Position, depth, workers int) {
	if depth < 1 {
		out.Println("Total: 1")
		return
	}

	white := pos.WhiteToMove()
	buf := perft.NewBuffer(depth)
	tail := len(buf)
	buf = movegen.Generate(pos, white, buf)
	moves := buf[tail:]
	var total uint64
	for _, m := range moves {
		child := pos.Make(m)
		var n uint64
		switch {
		case depth == 1:
			n = 1
		case workers <= 1:
			n = runner.Perft(&child, !white, depth-1, buf)
		default:
			n = scheduler.New(workers, runner, config.Settings.Run.MinWorkItemDepth).Run(&child, !white, depth-1)
		}
		out.Printf("%s: %d\n", m, n)
		total += n
	}
	out.Printf("\nTotal: %d\n", total)
}

func printResult(count uint64, elapsed time.Duration, st *stats.Stats) {
	out.Println()
	out.Printf("Nodes : %d\n", count)
	out.Printf("Time  : %s\n", elapsed)
	nps := float64(count) / elapsed.Seconds() / 1_000_000
	out.Printf("Mnps  : %.3f\n", nps)

	if st == nil {
		return
	}
	color.New(color.FgCyan, color.Bold).Println("Move statistics")
	out.Printf("Captures   : %d\n", st.Captures.Load())
	out.Printf("En passant : %d\n", st.EnPassants.Load())
	out.Printf("Castlings  : %d\n", st.Castlings.Load())
	out.Printf("Checkmates : %d\n", st.Checkmates.Load())
	out.Printf("Promotions : %d\n", st.Promotions.Load())
	out.Printf("TT probes  : %d\n", st.TTProbes.Load())
	out.Printf("TT hits    : %d\n", st.TTHits.Load())
	out.Printf("TT writes  : %d / %d tried\n", st.TTWrites.Load(), st.TTWriteTries.Load())
}
