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

// Package perft is the recursive leaf counter. It is specialised per
// side to move by way of two mutually recursive methods, PerftWhite
// and PerftBlack, rather than a single function branching on colour in
// its inner loop - recursing always calls the opposite method.
package perft

import (
	"github.com/frankkopp/goperft/internal/move"
	"github.com/frankkopp/goperft/internal/movegen"
	"github.com/frankkopp/goperft/internal/pins"
	"github.com/frankkopp/goperft/internal/position"
	"github.com/frankkopp/goperft/internal/stats"
	"github.com/frankkopp/goperft/internal/tt"
)

// DefaultMinHashDepth is the depth at or above which Runner consults
// and populates the transposition table. Below it, a hash probe costs
// more than just recomputing the (small) subtree.
const DefaultMinHashDepth = 3

// MaxMovesPerPly upper-bounds the branching factor at any reachable
// chess position; NewBuffer sizes a perft move stack off of it.
const MaxMovesPerPly = 256

// Runner recurses the perft tree for one transposition table (which
// may be nil to run without a table) and one optional Stats sink.
type Runner struct {
	TT           *tt.Table
	Stats        *stats.Stats
	MinHashDepth int
}

// NewRunner builds a Runner. table and st may be nil to disable the
// transposition table or statistics collection respectively.
func NewRunner(table *tt.Table, st *stats.Stats) *Runner {
	return &Runner{TT: table, Stats: st, MinHashDepth: DefaultMinHashDepth}
}

// NewBuffer allocates the shared move stack for a perft run to depth
// maxDepth: every recursion frame appends its own moves above the
// previous frame's tail and the capacity here is sized to never force
// a reallocation, so the backing array is genuinely shared top to
// bottom, the way §4.7/§9's buffer-stack contract describes.
func NewBuffer(maxDepth int) []move.Move {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return make([]move.Move, 0, maxDepth*MaxMovesPerPly)
}

// Perft dispatches to the colour-specialised entry point for white.
// A depth of 0 (or less) counts the position itself as the one leaf.
func (r *Runner) Perft(pos *position.Position, white bool, depth int, buf []move.Move) uint64 {
	if depth <= 0 {
		return 1
	}
	if white {
		return r.PerftWhite(pos, depth, buf)
	}
	return r.PerftBlack(pos, depth, buf)
}

func (r *Runner) probe(pos *position.Position, depth int) (uint64, bool) {
	if r.TT == nil || depth < r.MinHashDepth {
		return 0, false
	}
	if r.Stats != nil {
		r.Stats.TTProbes.Add(1)
	}
	c, ok := r.TT.Probe(pos.Hash, depth)
	if ok && r.Stats != nil {
		r.Stats.TTHits.Add(1)
	}
	return c, ok
}

func (r *Runner) store(pos *position.Position, depth int, count uint64) {
	if r.TT == nil || depth < r.MinHashDepth {
		return
	}
	if r.Stats != nil {
		r.Stats.TTWriteTries.Add(1)
	}
	if r.TT.Store(pos.Hash, depth, count) && r.Stats != nil {
		r.Stats.TTWrites.Add(1)
	}
}

// PerftWhite is the White-to-move half of the mutual recursion.
func (r *Runner) PerftWhite(pos *position.Position, depth int, buf []move.Move) uint64 {
	if c, ok := r.probe(pos, depth); ok {
		return c
	}
	if depth == 1 {
		n := r.countLeaf(pos, true)
		r.store(pos, depth, n)
		return n
	}

	tail := len(buf)
	buf = movegen.Generate(pos, true, buf)
	moves := buf[tail:]

	var total uint64
	for _, m := range moves {
		child := pos.Make(m)
		total += r.PerftBlack(&child, depth-1, buf)
	}
	r.store(pos, depth, total)
	return total
}

// PerftBlack is the Black-to-move half of the mutual recursion.
func (r *Runner) PerftBlack(pos *position.Position, depth int, buf []move.Move) uint64 {
	if c, ok := r.probe(pos, depth); ok {
		return c
	}
	if depth == 1 {
		n := r.countLeaf(pos, false)
		r.store(pos, depth, n)
		return n
	}

	tail := len(buf)
	buf = movegen.Generate(pos, false, buf)
	moves := buf[tail:]

	var total uint64
	for _, m := range moves {
		child := pos.Make(m)
		total += r.PerftWhite(&child, depth-1, buf)
	}
	r.store(pos, depth, total)
	return total
}

// countLeaf is the depth==1 bulk-count step. Without a Stats sink it
// is the fast counting generator; with one, the per-move classifier
// needs the actual moves, so it falls back to generating them. Moves
// are tallied only here, so the move-kind counters cover the last ply.
func (r *Runner) countLeaf(pos *position.Position, white bool) uint64 {
	if r.Stats == nil {
		return uint64(movegen.Count(pos, white))
	}
	var stackBuf [MaxMovesPerPly]move.Move
	moves := movegen.Generate(pos, white, stackBuf[:0])
	for _, m := range moves {
		r.tallyMove(pos, m)
	}
	if len(moves) == 0 {
		if checkers, _ := pins.Compute(pos, white); checkers != 0 {
			r.Stats.Checkmates.Add(1)
		}
	}
	return uint64(len(moves))
}

func (r *Runner) tallyMove(pos *position.Position, m move.Move) {
	if _, _, ok := pos.PieceAt(m.To()); ok {
		r.Stats.Captures.Add(1)
	} else if m.Piece() == move.Pawn && pos.HasEP() && m.To() == pos.EPSquare() {
		r.Stats.Captures.Add(1)
		r.Stats.EnPassants.Add(1)
	}
	if m.Piece() == move.King {
		df := int(m.To().FileOf()) - int(m.From().FileOf())
		if df == 2 || df == -2 {
			r.Stats.Castlings.Add(1)
		}
	}
	if m.IsPromotion() {
		r.Stats.Promotions.Add(1)
	}
}
