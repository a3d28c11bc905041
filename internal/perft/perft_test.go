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

package perft

import (
	"strings"
	"testing"

	"github.com/frankkopp/goperft/internal/fen"
	"github.com/frankkopp/goperft/internal/stats"
	"github.com/frankkopp/goperft/internal/testpositions"
	"github.com/frankkopp/goperft/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// short caps how deep the standard suite runs by default; go test -short
// skips anything beyond it so the package stays fast in CI while a full
// local run still exercises every depth in testpositions.Standard.
const short = 5

func TestPerftStandardPositions(t *testing.T) {
	runner := NewRunner(nil, nil)
	for _, p := range testpositions.Standard {
		p := p
		pos, err := fen.Parse(p.FEN)
		require.NoError(t, err)
		for _, d := range p.Depths {
			if testing.Short() && d.D > short {
				continue
			}
			buf := NewBuffer(d.D)
			got := runner.Perft(&pos, pos.WhiteToMove(), d.D, buf)
			assert.Equal(t, d.Expected, got, "%s at depth %d", p.Name, d.D)
		}
	}
}

func TestPerftAgreesWithAndWithoutTranspositionTable(t *testing.T) {
	pos, err := fen.Parse("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	require.NoError(t, err)

	plain := NewRunner(nil, nil)
	withTT := NewRunner(tt.New(16), nil)

	for depth := 1; depth <= 4; depth++ {
		wantBuf := NewBuffer(depth)
		want := plain.Perft(&pos, pos.WhiteToMove(), depth, wantBuf)

		gotBuf := NewBuffer(depth)
		got := withTT.Perft(&pos, pos.WhiteToMove(), depth, gotBuf)
		assert.Equal(t, want, got, "TT on/off disagree at depth %d", depth)
	}
}

func TestPerftStatsMatchKnownStartPositionTallies(t *testing.T) {
	// reference move-kind tallies of the last-ply moves for the initial
	// position at depth 4 (chessprogramming.org/Perft_Results). Checkmates
	// counts positions one ply above the leaves that are mated; there are
	// none after three plies.
	pos, err := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)

	var st stats.Stats
	runner := NewRunner(nil, &st)
	buf := NewBuffer(4)
	n := runner.Perft(&pos, true, 4, buf)

	assert.Equal(t, uint64(197281), n)
	assert.Equal(t, uint64(1576), st.Captures.Load())
	assert.Equal(t, uint64(0), st.EnPassants.Load())
	assert.Equal(t, uint64(0), st.Castlings.Load())
	assert.Equal(t, uint64(0), st.Promotions.Load())
	assert.Equal(t, uint64(0), st.Checkmates.Load())
}

// mirrorFEN flips the board top-bottom and swaps every piece's colour
// (case), the side to move, the case of the castling letters (kept in
// KQkq order), and the en passant rank - the standard colour-flip
// transform, which mirrors ranks but not files and must never change a
// perft count.
func mirrorFEN(f string) string {
	fields := strings.Fields(f)
	ranks := strings.Split(fields[0], "/")
	mirrored := make([]string, len(ranks))
	for i, r := range ranks {
		mirrored[len(ranks)-1-i] = swapCase(r)
	}
	board := strings.Join(mirrored, "/")

	side := "b"
	if fields[1] == "b" {
		side = "w"
	}

	castle := fields[2]
	if castle != "-" {
		swapped := swapCase(castle)
		castle = ""
		for _, c := range "KQkq" {
			if strings.ContainsRune(swapped, c) {
				castle += string(c)
			}
		}
	}

	ep := fields[3]
	if ep != "-" {
		rank := ep[1]
		mirroredRank := byte('1' + '8' - rank)
		ep = string(ep[0]) + string(mirroredRank)
	}

	return strings.Join([]string{board, side, castle, ep}, " ")
}

func swapCase(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteRune(c - ('a' - 'A'))
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c + ('a' - 'A'))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func TestMirrorImagePerftAgrees(t *testing.T) {
	runner := NewRunner(nil, nil)
	for _, p := range testpositions.Standard {
		pos, err := fen.Parse(p.FEN)
		require.NoError(t, err)
		mirrored, err := fen.Parse(mirrorFEN(p.FEN))
		require.NoError(t, err, "mirrored FEN for %s should still parse", p.Name)

		for depth := 1; depth <= 3; depth++ {
			buf1 := NewBuffer(depth)
			want := runner.Perft(&pos, pos.WhiteToMove(), depth, buf1)
			buf2 := NewBuffer(depth)
			got := runner.Perft(&mirrored, mirrored.WhiteToMove(), depth, buf2)
			assert.Equal(t, want, got, "%s: mirror disagrees at depth %d", p.Name, depth)
		}
	}
}
