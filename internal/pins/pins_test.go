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

package pins

import (
	"testing"

	. "github.com/frankkopp/goperft/internal/bitboard"
	"github.com/frankkopp/goperft/internal/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNoCheckersOrPinsInStartPosition(t *testing.T) {
	pos, err := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)

	checkers, pn := Compute(&pos, true)
	assert.Equal(t, Bitboard(0), checkers)
	assert.Equal(t, Bitboard(0), pn.Any())
}

func TestComputeFindsSingleChecker(t *testing.T) {
	// black rook on e8 gives check down the e-file to the white king on e1.
	pos, err := fen.Parse("4r3/8/8/8/8/8/8/4K3 w - -")
	require.NoError(t, err)

	checkers, _ := Compute(&pos, true)
	assert.Equal(t, 1, checkers.PopCount())
	assert.True(t, checkers.Has(SqE8))
}

func TestComputeFindsPinnedPiece(t *testing.T) {
	// white knight on e4 is pinned to the king on e1 by the black rook on e8.
	pos, err := fen.Parse("4r3/8/8/8/4N3/8/8/4K3 w - -")
	require.NoError(t, err)

	checkers, pn := Compute(&pos, true)
	assert.Equal(t, Bitboard(0), checkers)
	assert.True(t, pn.SN.Has(SqE4))
	assert.True(t, pn.Any().Has(SqE4))
}

func TestComputeDiagonalPin(t *testing.T) {
	// white bishop on d3 is pinned to the king on b1 by the black bishop on f5.
	pos, err := fen.Parse("8/8/8/5b2/8/3B4/8/1K6 w - -")
	require.NoError(t, err)

	_, pn := Compute(&pos, true)
	assert.True(t, pn.SWNE.Has(SqD3))
}

func TestProtectionAreaExcludesKingSquare(t *testing.T) {
	// black rook on e8, white king on e2: the rook attacks down the whole
	// file, including e1 behind the king, where the king could otherwise
	// retreat along the check ray - ProtectionArea must not let the king's
	// own body block that ray.
	pos, err := fen.Parse("4r3/8/8/8/8/8/4K3/8 w - -")
	require.NoError(t, err)

	area := ProtectionArea(&pos, true)
	assert.True(t, area.Has(SqE1))
	assert.True(t, area.Has(SqE3))
	assert.True(t, area.Has(SqE2))
}
