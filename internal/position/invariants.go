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

package position

import (
	"fmt"

	. "github.com/frankkopp/goperft/internal/bitboard"
)

// CheckInvariants validates the data-model invariants every Position
// must satisfy after every Make(), used by tests rather than in the
// hot path.
func (pos *Position) CheckInvariants() error {
	disjoint := []struct {
		name string
		bb   Bitboard
	}{
		{"P", pos.P}, {"N", pos.N}, {"K", pos.K},
	}
	for i := 0; i < len(disjoint); i++ {
		for j := i + 1; j < len(disjoint); j++ {
			if disjoint[i].bb&disjoint[j].bb != 0 {
				return fmt.Errorf("%s and %s overlap", disjoint[i].name, disjoint[j].name)
			}
		}
	}
	bishopsOnly := pos.Bq &^ pos.Rq
	rooksOnly := pos.Rq &^ pos.Bq
	queens := pos.Bq & pos.Rq
	if (bishopsOnly|rooksOnly|queens)&(pos.P|pos.N|pos.K) != 0 {
		return fmt.Errorf("bishop/rook/queen masks overlap a pawn, knight or king")
	}
	if pos.W&^pos.Occupied() != 0 {
		return fmt.Errorf("W marks a square with no piece on it")
	}
	if pos.K.PopCount() != 2 {
		return fmt.Errorf("expected exactly 2 kings, got %d", pos.K.PopCount())
	}
	if pos.HasEP() {
		r := pos.EPSquare().ChessRank()
		if r != 3 && r != 6 {
			return fmt.Errorf("en-passant square %v not on rank 3 or 6", pos.EPSquare())
		}
	}
	if pos.Hash != ComputeHash(pos) {
		return fmt.Errorf("incremental hash %#x does not match recomputed hash %#x", pos.Hash, ComputeHash(pos))
	}
	return nil
}
