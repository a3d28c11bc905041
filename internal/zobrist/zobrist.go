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

// Package zobrist holds the process-wide, immutable-after-init Zobrist
// key table. Eight keys per square (pawn, knight, bishop, rook, queen,
// king, white-occupancy, and a state key) are filled once from a
// deterministic seeded PRNG so the same position hashes identically
// across runs and across processes.
package zobrist

import (
	. "github.com/frankkopp/goperft/internal/bitboard"
)

// Piece-key slot within each square's 8-key row.
const (
	PawnKey = iota
	KnightKey
	BishopKey
	RookKey
	QueenKey
	KingKey
	WhiteKey
	StateKey
)

// Keys[sq][slot] are the per-square keys, slot being one of the *Key constants.
var Keys [SqLength][8]uint64

// SideKey is XORed in whenever it is White to move (keys for square 0's StateKey slot).
var SideKey = &Keys[SqA8][StateKey]

// CastleKeys[right] are the four castling-right keys, stored at squares 1-4's StateKey slot.
var CastleKeys [4]*uint64

// EPPresentKey marks "an en-passant capture is currently available" (square 11's StateKey slot).
// The EP square itself contributes its own StateKey slot (see Keys[sq][StateKey]).
var EPPresentKey *uint64

func init() {
	rng := &xorshift{state: 0x9E3779B97F4A7C15}
	for sq := Square(0); sq < SqLength; sq++ {
		for slot := 0; slot < 8; slot++ {
			Keys[sq][slot] = rng.next()
		}
	}
	for i := 0; i < 4; i++ {
		CastleKeys[i] = &Keys[Square(i+1)][StateKey]
	}
	EPPresentKey = &Keys[Square(11)][StateKey]
}

// xorshift64star is the same deterministic, seeded generator used by
// internal/attacks' magic-number search - reused here instead of
// math/rand so the key table (and therefore every Zobrist hash) is
// bit-for-bit identical across runs and platforms.
type xorshift struct{ state uint64 }

func (x *xorshift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 2685821657736338717
}
