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

// Package bitboard holds the board primitives shared by every other
// package: squares, files, ranks, directions and the 64-bit Bitboard
// type itself. Squares are numbered 0..63 with 0 = a8 and 63 = h1,
// rank-major, top-down - this is the opposite orientation from the
// classic little-endian-rank-file layout, so it gets its own package
// instead of reusing a stock one.
package bitboard

import "math/bits"

// Bitboard is a 64 bit unsigned int with one bit per square.
type Bitboard uint64

// Square identifies one of the 64 squares, 0 = a8 .. 63 = h1.
type Square uint8

const (
	SqA8 Square = iota
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA1
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqNone
)

// SqLength is the number of real squares on the board.
const SqLength = 64

// File is the column of a square, 0 = file a .. 7 = file h.
type File uint8

// Rank is the row index used by this package's numbering, 0 = rank 8 .. 7 = rank 1.
// ChessRank converts to the familiar 1..8 number.
type Rank uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank8 Rank = iota
	Rank7
	Rank6
	Rank5
	Rank4
	Rank3
	Rank2
	Rank1
)

// FileOf returns the file of a square.
func (sq Square) FileOf() File { return File(sq % 8) }

// RankOf returns the top-down rank index of a square (0 = rank 8).
func (sq Square) RankOf() Rank { return Rank(sq / 8) }

// ChessRank returns the conventional 1..8 rank number of a square.
func (sq Square) ChessRank() int { return 8 - int(sq/8) }

// IsValid reports whether sq is one of the 64 real squares.
func (sq Square) IsValid() bool { return sq < SqNone }

// Bb returns the single-bit Bitboard for this square.
func (sq Square) Bb() Bitboard { return Bitboard(1) << uint(sq) }

// SquareOf builds a square from a 0-based file and rank (rank 0 = rank 8).
func SquareOf(f File, r Rank) Square { return Square(uint8(r)*8 + uint8(f)) }

// Direction is a step between squares expressed as an index delta in
// this package's top-down numbering.
type Direction int8

const (
	North     Direction = -8
	South     Direction = 8
	East      Direction = 1
	West      Direction = -1
	Northeast Direction = -7
	Northwest Direction = -9
	Southeast Direction = 9
	Southwest Direction = 7
)

// To returns the square reached by moving one step in the given
// direction, or SqNone if the step would leave the board.
func (sq Square) To(d Direction) Square {
	f := sq.FileOf()
	switch d {
	case East, Northeast, Southeast:
		if f == FileH {
			return SqNone
		}
	case West, Northwest, Southwest:
		if f == FileA {
			return SqNone
		}
	}
	n := int(sq) + int(d)
	if n < 0 || n >= SqLength {
		return SqNone
	}
	return Square(n)
}

// Has reports whether square s is set in b.
func (b Bitboard) Has(s Square) bool { return b&s.Bb() != 0 }

// Push sets the bit for s and returns the new value.
func (b Bitboard) Push(s Square) Bitboard { return b | s.Bb() }

// Pop clears the bit for s and returns the new value.
func (b Bitboard) Pop(s Square) Bitboard { return b &^ s.Bb() }

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// Lsb returns the least significant set square, or SqNone if b is empty.
func (b Bitboard) Lsb() Square {
	if b == 0 {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLsb clears and returns the least significant set square.
func (b *Bitboard) PopLsb() Square {
	sq := b.Lsb()
	*b &= *b - 1
	return sq
}

const (
	BbZero Bitboard = 0
	BbAll  Bitboard = 0xFFFFFFFFFFFFFFFF
)

var (
	FileBb [8]Bitboard
	RankBb [8]Bitboard
)

func init() {
	for f := File(0); f < 8; f++ {
		var b Bitboard
		for r := Rank(0); r < 8; r++ {
			b = b.Push(SquareOf(f, r))
		}
		FileBb[f] = b
	}
	for r := Rank(0); r < 8; r++ {
		var b Bitboard
		for f := File(0); f < 8; f++ {
			b = b.Push(SquareOf(f, r))
		}
		RankBb[r] = b
	}
}
