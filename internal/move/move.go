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

// Package move holds the packed 16-bit Move representation. Bits 0-5
// are the source square, bits 6-11 the destination square, bit 15 the
// promotion flag. When the promotion flag is clear, bits 12-14 hold the
// kind of the moving piece; when set, they hold the promoted-to piece
// kind and the mover is implicitly a pawn. Castling is encoded as the
// king's own two-square step; Make() in internal/position is what
// notices the two-file jump and moves the rook.
package move

import (
	. "github.com/frankkopp/goperft/internal/bitboard"
)

// Kind is a piece type, used both for "the piece that is moving" and,
// when the promotion bit is set, "the piece the pawn promotes to".
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	KindNone
)

const (
	srcMask   = 0x003F
	dstShift  = 6
	dstMask   = 0x0FC0
	kindShift = 12
	kindMask  = 0x7000
	promoBit  = 1 << 15
)

// Move is a packed chess move: src(6) | dst(6) | kind(3) | promo(1).
type Move uint16

// None is the zero value, used as a sentinel for "no move".
const None Move = 0

// New packs a non-promoting move.
func New(src, dst Square, k Kind) Move {
	return Move(uint16(src)&srcMask | (uint16(dst)<<dstShift)&dstMask | (uint16(k)<<kindShift)&kindMask)
}

// NewPromotion packs a pawn promotion move.
func NewPromotion(src, dst Square, promoted Kind) Move {
	return New(src, dst, promoted) | Move(promoBit)
}

// From returns the source square.
func (m Move) From() Square { return Square(uint16(m) & srcMask) }

// To returns the destination square.
func (m Move) To() Square { return Square((uint16(m) & dstMask) >> dstShift) }

// IsPromotion reports whether the promotion bit is set.
func (m Move) IsPromotion() bool { return uint16(m)&promoBit != 0 }

// Piece returns the kind of the moving piece. For a promotion this is
// always Pawn (the promoted-to kind is in PromotedTo()).
func (m Move) Piece() Kind {
	if m.IsPromotion() {
		return Pawn
	}
	return Kind((uint16(m) & kindMask) >> kindShift)
}

// PromotedTo returns the piece kind a promotion move turns the pawn
// into. Only meaningful when IsPromotion() is true.
func (m Move) PromotedTo() Kind {
	return Kind((uint16(m) & kindMask) >> kindShift)
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return "?"
}

// String renders a move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := squareName(m.From()) + squareName(m.To())
	if m.IsPromotion() {
		s += promoLetter(m.PromotedTo())
	}
	return s
}

func squareName(sq Square) string {
	file := "abcdefgh"[sq.FileOf()]
	rank := byte('0' + sq.ChessRank())
	return string([]byte{file, rank})
}

func promoLetter(k Kind) string {
	switch k {
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	}
	return ""
}
