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

// Package position holds the Position value type - six piece
// bitboards, a white-occupancy mask, a packed state word and an
// incrementally maintained Zobrist hash - and Make, the copy-make
// update function. Positions are value types: copying one copies all
// of its fields, which is exactly what Make and the perft recursion
// rely on to avoid any aliasing between search frames.
package position

import (
	. "github.com/frankkopp/goperft/internal/bitboard"
	"github.com/frankkopp/goperft/internal/move"
	"github.com/frankkopp/goperft/internal/zobrist"
)

// Position is the fixed-size, value-typed board representation.
// A square set in both Bq and Rq is a queen; Bq&^Rq is a bishop;
// Rq&^Bq is a rook. P, N and K are exclusive of everything else.
type Position struct {
	P, N, Bq, Rq, K Bitboard
	W               Bitboard // squares occupied by White, regardless of piece type
	State           uint16
	Hash            uint64
}

// state word bit layout
const (
	stateWhiteToMove uint16 = 1 << 0
	stateWS          uint16 = 1 << 1 // white kingside (short)
	stateWL          uint16 = 1 << 2 // white queenside (long)
	stateBS          uint16 = 1 << 3 // black kingside (short)
	stateBL          uint16 = 1 << 4 // black queenside (long)
	stateEPShift            = 5
	stateEPMask      uint16 = 0x3F << stateEPShift
	stateEPValid     uint16 = 1 << 11
)

// WhiteToMove reports whether it is White's turn to move.
func (pos *Position) WhiteToMove() bool { return pos.State&stateWhiteToMove != 0 }

// CastleWS, CastleWL, CastleBS, CastleBL report the four castling rights.
func (pos *Position) CastleWS() bool { return pos.State&stateWS != 0 }
func (pos *Position) CastleWL() bool { return pos.State&stateWL != 0 }
func (pos *Position) CastleBS() bool { return pos.State&stateBS != 0 }
func (pos *Position) CastleBL() bool { return pos.State&stateBL != 0 }

// HasEP reports whether an en-passant capture is currently available.
func (pos *Position) HasEP() bool { return pos.State&stateEPValid != 0 }

// EPSquare returns the en-passant target square. Only meaningful when HasEP() is true.
func (pos *Position) EPSquare() Square { return Square((pos.State & stateEPMask) >> stateEPShift) }

// Occupied returns the union of all pieces on the board.
func (pos *Position) Occupied() Bitboard { return pos.P | pos.N | pos.Bq | pos.Rq | pos.K }

// OwnOcc returns the occupancy of the given color.
func (pos *Position) OwnOcc(white bool) Bitboard {
	if white {
		return pos.W
	}
	return pos.Occupied() &^ pos.W
}

// KingSquare returns the king square of the given color.
func (pos *Position) KingSquare(white bool) Square {
	return (pos.K & pos.OwnOcc(white)).Lsb()
}

// PieceAt returns the kind and color of whatever occupies sq, or
// ok == false if sq is empty.
func (pos *Position) PieceAt(sq Square) (k move.Kind, white bool, ok bool) {
	b := sq.Bb()
	switch {
	case pos.P&b != 0:
		k = move.Pawn
	case pos.N&b != 0:
		k = move.Knight
	case pos.Bq&b != 0 && pos.Rq&b != 0:
		k = move.Queen
	case pos.Bq&b != 0:
		k = move.Bishop
	case pos.Rq&b != 0:
		k = move.Rook
	case pos.K&b != 0:
		k = move.King
	default:
		return move.KindNone, false, false
	}
	return k, pos.W&b != 0, true
}

// NewEmpty returns a Position with no pieces, Black to move, and no
// castling or en passant rights. Callers building a position field by
// field (FEN parsing, tests) place pieces and set state first, then
// call ComputeHash once to finish.
func NewEmpty() Position { return Position{} }

// PlacePiece sets a piece of kind k and color white on sq. It does not
// touch pos.Hash; call ComputeHash after the board is fully built.
func (pos *Position) PlacePiece(sq Square, k move.Kind, white bool) {
	b := sq.Bb()
	switch k {
	case move.Pawn:
		pos.P |= b
	case move.Knight:
		pos.N |= b
	case move.Bishop:
		pos.Bq |= b
	case move.Rook:
		pos.Rq |= b
	case move.Queen:
		pos.Bq |= b
		pos.Rq |= b
	case move.King:
		pos.K |= b
	}
	if white {
		pos.W |= b
	}
}

// SetSideToMove sets whose turn it is.
func (pos *Position) SetSideToMove(white bool) {
	if white {
		pos.State |= stateWhiteToMove
	} else {
		pos.State &^= stateWhiteToMove
	}
}

// SetCastlingRights sets all four castling rights directly.
func (pos *Position) SetCastlingRights(ws, wl, bs, bl bool) {
	set := func(bit uint16, have bool) {
		if have {
			pos.State |= bit
		} else {
			pos.State &^= bit
		}
	}
	set(stateWS, ws)
	set(stateWL, wl)
	set(stateBS, bs)
	set(stateBL, bl)
}

// SetEPSquare records sq as the current en passant target square, or
// clears the en passant state if sq is SqNone.
func (pos *Position) SetEPSquare(sq Square) {
	if !sq.IsValid() {
		pos.State &^= stateEPMask | stateEPValid
		return
	}
	pos.State = pos.State&^stateEPMask | uint16(sq)<<stateEPShift | stateEPValid
}

// NewStart returns the standard chess starting position.
func NewStart() Position {
	var pos Position
	pos.P = RankBb[Rank7] | RankBb[Rank2]
	pos.N = SqB8.Bb() | SqG8.Bb() | SqB1.Bb() | SqG1.Bb()
	pos.Bq = SqC8.Bb() | SqF8.Bb() | SqC1.Bb() | SqF1.Bb() | SqD8.Bb() | SqD1.Bb()
	pos.Rq = SqA8.Bb() | SqH8.Bb() | SqA1.Bb() | SqH1.Bb() | SqD8.Bb() | SqD1.Bb()
	pos.K = SqE8.Bb() | SqE1.Bb()
	pos.W = RankBb[Rank2] | RankBb[Rank1]
	pos.State = stateWhiteToMove | stateWS | stateWL | stateBS | stateBL
	pos.Hash = ComputeHash(&pos)
	return pos
}

// ComputeHash recomputes the Zobrist hash of pos from scratch. Make()
// maintains the hash incrementally; this is the ground truth it must
// always agree with (spec invariant: hash == zobrist(position)).
func ComputeHash(pos *Position) uint64 {
	var h uint64
	for sq := Square(0); sq < SqLength; sq++ {
		k, white, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		h ^= zobrist.Keys[sq][pieceSlot(k)]
		if white {
			h ^= zobrist.Keys[sq][zobrist.WhiteKey]
		}
	}
	if pos.WhiteToMove() {
		h ^= *zobrist.SideKey
	}
	if pos.CastleWS() {
		h ^= *zobrist.CastleKeys[0]
	}
	if pos.CastleWL() {
		h ^= *zobrist.CastleKeys[1]
	}
	if pos.CastleBS() {
		h ^= *zobrist.CastleKeys[2]
	}
	if pos.CastleBL() {
		h ^= *zobrist.CastleKeys[3]
	}
	if pos.HasEP() {
		h ^= zobrist.Keys[pos.EPSquare()][zobrist.StateKey]
		h ^= *zobrist.EPPresentKey
	}
	return h
}

func pieceSlot(k move.Kind) int {
	switch k {
	case move.Pawn:
		return zobrist.PawnKey
	case move.Knight:
		return zobrist.KnightKey
	case move.Bishop:
		return zobrist.BishopKey
	case move.Rook:
		return zobrist.RookKey
	case move.Queen:
		return zobrist.QueenKey
	default:
		return zobrist.KingKey
	}
}

// togglePiece flips the bit(s) for a piece of kind k and color white at
// sq in the board masks and keeps pos.Hash in lock-step. Called once to
// add a piece to an empty square, once to remove a piece from an
// occupied one - XOR makes both the same operation.
func (pos *Position) togglePiece(sq Square, k move.Kind, white bool) {
	b := sq.Bb()
	switch k {
	case move.Pawn:
		pos.P ^= b
	case move.Knight:
		pos.N ^= b
	case move.Bishop:
		pos.Bq ^= b
	case move.Rook:
		pos.Rq ^= b
	case move.Queen:
		pos.Bq ^= b
		pos.Rq ^= b
	case move.King:
		pos.K ^= b
	}
	pos.Hash ^= zobrist.Keys[sq][pieceSlot(k)]
	if white {
		pos.W ^= b
		pos.Hash ^= zobrist.Keys[sq][zobrist.WhiteKey]
	}
}

func (pos *Position) clearEP() {
	if pos.HasEP() {
		pos.Hash ^= zobrist.Keys[pos.EPSquare()][zobrist.StateKey]
		pos.Hash ^= *zobrist.EPPresentKey
	}
	pos.State &^= stateEPMask | stateEPValid
}

func (pos *Position) setEP(sq Square) {
	pos.State |= stateEPValid | uint16(sq)<<stateEPShift
	pos.Hash ^= zobrist.Keys[sq][zobrist.StateKey]
	pos.Hash ^= *zobrist.EPPresentKey
}

var cornerRightIdx = map[Square]int{SqA8: 3, SqH8: 2, SqA1: 1, SqH1: 0}

func (pos *Position) revokeRight(idx int) {
	bit := uint16(1) << uint(idx+1)
	if pos.State&bit != 0 {
		pos.State &^= bit
		pos.Hash ^= *zobrist.CastleKeys[idx]
	}
}

func (pos *Position) revokeCornerRight(sq Square) {
	if idx, ok := cornerRightIdx[sq]; ok {
		pos.revokeRight(idx)
	}
}

func (pos *Position) revokeBothRights(white bool) {
	if white {
		pos.revokeRight(0)
		pos.revokeRight(1)
	} else {
		pos.revokeRight(2)
		pos.revokeRight(3)
	}
}

func isDoublePush(src, dst Square, white bool) bool {
	if white {
		return src.RankOf() == Rank2 && dst.RankOf() == Rank4
	}
	return src.RankOf() == Rank7 && dst.RankOf() == Rank5
}

func isCastle(src, dst Square) bool {
	df := int(dst.FileOf()) - int(src.FileOf())
	return df == 2 || df == -2
}

func castleRookSquares(src, dst Square) (from, to Square) {
	rank := src.RankOf()
	if dst.FileOf() > src.FileOf() {
		return SquareOf(FileH, rank), SquareOf(FileF, rank)
	}
	return SquareOf(FileA, rank), SquareOf(FileD, rank)
}

// Make returns the position reached by playing m in pos. pos is left
// untouched: Make is copy-make, there is no undo.
func (pos Position) Make(m move.Move) Position {
	next := pos
	src, dst := m.From(), m.To()
	white := pos.WhiteToMove()

	oldEPValid, oldEPSquare := pos.HasEP(), pos.EPSquare()

	if k, capturedWhite, ok := pos.PieceAt(dst); ok {
		next.togglePiece(dst, k, capturedWhite)
	}

	next.clearEP()

	switch m.Piece() {
	case move.Pawn:
		next.togglePiece(src, move.Pawn, white)
		next.togglePiece(dst, move.Pawn, white)
		switch {
		case m.IsPromotion():
			next.togglePiece(dst, move.Pawn, white)
			next.togglePiece(dst, m.PromotedTo(), white)
		case oldEPValid && dst == oldEPSquare:
			var capSq Square
			if white {
				capSq = dst.To(South)
			} else {
				capSq = dst.To(North)
			}
			next.togglePiece(capSq, move.Pawn, !white)
		case isDoublePush(src, dst, white):
			var behind Square
			if white {
				behind = dst.To(South)
			} else {
				behind = dst.To(North)
			}
			next.setEP(behind)
		}
	case move.King:
		next.togglePiece(src, move.King, white)
		next.togglePiece(dst, move.King, white)
		next.revokeBothRights(white)
		if isCastle(src, dst) {
			rookFrom, rookTo := castleRookSquares(src, dst)
			next.togglePiece(rookFrom, move.Rook, white)
			next.togglePiece(rookTo, move.Rook, white)
		}
	default:
		k := m.Piece()
		next.togglePiece(src, k, white)
		next.togglePiece(dst, k, white)
		if k == move.Rook {
			next.revokeCornerRight(src)
		}
	}

	next.revokeCornerRight(dst)

	next.State ^= stateWhiteToMove
	next.Hash ^= *zobrist.SideKey

	return next
}
