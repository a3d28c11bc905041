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

// Package pins walks the four axes through the king to find checkers
// and pinned pieces in one pass, and computes the "protection area" -
// the squares the opponent attacks with the defending king removed
// from the board, so the king cannot slide along a check ray it is
// already on. Both are plugged directly into move generation.
package pins

import (
	"github.com/frankkopp/goperft/internal/assert"
	"github.com/frankkopp/goperft/internal/attacks"
	. "github.com/frankkopp/goperft/internal/bitboard"
	"github.com/frankkopp/goperft/internal/position"
)

// Pins holds the pieces pinned to the king, grouped by the axis they
// are pinned along. A pinned piece may only move along its own axis.
type Pins struct {
	SN   Bitboard // pinned along the file (North/South)
	WE   Bitboard // pinned along the rank (West/East)
	SWNE Bitboard // pinned along the a1-h8 diagonal (Northeast/Southwest)
	SENW Bitboard // pinned along the a8-h1 diagonal (Northwest/Southeast)
}

// Any returns every pinned square regardless of axis.
func (p Pins) Any() Bitboard { return p.SN | p.WE | p.SWNE | p.SENW }

// addPin ORs sq into the Pins field matching the ray direction index
// (as ordered in attacks.RayDirs: North, South, East, West, Northeast,
// Northwest, Southeast, Southwest).
func (p *Pins) addPin(dirIdx int, sq Square) {
	switch dirIdx {
	case 0, 1:
		p.SN = p.SN.Push(sq)
	case 2, 3:
		p.WE = p.WE.Push(sq)
	case 4, 7:
		p.SWNE = p.SWNE.Push(sq)
	case 5, 6:
		p.SENW = p.SENW.Push(sq)
	}
}

// isDiagonal reports whether the ray direction index runs along a
// diagonal (bishop/queen territory) rather than a file or rank.
func isDiagonal(dirIdx int) bool { return dirIdx >= 4 }

// Compute returns the set of pieces giving check to the king of color
// white, and every piece pinned to that king, in a single walk of the
// 8 ray directions plus the knight/pawn checker patterns.
func Compute(pos *position.Position, white bool) (checkers Bitboard, result Pins) {
	kingSq := pos.KingSquare(white)
	ownOcc := pos.OwnOcc(white)
	enemyOcc := pos.OwnOcc(!white)
	occ := pos.Occupied()

	enemyPawns := pos.P & enemyOcc
	enemyKnights := pos.N & enemyOcc
	enemyBishops := pos.Bq & enemyOcc
	enemyRooks := pos.Rq & enemyOcc

	whiteIdx := 0
	if !white {
		whiteIdx = 1
	}
	checkers |= attacks.PawnAttacks[whiteIdx][kingSq] & enemyPawns
	checkers |= attacks.KnightAttacks[kingSq] & enemyKnights

	for i, d := range attacks.RayDirs {
		ray := attacks.Rays[i][kingSq]
		blockers := ray & occ
		if blockers == 0 {
			continue
		}
		first := firstOnRay(blockers, kingSq, d)
		if enemyOcc.Has(first) && slidesAlong(enemyBishops, enemyRooks, first, isDiagonal(i)) {
			checkers = checkers.Push(first)
			continue
		}
		if !ownOcc.Has(first) {
			continue
		}
		rest := ray & occ &^ first.Bb()
		if rest == 0 {
			continue
		}
		second := firstOnRay(rest, kingSq, d)
		if enemyOcc.Has(second) && slidesAlong(enemyBishops, enemyRooks, second, isDiagonal(i)) {
			result.addPin(i, first)
		}
	}
	if assert.DEBUG {
		assert.Assert(checkers.PopCount() <= 2, "more than two simultaneous checkers: %d", checkers.PopCount())
	}
	return checkers, result
}

// slidesAlong reports whether sq holds an enemy slider that can attack
// along a diagonal (bishop/queen) or orthogonal (rook/queen) ray.
func slidesAlong(bishops, rooks Bitboard, sq Square, diagonal bool) bool {
	if diagonal {
		return bishops.Has(sq)
	}
	return rooks.Has(sq)
}

// firstOnRay returns the square in blockers nearest to from along
// direction d - the square reached earliest by walking the ray.
func firstOnRay(blockers Bitboard, from Square, d Direction) Square {
	cur := from
	for {
		cur = cur.To(d)
		if !cur.IsValid() {
			return SqNone
		}
		if blockers.Has(cur) {
			return cur
		}
	}
}

// ProtectionArea returns every square attacked by the side NOT to move
// (the opponent of white), with white's own king removed from the
// occupancy first. Without this, a king retreating straight back along
// a check ray would wrongly appear to escape the checker's attack,
// since the king itself was blocking its own ray.
func ProtectionArea(pos *position.Position, white bool) Bitboard {
	king := pos.KingSquare(white)
	occ := pos.Occupied() &^ king.Bb()
	enemyOcc := pos.OwnOcc(!white) &^ king.Bb()

	enemyIdx := 0
	if white {
		enemyIdx = 1
	}

	var area Bitboard
	for bb := pos.P & enemyOcc; bb != 0; {
		sq := bb.PopLsb()
		area |= attacks.PawnAttacks[enemyIdx][sq]
	}
	for bb := pos.N & enemyOcc; bb != 0; {
		sq := bb.PopLsb()
		area |= attacks.KnightAttacks[sq]
	}
	for bb := pos.Bq & enemyOcc; bb != 0; {
		sq := bb.PopLsb()
		area |= attacks.Bishop(sq, occ)
	}
	for bb := pos.Rq & enemyOcc; bb != 0; {
		sq := bb.PopLsb()
		area |= attacks.Rook(sq, occ)
	}
	for bb := pos.K & enemyOcc; bb != 0; {
		sq := bb.PopLsb()
		area |= attacks.KingAttacks[sq]
	}
	return area
}
