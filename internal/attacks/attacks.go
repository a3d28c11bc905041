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

// Package attacks holds the process-wide, initialised-once attack
// tables: knight and king step masks, the 8 directional ray masks per
// square, and magic-bitboard sliding attack lookups for bishops and
// rooks. Everything here is computed once in init() and is safe for
// concurrent read-only use by every worker goroutine afterwards.
package attacks

import (
	. "github.com/frankkopp/goperft/internal/bitboard"
)

// Direction indices into the ray/magic tables, matching bitboard.Direction order.
// RayDirs is the direction for each index of the Rays table (and of
// each per-direction ray/bishop/rook grouping used by internal/pins).
var RayDirs = [8]Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest}

var (
	// KnightAttacks[sq] is the set of squares a knight on sq attacks, ignoring occupancy.
	KnightAttacks [SqLength]Bitboard
	// KingAttacks[sq] is the set of squares a king on sq attacks, ignoring occupancy.
	KingAttacks [SqLength]Bitboard
	// PawnAttacks[0][sq]/[1][sq] are the squares a White/Black pawn on sq attacks.
	PawnAttacks [2][SqLength]Bitboard
	// Rays[dir][sq] is every square strictly between sq (exclusive) and the
	// board edge along the given direction.
	Rays [8][SqLength]Bitboard

	bishopDirs = [4]Direction{Northeast, Northwest, Southeast, Southwest}
	rookDirs   = [4]Direction{North, South, East, West}

	bishopMagics [SqLength]magic
	rookMagics   [SqLength]magic
	bishopTable  []Bitboard
	rookTable    []Bitboard
)

func init() {
	initSteps()
	initRays()
	bishopTable = make([]Bitboard, 0x1480)
	rookTable = make([]Bitboard, 0x19000)
	initMagics(&rookTable, &rookMagics, &rookDirs)
	initMagics(&bishopTable, &bishopMagics, &bishopDirs)
}

func initSteps() {
	knightSteps := []Direction{
		North + North + East, North + North + West,
		South + South + East, South + South + West,
		East + East + North, East + East + South,
		West + West + North, West + West + South,
	}
	kingSteps := []Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest}
	for sq := Square(0); sq < SqLength; sq++ {
		var kn, ki Bitboard
		for _, d := range knightSteps {
			if to := stepKnightOrKing(sq, d); to.IsValid() {
				kn = kn.Push(to)
			}
		}
		for _, d := range kingSteps {
			if to := sq.To(d); to.IsValid() {
				ki = ki.Push(to)
			}
		}
		KnightAttacks[sq] = kn
		KingAttacks[sq] = ki

		var wp, bp Bitboard
		if to := sq.To(Northeast); to.IsValid() {
			wp = wp.Push(to)
		}
		if to := sq.To(Northwest); to.IsValid() {
			wp = wp.Push(to)
		}
		if to := sq.To(Southeast); to.IsValid() {
			bp = bp.Push(to)
		}
		if to := sq.To(Southwest); to.IsValid() {
			bp = bp.Push(to)
		}
		PawnAttacks[0][sq] = wp
		PawnAttacks[1][sq] = bp
	}
}

// stepKnightOrKing decomposes a knight delta into single-square steps so
// wraparound around the left/right edge of the board is rejected at
// every leg instead of only at the final (possibly double-wrapped) square.
func stepKnightOrKing(sq Square, d Direction) Square {
	cur := sq
	for _, leg := range knightLegs(d) {
		cur = cur.To(leg)
		if !cur.IsValid() {
			return SqNone
		}
	}
	return cur
}

func knightLegs(d Direction) []Direction {
	switch d {
	case North + North + East:
		return []Direction{North, North, East}
	case North + North + West:
		return []Direction{North, North, West}
	case South + South + East:
		return []Direction{South, South, East}
	case South + South + West:
		return []Direction{South, South, West}
	case East + East + North:
		return []Direction{East, East, North}
	case East + East + South:
		return []Direction{East, East, South}
	case West + West + North:
		return []Direction{West, West, North}
	case West + West + South:
		return []Direction{West, West, South}
	}
	return nil
}

func initRays() {
	for i, d := range RayDirs {
		for sq := Square(0); sq < SqLength; sq++ {
			var b Bitboard
			cur := sq
			for {
				cur = cur.To(d)
				if !cur.IsValid() {
					break
				}
				b = b.Push(cur)
			}
			Rays[i][sq] = b
		}
	}
}

// slidingAttack walks all four given directions from sq on the given
// occupancy, stopping (inclusive) at the first blocker. This is the
// reference implementation that the magic tables must agree with.
func slidingAttack(dirs *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	var attack Bitboard
	for _, d := range dirs {
		cur := sq
		for {
			next := cur.To(d)
			if !next.IsValid() {
				break
			}
			attack = attack.Push(next)
			if occupied.Has(next) {
				break
			}
			cur = next
		}
	}
	return attack
}

// BishopRef returns the naive ray-walk bishop attack set - the
// reference the magic lookup must agree with.
func BishopRef(sq Square, occupied Bitboard) Bitboard {
	return slidingAttack(&bishopDirs, sq, occupied)
}

// RookRef returns the naive ray-walk rook attack set.
func RookRef(sq Square, occupied Bitboard) Bitboard {
	return slidingAttack(&rookDirs, sq, occupied)
}

// Bishop returns the bishop attack set from sq given the board occupancy.
func Bishop(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.attacks[m.index(occupied)]
}

// Rook returns the rook attack set from sq given the board occupancy.
func Rook(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.attacks[m.index(occupied)]
}

// Queen returns the union of bishop and rook attack sets from sq.
func Queen(sq Square, occupied Bitboard) Bitboard {
	return Bishop(sq, occupied) | Rook(sq, occupied)
}
