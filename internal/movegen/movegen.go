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

// Package movegen generates fully legal moves: pseudo-legal generation
// and pin/check filtering happen in the same pass, rather than
// generating pseudo-legal moves and discarding illegal ones after
// trying each with Make. Every generator has a matching counting
// variant that returns only the cardinality, for the bulk-counting
// leaf of perft.
package movegen

import (
	"github.com/frankkopp/goperft/internal/attacks"
	. "github.com/frankkopp/goperft/internal/bitboard"
	"github.com/frankkopp/goperft/internal/move"
	"github.com/frankkopp/goperft/internal/pins"
	"github.com/frankkopp/goperft/internal/position"
)

// Ray direction indices, matching attacks.RayDirs' order.
const (
	dirN, dirS, dirE, dirW     = 0, 1, 2, 3
	dirNE, dirNW, dirSE, dirSW = 4, 5, 6, 7
)

func axisLine(kingSq Square, a, b int) Bitboard {
	return attacks.Rays[a][kingSq] | attacks.Rays[b][kingSq]
}

// pinRestrict narrows dst down to the line through kingSq that sq is
// pinned along. A piece not pinned gets dst back unchanged.
func pinRestrict(dst Bitboard, sq, kingSq Square, pn pins.Pins) Bitboard {
	switch {
	case pn.SN.Has(sq):
		return dst & axisLine(kingSq, dirN, dirS)
	case pn.WE.Has(sq):
		return dst & axisLine(kingSq, dirE, dirW)
	case pn.SWNE.Has(sq):
		return dst & axisLine(kingSq, dirNE, dirSW)
	case pn.SENW.Has(sq):
		return dst & axisLine(kingSq, dirNW, dirSE)
	}
	return dst
}

// between returns the squares strictly between a and b along whichever
// of the 8 rays connects them, or 0 if they share none (e.g. a knight
// check, or adjacent squares with nothing between them).
func between(a, b Square) Bitboard {
	for i, d := range attacks.RayDirs {
		if !attacks.Rays[i][a].Has(b) {
			continue
		}
		var bb Bitboard
		for cur := a.To(d); cur != b; cur = cur.To(d) {
			bb = bb.Push(cur)
		}
		return bb
	}
	return 0
}

// checkMask is the set of squares a non-king move must land on to
// resolve the current check(s): every square when not in check, the
// checker plus any blocking squares when in check from one piece, and
// nothing (only king moves remain legal) under double check.
func checkMask(kingSq Square, checkers Bitboard) Bitboard {
	switch checkers.PopCount() {
	case 0:
		return BbAll
	case 1:
		checkerSq := checkers.Lsb()
		return checkers | between(kingSq, checkerSq)
	default:
		return 0
	}
}

// Generate appends every legal move for the side to move into buf and
// returns the extended slice. It is the single entry point perft uses.
func Generate(pos *position.Position, white bool, buf []move.Move) []move.Move {
	checkers, pn := pins.Compute(pos, white)
	cm := checkMask(pos.KingSquare(white), checkers)

	buf = genPawns(pos, white, pn, cm, buf)
	buf = genKnights(pos, white, pn, cm, buf)
	buf = genDiagonals(pos, white, pn, cm, buf)
	buf = genOrthogonals(pos, white, pn, cm, buf)
	buf = genKing(pos, white, buf)
	if checkers == 0 {
		buf = genCastling(pos, white, buf)
	}
	return buf
}

// Count returns len(Generate(pos, white, nil)) without allocating or
// writing any move. It is mandatory that Count agrees with Generate
// for every position, and this is exactly how it is implemented: the
// same piece-by-piece logic, summing PopCount instead of emitting.
func Count(pos *position.Position, white bool) int {
	checkers, pn := pins.Compute(pos, white)
	cm := checkMask(pos.KingSquare(white), checkers)

	n := countPawns(pos, white, pn, cm)
	n += countKnights(pos, white, pn, cm)
	n += countDiagonals(pos, white, pn, cm)
	n += countOrthogonals(pos, white, pn, cm)
	n += countKing(pos, white)
	if checkers == 0 {
		n += countCastling(pos, white)
	}
	return n
}

// CountWhite and CountBlack are colour-fixed wrappers around Count.
// internal/perft does not use them; its leaf step calls Count with
// the side to move, which is tested once per call rather than inside
// every piece loop below.
func CountWhite(pos *position.Position) int { return Count(pos, true) }
func CountBlack(pos *position.Position) int { return Count(pos, false) }

func pawnPush(white bool) Direction {
	if white {
		return North
	}
	return South
}

func homeRank(white bool) Rank {
	if white {
		return Rank2
	}
	return Rank7
}

func lastRank(white bool) Rank {
	if white {
		return Rank8
	}
	return Rank1
}

func genPawns(pos *position.Position, white bool, pn pins.Pins, cm Bitboard, buf []move.Move) []move.Move {
	kingSq := pos.KingSquare(white)
	push := pawnPush(white)
	occ := pos.Occupied()
	own := pos.OwnOcc(white)
	enemy := pos.OwnOcc(!white)
	pawns := pos.P & own

	for bb := pawns; bb != 0; {
		src := bb.PopLsb()
		allowed := pinRestrict(BbAll, src, kingSq, pn)

		one := src.To(push)
		if one.IsValid() && !occ.Has(one) {
			buf = emitPawnMove(buf, src, one, allowed, cm, white)
			if src.RankOf() == homeRank(white) {
				two := one.To(push)
				if two.IsValid() && !occ.Has(two) {
					buf = emitPawnMove(buf, src, two, allowed, cm, white)
				}
			}
		}
		for _, capDir := range pawnCaptureDirs(white) {
			dst := src.To(capDir)
			if dst.IsValid() && enemy.Has(dst) {
				buf = emitPawnMove(buf, src, dst, allowed, cm, white)
			}
		}
		if pos.HasEP() {
			ep := pos.EPSquare()
			for _, capDir := range pawnCaptureDirs(white) {
				if src.To(capDir) == ep && epLegal(pos, white, src, ep) {
					if allowed.Has(ep) && (cm&(ep.Bb()|capturedPawnSq(ep, white).Bb())) != 0 {
						buf = append(buf, move.New(src, ep, move.Pawn))
					}
				}
			}
		}
	}
	return buf
}

func countPawns(pos *position.Position, white bool, pn pins.Pins, cm Bitboard) int {
	kingSq := pos.KingSquare(white)
	push := pawnPush(white)
	occ := pos.Occupied()
	own := pos.OwnOcc(white)
	enemy := pos.OwnOcc(!white)
	pawns := pos.P & own
	n := 0

	for bb := pawns; bb != 0; {
		src := bb.PopLsb()
		allowed := pinRestrict(BbAll, src, kingSq, pn)

		one := src.To(push)
		if one.IsValid() && !occ.Has(one) {
			n += countPawnMove(one, allowed, cm)
			if src.RankOf() == homeRank(white) {
				two := one.To(push)
				if two.IsValid() && !occ.Has(two) {
					n += countPawnMove(two, allowed, cm)
				}
			}
		}
		for _, capDir := range pawnCaptureDirs(white) {
			dst := src.To(capDir)
			if dst.IsValid() && enemy.Has(dst) {
				n += countPawnMove(dst, allowed, cm)
			}
		}
		if pos.HasEP() {
			ep := pos.EPSquare()
			for _, capDir := range pawnCaptureDirs(white) {
				if src.To(capDir) == ep && epLegal(pos, white, src, ep) {
					if allowed.Has(ep) && (cm&(ep.Bb()|capturedPawnSq(ep, white).Bb())) != 0 {
						n++
					}
				}
			}
		}
	}
	return n
}

func pawnCaptureDirs(white bool) [2]Direction {
	if white {
		return [2]Direction{Northeast, Northwest}
	}
	return [2]Direction{Southeast, Southwest}
}

// emitPawnMove appends one pawn move to dst if dst is within both the
// pin-imposed and check-imposed destination masks, expanding to all
// four promotion pieces when dst is on the last rank.
func emitPawnMove(buf []move.Move, src, dst Square, allowed, cm Bitboard, white bool) []move.Move {
	if !allowed.Has(dst) || !cm.Has(dst) {
		return buf
	}
	if dst.RankOf() == lastRank(white) {
		buf = append(buf, move.NewPromotion(src, dst, move.Queen))
		buf = append(buf, move.NewPromotion(src, dst, move.Rook))
		buf = append(buf, move.NewPromotion(src, dst, move.Bishop))
		buf = append(buf, move.NewPromotion(src, dst, move.Knight))
		return buf
	}
	return append(buf, move.New(src, dst, move.Pawn))
}

func countPawnMove(dst Square, allowed, cm Bitboard) int {
	if !allowed.Has(dst) || !cm.Has(dst) {
		return 0
	}
	if dst.RankOf() == Rank8 || dst.RankOf() == Rank1 {
		return 4
	}
	return 1
}

// capturedPawnSq is the square of the pawn taken by an en-passant
// capture landing on ep - one rank behind ep from the capturer's point
// of view.
func capturedPawnSq(ep Square, white bool) Square {
	if white {
		return ep.To(South)
	}
	return ep.To(North)
}

// epLegal implements the en-passant horizontal-pin rule: if the king
// shares the capturing pawn's rank and, once both the capturing pawn
// and the captured pawn are removed, an enemy rook or queen attacks
// the king along that rank, the capture is illegal even though neither
// pawn is individually pinned.
func epLegal(pos *position.Position, white bool, src, ep Square) bool {
	capSq := capturedPawnSq(ep, white)
	kingSq := pos.KingSquare(white)
	if kingSq.RankOf() != src.RankOf() {
		return true
	}
	occAfter := pos.Occupied() &^ src.Bb() &^ capSq.Bb()
	enemyRooks := pos.Rq & pos.OwnOcc(!white)
	return attacks.Rook(kingSq, occAfter)&enemyRooks == 0
}

func genKnights(pos *position.Position, white bool, pn pins.Pins, cm Bitboard, buf []move.Move) []move.Move {
	kingSq := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	for bb := pos.N & own; bb != 0; {
		src := bb.PopLsb()
		dst := attacks.KnightAttacks[src] &^ own & cm
		dst = pinRestrict(dst, src, kingSq, pn)
		for dst != 0 {
			buf = append(buf, move.New(src, dst.PopLsb(), move.Knight))
		}
	}
	return buf
}

func countKnights(pos *position.Position, white bool, pn pins.Pins, cm Bitboard) int {
	kingSq := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	n := 0
	for bb := pos.N & own; bb != 0; {
		src := bb.PopLsb()
		dst := attacks.KnightAttacks[src] &^ own & cm
		dst = pinRestrict(dst, src, kingSq, pn)
		n += dst.PopCount()
	}
	return n
}

func genDiagonals(pos *position.Position, white bool, pn pins.Pins, cm Bitboard, buf []move.Move) []move.Move {
	kingSq := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	occ := pos.Occupied()
	for bb := pos.Bq & own; bb != 0; {
		src := bb.PopLsb()
		k := move.Bishop
		if pos.Rq.Has(src) {
			k = move.Queen
		}
		dst := attacks.Bishop(src, occ) &^ own & cm
		dst = pinRestrict(dst, src, kingSq, pn)
		for dst != 0 {
			buf = append(buf, move.New(src, dst.PopLsb(), k))
		}
	}
	return buf
}

func countDiagonals(pos *position.Position, white bool, pn pins.Pins, cm Bitboard) int {
	kingSq := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	occ := pos.Occupied()
	n := 0
	for bb := pos.Bq & own; bb != 0; {
		src := bb.PopLsb()
		dst := attacks.Bishop(src, occ) &^ own & cm
		dst = pinRestrict(dst, src, kingSq, pn)
		n += dst.PopCount()
	}
	return n
}

func genOrthogonals(pos *position.Position, white bool, pn pins.Pins, cm Bitboard, buf []move.Move) []move.Move {
	kingSq := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	occ := pos.Occupied()
	for bb := pos.Rq & own; bb != 0; {
		src := bb.PopLsb()
		k := move.Rook
		if pos.Bq.Has(src) {
			k = move.Queen
		}
		dst := attacks.Rook(src, occ) &^ own & cm
		dst = pinRestrict(dst, src, kingSq, pn)
		for dst != 0 {
			buf = append(buf, move.New(src, dst.PopLsb(), k))
		}
	}
	return buf
}

func countOrthogonals(pos *position.Position, white bool, pn pins.Pins, cm Bitboard) int {
	kingSq := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	occ := pos.Occupied()
	n := 0
	for bb := pos.Rq & own; bb != 0; {
		src := bb.PopLsb()
		dst := attacks.Rook(src, occ) &^ own & cm
		dst = pinRestrict(dst, src, kingSq, pn)
		n += dst.PopCount()
	}
	return n
}

func genKing(pos *position.Position, white bool, buf []move.Move) []move.Move {
	src := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	area := pins.ProtectionArea(pos, white)
	dst := attacks.KingAttacks[src] &^ own &^ area
	for dst != 0 {
		buf = append(buf, move.New(src, dst.PopLsb(), move.King))
	}
	return buf
}

func countKing(pos *position.Position, white bool) int {
	src := pos.KingSquare(white)
	own := pos.OwnOcc(white)
	area := pins.ProtectionArea(pos, white)
	dst := attacks.KingAttacks[src] &^ own &^ area
	return dst.PopCount()
}

// castleRights bundles what genCastling/countCastling need to check
// for one side (kingside or queenside) of one colour.
type castleRights struct {
	has                bool
	kingTo, rookFrom    Square
	through            Bitboard // squares that must be empty and unattacked
	mustBeEmpty        Bitboard // squares that must be empty but need not be safe (queenside b-file)
}

func castleOptions(pos *position.Position, white bool) []castleRights {
	if white {
		return []castleRights{
			{pos.CastleWS(), SqG1, SqH1, SqF1.Bb() | SqG1.Bb(), 0},
			{pos.CastleWL(), SqC1, SqA1, SqD1.Bb() | SqC1.Bb(), SqB1.Bb()},
		}
	}
	return []castleRights{
		{pos.CastleBS(), SqG8, SqH8, SqF8.Bb() | SqG8.Bb(), 0},
		{pos.CastleBL(), SqC8, SqA8, SqD8.Bb() | SqC8.Bb(), SqB8.Bb()},
	}
}

func castleLegal(pos *position.Position, white bool, c castleRights) bool {
	if !c.has {
		return false
	}
	occ := pos.Occupied()
	if occ&(c.through|c.mustBeEmpty) != 0 {
		return false
	}
	area := pins.ProtectionArea(pos, white)
	kingSq := pos.KingSquare(white)
	return (area & (kingSq.Bb() | c.through)) == 0
}

func genCastling(pos *position.Position, white bool, buf []move.Move) []move.Move {
	kingSq := pos.KingSquare(white)
	for _, c := range castleOptions(pos, white) {
		if castleLegal(pos, white, c) {
			buf = append(buf, move.New(kingSq, c.kingTo, move.King))
		}
	}
	return buf
}

func countCastling(pos *position.Position, white bool) int {
	n := 0
	for _, c := range castleOptions(pos, white) {
		if castleLegal(pos, white, c) {
			n++
		}
	}
	return n
}
