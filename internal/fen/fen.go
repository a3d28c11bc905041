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

// Package fen parses Forsyth-Edwards Notation into a position.Position.
// Only the first four fields (board, side to move, castling rights,
// en passant square) affect the position; halfmove clock and fullmove
// number are accepted but not kept anywhere.
package fen

import (
	"fmt"
	"regexp"
	"strings"

	. "github.com/frankkopp/goperft/internal/bitboard"
	"github.com/frankkopp/goperft/internal/logging"
	"github.com/frankkopp/goperft/internal/move"
	"github.com/frankkopp/goperft/internal/position"
)

var (
	boardCharsRe  = regexp.MustCompile(`^[1-8pPnNbBrRqQkK/]+$`)
	sideToMoveRe  = regexp.MustCompile(`^[wb]$`)
	castlingRe    = regexp.MustCompile(`^(K?Q?k?q?|-)$`)
	epSquareRe    = regexp.MustCompile(`^([a-h][1-8]|-)$`)
)

// Parse decodes a FEN string into a Position. It requires at least the
// board, side-to-move, castling and en-passant fields; any further
// fields (halfmove clock, fullmove number) are ignored without being
// validated.
func Parse(fenStr string) (position.Position, error) {
	fields := strings.Fields(strings.TrimSpace(fenStr))
	if len(fields) < 4 {
		return fail(fmt.Errorf("fen: need at least 4 fields, got %d", len(fields)))
	}

	pos := position.NewEmpty()

	if err := parseBoard(&pos, fields[0]); err != nil {
		return fail(err)
	}

	if !sideToMoveRe.MatchString(fields[1]) {
		return fail(fmt.Errorf("fen: invalid side to move %q", fields[1]))
	}
	white := fields[1] == "w"
	pos.SetSideToMove(white)

	if !castlingRe.MatchString(fields[2]) {
		return fail(fmt.Errorf("fen: invalid castling rights %q", fields[2]))
	}
	pos.SetCastlingRights(
		strings.Contains(fields[2], "K"),
		strings.Contains(fields[2], "Q"),
		strings.Contains(fields[2], "k"),
		strings.Contains(fields[2], "q"),
	)

	if !epSquareRe.MatchString(fields[3]) {
		return fail(fmt.Errorf("fen: invalid en passant square %q", fields[3]))
	}
	if fields[3] == "-" {
		pos.SetEPSquare(SqNone)
	} else {
		sq, err := squareFromAlgebraic(fields[3])
		if err != nil {
			return fail(err)
		}
		pos.SetEPSquare(sq)
	}

	pos.Hash = position.ComputeHash(&pos)
	return pos, nil
}

// fail logs the parse failure at debug level before handing the error
// back to the caller - the error itself is what callers act on.
func fail(err error) (position.Position, error) {
	logging.GetLog().Debugf("fen: %v", err)
	return position.Position{}, err
}

// parseBoard reads the first FEN field, a8..h1 rank by rank, separated
// by '/', digits skipping that many empty squares.
func parseBoard(pos *position.Position, field string) error {
	if !boardCharsRe.MatchString(field) {
		return fmt.Errorf("fen: board field contains invalid characters: %q", field)
	}

	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: board field must have 8 ranks, got %d", len(ranks))
	}

	for r, rankStr := range ranks {
		file := FileA
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += File(c - '0')
				continue
			}
			if int(file) >= 8 {
				return fmt.Errorf("fen: rank %d overflows the board", r+1)
			}
			k, white, err := pieceFromChar(c)
			if err != nil {
				return err
			}
			pos.PlacePiece(SquareOf(file, Rank(r)), k, white)
			file++
		}
		if int(file) != 8 {
			return fmt.Errorf("fen: rank %d does not add up to 8 files", r+1)
		}
	}
	return nil
}

func pieceFromChar(c rune) (move.Kind, bool, error) {
	white := c >= 'A' && c <= 'Z'
	switch c {
	case 'p', 'P':
		return move.Pawn, white, nil
	case 'n', 'N':
		return move.Knight, white, nil
	case 'b', 'B':
		return move.Bishop, white, nil
	case 'r', 'R':
		return move.Rook, white, nil
	case 'q', 'Q':
		return move.Queen, white, nil
	case 'k', 'K':
		return move.King, white, nil
	default:
		return move.KindNone, false, fmt.Errorf("fen: invalid piece character %q", c)
	}
}

func squareFromAlgebraic(s string) (Square, error) {
	if len(s) != 2 {
		return SqNone, fmt.Errorf("fen: invalid square %q", s)
	}
	f := File(s[0] - 'a')
	if f > FileH {
		return SqNone, fmt.Errorf("fen: invalid square %q", s)
	}
	chessRank := int(s[1] - '0')
	if chessRank < 1 || chessRank > 8 {
		return SqNone, fmt.Errorf("fen: invalid square %q", s)
	}
	return SquareOf(f, Rank(8-chessRank)), nil
}
