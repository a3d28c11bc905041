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

// Package testpositions is the standard set of perft reference
// positions and their known leaf counts at select depths, shared by
// the tests of several packages.
package testpositions

// Depth is one (depth, expected leaf count) pair for a Position.
type Depth struct {
	D        int
	Expected uint64
}

// Position names a FEN and its known-good perft counts.
type Position struct {
	Name  string
	FEN   string
	Depths []Depth
}

// Standard is the literal scenario table: initial position, Kiwipete,
// a rook-and-pawn endgame, and the "ep-check" position, whose root has
// White in check and no en passant square set.
var Standard = []Position{
	{
		Name: "initial",
		FEN:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		Depths: []Depth{
			{1, 20},
			{2, 400},
			{3, 8902},
			{4, 197281},
			{5, 4865609},
			{6, 119060324},
		},
	},
	{
		Name: "kiwipete",
		FEN:  "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		Depths: []Depth{
			{1, 48},
			{3, 97862},
			{5, 193690690},
		},
	},
	{
		Name: "endgame",
		FEN:  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		Depths: []Depth{
			{4, 43238},
			{6, 11030083},
		},
	},
	{
		Name: "ep-check",
		FEN:  "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq -",
		Depths: []Depth{
			{1, 6},
			{4, 422333},
		},
	},
}
