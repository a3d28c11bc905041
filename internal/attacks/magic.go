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

package attacks

import (
	. "github.com/frankkopp/goperft/internal/bitboard"
)

// magic holds the "fancy" magic bitboard data for sliding attacks from
// a single square. Derived from Stockfish's magic bitboard generator.
// License: https://stockfishchess.org/about/
type magic struct {
	mask    Bitboard
	number  Bitboard
	attacks []Bitboard
	shift   uint
}

func (m *magic) index(occupied Bitboard) uint {
	occ := occupied & m.mask
	occ *= m.number
	occ >>= m.shift
	return uint(occ)
}

// prng is the xorshift64star generator used to pick magic candidates.
// Outputs only have ~1/8th of their bits set on average when sparse()
// is used, which is what makes a good magic candidate likely.
type prng struct{ s uint64 }

func newPrng(seed uint64) *prng { return &prng{s: seed} }

func (r *prng) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

func (r *prng) sparse() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}

// initMagics computes magic numbers and fills the attack table for
// either the rook or the bishop directions, one square at a time,
// using the carry-rippler trick to enumerate occupancy subsets of the
// relevant mask. Taken from Stockfish's bitboard.cpp.
func initMagics(table *[]Bitboard, magics *[SqLength]magic, dirs *[4]Direction) {
	// Seeds chosen empirically per rank to keep the candidate search fast.
	seeds := [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	var size int
	cnt := 0

	for sq := Square(0); sq < SqLength; sq++ {
		edges := ((RankBb[Rank8] | RankBb[Rank1]) &^ RankBb[sq.RankOf()]) |
			((FileBb[FileA] | FileBb[FileH]) &^ FileBb[sq.FileOf()])

		m := &magics[sq]
		m.mask = slidingAttack(dirs, sq, BbZero) &^ edges
		m.shift = 64 - uint(m.mask.PopCount())

		if sq == 0 {
			m.attacks = *table
		} else {
			m.attacks = magics[sq-1].attacks[size:]
		}

		b := BbZero
		size = 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(dirs, sq, b)
			size++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}

		rng := newPrng(seeds[sq.RankOf()%8])
		for i := 0; i < size; {
			for m.number = 0; ; {
				m.number = Bitboard(rng.sparse())
				if ((m.number * m.mask) >> 56).PopCount() < 6 {
					break
				}
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.attacks[idx] = reference[i]
				} else if m.attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}
