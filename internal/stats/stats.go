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

// Package stats holds the optional run counters printed by the CLI's
// -s flag: move-kind tallies plus transposition-table traffic. Every
// field is an atomic counter since worker goroutines update the same
// Stats concurrently.
package stats

import "sync/atomic"

// Stats accumulates counts across one perft run. The zero value is
// ready to use.
type Stats struct {
	Captures   atomic.Uint64
	EnPassants atomic.Uint64
	Castlings  atomic.Uint64
	Checkmates atomic.Uint64
	Promotions atomic.Uint64

	TTProbes     atomic.Uint64
	TTHits       atomic.Uint64
	TTWriteTries atomic.Uint64
	TTWrites     atomic.Uint64
}

// Reset zeroes every counter so a Stats can be reused across runs.
func (s *Stats) Reset() {
	s.Captures.Store(0)
	s.EnPassants.Store(0)
	s.Castlings.Store(0)
	s.Checkmates.Store(0)
	s.Promotions.Store(0)
	s.TTProbes.Store(0)
	s.TTHits.Store(0)
	s.TTWriteTries.Store(0)
	s.TTWrites.Store(0)
}
