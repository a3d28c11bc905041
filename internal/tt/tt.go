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

// Package tt is a fixed-capacity, lock-free perft cache keyed by
// (Zobrist hash, depth) -> leaf count. Entries sit in 4-way sets that
// share a cache line; reads and writes are separate sync/atomic loads
// and stores on the two halves of each entry, not a single wide CAS.
// A torn write - one half updated, the other still the previous entry's
// - fails the (hash, depth) comparison on the next probe and is simply
// treated as a miss. Losing a write under contention is acceptable:
// perft recomputation is idempotent.
package tt

import (
	"sync/atomic"

	"github.com/frankkopp/goperft/internal/logging"
)

const countMask = 1<<48 - 1

type entry struct {
	hash   atomic.Uint64
	packed atomic.Uint64 // depth (top 16 bits) | count (low 48 bits)
}

// Table is a 2^logSize-entry perft cache.
type Table struct {
	entries []entry
	mask    uint64
}

// New allocates a table with 2^logSize entries. logSize must be at
// least 2 so every primary index has a full 4-way set around it.
func New(logSize int) *Table {
	size := uint64(1) << uint(logSize)
	logging.GetLog().Debugf("tt: allocating %d entries (2^%d)", size, logSize)
	return &Table{
		entries: make([]entry, size),
		mask:    size - 1,
	}
}

func (t *Table) primaryIdx(hash uint64) uint64 { return hash & t.mask }
func (t *Table) setBase(hash uint64) uint64    { return t.primaryIdx(hash) &^ 3 }

func pack(depth int, count uint64) uint64 {
	return uint64(uint16(depth))<<48 | (count & countMask)
}

func unpack(packed uint64) (depth int, count uint64) {
	return int(uint16(packed >> 48)), packed & countMask
}

// Probe scans the 4-entry set containing hash's primary index and
// returns the stored count for an exact (hash, depth) match.
func (t *Table) Probe(hash uint64, depth int) (count uint64, ok bool) {
	base := t.setBase(hash)
	for i := uint64(0); i < 4; i++ {
		e := &t.entries[base+i]
		h := e.hash.Load()
		p := e.packed.Load()
		if h != hash {
			continue
		}
		d, c := unpack(p)
		if d == depth {
			return c, true
		}
	}
	return 0, false
}

// Store writes (hash, depth, count). The primary slot is used directly
// if empty or already holding this (hash, depth); otherwise the whole
// 4-entry set is scanned and the first empty slot wins unconditionally,
// else the slot with the smallest stored count is overwritten only if
// count improves on it. The bool result reports whether a write
// actually happened, for callers instrumenting write-try vs write counts.
func (t *Table) Store(hash uint64, depth int, count uint64) bool {
	prim := t.primaryIdx(hash)
	pe := &t.entries[prim]
	if ph := pe.hash.Load(); ph == 0 && pe.packed.Load() == 0 {
		write(pe, hash, depth, count)
		return true
	} else if ph == hash {
		if d, _ := unpack(pe.packed.Load()); d == depth {
			write(pe, hash, depth, count)
			return true
		}
	}

	base := t.setBase(hash)
	var victim *entry
	var victimCount uint64 = countMask + 1
	for i := uint64(0); i < 4; i++ {
		e := &t.entries[base+i]
		h := e.hash.Load()
		p := e.packed.Load()
		if h == 0 && p == 0 {
			victim = e
			break
		}
		if _, c := unpack(p); c < victimCount {
			victimCount = c
			victim = e
		}
	}
	if victim == nil {
		return false
	}
	if h := victim.hash.Load(); h == 0 && victim.packed.Load() == 0 {
		write(victim, hash, depth, count)
		return true
	}
	if count > victimCount {
		write(victim, hash, depth, count)
		return true
	}
	return false
}

func write(e *entry, hash uint64, depth int, count uint64) {
	e.hash.Store(hash)
	e.packed.Store(pack(depth, count))
}
