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

package tt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeMissOnEmptyTable(t *testing.T) {
	table := New(4)
	_, ok := table.Probe(12345, 3)
	assert.False(t, ok)
}

func TestStoreThenProbeExactMatch(t *testing.T) {
	table := New(4)
	ok := table.Store(12345, 3, 8902)
	require.True(t, ok)

	count, ok := table.Probe(12345, 3)
	require.True(t, ok)
	assert.Equal(t, uint64(8902), count)
}

func TestProbeMissesOnDepthMismatch(t *testing.T) {
	table := New(4)
	table.Store(12345, 3, 8902)
	_, ok := table.Probe(12345, 4)
	assert.False(t, ok)
}

func TestProbeMissesOnHashMismatchSameSet(t *testing.T) {
	table := New(4)
	table.Store(12345, 3, 8902)
	// 12345+16 has the same low 4 bits, so it probes the same set
	_, ok := table.Probe(12345+16, 3)
	assert.False(t, ok)
}

func TestStoreOverwritesSameHashAndDepth(t *testing.T) {
	table := New(4)
	table.Store(12345, 3, 8902)
	table.Store(12345, 3, 9999)
	count, ok := table.Probe(12345, 3)
	require.True(t, ok)
	assert.Equal(t, uint64(9999), count)
}

func TestStoreFillsAllFourSlotsInASet(t *testing.T) {
	table := New(4) // 16 entries, 4 sets of 4
	base := uint64(0) // set starting at primary index 0
	hashes := []uint64{base, base + 16, base + 32, base + 48}
	for i, h := range hashes {
		ok := table.Store(h, i+1, uint64(i+1)*1000)
		require.True(t, ok, "store %d should have an empty slot available", i)
	}
	for i, h := range hashes {
		count, ok := table.Probe(h, i+1)
		require.True(t, ok)
		assert.Equal(t, uint64(i+1)*1000, count)
	}
}

func TestStoreReplacesSmallestCountOnFullSet(t *testing.T) {
	table := New(4)
	hashes := []uint64{0, 16, 32, 48}
	counts := []uint64{10, 20, 30, 40}
	for i, h := range hashes {
		table.Store(h, 1, counts[i])
	}
	// the set is now full; a fifth distinct hash can only evict the
	// smallest stored count (10, at hash 0) and only if it improves on it.
	ok := table.Store(64, 1, 5)
	assert.False(t, ok, "a smaller count must not evict")

	ok = table.Store(64, 1, 999)
	assert.True(t, ok)
	_, stillThere := table.Probe(0, 1)
	assert.False(t, stillThere, "smallest-count entry should have been evicted")
}

func TestConcurrentStoreProbeDoesNotPanic(t *testing.T) {
	table := New(8)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				h := uint64(w*1000 + i)
				table.Store(h, i%10, uint64(i))
				table.Probe(h, i%10)
			}
		}(w)
	}
	wg.Wait()
}
