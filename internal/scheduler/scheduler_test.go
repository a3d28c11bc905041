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

package scheduler

import (
	"testing"

	"github.com/frankkopp/goperft/internal/fen"
	"github.com/frankkopp/goperft/internal/perft"
	"github.com/frankkopp/goperft/internal/testpositions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerMatchesSequentialRunnerAcrossStandardPositions(t *testing.T) {
	runner := perft.NewRunner(nil, nil)
	for _, p := range testpositions.Standard {
		pos, err := fen.Parse(p.FEN)
		require.NoError(t, err)

		for _, d := range p.Depths {
			if d.D > 4 {
				continue // keep the multi-worker test fast; depth coverage lives in internal/perft
			}
			buf := perft.NewBuffer(d.D)
			want := runner.Perft(&pos, pos.WhiteToMove(), d.D, buf)

			sched := New(4, runner, 1)
			got := sched.Run(&pos, pos.WhiteToMove(), d.D)
			assert.Equal(t, want, got, "%s at depth %d", p.Name, d.D)
		}
	}
}

func TestSchedulerSingleWorkerMatchesSequential(t *testing.T) {
	runner := perft.NewRunner(nil, nil)
	pos, err := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)

	buf := perft.NewBuffer(4)
	want := runner.Perft(&pos, true, 4, buf)

	sched := New(1, runner, 1)
	got := sched.Run(&pos, true, 4)
	assert.Equal(t, want, got)
}

func TestSchedulerHonoursMinWorkItemDepth(t *testing.T) {
	// a minWorkItemDepth at or above the run depth forces every root item
	// straight into the sequential runner with no splitting at all - the
	// result must still agree.
	runner := perft.NewRunner(nil, nil)
	pos, err := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)

	buf := perft.NewBuffer(3)
	want := runner.Perft(&pos, true, 3, buf)

	sched := New(4, runner, 10)
	got := sched.Run(&pos, true, 3)
	assert.Equal(t, want, got)
}

func TestDequePushFrontMarkerScopesToOwnBatch(t *testing.T) {
	dq := &Deque{}
	result := &WorkResult{}
	outer := WorkItem{Depth: 1, Result: result}
	dq.PushBack(outer)

	item, ok := dq.TryPopFront()
	require.True(t, ok)
	assert.Equal(t, 1, item.Depth)

	// an older item that is still queued when the marker is taken
	dq.PushBack(WorkItem{Depth: 4, Result: result})

	dq.Lock()
	marker := dq.Marker()
	dq.PushFrontUnsafe(WorkItem{Depth: 2, Result: result})
	dq.PushFrontUnsafe(WorkItem{Depth: 3, Result: result})
	dq.Unlock()

	_, ok = dq.TryPopFrontMarker(marker)
	require.True(t, ok)
	_, ok = dq.TryPopFrontMarker(marker)
	require.True(t, ok)
	_, ok = dq.TryPopFrontMarker(marker)
	assert.False(t, ok, "marker-scoped pop must not see items pushed before the marker was taken")
}
