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

// Package scheduler splits a perft run across a fixed pool of worker
// goroutines. Each worker owns a bounded deque; splitting a subtree
// pushes one WorkItem per child move to the worker's own queue and the
// worker drains them itself, while idle peers may steal from that same
// queue concurrently. At or below a configured depth the split stops
// and the remaining subtree is counted sequentially by internal/perft.
package scheduler

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frankkopp/goperft/internal/assert"
	"github.com/frankkopp/goperft/internal/logging"
	"github.com/frankkopp/goperft/internal/move"
	"github.com/frankkopp/goperft/internal/movegen"
	"github.com/frankkopp/goperft/internal/perft"
	"github.com/frankkopp/goperft/internal/position"
)

// runState is the scheduler-wide lifecycle: workers spin-yield during
// Initializing, process the queues during Running, and drain and
// terminate on Exiting.
type runState int32

const (
	Initializing runState = iota
	Running
	Exiting
)

// WorkResult is shared by every WorkItem descending from the same root
// submission. Count accumulates leaf counts from completed items;
// WorkLeft is incremented on every enqueue and decremented once per
// item when that item finishes (either counted directly or fully
// split into children). The run is done when WorkLeft reaches 0.
type WorkResult struct {
	Count    atomic.Uint64
	WorkLeft atomic.Int64
}

// WorkItem is one unit of scheduled work: count the subtree reachable
// from Pos at Depth plies, for the side to move given by White.
type WorkItem struct {
	Pos    position.Position
	White  bool
	Depth  int
	Result *WorkResult
}

const dequeCapacity = 256

// Deque is a worker's bounded double-ended work queue. push_back adds
// at the tail (used once, for the root submission); push_front adds
// at the head (used when a worker splits a subtree into per-move
// items); pop_front always removes from the head, so a worker that
// only ever uses push_front/pop_front sees plain LIFO local order.
type Deque struct {
	mu    sync.Mutex
	items [dequeCapacity]WorkItem
	head  int
	tail  int
}

func (d *Deque) len() int { return d.tail - d.head }

func slot(i int) int { return ((i % dequeCapacity) + dequeCapacity) % dequeCapacity }

// PushBack enqueues item at the tail and increments its result's
// outstanding counter.
func (d *Deque) PushBack(item WorkItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if assert.DEBUG {
		assert.Assert(d.len() < dequeCapacity, "work queue full on push_back")
	}
	d.items[slot(d.tail)] = item
	d.tail++
	item.Result.WorkLeft.Add(1)
}

// PushFront enqueues item at the head under its own lock.
func (d *Deque) PushFront(item WorkItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushFrontLocked(item)
}

// PushFrontUnsafe enqueues item at the head without locking, for a
// caller that already holds the lock via Lock() - used to batch-enqueue
// every child of a split under a single critical section.
func (d *Deque) PushFrontUnsafe(item WorkItem) { d.pushFrontLocked(item) }

func (d *Deque) pushFrontLocked(item WorkItem) {
	if assert.DEBUG {
		assert.Assert(d.len() < dequeCapacity, "work queue full on push_front")
	}
	d.head--
	d.items[slot(d.head)] = item
	item.Result.WorkLeft.Add(1)
}

// Lock and Unlock bracket a batch of PushFrontUnsafe calls.
func (d *Deque) Lock()   { d.mu.Lock() }
func (d *Deque) Unlock() { d.mu.Unlock() }

// Marker returns the current head index. Call only while holding the
// lock, immediately before a batch of PushFrontUnsafe calls.
func (d *Deque) Marker() int { return d.head }

// TryPopFront removes and returns the item at the head, or reports
// false if the queue is empty. Used both for a worker's own queue and,
// by another worker, to steal from a peer's.
func (d *Deque) TryPopFront() (WorkItem, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.popFrontLocked()
}

// TryPopFrontMarker removes and returns the item at the head only if
// the head has not yet advanced back past marker - i.e. only items
// from the batch pushed after marker was recorded, never an older
// item left over from an enclosing split.
func (d *Deque) TryPopFrontMarker(marker int) (WorkItem, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.head >= marker {
		return WorkItem{}, false
	}
	return d.popFrontLocked()
}

func (d *Deque) popFrontLocked() (WorkItem, bool) {
	if d.len() <= 0 {
		return WorkItem{}, false
	}
	item := d.items[slot(d.head)]
	d.head++
	return item, true
}

// Scheduler owns one Deque per worker and the Runner each worker calls
// into once a subtree is small enough to stop splitting.
type Scheduler struct {
	state            atomic.Int32
	queues           []*Deque
	runner           *perft.Runner
	minWorkItemDepth int
}

// New builds a Scheduler with numWorkers workers. minWorkItemDepth is
// the depth threshold at or below which a worker stops splitting a
// subtree into new work items and counts it sequentially instead.
func New(numWorkers int, runner *perft.Runner, minWorkItemDepth int) *Scheduler {
	queues := make([]*Deque, numWorkers)
	for i := range queues {
		queues[i] = &Deque{}
	}
	s := &Scheduler{queues: queues, runner: runner, minWorkItemDepth: minWorkItemDepth}
	s.state.Store(int32(Initializing))
	return s
}

// Run submits (pos, white, depth) as the root work item to worker 0,
// starts every worker goroutine under an errgroup.Group (which only
// replaces manual launch/join bookkeeping here - the Initializing/
// Running/Exiting handoff and the busy-wait on WorkLeft are unrelated
// to it), and blocks until the whole tree is counted.
func (s *Scheduler) Run(pos *position.Position, white bool, depth int) uint64 {
	result := &WorkResult{}
	s.queues[0].PushBack(WorkItem{Pos: *pos, White: white, Depth: depth, Result: result})

	logging.GetLog().Debugf("scheduler: spinning up %d workers for depth %d", len(s.queues), depth)
	var g errgroup.Group
	for id := range s.queues {
		id := id
		g.Go(func() error {
			s.workerLoop(id, depth)
			return nil
		})
	}

	s.state.Store(int32(Running))
	for result.WorkLeft.Load() != 0 {
		time.Sleep(5 * time.Millisecond)
	}
	s.state.Store(int32(Exiting))
	_ = g.Wait()
	return result.Count.Load()
}

func (s *Scheduler) workerLoop(id int, maxDepth int) {
	buf := perft.NewBuffer(maxDepth)
	dq := s.queues[id]
	for {
		for runState(s.state.Load()) == Initializing {
			runtime.Gosched()
		}
		item, ok := dq.TryPopFront()
		if !ok {
			item, ok = s.steal(id)
		}
		if !ok {
			if runState(s.state.Load()) == Exiting {
				return
			}
			runtime.Gosched()
			continue
		}
		s.process(dq, item, buf[:0])
	}
}

func (s *Scheduler) steal(id int) (WorkItem, bool) {
	n := len(s.queues)
	if n <= 1 {
		return WorkItem{}, false
	}
	victim := rand.Intn(n - 1)
	if victim >= id {
		victim++
	}
	return s.queues[victim].TryPopFront()
}

// process counts one work item. If its depth is small enough it is
// handed to the sequential recursion; otherwise it is split into one
// child item per legal move, pushed to dq, and the worker immediately
// drains its own freshly-pushed batch (LIFO) before returning control
// to the main loop; idle peers may steal items of that batch meanwhile.
func (s *Scheduler) process(dq *Deque, item WorkItem, buf []move.Move) {
	pos := item.Pos

	if item.Depth <= s.minWorkItemDepth {
		count := s.runner.Perft(&pos, item.White, item.Depth, buf)
		item.Result.Count.Add(count)
		item.Result.WorkLeft.Add(-1)
		return
	}

	tail := len(buf)
	buf = movegen.Generate(&pos, item.White, buf)
	moves := buf[tail:]
	if len(moves) == 0 {
		item.Result.WorkLeft.Add(-1)
		return
	}

	dq.Lock()
	marker := dq.Marker()
	for _, m := range moves {
		child := pos.Make(m)
		dq.PushFrontUnsafe(WorkItem{Pos: child, White: !item.White, Depth: item.Depth - 1, Result: item.Result})
	}
	dq.Unlock()

	for {
		sub, ok := dq.TryPopFrontMarker(marker)
		if !ok {
			break
		}
		s.process(dq, sub, buf)
	}
	item.Result.WorkLeft.Add(-1)
}
