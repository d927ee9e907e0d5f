// Package parallel provides the fixed worker pool that runs the data-parallel
// loops of the seam carving engine.
//
// Every blocking method of Pool is a join point: it returns only after all of
// the work it was handed has finished. Callers express a dependency boundary
// (a cost row, a tiling half-strip) by issuing the dependent work in a later
// call.
//
// Usage:
//
//	pool := parallel.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for y := height - 2; y >= 0; y-- {
//	    pool.ParallelFor(width, func(start, end int) {
//	        relaxRow(y, start, end)
//	    })
//	}
//
// Work submitted to a Pool must not itself call back into the same Pool;
// the workers would wait on each other.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a set of persistent worker goroutines reused across many parallel
// loops. Workers are spawned once in New and live until Close.
//
// Pool is safe for concurrent use by multiple goroutines.
type Pool struct {
	workers   int
	workC     chan workItem
	closeOnce sync.Once
	closed    atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the given number of workers.
// If workers <= 0, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		workC:   make(chan workItem, workers*2),
	}
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops the workers once queued work has drained.
// Calling Close more than once is safe. A closed pool keeps working but runs
// everything on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into at most Workers() contiguous chunks and runs
// fn(start, end) for each of them. It blocks until every chunk is done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.workers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ForEach runs fn(i) for every i in [0, n), handing out indices one at a time
// through an atomic counter. Use it when items have uneven cost (bands,
// triangles). It blocks until every index is done.
func (p *Pool) ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.workers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// Run executes one stage of independent tasks and waits for all of them.
// Stages issued by successive calls are separated by a barrier.
func (p *Pool) Run(tasks []func()) {
	p.ForEach(len(tasks), func(i int) {
		tasks[i]()
	})
}
