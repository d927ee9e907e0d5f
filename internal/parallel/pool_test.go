package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew_DefaultWorkers(t *testing.T) {
	p := New(0)
	defer p.Close()

	if p.Workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers: got %d, want %d", p.Workers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"single worker", 1, 100},
		{"more workers than items", 16, 5},
		{"uneven split", 4, 103},
		{"empty range", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.workers)
			defer p.Close()

			hits := make([]int32, tt.n)
			p.ParallelFor(tt.n, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})

			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, h)
				}
			}
		})
	}
}

func TestForEach_CoversRange(t *testing.T) {
	p := New(3)
	defer p.Close()

	const n = 257
	hits := make([]int32, n)
	p.ForEach(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, h)
		}
	}
}

func TestRun_StagesAreOrdered(t *testing.T) {
	p := New(4)
	defer p.Close()

	var stage1 atomic.Int32
	var sawIncomplete atomic.Bool

	first := make([]func(), 8)
	for i := range first {
		first[i] = func() { stage1.Add(1) }
	}
	second := make([]func(), 8)
	for i := range second {
		second[i] = func() {
			if stage1.Load() != int32(len(first)) {
				sawIncomplete.Store(true)
			}
		}
	}

	p.Run(first)
	p.Run(second)

	if sawIncomplete.Load() {
		t.Error("second stage started before first stage finished")
	}
}

func TestClose_FallsBackToSequential(t *testing.T) {
	p := New(4)
	p.Close()
	p.Close() // safe to call twice

	sum := 0
	p.ParallelFor(10, func(start, end int) {
		for i := start; i < end; i++ {
			sum += i
		}
	})
	if sum != 45 {
		t.Errorf("sum: got %d, want 45", sum)
	}

	count := 0
	p.ForEach(10, func(int) { count++ })
	if count != 10 {
		t.Errorf("count: got %d, want 10", count)
	}
}
