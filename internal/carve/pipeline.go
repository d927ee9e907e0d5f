package carve

import (
	"fmt"
	"time"

	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

// Options configures a carving job.
type Options struct {
	// SeamCount is the number of columns to remove (N).
	SeamCount int

	// BandCount is the number of seams removed per pass (K). It must divide
	// both the image width and SeamCount.
	BandCount int

	// Strategy schedules the cost recurrence.
	Strategy Strategy

	// StripHeight is the strip height of TiledWavefront.
	// Zero selects DefaultStripHeight.
	StripHeight int
}

// Iteration is what an Observer sees of one pass: the energy field the seams
// were traced on and the seams themselves, before they are removed.
type Iteration struct {
	Index  int
	Passes int
	Energy *Grid
	Seams  []Seam
}

// Observer receives every pass of a job. The energy grid and seams stay
// valid after the call returns; the job never reuses them.
type Observer interface {
	ObserveIteration(it Iteration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(it Iteration)

// ObserveIteration calls f(it).
func (f ObserverFunc) ObserveIteration(it Iteration) { f(it) }

// Stats holds cumulative stage timings of a job.
type Stats struct {
	Passes int           `json:"passes"`
	Energy time.Duration `json:"energy_ns"`
	Cost   time.Duration `json:"cost_ns"`
	Trace  time.Duration `json:"trace_ns"`
	Remove time.Duration `json:"remove_ns"`
	Total  time.Duration `json:"total_ns"`
}

// Validate checks the job parameters against an image width. Nothing is
// computed when it fails.
func Validate(width, seamCount, bandCount int) error {
	if seamCount < 0 || seamCount >= width {
		return fmt.Errorf("%w: %d seams requested for width %d", ErrSeamCountRange, seamCount, width)
	}
	if bandCount <= 0 || bandCount > width {
		return fmt.Errorf("%w: %d bands for width %d", ErrBandCountRange, bandCount, width)
	}
	if width%bandCount != 0 || seamCount%bandCount != 0 {
		return fmt.Errorf("%w: width %d, seams %d, bands %d", ErrBandCountDivisor, width, seamCount, bandCount)
	}
	return nil
}

// SuggestBandCount returns the largest band count no greater than preferred
// that Validate accepts for width and seamCount. It returns 1 when nothing
// larger fits.
func SuggestBandCount(width, seamCount, preferred int) int {
	for k := min(preferred, width); k > 1; k-- {
		if width%k == 0 && seamCount%k == 0 {
			return k
		}
	}
	return 1
}

// Carver runs carving jobs on a worker pool. A Carver holds no per-job
// state between calls; every call to Carve builds its own buffers.
type Carver struct {
	pool       *parallel.Pool
	opts       Options
	propagator *Propagator
	observer   Observer
	progress   func(done, total int)
}

// New creates a Carver. The pool is borrowed, not owned.
func New(pool *parallel.Pool, opts Options) *Carver {
	return &Carver{
		pool:       pool,
		opts:       opts,
		propagator: NewPropagator(pool, opts.Strategy, opts.StripHeight),
	}
}

// WithObserver attaches a debug consumer that sees every pass.
func (c *Carver) WithObserver(o Observer) *Carver {
	c.observer = o
	return c
}

// WithProgress attaches a callback invoked after every pass.
func (c *Carver) WithProgress(fn func(done, total int)) *Carver {
	c.progress = fn
	return c
}

// job is the state of a single resize: the current raster and its energy.
// It lives for one Carve call.
type job struct {
	img    *Raster
	energy *Grid
	seams  []Seam
}

// Carve removes opts.SeamCount columns from src and returns the narrower
// raster. src is not modified.
func (c *Carver) Carve(src *Raster) (*Raster, *Stats, error) {
	if err := src.Validate(); err != nil {
		return nil, nil, err
	}
	if err := Validate(src.Width, c.opts.SeamCount, c.opts.BandCount); err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	begin := time.Now()
	defer func() { stats.Total = time.Since(begin) }()

	j := &job{img: src.Clone()}
	passes := c.opts.SeamCount / c.opts.BandCount

	start := time.Now()
	j.energy = ComputeEnergy(c.pool, j.img)
	stats.Energy += time.Since(start)

	for pass := 0; pass < passes; pass++ {
		if pass > 0 {
			start = time.Now()
			j.energy = RefreshEnergy(c.pool, j.img, j.energy, j.seams)
			stats.Energy += time.Since(start)
		}

		start = time.Now()
		cost := c.propagator.Propagate(j.energy)
		stats.Cost += time.Since(start)

		start = time.Now()
		seams, err := TraceSeams(c.pool, cost, c.opts.BandCount)
		stats.Trace += time.Since(start)
		if err != nil {
			return nil, nil, fmt.Errorf("pass %d of %d: %w", pass+1, passes, err)
		}
		j.seams = seams

		if c.observer != nil {
			c.observer.ObserveIteration(Iteration{
				Index:  pass,
				Passes: passes,
				Energy: j.energy,
				Seams:  seams,
			})
		}

		start = time.Now()
		j.img = RemoveSeams(c.pool, j.img, seams)
		stats.Remove += time.Since(start)

		stats.Passes++
		if c.progress != nil {
			c.progress(pass+1, passes)
		}
	}

	return j.img, stats, nil
}

// Carve runs a single job on a pool of GOMAXPROCS workers that lives only
// for the duration of the call.
func Carve(src *Raster, opts Options) (*Raster, *Stats, error) {
	pool := parallel.New(0)
	defer pool.Close()
	return New(pool, opts).Carve(src)
}
