package carve

import (
	"fmt"
	"strings"

	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

// Strategy selects how the cost recurrence is scheduled. Every strategy
// produces the same cost field.
type Strategy int

const (
	// RowSequential relaxes one row at a time with its columns in parallel,
	// paying one barrier per row.
	RowSequential Strategy = iota

	// TiledWavefront groups rows into strips and relaxes each strip as two
	// stages of independent triangles, paying two barriers per strip.
	TiledWavefront
)

// DefaultStripHeight is the strip height used by TiledWavefront.
const DefaultStripHeight = 15

func (s Strategy) String() string {
	switch s {
	case RowSequential:
		return "rows"
	case TiledWavefront:
		return "tiled"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "rows" or "tiled" (case-insensitive) to a Strategy.
// An empty name selects RowSequential.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rows", "row", "sequential":
		return RowSequential, nil
	case "tiled", "triangles", "wavefront":
		return TiledWavefront, nil
	default:
		return 0, fmt.Errorf("unknown cost strategy %q (want rows or tiled)", name)
	}
}

// Propagator computes cumulative minimum seam costs from an energy field.
type Propagator struct {
	pool        *parallel.Pool
	strategy    Strategy
	stripHeight int
}

// NewPropagator creates a propagator. stripHeight is only used by
// TiledWavefront; values below 1 fall back to DefaultStripHeight.
func NewPropagator(pool *parallel.Pool, strategy Strategy, stripHeight int) *Propagator {
	if stripHeight < 1 {
		stripHeight = DefaultStripHeight
	}
	return &Propagator{pool: pool, strategy: strategy, stripHeight: stripHeight}
}

// Propagate returns a new cost field where each cell holds the minimum total
// energy of any seam starting there and running to the bottom row.
func (p *Propagator) Propagate(energy *Grid) *Grid {
	cost := NewGrid(energy.Width, energy.Height)
	copy(cost.Row(energy.Height-1), energy.Row(energy.Height-1))

	switch p.strategy {
	case TiledWavefront:
		p.propagateTiled(energy, cost)
	default:
		p.propagateRows(energy, cost)
	}
	return cost
}

func (p *Propagator) propagateRows(energy, cost *Grid) {
	for y := energy.Height - 2; y >= 0; y-- {
		p.pool.ParallelFor(energy.Width, func(start, end int) {
			relaxSpan(energy, cost, y, start, end)
		})
	}
}

func (p *Propagator) propagateTiled(energy, cost *Grid) {
	for bottom := energy.Height - 2; bottom >= 0; bottom -= p.stripHeight {
		plan := planStrip(energy.Width, bottom, p.stripHeight)
		for _, stage := range plan.stages() {
			tasks := make([]func(), len(stage))
			for i, tri := range stage {
				tasks[i] = func() { tri.relax(energy, cost) }
			}
			p.pool.Run(tasks)
		}
	}
}

// relaxSpan applies the cost recurrence to columns [start, end) of row y.
// Row y+1 must be final. Neighbours outside the grid count as Infinite, so
// border columns only compare their in-bounds neighbours.
func relaxSpan(energy, cost *Grid, y, start, end int) {
	below := cost.Row(y + 1)
	out := cost.Row(y)
	in := energy.Row(y)
	last := cost.Width - 1
	for x := start; x < end; x++ {
		best := below[x]
		if x > 0 && below[x-1] < best {
			best = below[x-1]
		}
		if x < last && below[x+1] < best {
			best = below[x+1]
		}
		out[x] = in[x] + best
	}
}
