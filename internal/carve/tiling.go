package carve

// Tiled wavefront schedule for the cost recurrence.
//
// A strip covers rows bottom, bottom-1, ..., bottom-height+1 and assumes row
// bottom+1 is final. Level k of the strip is row bottom-k. With T = 2*S:
//
//	upward triangle i:   columns [i*T + k, i*T + T - k) at level k
//	downward triangle j: columns [j*T - k, j*T + k)     at level k
//
// At every level the upward spans and the downward spans tile the row
// exactly. An upward cell only reads cells of its own triangle one level
// down (or the final row below the strip). A downward cell reads its own
// triangle plus the two columns on either side, which belong to upward
// triangles. So all upward triangles can run at once, and after one barrier
// all downward triangles can run at once.
//
//	S = 3     u: upward  d: downward
//	level 2   dduudddduudddd
//	level 1   duuuudduuuuddu
//	level 0   uuuuuuuuuuuuuu

type triangle struct {
	bottom int // row of level 0
	levels int
	left   int // upward: base start; downward: apex column
	base   int // upward base width, T
	up     bool
}

// span returns the columns of level k, clipped to [0, width).
func (t triangle) span(k, width int) (lo, hi int) {
	if t.up {
		lo, hi = t.left+k, t.left+t.base-k
	} else {
		lo, hi = t.left-k, t.left+k
	}
	return max(lo, 0), min(hi, width)
}

// relax computes every cell of the triangle, bottom level first.
func (t triangle) relax(energy, cost *Grid) {
	for k := 0; k < t.levels; k++ {
		lo, hi := t.span(k, energy.Width)
		if lo < hi {
			relaxSpan(energy, cost, t.bottom-k, lo, hi)
		}
	}
}

// stripPlan is the task graph of one strip: upward triangles, a barrier,
// then downward triangles.
type stripPlan struct {
	upward   []triangle
	downward []triangle
}

func (p stripPlan) stages() [][]triangle {
	return [][]triangle{p.upward, p.downward}
}

// planStrip lays out the triangles of the strip whose lowest row is bottom.
// The strip is cut short at the top of the image.
func planStrip(width, bottom, stripHeight int) stripPlan {
	levels := min(stripHeight, bottom+1)
	base := 2 * stripHeight
	count := (width + base - 1) / base

	plan := stripPlan{
		upward:   make([]triangle, 0, count),
		downward: make([]triangle, 0, count+1),
	}
	for i := 0; i < count; i++ {
		plan.upward = append(plan.upward, triangle{
			bottom: bottom, levels: levels, left: i * base, base: base, up: true,
		})
	}
	// Downward apexes sit at every multiple of base, including one past the
	// last upward triangle to fill the right edge. The one at column 0 has
	// no cells at level 0 but still owns the left edge above it.
	for j := 0; j <= count; j++ {
		apex := j * base
		if apex-(levels-1) >= width {
			break
		}
		if levels < 2 {
			break
		}
		plan.downward = append(plan.downward, triangle{
			bottom: bottom, levels: levels, left: apex, up: false,
		})
	}
	return plan
}
