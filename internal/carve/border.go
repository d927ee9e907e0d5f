package carve

import "math"

// Infinite is the cost of an unreachable cell.
const Infinite uint32 = math.MaxUint32

// clamp constrains val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// clampedPixel returns the pixel nearest to (x, y) that lies inside r.
// Gradients near the border therefore see replicated edge pixels, never
// wrapped ones.
func clampedPixel(r *Raster, x, y int) []uint8 {
	return r.Pixel(clamp(x, 0, r.Width-1), clamp(y, 0, r.Height-1))
}

// Bounded returns the value at (x, y) when x lies in [low, high) and y lies
// inside the grid, and Infinite otherwise. Band-scoped seam search relies on
// this to keep every seam inside its band.
func (g *Grid) Bounded(x, y, low, high int) uint32 {
	if x < low || x >= high || y < 0 || y >= g.Height {
		return Infinite
	}
	return g.At(x, y)
}
