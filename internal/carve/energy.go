package carve

import (
	"math"

	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

// PixelEnergy computes the Sobel gradient magnitude of pixel (x, y).
//
// For each channel:
//
//	Gx = -p(x-1,y-1) - 2p(x-1,y) - p(x-1,y+1) + p(x+1,y-1) + 2p(x+1,y) + p(x+1,y+1)
//	Gy =  p(x-1,y-1) + 2p(x,y-1) + p(x+1,y-1) - p(x-1,y+1) - 2p(x,y+1) - p(x+1,y+1)
//	e  = round(sqrt(Gx² + Gy²))
//
// Out-of-range neighbours are clamped to the border. The result is the
// channel mean, truncated.
func PixelEnergy(r *Raster, x, y int) uint32 {
	nw := clampedPixel(r, x-1, y-1)
	n := clampedPixel(r, x, y-1)
	ne := clampedPixel(r, x+1, y-1)
	w := clampedPixel(r, x-1, y)
	e := clampedPixel(r, x+1, y)
	sw := clampedPixel(r, x-1, y+1)
	s := clampedPixel(r, x, y+1)
	se := clampedPixel(r, x+1, y+1)

	var total uint32
	for c := 0; c < r.Channels; c++ {
		gx := -int(nw[c]) - 2*int(w[c]) - int(sw[c]) +
			int(ne[c]) + 2*int(e[c]) + int(se[c])
		gy := int(nw[c]) + 2*int(n[c]) + int(ne[c]) -
			int(sw[c]) - 2*int(s[c]) - int(se[c])
		total += uint32(math.Round(math.Sqrt(float64(gx*gx + gy*gy))))
	}
	return total / uint32(r.Channels)
}

// ComputeEnergy builds the energy field of the whole raster. Pixels are
// independent, so rows are simply split across the pool.
func ComputeEnergy(pool *parallel.Pool, r *Raster) *Grid {
	energy := NewGrid(r.Width, r.Height)
	pool.ParallelFor(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := energy.Row(y)
			for x := range row {
				row[x] = PixelEnergy(r, x, y)
			}
		}
	})
	return energy
}
