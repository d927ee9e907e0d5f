package carve

import "github.com/ironsheep/seamcarve-mcp/internal/parallel"

// RemoveSeams returns a new raster without the pixels on the given seams.
// Seams must be ordered left to right (as TraceSeams returns them) and must
// not share a pixel in any row. The input raster is left untouched.
//
// Rows are independent and run in parallel. Within a row the scan goes left
// to right, counting the seams passed so far: a kept pixel at column x lands
// at column x - passed.
func RemoveSeams(pool *parallel.Pool, r *Raster, seams []Seam) *Raster {
	out := NewRaster(r.Width-len(seams), r.Height, r.Channels)
	ch := r.Channels

	pool.ParallelFor(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			src := r.Pix[r.Offset(0, y) : r.Offset(0, y)+r.Width*ch]
			dst := out.Pix[y*out.Width*ch : (y+1)*out.Width*ch]

			passed := 0
			for x := 0; x < r.Width; x++ {
				if passed < len(seams) && seams[passed][y] == x {
					passed++
					continue
				}
				copy(dst[(x-passed)*ch:(x-passed+1)*ch], src[x*ch:(x+1)*ch])
			}
		}
	})
	return out
}
