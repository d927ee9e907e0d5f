package carve

import "github.com/ironsheep/seamcarve-mcp/internal/parallel"

// RefreshEnergy derives the energy field of a compacted raster from the
// energy field it had before its seams were removed.
//
// r is the raster after RemoveSeams, old the energy of the raster before,
// and seams the paths that were removed (one per band, left to right). A
// surviving pixel whose old column lies within one column of any seam in
// rows y-1, y or y+1 gets its Sobel energy recomputed on r; every other
// pixel sees exactly the same 3x3 neighbourhood as before and keeps its old
// value, shifted left by the number of seams passed in its row.
//
// The result is always a new grid. Updating old in place would let one
// band's recomputation read a neighbour another band has already
// overwritten in the same pass.
func RefreshEnergy(pool *parallel.Pool, r *Raster, old *Grid, seams []Seam) *Grid {
	energy := NewGrid(r.Width, r.Height)
	k := len(seams)
	if k == 0 {
		copy(energy.Values, old.Values)
		return energy
	}
	bandWidth := old.Width / k

	pool.ParallelFor(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			oldRow := old.Row(y)
			newRow := energy.Row(y)

			passed := 0
			for x := 0; x < old.Width; x++ {
				if passed < k && seams[passed][y] == x {
					passed++
					continue
				}
				nx := x - passed
				if nearSeam(seams, x/bandWidth, x, y) {
					newRow[nx] = PixelEnergy(r, nx, y)
				} else {
					newRow[nx] = oldRow[x]
				}
			}
		}
	})
	return energy
}

// nearSeam reports whether old column x of row y is within one column of a
// seam in rows y-1, y or y+1. Only the seams of band b and its two
// neighbours can come that close.
func nearSeam(seams []Seam, b, x, y int) bool {
	height := len(seams[0])
	for s := max(b-1, 0); s <= min(b+1, len(seams)-1); s++ {
		seam := seams[s]
		for dy := -1; dy <= 1; dy++ {
			row := y + dy
			if row < 0 || row >= height {
				continue
			}
			if d := x - seam[row]; d >= -1 && d <= 1 {
				return true
			}
		}
	}
	return false
}
