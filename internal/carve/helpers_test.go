package carve

import (
	"math/rand/v2"
	"testing"

	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

// newTestPool returns a pool that is closed when the test ends.
func newTestPool(t *testing.T, workers int) *parallel.Pool {
	t.Helper()
	p := parallel.New(workers)
	t.Cleanup(p.Close)
	return p
}

// grayRaster builds a single-channel raster from rows of values.
func grayRaster(rows [][]uint8) *Raster {
	r := NewRaster(len(rows[0]), len(rows), 1)
	for y, row := range rows {
		copy(r.Pix[y*r.Width:], row)
	}
	return r
}

// uniformRaster builds a raster where every sample has the same value.
func uniformRaster(width, height, channels int, v uint8) *Raster {
	r := NewRaster(width, height, channels)
	for i := range r.Pix {
		r.Pix[i] = v
	}
	return r
}

// randomRaster builds a reproducible noisy raster.
func randomRaster(seed uint64, width, height, channels int) *Raster {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r := NewRaster(width, height, channels)
	for i := range r.Pix {
		r.Pix[i] = uint8(rng.IntN(256))
	}
	return r
}

// gridFromRows builds a grid from rows of values.
func gridFromRows(rows [][]uint32) *Grid {
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		copy(g.Row(y), row)
	}
	return g
}

// randomGrid builds a reproducible grid with values in [0, limit).
func randomGrid(seed uint64, width, height int, limit int) *Grid {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	g := NewGrid(width, height)
	for i := range g.Values {
		g.Values[i] = uint32(rng.IntN(limit))
	}
	return g
}

// checkSeamsInBands fails the test if a seam leaves its band or jumps more
// than one column between rows.
func checkSeamsInBands(t *testing.T, seams []Seam, width int) {
	t.Helper()
	bands := Bands(width, len(seams))
	for b, seam := range seams {
		for y, x := range seam {
			if !bands[b].Contains(x) {
				t.Fatalf("band %d [%d,%d): seam at row %d is column %d", b, bands[b].Low, bands[b].High, y, x)
			}
			if y > 0 {
				if d := x - seam[y-1]; d < -1 || d > 1 {
					t.Fatalf("band %d: seam jumps from %d to %d at row %d", b, seam[y-1], x, y)
				}
			}
		}
	}
}
