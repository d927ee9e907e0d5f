package carve

import (
	"fmt"

	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

// TraceSeams extracts one minimum-cost seam per band from the cost field.
// Bands share no mutable state and are traced in parallel. The returned
// seams are ordered by band, left to right.
func TraceSeams(pool *parallel.Pool, cost *Grid, k int) ([]Seam, error) {
	bands := Bands(cost.Width, k)
	seams := make([]Seam, k)
	errs := make([]error, k)

	pool.ForEach(k, func(i int) {
		seams[i], errs[i] = traceBand(cost, bands[i])
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return seams, nil
}

// traceBand follows the cheapest path down one band.
//
// Row 0 takes the band's minimum, first one from the left on ties. Each
// following step moves left only if left is strictly cheaper than both
// centre and right, moves right only if right is strictly cheaper than both
// others, and otherwise goes straight down.
func traceBand(cost *Grid, band Band) (Seam, error) {
	seam := make(Seam, cost.Height)

	top := cost.Row(0)
	curX := band.Low
	for x := band.Low + 1; x < band.High; x++ {
		if top[x] < top[curX] {
			curX = x
		}
	}
	seam[0] = curX

	for y := 1; y < cost.Height; y++ {
		left := cost.Bounded(curX-1, y, band.Low, band.High)
		centre := cost.Bounded(curX, y, band.Low, band.High)
		right := cost.Bounded(curX+1, y, band.Low, band.High)

		if left == Infinite && centre == Infinite && right == Infinite {
			return nil, &InvariantError{
				Stage:  "trace",
				Detail: fmt.Sprintf("band %d [%d,%d) has no reachable cell below (%d,%d)", band.Index, band.Low, band.High, curX, y-1),
			}
		}

		switch {
		case left < centre && left < right:
			curX--
		case right < centre && right < left:
			curX++
		}
		seam[y] = curX
	}
	return seam, nil
}
