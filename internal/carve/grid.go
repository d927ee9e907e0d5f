package carve

import (
	"fmt"
	"slices"
)

// Grid is a dense Height x Width field of unsigned scalars, stored row-major.
// It backs both the energy field and the cumulative cost field.
type Grid struct {
	Width  int
	Height int
	Values []uint32
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Values: make([]uint32, width*height),
	}
}

// Index is the row-major offset of (x, y).
func (g *Grid) Index(x, y int) int {
	if boundsCheck && (x < 0 || x >= g.Width || y < 0 || y >= g.Height) {
		panic(fmt.Sprintf("carve: cell (%d,%d) outside %dx%d grid", x, y, g.Width, g.Height))
	}
	return y*g.Width + x
}

// At returns the value at (x, y).
func (g *Grid) At(x, y int) uint32 {
	return g.Values[g.Index(x, y)]
}

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v uint32) {
	g.Values[g.Index(x, y)] = v
}

// Row returns row y. The slice aliases Values.
func (g *Grid) Row(y int) []uint32 {
	start := g.Index(0, y)
	return g.Values[start : start+g.Width : start+g.Width]
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	return &Grid{Width: g.Width, Height: g.Height, Values: slices.Clone(g.Values)}
}

// Equal reports whether both grids have the same shape and values.
func (g *Grid) Equal(other *Grid) bool {
	return g.Width == other.Width && g.Height == other.Height && slices.Equal(g.Values, other.Values)
}

// Band is a contiguous column range [Low, High) owned by one seam.
type Band struct {
	Index int
	Low   int
	High  int
}

// Contains reports whether column x lies inside the band.
func (b Band) Contains(x int) bool {
	return x >= b.Low && x < b.High
}

// Bands splits width into k equal bands. k must divide width.
func Bands(width, k int) []Band {
	size := width / k
	bands := make([]Band, k)
	for i := range bands {
		bands[i] = Band{Index: i, Low: i * size, High: (i + 1) * size}
	}
	return bands
}

// Seam is a vertical path: one column index per row, top to bottom.
type Seam []int
