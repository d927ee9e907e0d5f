package carve

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// randomSeams draws one 8-connected seam per band.
func randomSeams(seed uint64, width, height, k int) []Seam {
	rng := rand.New(rand.NewPCG(seed, 99))
	seams := make([]Seam, k)
	for b, band := range Bands(width, k) {
		s := make(Seam, height)
		s[0] = band.Low + rng.IntN(band.High-band.Low)
		for y := 1; y < height; y++ {
			x := s[y-1] + rng.IntN(3) - 1
			s[y] = clamp(x, band.Low, band.High-1)
		}
		seams[b] = s
	}
	return seams
}

func TestRefreshEnergy_MatchesFullRecompute(t *testing.T) {
	pool := newTestPool(t, 4)

	cases := []struct {
		w, h, c, k int
	}{
		{8, 3, 1, 1},
		{12, 9, 3, 2},
		{16, 16, 4, 4},
		{30, 12, 3, 10},
		{24, 7, 2, 12},
		{40, 1, 3, 4},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%dx%dx%d/k=%d", tc.w, tc.h, tc.c, tc.k), func(t *testing.T) {
			r := randomRaster(uint64(100+i), tc.w, tc.h, tc.c)
			energy := ComputeEnergy(pool, r)

			for trial := 0; trial < 5; trial++ {
				seams := randomSeams(uint64(trial*31+i), tc.w, tc.h, tc.k)
				compacted := RemoveSeams(pool, r, seams)

				got := RefreshEnergy(pool, compacted, energy, seams)
				want := ComputeEnergy(pool, compacted)
				if diff := cmp.Diff(want.Values, got.Values); diff != "" {
					t.Fatalf("trial %d: refreshed energy differs (-full +refreshed):\n%s", trial, diff)
				}
			}
		})
	}
}

func TestRefreshEnergy_TracedSeamsOverSeveralPasses(t *testing.T) {
	pool := newTestPool(t, 4)
	prop := NewPropagator(pool, TiledWavefront, 5)

	r := randomRaster(5, 48, 20, 3)
	energy := ComputeEnergy(pool, r)

	for pass := 0; pass < 4; pass++ {
		cost := prop.Propagate(energy)
		seams, err := TraceSeams(pool, cost, 4)
		if err != nil {
			t.Fatalf("pass %d: TraceSeams failed: %v", pass, err)
		}
		r = RemoveSeams(pool, r, seams)
		energy = RefreshEnergy(pool, r, energy, seams)

		if diff := cmp.Diff(ComputeEnergy(pool, r).Values, energy.Values); diff != "" {
			t.Fatalf("pass %d: refreshed energy differs (-full +refreshed):\n%s", pass, diff)
		}
	}
}

func TestRefreshEnergy_WritesFreshGrid(t *testing.T) {
	pool := newTestPool(t, 2)
	r := randomRaster(9, 6, 4, 1)
	energy := ComputeEnergy(pool, r)
	before := energy.Clone()

	seams := randomSeams(1, 6, 4, 2)
	RefreshEnergy(pool, RemoveSeams(pool, r, seams), energy, seams)

	if !before.Equal(energy) {
		t.Error("RefreshEnergy modified the previous energy grid")
	}
}

func TestNearSeam(t *testing.T) {
	seams := []Seam{
		{1, 2, 3},
		{6, 6, 5},
	}

	tests := []struct {
		name string
		b    int
		x, y int
		want bool
	}{
		{"on seam", 0, 2, 1, true},
		{"left of seam", 0, 1, 1, true},
		{"seam in row above", 0, 0, 1, true},
		{"seam in row below", 0, 4, 1, true},
		{"two columns away", 0, 0, 2, false},
		{"neighbour band seam", 0, 5, 0, true},
		{"top row ignores missing row above", 1, 8, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearSeam(seams, tt.b, tt.x, tt.y); got != tt.want {
				t.Errorf("nearSeam(b=%d, x=%d, y=%d): got %v, want %v", tt.b, tt.x, tt.y, got, tt.want)
			}
		})
	}
}
