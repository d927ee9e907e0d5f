package carve

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTraceSeams_UniformPicksLeftmost(t *testing.T) {
	pool := newTestPool(t, 2)
	energy := ComputeEnergy(pool, uniformRaster(4, 3, 1, 100))
	cost := NewPropagator(pool, RowSequential, 0).Propagate(energy)

	seams, err := TraceSeams(pool, cost, 1)
	if err != nil {
		t.Fatalf("TraceSeams failed: %v", err)
	}
	if diff := cmp.Diff([]Seam{{0, 0, 0}}, seams); diff != "" {
		t.Errorf("seams mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceSeams_AvoidsHighEnergyColumn(t *testing.T) {
	pool := newTestPool(t, 2)
	energy := NewGrid(8, 3)
	for y := 0; y < energy.Height; y++ {
		energy.Set(4, y, 1000)
	}
	cost := NewPropagator(pool, RowSequential, 0).Propagate(energy)

	seams, err := TraceSeams(pool, cost, 1)
	if err != nil {
		t.Fatalf("TraceSeams failed: %v", err)
	}
	for y, x := range seams[0] {
		if x == 4 {
			t.Errorf("seam crosses the high-energy column at row %d", y)
		}
	}
}

func TestTraceBand_TieBreaks(t *testing.T) {
	tests := []struct {
		name string
		cost [][]uint32
		want Seam
	}{
		{
			name: "top row takes first minimum",
			cost: [][]uint32{{5, 1, 1}, {0, 0, 0}},
			want: Seam{1, 1},
		},
		{
			name: "left must be strictly below centre",
			cost: [][]uint32{{9, 0, 9}, {3, 3, 8}},
			want: Seam{1, 1},
		},
		{
			name: "strict left wins",
			cost: [][]uint32{{9, 0, 9}, {2, 3, 8}},
			want: Seam{1, 0},
		},
		{
			name: "strict right wins",
			cost: [][]uint32{{9, 0, 9}, {8, 3, 2}},
			want: Seam{1, 2},
		},
		{
			name: "left equals right below centre stays",
			cost: [][]uint32{{9, 0, 9}, {1, 5, 1}},
			want: Seam{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := gridFromRows(tt.cost)
			got, err := traceBand(cost, Band{Low: 0, High: cost.Width})
			if err != nil {
				t.Fatalf("traceBand failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("seam mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTraceBand_StaysInsideBand(t *testing.T) {
	// The cheapest column of row 1 lies outside the band.
	cost := gridFromRows([][]uint32{
		{9, 9, 1, 9},
		{9, 0, 5, 5},
	})

	got, err := traceBand(cost, Band{Index: 1, Low: 2, High: 4})
	if err != nil {
		t.Fatalf("traceBand failed: %v", err)
	}
	if diff := cmp.Diff(Seam{2, 2}, got); diff != "" {
		t.Errorf("seam mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceBand_UnreachableRowIsInternalError(t *testing.T) {
	cost := gridFromRows([][]uint32{
		{1, 2},
		{Infinite, Infinite},
	})

	_, err := traceBand(cost, Band{Low: 0, High: 2})
	if err == nil {
		t.Fatal("expected an error for an unreachable row")
	}
	if !errors.Is(err, ErrInternal) {
		t.Errorf("error should wrap ErrInternal: %v", err)
	}
	var inv *InvariantError
	if !errors.As(err, &inv) || inv.Stage != "trace" {
		t.Errorf("expected *InvariantError from trace, got %T %v", err, err)
	}
}

func TestTraceSeams_BandsHoldTheirSeams(t *testing.T) {
	pool := newTestPool(t, 4)

	for _, k := range []int{1, 2, 4, 8, 16} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			energy := ComputeEnergy(pool, randomRaster(uint64(k), 64, 40, 3))
			cost := NewPropagator(pool, TiledWavefront, 0).Propagate(energy)

			seams, err := TraceSeams(pool, cost, k)
			if err != nil {
				t.Fatalf("TraceSeams failed: %v", err)
			}
			if len(seams) != k {
				t.Fatalf("got %d seams, want %d", len(seams), k)
			}
			for _, s := range seams {
				if len(s) != cost.Height {
					t.Fatalf("seam length %d, want %d", len(s), cost.Height)
				}
			}
			checkSeamsInBands(t, seams, cost.Width)
		})
	}
}
