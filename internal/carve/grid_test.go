package carve

import (
	"errors"
	"testing"
)

func TestGrid_IndexAndRow(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(2, 1, 7)

	if got := g.Index(2, 1); got != 6 {
		t.Errorf("Index(2,1): got %d, want 6", got)
	}
	if got := g.At(2, 1); got != 7 {
		t.Errorf("At(2,1): got %d, want 7", got)
	}
	row := g.Row(1)
	if len(row) != 4 || row[2] != 7 {
		t.Errorf("Row(1): got %v", row)
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := gridFromRows([][]uint32{{1, 2}, {3, 4}})
	c := g.Clone()
	c.Set(0, 0, 99)

	if g.At(0, 0) != 1 {
		t.Error("Clone shares storage with the original")
	}
	if g.Equal(c) {
		t.Error("Equal: modified clone still reported equal")
	}
}

func TestGrid_Bounded(t *testing.T) {
	g := gridFromRows([][]uint32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	})

	tests := []struct {
		name      string
		x, y      int
		low, high int
		want      uint32
	}{
		{"inside", 1, 1, 0, 4, 6},
		{"inside band", 2, 0, 2, 4, 3},
		{"left of band", 1, 0, 2, 4, Infinite},
		{"right of band", 2, 0, 0, 2, Infinite},
		{"left of image", -1, 0, 0, 4, Infinite},
		{"right of image", 4, 0, 0, 4, Infinite},
		{"above image", 0, -1, 0, 4, Infinite},
		{"below image", 0, 2, 0, 4, Infinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Bounded(tt.x, tt.y, tt.low, tt.high); got != tt.want {
				t.Errorf("Bounded(%d,%d,%d,%d): got %d, want %d", tt.x, tt.y, tt.low, tt.high, got, tt.want)
			}
		})
	}
}

func TestClampedPixel(t *testing.T) {
	r := grayRaster([][]uint8{
		{1, 2, 3},
		{4, 5, 6},
	})

	tests := []struct {
		x, y int
		want uint8
	}{
		{-1, -1, 1},
		{3, -5, 3},
		{-2, 5, 4},
		{7, 7, 6},
		{1, 1, 5},
	}
	for _, tt := range tests {
		if got := clampedPixel(r, tt.x, tt.y)[0]; got != tt.want {
			t.Errorf("clampedPixel(%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBands(t *testing.T) {
	bands := Bands(12, 3)
	want := []Band{
		{Index: 0, Low: 0, High: 4},
		{Index: 1, Low: 4, High: 8},
		{Index: 2, Low: 8, High: 12},
	}
	if len(bands) != len(want) {
		t.Fatalf("got %d bands, want %d", len(bands), len(want))
	}
	for i := range want {
		if bands[i] != want[i] {
			t.Errorf("band %d: got %+v, want %+v", i, bands[i], want[i])
		}
	}
	if !bands[1].Contains(4) || bands[1].Contains(8) {
		t.Error("Contains: band range should be [Low, High)")
	}
}

func TestRaster_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       *Raster
		wantErr bool
	}{
		{"valid rgb", NewRaster(2, 2, 3), false},
		{"nil", nil, true},
		{"zero width", &Raster{Width: 0, Height: 2, Channels: 1}, true},
		{"five channels", NewRaster(2, 2, 5), true},
		{"short buffer", &Raster{Width: 2, Height: 2, Channels: 1, Pix: make([]uint8, 3)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate: got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRaster) {
				t.Errorf("error should wrap ErrInvalidRaster: %v", err)
			}
		})
	}
}

func TestRaster_PixelAndClone(t *testing.T) {
	r := NewRaster(2, 1, 3)
	copy(r.Pixel(1, 0), []uint8{10, 20, 30})

	if got := r.Offset(1, 0); got != 3 {
		t.Errorf("Offset(1,0): got %d, want 3", got)
	}
	c := r.Clone()
	c.Pixel(1, 0)[0] = 0
	if r.Pixel(1, 0)[0] != 10 {
		t.Error("Clone shares storage with the original")
	}
}
