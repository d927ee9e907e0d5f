package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
)

func TestChannelCount(t *testing.T) {
	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	translucent.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 128})

	opaque := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}

	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 2, 2)), 1},
		{"gray16", image.NewGray16(image.Rect(0, 0, 2, 2)), 1},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), 3},
		{"opaque nrgba", opaque, 3},
		{"translucent nrgba", translucent, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChannelCount(tt.img); got != tt.want {
				t.Errorf("ChannelCount: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToRaster_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 10)
	}

	// A sub-image keeps its parent's stride and origin.
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	r := ToRaster(sub)

	want := &carve.Raster{Width: 2, Height: 2, Channels: 1, Pix: []uint8{50, 60, 90, 100}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("raster mismatch (-want +got):\n%s", diff)
	}
}

func TestToRaster_Gray16(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 0xffff})
	img.SetGray16(1, 0, color.Gray16{Y: 0x80ff})

	r := ToRaster(img)
	if diff := cmp.Diff([]uint8{0xff, 0x80}, r.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestToRaster_OpaqueColorDropsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 128, 255, 255})

	r := ToRaster(img)
	if r.Channels != 3 {
		t.Fatalf("Channels: got %d, want 3", r.Channels)
	}
	if diff := cmp.Diff([]uint8{255, 0, 0, 0, 128, 255}, r.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestToRaster_KeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 40})

	r := ToRaster(img)
	if diff := cmp.Diff([]uint8{10, 20, 30, 40}, r.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRaster(t *testing.T) {
	tests := []struct {
		name string
		r    *carve.Raster
		at   color.Color
	}{
		{"gray", &carve.Raster{Width: 1, Height: 1, Channels: 1, Pix: []uint8{77}}, color.Gray{77}},
		{"gray alpha", &carve.Raster{Width: 1, Height: 1, Channels: 2, Pix: []uint8{77, 9}}, color.NRGBA{77, 77, 77, 9}},
		{"rgb", &carve.Raster{Width: 1, Height: 1, Channels: 3, Pix: []uint8{1, 2, 3}}, color.NRGBA{1, 2, 3, 255}},
		{"rgba", &carve.Raster{Width: 1, Height: 1, Channels: 4, Pix: []uint8{1, 2, 3, 4}}, color.NRGBA{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := FromRaster(tt.r)
			if got := img.At(0, 0); got != tt.at {
				t.Errorf("At(0,0): got %v, want %v", got, tt.at)
			}
		})
	}
}

func TestRaster_RoundTrip(t *testing.T) {
	for _, channels := range []int{1, 3, 4} {
		r := carve.NewRaster(5, 4, channels)
		for i := range r.Pix {
			r.Pix[i] = uint8(i*37 + 1)
		}
		if channels == 4 {
			// keep the image translucent so ToRaster keeps all four channels
			r.Pix[3] = 0
		}

		got := ToRaster(FromRaster(r))
		if diff := cmp.Diff(r, got); diff != "" {
			t.Errorf("%d channels: round trip mismatch (-want +got):\n%s", channels, diff)
		}
	}
}
