package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
)

// ChannelCount reports how many channels ToRaster produces for img.
//
//   - *image.Gray, *image.Gray16 -> 1
//   - opaque images -> 3
//   - everything else -> 4
func ChannelCount(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	if isOpaque(img) {
		return 3
	}
	return 4
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// ToRaster copies img into an interleaved 8-bit raster. The raster's origin is
// the image's Bounds().Min.
//
// Grayscale images keep a single channel. Every other color model goes
// through non-premultiplied RGBA, dropping the alpha channel when the image is
// fully opaque.
func ToRaster(img image.Image) *carve.Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		r := carve.NewRaster(w, h, 1)
		for y := 0; y < h; y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.Pix[y*w:(y+1)*w], src.Pix[i:i+w])
		}
		return r
	case *image.Gray16:
		r := carve.NewRaster(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r.Pix[y*w+x] = uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return r
	}

	nrgba := imaging.Clone(img)
	if !isOpaque(img) {
		r := carve.NewRaster(w, h, 4)
		copy(r.Pix, nrgba.Pix)
		return r
	}

	r := carve.NewRaster(w, h, 3)
	for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+3 {
		r.Pix[j] = nrgba.Pix[i]
		r.Pix[j+1] = nrgba.Pix[i+1]
		r.Pix[j+2] = nrgba.Pix[i+2]
	}
	return r
}

// FromRaster builds an image from a raster:
//
//   - 1 channel -> *image.Gray
//   - 2 channels (gray, alpha) -> *image.NRGBA
//   - 3 channels -> opaque *image.NRGBA
//   - 4 channels -> *image.NRGBA
//
// The pixel data is copied.
func FromRaster(r *carve.Raster) image.Image {
	rect := image.Rect(0, 0, r.Width, r.Height)

	if r.Channels == 1 {
		g := image.NewGray(rect)
		copy(g.Pix, r.Pix)
		return g
	}

	out := image.NewNRGBA(rect)
	switch r.Channels {
	case 2:
		for i, j := 0, 0; i < len(r.Pix); i, j = i+2, j+4 {
			v := r.Pix[i]
			out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = v, v, v, r.Pix[i+1]
		}
	case 3:
		for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
			out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = r.Pix[i], r.Pix[i+1], r.Pix[i+2], 0xff
		}
	default:
		copy(out.Pix, r.Pix)
	}
	return out
}
