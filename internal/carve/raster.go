package carve

import (
	"fmt"
	"slices"
)

// Raster is a decoded image: Width*Height pixels stored row-major with
// Channels interleaved 8-bit samples per pixel.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height, channels int) *Raster {
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Validate checks that the dimensions are usable and agree with the buffer.
func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidRaster)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRaster, r.Width, r.Height)
	}
	if r.Channels < 1 || r.Channels > 4 {
		return fmt.Errorf("%w: %d channels, want 1-4", ErrInvalidRaster, r.Channels)
	}
	if want := r.Width * r.Height * r.Channels; len(r.Pix) != want {
		return fmt.Errorf("%w: buffer holds %d bytes, want %d", ErrInvalidRaster, len(r.Pix), want)
	}
	return nil
}

// Offset returns the index of the first channel of pixel (x, y) in Pix.
func (r *Raster) Offset(x, y int) int {
	if boundsCheck && (x < 0 || x >= r.Width || y < 0 || y >= r.Height) {
		panic(fmt.Sprintf("carve: pixel (%d,%d) outside %dx%d raster", x, y, r.Width, r.Height))
	}
	return (y*r.Width + x) * r.Channels
}

// Pixel returns the channel tuple of (x, y). The slice aliases Pix.
func (r *Raster) Pixel(x, y int) []uint8 {
	i := r.Offset(x, y)
	return r.Pix[i : i+r.Channels : i+r.Channels]
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	return &Raster{
		Width:    r.Width,
		Height:   r.Height,
		Channels: r.Channels,
		Pix:      slices.Clone(r.Pix),
	}
}
