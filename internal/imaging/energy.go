package imaging

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

// EnergyStats summarises an energy field.
type EnergyStats struct {
	Min    uint32  `json:"min"`
	Max    uint32  `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// ComputeEnergyStats returns the minimum, maximum, mean and sample standard
// deviation of g. The standard deviation of a single-cell grid is 0.
func ComputeEnergyStats(g *carve.Grid) EnergyStats {
	if len(g.Values) == 0 {
		return EnergyStats{}
	}

	s := EnergyStats{Min: math.MaxUint32}
	values := make([]float64, len(g.Values))
	for i, v := range g.Values {
		values[i] = float64(v)
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}

	if len(values) < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}

// RenderEnergy draws an energy field as a grayscale image scaled so that the
// grid's maximum is white. An all-zero field renders black.
func RenderEnergy(g *carve.Grid) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.Width, g.Height))

	var peak uint32
	for _, v := range g.Values {
		peak = max(peak, v)
	}
	if peak == 0 {
		return out
	}

	for i, v := range g.Values {
		out.Pix[i] = uint8(uint64(v) * 255 / uint64(peak))
	}
	return out
}

// EnergyMapResult contains a rendered energy field encoded as base64 PNG.
type EnergyMapResult struct {
	// Width and Height of the energy field (same as the image).
	Width  int `json:"width"`
	Height int `json:"height"`

	// Channels is the number of channels the energy was averaged over.
	Channels int `json:"channels"`

	Stats EnergyStats `json:"stats"`

	// ImageBase64 is the normalised energy field as base64 PNG.
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EnergyMap computes the gradient energy of img on the pool and renders it.
//
// High values mark strong edges, which the carver avoids; dark regions are
// where seams will go first.
func EnergyMap(pool *parallel.Pool, img image.Image) (*EnergyMapResult, error) {
	r := ToRaster(img)
	energy := carve.ComputeEnergy(pool, r)

	encoded, err := EncodePNGBase64(RenderEnergy(energy))
	if err != nil {
		return nil, err
	}

	return &EnergyMapResult{
		Width:       energy.Width,
		Height:      energy.Height,
		Channels:    r.Channels,
		Stats:       ComputeEnergyStats(energy),
		ImageBase64: encoded,
		MimeType:    PNGMimeType,
	}, nil
}
