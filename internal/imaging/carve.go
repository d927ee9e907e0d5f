package imaging

import (
	"image"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

// SeamCarveResult describes a finished carve.
type SeamCarveResult struct {
	OriginalWidth int `json:"original_width"`
	Width         int `json:"width"`
	Height        int `json:"height"`
	Channels      int `json:"channels"`

	SeamsRemoved int    `json:"seams_removed"`
	BandCount    int    `json:"band_count"`
	Strategy     string `json:"strategy"`

	Stats *carve.Stats `json:"stats"`

	// OutputPath is set when the result was written to disk instead of
	// returned inline.
	OutputPath string `json:"output_path,omitempty"`

	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// SeamCarve narrows img by opts.SeamCount columns on the pool. observer may be
// nil. img is not modified; the result has the same color model family as
// described by FromRaster.
func SeamCarve(pool *parallel.Pool, img image.Image, opts carve.Options, observer carve.Observer, progress func(done, total int)) (image.Image, *SeamCarveResult, error) {
	src := ToRaster(img)

	c := carve.New(pool, opts)
	if observer != nil {
		c.WithObserver(observer)
	}
	if progress != nil {
		c.WithProgress(progress)
	}

	out, stats, err := c.Carve(src)
	if err != nil {
		return nil, nil, err
	}

	return FromRaster(out), &SeamCarveResult{
		OriginalWidth: src.Width,
		Width:         out.Width,
		Height:        out.Height,
		Channels:      out.Channels,
		SeamsRemoved:  opts.SeamCount,
		BandCount:     opts.BandCount,
		Strategy:      opts.Strategy.String(),
		Stats:         stats,
	}, nil
}

// Attach encodes img as base64 PNG into the result.
func (r *SeamCarveResult) Attach(img image.Image) error {
	encoded, err := EncodePNGBase64(img)
	if err != nil {
		return err
	}
	r.ImageBase64 = encoded
	r.MimeType = PNGMimeType
	return nil
}
