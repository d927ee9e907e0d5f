package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
)

// DefaultSeamColor is the highlight used for seams when none is given.
const DefaultSeamColor = "#B40000"

// ParseSeamColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseSeamColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid seam color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// RenderSeamOverlay draws the energy field in grayscale and paints every seam
// pixel on top of it. An empty or invalid hex falls back to DefaultSeamColor.
func RenderSeamOverlay(g *carve.Grid, seams []carve.Seam, hex string) *image.RGBA {
	seamColor, err := ParseSeamColor(hex)
	if err != nil {
		seamColor, _ = ParseSeamColor(DefaultSeamColor)
	}

	out := clone.AsRGBA(RenderEnergy(g))
	for _, s := range seams {
		for y, x := range s {
			out.SetRGBA(x, y, seamColor)
		}
	}
	return out
}

// OverlayRecorder is a carve.Observer that keeps one iteration of a job for
// rendering. A negative index keeps the last iteration.
type OverlayRecorder struct {
	index int

	mu   sync.Mutex
	it   carve.Iteration
	seen bool
}

// NewOverlayRecorder creates a recorder that keeps iteration index.
func NewOverlayRecorder(index int) *OverlayRecorder {
	return &OverlayRecorder{index: index}
}

// ObserveIteration implements carve.Observer.
func (r *OverlayRecorder) ObserveIteration(it carve.Iteration) {
	if r.index >= 0 && it.Index != r.index {
		return
	}
	r.mu.Lock()
	r.it = it
	r.seen = true
	r.mu.Unlock()
}

// Iteration returns the recorded iteration and whether one was seen.
func (r *OverlayRecorder) Iteration() (carve.Iteration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.it, r.seen
}

// SeamOverlayResult contains one iteration's seams drawn over its energy
// field, encoded as base64 PNG.
type SeamOverlayResult struct {
	// Width and Height of the energy field at that iteration.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Iteration is the 0-based pass that was rendered, out of Passes.
	Iteration int `json:"iteration"`
	Passes    int `json:"passes"`

	// Seams holds the column of every seam on every row, one slice per band.
	Seams []carve.Seam `json:"seams"`

	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Render draws the recorded iteration. It fails when the job ended before the
// requested iteration was reached.
func (r *OverlayRecorder) Render(hex string) (*SeamOverlayResult, error) {
	it, ok := r.Iteration()
	if !ok {
		if r.index < 0 {
			return nil, fmt.Errorf("the job ran no passes")
		}
		return nil, fmt.Errorf("iteration %d was not reached", r.index)
	}

	encoded, err := EncodePNGBase64(RenderSeamOverlay(it.Energy, it.Seams, hex))
	if err != nil {
		return nil, err
	}

	return &SeamOverlayResult{
		Width:       it.Energy.Width,
		Height:      it.Energy.Height,
		Iteration:   it.Index,
		Passes:      it.Passes,
		Seams:       it.Seams,
		ImageBase64: encoded,
		MimeType:    PNGMimeType,
	}, nil
}
