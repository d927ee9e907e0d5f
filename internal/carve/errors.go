package carve

import (
	"errors"
	"fmt"
)

// Validation errors. They are returned before any processing starts.
var (
	ErrSeamCountRange   = errors.New("seam count out of range")
	ErrBandCountRange   = errors.New("band count out of range")
	ErrBandCountDivisor = errors.New("band count must evenly divide width and seam count")
	ErrInvalidRaster    = errors.New("invalid raster")
)

// ErrInternal marks failures of the engine's own invariants.
var ErrInternal = errors.New("internal error")

// InvariantError reports an engine invariant that did not hold. The job
// that produced it is aborted.
type InvariantError struct {
	Stage  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInternal, e.Stage, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInternal
}
