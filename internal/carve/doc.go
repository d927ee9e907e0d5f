// Package carve implements content-aware width reduction (seam carving).
//
// A job removes N columns from a Raster in N/K passes. Each pass removes K
// seams at once, one per vertical band of the image, so seams removed
// together can never collide.
//
// # Pipeline
//
// Every pass runs the same four stages:
//
//  1. Energy: Sobel gradient magnitude per pixel. Computed in full once per
//     job (ComputeEnergy) and refreshed incrementally afterwards
//     (RefreshEnergy), touching only pixels next to a removed seam.
//  2. Cost: cumulative minimum path cost from every pixel to the bottom edge
//     (Propagator). Either one barrier per row, or a tiled wavefront of
//     upward and downward triangles with two barriers per strip.
//  3. Trace: one minimum-cost seam per band (TraceSeams).
//  4. Remove: all K seams are dropped in a single pass (RemoveSeams).
//
// # Ownership
//
// A Carver owns the raster, energy and cost buffers of the job it runs. No
// state is shared between jobs and no stage mutates a buffer another stage
// is reading: the compactor and the refresher always write to fresh
// buffers.
//
// # Indexing
//
// Grids and rasters are flat row-major slices. Building with the carvedebug
// tag turns on bounds checks in the index helpers.
package carve
