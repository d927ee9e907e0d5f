// Package imaging connects the carving engine to image files and to the MCP
// tools that return images.
//
// The engine in package carve works on a bare interleaved Raster. This package
// does everything around it: decoding files (with EXIF orientation applied),
// converting between image.Image and Raster, encoding results to disk or to
// base64 PNG, and rendering the debug views of a job (the energy field and the
// seams picked in one pass).
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. A
// Raster produced by ToRaster always starts at (0,0), whatever the source
// image's Bounds().Min is.
//
// # Color Models
//
// Grayscale images are carved with one channel, opaque color images with
// three and everything else with four (non-premultiplied RGBA). FromRaster
// maps the channel count back to *image.Gray or *image.NRGBA.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are shared and
// must not be modified; every operation here reads them and builds new images.
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
