// Package server implements the MCP (Model Context Protocol) server for seam carving.
//
// This package provides a JSON-RPC 2.0 server that exposes content-aware width
// reduction through the MCP protocol, so that an MCP client can inspect an
// image's energy, preview the seams a carve would remove and produce the
// narrower image.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata, including the carve channel count
//   - image_dimensions: Get width and height
//
// Carving:
//   - image_energy_map: Gradient energy as a grayscale image plus statistics
//   - image_seam_carve: Remove seam_count columns, band_count seams per pass
//   - image_seam_overlay: Draw one pass's seams over its energy field
//
// # Progress
//
// When a tools/call request carries params._meta.progressToken,
// image_seam_carve and image_seam_overlay send a notifications/progress
// message after every pass.
//
// # Image Caching and Workers
//
// Decoded images are cached by path for the lifetime of the server. All tool
// calls share one worker pool, sized by the configuration.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "seam count out of range: ..."
//
// # Usage
//
//	pool := parallel.New(cfg.Processing.Workers)
//	defer pool.Close()
//	srv := server.New(cfg, pool, version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
