package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
	"github.com/ironsheep/seamcarve-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_seam_carve").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional progress token of the call.
	Meta *struct {
		ProgressToken interface{} `json:"progressToken,omitempty"`
	} `json:"_meta,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	var progress func(done, total int)
	if params.Meta != nil && params.Meta.ProgressToken != nil {
		progress = s.progressNotifier(params.Meta.ProgressToken)
	}

	result, err := s.executeTool(params.Name, params.Arguments, progress)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// progressNotifier sends an MCP progress notification after every carving
// pass of the call identified by token.
func (s *Server) progressNotifier(token interface{}) func(done, total int) {
	return func(done, total int) {
		s.send(&MCPNotification{
			JSONRPC: "2.0",
			Method:  "notifications/progress",
			Params: map[string]interface{}{
				"progressToken": token,
				"progress":      done,
				"total":         total,
			},
		})
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
// progress may be nil.
func (s *Server) executeTool(name string, args json.RawMessage, progress func(done, total int)) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Carving
	case "image_energy_map":
		return s.handleImageEnergyMap(args)
	case "image_seam_carve":
		return s.handleImageSeamCarve(args, progress)
	case "image_seam_overlay":
		return s.handleImageSeamOverlay(args, progress)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Carving Handlers ===

func (s *Server) handleImageEnergyMap(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EnergyMap(s.pool, img)
}

// carveArgs are the job parameters shared by the carving tools.
type carveArgs struct {
	Path        string `json:"path"`
	SeamCount   int    `json:"seam_count"`
	BandCount   int    `json:"band_count"`
	Strategy    string `json:"strategy"`
	StripHeight int    `json:"strip_height"`
}

// options fills unset parameters from the configuration. Without an explicit
// band_count the configured band count is lowered until it divides both the
// width and the seam count.
func (s *Server) options(a carveArgs, width int) (carve.Options, error) {
	opts := carve.Options{
		SeamCount:   a.SeamCount,
		BandCount:   a.BandCount,
		Strategy:    s.cfg.Strategy(),
		StripHeight: a.StripHeight,
	}
	if a.Strategy != "" {
		strategy, err := carve.ParseStrategy(a.Strategy)
		if err != nil {
			return opts, err
		}
		opts.Strategy = strategy
	}
	if opts.BandCount == 0 {
		opts.BandCount = carve.SuggestBandCount(width, a.SeamCount, s.cfg.Carve.Bands)
	}
	if opts.StripHeight == 0 {
		opts.StripHeight = s.cfg.Carve.StripHeight
	}
	return opts, nil
}

type imageSeamCarveArgs struct {
	carveArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageSeamCarve(args json.RawMessage, progress func(done, total int)) (interface{}, error) {
	var a imageSeamCarveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	opts, err := s.options(a.carveArgs, img.Bounds().Dx())
	if err != nil {
		return nil, err
	}

	out, result, err := imaging.SeamCarve(s.pool, img, opts, nil, progress)
	if err != nil {
		return nil, err
	}
	s.logCarve(a.Path, result)

	if a.OutputPath != "" {
		if err := imaging.Save(out, a.OutputPath); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
		return result, nil
	}
	if err := result.Attach(out); err != nil {
		return nil, err
	}
	return result, nil
}

type imageSeamOverlayArgs struct {
	carveArgs

	// Iteration selects the pass to draw, 0-based. Omitted means the last.
	Iteration *int   `json:"iteration"`
	Color     string `json:"color"`
}

func (s *Server) handleImageSeamOverlay(args json.RawMessage, progress func(done, total int)) (interface{}, error) {
	var a imageSeamOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = s.cfg.Output.SeamColor
	}
	if _, err := imaging.ParseSeamColor(a.Color); err != nil {
		return nil, err
	}
	iteration := -1
	if a.Iteration != nil {
		iteration = *a.Iteration
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	opts, err := s.options(a.carveArgs, img.Bounds().Dx())
	if err != nil {
		return nil, err
	}

	rec := imaging.NewOverlayRecorder(iteration)
	if _, _, err := imaging.SeamCarve(s.pool, img, opts, rec, progress); err != nil {
		return nil, err
	}
	return rec.Render(a.Color)
}

func (s *Server) logCarve(path string, r *imaging.SeamCarveResult) {
	if !s.cfg.Debug() {
		return
	}
	log.Printf("carved %s: %d -> %d columns, %d passes of %d (%s) in %v",
		path, r.OriginalWidth, r.Width, r.Stats.Passes, r.BandCount, r.Strategy, r.Stats.Total)
}
