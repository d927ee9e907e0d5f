package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, channel count and the largest seam count a carve accepts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Carving
		{
			Name:        "image_energy_map",
			Description: "Compute the gradient (Sobel) energy of an image and return it as a grayscale base64-encoded PNG with min/max/mean/stddev statistics. Dark regions are removed first by seam carving.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_seam_carve",
			Description: "Reduce the width of an image by content-aware seam carving: repeatedly remove the lowest-energy vertical paths of pixels. Returns the new dimensions and stage timings, plus the result as base64-encoded PNG unless output_path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"seam_count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of columns to remove. Must be less than the image width and divisible by band_count.",
					},
					"band_count": map[string]interface{}{
						"type":        "integer",
						"description": "Seams removed per pass (K). Must divide both the width and seam_count. Default: the configured band count, lowered until it divides both.",
					},
					"strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rows", "tiled"},
						"description": "Cost pass schedule: 'rows' (one barrier per row) or 'tiled' (cache-friendly triangle wavefront). Both give identical results.",
					},
					"strip_height": map[string]interface{}{
						"type":        "integer",
						"description": "Strip height of the tiled strategy. Default 15.",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the result to (.png, .jpg, .bmp, .gif, .tiff) instead of returning it inline",
					},
				},
				"required": []string{"path", "seam_count"},
			},
		},
		{
			Name:        "image_seam_overlay",
			Description: "Run a seam carving job and draw the seams chosen in one pass over that pass's energy field. Useful to see which pixels a carve would remove.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"seam_count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of columns to remove. Must be less than the image width and divisible by band_count.",
					},
					"band_count": map[string]interface{}{
						"type":        "integer",
						"description": "Seams removed per pass (K). Must divide both the width and seam_count. Default: the configured band count, lowered until it divides both.",
					},
					"strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rows", "tiled"},
						"description": "Cost pass schedule: 'rows' (one barrier per row) or 'tiled' (cache-friendly triangle wavefront). Both give identical results.",
					},
					"strip_height": map[string]interface{}{
						"type":        "integer",
						"description": "Strip height of the tiled strategy. Default 15.",
					},
					"iteration": map[string]interface{}{
						"type":        "integer",
						"description": "0-based pass to draw. Default: the last pass.",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Seam highlight as hex '#RRGGBB'. Default: the configured seam color (#B40000).",
					},
				},
				"required": []string{"path", "seam_count"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
