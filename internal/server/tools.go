package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the chart screenshot",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "chart_segment",
			Description: "Split a chart screenshot into its date stamp, graph and x-axis label regions. Returns the region boxes in original image coordinates and, when write is true, writes date.png, graph.png and label.png.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"write": map[string]interface{}{
						"type":        "boolean",
						"description": "Write the region images to output_dir. Default false",
						"default":     false,
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the region images. Default \"output\"",
					},
					"debug_overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write debug.png with every region outlined",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "chart_contours",
			Description: "List the contour forest of an image (index, parent, depth, bounding box, area). Use it to check which depth holds the chart panels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"stage": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top", "sub"},
						"description": "Binarization settings to use: top (full image) or sub (graph crop). Default top",
					},
					"depth": map[string]interface{}{
						"type":        "integer",
						"description": "Only list contours at this depth. Default: all depths",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "chart_crop_region",
			Description: "Segment a chart screenshot and return one region as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"date", "graph", "label"},
						"description": "Region to return",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "region"},
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
