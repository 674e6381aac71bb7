package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/chart-segmenter/internal/imaging"
	"github.com/ironsheep/chart-segmenter/internal/pipeline"
	"github.com/ironsheep/chart-segmenter/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "chart_segment").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return s.toolResponse(req.ID, result)
}

// toolResponse encodes a tool result as MCP text content. A result that
// cannot be encoded yields an internal error instead of an empty payload.
func (s *Server) toolResponse(id interface{}, result interface{}) *MCPResponse {
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode tool result", "error", err)
		return s.errorResponse(id, -32603, "Internal error", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": string(text),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "chart_segment":
		return s.handleChartSegment(ctx, args)
	case "chart_contours":
		return s.handleChartContours(args)
	case "chart_crop_region":
		return s.handleChartCropRegion(args)
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

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.pipe.Cache(), a.Path)
}

type chartSegmentArgs struct {
	Path         string `json:"path"`
	OutputDir    string `json:"output_dir"`
	Write        bool   `json:"write"`
	DebugOverlay bool   `json:"debug_overlay"`
}

func (s *Server) handleChartSegment(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a chartSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.pipe.Run(ctx, a.Path, pipeline.Options{
		OutputDir:    a.OutputDir,
		DebugOverlay: a.DebugOverlay,
		DryRun:       !a.Write,
	})
}

type chartContoursArgs struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
	Depth *int   `json:"depth"`
}

func (s *Server) handleChartContours(args json.RawMessage) (interface{}, error) {
	var a chartContoursArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	depth := -1
	if a.Depth != nil {
		depth = *a.Depth
	}
	img, err := s.pipe.Cache().Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.pipe.Contours(img, pipeline.Stage(a.Stage), depth)
}

type chartCropRegionArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleChartCropRegion(args json.RawMessage) (interface{}, error) {
	var a chartCropRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	label, err := segment.ParseLabel(a.Region)
	if err != nil || label == segment.GraphWithLabelRegion {
		return nil, fmt.Errorf("unknown region: %s", a.Region)
	}

	img, err := s.pipe.Cache().Load(a.Path)
	if err != nil {
		return nil, err
	}
	seg, err := s.pipe.Segment(img)
	if err != nil {
		return nil, err
	}

	var region segment.Region
	switch label {
	case segment.DateRegion:
		region = seg.Date
	case segment.GraphRegion:
		region = seg.Graph
	case segment.LabelRegion:
		if seg.Label == nil {
			return nil, fmt.Errorf("label region is only produced by the three-way split")
		}
		region = *seg.Label
	}
	return imaging.Crop(img, region.Rect(), a.Scale)
}
