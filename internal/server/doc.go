// Package server implements the MCP (Model Context Protocol) server for chart
// segmentation.
//
// This package provides a JSON-RPC 2.0 server that exposes the segmentation
// pipeline through the MCP protocol, so MCP clients can split chart captures
// and inspect contour forests without shelling out to the CLI.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - chart_segment: Classify date/graph/label regions, optionally write crops
//   - chart_contours: Dump the contour forest with depths and areas
//   - chart_crop_region: Return one segmented region as base64 PNG
//
// # Error Handling
//
// Tool failures are reported as JSON-RPC errors with code -32000 and the
// error text in the data field, e.g. "ambiguous classification: ...". Unknown
// methods return -32601; malformed params return -32602.
//
// # Logging
//
// Stdout carries the protocol, so all logging goes to the slog logger given
// to New, which the CLI points at stderr.
package server
