// Package server implements the MCP (Model Context Protocol) server for
// binary feature extraction.
//
// The server exposes a single composite extractor, ORB keypoints described
// by both the ORB and TEBLID binary descriptors, through a JSON-RPC 2.0
// interface so that MCP clients can detect, describe and match image
// features.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Feature Extraction:
//   - features_info: Extractor name, descriptor size, type, norm and config
//   - features_detect: Detect ORB keypoints, optionally inside a region
//   - features_compute: Detect and describe; descriptor rows as hex
//   - features_match: Ratio-test matches between two images
//   - features_draw_keypoints: Annotated PNG of detected keypoints
//
// # Configuration
//
// Extractor parameters come from FEATURE_MCP_* environment variables, see
// LoadConfigFromEnv. The extractor is built once in New and shared by every
// tool call.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := server.LoadConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
