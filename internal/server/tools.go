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
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional detection region; keypoints are only placed inside it. (x1,y1) inclusive, (x2,y2) exclusive",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for subsequent feature operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
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
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Feature Extraction
		{
			Name:        "features_info",
			Description: "Describe the configured extractor: name, composite descriptor size in bytes, element type, distance norm and backend parameters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "features_detect",
			Description: "Detect oriented keypoints (position, size, angle, response, octave) in an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of keypoints to return, strongest first. 0 returns all. Default 100",
						"default":     100,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "features_compute",
			Description: "Detect keypoints and compute composite binary descriptors. Reports the descriptor matrix shape and optionally the first rows as hex.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
					"include_descriptors": map[string]interface{}{
						"type":        "boolean",
						"description": "Include descriptor rows as hex strings. Default false",
						"default":     false,
					},
					"max_rows": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum descriptor rows to include. Default 10",
						"default":     10,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "features_match",
			Description: "Match keypoints between two images by Hamming distance on composite descriptors, keeping matches that pass the nearest-neighbour distance ratio test.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path1": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the query image",
					},
					"path2": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the train image",
					},
					"ratio": map[string]interface{}{
						"type":        "number",
						"description": "Distance ratio threshold between best and second-best match. Default 0.8",
						"default":     0.8,
					},
					"rotate_degrees": map[string]interface{}{
						"type":        "number",
						"description": "Rotate the train image clockwise about its centre before matching. Default 0",
						"default":     0.0,
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of matches to list, closest first. Default 50",
						"default":     50,
					},
				},
				"required": []string{"path1", "path2"},
			},
		},
		{
			Name:        "features_draw_keypoints",
			Description: "Draw detected keypoints on the image (circle of keypoint size, orientation tick, colour by pyramid octave) and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
				},
				"required": []string{"path"},
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
