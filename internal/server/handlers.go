package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/feature-tools-mcp/internal/composite"
	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
	"github.com/ironsheep/feature-tools-mcp/internal/matching"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "features_detect").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Runs the extractor or matcher
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Feature Extraction
	case "features_info":
		return s.handleFeaturesInfo(args)
	case "features_detect":
		return s.handleFeaturesDetect(args)
	case "features_compute":
		return s.handleFeaturesCompute(args)
	case "features_match":
		return s.handleFeaturesMatch(args)
	case "features_draw_keypoints":
		return s.handleFeaturesDrawKeypoints(args)

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

// === Feature Extraction Handlers ===

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// loadForDetection returns the grayscale image at path and, when region is
// set, a mask restricting detection to it.
func (s *Server) loadForDetection(path string, region *regionArgs) (*image.Gray, *image.Gray, error) {
	img, err := s.cache.LoadGray(path)
	if err != nil {
		return nil, nil, err
	}
	if region == nil {
		return img, nil, nil
	}
	mask, err := imaging.RegionMask(img.Bounds(), region.X1, region.Y1, region.X2, region.Y2)
	if err != nil {
		return nil, nil, err
	}
	return img, mask, nil
}

func (s *Server) handleFeaturesInfo(args json.RawMessage) (interface{}, error) {
	return &InfoResult{
		Name:           s.extractor.Name(),
		DescriptorSize: s.extractor.DescriptorSize(),
		DescriptorType: s.extractor.DescriptorType().String(),
		DefaultNorm:    s.extractor.DefaultNorm().String(),
		Config:         s.cfg.Extractor,
	}, nil
}

type featuresDetectArgs struct {
	Path   string      `json:"path"`
	Region *regionArgs `json:"region"`
	Limit  *int        `json:"limit"`
}

func (s *Server) handleFeaturesDetect(args json.RawMessage) (interface{}, error) {
	var a featuresDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	limit := 100
	if a.Limit != nil {
		limit = *a.Limit
	}

	img, mask, err := s.loadForDetection(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	kps, err := s.extractor.Detect(img, mask)
	if err != nil {
		return nil, err
	}

	listed := kps
	if limit > 0 && len(listed) > limit {
		listed = append([]features.KeyPoint(nil), kps...)
		sort.SliceStable(listed, func(i, j int) bool {
			return listed[i].Response > listed[j].Response
		})
		listed = listed[:limit]
	}
	return &DetectResult{
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		Count:     len(kps),
		Keypoints: listed,
	}, nil
}

type featuresComputeArgs struct {
	Path               string      `json:"path"`
	Region             *regionArgs `json:"region"`
	IncludeDescriptors bool        `json:"include_descriptors"`
	MaxRows            int         `json:"max_rows"`
}

func (s *Server) handleFeaturesCompute(args json.RawMessage) (interface{}, error) {
	var a featuresComputeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxRows < 0 {
		return nil, fmt.Errorf("max_rows must be >= 0, got %d", a.MaxRows)
	}
	if a.MaxRows == 0 {
		a.MaxRows = 10
	}

	img, mask, err := s.loadForDetection(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	var kps []features.KeyPoint
	desc, err := s.extractor.DetectAndCompute(img, mask, &kps, false)
	if err != nil {
		return nil, err
	}

	result := &ComputeResult{
		KeypointCount:  len(kps),
		Rows:           desc.Rows,
		Cols:           desc.Cols,
		DescriptorSize: s.extractor.DescriptorSize(),
		DescriptorType: s.extractor.DescriptorType().String(),
		Norm:           s.extractor.DefaultNorm().String(),
		Empty:          desc.Empty(),
	}
	if a.IncludeDescriptors {
		n := min(a.MaxRows, desc.Rows)
		result.Descriptors = make([]string, n)
		for i := 0; i < n; i++ {
			result.Descriptors[i] = hex.EncodeToString(desc.Row(i))
		}
	}
	return result, nil
}

type featuresMatchArgs struct {
	Path1         string   `json:"path1"`
	Path2         string   `json:"path2"`
	Ratio         *float64 `json:"ratio"`
	RotateDegrees float64  `json:"rotate_degrees"`
	Limit         *int     `json:"limit"`
}

func (s *Server) handleFeaturesMatch(args json.RawMessage) (interface{}, error) {
	var a featuresMatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ratio := 0.8
	if a.Ratio != nil {
		ratio = *a.Ratio
	}
	if ratio <= 0 || ratio > 1 {
		return nil, fmt.Errorf("ratio must be in (0, 1], got %g", ratio)
	}
	limit := 50
	if a.Limit != nil {
		limit = *a.Limit
	}

	img1, err := s.cache.LoadGray(a.Path1)
	if err != nil {
		return nil, err
	}
	img2, err := s.cache.LoadGray(a.Path2)
	if err != nil {
		return nil, err
	}
	if a.RotateDegrees != 0 {
		img2 = imaging.Rotate(img2, a.RotateDegrees)
	}

	var kps1, kps2 []features.KeyPoint
	desc1, err := s.extractor.DetectAndCompute(img1, nil, &kps1, false)
	if err != nil {
		return nil, fmt.Errorf("query image: %w", err)
	}
	desc2, err := s.extractor.DetectAndCompute(img2, nil, &kps2, false)
	if err != nil {
		return nil, fmt.Errorf("train image: %w", err)
	}

	knn, err := s.matcher.KnnMatch(context.Background(), desc1, desc2, 2)
	if err != nil {
		return nil, err
	}
	good := matching.RatioTest(knn, ratio)
	sort.SliceStable(good, func(i, j int) bool {
		return good[i].Distance < good[j].Distance
	})

	result := &MatchResult{
		Keypoints1:  len(kps1),
		Keypoints2:  len(kps2),
		Ratio:       ratio,
		GoodMatches: len(good),
		Matches:     []MatchInfo{},
	}
	if limit > 0 && len(good) > limit {
		good = good[:limit]
	}
	for _, m := range good {
		q, t := kps1[m.QueryIdx], kps2[m.TrainIdx]
		result.Matches = append(result.Matches, MatchInfo{
			QueryIdx: m.QueryIdx,
			TrainIdx: m.TrainIdx,
			Distance: m.Distance,
			X1:       q.X,
			Y1:       q.Y,
			X2:       t.X,
			Y2:       t.Y,
		})
	}
	return result, nil
}

type featuresDrawArgs struct {
	Path   string      `json:"path"`
	Region *regionArgs `json:"region"`
}

func (s *Server) handleFeaturesDrawKeypoints(args json.RawMessage) (interface{}, error) {
	var a featuresDrawArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gray, mask, err := s.loadForDetection(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	kps, err := s.extractor.Detect(gray, mask)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DrawKeypoints(img, kps)
}

// === Results ===

// InfoResult describes the extractor behind the feature tools.
type InfoResult struct {
	Name           string           `json:"name"`
	DescriptorSize int              `json:"descriptor_size"`
	DescriptorType string           `json:"descriptor_type"`
	DefaultNorm    string           `json:"default_norm"`
	Config         composite.Config `json:"config"`
}

// DetectResult lists detected keypoints.
type DetectResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Count is the total number detected; Keypoints may be truncated to
	// the strongest ones.
	Count     int                 `json:"count"`
	Keypoints []features.KeyPoint `json:"keypoints"`
}

// ComputeResult summarises a descriptor matrix.
type ComputeResult struct {
	KeypointCount  int      `json:"keypoint_count"`
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	DescriptorSize int      `json:"descriptor_size"`
	DescriptorType string   `json:"descriptor_type"`
	Norm           string   `json:"norm"`
	Empty          bool     `json:"empty"`
	Descriptors    []string `json:"descriptors,omitempty"`
}

// MatchResult reports ratio-test matches between two images.
type MatchResult struct {
	Keypoints1  int         `json:"keypoints1"`
	Keypoints2  int         `json:"keypoints2"`
	Ratio       float64     `json:"ratio"`
	GoodMatches int         `json:"good_matches"`
	Matches     []MatchInfo `json:"matches"`
}

// MatchInfo is one match with the keypoint positions in both images.
type MatchInfo struct {
	QueryIdx int     `json:"query_idx"`
	TrainIdx int     `json:"train_idx"`
	Distance int     `json:"distance"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	X2       float64 `json:"x2"`
	Y2       float64 `json:"y2"`
}
