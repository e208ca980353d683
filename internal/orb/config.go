package orb

import (
	"fmt"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// Default parameter values.
const (
	DefaultNFeatures     = 500
	DefaultScaleFactor   = 1.2
	DefaultNLevels       = 8
	DefaultEdgeThreshold = 31
	DefaultFastThreshold = 20
	DefaultPatchSize     = 31
)

// Config holds the detector and descriptor parameters.
type Config struct {
	// NFeatures is the maximum number of keypoints Detect returns.
	NFeatures int `json:"nfeatures"`

	// ScaleFactor is the size ratio between consecutive pyramid levels.
	// Must be greater than 1.
	ScaleFactor float64 `json:"scale_factor"`

	// NLevels is the number of pyramid levels.
	NLevels int `json:"nlevels"`

	// EdgeThreshold is the border, in pixels, inside which no keypoint is
	// detected or described.
	EdgeThreshold int `json:"edge_threshold"`

	// FastThreshold is the intensity difference used by the segment test.
	FastThreshold int `json:"fast_threshold"`

	// PatchSize is the diameter of the orientation and descriptor patch.
	PatchSize int `json:"patch_size"`
}

// DefaultConfig returns the standard parameter set.
func DefaultConfig() Config {
	return Config{
		NFeatures:     DefaultNFeatures,
		ScaleFactor:   DefaultScaleFactor,
		NLevels:       DefaultNLevels,
		EdgeThreshold: DefaultEdgeThreshold,
		FastThreshold: DefaultFastThreshold,
		PatchSize:     DefaultPatchSize,
	}
}

// Validate reports the first invalid parameter, wrapping
// features.ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.NFeatures <= 0:
		return fmt.Errorf("%w: orb nfeatures must be positive, got %d", features.ErrInvalidConfig, c.NFeatures)
	case !(c.ScaleFactor > 1):
		return fmt.Errorf("%w: orb scale factor must be > 1, got %g", features.ErrInvalidConfig, c.ScaleFactor)
	case c.NLevels < 1:
		return fmt.Errorf("%w: orb nlevels must be >= 1, got %d", features.ErrInvalidConfig, c.NLevels)
	case c.EdgeThreshold < 0:
		return fmt.Errorf("%w: orb edge threshold must be >= 0, got %d", features.ErrInvalidConfig, c.EdgeThreshold)
	case c.FastThreshold < 1 || c.FastThreshold > 254:
		return fmt.Errorf("%w: orb fast threshold must be in [1,254], got %d", features.ErrInvalidConfig, c.FastThreshold)
	case c.PatchSize < 7:
		return fmt.Errorf("%w: orb patch size must be >= 7, got %d", features.ErrInvalidConfig, c.PatchSize)
	}
	return nil
}
