package teblid

import (
	"fmt"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// BitWidth selects the descriptor length.
type BitWidth int

const (
	// Size256Bits produces 32-byte descriptors.
	Size256Bits BitWidth = 256
	// Size512Bits produces 64-byte descriptors.
	Size512Bits BitWidth = 512
)

// Bytes returns the descriptor width in bytes.
func (b BitWidth) Bytes() int { return int(b) / 8 }

// Valid reports whether b is a supported width.
func (b BitWidth) Valid() bool { return b == Size256Bits || b == Size512Bits }

// DefaultScaleFactor suits detectors that report small keypoint sizes.
// Detectors reporting the full patch diameter, such as ORB, pair with 1.0.
const DefaultScaleFactor = 6.25

// Config holds descriptor parameters.
type Config struct {
	// ScaleFactor multiplies the keypoint size to get the sampled region
	// diameter. Must be positive.
	ScaleFactor float64 `json:"scale_factor"`

	// Bits selects 256- or 512-bit descriptors.
	Bits BitWidth `json:"bits"`
}

// DefaultConfig returns ScaleFactor 6.25 and 256 bits.
func DefaultConfig() Config {
	return Config{ScaleFactor: DefaultScaleFactor, Bits: Size256Bits}
}

// Validate wraps features.ErrInvalidConfig on failure.
func (c Config) Validate() error {
	if !(c.ScaleFactor > 0) {
		return fmt.Errorf("%w: teblid scale factor must be positive, got %g", features.ErrInvalidConfig, c.ScaleFactor)
	}
	if !c.Bits.Valid() {
		return fmt.Errorf("%w: teblid bit width must be 256 or 512, got %d", features.ErrInvalidConfig, int(c.Bits))
	}
	return nil
}
