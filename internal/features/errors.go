package features

import "errors"

// Sentinel errors for the keypoint pipeline.
var (
	// ErrInvalidConfig indicates a parameter set a backend cannot be built with.
	ErrInvalidConfig = errors.New("features: invalid configuration")

	// ErrIncompatibleTypes indicates two descriptor backends disagree on element type.
	ErrIncompatibleTypes = errors.New("features: incompatible descriptor types")

	// ErrCardinalityMismatch indicates two backends produced different row counts
	// for the same keypoint list.
	ErrCardinalityMismatch = errors.New("features: descriptor row count mismatch")

	// ErrEmptyImage indicates a nil or zero-area image.
	ErrEmptyImage = errors.New("features: empty image")

	// ErrMaskSize indicates a detection mask whose bounds differ from the image.
	ErrMaskSize = errors.New("features: mask size does not match image")

	// ErrDimensionMismatch indicates descriptor matrices with different widths.
	ErrDimensionMismatch = errors.New("features: descriptor dimension mismatch")

	// ErrNilKeypoints indicates a nil keypoint slice pointer.
	ErrNilKeypoints = errors.New("features: nil keypoint list")
)
