package features

import "math"

// KeyPoint is a salient image location produced by a detector.
type KeyPoint struct {
	// X is the horizontal position in full-resolution pixel coordinates.
	X float64 `json:"x"`

	// Y is the vertical position in full-resolution pixel coordinates.
	Y float64 `json:"y"`

	// Size is the diameter of the meaningful neighbourhood, in pixels.
	Size float64 `json:"size"`

	// Angle is the dominant orientation in degrees, [0, 360). Negative means
	// the detector did not assign one.
	Angle float64 `json:"angle"`

	// Response is the detector's strength score. Larger is stronger.
	Response float64 `json:"response"`

	// Octave is the pyramid level the keypoint was found on.
	Octave int `json:"octave"`

	// ClassID is an optional caller-defined label, -1 when unused.
	ClassID int `json:"class_id"`
}

// Distance returns the Euclidean distance between the positions of two keypoints.
func (k KeyPoint) Distance(o KeyPoint) float64 {
	return math.Hypot(k.X-o.X, k.Y-o.Y)
}
