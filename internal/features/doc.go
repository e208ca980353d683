// Package features defines the shared vocabulary of the keypoint pipeline.
//
// A detector turns an image into an ordered list of KeyPoint values. A
// descriptor extractor turns the same image plus that list into a Descriptors
// matrix with one row per keypoint, rows in keypoint order. Binary descriptors
// are stored as packed bytes and compared with Hamming distance.
//
// # Keypoint hand-off
//
// DescriptorExtractor.Compute receives the keypoint list by pointer. An
// extractor that cannot describe some keypoints (for example, ones too close to
// the image border) removes them from the slice, preserving the order of the
// survivors. Callers must treat the slice after Compute as authoritative: row i
// of the returned matrix describes (*keypoints)[i].
//
// # Coordinate System
//
// Keypoint positions are sub-pixel coordinates in the full-resolution image:
//   - X increases rightward, Y increases downward
//   - Angle is in degrees, [0, 360), measured in the same image frame
//   - Size is the diameter of the described neighbourhood in pixels
//
// # Errors
//
// Every failure is reported through one of the sentinel errors in this package
// (wrapped with context), so callers can branch with errors.Is.
package features
