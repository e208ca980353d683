// Package orb implements an oriented FAST / rotated BRIEF keypoint detector
// and binary descriptor.
//
// # Detection
//
// Keypoints are found on every level of a scale pyramid:
//
//  1. FAST-9 segment test on the 16-pixel Bresenham circle of radius 3
//  2. 3x3 non-maximum suppression on the segment-test score
//  3. Harris corner response to rank candidates, keeping a per-level budget
//     that shrinks geometrically with the level scale
//  4. Orientation from the intensity centroid of a circular patch
//
// Keypoint coordinates, sizes and octaves are reported in level-0 (input)
// coordinates.
//
// # Description
//
// Each descriptor is 32 bytes: 256 intensity comparisons between point pairs
// of a fixed pattern, rotated by the keypoint angle and sampled on a smoothed
// copy of the keypoint's pyramid level. Bit i of the descriptor is stored in
// byte i/8 at position i%8.
//
// Compute drops keypoints that lie within EdgeThreshold pixels of the image
// border or that name an octave the pyramid does not have; the surviving
// keypoints keep their order.
package orb
