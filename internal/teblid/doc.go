// Package teblid implements a box-pair binary descriptor for keypoints
// found by any detector.
//
// Around each keypoint a 32x32 patch is resampled, rotated by the keypoint
// angle and scaled to cover Size*ScaleFactor pixels. Each descriptor bit
// compares the mean intensity of two equally sized boxes inside the patch,
// evaluated in constant time through an integral image. Descriptors are 256
// or 512 bits (32 or 64 bytes) and compare under the Hamming norm.
//
// The extractor only describes; it has no detector and never drops a
// keypoint. Patches that reach past the image border read edge-extended
// pixels.
package teblid
