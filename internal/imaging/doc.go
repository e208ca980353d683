// Package imaging provides the image plumbing around keypoint extraction.
//
// It loads and caches images, converts them to 8-bit grayscale planes, builds
// scale pyramids, smooths and samples intensities, builds detection masks, and
// renders keypoint overlays. It also draws the synthetic calibration scene used
// to exercise detectors end to end.
//
// # Coordinate System
//
// All grayscale planes produced here are anchored at (0,0):
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Sub-pixel samples (Bilinear) treat integer coordinates as pixel centres
//   - Reads outside the plane are clamped to the nearest edge pixel
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless and
// never modify their inputs; images returned from the cache are shared and
// must be treated as read-only.
//
// # Libraries
//
// Grayscale conversion and pyramid resampling use disintegration/imaging.
// Gaussian smoothing and rotation use anthonynsimon/bild. Overlay colours come
// from lucasb-eyer/go-colorful.
package imaging
