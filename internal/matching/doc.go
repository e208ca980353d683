// Package matching pairs binary descriptors by Hamming distance.
//
// BFMatcher compares every query row against every train row. KnnMatch
// returns the k closest train rows per query row; RatioTest then keeps the
// matches whose best distance is clearly smaller than the runner-up.
package matching
