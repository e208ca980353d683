package features

import "github.com/hupe1980/vecgo/distance"

// Hamming returns the number of differing bits between a and b.
// Both slices must have the same length.
func Hamming(a, b []byte) int {
	if len(a) != len(b) {
		panic("features: Hamming on slices of different length")
	}
	return int(distance.Hamming(a, b))
}
