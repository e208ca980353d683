package orb

import (
	"math"
	"math/rand"
)

const (
	descriptorBytes = 32
	descriptorBits  = descriptorBytes * 8
	patternSeed     = 0x5eed0b
)

// testPair is one intensity comparison: bit = I(p1) < I(p2).
type testPair struct {
	x1, y1, x2, y2 float64
}

// newPattern draws the comparison pairs from an isotropic Gaussian of sigma
// patchSize/5, rejecting points outside the usable patch radius and
// degenerate pairs. The same patch size always yields the same pattern.
func newPattern(patchSize int) []testPair {
	rng := rand.New(rand.NewSource(patternSeed))
	sigma := float64(patchSize) / 5
	limit := float64(patchSize/2 - 2)

	point := func() (float64, float64) {
		for {
			x := math.Round(rng.NormFloat64() * sigma)
			y := math.Round(rng.NormFloat64() * sigma)
			if x*x+y*y <= limit*limit {
				return x, y
			}
		}
	}

	pairs := make([]testPair, 0, descriptorBits)
	for len(pairs) < descriptorBits {
		x1, y1 := point()
		x2, y2 := point()
		if x1 == x2 && y1 == y2 {
			continue
		}
		pairs = append(pairs, testPair{x1: x1, y1: y1, x2: x2, y2: y2})
	}
	return pairs
}
