package teblid

import "math/rand"

const (
	patchSize   = 32
	maxBits     = 512
	patternSeed = 0x7eb11d
	minHalfBox  = 1
	maxHalfBox  = 4
)

// boxPair compares two square boxes of side 2*half+1 centred at (x1,y1)
// and (x2,y2) in patch coordinates.
type boxPair struct {
	x1, y1, x2, y2 int
	half           int
}

// pattern holds the 512 box pairs. The 256-bit descriptor uses the first 256.
var pattern = newPattern()

func newPattern() []boxPair {
	rng := rand.New(rand.NewSource(patternSeed))
	pairs := make([]boxPair, 0, maxBits)
	for len(pairs) < maxBits {
		half := minHalfBox + rng.Intn(maxHalfBox-minHalfBox+1)
		span := patchSize - 2*half
		p := boxPair{
			x1:   half + rng.Intn(span),
			y1:   half + rng.Intn(span),
			x2:   half + rng.Intn(span),
			y2:   half + rng.Intn(span),
			half: half,
		}
		if p.x1 == p.x2 && p.y1 == p.y2 {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}
