package orb

import (
	"image"

	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
)

const (
	harrisBlockSize = 7
	harrisK         = 0.04
)

// harrisResponse computes det(M) - k*trace(M)^2 of the structure tensor
// summed over a block centred on (x, y). Gradients are 3x3 Sobel responses
// scaled so that the result does not depend on the block size.
func harrisResponse(g *image.Gray, x, y int) float64 {
	r := harrisBlockSize / 2
	scale := 1.0 / (4 * harrisBlockSize * 255)

	var a, b, c float64
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			px, py := x+dx, y+dy
			ix, iy := sobel(g, px, py)
			ix *= scale
			iy *= scale
			a += ix * ix
			b += iy * iy
			c += ix * iy
		}
	}
	return a*b - c*c - harrisK*(a+b)*(a+b)
}

// sobel returns the horizontal and vertical 3x3 Sobel gradients at (x, y)
// with clamped borders.
func sobel(g *image.Gray, x, y int) (float64, float64) {
	p := func(dx, dy int) float64 {
		return float64(imaging.At(g, x+dx, y+dy))
	}
	gx := (p(1, -1) + 2*p(1, 0) + p(1, 1)) - (p(-1, -1) + 2*p(-1, 0) + p(-1, 1))
	gy := (p(-1, 1) + 2*p(0, 1) + p(1, 1)) - (p(-1, -1) + 2*p(0, -1) + p(1, -1))
	return gx, gy
}
