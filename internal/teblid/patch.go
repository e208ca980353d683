package teblid

import (
	"image"
	"math"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
)

// integralPatch is the summed-area table of a patchSize x patchSize patch,
// with a zero first row and column.
type integralPatch [(patchSize + 1) * (patchSize + 1)]float64

// samplePatch resamples the rotated, scaled neighbourhood of kp into an
// integral patch. Patch pixel (u, v) maps to the image point at offset
// ((u-15.5)*step, (v-15.5)*step) rotated by kp.Angle.
func samplePatch(g *image.Gray, kp features.KeyPoint, scaleFactor float64, ip *integralPatch) {
	step := math.Max(kp.Size*scaleFactor, 1) / patchSize
	angle := kp.Angle
	if angle < 0 {
		angle = 0
	}
	sin, cos := math.Sincos(angle * math.Pi / 180)

	const stride = patchSize + 1
	const centre = (patchSize - 1) / 2.0
	for v := 0; v < patchSize; v++ {
		dv := (float64(v) - centre) * step
		var rowSum float64
		for u := 0; u < patchSize; u++ {
			du := (float64(u) - centre) * step
			x := kp.X + du*cos - dv*sin
			y := kp.Y + du*sin + dv*cos
			rowSum += imaging.Bilinear(g, x, y)
			ip[(v+1)*stride+u+1] = ip[v*stride+u+1] + rowSum
		}
	}
}

// boxSum returns the sum over the box of side 2*half+1 centred at (cx, cy).
func (ip *integralPatch) boxSum(cx, cy, half int) float64 {
	const stride = patchSize + 1
	x0, y0 := cx-half, cy-half
	x1, y1 := cx+half+1, cy+half+1
	return ip[y1*stride+x1] - ip[y0*stride+x1] - ip[y1*stride+x0] + ip[y0*stride+x0]
}
