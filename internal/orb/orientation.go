package orb

import (
	"image"
	"math"

	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
)

// circularPatch lists the offsets within radius of the centre, one row per
// dy, as half-widths: row dy spans dx in [-umax[|dy|], umax[|dy|]].
func circularPatch(radius int) []int {
	umax := make([]int, radius+1)
	for v := 0; v <= radius; v++ {
		umax[v] = int(math.Round(math.Sqrt(float64(radius*radius - v*v))))
	}
	return umax
}

// intensityCentroidAngle returns the direction, in degrees within [0, 360),
// from (x, y) to the intensity centroid of the circular patch around it.
func intensityCentroidAngle(g *image.Gray, x, y int, umax []int) float64 {
	radius := len(umax) - 1
	var m01, m10 int
	for dy := -radius; dy <= radius; dy++ {
		half := umax[absInt(dy)]
		for dx := -half; dx <= half; dx++ {
			v := int(imaging.At(g, x+dx, y+dy))
			m10 += dx * v
			m01 += dy * v
		}
	}
	return normalizeAngle(math.Atan2(float64(m01), float64(m10)) * 180 / math.Pi)
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
