package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// ToGray converts any image to an 8-bit grayscale plane anchored at (0,0).
//
// Luminance uses ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B). A
// *image.Gray that already starts at the origin is returned as-is; callers
// must treat the result as read-only.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	return channelToGray(imaging.Grayscale(img))
}

// Smooth returns a Gaussian-blurred copy of a grayscale plane. The kernel
// spans ±radius pixels with variance 2*radius; borders are edge-extended.
// A non-positive radius returns an unblurred copy.
func Smooth(g *image.Gray, radius float64) *image.Gray {
	return channelToGray(blur.Gaussian(g, radius))
}

// channelToGray copies the red channel of a 4-byte-per-pixel image whose
// channels are already equal.
func channelToGray(src image.Image) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	var pix []uint8
	var stride int
	switch s := src.(type) {
	case *image.NRGBA:
		pix, stride = s.Pix, s.Stride
	case *image.RGBA:
		pix, stride = s.Pix, s.Stride
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Pix[y*dst.Stride+x] = color8(src.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	}

	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			out[x] = row[x*4]
		}
	}
	return dst
}

func color8(c interface{ RGBA() (r, g, b, a uint32) }) uint8 {
	r, _, _, _ := c.RGBA()
	return uint8(r >> 8)
}

// At returns the intensity at (x, y) with coordinates clamped to the image.
func At(g *image.Gray, x, y int) uint8 {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	x = clamp(x, 0, w-1)
	y = clamp(y, 0, h-1)
	return g.Pix[y*g.Stride+x]
}

// Bilinear samples g at a sub-pixel position with clamped borders.
func Bilinear(g *image.Gray, x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)

	p00 := float64(At(g, ix, iy))
	p10 := float64(At(g, ix+1, iy))
	p01 := float64(At(g, ix, iy+1))
	p11 := float64(At(g, ix+1, iy+1))

	top := p00 + (p10-p00)*fx
	bottom := p01 + (p11-p01)*fx
	return top + (bottom-top)*fy
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
