package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
)

// SyntheticScene draws the reference calibration scene on a black 8-bit
// canvas: a white filled circle (radius 200 at 400,400 for an 800x800
// canvas), a black square cutout from (300,300) to (500,500), and two white
// 5-pixel crossing lines through the centre. Geometry scales with the canvas.
func SyntheticScene(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	sx := float64(width) / 800
	sy := float64(height) / 800

	cx := int(400 * sx)
	cy := int(400 * sy)
	FillCircle(img, cx, cy, int(200*minf(sx, sy)), 255)
	FillRect(img, int(300*sx), int(300*sy), int(500*sx), int(500*sy), 0)
	DrawLine(img, cx, int(200*sy), cx, int(600*sy), 5, 255)
	DrawLine(img, int(200*sx), cy, int(600*sx), cy, 5, 255)
	return img
}

// FillCircle paints every pixel within radius of (cx, cy).
func FillCircle(img *image.Gray, cx, cy, radius int, v uint8) {
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				setGray(img, x, y, v)
			}
		}
	}
}

// FillRect paints the closed rectangle (x1,y1)-(x2,y2).
func FillRect(img *image.Gray, x1, y1, x2, y2 int, v uint8) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			setGray(img, x, y, v)
		}
	}
}

// DrawLine paints an axis-aligned or diagonal segment with the given
// thickness, centred on the ideal line, with round caps.
func DrawLine(img *image.Gray, x1, y1, x2, y2, thickness int, v uint8) {
	half := thickness / 2
	dx, dy := x2-x1, y2-y1
	steps := maxInt(absInt(dx), absInt(dy))
	if steps == 0 {
		FillCircle(img, x1, y1, half, v)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x1 + dx*i/steps
		y := y1 + dy*i/steps
		FillCircle(img, x, y, half, v)
	}
}

// Rotate returns img rotated clockwise by angle degrees about its centre,
// keeping the original bounds. Uncovered pixels are black.
func Rotate(img image.Image, angle float64) *image.Gray {
	b := img.Bounds()
	pivot := image.Point{X: b.Dx() / 2, Y: b.Dy() / 2}
	rotated := transform.Rotate(img, angle, &transform.RotationOptions{
		ResizeBounds: false,
		Pivot:        &pivot,
	})
	return channelToGray(rotated)
}

func setGray(img *image.Gray, x, y int, v uint8) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	img.SetGray(x, y, color.Gray{Y: v})
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
