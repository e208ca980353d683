package imaging

import (
	"fmt"
	"image"
)

// RegionMask returns a detection mask the size of bounds in which only the
// rectangle (x1,y1)-(x2,y2) is eligible. (x1,y1) is inclusive and (x2,y2)
// exclusive; the rectangle is clipped to the bounds.
func RegionMask(bounds image.Rectangle, x1, y1, x2, y2 int) (*image.Gray, error) {
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid mask region: x1 must be < x2, y1 must be < y2")
	}
	mask := image.NewGray(bounds)
	r := image.Rect(x1, y1, x2, y2).Intersect(bounds)
	if r.Empty() {
		return nil, fmt.Errorf("mask region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := mask.PixOffset(r.Min.X, y)
		row := mask.Pix[off : off+r.Dx()]
		for i := range row {
			row[i] = 255
		}
	}
	return mask, nil
}
