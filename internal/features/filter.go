package features

import (
	"image"
	"math"
	"sort"
)

// RetainBest keeps the n keypoints with the highest Response. Ties at the
// cut-off are broken by original position, and survivors keep their relative
// order. A non-positive n or n >= len(kps) returns kps unchanged.
func RetainBest(kps []KeyPoint, n int) []KeyPoint {
	if n <= 0 || n >= len(kps) {
		return kps
	}
	idx := make([]int, len(kps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return kps[idx[i]].Response > kps[idx[j]].Response
	})
	keep := idx[:n]
	sort.Ints(keep)

	out := make([]KeyPoint, 0, n)
	for _, i := range keep {
		out = append(out, kps[i])
	}
	return out
}

// RunByImageBorder removes keypoints closer than border pixels to any edge of
// a width×height image. Order is preserved; kps itself is not modified.
func RunByImageBorder(kps []KeyPoint, width, height, border int) []KeyPoint {
	if border <= 0 {
		return kps
	}
	if width <= 2*border || height <= 2*border {
		return []KeyPoint{}
	}
	minX, minY := float64(border), float64(border)
	maxX, maxY := float64(width-border), float64(height-border)

	out := make([]KeyPoint, 0, len(kps))
	for _, kp := range kps {
		if kp.X >= minX && kp.X < maxX && kp.Y >= minY && kp.Y < maxY {
			out = append(out, kp)
		}
	}
	return out
}

// RunByMask removes keypoints whose rounded position falls on a zero mask
// pixel or outside the mask. A nil mask keeps everything.
func RunByMask(kps []KeyPoint, mask *image.Gray) []KeyPoint {
	if mask == nil {
		return kps
	}
	b := mask.Bounds()
	out := make([]KeyPoint, 0, len(kps))
	for _, kp := range kps {
		x := b.Min.X + int(math.Floor(kp.X+0.5))
		y := b.Min.Y + int(math.Floor(kp.Y+0.5))
		if !(image.Point{X: x, Y: y}).In(b) {
			continue
		}
		if mask.Pix[mask.PixOffset(x, y)] != 0 {
			out = append(out, kp)
		}
	}
	return out
}
