package orb

import "image"

// circle is the 16-pixel Bresenham circle of radius 3, clockwise from 12
// o'clock.
var circle = [16]image.Point{
	{0, -3}, {1, -3}, {2, -2}, {3, -1},
	{3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1},
	{-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
}

const arcLength = 9

// corner is a segment-test hit in level coordinates.
type corner struct {
	x, y  int
	score int
}

// detectFAST runs the segment test on every pixel at least border pixels
// from the edge (never less than 3) and returns the non-maximum-suppressed
// corners in raster order.
func detectFAST(g *image.Gray, threshold, border int) []corner {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if border < 3 {
		border = 3
	}
	if w <= 2*border || h <= 2*border {
		return nil
	}

	var offsets [16]int
	for i, p := range circle {
		offsets[i] = p.Y*g.Stride + p.X
	}

	scores := make([]int, w*h)
	for y := border; y < h-border; y++ {
		for x := border; x < w-border; x++ {
			scores[y*w+x] = segmentScore(g.Pix, y*g.Stride+x, &offsets, threshold)
		}
	}

	var corners []corner
	for y := border; y < h-border; y++ {
		for x := border; x < w-border; x++ {
			s := scores[y*w+x]
			if s == 0 || !isLocalMax(scores, w, x, y) {
				continue
			}
			corners = append(corners, corner{x: x, y: y, score: s})
		}
	}
	return corners
}

// segmentScore returns 0 when the pixel at pos is not a corner. Otherwise it
// returns the larger of the summed bright and dark excesses over threshold
// (always > 0).
func segmentScore(pix []uint8, pos int, offsets *[16]int, threshold int) int {
	p := int(pix[pos])
	hi, lo := p+threshold, p-threshold

	// Any 9-pixel arc covers at least two of the four compass points.
	bright, dark := 0, 0
	for i := 0; i < 16; i += 4 {
		v := int(pix[pos+offsets[i]])
		if v > hi {
			bright++
		} else if v < lo {
			dark++
		}
	}
	if bright < 2 && dark < 2 {
		return 0
	}

	var state [16]int8
	for i := range offsets {
		v := int(pix[pos+offsets[i]])
		switch {
		case v > hi:
			state[i] = 1
		case v < lo:
			state[i] = -1
		}
	}
	if !hasArc(&state, 1) && !hasArc(&state, -1) {
		return 0
	}

	sumBright, sumDark := 0, 0
	for i := range offsets {
		v := int(pix[pos+offsets[i]])
		switch state[i] {
		case 1:
			sumBright += v - hi
		case -1:
			sumDark += lo - v
		}
	}
	if sumBright > sumDark {
		return sumBright
	}
	return sumDark
}

// hasArc reports whether at least arcLength contiguous circle pixels share
// the given state, wrapping around the circle.
func hasArc(state *[16]int8, want int8) bool {
	run := 0
	for i := 0; i < 16+arcLength-1; i++ {
		if state[i%16] == want {
			run++
			if run >= arcLength {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// isLocalMax compares against the 3x3 neighbourhood. Ties go to the pixel
// that comes first in raster order.
func isLocalMax(scores []int, w, x, y int) bool {
	s := scores[y*w+x]
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := scores[(y+dy)*w+x+dx]
			before := dy < 0 || (dy == 0 && dx < 0)
			if n > s || (before && n == s) {
				return false
			}
		}
	}
	return true
}
