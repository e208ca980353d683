package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Level is one layer of an image pyramid.
type Level struct {
	// Image is the grayscale plane at this level, anchored at (0,0).
	Image *image.Gray

	// Scale maps level coordinates back to level-0 coordinates:
	// x0 = x * Scale. Level 0 has Scale 1.
	Scale float64
}

// BuildPyramid returns levels 0..n-1 of a scale pyramid. Level l has size
// round(w/scaleFactor^l) x round(h/scaleFactor^l) and is resampled from level
// l-1 with a linear filter. Building stops early once a level would be smaller
// than 1 pixel in either dimension.
//
// Level 0 shares storage with src.
func BuildPyramid(src *image.Gray, scaleFactor float64, n int) []Level {
	if n <= 0 || src == nil {
		return nil
	}
	levels := make([]Level, 0, n)
	levels = append(levels, Level{Image: src, Scale: 1})

	w0, h0 := src.Rect.Dx(), src.Rect.Dy()
	for l := 1; l < n; l++ {
		scale := math.Pow(scaleFactor, float64(l))
		w := int(math.Round(float64(w0) / scale))
		h := int(math.Round(float64(h0) / scale))
		if w < 1 || h < 1 {
			break
		}
		prev := levels[l-1].Image
		resized := imaging.Resize(prev, w, h, imaging.Linear)
		levels = append(levels, Level{Image: channelToGray(resized), Scale: scale})
	}
	return levels
}
