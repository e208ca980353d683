package orb

import (
	"image"
	"image/color"
	"testing"
)

func TestHasArc(t *testing.T) {
	tests := []struct {
		name  string
		set   []int
		want  bool
		state int8
	}{
		{"none", nil, false, 1},
		{"eight contiguous", []int{0, 1, 2, 3, 4, 5, 6, 7}, false, 1},
		{"nine contiguous", []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, true, 1},
		{"nine wrapping", []int{12, 13, 14, 15, 0, 1, 2, 3, 4}, true, -1},
		{"nine broken", []int{0, 1, 2, 3, 5, 6, 7, 8, 9}, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state [16]int8
			for _, i := range tt.set {
				state[i] = tt.state
			}
			if got := hasArc(&state, tt.state); got != tt.want {
				t.Errorf("hasArc = %v, want %v", got, tt.want)
			}
		})
	}
}

func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestSegmentScore(t *testing.T) {
	img := uniformGray(9, 9, 200)
	img.SetGray(4, 4, color.Gray{Y: 0})

	var offsets [16]int
	for i, p := range circle {
		offsets[i] = p.Y*img.Stride + p.X
	}

	// Dark centre ringed by bright pixels: every circle pixel exceeds 0+20.
	if got, want := segmentScore(img.Pix, 4*img.Stride+4, &offsets, 20), 16*(200-20); got != want {
		t.Errorf("isolated dark pixel: got %d, want %d", got, want)
	}

	flat := uniformGray(9, 9, 100)
	if got := segmentScore(flat.Pix, 4*flat.Stride+4, &offsets, 20); got != 0 {
		t.Errorf("flat image: got %d, want 0", got)
	}
}

func TestDetectFAST_SquareCorner(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	corners := detectFAST(img, 20, 3)
	if len(corners) == 0 {
		t.Fatal("expected a corner near (20,20)")
	}
	for _, c := range corners {
		if c.x < 17 || c.x > 23 || c.y < 17 || c.y > 23 {
			t.Errorf("unexpected corner at (%d,%d)", c.x, c.y)
		}
	}
}

func TestDetectFAST_StraightEdge(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 20; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	if corners := detectFAST(img, 20, 3); len(corners) != 0 {
		t.Errorf("straight edge produced %d corners", len(corners))
	}
}

func TestDetectFAST_TooSmall(t *testing.T) {
	if corners := detectFAST(uniformGray(10, 10, 0), 20, 5); corners != nil {
		t.Errorf("got %v, want nil", corners)
	}
}

func TestIsLocalMax_TieBreak(t *testing.T) {
	w := 4
	scores := []int{
		0, 0, 0, 0,
		0, 5, 5, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	if !isLocalMax(scores, w, 1, 1) {
		t.Error("first of equal pair should survive")
	}
	if isLocalMax(scores, w, 2, 1) {
		t.Error("second of equal pair should be suppressed")
	}
}
