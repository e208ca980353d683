package imaging

import (
	"image"
	"math"
	"testing"
)

func TestBuildPyramid(t *testing.T) {
	src := SyntheticScene(800, 800)
	levels := BuildPyramid(src, 1.2, 8)

	if len(levels) != 8 {
		t.Fatalf("levels: got %d, want 8", len(levels))
	}
	if levels[0].Image != src || levels[0].Scale != 1 {
		t.Error("level 0 should be the source at scale 1")
	}

	for l, lvl := range levels {
		wantScale := math.Pow(1.2, float64(l))
		if math.Abs(lvl.Scale-wantScale) > 1e-9 {
			t.Errorf("level %d scale: got %v, want %v", l, lvl.Scale, wantScale)
		}
		wantSize := int(math.Round(800 / wantScale))
		b := lvl.Image.Bounds()
		if b.Min != (image.Point{}) || b.Dx() != wantSize || b.Dy() != wantSize {
			t.Errorf("level %d bounds: got %v, want %dx%d at origin", l, b, wantSize, wantSize)
		}
	}
}

func TestBuildPyramid_PreservesContent(t *testing.T) {
	src := SyntheticScene(800, 800)
	levels := BuildPyramid(src, 2, 3)

	// Disc interior outside the cutout stays white; cutout interior stays black
	top := levels[2]
	x, y := int(260/top.Scale), int(300/top.Scale)
	if v := top.Image.GrayAt(x, y).Y; v < 200 {
		t.Errorf("disc interior at level 2: got %d, want bright", v)
	}
	q := int(350 / top.Scale)
	if v := top.Image.GrayAt(q, q).Y; v > 50 {
		t.Errorf("cutout interior at level 2: got %d, want dark", v)
	}
}

func TestBuildPyramid_StopsWhenTiny(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	levels := BuildPyramid(src, 2, 10)
	if len(levels) != 4 {
		t.Errorf("levels for 4x4 at factor 2: got %d, want 4 (4,2,1,1 px)", len(levels))
	}
}

func TestBuildPyramid_Degenerate(t *testing.T) {
	if BuildPyramid(nil, 1.2, 3) != nil {
		t.Error("nil source should give nil pyramid")
	}
	if BuildPyramid(image.NewGray(image.Rect(0, 0, 4, 4)), 1.2, 0) != nil {
		t.Error("zero levels should give nil pyramid")
	}
}
