package composite

import (
	"context"
	"image"
	"testing"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
	"github.com/ironsheep/feature-tools-mcp/internal/matching"
	"github.com/ironsheep/feature-tools-mcp/internal/teblid"
)

func sceneExtractor(t *testing.T) *Extractor {
	t.Helper()
	return sceneExtractorBits(t, teblid.Size256Bits)
}

func sceneExtractorBits(t *testing.T, bits teblid.BitWidth) *Extractor {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ORB.NFeatures = 2000
	cfg.TEBLID.Bits = bits
	cfg.TEBLID.ScaleFactor = 1.0
	ex, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ex
}

func TestScene_DetectAndCompute(t *testing.T) {
	tests := []struct {
		name string
		bits teblid.BitWidth
		cols int
	}{
		{"256 bits", teblid.Size256Bits, 64},
		{"512 bits", teblid.Size512Bits, 96},
	}

	img := imaging.SyntheticScene(800, 800)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := sceneExtractorBits(t, tt.bits)
			if ex.DescriptorSize() != tt.cols {
				t.Fatalf("DescriptorSize: got %d, want %d", ex.DescriptorSize(), tt.cols)
			}
			checkSceneDescriptors(t, ex, img, tt.cols)
		})
	}
}

func checkSceneDescriptors(t *testing.T, ex *Extractor, img *image.Gray, wantCols int) {
	t.Helper()

	var kps []features.KeyPoint
	desc, err := ex.DetectAndCompute(img, nil, &kps, false)
	if err != nil {
		t.Fatalf("DetectAndCompute failed: %v", err)
	}
	if len(kps) == 0 {
		t.Fatal("expected keypoints on the synthetic scene")
	}
	if desc.Rows != len(kps) {
		t.Errorf("rows %d != keypoints %d", desc.Rows, len(kps))
	}
	if desc.Cols != wantCols || desc.Cols != ex.DescriptorSize() {
		t.Errorf("cols: got %d, want %d", desc.Cols, wantCols)
	}
	if ex.DescriptorType() != features.TypeUint8 {
		t.Errorf("DescriptorType: got %v", ex.DescriptorType())
	}
	for i := 0; i < desc.Rows; i++ {
		zero := true
		for _, v := range desc.Row(i) {
			if v != 0 {
				zero = false
				break
			}
		}
		if zero {
			t.Errorf("row %d is all zero", i)
		}
	}
}

func TestScene_RotationMatches(t *testing.T) {
	ex := sceneExtractor(t)
	img := imaging.SyntheticScene(800, 800)
	rotated := imaging.Rotate(img, 45)

	var kps1, kps2 []features.KeyPoint
	desc1, err := ex.DetectAndCompute(img, nil, &kps1, false)
	if err != nil {
		t.Fatalf("DetectAndCompute (original) failed: %v", err)
	}
	desc2, err := ex.DetectAndCompute(rotated, nil, &kps2, false)
	if err != nil {
		t.Fatalf("DetectAndCompute (rotated) failed: %v", err)
	}

	m, err := matching.NewBFMatcher(ex.DefaultNorm())
	if err != nil {
		t.Fatalf("NewBFMatcher failed: %v", err)
	}
	knn, err := m.KnnMatch(context.Background(), desc1, desc2, 2)
	if err != nil {
		t.Fatalf("KnnMatch failed: %v", err)
	}
	good := matching.RatioTest(knn, 0.8)
	if len(good) <= 10 {
		t.Errorf("good matches: got %d, want > 10 (keypoints %d / %d)", len(good), len(kps1), len(kps2))
	}
}

func TestScene_Blank(t *testing.T) {
	ex := sceneExtractor(t)
	img := image.NewGray(image.Rect(0, 0, 320, 240))

	var kps []features.KeyPoint
	desc, err := ex.DetectAndCompute(img, nil, &kps, false)
	if err != nil {
		t.Fatalf("blank image must not fail: %v", err)
	}
	if len(kps) != 0 || !desc.Empty() {
		t.Errorf("got %d keypoints and %d rows, want none", len(kps), desc.Rows)
	}
}

func TestScene_ComputeIdempotent(t *testing.T) {
	ex := sceneExtractor(t)
	img := imaging.SyntheticScene(400, 400)

	kps, err := ex.Detect(img, nil)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	first := append([]features.KeyPoint(nil), kps...)
	second := append([]features.KeyPoint(nil), kps...)

	a, err := ex.Compute(img, &first)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	b, err := ex.Compute(img, &second)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("repeated Compute produced different descriptors")
	}
}

func TestScene_HalvesMatchBackends(t *testing.T) {
	ex := sceneExtractor(t)
	img := imaging.SyntheticScene(400, 400)
	kps, err := ex.Detect(img, nil)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	combinedKps := append([]features.KeyPoint(nil), kps...)
	combined, err := ex.Compute(img, &combinedKps)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	aKps := append([]features.KeyPoint(nil), kps...)
	descA, err := ex.a.Compute(img, &aKps)
	if err != nil {
		t.Fatalf("backend A failed: %v", err)
	}
	descB, err := ex.b.Compute(img, &aKps)
	if err != nil {
		t.Fatalf("backend B failed: %v", err)
	}

	wa := ex.a.DescriptorSize()
	for i := 0; i < combined.Rows; i++ {
		row := combined.Row(i)
		if features.Hamming(row[:wa], descA.Row(i)) != 0 {
			t.Fatalf("row %d: first half differs from backend A", i)
		}
		if features.Hamming(row[wa:], descB.Row(i)) != 0 {
			t.Fatalf("row %d: second half differs from backend B", i)
		}
	}
}
