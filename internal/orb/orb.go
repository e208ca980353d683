package orb

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
)

// descriptorSmoothRadius is the Gaussian radius applied to a pyramid level
// before sampling descriptor pairs.
const descriptorSmoothRadius = 2

// ORB detects oriented FAST corners and describes them with steered binary
// tests. An ORB holds no per-call state; its methods may be called
// concurrently.
type ORB struct {
	cfg     Config
	pattern []testPair
	umax    []int
}

var _ features.Feature2D = (*ORB)(nil)

// New validates cfg and precomputes the comparison pattern.
func New(cfg Config) (*ORB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ORB{
		cfg:     cfg,
		pattern: newPattern(cfg.PatchSize),
		umax:    circularPatch(cfg.PatchSize / 2),
	}, nil
}

// Config returns the parameters the detector was built with.
func (o *ORB) Config() Config { return o.cfg }

// DescriptorSize is 32 bytes.
func (o *ORB) DescriptorSize() int { return descriptorBytes }

// DescriptorType is always TypeUint8.
func (o *ORB) DescriptorType() features.ElemType { return features.TypeUint8 }

// DefaultNorm is Hamming.
func (o *ORB) DefaultNorm() features.NormType { return features.NormHamming }

// Detect returns up to NFeatures oriented keypoints in level-0 coordinates.
// Keypoints are grouped by pyramid level, finest first; within a level they
// are in raster order.
func (o *ORB) Detect(img, mask *image.Gray) ([]features.KeyPoint, error) {
	if err := features.CheckImage(img, mask); err != nil {
		return nil, err
	}

	levels := imaging.BuildPyramid(imaging.ToGray(img), o.cfg.ScaleFactor, o.cfg.NLevels)
	budgets := levelBudgets(o.cfg.NFeatures, o.cfg.ScaleFactor, len(levels))

	keypoints := make([]features.KeyPoint, 0, o.cfg.NFeatures)
	for l, level := range levels {
		if budgets[l] == 0 {
			continue
		}
		keypoints = append(keypoints, o.detectLevel(level, l, budgets[l], mask)...)
	}
	return features.RetainBest(keypoints, o.cfg.NFeatures), nil
}

func (o *ORB) detectLevel(level imaging.Level, octave, budget int, mask *image.Gray) []features.KeyPoint {
	corners := detectFAST(level.Image, o.cfg.FastThreshold, o.cfg.EdgeThreshold)
	if len(corners) == 0 {
		return nil
	}

	kps := make([]features.KeyPoint, 0, len(corners))
	for _, c := range corners {
		kps = append(kps, features.KeyPoint{
			X:        float64(c.x) * level.Scale,
			Y:        float64(c.y) * level.Scale,
			Size:     float64(o.cfg.PatchSize) * level.Scale,
			Angle:    -1,
			Response: float64(c.score),
			Octave:   octave,
			ClassID:  -1,
		})
	}
	kps = features.RunByMask(kps, mask)

	// Rank by segment score first, then keep the strongest Harris corners.
	kps = features.RetainBest(kps, 2*budget)
	for i := range kps {
		x, y := levelCoords(kps[i], level.Scale)
		kps[i].Response = harrisResponse(level.Image, x, y)
	}
	kps = features.RetainBest(kps, budget)

	for i := range kps {
		x, y := levelCoords(kps[i], level.Scale)
		kps[i].Angle = intensityCentroidAngle(level.Image, x, y, o.umax)
	}
	return kps
}

// Compute describes *keypoints after removing the ones it cannot describe.
// *keypoints is replaced with the survivors, in their original order, and
// the returned matrix has one 32-byte row per survivor. Keypoints with a
// negative Angle are oriented on the fly.
func (o *ORB) Compute(img *image.Gray, keypoints *[]features.KeyPoint) (*features.Descriptors, error) {
	if keypoints == nil {
		return nil, features.ErrNilKeypoints
	}
	if err := features.CheckImage(img, nil); err != nil {
		return nil, err
	}

	gray := imaging.ToGray(img)
	levels := imaging.BuildPyramid(gray, o.cfg.ScaleFactor, o.cfg.NLevels)

	kept := make([]features.KeyPoint, 0, len(*keypoints))
	for _, kp := range *keypoints {
		if kp.Octave >= 0 && kp.Octave < len(levels) {
			kept = append(kept, kp)
		}
	}
	kept = features.RunByImageBorder(kept, gray.Rect.Dx(), gray.Rect.Dy(), o.cfg.EdgeThreshold)
	*keypoints = kept

	desc := features.NewDescriptors(len(kept), descriptorBytes)
	if len(kept) == 0 {
		return desc, nil
	}

	smoothed := make([]*image.Gray, len(levels))
	for i := range kept {
		kp := &kept[i]
		level := levels[kp.Octave]
		if smoothed[kp.Octave] == nil {
			smoothed[kp.Octave] = imaging.Smooth(level.Image, descriptorSmoothRadius)
		}
		x, y := levelCoords(*kp, level.Scale)
		if kp.Angle < 0 {
			kp.Angle = intensityCentroidAngle(level.Image, x, y, o.umax)
		}
		o.describe(smoothed[kp.Octave], kp.X/level.Scale, kp.Y/level.Scale, kp.Angle, desc.Row(i))
	}
	return desc, nil
}

// describe writes the steered comparisons around (x, y) into out.
func (o *ORB) describe(g *image.Gray, x, y, angle float64, out []byte) {
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	sample := func(px, py float64) uint8 {
		rx := math.Round(px*cos - py*sin)
		ry := math.Round(px*sin + py*cos)
		return imaging.At(g, int(math.Round(x+rx)), int(math.Round(y+ry)))
	}

	for i, p := range o.pattern {
		if sample(p.x1, p.y1) < sample(p.x2, p.y2) {
			out[i/8] |= 1 << (i % 8)
		}
	}
}

// levelBudgets splits n across levels in proportion to each level's area
// share, so coarser levels get geometrically fewer keypoints. The last
// level takes whatever is left.
func levelBudgets(n int, scaleFactor float64, nlevels int) []int {
	budgets := make([]int, nlevels)
	if nlevels == 0 {
		return budgets
	}
	factor := 1 / scaleFactor
	desired := float64(n) * (1 - factor) / (1 - math.Pow(factor, float64(nlevels)))

	sum := 0
	for l := 0; l < nlevels-1; l++ {
		budgets[l] = int(math.Round(desired))
		sum += budgets[l]
		desired *= factor
	}
	if last := n - sum; last > 0 {
		budgets[nlevels-1] = last
	}
	return budgets
}

func levelCoords(kp features.KeyPoint, scale float64) (int, int) {
	return int(math.Round(kp.X / scale)), int(math.Round(kp.Y / scale))
}

// String describes the configuration, for logs.
func (o *ORB) String() string {
	return fmt.Sprintf("ORB(nfeatures=%d, scale=%g, levels=%d)", o.cfg.NFeatures, o.cfg.ScaleFactor, o.cfg.NLevels)
}
