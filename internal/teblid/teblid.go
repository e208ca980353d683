package teblid

import (
	"image"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
)

// smoothRadius is the Gaussian radius applied before patch resampling.
const smoothRadius = 1

// Extractor computes box-pair descriptors. It holds no per-call state.
type Extractor struct {
	cfg   Config
	pairs []boxPair
}

var _ features.DescriptorExtractor = (*Extractor)(nil)

// New validates cfg and selects the comparison pattern for its bit width.
func New(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{cfg: cfg, pairs: pattern[:int(cfg.Bits)]}, nil
}

// Config returns the parameters the extractor was built with.
func (e *Extractor) Config() Config { return e.cfg }

// DescriptorSize is 32 or 64 bytes depending on the bit width.
func (e *Extractor) DescriptorSize() int { return e.cfg.Bits.Bytes() }

// DescriptorType is always TypeUint8.
func (e *Extractor) DescriptorType() features.ElemType { return features.TypeUint8 }

// DefaultNorm is Hamming.
func (e *Extractor) DefaultNorm() features.NormType { return features.NormHamming }

// Compute returns one descriptor row per keypoint. *keypoints is left
// unchanged.
func (e *Extractor) Compute(img *image.Gray, keypoints *[]features.KeyPoint) (*features.Descriptors, error) {
	if keypoints == nil {
		return nil, features.ErrNilKeypoints
	}
	if err := features.CheckImage(img, nil); err != nil {
		return nil, err
	}

	kps := *keypoints
	desc := features.NewDescriptors(len(kps), e.DescriptorSize())
	if len(kps) == 0 {
		return desc, nil
	}

	smoothed := imaging.Smooth(imaging.ToGray(img), smoothRadius)
	var ip integralPatch
	for i, kp := range kps {
		samplePatch(smoothed, kp, e.cfg.ScaleFactor, &ip)
		row := desc.Row(i)
		for bit, p := range e.pairs {
			if ip.boxSum(p.x1, p.y1, p.half) > ip.boxSum(p.x2, p.y2, p.half) {
				row[bit/8] |= 1 << (bit % 8)
			}
		}
	}
	return desc, nil
}
