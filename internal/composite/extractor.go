package composite

import (
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/orb"
	"github.com/ironsheep/feature-tools-mcp/internal/teblid"
)

// Name identifies the combined descriptor.
const Name = "ORBwithTEBLID"

// Config bundles the parameters of both backends.
type Config struct {
	ORB    orb.Config    `json:"orb"`
	TEBLID teblid.Config `json:"teblid"`
}

// DefaultConfig returns the default parameters of both backends.
func DefaultConfig() Config {
	return Config{ORB: orb.DefaultConfig(), TEBLID: teblid.DefaultConfig()}
}

// Extractor detects keypoints and describes them with two concatenated
// binary descriptors. Its configuration is fixed at construction.
//
// Keep one call in flight per Extractor unless both backends are known to
// be safe for concurrent use. The built-in backends are.
type Extractor struct {
	a      features.Feature2D
	b      features.DescriptorExtractor
	logger *log.Logger
}

// New builds both backends from cfg. It fails if either backend rejects its
// parameters.
func New(cfg Config, opts ...Option) (*Extractor, error) {
	a, err := orb.New(cfg.ORB)
	if err != nil {
		return nil, fmt.Errorf("failed to create detector backend: %w", err)
	}
	b, err := teblid.New(cfg.TEBLID)
	if err != nil {
		return nil, fmt.Errorf("failed to create descriptor backend: %w", err)
	}
	return NewWithBackends(a, b, opts...)
}

// NewWithBackends wraps existing backends. a is used both for detection and
// for the first half of every descriptor row; b supplies the second half.
// Both must produce uint8 descriptors.
func NewWithBackends(a features.Feature2D, b features.DescriptorExtractor, opts ...Option) (*Extractor, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: both backends are required", features.ErrInvalidConfig)
	}
	if ta, tb := a.DescriptorType(), b.DescriptorType(); ta != features.TypeUint8 || tb != features.TypeUint8 {
		return nil, fmt.Errorf("%w: backend A is %v, backend B is %v, both must be %v",
			features.ErrIncompatibleTypes, ta, tb, features.TypeUint8)
	}

	e := &Extractor{a: a, b: b, logger: discardLogger()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Printf("%s: backend A %d bytes, backend B %d bytes", Name, a.DescriptorSize(), b.DescriptorSize())
	return e, nil
}

// Name returns "ORBwithTEBLID".
func (e *Extractor) Name() string { return Name }

// DescriptorSize is the sum of both backends' row widths in bytes.
func (e *Extractor) DescriptorSize() int {
	return e.a.DescriptorSize() + e.b.DescriptorSize()
}

// DescriptorType is always TypeUint8.
func (e *Extractor) DescriptorType() features.ElemType { return features.TypeUint8 }

// DefaultNorm is always Hamming.
func (e *Extractor) DefaultNorm() features.NormType { return features.NormHamming }

// Detect returns backend A's keypoints for img. A nil mask makes every
// pixel eligible. Finding nothing is not an error.
func (e *Extractor) Detect(img, mask *image.Gray) ([]features.KeyPoint, error) {
	return e.a.Detect(img, mask)
}

// Compute describes *kps with both backends and concatenates the results.
//
// Backend A may drop keypoints it cannot describe; *kps then holds the
// survivors and backend B describes exactly those. If either backend
// returns no rows the result is an empty matrix and a nil error. If the
// backends disagree on the row count, Compute returns an error wrapping
// features.ErrCardinalityMismatch and no matrix.
func (e *Extractor) Compute(img *image.Gray, kps *[]features.KeyPoint) (*features.Descriptors, error) {
	if kps == nil {
		return nil, features.ErrNilKeypoints
	}

	descA, err := e.a.Compute(img, kps)
	if err != nil {
		return nil, fmt.Errorf("backend A compute failed: %w", err)
	}
	descB, err := e.b.Compute(img, kps)
	if err != nil {
		return nil, fmt.Errorf("backend B compute failed: %w", err)
	}
	e.logger.Printf("%s: backend A %dx%d, backend B %dx%d",
		Name, rows(descA), cols(descA), rows(descB), cols(descB))

	if descA.Empty() || descB.Empty() {
		e.logger.Printf("%s: no descriptors computed", Name)
		return features.NewDescriptors(0, e.DescriptorSize()), nil
	}
	if descA.Rows != descB.Rows {
		return nil, fmt.Errorf("%w: backend A returned %d rows, backend B returned %d",
			features.ErrCardinalityMismatch, descA.Rows, descB.Rows)
	}

	out, err := features.HConcat(descA, descB)
	if err != nil {
		return nil, err
	}
	e.logger.Printf("%s: combined %dx%d", Name, out.Rows, out.Cols)
	return out, nil
}

// DetectAndCompute runs Detect and then Compute. With useProvided set,
// detection is skipped and *kps is described as given; the caller vouches
// that those keypoints suit both backends.
func (e *Extractor) DetectAndCompute(img, mask *image.Gray, kps *[]features.KeyPoint, useProvided bool) (*features.Descriptors, error) {
	if kps == nil {
		return nil, features.ErrNilKeypoints
	}
	if !useProvided {
		detected, err := e.Detect(img, mask)
		if err != nil {
			return nil, err
		}
		*kps = detected
	}
	return e.Compute(img, kps)
}

func rows(d *features.Descriptors) int {
	if d == nil {
		return 0
	}
	return d.Rows
}

func cols(d *features.Descriptors) int {
	if d == nil {
		return 0
	}
	return d.Cols
}
