package features

import "image"

// Detector finds keypoints in an image.
//
// A nil mask makes every pixel eligible; otherwise only pixels with a non-zero
// mask value may hold a keypoint. The returned order is backend-defined but
// stable for a given input.
type Detector interface {
	Detect(img *image.Gray, mask *image.Gray) ([]KeyPoint, error)
}

// DescriptorExtractor describes a fixed list of keypoints.
//
// Compute returns a matrix with one row per keypoint remaining in *keypoints
// after the call. Implementations may drop keypoints they cannot describe but
// must keep the survivors in their original order.
type DescriptorExtractor interface {
	Compute(img *image.Gray, keypoints *[]KeyPoint) (*Descriptors, error)
	DescriptorSize() int
	DescriptorType() ElemType
}

// Feature2D both detects keypoints and describes them.
type Feature2D interface {
	Detector
	DescriptorExtractor
}

// CheckImage reports ErrEmptyImage for nil or zero-area images, and
// ErrMaskSize for a non-nil mask with different bounds.
func CheckImage(img, mask *image.Gray) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}
	if mask != nil && mask.Bounds() != img.Bounds() {
		return ErrMaskSize
	}
	return nil
}
