// Package composite fuses two binary descriptors into one.
//
// An Extractor owns a detector that also produces its own native descriptor
// (backend A) and a second, describe-only extractor (backend B). Compute
// runs A, hands A's surviving keypoints to B, checks that both produced the
// same number of rows and concatenates each pair of rows, A's bytes first.
//
// Because both halves are bit strings, the Hamming distance between two
// composite rows is the sum of the per-half distances, so composite
// descriptors match with the same Hamming matcher as either backend alone.
//
// Typical use:
//
//	ex, err := composite.New(composite.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	var kps []features.KeyPoint
//	desc, err := ex.DetectAndCompute(img, nil, &kps, false)
package composite
