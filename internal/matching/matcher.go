package matching

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

// rowsPerTask is the number of query rows each worker handles at a time.
const rowsPerTask = 64

// Match pairs query row QueryIdx with train row TrainIdx.
type Match struct {
	QueryIdx int `json:"query_idx"`
	TrainIdx int `json:"train_idx"`
	Distance int `json:"distance"`
}

// BFMatcher is a brute-force matcher. It is safe for concurrent use.
type BFMatcher struct {
	norm    features.NormType
	workers int
}

// NewBFMatcher returns a matcher for norm. Only NormHamming is supported.
func NewBFMatcher(norm features.NormType) (*BFMatcher, error) {
	if norm != features.NormHamming {
		return nil, fmt.Errorf("%w: unsupported norm %v for binary descriptors", features.ErrInvalidConfig, norm)
	}
	return &BFMatcher{norm: norm, workers: runtime.GOMAXPROCS(0)}, nil
}

// Norm returns the distance the matcher uses.
func (m *BFMatcher) Norm() features.NormType { return m.norm }

// KnnMatch returns, for every query row, up to k train matches sorted by
// increasing distance. Equal distances keep the lower train index first.
// An empty train matrix gives every query row an empty list.
func (m *BFMatcher) KnnMatch(ctx context.Context, query, train *features.Descriptors, k int) ([][]Match, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", features.ErrInvalidConfig, k)
	}
	if query.Empty() {
		return [][]Match{}, nil
	}
	result := make([][]Match, query.Rows)
	if train.Empty() {
		for i := range result {
			result[i] = []Match{}
		}
		return result, nil
	}
	if query.Cols != train.Cols {
		return nil, fmt.Errorf("%w: query has %d bytes per row, train has %d",
			features.ErrDimensionMismatch, query.Cols, train.Cols)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for start := 0; start < query.Rows; start += rowsPerTask {
		start, end := start, min(start+rowsPerTask, query.Rows)
		g.Go(func() error {
			for q := start; q < end; q++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				result[q] = nearest(query.Row(q), q, train, k)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Match returns the single best train match for each query row. Query rows
// with no candidate are omitted.
func (m *BFMatcher) Match(ctx context.Context, query, train *features.Descriptors) ([]Match, error) {
	knn, err := m.KnnMatch(ctx, query, train, 1)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, len(knn))
	for _, ms := range knn {
		if len(ms) > 0 {
			out = append(out, ms[0])
		}
	}
	return out, nil
}

// nearest keeps the k smallest distances by insertion into a short sorted
// list.
func nearest(row []byte, q int, train *features.Descriptors, k int) []Match {
	best := make([]Match, 0, min(k, train.Rows))
	for t := 0; t < train.Rows; t++ {
		d := features.Hamming(row, train.Row(t))
		if len(best) == k && d >= best[k-1].Distance {
			continue
		}
		pos := len(best)
		for pos > 0 && best[pos-1].Distance > d {
			pos--
		}
		if len(best) < k {
			best = append(best, Match{})
		}
		copy(best[pos+1:], best[pos:len(best)-1])
		best[pos] = Match{QueryIdx: q, TrainIdx: t, Distance: d}
	}
	return best
}

// RatioTest keeps knn[i][0] when its distance is below ratio times the
// distance of knn[i][1]. Lists with fewer than two entries are dropped.
func RatioTest(knn [][]Match, ratio float64) []Match {
	good := make([]Match, 0, len(knn))
	for _, ms := range knn {
		if len(ms) < 2 {
			continue
		}
		if float64(ms[0].Distance) < ratio*float64(ms[1].Distance) {
			good = append(good, ms[0])
		}
	}
	return good
}
