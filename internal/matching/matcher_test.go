package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/ironsheep/feature-tools-mcp/internal/features"
)

func matrix(rows ...[]byte) *features.Descriptors {
	if len(rows) == 0 {
		return features.NewDescriptors(0, 2)
	}
	d := features.NewDescriptors(len(rows), len(rows[0]))
	for i, r := range rows {
		copy(d.Row(i), r)
	}
	return d
}

func newMatcher(t *testing.T) *BFMatcher {
	t.Helper()
	m, err := NewBFMatcher(features.NormHamming)
	if err != nil {
		t.Fatalf("NewBFMatcher failed: %v", err)
	}
	return m
}

func TestNewBFMatcher_RejectsL2(t *testing.T) {
	if _, err := NewBFMatcher(features.NormL2); !errors.Is(err, features.ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}

func TestKnnMatch(t *testing.T) {
	m := newMatcher(t)
	query := matrix(
		[]byte{0x00, 0x00},
		[]byte{0xFF, 0xFF},
	)
	train := matrix(
		[]byte{0x0F, 0x00}, // 4 from q0, 12 from q1
		[]byte{0x01, 0x00}, // 1 from q0, 15 from q1
		[]byte{0xFF, 0x7F}, // 15 from q0, 1 from q1
		[]byte{0x03, 0x00}, // 2 from q0, 14 from q1
	)

	knn, err := m.KnnMatch(context.Background(), query, train, 2)
	if err != nil {
		t.Fatalf("KnnMatch failed: %v", err)
	}
	want := [][]Match{
		{{0, 1, 1}, {0, 3, 2}},
		{{1, 2, 1}, {1, 0, 12}},
	}
	if len(knn) != len(want) {
		t.Fatalf("rows: got %d, want %d", len(knn), len(want))
	}
	for i := range want {
		if len(knn[i]) != len(want[i]) {
			t.Fatalf("row %d: got %d matches, want %d", i, len(knn[i]), len(want[i]))
		}
		for j := range want[i] {
			if knn[i][j] != want[i][j] {
				t.Errorf("knn[%d][%d] = %+v, want %+v", i, j, knn[i][j], want[i][j])
			}
		}
	}
}

func TestKnnMatch_TiesKeepLowerTrainIndex(t *testing.T) {
	m := newMatcher(t)
	query := matrix([]byte{0x00, 0x00})
	train := matrix(
		[]byte{0x01, 0x00},
		[]byte{0x00, 0x01},
		[]byte{0x02, 0x00},
	)
	knn, err := m.KnnMatch(context.Background(), query, train, 2)
	if err != nil {
		t.Fatalf("KnnMatch failed: %v", err)
	}
	if knn[0][0].TrainIdx != 0 || knn[0][1].TrainIdx != 1 {
		t.Errorf("tie order: got %+v", knn[0])
	}
}

func TestKnnMatch_KLargerThanTrain(t *testing.T) {
	m := newMatcher(t)
	knn, err := m.KnnMatch(context.Background(), matrix([]byte{0, 0}), matrix([]byte{1, 0}), 5)
	if err != nil {
		t.Fatalf("KnnMatch failed: %v", err)
	}
	if len(knn[0]) != 1 {
		t.Errorf("got %d matches, want 1", len(knn[0]))
	}
}

func TestKnnMatch_EmptyInputs(t *testing.T) {
	m := newMatcher(t)
	ctx := context.Background()

	knn, err := m.KnnMatch(ctx, matrix(), matrix([]byte{1, 2}), 2)
	if err != nil || len(knn) != 0 {
		t.Errorf("empty query: got %v, %v", knn, err)
	}

	knn, err = m.KnnMatch(ctx, matrix([]byte{1, 2}, []byte{3, 4}), matrix(), 2)
	if err != nil {
		t.Fatalf("empty train: %v", err)
	}
	if len(knn) != 2 || len(knn[0]) != 0 || len(knn[1]) != 0 {
		t.Errorf("empty train: got %v", knn)
	}
}

func TestKnnMatch_Errors(t *testing.T) {
	m := newMatcher(t)
	ctx := context.Background()

	if _, err := m.KnnMatch(ctx, matrix([]byte{1, 2}), matrix([]byte{1, 2, 3}), 2); !errors.Is(err, features.ErrDimensionMismatch) {
		t.Errorf("width mismatch: got %v", err)
	}
	if _, err := m.KnnMatch(ctx, matrix([]byte{1, 2}), matrix([]byte{1, 2}), 0); !errors.Is(err, features.ErrInvalidConfig) {
		t.Errorf("k=0: got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := m.KnnMatch(cancelled, matrix([]byte{1, 2}), matrix([]byte{1, 2}), 1); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: got %v", err)
	}
}

func TestKnnMatch_ManyRows(t *testing.T) {
	m := newMatcher(t)
	const n = 300
	query := features.NewDescriptors(n, 4)
	train := features.NewDescriptors(n, 4)
	for i := 0; i < n; i++ {
		row := []byte{byte(i), byte(i >> 8), byte(i * 7), byte(i * 13)}
		copy(query.Row(i), row)
		copy(train.Row(n-1-i), row)
	}

	matches, err := m.Match(context.Background(), query, train)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != n {
		t.Fatalf("got %d matches, want %d", len(matches), n)
	}
	for i, mt := range matches {
		if mt.QueryIdx != i || mt.TrainIdx != n-1-i || mt.Distance != 0 {
			t.Errorf("match %d: got %+v", i, mt)
		}
	}
}

func TestKnnMatch_EveryChunkFilled(t *testing.T) {
	m := newMatcher(t)
	for _, n := range []int{1, 63, 64, 65, 130, 191} {
		query := features.NewDescriptors(n, 2)
		for i := 0; i < n; i++ {
			copy(query.Row(i), []byte{byte(i), byte(i >> 8)})
		}

		knn, err := m.KnnMatch(context.Background(), query, query, 2)
		if err != nil {
			t.Fatalf("n=%d: KnnMatch failed: %v", n, err)
		}
		if len(knn) != n {
			t.Fatalf("n=%d: got %d rows", n, len(knn))
		}
		for i, row := range knn {
			if len(row) != min(2, n) {
				t.Errorf("n=%d row %d: got %d neighbours", n, i, len(row))
				continue
			}
			if row[0].QueryIdx != i || row[0].TrainIdx != i || row[0].Distance != 0 {
				t.Errorf("n=%d row %d: got %+v", n, i, row[0])
			}
		}
	}
}

func TestRatioTest(t *testing.T) {
	knn := [][]Match{
		{{0, 0, 10}, {0, 1, 20}}, // kept
		{{1, 2, 10}, {1, 3, 12}}, // ambiguous
		{{2, 4, 5}},              // no runner-up
		{},
		{{4, 5, 0}, {4, 6, 0}}, // 0 < 0 fails
	}
	good := RatioTest(knn, 0.8)
	if len(good) != 1 || good[0] != (Match{0, 0, 10}) {
		t.Errorf("got %+v, want only query 0", good)
	}
}
