package features

import (
	"bytes"
	"fmt"
)

// Descriptors is a row-major matrix of descriptor bytes: Rows keypoints by
// Cols bytes each. Row i lives at Data[i*Cols : (i+1)*Cols].
type Descriptors struct {
	Rows int
	Cols int
	Data []byte
}

// NewDescriptors allocates a zeroed rows×cols matrix.
func NewDescriptors(rows, cols int) *Descriptors {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("features: negative matrix shape %dx%d", rows, cols))
	}
	return &Descriptors{
		Rows: rows,
		Cols: cols,
		Data: make([]byte, rows*cols),
	}
}

// Empty reports whether the matrix is nil or has no rows.
func (d *Descriptors) Empty() bool {
	return d == nil || d.Rows == 0
}

// Row returns row i as a sub-slice of the backing array.
func (d *Descriptors) Row(i int) []byte {
	if i < 0 || i >= d.Rows {
		panic(fmt.Sprintf("features: row %d out of range [0,%d)", i, d.Rows))
	}
	return d.Data[i*d.Cols : (i+1)*d.Cols : (i+1)*d.Cols]
}

// Equal reports whether two matrices have the same shape and bytes.
func (d *Descriptors) Equal(o *Descriptors) bool {
	if d.Empty() || o.Empty() {
		return d.Empty() && o.Empty()
	}
	return d.Rows == o.Rows && d.Cols == o.Cols && bytes.Equal(d.Data, o.Data)
}

// Clone returns a deep copy.
func (d *Descriptors) Clone() *Descriptors {
	if d == nil {
		return nil
	}
	out := &Descriptors{Rows: d.Rows, Cols: d.Cols, Data: make([]byte, len(d.Data))}
	copy(out.Data, d.Data)
	return out
}

// HConcat joins two matrices side by side. Row i of the result is row i of a
// followed by row i of b. Both inputs must have the same row count.
func HConcat(a, b *Descriptors) (*Descriptors, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrDimensionMismatch)
	}
	if a.Rows != b.Rows {
		return nil, fmt.Errorf("%w: %d rows vs %d rows", ErrCardinalityMismatch, a.Rows, b.Rows)
	}
	out := NewDescriptors(a.Rows, a.Cols+b.Cols)
	for i := 0; i < a.Rows; i++ {
		dst := out.Data[i*out.Cols : (i+1)*out.Cols]
		copy(dst, a.Data[i*a.Cols:(i+1)*a.Cols])
		copy(dst[a.Cols:], b.Data[i*b.Cols:(i+1)*b.Cols])
	}
	return out, nil
}
