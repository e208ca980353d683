package features

import "fmt"

// ElemType tags the element type of a descriptor matrix.
type ElemType int

const (
	// TypeUint8 marks unsigned 8-bit elements. Binary descriptors use it.
	TypeUint8 ElemType = iota
	// TypeFloat32 marks 32-bit float elements.
	TypeFloat32
)

func (t ElemType) String() string {
	switch t {
	case TypeUint8:
		return "uint8"
	case TypeFloat32:
		return "float32"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// NormType tags the distance metric descriptors are compared with.
type NormType int

const (
	// NormHamming counts differing bits between two byte strings.
	NormHamming NormType = iota
	// NormL2 is the Euclidean distance.
	NormL2
)

func (n NormType) String() string {
	switch n {
	case NormHamming:
		return "hamming"
	case NormL2:
		return "l2"
	default:
		return fmt.Sprintf("Unknown(%d)", int(n))
	}
}
