package hier

import (
	"github.com/cpmech/gosl/chk"
)

// IntVector is a D-length integer vector over the axis directions of a
// structured index space.  It doubles as the direction vector of a
// side/edge-type field, where each entry is 0 or 1 depending on whether the
// field allocates data for that axis.
type IntVector []int

// NewIntVector returns a vector of the given dimension with every entry set
// to val.
func NewIntVector(dim, val int) IntVector {
	v := make(IntVector, dim)
	for i := range v {
		v[i] = val
	}
	return v
}

// Ones returns the all-ones direction vector of the given dimension.
func Ones(dim int) IntVector {
	return NewIntVector(dim, 1)
}

// Dim returns the spatial dimension of the vector.
func (v IntVector) Dim() int {
	return len(v)
}

// Copy returns a deep copy.
func (v IntVector) Copy() IntVector {
	out := make(IntVector, len(v))
	copy(out, v)
	return out
}

// Equals reports componentwise equality.
func (v IntVector) Equals(o IntVector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// MinVec returns the componentwise minimum of a and b.
func MinVec(a, b IntVector) IntVector {
	if len(a) != len(b) {
		chk.Panic("dimension mismatch: cannot take componentwise minimum of %d-vector and %d-vector", len(a), len(b))
	}
	out := make(IntVector, len(a))
	for i := range a {
		out[i] = a[i]
		if b[i] < a[i] {
			out[i] = b[i]
		}
	}
	return out
}

// CoveredBy reports whether v == MinVec(v, o), i.e. o allocates at least the
// directions v does.
func (v IntVector) CoveredBy(o IntVector) bool {
	if len(v) != len(o) {
		return false
	}
	return v.Equals(MinVec(v, o))
}
