// Package dataops implements the three reduction tiers over directional
// patch data: dense array kernels restricted to an index box, per-patch
// operators that fold kernel results across directions, and hierarchy
// operators that sweep refinement levels and finish with one collective
// reduction.  Norms, dot products, and integrals follow the complex
// conventions |z| = sqrt(z*conj(z)) and dot(a,b) = sum a*conj(b).
package dataops

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"

	"github.com/jamestiotio/SAMRAI/pdat"
)

// magnitude returns |v|: the absolute value for reals, the modulus for
// complex values.
func magnitude[T pdat.Value](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}
	return 0
}

// absSq returns v*conj(v) as a real number without the square root.
func absSq[T pdat.Value](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x * x
	case complex128:
		return real(x)*real(x) + imag(x)*imag(x)
	}
	return 0
}

// conjOf returns the complex conjugate; reals pass through.
func conjOf[T pdat.Value](v T) T {
	if x, ok := any(v).(complex128); ok {
		return any(cmplx.Conj(x)).(T)
	}
	return v
}

// scaleVal multiplies v by a real factor.
func scaleVal[T pdat.Value](v T, s float64) T {
	switch x := any(v).(type) {
	case float64:
		return any(x * s).(T)
	case complex128:
		return any(x * complex(s, 0)).(T)
	}
	var zero T
	return zero
}

// oneVal returns the multiplicative identity of T.
func oneVal[T pdat.Value]() T {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(1.0).(T)
	case complex128:
		return any(complex(1, 0)).(T)
	}
	return zero
}

// requireField aborts when a required field is absent.
func requireField[T pdat.Value](d *pdat.Data[T], name string) {
	if d == nil {
		chk.Panic("required field %q is nil", name)
	}
}

// requireWeight aborts when a required real weight field is absent.
func requireWeight(d *pdat.Data[float64], name string) {
	if d == nil {
		chk.Panic("required control-volume field %q is nil", name)
	}
}

// requireSameDim aborts when two fields live in different spatial
// dimensions.
func requireSameDim(a, b int) {
	if a != b {
		chk.Panic("dimension mismatch: %dD combined with %dD", a, b)
	}
}

// requireWeightCompat checks that a control-volume field can weight the
// data field: same dimension and centering, every data direction allocated
// by the weight, and weight depth either 1 or the data depth.
func requireWeightCompat[T pdat.Value](data *pdat.Data[T], cvol *pdat.Data[float64]) {
	requireSameDim(data.Dim(), cvol.Dim())
	if data.Centering != cvol.Centering {
		chk.Panic("control volume has %s centering, data has %s", cvol.Centering, data.Centering)
	}
	if !data.Directions.CoveredBy(cvol.Directions) {
		chk.Panic("direction vector mismatch: data %v is not covered by control volume %v",
			[]int(data.Directions), []int(cvol.Directions))
	}
	if cvol.Depth != 1 && cvol.Depth != data.Depth {
		chk.Panic("depth mismatch: control volume depth %d must be 1 or the data depth %d", cvol.Depth, data.Depth)
	}
}

// requirePairCompat checks that two data fields may be combined entrywise:
// same dimension, centering, direction vector, and depth.
func requirePairCompat[T pdat.Value](a, b *pdat.Data[T]) {
	requireSameDim(a.Dim(), b.Dim())
	if a.Centering != b.Centering {
		chk.Panic("centering mismatch: %s combined with %s", a.Centering, b.Centering)
	}
	if !a.Directions.Equals(b.Directions) {
		chk.Panic("direction vector mismatch: %v combined with %v", []int(a.Directions), []int(b.Directions))
	}
	if a.Depth != b.Depth {
		chk.Panic("depth mismatch: %d combined with %d", a.Depth, b.Depth)
	}
}
