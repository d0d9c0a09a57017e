package dataops

import (
	"math/cmplx"

	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/floats"

	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
)

// This file holds the dense kernels of the bottom tier.  Every kernel
// operates on one directional component restricted to the intersection of
// box with the storage box of every operand, control volume included,
// with the weighted and unweighted code paths kept as separate branches.
// An empty restriction yields the reduction identity (0).  Kernels return
// raw partial sums; square roots and zero-divisor checks belong to the
// upper tiers so partial results stay combinable across directions,
// patches, and processes.

// CountEntries returns depth times the number of locations of the
// component inside box.
func CountEntries[T pdat.Value](c *pdat.Component[T], box hier.Box) int {
	return box.Intersect(c.Box).NumCells() * c.Depth
}

// SumWeights sums all weight entries inside box.
func SumWeights(c *pdat.Component[float64], box hier.Box) float64 {
	region := box.Intersect(c.Box)
	sum := 0.0
	c.ForEachRow(region, func(row []float64) {
		sum += floats.Sum(row)
	})
	return sum
}

// AbsInto writes |src| into dst over box intersected with both storages.
func AbsInto[T pdat.Value](dst *pdat.Component[float64], src *pdat.Component[T], box hier.Box) {
	region := box.Intersect(src.Box).Intersect(dst.Box)
	if region.Empty() {
		return
	}
	w := region.Width(0)
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		s := src.Row(start, w)
		d := dst.Row(start, w)
		for i := range s {
			d[i] = magnitude(s[i])
		}
	})
}

// SumAbs returns Σ |d_i| over box, each entry weighted by the control
// volume when cvol is non-nil.
func SumAbs[T pdat.Value](data *pdat.Component[T], box hier.Box, cvol *pdat.Component[float64]) float64 {
	region := box.Intersect(data.Box)
	if region.Empty() {
		return 0
	}
	sum := 0.0
	if cvol == nil {
		data.ForEachRow(region, func(row []T) {
			switch r := any(row).(type) {
			case []float64:
				sum += floats.Norm(r, 1)
			case []complex128:
				// BLAS zasum sums |re|+|im|, not the modulus, so the
				// complex L1 loop stays explicit
				for _, v := range r {
					sum += cmplx.Abs(v)
				}
			}
		})
		return sum
	}
	region = region.Intersect(cvol.Box)
	if region.Empty() {
		return 0
	}
	w := region.Width(0)
	dd, dc := data.Depth, cvol.Depth
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		drow := data.Row(start, w)
		wrow := cvol.Row(start, w)
		for i := 0; i < w; i++ {
			for k := 0; k < dd; k++ {
				cv := wrow[i*dc]
				if dc > 1 {
					cv = wrow[i*dc+k]
				}
				sum += magnitude(drow[i*dd+k]) * cv
			}
		}
	})
	return sum
}

// SumSquares returns Σ d_i*conj(d_i) over box, weighted by the control
// volume when cvol is non-nil.  The result is real and nonnegative.
func SumSquares[T pdat.Value](data *pdat.Component[T], box hier.Box, cvol *pdat.Component[float64]) float64 {
	region := box.Intersect(data.Box)
	if region.Empty() {
		return 0
	}
	sum := 0.0
	if cvol == nil {
		data.ForEachRow(region, func(row []T) {
			switch r := any(row).(type) {
			case []float64:
				sum += floats.Dot(r, r)
			case []complex128:
				v := cblas128.Vector{N: len(r), Inc: 1, Data: r}
				sum += real(cblas128.Dotc(v, v))
			}
		})
		return sum
	}
	region = region.Intersect(cvol.Box)
	if region.Empty() {
		return 0
	}
	w := region.Width(0)
	dd, dc := data.Depth, cvol.Depth
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		drow := data.Row(start, w)
		wrow := cvol.Row(start, w)
		for i := 0; i < w; i++ {
			for k := 0; k < dd; k++ {
				cv := wrow[i*dc]
				if dc > 1 {
					cv = wrow[i*dc+k]
				}
				sum += absSq(drow[i*dd+k]) * cv
			}
		}
	})
	return sum
}

// SumWeightedSquares returns Σ (d_i*w_i)*conj(d_i*w_i) over box, times the
// control volume inside the sum when cvol is non-nil.
func SumWeightedSquares[T pdat.Value](data, wgt *pdat.Component[T], box hier.Box, cvol *pdat.Component[float64]) float64 {
	region := box.Intersect(data.Box).Intersect(wgt.Box)
	if region.Empty() {
		return 0
	}
	w := region.Width(0)
	dd := data.Depth
	sum := 0.0
	if cvol == nil {
		pdat.ForEachRowStart(region, func(start hier.IntVector) {
			drow := data.Row(start, w)
			grow := wgt.Row(start, w)
			for i := range drow {
				sum += absSq(drow[i] * grow[i])
			}
		})
		return sum
	}
	dc := cvol.Depth
	region = region.Intersect(cvol.Box)
	if region.Empty() {
		return 0
	}
	w = region.Width(0)
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		drow := data.Row(start, w)
		grow := wgt.Row(start, w)
		wrow := cvol.Row(start, w)
		for i := 0; i < w; i++ {
			for k := 0; k < dd; k++ {
				cv := wrow[i*dc]
				if dc > 1 {
					cv = wrow[i*dc+k]
				}
				sum += absSq(drow[i*dd+k]*grow[i*dd+k]) * cv
			}
		}
	})
	return sum
}

// MaxMagnitude returns max |d_i| over box.  With a control volume, entries
// whose weight is zero (or negative) are excluded entirely rather than
// contributing zero; when nothing qualifies the result is 0, meaning "no
// contribution".
func MaxMagnitude[T pdat.Value](data *pdat.Component[T], box hier.Box, cvol *pdat.Component[float64]) float64 {
	region := box.Intersect(data.Box)
	if region.Empty() {
		return 0
	}
	max := 0.0
	if cvol == nil {
		data.ForEachRow(region, func(row []T) {
			for _, v := range row {
				if m := magnitude(v); m > max {
					max = m
				}
			}
		})
		return max
	}
	region = region.Intersect(cvol.Box)
	if region.Empty() {
		return 0
	}
	w := region.Width(0)
	dd, dc := data.Depth, cvol.Depth
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		drow := data.Row(start, w)
		wrow := cvol.Row(start, w)
		for i := 0; i < w; i++ {
			for k := 0; k < dd; k++ {
				cv := wrow[i*dc]
				if dc > 1 {
					cv = wrow[i*dc+k]
				}
				if cv <= 0 {
					continue
				}
				if m := magnitude(drow[i*dd+k]); m > max {
					max = m
				}
			}
		}
	})
	return max
}

// DotSum returns Σ a_i*conj(b_i) over box, weighted by the control volume
// when cvol is non-nil.  The conjugate falls on the second argument, so
// DotSum(a, b, ...) and DotSum(b, a, ...) are conjugates of each other,
// not equal.
func DotSum[T pdat.Value](a, b *pdat.Component[T], box hier.Box, cvol *pdat.Component[float64]) T {
	var sum T
	region := box.Intersect(a.Box).Intersect(b.Box)
	if region.Empty() {
		return sum
	}
	w := region.Width(0)
	if cvol == nil {
		pdat.ForEachRowStart(region, func(start hier.IntVector) {
			switch ra := any(a.Row(start, w)).(type) {
			case []float64:
				rb := any(b.Row(start, w)).([]float64)
				sum += any(floats.Dot(ra, rb)).(T)
			case []complex128:
				rb := any(b.Row(start, w)).([]complex128)
				va := cblas128.Vector{N: len(ra), Inc: 1, Data: ra}
				vb := cblas128.Vector{N: len(rb), Inc: 1, Data: rb}
				// BLAS conjugates its first argument: dotc(b,a) = Σ a*conj(b)
				sum += any(cblas128.Dotc(vb, va)).(T)
			}
		})
		return sum
	}
	dd, dc := a.Depth, cvol.Depth
	region = region.Intersect(cvol.Box)
	if region.Empty() {
		return sum
	}
	w = region.Width(0)
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		ra := a.Row(start, w)
		rb := b.Row(start, w)
		wrow := cvol.Row(start, w)
		for i := 0; i < w; i++ {
			for k := 0; k < dd; k++ {
				cv := wrow[i*dc]
				if dc > 1 {
					cv = wrow[i*dc+k]
				}
				sum += scaleVal(ra[i*dd+k]*conjOf(rb[i*dd+k]), cv)
			}
		}
	})
	return sum
}

// IntegralSum returns Σ d_i*vol_i over box: a plain complex multiply with
// no conjugation.
func IntegralSum[T pdat.Value](data *pdat.Component[T], box hier.Box, vol *pdat.Component[float64]) T {
	var sum T
	region := box.Intersect(data.Box).Intersect(vol.Box)
	if region.Empty() {
		return sum
	}
	w := region.Width(0)
	dd, dc := data.Depth, vol.Depth
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		drow := data.Row(start, w)
		vrow := vol.Row(start, w)
		for i := 0; i < w; i++ {
			for k := 0; k < dd; k++ {
				v := vrow[i*dc]
				if dc > 1 {
					v = vrow[i*dc+k]
				}
				sum += scaleVal(drow[i*dd+k], v)
			}
		}
	})
	return sum
}
