package dataops

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
)

// The middle tier: each operation takes one patch's field data, an optional
// control-volume field, and a cell-centered restriction box.  It derives
// the directional footprint of the box per active direction, invokes the
// array kernel on that sub-array, and folds the per-direction results
// (sums add across directions, the max norm takes the direction maximum).
// The control volume is an explicit optional: nil selects the unweighted
// branch.
//
// All precondition violations abort: nil fields, dimension mismatches,
// incompatible direction vectors or depths, and zero-measure RMS divisors
// are programmer errors, and no partial result escapes once one is
// detected.

// NumberOfEntries counts stored locations times depth inside box.  Shared
// locations on touching patch boundaries each count here; the hierarchy
// tier deduplicates when a logical count is wanted.
func NumberOfEntries[T pdat.Value](data *pdat.Data[T], box hier.Box) int {
	requireField(data, "data")
	requireSameDim(data.Dim(), box.Dim())
	n := 0
	for axis, c := range data.Components {
		if c == nil {
			continue
		}
		n += CountEntries(c, data.Centering.DirectionalBox(box, axis))
	}
	return n
}

// SumControlVolumes sums the weight entries over the directional footprint
// of box, restricted to the directions the data field allocates.
func SumControlVolumes[T pdat.Value](data *pdat.Data[T], cvol *pdat.Data[float64], box hier.Box) float64 {
	requireField(data, "data")
	requireWeight(cvol, "cvol")
	requireWeightCompat(data, cvol)
	sum := 0.0
	for axis, c := range data.Components {
		if c == nil {
			continue
		}
		sum += SumWeights(cvol.Component(axis), data.Centering.DirectionalBox(box, axis))
	}
	return sum
}

// Abs writes |src| entrywise into dst over box.
func Abs[T pdat.Value](dst *pdat.Data[float64], src *pdat.Data[T], box hier.Box) {
	requireWeight(dst, "dst")
	requireField(src, "src")
	requireSameDim(src.Dim(), box.Dim())
	requireSameDim(dst.Dim(), src.Dim())
	if !dst.Directions.Equals(src.Directions) {
		chk.Panic("direction vector mismatch: abs destination %v, source %v",
			[]int(dst.Directions), []int(src.Directions))
	}
	if dst.Depth != src.Depth {
		chk.Panic("depth mismatch: abs destination depth %d, source depth %d", dst.Depth, src.Depth)
	}
	for axis, c := range src.Components {
		if c == nil {
			continue
		}
		AbsInto(dst.Component(axis), c, src.Centering.DirectionalBox(box, axis))
	}
}

// L1Norm returns Σ |d_i| over box, control-volume weighted when cvol is
// non-nil.
func L1Norm[T pdat.Value](data *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	requireField(data, "data")
	requireSameDim(data.Dim(), box.Dim())
	sum := 0.0
	if cvol == nil {
		for axis, c := range data.Components {
			if c == nil {
				continue
			}
			sum += SumAbs(c, data.Centering.DirectionalBox(box, axis), nil)
		}
		return sum
	}
	requireWeightCompat(data, cvol)
	for axis, c := range data.Components {
		if c == nil {
			continue
		}
		sum += SumAbs(c, data.Centering.DirectionalBox(box, axis), cvol.Component(axis))
	}
	return sum
}

// L2NormSquared returns Σ d_i*conj(d_i) over box, control-volume weighted
// when cvol is non-nil.  Combinable across patches; take the square root
// only after the final combine.
func L2NormSquared[T pdat.Value](data *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	requireField(data, "data")
	requireSameDim(data.Dim(), box.Dim())
	if cvol != nil {
		requireWeightCompat(data, cvol)
	}
	sum := 0.0
	for axis, c := range data.Components {
		if c == nil {
			continue
		}
		dbox := data.Centering.DirectionalBox(box, axis)
		if cvol == nil {
			sum += SumSquares(c, dbox, nil)
		} else {
			sum += SumSquares(c, dbox, cvol.Component(axis))
		}
	}
	return sum
}

// L2Norm returns sqrt(L2NormSquared).
func L2Norm[T pdat.Value](data *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	return math.Sqrt(L2NormSquared(data, box, cvol))
}

// WeightedL2NormSquared returns Σ (d_i*w_i)*conj(d_i*w_i) over box, times
// the control volume inside the sum when cvol is non-nil.
func WeightedL2NormSquared[T pdat.Value](data, wgt *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	requireField(data, "data")
	requireField(wgt, "weight")
	requireSameDim(data.Dim(), box.Dim())
	requireSameDim(data.Dim(), wgt.Dim())
	if !data.Directions.CoveredBy(wgt.Directions) {
		chk.Panic("direction vector mismatch: data %v is not covered by weight %v",
			[]int(data.Directions), []int(wgt.Directions))
	}
	if data.Depth != wgt.Depth {
		chk.Panic("depth mismatch: data depth %d, weight depth %d", data.Depth, wgt.Depth)
	}
	if cvol != nil {
		requireWeightCompat(data, cvol)
	}
	sum := 0.0
	for axis, c := range data.Components {
		if c == nil {
			continue
		}
		dbox := data.Centering.DirectionalBox(box, axis)
		if cvol == nil {
			sum += SumWeightedSquares(c, wgt.Component(axis), dbox, nil)
		} else {
			sum += SumWeightedSquares(c, wgt.Component(axis), dbox, cvol.Component(axis))
		}
	}
	return sum
}

// WeightedL2Norm returns sqrt(WeightedL2NormSquared).
func WeightedL2Norm[T pdat.Value](data, wgt *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	return math.Sqrt(WeightedL2NormSquared(data, wgt, box, cvol))
}

// RMSNorm returns the L2 norm divided by sqrt of the total control volume,
// or by sqrt of the entry count when cvol is nil.  A zero divisor aborts.
func RMSNorm[T pdat.Value](data *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	l2 := L2Norm(data, box, cvol)
	return l2 / math.Sqrt(rmsDivisor(data, box, cvol))
}

// WeightedRMSNorm is RMSNorm with the weighted L2 norm in the numerator.
func WeightedRMSNorm[T pdat.Value](data, wgt *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	l2 := WeightedL2Norm(data, wgt, box, cvol)
	return l2 / math.Sqrt(rmsDivisor(data, box, cvol))
}

func rmsDivisor[T pdat.Value](data *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	var den float64
	if cvol == nil {
		den = float64(NumberOfEntries(data, box))
	} else {
		den = SumControlVolumes(data, cvol, box)
	}
	if den == 0 {
		chk.Panic("division by zero: RMS norm requested over zero total weight/entry count")
	}
	return den
}

// MaxNorm returns max |d_i| over box; with a control volume, zero-weight
// entries are excluded entirely.  No qualifying entries yields 0.
func MaxNorm[T pdat.Value](data *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) float64 {
	requireField(data, "data")
	requireSameDim(data.Dim(), box.Dim())
	if cvol != nil {
		requireWeightCompat(data, cvol)
	}
	max := 0.0
	for axis, c := range data.Components {
		if c == nil {
			continue
		}
		dbox := data.Centering.DirectionalBox(box, axis)
		var m float64
		if cvol == nil {
			m = MaxMagnitude(c, dbox, nil)
		} else {
			m = MaxMagnitude(c, dbox, cvol.Component(axis))
		}
		if m > max {
			max = m
		}
	}
	return max
}

// Dot returns Σ d1_i*conj(d2_i) over box, control-volume weighted when
// cvol is non-nil.  The order of the arguments matters: Dot(a, b, ...) and
// Dot(b, a, ...) are conjugates.
func Dot[T pdat.Value](d1, d2 *pdat.Data[T], box hier.Box, cvol *pdat.Data[float64]) T {
	requireField(d1, "data1")
	requireField(d2, "data2")
	requireSameDim(d1.Dim(), box.Dim())
	requirePairCompat(d1, d2)
	if cvol != nil {
		requireWeightCompat(d1, cvol)
	}
	var sum T
	for axis, c := range d1.Components {
		if c == nil {
			continue
		}
		dbox := d1.Centering.DirectionalBox(box, axis)
		if cvol == nil {
			sum += DotSum(c, d2.Component(axis), dbox, nil)
		} else {
			sum += DotSum(c, d2.Component(axis), dbox, cvol.Component(axis))
		}
	}
	return sum
}

// Integral returns Σ d_i*vol_i over box with no conjugation.  The volume
// field is required.
func Integral[T pdat.Value](data *pdat.Data[T], box hier.Box, vol *pdat.Data[float64]) T {
	requireField(data, "data")
	requireWeight(vol, "vol")
	requireSameDim(data.Dim(), box.Dim())
	requireWeightCompat(data, vol)
	var sum T
	for axis, c := range data.Components {
		if c == nil {
			continue
		}
		sum += IntegralSum(c, data.Centering.DirectionalBox(box, axis), vol.Component(axis))
	}
	return sum
}
