package dataops

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"

	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
	"github.com/jamestiotio/SAMRAI/reduce"
)

// NoControlVolume marks a reduction as unweighted when passed as the
// control-volume field id.
const NoControlVolume = -1

// HierarchyOps is the top tier: each public call sweeps the configured
// level range over the patches the local process owns, folds the per-patch
// partials in patch order, and finishes with exactly one collective
// reduction so every process returns the same scalar.  Calls are one-shot
// and keep no state between invocations; a process owning zero patches
// contributes the reduction identity but still enters the collective.
//
// An optional restriction box is interpreted in the coarsest level's index
// space and refined by each level's ratio before intersecting patches; nil
// means the whole hierarchy footprint.
type HierarchyOps[T pdat.Value] struct {
	Hierarchy *hier.PatchHierarchy
	Coarsest  int // first level of the sweep
	Finest    int // last level of the sweep, inclusive
	Group     reduce.Reducer
	Workers   int // max concurrent patches per sweep; <= 1 sweeps serially
}

// NewHierarchyOps covers the whole hierarchy on the given process group.
func NewHierarchyOps[T pdat.Value](h *hier.PatchHierarchy, group reduce.Reducer) *HierarchyOps[T] {
	return &HierarchyOps[T]{
		Hierarchy: h,
		Coarsest:  0,
		Finest:    h.NumLevels() - 1,
		Group:     group,
	}
}

// ResetLevels narrows the sweep to [coarsest, finest].
func (o *HierarchyOps[T]) ResetLevels(coarsest, finest int) {
	if coarsest < 0 || finest >= o.Hierarchy.NumLevels() || coarsest > finest {
		chk.Panic("invalid level range [%d,%d] for a %d-level hierarchy", coarsest, finest, o.Hierarchy.NumLevels())
	}
	o.Coarsest, o.Finest = coarsest, finest
}

func (o *HierarchyOps[T]) fieldOn(p *hier.Patch, id int) *pdat.Data[T] {
	d, _ := p.PatchData(id).(*pdat.Data[T])
	if d == nil {
		chk.Panic("required field %d is nil on patch %d", id, p.LocalID)
	}
	return d
}

func (o *HierarchyOps[T]) weightOn(p *hier.Patch, id int) *pdat.Data[float64] {
	d, _ := p.PatchData(id).(*pdat.Data[float64])
	if d == nil {
		chk.Panic("required control-volume field %d is nil on patch %d", id, p.LocalID)
	}
	return d
}

func (o *HierarchyOps[T]) cvolOn(p *hier.Patch, id int) *pdat.Data[float64] {
	if id == NoControlVolume {
		return nil
	}
	return o.weightOn(p, id)
}

// restrict clips the patch box by the (already level-refined) restriction.
func restrict(p *hier.Patch, box *hier.Box) hier.Box {
	if box == nil {
		return p.Box
	}
	return p.Box.Intersect(*box)
}

// refined returns the restriction box in the level's index space.
func refined(box *hier.Box, level *hier.PatchLevel) *hier.Box {
	if box == nil {
		return nil
	}
	r := box.Refine(level.Ratio)
	return &r
}

// sweep applies fn to every owned patch in the level range and returns the
// per-patch results in deterministic (level, patch) order.  With more than
// one worker the patches run concurrently on an errgroup, but each result
// lands in its own slot so the caller's sequential fold is reproducible.
func sweep[T pdat.Value, R any](o *HierarchyOps[T], box *hier.Box, fn func(p *hier.Patch, restr hier.Box) R) []R {
	type job struct {
		p     *hier.Patch
		restr hier.Box
	}
	var jobs []job
	for ln := o.Coarsest; ln <= o.Finest; ln++ {
		level := o.Hierarchy.Level(ln)
		lbox := refined(box, level)
		for _, p := range level.OwnedPatches() {
			jobs = append(jobs, job{p: p, restr: restrict(p, lbox)})
		}
	}
	out := make([]R, len(jobs))
	if o.Workers <= 1 {
		for i, j := range jobs {
			out[i] = fn(j.p, j.restr)
		}
		return out
	}
	g := new(errgroup.Group)
	g.SetLimit(o.Workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			out[i] = fn(j.p, j.restr)
			return nil
		})
	}
	_ = g.Wait() // workers return no errors; contract violations abort
	return out
}

// NumberOfEntries returns the global logical degree-of-freedom count of the
// field: per level and direction, a directional location shared by several
// patches is counted once, for the lowest-indexed patch holding it.
func (o *HierarchyOps[T]) NumberOfEntries(dataID int, box *hier.Box) int {
	return o.Group.SumInt(o.localEntries(dataID, box))
}

// localEntries is the local share of the deduplicated count: an owned
// patch's directional box minus the directional boxes of all lower-indexed
// patches on the level.
func (o *HierarchyOps[T]) localEntries(dataID int, box *hier.Box) int {
	local := 0
	for ln := o.Coarsest; ln <= o.Finest; ln++ {
		level := o.Hierarchy.Level(ln)
		owned := level.OwnedPatches()
		if len(owned) == 0 {
			continue
		}
		shape := o.fieldOn(owned[0], dataID)
		lbox := refined(box, level)
		for axis := 0; axis < shape.NumDirections(); axis++ {
			if shape.Directions[axis] == 0 {
				continue
			}
			// directional boxes of every patch on the level, in order
			dboxes := make([]hier.Box, len(level.Patches))
			for i, p := range level.Patches {
				dboxes[i] = shape.Centering.DirectionalBox(p.Box, axis)
			}
			for i, p := range level.Patches {
				if p.Owner != level.Rank {
					continue
				}
				mine := dboxes[i]
				if lbox != nil {
					mine = mine.Intersect(shape.Centering.DirectionalBox(*lbox, axis))
				}
				rem := hier.BoxList{mine}
				for j := 0; j < i; j++ {
					rem = rem.RemoveIntersections(dboxes[j])
				}
				local += rem.NumCells() * shape.Depth
			}
		}
	}
	return local
}

// SumControlVolumes returns the global sum of the control-volume entries
// over the directions the data field allocates.
func (o *HierarchyOps[T]) SumControlVolumes(dataID, cvolID int, box *hier.Box) float64 {
	parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) float64 {
		return SumControlVolumes(o.fieldOn(p, dataID), o.weightOn(p, cvolID), restr)
	})
	local := 0.0
	for _, v := range parts {
		local += v
	}
	return o.Group.SumFloat64(local)
}

// L1Norm returns the global Σ |d_i|, control-volume weighted unless cvolID
// is NoControlVolume.
func (o *HierarchyOps[T]) L1Norm(dataID, cvolID int, box *hier.Box) float64 {
	parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) float64 {
		return L1Norm(o.fieldOn(p, dataID), restr, o.cvolOn(p, cvolID))
	})
	local := 0.0
	for _, v := range parts {
		local += v
	}
	return o.Group.SumFloat64(local)
}

// L2Norm returns the global sqrt(Σ d_i*conj(d_i)[*cvol_i]).
func (o *HierarchyOps[T]) L2Norm(dataID, cvolID int, box *hier.Box) float64 {
	parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) float64 {
		return L2NormSquared(o.fieldOn(p, dataID), restr, o.cvolOn(p, cvolID))
	})
	local := 0.0
	for _, v := range parts {
		local += v
	}
	return math.Sqrt(o.Group.SumFloat64(local))
}

// WeightedL2Norm returns the global sqrt(Σ (d_i*w_i)*conj(d_i*w_i)[*cvol_i]).
func (o *HierarchyOps[T]) WeightedL2Norm(dataID, wgtID, cvolID int, box *hier.Box) float64 {
	parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) float64 {
		return WeightedL2NormSquared(o.fieldOn(p, dataID), o.fieldOn(p, wgtID), restr, o.cvolOn(p, cvolID))
	})
	local := 0.0
	for _, v := range parts {
		local += v
	}
	return math.Sqrt(o.Group.SumFloat64(local))
}

// RMSNorm returns the global L2 norm divided by sqrt of the total control
// volume (or of the logical entry count when unweighted).  Numerator and
// divisor travel through a single collective as the real and imaginary
// parts of one complex sum; a zero global divisor aborts identically on
// every process.
func (o *HierarchyOps[T]) RMSNorm(dataID, cvolID int, box *hier.Box) float64 {
	return o.rmsCombine(dataID, cvolID, box, func(p *hier.Patch, restr hier.Box) float64 {
		return L2NormSquared(o.fieldOn(p, dataID), restr, o.cvolOn(p, cvolID))
	})
}

// WeightedRMSNorm is RMSNorm with the weighted L2 norm in the numerator.
func (o *HierarchyOps[T]) WeightedRMSNorm(dataID, wgtID, cvolID int, box *hier.Box) float64 {
	return o.rmsCombine(dataID, cvolID, box, func(p *hier.Patch, restr hier.Box) float64 {
		return WeightedL2NormSquared(o.fieldOn(p, dataID), o.fieldOn(p, wgtID), restr, o.cvolOn(p, cvolID))
	})
}

func (o *HierarchyOps[T]) rmsCombine(dataID, cvolID int, box *hier.Box, sq func(p *hier.Patch, restr hier.Box) float64) float64 {
	var localSq, localDen float64
	if cvolID == NoControlVolume {
		// the logical count, so shared boundary locations divide once
		localDen = float64(o.localEntries(dataID, box))
		for _, v := range sweep(o, box, sq) {
			localSq += v
		}
	} else {
		parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) [2]float64 {
			den := SumControlVolumes(o.fieldOn(p, dataID), o.weightOn(p, cvolID), restr)
			return [2]float64{sq(p, restr), den}
		})
		for _, v := range parts {
			localSq += v[0]
			localDen += v[1]
		}
	}
	combined := o.Group.SumComplex128(complex(localSq, localDen))
	den := imag(combined)
	if den == 0 {
		chk.Panic("division by zero: RMS norm requested over zero total weight/entry count")
	}
	return math.Sqrt(real(combined)) / math.Sqrt(den)
}

// MaxNorm returns the global max |d_i|.  With a control volume, zero-weight
// entries never contribute.  The sweep visits levels coarsest to finest,
// patches in level order, directions 0..D-1, and locations lexicographically
// with depth innermost; a strict comparison keeps the first maximum seen, so
// ties resolve to the lowest such tuple on a fixed partitioning.
func (o *HierarchyOps[T]) MaxNorm(dataID, cvolID int, box *hier.Box) float64 {
	parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) float64 {
		return MaxNorm(o.fieldOn(p, dataID), restr, o.cvolOn(p, cvolID))
	})
	local := 0.0
	for _, v := range parts {
		if v > local {
			local = v
		}
	}
	return o.Group.MaxFloat64(local)
}

// Dot returns the global Σ d1_i*conj(d2_i)[*cvol_i].  Argument order
// matters: Dot(a, b) == conj(Dot(b, a)).
func (o *HierarchyOps[T]) Dot(data1ID, data2ID, cvolID int, box *hier.Box) T {
	parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) T {
		return Dot(o.fieldOn(p, data1ID), o.fieldOn(p, data2ID), restr, o.cvolOn(p, cvolID))
	})
	var local T
	for _, v := range parts {
		local += v
	}
	return sumReduce(o.Group, local)
}

// Integral returns the global Σ d_i*vol_i with no conjugation.
func (o *HierarchyOps[T]) Integral(dataID, volID int, box *hier.Box) T {
	parts := sweep(o, box, func(p *hier.Patch, restr hier.Box) T {
		return Integral(o.fieldOn(p, dataID), restr, o.weightOn(p, volID))
	})
	var local T
	for _, v := range parts {
		local += v
	}
	return sumReduce(o.Group, local)
}

// sumReduce routes a scalar of either element type through the matching
// collective sum.
func sumReduce[T pdat.Value](g reduce.Reducer, local T) T {
	switch x := any(local).(type) {
	case float64:
		return any(g.SumFloat64(x)).(T)
	case complex128:
		return any(g.SumComplex128(x)).(T)
	}
	return local
}
