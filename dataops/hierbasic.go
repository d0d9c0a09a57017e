package dataops

import (
	"fmt"
	"io"
	"sort"

	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
)

// Entrywise arithmetic over the level range.  These touch only locally
// owned patches and perform no communication; identical inputs on every
// process therefore stay identical.

// SetToScalar assigns alpha to every entry of the field.
func (o *HierarchyOps[T]) SetToScalar(dstID int, alpha T, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		SetToScalar(o.fieldOn(p, dstID), alpha, restr)
		return struct{}{}
	})
}

// CopyData copies src into dst entrywise.
func (o *HierarchyOps[T]) CopyData(dstID, srcID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Copy(o.fieldOn(p, dstID), o.fieldOn(p, srcID), restr)
		return struct{}{}
	})
}

// SwapData exchanges the storage of two fields on every owned patch.  Both
// fields must have identical shape; the swap moves whole allocations, so no
// restriction box applies.
func (o *HierarchyOps[T]) SwapData(aID, bID int) {
	sweep(o, nil, func(p *hier.Patch, _ hier.Box) struct{} {
		o.fieldOn(p, aID).SwapWith(o.fieldOn(p, bID))
		return struct{}{}
	})
}

// Scale sets dst = alpha*src.
func (o *HierarchyOps[T]) Scale(dstID int, alpha T, srcID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Scale(o.fieldOn(p, dstID), alpha, o.fieldOn(p, srcID), restr)
		return struct{}{}
	})
}

// AddScalar sets dst = src + alpha.
func (o *HierarchyOps[T]) AddScalar(dstID, srcID int, alpha T, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		AddScalar(o.fieldOn(p, dstID), o.fieldOn(p, srcID), alpha, restr)
		return struct{}{}
	})
}

// Add sets dst = a + b.
func (o *HierarchyOps[T]) Add(dstID, aID, bID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Add(o.fieldOn(p, dstID), o.fieldOn(p, aID), o.fieldOn(p, bID), restr)
		return struct{}{}
	})
}

// Subtract sets dst = a - b.
func (o *HierarchyOps[T]) Subtract(dstID, aID, bID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Subtract(o.fieldOn(p, dstID), o.fieldOn(p, aID), o.fieldOn(p, bID), restr)
		return struct{}{}
	})
}

// Multiply sets dst = a * b entrywise.
func (o *HierarchyOps[T]) Multiply(dstID, aID, bID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Multiply(o.fieldOn(p, dstID), o.fieldOn(p, aID), o.fieldOn(p, bID), restr)
		return struct{}{}
	})
}

// Divide sets dst = a / b entrywise.
func (o *HierarchyOps[T]) Divide(dstID, aID, bID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Divide(o.fieldOn(p, dstID), o.fieldOn(p, aID), o.fieldOn(p, bID), restr)
		return struct{}{}
	})
}

// Reciprocal sets dst = 1 / src entrywise.
func (o *HierarchyOps[T]) Reciprocal(dstID, srcID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Reciprocal(o.fieldOn(p, dstID), o.fieldOn(p, srcID), restr)
		return struct{}{}
	})
}

// LinearSum sets dst = alpha*x + beta*y.
func (o *HierarchyOps[T]) LinearSum(dstID int, alpha T, xID int, beta T, yID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		LinearSum(o.fieldOn(p, dstID), alpha, o.fieldOn(p, xID), beta, o.fieldOn(p, yID), restr)
		return struct{}{}
	})
}

// Axpy sets dst = alpha*x + y.
func (o *HierarchyOps[T]) Axpy(dstID int, alpha T, xID, yID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Axpy(o.fieldOn(p, dstID), alpha, o.fieldOn(p, xID), o.fieldOn(p, yID), restr)
		return struct{}{}
	})
}

// Axmy sets dst = alpha*x - y.
func (o *HierarchyOps[T]) Axmy(dstID int, alpha T, xID, yID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Axmy(o.fieldOn(p, dstID), alpha, o.fieldOn(p, xID), o.fieldOn(p, yID), restr)
		return struct{}{}
	})
}

// Abs sets dst = |src| entrywise, dst being a real field.
func (o *HierarchyOps[T]) Abs(dstID, srcID int, box *hier.Box) {
	sweep(o, box, func(p *hier.Patch, restr hier.Box) struct{} {
		Abs(o.weightOn(p, dstID), o.fieldOn(p, srcID), restr)
		return struct{}{}
	})
}

// Print writes every owned entry of the field to w in deterministic order:
// levels coarsest to finest, patches in level order, directions, then
// locations lexicographically with axis 0 fastest and depth innermost.
// Each process prints only what it owns.
func (o *HierarchyOps[T]) Print(w io.Writer, dataID int, box *hier.Box) {
	for ln := o.Coarsest; ln <= o.Finest; ln++ {
		level := o.Hierarchy.Level(ln)
		lbox := refined(box, level)
		fmt.Fprintf(w, "level %d\n", ln)
		for _, p := range level.OwnedPatches() {
			restr := restrict(p, lbox)
			d := o.fieldOn(p, dataID)
			fmt.Fprintf(w, "  patch %d box %s\n", p.LocalID, p.Box.String())
			for axis := 0; axis < d.NumDirections(); axis++ {
				c := d.Component(axis)
				if c == nil {
					continue
				}
				region := d.Centering.DirectionalBox(restr, axis).Intersect(c.Box)
				if region.Empty() {
					continue
				}
				fmt.Fprintf(w, "    direction %d over %s\n", axis, region.String())
				printRegion(w, c, region)
			}
		}
	}
}

func printRegion[T pdat.Value](w io.Writer, c *pdat.Component[T], region hier.Box) {
	pdat.ForEachRowStart(region, func(start hier.IntVector) {
		row := c.Row(start, region.Width(0))
		fmt.Fprintf(w, "      %v:", []int(start))
		for _, v := range row {
			fmt.Fprintf(w, " %v", v)
		}
		fmt.Fprintln(w)
	})
}

// FieldIDs reports the data ids present on every owned patch of the level
// range, sorted ascending.
func (o *HierarchyOps[T]) FieldIDs() []int {
	seen := map[int]bool{}
	first := true
	for ln := o.Coarsest; ln <= o.Finest; ln++ {
		for _, p := range o.Hierarchy.Level(ln).OwnedPatches() {
			ids := map[int]bool{}
			for _, id := range p.DataIDs() {
				ids[id] = true
			}
			if first {
				seen, first = ids, false
				continue
			}
			for id := range seen {
				if !ids[id] {
					delete(seen, id)
				}
			}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
