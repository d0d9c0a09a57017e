package pdat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jamestiotio/SAMRAI/hier"
)

// Value constrains the element types a field may hold.
type Value interface {
	~float64 | ~complex128
}

// Component is the dense storage of one directional component: values over
// an index box with depth entries per location.  Storage is laid out with
// depth innermost and axis 0 fastest, so a run of locations along axis 0
// (all depths included) is contiguous.
type Component[T Value] struct {
	Box    hier.Box // directional index box addressed by the storage
	Depth  int      // entries per location, >= 1
	Values []T      // len == Box.NumCells() * Depth
}

// NewComponent allocates zeroed storage over the given directional box.
func NewComponent[T Value](box hier.Box, depth int) *Component[T] {
	if depth < 1 {
		chk.Panic("component depth must be >= 1: got %d", depth)
	}
	return &Component[T]{
		Box:    box.Copy(),
		Depth:  depth,
		Values: make([]T, box.NumCells()*depth),
	}
}

// Offset returns the position of (idx, d) in Values.
func (c *Component[T]) Offset(idx hier.IntVector, d int) int {
	linear := 0
	for a := c.Box.Dim() - 1; a >= 0; a-- {
		linear = linear*c.Box.Width(a) + (idx[a] - c.Box.Lo[a])
	}
	return linear*c.Depth + d
}

// At returns the value at (idx, d).
func (c *Component[T]) At(idx hier.IntVector, d int) T {
	if !c.Box.Contains(idx) {
		chk.Panic("index %v outside component box %v", []int(idx), c.Box)
	}
	return c.Values[c.Offset(idx, d)]
}

// SetAt stores a value at (idx, d).
func (c *Component[T]) SetAt(idx hier.IntVector, d int, v T) {
	if !c.Box.Contains(idx) {
		chk.Panic("index %v outside component box %v", []int(idx), c.Box)
	}
	c.Values[c.Offset(idx, d)] = v
}

// Row returns the contiguous slice holding width locations (all depths)
// starting at start along axis 0.
func (c *Component[T]) Row(start hier.IntVector, width int) []T {
	off := c.Offset(start, 0)
	return c.Values[off : off+width*c.Depth]
}

// ForEachRow visits every axis-0 run of the region, which must lie inside
// the component box, passing the contiguous value slice for that run.
func (c *Component[T]) ForEachRow(region hier.Box, fn func(row []T)) {
	ForEachRowStart(region, func(start hier.IntVector) {
		fn(c.Row(start, region.Width(0)))
	})
}

// Fill sets every entry of the region to v.  The region must lie inside the
// component box.
func (c *Component[T]) Fill(region hier.Box, v T) {
	c.ForEachRow(region, func(row []T) {
		for i := range row {
			row[i] = v
		}
	})
}

// ForEachRowStart visits the starting index of every axis-0 run in the
// region, in lexicographic order of the remaining axes.  Empty regions are
// visited zero times.
func ForEachRowStart(region hier.Box, fn func(start hier.IntVector)) {
	if region.Empty() {
		return
	}
	dim := region.Dim()
	idx := region.Lo.Copy()
	for {
		fn(idx)
		// advance the odometer over axes 1..dim-1
		a := 1
		for ; a < dim; a++ {
			idx[a]++
			if idx[a] <= region.Hi[a] {
				break
			}
			idx[a] = region.Lo[a]
		}
		if a >= dim {
			return
		}
	}
}

// Data is a directional field on one patch: one dense component per active
// axis direction, all sharing a centering, depth, and the cell-centered box
// they were derived from.  Inactive directions (direction vector 0) hold no
// storage.
type Data[T Value] struct {
	Centering  Centering
	CellBox    hier.Box       // cell-centered allocation box
	Depth      int            // entries per location
	Directions hier.IntVector // one flag per direction slot
	Components []*Component[T]
}

// NewData allocates a field with every direction active.
func NewData[T Value](c Centering, box hier.Box, depth int) *Data[T] {
	return NewDataWithDirections[T](c, box, depth, hier.Ones(c.NumDirections(box.Dim())))
}

// NewDataWithDirections allocates a field with the given direction vector;
// directions flagged 0 stay unallocated.
func NewDataWithDirections[T Value](c Centering, box hier.Box, depth int, dirs hier.IntVector) *Data[T] {
	ndir := c.NumDirections(box.Dim())
	if dirs.Dim() != ndir {
		chk.Panic("direction vector mismatch: %s centering in %dD needs %d directions, got %d", c, box.Dim(), ndir, dirs.Dim())
	}
	if depth < 1 {
		chk.Panic("field depth must be >= 1: got %d", depth)
	}
	d := &Data[T]{
		Centering:  c,
		CellBox:    box.Copy(),
		Depth:      depth,
		Directions: dirs.Copy(),
		Components: make([]*Component[T], ndir),
	}
	for axis := 0; axis < ndir; axis++ {
		if dirs[axis] != 0 {
			d.Components[axis] = NewComponent[T](c.DirectionalBox(box, axis), depth)
		}
	}
	return d
}

// GetBox returns the cell-centered allocation box.
func (d *Data[T]) GetBox() hier.Box {
	return d.CellBox
}

// Dim returns the spatial dimension.
func (d *Data[T]) Dim() int {
	return d.CellBox.Dim()
}

// NumDirections returns the number of direction slots (active or not).
func (d *Data[T]) NumDirections() int {
	return len(d.Components)
}

// Component returns the storage for one direction, or nil when inactive.
func (d *Data[T]) Component(axis int) *Component[T] {
	return d.Components[axis]
}

// At reads entry d of the directional location idx on the given axis.
func (d *Data[T]) At(axis int, idx hier.IntVector, depth int) T {
	return d.mustComponent(axis).At(idx, depth)
}

// SetAt writes entry d of the directional location idx on the given axis.
func (d *Data[T]) SetAt(axis int, idx hier.IntVector, depth int, v T) {
	d.mustComponent(axis).SetAt(idx, depth, v)
}

func (d *Data[T]) mustComponent(axis int) *Component[T] {
	c := d.Components[axis]
	if c == nil {
		chk.Panic("direction %d of %s field is not allocated", axis, d.Centering)
	}
	return c
}

// Fill sets every stored entry to v.
func (d *Data[T]) Fill(v T) {
	for _, c := range d.Components {
		if c == nil {
			continue
		}
		for i := range c.Values {
			c.Values[i] = v
		}
	}
}

// FillOnBox sets entries to v over the directional footprint of a
// cell-centered box, clipped to the allocated storage.
func (d *Data[T]) FillOnBox(v T, cellBox hier.Box) {
	for axis, c := range d.Components {
		if c == nil {
			continue
		}
		region := d.Centering.DirectionalBox(cellBox, axis).Intersect(c.Box)
		if region.Empty() {
			continue
		}
		c.Fill(region, v)
	}
}

// SameShapeAs reports whether o has identical centering, boxes, depth, and
// direction vector.
func (d *Data[T]) SameShapeAs(o *Data[T]) bool {
	return d.Centering == o.Centering &&
		d.CellBox.Equal(o.CellBox) &&
		d.Depth == o.Depth &&
		d.Directions.Equals(o.Directions)
}

// CopyFrom copies all stored values of src, which must have the same shape.
func (d *Data[T]) CopyFrom(src *Data[T]) {
	if !d.SameShapeAs(src) {
		chk.Panic("cannot copy between %s fields of different shape", d.Centering)
	}
	for axis, c := range d.Components {
		if c == nil {
			continue
		}
		copy(c.Values, src.Components[axis].Values)
	}
}

// SwapWith exchanges the stored values of two same-shaped fields.
func (d *Data[T]) SwapWith(o *Data[T]) {
	if !d.SameShapeAs(o) {
		chk.Panic("cannot swap %s fields of different shape", d.Centering)
	}
	for axis, c := range d.Components {
		if c == nil {
			continue
		}
		c.Values, o.Components[axis].Values = o.Components[axis].Values, c.Values
	}
}
