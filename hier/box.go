package hier

import (
	"github.com/cpmech/gosl/io"
)

// Box is an axis-aligned integer rectangle in structured index space: a
// lower and upper corner per axis (both inclusive) plus the topology block
// it lives on.  Boxes are value types; copying one never aliases another's
// corners.
type Box struct {
	Lo    IntVector // lower corner, inclusive
	Hi    IntVector // upper corner, inclusive
	Block int       // topology block identifier
}

// NewBox builds a box on block 0 from corner slices.
func NewBox(lo, hi []int) Box {
	return Box{Lo: IntVector(lo).Copy(), Hi: IntVector(hi).Copy()}
}

// NewBoxOnBlock builds a box on the given topology block.
func NewBoxOnBlock(lo, hi []int, block int) Box {
	b := NewBox(lo, hi)
	b.Block = block
	return b
}

// Dim returns the spatial dimension of the box.
func (b Box) Dim() int {
	return len(b.Lo)
}

// Copy returns a deep copy.
func (b Box) Copy() Box {
	return Box{Lo: b.Lo.Copy(), Hi: b.Hi.Copy(), Block: b.Block}
}

// Empty reports whether the box contains no cells.
func (b Box) Empty() bool {
	if len(b.Lo) == 0 {
		return true
	}
	for d := range b.Lo {
		if b.Hi[d] < b.Lo[d] {
			return true
		}
	}
	return false
}

// NumCells returns the number of index locations in the box.
func (b Box) NumCells() int {
	if b.Empty() {
		return 0
	}
	n := 1
	for d := range b.Lo {
		n *= b.Hi[d] - b.Lo[d] + 1
	}
	return n
}

// Width returns the extent along one axis.
func (b Box) Width(axis int) int {
	w := b.Hi[axis] - b.Lo[axis] + 1
	if w < 0 {
		return 0
	}
	return w
}

// Contains reports whether the index lies inside the box.
func (b Box) Contains(idx IntVector) bool {
	if len(idx) != len(b.Lo) {
		return false
	}
	for d := range idx {
		if idx[d] < b.Lo[d] || idx[d] > b.Hi[d] {
			return false
		}
	}
	return true
}

// ContainsBox reports whether o lies entirely inside b.  An empty o is
// contained in anything on the same block.
func (b Box) ContainsBox(o Box) bool {
	if b.Block != o.Block {
		return false
	}
	if o.Empty() {
		return true
	}
	return b.Contains(o.Lo) && b.Contains(o.Hi)
}

// Equal reports exact equality of corners and block.
func (b Box) Equal(o Box) bool {
	return b.Block == o.Block && b.Lo.Equals(o.Lo) && b.Hi.Equals(o.Hi)
}

// Intersect returns the overlap of two boxes.  Boxes on different blocks
// never overlap.
func (b Box) Intersect(o Box) Box {
	out := b.Copy()
	if b.Block != o.Block || len(b.Lo) != len(o.Lo) {
		// mark empty by inverting the first axis
		if len(out.Lo) > 0 {
			out.Hi[0] = out.Lo[0] - 1
		}
		return out
	}
	for d := range b.Lo {
		if o.Lo[d] > out.Lo[d] {
			out.Lo[d] = o.Lo[d]
		}
		if o.Hi[d] < out.Hi[d] {
			out.Hi[d] = o.Hi[d]
		}
	}
	return out
}

// Bounding returns the smallest box containing both b and o.
func (b Box) Bounding(o Box) Box {
	out := b.Copy()
	for d := range b.Lo {
		if o.Lo[d] < out.Lo[d] {
			out.Lo[d] = o.Lo[d]
		}
		if o.Hi[d] > out.Hi[d] {
			out.Hi[d] = o.Hi[d]
		}
	}
	return out
}

// Refine scales the box into a finer index space by the given ratio.
func (b Box) Refine(ratio IntVector) Box {
	out := b.Copy()
	for d := range b.Lo {
		out.Lo[d] = b.Lo[d] * ratio[d]
		out.Hi[d] = (b.Hi[d]+1)*ratio[d] - 1
	}
	return out
}

// Coarsen maps the box into a coarser index space by the given ratio, with
// corner division rounding toward negative infinity.
func (b Box) Coarsen(ratio IntVector) Box {
	out := b.Copy()
	for d := range b.Lo {
		out.Lo[d] = coarsenIndex(b.Lo[d], ratio[d])
		out.Hi[d] = coarsenIndex(b.Hi[d], ratio[d])
	}
	return out
}

func coarsenIndex(i, r int) int {
	if i >= 0 {
		return i / r
	}
	return -((-i + r - 1) / r)
}

// GrowUpper returns the box with its upper corner extended by n along one
// axis.
func (b Box) GrowUpper(axis, n int) Box {
	out := b.Copy()
	out.Hi[axis] += n
	return out
}

// Subtract returns b minus o as a list of disjoint boxes.  The result is b
// itself when there is no overlap, and empty when o covers b.
func (b Box) Subtract(o Box) []Box {
	is := b.Intersect(o)
	if is.Empty() {
		if b.Empty() {
			return nil
		}
		return []Box{b.Copy()}
	}
	var out []Box
	rem := b.Copy()
	for d := range b.Lo {
		if rem.Lo[d] < is.Lo[d] {
			lower := rem.Copy()
			lower.Hi[d] = is.Lo[d] - 1
			out = append(out, lower)
			rem.Lo[d] = is.Lo[d]
		}
		if rem.Hi[d] > is.Hi[d] {
			upper := rem.Copy()
			upper.Lo[d] = is.Hi[d] + 1
			out = append(out, upper)
			rem.Hi[d] = is.Hi[d]
		}
	}
	// rem now equals the intersection and is discarded
	return out
}

// String formats the box for diagnostics.
func (b Box) String() string {
	return io.Sf("[%v..%v|b%d]", []int(b.Lo), []int(b.Hi), b.Block)
}

// BoxList is an ordered collection of boxes.
type BoxList []Box

// NumCells sums the cell counts of all member boxes.
func (l BoxList) NumCells() int {
	n := 0
	for _, b := range l {
		n += b.NumCells()
	}
	return n
}

// RemoveIntersections subtracts take from every member, returning a list
// whose members are disjoint from take.
func (l BoxList) RemoveIntersections(take Box) BoxList {
	var out BoxList
	for _, b := range l {
		out = append(out, b.Subtract(take)...)
	}
	return out
}
