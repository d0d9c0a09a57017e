// Package pdat provides patch data storage for fields attached to the
// sub-entities of structured-grid cells: cell centers, nodes, sides (faces
// perpendicular to an axis), and edges (parallel to an axis).  One dense
// component is stored per active direction, with the component's index box
// derived from the cell-centered box by the centering's shift rule.
package pdat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jamestiotio/SAMRAI/hier"
)

// Centering identifies which sub-entity of a grid cell a field's values
// live on.  It is the strategy that fixes both the number of directional
// components and the index-box shape of each one.
type Centering uint8

const (
	CellCentered Centering = iota // one component, box unchanged
	NodeCentered                  // one component, upper corner +1 on all axes
	SideCentered                  // D components, axis d grows +1 on axis d
	EdgeCentered                  // D components, axis d grows +1 on all axes but d
	FaceCentered                  // D components, same shape as side (unpermuted layout)
)

// String returns the centering name.
func (c Centering) String() string {
	switch c {
	case CellCentered:
		return "cell"
	case NodeCentered:
		return "node"
	case SideCentered:
		return "side"
	case EdgeCentered:
		return "edge"
	case FaceCentered:
		return "face"
	}
	return "unknown"
}

// NumDirections returns how many directional components a field of this
// centering allocates in the given dimension.
func (c Centering) NumDirections(dim int) int {
	switch c {
	case CellCentered, NodeCentered:
		return 1
	default:
		return dim
	}
}

// DirectionalBox derives the index box of one directional component from a
// cell-centered box.  For the single-component centerings axis must be 0.
func (c Centering) DirectionalBox(box hier.Box, axis int) hier.Box {
	dim := box.Dim()
	if axis < 0 || axis >= c.NumDirections(dim) {
		chk.Panic("axis %d out of range for %s centering in %dD", axis, c, dim)
	}
	switch c {
	case CellCentered:
		return box.Copy()
	case NodeCentered:
		out := box.Copy()
		for d := 0; d < dim; d++ {
			out.Hi[d]++
		}
		return out
	case SideCentered, FaceCentered:
		return box.GrowUpper(axis, 1)
	case EdgeCentered:
		out := box.Copy()
		for d := 0; d < dim; d++ {
			if d != axis {
				out.Hi[d]++
			}
		}
		return out
	}
	chk.Panic("unknown centering %d", int(c))
	return hier.Box{}
}
