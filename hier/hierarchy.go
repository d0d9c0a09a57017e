package hier

import (
	"github.com/cpmech/gosl/chk"
)

// PatchLevel is an ordered, partitioned set of patches at one refinement
// ratio relative to the coarsest level.  Each process owns a disjoint subset
// of the patches; patches on a level never overlap each other.
type PatchLevel struct {
	Patches []*Patch  // all patches on the level, every rank sees the same order
	Ratio   IntVector // refinement ratio to the coarsest level
	Rank    int       // rank of the local process
}

// NewPatchLevel builds a level from the global box list and owner map.  The
// boxes must be pairwise disjoint; owners[i] is the rank owning boxes[i].
func NewPatchLevel(boxes []Box, ratio IntVector, owners []int, rank int) *PatchLevel {
	if len(owners) != len(boxes) {
		chk.Panic("patch level needs one owner per box: %d boxes, %d owners", len(boxes), len(owners))
	}
	l := &PatchLevel{Ratio: ratio.Copy(), Rank: rank}
	for i, b := range boxes {
		l.Patches = append(l.Patches, NewPatch(b, i, owners[i]))
	}
	return l
}

// OwnedPatches returns the local process's patches in level order.
func (l *PatchLevel) OwnedPatches() []*Patch {
	var out []*Patch
	for _, p := range l.Patches {
		if p.Owner == l.Rank {
			out = append(out, p)
		}
	}
	return out
}

// Boxes returns the level's global box list in patch order.
func (l *PatchLevel) Boxes() BoxList {
	out := make(BoxList, 0, len(l.Patches))
	for _, p := range l.Patches {
		out = append(out, p.Box)
	}
	return out
}

// Footprint returns the bounding box of every patch on the level.
func (l *PatchLevel) Footprint() Box {
	if len(l.Patches) == 0 {
		return Box{}
	}
	out := l.Patches[0].Box.Copy()
	for _, p := range l.Patches[1:] {
		out = out.Bounding(p.Box)
	}
	return out
}

// PatchHierarchy is an ordered stack of levels from coarsest (index 0) to
// finest.  Finer levels' boxes, coarsened by the ratio between levels, are
// contained in their parent level's boxes; that containment is the
// builder's responsibility and is what makes control-volume masking
// well-defined.
type PatchHierarchy struct {
	levels []*PatchLevel
	dim    int
}

// NewPatchHierarchy creates an empty hierarchy of the given spatial
// dimension.
func NewPatchHierarchy(dim int) *PatchHierarchy {
	if dim < 1 {
		chk.Panic("patch hierarchy dimension must be positive: got %d", dim)
	}
	return &PatchHierarchy{dim: dim}
}

// AddLevel appends the next finer level.
func (h *PatchHierarchy) AddLevel(l *PatchLevel) {
	if l.Ratio.Dim() != h.dim {
		chk.Panic("dimension mismatch: level ratio is %d-dimensional, hierarchy is %d-dimensional", l.Ratio.Dim(), h.dim)
	}
	h.levels = append(h.levels, l)
}

// NumLevels returns the number of levels.
func (h *PatchHierarchy) NumLevels() int {
	return len(h.levels)
}

// Level returns the level at the given index.
func (h *PatchHierarchy) Level(i int) *PatchLevel {
	return h.levels[i]
}

// Dim returns the spatial dimension.
func (h *PatchHierarchy) Dim() int {
	return h.dim
}
