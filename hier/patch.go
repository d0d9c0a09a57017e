package hier

// PatchData is any field storage attached to a patch.  Concrete types live
// in the pdat package; this layer only tracks ownership and extent.
type PatchData interface {
	// GetBox returns the cell-centered box the data was allocated over.
	GetBox() Box
}

// Patch owns one box of index space and the field data allocated on it.
// Patches are built and torn down by the hierarchy builder; the operator
// layers only read them.
type Patch struct {
	Box     Box // cell-centered index extent
	LocalID int // position within the owning level
	Owner   int // rank of the owning process

	data map[int]PatchData // field id -> allocated storage
}

// NewPatch creates a patch with no data allocated.
func NewPatch(box Box, localID, owner int) *Patch {
	return &Patch{
		Box:     box.Copy(),
		LocalID: localID,
		Owner:   owner,
		data:    make(map[int]PatchData),
	}
}

// SetPatchData attaches field storage under the given id, replacing any
// previous entry.
func (p *Patch) SetPatchData(id int, d PatchData) {
	p.data[id] = d
}

// PatchData returns the storage registered under id, or nil.
func (p *Patch) PatchData(id int) PatchData {
	return p.data[id]
}

// RemovePatchData deallocates the storage registered under id.
func (p *Patch) RemovePatchData(id int) {
	delete(p.data, id)
}

// DataIDs returns the field ids with storage attached, in map order.
func (p *Patch) DataIDs() []int {
	ids := make([]int, 0, len(p.data))
	for id := range p.data {
		ids = append(ids, id)
	}
	return ids
}
