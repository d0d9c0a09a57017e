package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamestiotio/SAMRAI/dataops"
	"github.com/jamestiotio/SAMRAI/pdat"
	"github.com/jamestiotio/SAMRAI/reduce"
)

const sampleLayout = `
dim: 2
centering: side
levels:
  - ratio: [1, 1]
    boxes:
      - {lo: [0, 0], hi: [7, 3]}
  - ratio: [2, 2]
    boxes:
      - {lo: [8, 4], hi: [15, 7]}
fields:
  - {name: u, fill: 2.0}
  - {name: w, depth: 2, fill: -1.5}
`

func writeLayout(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadLayout(t *testing.T) {
	l, err := LoadLayout(writeLayout(t, sampleLayout))
	require.NoError(t, err)
	assert.Equal(t, 2, l.Dim)
	assert.Len(t, l.Levels, 2)
	assert.Len(t, l.Fields, 2)

	c, err := l.centering()
	require.NoError(t, err)
	assert.Equal(t, pdat.SideCentered, c)
}

func TestLoadLayoutRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"bad dim":       "dim: 4\nlevels:\n  - ratio: [1]\n    boxes: [{lo: [0], hi: [3]}]\nfields: [{name: u}]\n",
		"bad centering": "dim: 1\ncentering: corner\nlevels:\n  - ratio: [1]\n    boxes: [{lo: [0], hi: [3]}]\nfields: [{name: u}]\n",
		"no levels":     "dim: 1\nfields: [{name: u}]\n",
		"no fields":     "dim: 1\nlevels:\n  - ratio: [1]\n    boxes: [{lo: [0], hi: [3]}]\n",
		"ratio dim":     "dim: 2\nlevels:\n  - ratio: [1]\n    boxes: [{lo: [0, 0], hi: [3, 3]}]\nfields: [{name: u}]\n",
		"box dim":       "dim: 2\nlevels:\n  - ratio: [1, 1]\n    boxes: [{lo: [0], hi: [3, 3]}]\nfields: [{name: u}]\n",
		"unnamed field": "dim: 1\nlevels:\n  - ratio: [1]\n    boxes: [{lo: [0], hi: [3]}]\nfields: [{depth: 1}]\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadLayout(writeLayout(t, text))
			assert.Error(t, err)
		})
	}

	_, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLayoutBuild(t *testing.T) {
	l, err := LoadLayout(writeLayout(t, sampleLayout))
	require.NoError(t, err)

	h, ids, cvolID, err := l.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ids)
	assert.Equal(t, 2, cvolID)
	require.Equal(t, 2, h.NumLevels())

	// fields carry their declared fill and depth
	p := h.Level(0).Patches[0]
	u := p.PatchData(0).(*pdat.Data[float64])
	assert.Equal(t, 1, u.Depth)
	assert.Equal(t, 2.0, u.At(0, u.CellBox.Lo, 0))
	w := p.PatchData(1).(*pdat.Data[float64])
	assert.Equal(t, 2, w.Depth)
	assert.Equal(t, -1.5, w.At(1, w.CellBox.Lo, 1))

	// the fine patch does not overlap the coarse one, so no masking
	// applies and the weighted volume is the full footprint of each level
	ops := dataops.NewHierarchyOps[float64](h, reduce.SingleProcess{})
	total := ops.SumControlVolumes(0, cvolID, nil)
	assert.Greater(t, total, 0.0)

	ops.ResetLevels(1, 1)
	fine := ops.SumControlVolumes(0, cvolID, nil)
	assert.Greater(t, fine, 0.0)
	assert.Less(t, fine, total)
}
