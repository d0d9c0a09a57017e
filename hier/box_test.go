package hier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBoxBasics(t *testing.T) {
	b := NewBox([]int{0, 0}, []int{8, 3})
	assert.Equal(t, 2, b.Dim())
	assert.Equal(t, 36, b.NumCells())
	assert.Equal(t, 9, b.Width(0))
	assert.Equal(t, 4, b.Width(1))
	assert.False(t, b.Empty())

	assert.True(t, b.Contains(IntVector{0, 0}))
	assert.True(t, b.Contains(IntVector{8, 3}))
	assert.False(t, b.Contains(IntVector{9, 0}))
	assert.False(t, b.Contains(IntVector{0, -1}))

	empty := NewBox([]int{3, 3}, []int{2, 5})
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.NumCells())
}

func TestBoxIntersect(t *testing.T) {
	a := NewBox([]int{0, 0}, []int{8, 3})
	b := NewBox([]int{4, 2}, []int{13, 5})

	got := a.Intersect(b)
	want := NewBox([]int{4, 2}, []int{8, 3})
	assert.True(t, got.Equal(want), "got %s", got)
	// commutes
	assert.True(t, b.Intersect(a).Equal(want))

	disjoint := NewBox([]int{20, 20}, []int{25, 25})
	assert.True(t, a.Intersect(disjoint).Empty())

	// different blocks never intersect
	other := NewBoxOnBlock([]int{0, 0}, []int{8, 3}, 1)
	assert.True(t, a.Intersect(other).Empty())
}

func TestBoxRefineCoarsen(t *testing.T) {
	b := NewBox([]int{2, -1}, []int{5, 3})
	r := IntVector{2, 2}

	ref := b.Refine(r)
	assert.True(t, ref.Equal(NewBox([]int{4, -2}, []int{11, 7})), "got %s", ref)

	// coarsen floors toward minus infinity
	assert.True(t, ref.Coarsen(r).Equal(b))
	c := NewBox([]int{-3, 1}, []int{-1, 5}).Coarsen(r)
	assert.True(t, c.Equal(NewBox([]int{-2, 0}, []int{-1, 2})), "got %s", c)
}

func TestBoxSubtract(t *testing.T) {
	a := NewBox([]int{0, 0}, []int{9, 9})
	hole := NewBox([]int{3, 3}, []int{6, 6})

	pieces := a.Subtract(hole)
	total := 0
	for _, p := range pieces {
		assert.False(t, p.Empty())
		assert.True(t, p.Intersect(hole).Empty(), "piece %s overlaps the hole", p)
		for _, q := range pieces {
			if !p.Equal(q) {
				assert.True(t, p.Intersect(q).Empty(), "pieces %s and %s overlap", p, q)
			}
		}
		total += p.NumCells()
	}
	assert.Equal(t, a.NumCells()-hole.NumCells(), total)

	// disjoint subtrahend leaves the box whole
	pieces = a.Subtract(NewBox([]int{20, 20}, []int{25, 25}))
	assert.Len(t, pieces, 1)
	assert.True(t, pieces[0].Equal(a))

	// full cover removes everything
	assert.Empty(t, a.Subtract(NewBox([]int{-1, -1}, []int{10, 10})))
}

func TestBoxListRemoveIntersections(t *testing.T) {
	l := BoxList{NewBox([]int{0, 0}, []int{9, 9})}
	l = l.RemoveIntersections(NewBox([]int{0, 0}, []int{4, 9}))
	assert.Equal(t, 50, l.NumCells())
	l = l.RemoveIntersections(NewBox([]int{5, 0}, []int{9, 4}))
	assert.Equal(t, 25, l.NumCells())
	l = l.RemoveIntersections(NewBox([]int{0, 0}, []int{9, 9}))
	assert.Equal(t, 0, l.NumCells())
}

func TestBoxGrowUpper(t *testing.T) {
	b := NewBox([]int{0, 0}, []int{8, 3})
	g := b.GrowUpper(1, 1)
	assert.True(t, g.Equal(NewBox([]int{0, 0}, []int{8, 4})))
	// original untouched
	assert.True(t, b.Equal(NewBox([]int{0, 0}, []int{8, 3})))
}

func TestBoxCopyIsDeep(t *testing.T) {
	b := NewBox([]int{1, 2}, []int{3, 4})
	c := b.Copy()
	c.Lo[0] = 99
	if diff := cmp.Diff([]int{1, 2}, []int(b.Lo)); diff != "" {
		t.Errorf("copy aliased the original (-want +got):\n%s", diff)
	}
}

func TestIntVector(t *testing.T) {
	a := IntVector{1, 2, 3}
	b := IntVector{2, 2, 4}
	assert.True(t, a.CoveredBy(b))
	assert.False(t, b.CoveredBy(a))
	assert.Equal(t, IntVector{1, 2, 3}, MinVec(a, b))
	assert.True(t, Ones(3).Equals(IntVector{1, 1, 1}))

	c := a.Copy()
	c[0] = 7
	assert.Equal(t, 1, a[0])

	assert.Panics(t, func() { MinVec(a, IntVector{1, 2}) })
}
