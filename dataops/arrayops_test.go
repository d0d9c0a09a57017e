package dataops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
)

const tol = 1e-12

func realComp(box hier.Box, depth int, fill float64) *pdat.Component[float64] {
	c := pdat.NewComponent[float64](box, depth)
	c.Fill(box, fill)
	return c
}

func cmplxComp(box hier.Box, depth int, fill complex128) *pdat.Component[complex128] {
	c := pdat.NewComponent[complex128](box, depth)
	c.Fill(box, fill)
	return c
}

func TestCountEntries(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{3, 1})
	c := pdat.NewComponent[float64](box, 2)

	assert.Equal(t, 16, CountEntries(c, box))
	assert.Equal(t, 4, CountEntries(c, hier.NewBox([]int{2, 1}, []int{5, 1})))
	assert.Equal(t, 0, CountEntries(c, hier.NewBox([]int{10, 10}, []int{12, 12})))
}

func TestSumAbsReal(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{3, 1})
	c := realComp(box, 1, -2.5)
	assert.InDelta(t, 8*2.5, SumAbs(c, box, nil), tol)

	cv := realComp(box, 1, 0.5)
	assert.InDelta(t, 8*2.5*0.5, SumAbs(c, box, cv), tol)

	// restriction clips to the overlap
	sub := hier.NewBox([]int{2, 0}, []int{9, 0})
	assert.InDelta(t, 2*2.5, SumAbs(c, sub, nil), tol)
	assert.InDelta(t, 0.0, SumAbs(c, hier.NewBox([]int{10, 10}, []int{11, 11}), nil), tol)
}

func TestSumAbsComplexUsesModulus(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{1, 0})
	c := cmplxComp(box, 1, 3-4i)
	// |3-4i| = 5, never |3|+|4|
	assert.InDelta(t, 10.0, SumAbs(c, box, nil), tol)
}

func TestSumSquares(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{3, 1})
	c := realComp(box, 1, -3)
	assert.InDelta(t, 8*9.0, SumSquares(c, box, nil), tol)

	cc := cmplxComp(box, 1, 1+2i)
	assert.InDelta(t, 8*5.0, SumSquares(cc, box, nil), tol)

	cv := realComp(box, 1, 0.25)
	assert.InDelta(t, 8*5.0*0.25, SumSquares(cc, box, cv), tol)
}

func TestDepthPairing(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{1, 0})
	c := pdat.NewComponent[float64](box, 2)
	c.SetAt(hier.IntVector{0, 0}, 0, 1)
	c.SetAt(hier.IntVector{0, 0}, 1, 2)
	c.SetAt(hier.IntVector{1, 0}, 0, 3)
	c.SetAt(hier.IntVector{1, 0}, 1, 4)

	// depth-1 weight applies to every depth entry of its location
	cv1 := pdat.NewComponent[float64](box, 1)
	cv1.SetAt(hier.IntVector{0, 0}, 0, 2)
	cv1.SetAt(hier.IntVector{1, 0}, 0, 0)
	assert.InDelta(t, (1+2)*2.0, SumAbs(c, box, cv1), tol)

	// matching-depth weight pairs entrywise
	cv2 := pdat.NewComponent[float64](box, 2)
	cv2.SetAt(hier.IntVector{0, 0}, 0, 1)
	cv2.SetAt(hier.IntVector{0, 0}, 1, 0)
	cv2.SetAt(hier.IntVector{1, 0}, 0, 0)
	cv2.SetAt(hier.IntVector{1, 0}, 1, 3)
	assert.InDelta(t, 1*1+4*3.0, SumAbs(c, box, cv2), tol)
}

func TestMaxMagnitudeExcludesZeroWeight(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{3, 0})
	c := pdat.NewComponent[float64](box, 1)
	c.SetAt(hier.IntVector{0, 0}, 0, -7)
	c.SetAt(hier.IntVector{1, 0}, 0, 1000)
	c.SetAt(hier.IntVector{2, 0}, 0, 2)

	assert.InDelta(t, 1000.0, MaxMagnitude(c, box, nil), tol)

	cv := realComp(box, 1, 1)
	cv.SetAt(hier.IntVector{1, 0}, 0, 0) // outlier masked out
	assert.InDelta(t, 7.0, MaxMagnitude(c, box, cv), tol)

	allZero := realComp(box, 1, 0)
	assert.Equal(t, 0.0, MaxMagnitude(c, box, allZero))
}

func TestDotSumConjugatesSecondArgument(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{0, 0})
	a := cmplxComp(box, 1, 2.5+3i)
	b := cmplxComp(box, 1, 7+0i)

	// dot(b, a) = b*conj(a), dot(a, b) = a*conj(b)
	assert.InDelta(t, 17.5, real(DotSum(b, a, box, nil)), tol)
	assert.InDelta(t, -21.0, imag(DotSum(b, a, box, nil)), tol)
	assert.InDelta(t, 17.5, real(DotSum(a, b, box, nil)), tol)
	assert.InDelta(t, 21.0, imag(DotSum(a, b, box, nil)), tol)

	// weighting scales without touching the conjugation
	cv := realComp(box, 1, 0.5)
	got := DotSum(b, a, box, cv)
	assert.InDelta(t, 17.5/2, real(got), tol)
	assert.InDelta(t, -21.0/2, imag(got), tol)
}

func TestDotSumRealMatchesSquares(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{3, 1})
	c := realComp(box, 1, -1.5)
	assert.InDelta(t, SumSquares(c, box, nil), DotSum(c, c, box, nil), tol)
}

func TestIntegralSumNoConjugation(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{0, 0})
	c := cmplxComp(box, 1, 2+3i)
	vol := realComp(box, 1, 2)

	got := IntegralSum(c, box, vol)
	assert.InDelta(t, 4.0, real(got), tol)
	assert.InDelta(t, 6.0, imag(got), tol)
}

func TestAbsInto(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{1, 0})
	src := cmplxComp(box, 1, -3+4i)
	dst := pdat.NewComponent[float64](box, 1)

	AbsInto(dst, src, box)
	assert.InDelta(t, 5.0, dst.At(hier.IntVector{0, 0}, 0), tol)
	assert.InDelta(t, 5.0, dst.At(hier.IntVector{1, 0}, 0), tol)
}

func TestWeightedKernelsClipToWeightStorage(t *testing.T) {
	// control volume allocated over an offset box: only the overlap with
	// the data storage contributes; no kernel reads past either slice
	box := hier.NewBox([]int{0, 0}, []int{3, 0})
	d := realComp(box, 1, 2)
	cv := realComp(hier.NewBox([]int{1, 0}, []int{4, 0}), 1, 0.5)

	assert.InDelta(t, 3*2*0.5, SumAbs(d, box, cv), tol)
	assert.InDelta(t, 3*4*0.5, SumSquares(d, box, cv), tol)
	assert.InDelta(t, 3*4*0.5, DotSum(d, d, box, cv), tol)

	w := realComp(box, 1, 3)
	assert.InDelta(t, 3*36*0.5, SumWeightedSquares(d, w, box, cv), tol)

	// an outlier outside the weight storage never qualifies
	d.SetAt(hier.IntVector{0, 0}, 0, 100)
	assert.InDelta(t, 2.0, MaxMagnitude(d, box, cv), tol)

	// disjoint weight storage reduces to the identity
	far := realComp(hier.NewBox([]int{10, 0}, []int{12, 0}), 1, 1)
	assert.Equal(t, 0.0, SumAbs(d, box, far))
	assert.Equal(t, 0.0, MaxMagnitude(d, box, far))
}

func TestSumWeightedSquares(t *testing.T) {
	box := hier.NewBox([]int{0, 0}, []int{3, 0})
	d := realComp(box, 1, 2)
	w := realComp(box, 1, 3)

	// (2*3)^2 per entry
	assert.InDelta(t, 4*36.0, SumWeightedSquares(d, w, box, nil), tol)

	cv := realComp(box, 1, 0.5)
	assert.InDelta(t, 4*18.0, SumWeightedSquares(d, w, box, cv), tol)
}
