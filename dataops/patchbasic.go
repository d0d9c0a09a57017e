package dataops

import (
	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
)

// Entrywise arithmetic on one patch's field data, over the directional
// footprint of a cell-centered box.  Destination storage is caller-owned
// and may alias the sources; every operation walks contiguous axis-0 runs.

func forEachAligned1[T pdat.Value](d *pdat.Data[T], box hier.Box, fn func(dr []T)) {
	for axis, c := range d.Components {
		if c == nil {
			continue
		}
		region := d.Centering.DirectionalBox(box, axis).Intersect(c.Box)
		if region.Empty() {
			continue
		}
		c.ForEachRow(region, fn)
	}
}

func forEachAligned2[T pdat.Value](dst, src *pdat.Data[T], box hier.Box, fn func(dr, sr []T)) {
	for axis, c := range dst.Components {
		if c == nil {
			continue
		}
		sc := src.Component(axis)
		region := dst.Centering.DirectionalBox(box, axis).Intersect(c.Box).Intersect(sc.Box)
		if region.Empty() {
			continue
		}
		w := region.Width(0)
		pdat.ForEachRowStart(region, func(start hier.IntVector) {
			fn(c.Row(start, w), sc.Row(start, w))
		})
	}
}

func forEachAligned3[T pdat.Value](dst, a, b *pdat.Data[T], box hier.Box, fn func(dr, ar, br []T)) {
	for axis, c := range dst.Components {
		if c == nil {
			continue
		}
		ac, bc := a.Component(axis), b.Component(axis)
		region := dst.Centering.DirectionalBox(box, axis).
			Intersect(c.Box).Intersect(ac.Box).Intersect(bc.Box)
		if region.Empty() {
			continue
		}
		w := region.Width(0)
		pdat.ForEachRowStart(region, func(start hier.IntVector) {
			fn(c.Row(start, w), ac.Row(start, w), bc.Row(start, w))
		})
	}
}

// SetToScalar sets every entry of dst inside box to alpha.
func SetToScalar[T pdat.Value](dst *pdat.Data[T], alpha T, box hier.Box) {
	requireField(dst, "dst")
	requireSameDim(dst.Dim(), box.Dim())
	forEachAligned1(dst, box, func(dr []T) {
		for i := range dr {
			dr[i] = alpha
		}
	})
}

// Copy copies src into dst entrywise inside box.
func Copy[T pdat.Value](dst, src *pdat.Data[T], box hier.Box) {
	requireField(dst, "dst")
	requireField(src, "src")
	requirePairCompat(dst, src)
	forEachAligned2(dst, src, box, func(dr, sr []T) {
		copy(dr, sr)
	})
}

// Scale sets dst = alpha*src entrywise inside box.
func Scale[T pdat.Value](dst *pdat.Data[T], alpha T, src *pdat.Data[T], box hier.Box) {
	requireField(dst, "dst")
	requireField(src, "src")
	requirePairCompat(dst, src)
	forEachAligned2(dst, src, box, func(dr, sr []T) {
		for i := range dr {
			dr[i] = alpha * sr[i]
		}
	})
}

// AddScalar sets dst = src + alpha entrywise inside box.
func AddScalar[T pdat.Value](dst, src *pdat.Data[T], alpha T, box hier.Box) {
	requireField(dst, "dst")
	requireField(src, "src")
	requirePairCompat(dst, src)
	forEachAligned2(dst, src, box, func(dr, sr []T) {
		for i := range dr {
			dr[i] = sr[i] + alpha
		}
	})
}

// Add sets dst = a + b entrywise inside box.
func Add[T pdat.Value](dst, a, b *pdat.Data[T], box hier.Box) {
	requireBinary(dst, a, b)
	forEachAligned3(dst, a, b, box, func(dr, ar, br []T) {
		for i := range dr {
			dr[i] = ar[i] + br[i]
		}
	})
}

// Subtract sets dst = a - b entrywise inside box.
func Subtract[T pdat.Value](dst, a, b *pdat.Data[T], box hier.Box) {
	requireBinary(dst, a, b)
	forEachAligned3(dst, a, b, box, func(dr, ar, br []T) {
		for i := range dr {
			dr[i] = ar[i] - br[i]
		}
	})
}

// Multiply sets dst = a * b entrywise inside box.
func Multiply[T pdat.Value](dst, a, b *pdat.Data[T], box hier.Box) {
	requireBinary(dst, a, b)
	forEachAligned3(dst, a, b, box, func(dr, ar, br []T) {
		for i := range dr {
			dr[i] = ar[i] * br[i]
		}
	})
}

// Divide sets dst = a / b entrywise inside box.
func Divide[T pdat.Value](dst, a, b *pdat.Data[T], box hier.Box) {
	requireBinary(dst, a, b)
	forEachAligned3(dst, a, b, box, func(dr, ar, br []T) {
		for i := range dr {
			dr[i] = ar[i] / br[i]
		}
	})
}

// Reciprocal sets dst = 1 / src entrywise inside box.
func Reciprocal[T pdat.Value](dst, src *pdat.Data[T], box hier.Box) {
	requireField(dst, "dst")
	requireField(src, "src")
	requirePairCompat(dst, src)
	one := oneVal[T]()
	forEachAligned2(dst, src, box, func(dr, sr []T) {
		for i := range dr {
			dr[i] = one / sr[i]
		}
	})
}

// LinearSum sets dst = alpha*x + beta*y entrywise inside box.
func LinearSum[T pdat.Value](dst *pdat.Data[T], alpha T, x *pdat.Data[T], beta T, y *pdat.Data[T], box hier.Box) {
	requireBinary(dst, x, y)
	forEachAligned3(dst, x, y, box, func(dr, xr, yr []T) {
		for i := range dr {
			dr[i] = alpha*xr[i] + beta*yr[i]
		}
	})
}

// Axpy sets dst = alpha*x + y entrywise inside box.
func Axpy[T pdat.Value](dst *pdat.Data[T], alpha T, x, y *pdat.Data[T], box hier.Box) {
	requireBinary(dst, x, y)
	forEachAligned3(dst, x, y, box, func(dr, xr, yr []T) {
		for i := range dr {
			dr[i] = alpha*xr[i] + yr[i]
		}
	})
}

// Axmy sets dst = alpha*x - y entrywise inside box.
func Axmy[T pdat.Value](dst *pdat.Data[T], alpha T, x, y *pdat.Data[T], box hier.Box) {
	requireBinary(dst, x, y)
	forEachAligned3(dst, x, y, box, func(dr, xr, yr []T) {
		for i := range dr {
			dr[i] = alpha*xr[i] - yr[i]
		}
	})
}

func requireBinary[T pdat.Value](dst, a, b *pdat.Data[T]) {
	requireField(dst, "dst")
	requireField(a, "a")
	requireField(b, "b")
	requirePairCompat(dst, a)
	requirePairCompat(dst, b)
}
