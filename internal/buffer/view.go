package buffer

import (
	"fmt"

	"github.com/born-ml/hostkernel/internal/ndrange"
)

// View is a bounds-checked, multi-dimensional window onto a buffer's
// storage. It owns nothing: it must not be used after every handle of its
// buffer has been released.
//
// Views are cheap values, meant to be captured by kernels. Concurrent writes
// to the same element through any views are the caller's responsibility.
type View[T any] struct {
	data   []T
	extent ndrange.Extent
	mode   AccessMode
	target Target
}

// Mode returns the declared access mode.
func (v View[T]) Mode() AccessMode { return v.mode }

// Target returns the declared target.
func (v View[T]) Target() Target { return v.target }

// Extent returns the shape of the underlying buffer.
func (v View[T]) Extent() ndrange.Extent { return v.extent }

// Len returns the number of elements.
func (v View[T]) Len() int { return len(v.data) }

// At returns a pointer to the element at row-major position i.
func (v View[T]) At(i int) *T {
	if i < 0 || i >= len(v.data) {
		panic(fmt.Sprintf("view: linear index %d out of range [0, %d)", i, len(v.data)))
	}
	return &v.data[i]
}

// AtIndex returns a pointer to the element at idx.
// Panics if the rank differs from the buffer's or idx is outside the extent.
func (v View[T]) AtIndex(idx ndrange.Index) *T {
	if idx.Rank() != v.extent.Rank() {
		panic(fmt.Sprintf("view: index rank %d does not match buffer rank %d", idx.Rank(), v.extent.Rank()))
	}
	if !v.extent.Contains(idx) {
		panic(fmt.Sprintf("view: index %v out of range %v", idx, v.extent))
	}
	return &v.data[v.extent.Linearize(idx)]
}

// AtItem returns a pointer to the element at the item's global index.
func (v View[T]) AtItem(it ndrange.Item) *T {
	return v.AtIndex(it.GlobalID())
}

// AtWorkItem returns a pointer to the element at the work-item's global index.
func (v View[T]) AtWorkItem(w ndrange.WorkItem) *T {
	return v.AtIndex(w.GlobalID())
}

// Load reads the element at idx.
func (v View[T]) Load(idx ndrange.Index) T {
	return *v.AtIndex(idx)
}

// Store writes val at idx.
func (v View[T]) Store(idx ndrange.Index, val T) {
	*v.AtIndex(idx) = val
}
